package mapping

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func mustRegistry(t *testing.T, rules ...model.MappingRule) *Registry {
	t.Helper()
	reg, err := NewRegistry(rules)
	require.NoError(t, err)
	return reg
}

func TestNewRegistry_DuplicatePrefixSide(t *testing.T) {
	_, err := NewRegistry([]model.MappingRule{
		{Prefix: "131", Line: "receivables", Side: model.SideEither, Nature: model.NatureAsset},
		{Prefix: "131", Line: "other", Side: model.SideEither, Nature: model.NatureAsset},
	})
	require.Error(t, err)

	var dup DuplicateRuleError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "131", dup.Prefix)
	assert.Equal(t, model.SideEither, dup.Side)
}

func TestNewRegistry_TwoSidesSamePrefix(t *testing.T) {
	_, err := NewRegistry([]model.MappingRule{
		{Prefix: "131", Line: "receivables", Side: model.SideDebitOnly, Nature: model.NatureAsset},
		{Prefix: "131", Line: "customer_advances", Side: model.SideCreditOnly, Nature: model.NatureLiability},
	})
	assert.NoError(t, err)
}

func TestNewRegistry_RejectsBadRules(t *testing.T) {
	cases := []struct {
		name string
		rule model.MappingRule
	}{
		{"empty prefix", model.MappingRule{Line: "x", Side: model.SideEither, Nature: model.NatureAsset}},
		{"bad side", model.MappingRule{Prefix: "1", Line: "x", Side: "sideways", Nature: model.NatureAsset}},
		{"bad nature", model.MappingRule{Prefix: "1", Line: "x", Side: model.SideEither, Nature: "vague"}},
		{"empty line", model.MappingRule{Prefix: "1", Side: model.SideEither, Nature: model.NatureAsset}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewRegistry([]model.MappingRule{tc.rule})
			assert.Error(t, err)
		})
	}
}

func TestResolve_LongestPrefixWins(t *testing.T) {
	reg := mustRegistry(t,
		model.MappingRule{Prefix: "131", Line: "receivables", Side: model.SideEither, Nature: model.NatureAsset},
		model.MappingRule{Prefix: "1311", Line: "receivables_trade", Side: model.SideEither, Nature: model.NatureAsset},
	)

	res, err := reg.Resolve("1311", dec("100"), decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, "receivables_trade", res.Rule.Line)

	res, err = reg.Resolve("1312", dec("100"), decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, "receivables", res.Rule.Line)
}

func TestResolve_SideAwareRouting(t *testing.T) {
	reg := mustRegistry(t,
		model.MappingRule{Prefix: "131", Line: "receivables", Side: model.SideDebitOnly, Nature: model.NatureAsset},
		model.MappingRule{Prefix: "131", Line: "customer_advances", Side: model.SideCreditOnly, Nature: model.NatureLiability},
	)

	res, err := reg.Resolve("131", dec("100"), decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, "receivables", res.Rule.Line)
	assert.True(t, res.Amount.Equal(dec("100")))

	res, err = reg.Resolve("131", decimal.Zero, dec("50"))
	require.NoError(t, err)
	assert.Equal(t, "customer_advances", res.Rule.Line)
	assert.True(t, res.Amount.Equal(dec("50")))
}

func TestResolve_SideMismatchFallsBackToShorterPrefix(t *testing.T) {
	reg := mustRegistry(t,
		model.MappingRule{Prefix: "13", Line: "receivables_other", Side: model.SideEither, Nature: model.NatureAsset},
		model.MappingRule{Prefix: "131", Line: "receivables", Side: model.SideDebitOnly, Nature: model.NatureAsset},
	)

	// Credit balance does not match the one-sided "131" rule; the general
	// "13" rule takes it instead.
	res, err := reg.Resolve("131", decimal.Zero, dec("40"))
	require.NoError(t, err)
	assert.Equal(t, "receivables_other", res.Rule.Line)
	assert.True(t, res.Amount.Equal(dec("-40")))
}

func TestResolve_Unmapped(t *testing.T) {
	reg := mustRegistry(t,
		model.MappingRule{Prefix: "111", Line: "cash", Side: model.SideEither, Nature: model.NatureAsset},
	)

	_, err := reg.Resolve("999", dec("10"), decimal.Zero)
	var unmapped UnmappedError
	require.ErrorAs(t, err, &unmapped)
	assert.Equal(t, "999", unmapped.Code)
}

func TestResolve_AmbiguousRulesFailFast(t *testing.T) {
	reg := mustRegistry(t,
		model.MappingRule{Prefix: "131", Line: "receivables", Side: model.SideEither, Nature: model.NatureAsset},
		model.MappingRule{Prefix: "131", Line: "receivables_alt", Side: model.SideDebitOnly, Nature: model.NatureAsset},
	)

	_, err := reg.Resolve("131", dec("100"), decimal.Zero)
	var amb AmbiguousMatchError
	require.ErrorAs(t, err, &amb)
	assert.Equal(t, "131", amb.Code)
	assert.Len(t, amb.Rules, 2)
}

func TestResolve_NatureSigning(t *testing.T) {
	cases := []struct {
		name          string
		nature        model.Nature
		debit, credit string
		want          string
	}{
		{"asset debit balance", model.NatureAsset, "100", "0", "100"},
		{"asset credit balance (contra)", model.NatureAsset, "0", "30", "-30"},
		{"liability credit balance", model.NatureLiability, "0", "80", "80"},
		{"income credit balance", model.NatureIncome, "0", "500", "500"},
		{"income debit balance (deduction)", model.NatureIncome, "20", "0", "-20"},
		{"expense debit balance", model.NatureExpense, "60", "0", "60"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reg := mustRegistry(t,
				model.MappingRule{Prefix: "5", Line: "line", Side: model.SideEither, Nature: tc.nature},
			)
			res, err := reg.Resolve("51", dec(tc.debit), dec(tc.credit))
			require.NoError(t, err)
			assert.True(t, res.Amount.Equal(dec(tc.want)), "got %s want %s", res.Amount, tc.want)
		})
	}
}

func TestResolve_ZeroResidualStaysMapped(t *testing.T) {
	reg := mustRegistry(t,
		model.MappingRule{Prefix: "131", Line: "receivables", Side: model.SideDebitOnly, Nature: model.NatureAsset},
		model.MappingRule{Prefix: "131", Line: "customer_advances", Side: model.SideCreditOnly, Nature: model.NatureLiability},
	)

	res, err := reg.Resolve("131", decimal.Zero, decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, "receivables", res.Rule.Line)
	assert.True(t, res.Amount.IsZero())
}

func TestResolve_NetsWithinAccountBySide(t *testing.T) {
	// Both fields populated: the residual sign routes, and the magnitude is
	// the residual, never the sum of both sides.
	reg := mustRegistry(t,
		model.MappingRule{Prefix: "331", Line: "payables", Side: model.SideCreditOnly, Nature: model.NatureLiability},
		model.MappingRule{Prefix: "331", Line: "supplier_advances", Side: model.SideDebitOnly, Nature: model.NatureAsset},
	)

	res, err := reg.Resolve("331", dec("10"), dec("70"))
	require.NoError(t, err)
	assert.Equal(t, "payables", res.Rule.Line)
	assert.True(t, res.Amount.Equal(dec("60")))
}
