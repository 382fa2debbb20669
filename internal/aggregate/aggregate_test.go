package aggregate

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline-dev/ledgerline/internal/model"
	"github.com/ledgerline-dev/ledgerline/internal/template"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func contrib(code, line, amount string) model.Contribution {
	return model.Contribution{AccountCode: code, Line: line, Amount: dec(amount)}
}

func balanceSheetTemplate(t *testing.T) *template.Template {
	t.Helper()
	tpl, err := template.New([]model.Line{
		{ID: "total_assets", Kind: model.LineAggregate, Statement: model.StatementBalanceSheet},
		{ID: "cash", ParentID: "total_assets", Kind: model.LineLeaf, Statement: model.StatementBalanceSheet},
		{ID: "receivables", ParentID: "total_assets", Kind: model.LineLeaf, Statement: model.StatementBalanceSheet},
		{ID: "total_equity", Kind: model.LineAggregate, Statement: model.StatementBalanceSheet},
		{ID: "capital", ParentID: "total_equity", Kind: model.LineLeaf, Statement: model.StatementBalanceSheet},
		{ID: "check", Kind: model.LineFormula, Formula: "total_assets - total_equity", Statement: model.StatementBalanceSheet},
	}, nil, template.Checks{})
	require.NoError(t, err)
	return tpl
}

func TestCompute_TieOut(t *testing.T) {
	tpl := balanceSheetTemplate(t)

	res, err := Compute(tpl, []model.Contribution{
		contrib("1111", "cash", "1000"),
		contrib("4111", "capital", "1000"),
	}, nil)
	require.NoError(t, err)

	assert.True(t, res.Amount("total_assets").Equal(dec("1000")))
	assert.True(t, res.Amount("total_equity").Equal(dec("1000")))
	assert.True(t, res.Amount("check").IsZero())
}

func TestCompute_MultipleAccountsOneLine(t *testing.T) {
	tpl := balanceSheetTemplate(t)

	res, err := Compute(tpl, []model.Contribution{
		contrib("1111", "cash", "600"),
		contrib("1121", "cash", "400"),
	}, nil)
	require.NoError(t, err)

	cash, ok := res.Value("cash")
	require.True(t, ok)
	assert.True(t, cash.Value.Equal(dec("1000")))
	assert.Equal(t, []string{"1111", "1121"}, cash.Contributors)
}

func TestCompute_NoDoubleCounting(t *testing.T) {
	tpl := balanceSheetTemplate(t)

	contribs := []model.Contribution{
		contrib("1111", "cash", "300"),
		contrib("131", "receivables", "200"),
		contrib("4111", "capital", "500"),
	}
	res, err := Compute(tpl, contribs, nil)
	require.NoError(t, err)

	// Each parent equals the sum of its children.
	childSum := res.Amount("cash").Add(res.Amount("receivables"))
	assert.True(t, res.Amount("total_assets").Equal(childSum))

	// The sum over roots equals the sum over all leaf contributions.
	leafTotal := decimal.Zero
	for _, c := range contribs {
		leafTotal = leafTotal.Add(c.Amount)
	}
	rootTotal := res.Amount("total_assets").Add(res.Amount("total_equity"))
	assert.True(t, rootTotal.Equal(leafTotal))
}

func TestCompute_AggregateContributorsRollUp(t *testing.T) {
	tpl := balanceSheetTemplate(t)

	res, err := Compute(tpl, []model.Contribution{
		contrib("1111", "cash", "300"),
		contrib("131", "receivables", "200"),
	}, nil)
	require.NoError(t, err)

	ta, _ := res.Value("total_assets")
	assert.Equal(t, []string{"1111", "131"}, ta.Contributors)
}

func TestCompute_ContraLineStaysSeparate(t *testing.T) {
	tpl, err := template.New([]model.Line{
		{ID: "fixed_assets", Kind: model.LineAggregate, Statement: model.StatementBalanceSheet},
		{ID: "fixed_assets_cost", ParentID: "fixed_assets", Kind: model.LineLeaf, Statement: model.StatementBalanceSheet},
		{ID: "accumulated_depreciation", ParentID: "fixed_assets", Kind: model.LineLeaf, Statement: model.StatementBalanceSheet},
	}, []model.ContraDecl{
		{Line: "accumulated_depreciation", PairsWith: "fixed_assets_cost"},
	}, template.Checks{})
	require.NoError(t, err)

	res, err := Compute(tpl, []model.Contribution{
		contrib("211", "fixed_assets_cost", "900"),
		contrib("214", "accumulated_depreciation", "-250"),
	}, nil)
	require.NoError(t, err)

	// The contra value is kept on its own line, negative, and the parent
	// nets only through ordinary summation of separate children.
	assert.True(t, res.Amount("fixed_assets_cost").Equal(dec("900")))
	assert.True(t, res.Amount("accumulated_depreciation").Equal(dec("-250")))
	assert.True(t, res.Amount("fixed_assets").Equal(dec("650")))
}

func TestCompute_FlowBasisFeedsIncomeStatement(t *testing.T) {
	tpl, err := template.New([]model.Line{
		{ID: "gross_revenue", Kind: model.LineLeaf, Statement: model.StatementIncomeStatement},
		{ID: "cogs", Kind: model.LineLeaf, Statement: model.StatementIncomeStatement},
		{ID: "gross_profit", Kind: model.LineFormula, Formula: "gross_revenue - cogs", Statement: model.StatementIncomeStatement},
	}, nil, template.Checks{})
	require.NoError(t, err)

	res, err := Compute(tpl, nil, []model.Contribution{
		contrib("511", "gross_revenue", "800"),
		contrib("632", "cogs", "500"),
	})
	require.NoError(t, err)

	assert.True(t, res.Amount("gross_profit").Equal(dec("300")))
	gp, _ := res.Value("gross_profit")
	assert.ElementsMatch(t, []string{"511", "632"}, gp.Contributors)
}

func TestCompute_RejectsWrongBasis(t *testing.T) {
	tpl := balanceSheetTemplate(t)

	_, err := Compute(tpl, nil, []model.Contribution{
		contrib("1111", "cash", "100"),
	})
	assert.ErrorContains(t, err, "wrong basis")
}

func TestCompute_RejectsContributionToAggregate(t *testing.T) {
	tpl := balanceSheetTemplate(t)

	_, err := Compute(tpl, []model.Contribution{
		contrib("1111", "total_assets", "100"),
	}, nil)
	assert.ErrorContains(t, err, "aggregate")
}

func TestCompute_Deterministic(t *testing.T) {
	tpl := balanceSheetTemplate(t)
	contribs := []model.Contribution{
		contrib("1111", "cash", "300"),
		contrib("131", "receivables", "200"),
		contrib("4111", "capital", "500"),
	}

	first, err := Compute(tpl, contribs, nil)
	require.NoError(t, err)
	second, err := Compute(tpl, contribs, nil)
	require.NoError(t, err)

	assert.Equal(t, first.Values(), second.Values())
}
