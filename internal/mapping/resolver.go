package mapping

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

// UnmappedError reports an account that no applicable rule routes.
type UnmappedError struct {
	Code string
}

func (e UnmappedError) Error() string {
	return fmt.Sprintf("account %s matches no mapping rule", e.Code)
}

// AmbiguousMatchError reports equally specific rules that all apply to one
// account. The resolver never guesses between them.
type AmbiguousMatchError struct {
	Code  string
	Rules []model.MappingRule
}

func (e AmbiguousMatchError) Error() string {
	descs := make([]string, len(e.Rules))
	for i, r := range e.Rules {
		descs[i] = fmt.Sprintf("(%s %s -> %s)", r.Prefix, r.Side, r.Line)
	}
	return fmt.Sprintf("account %s: ambiguous mapping rules %s", e.Code, strings.Join(descs, " "))
}

// Resolution is the outcome of resolving one account on one basis.
type Resolution struct {
	Rule   model.MappingRule
	Amount decimal.Decimal
}

// Resolve finds the single rule for an account's code and debit/credit
// magnitudes, longest prefix first. Within the winning prefix length, the
// rule whose side matches the sign of the residual (debit - credit) wins;
// an `either` rule matches any sign. If side filtering eliminates every
// rule at a length, shorter prefixes are considered, so a specific
// one-sided rule does not shadow a general rule for the opposite side.
//
// A zero residual routes to an `either` rule when one exists, otherwise to
// the debit-side rule with a zero amount, keeping the account mapped.
func (r *Registry) Resolve(code string, debit, credit decimal.Decimal) (Resolution, error) {
	residual := debit.Sub(credit)

	limit := len(code)
	if r.maxLen < limit {
		limit = r.maxLen
	}

	for l := limit; l >= 1; l-- {
		candidates := r.byPrefix[code[:l]]
		if len(candidates) == 0 {
			continue
		}

		var matched []model.MappingRule
		for _, rule := range candidates {
			if sideMatches(rule.Side, residual) {
				matched = append(matched, rule)
			}
		}

		if len(matched) == 0 && residual.IsZero() {
			matched = zeroFallback(candidates)
		}

		switch len(matched) {
		case 0:
			continue
		case 1:
			rule := matched[0]
			return Resolution{Rule: rule, Amount: rule.Nature.Signed(debit, credit)}, nil
		default:
			return Resolution{}, AmbiguousMatchError{Code: code, Rules: matched}
		}
	}

	return Resolution{}, UnmappedError{Code: code}
}

func sideMatches(side model.Side, residual decimal.Decimal) bool {
	switch side {
	case model.SideDebitOnly:
		return residual.Sign() > 0
	case model.SideCreditOnly:
		return residual.Sign() < 0
	default:
		return true
	}
}

// zeroFallback picks a home for a zero-residual account among one-sided
// rules: the debit rule if present, else the single remaining rule.
func zeroFallback(candidates []model.MappingRule) []model.MappingRule {
	for _, rule := range candidates {
		if rule.Side == model.SideDebitOnly {
			return []model.MappingRule{rule}
		}
	}
	if len(candidates) == 1 {
		return candidates[:1]
	}
	return nil
}
