// Package mapping resolves leaf accounts onto financial-statement lines
// via longest-prefix matching with side-aware routing.
package mapping

import (
	"fmt"

	"github.com/ledgerline-dev/ledgerline/internal/model"
)

// DuplicateRuleError reports two registry entries with the same
// (prefix, side) pair.
type DuplicateRuleError struct {
	Prefix string
	Side   model.Side
}

func (e DuplicateRuleError) Error() string {
	return fmt.Sprintf("duplicate mapping rule for prefix %q side %s", e.Prefix, e.Side)
}

// Registry holds the mapping rules for a run, indexed for prefix lookup.
// Immutable after construction.
type Registry struct {
	rules    []model.MappingRule
	byPrefix map[string][]model.MappingRule
	maxLen   int
}

// NewRegistry validates and indexes a rule set. Rules with an empty prefix,
// an unknown side or nature, or a duplicate (prefix, side) pair are
// configuration errors.
func NewRegistry(rules []model.MappingRule) (*Registry, error) {
	byPrefix := make(map[string][]model.MappingRule)
	seen := make(map[string]bool, len(rules))
	maxLen := 0

	for i, r := range rules {
		if r.Prefix == "" {
			return nil, fmt.Errorf("rule %d: empty prefix", i+1)
		}
		if !r.Side.Valid() {
			return nil, fmt.Errorf("rule for prefix %q: unknown side %q", r.Prefix, r.Side)
		}
		if !r.Nature.Valid() {
			return nil, fmt.Errorf("rule for prefix %q: unknown nature %q", r.Prefix, r.Nature)
		}
		if r.Line == "" {
			return nil, fmt.Errorf("rule for prefix %q: empty line id", r.Prefix)
		}
		key := r.Prefix + "|" + string(r.Side)
		if seen[key] {
			return nil, DuplicateRuleError{Prefix: r.Prefix, Side: r.Side}
		}
		seen[key] = true

		byPrefix[r.Prefix] = append(byPrefix[r.Prefix], r)
		if len(r.Prefix) > maxLen {
			maxLen = len(r.Prefix)
		}
	}

	return &Registry{rules: rules, byPrefix: byPrefix, maxLen: maxLen}, nil
}

// Rules returns all rules in declaration order.
func (r *Registry) Rules() []model.MappingRule {
	return r.rules
}

// Len returns the number of rules.
func (r *Registry) Len() int {
	return len(r.rules)
}
