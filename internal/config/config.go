// Package config loads the mapping registry and statement template from
// YAML into validated, immutable run configuration. All structural
// validation happens here and in the packages it feeds, never at use time.
package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/ledgerline-dev/ledgerline/internal/mapping"
	"github.com/ledgerline-dev/ledgerline/internal/model"
	"github.com/ledgerline-dev/ledgerline/internal/template"
)

// MappingFile is the top-level mapping.yaml document.
type MappingFile struct {
	Rules []RuleConfig `yaml:"rules"`
}

// RuleConfig is one mapping rule as written in YAML. Side defaults to
// "either" when omitted.
type RuleConfig struct {
	Prefix string `yaml:"prefix"`
	Line   string `yaml:"line"`
	Side   string `yaml:"side,omitempty"`
	Nature string `yaml:"nature"`
}

// TemplateFile is the top-level template.yaml document.
type TemplateFile struct {
	Lines  []LineConfig   `yaml:"lines"`
	Contra []ContraConfig `yaml:"contra,omitempty"`
	Checks ChecksConfig   `yaml:"checks"`
}

// LineConfig is one statement line as written in YAML.
type LineConfig struct {
	ID        string `yaml:"id"`
	Code      string `yaml:"code,omitempty"`
	Label     string `yaml:"label,omitempty"`
	Parent    string `yaml:"parent,omitempty"`
	Kind      string `yaml:"kind"`
	Formula   string `yaml:"formula,omitempty"`
	Statement string `yaml:"statement"`
}

// ContraConfig declares a contra line and its paired principal.
type ContraConfig struct {
	Line      string `yaml:"line"`
	PairsWith string `yaml:"pairs_with"`
}

// ChecksConfig names the tie-out lines. Tolerance defaults to 1 currency
// unit when omitted.
type ChecksConfig struct {
	Tolerance        string `yaml:"tolerance,omitempty"`
	TotalAssets      string `yaml:"total_assets,omitempty"`
	TotalLiabilities string `yaml:"total_liabilities,omitempty"`
	TotalEquity      string `yaml:"total_equity,omitempty"`
	RetainedEarnings string `yaml:"retained_earnings,omitempty"`
	NetIncome        string `yaml:"net_income,omitempty"`
}

// LoadMapping reads mapping.yaml and builds the validated registry.
func LoadMapping(path string) (*mapping.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading mapping config: %w", err)
	}
	var mf MappingFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("parsing mapping config: %w", err)
	}
	return BuildRegistry(&mf)
}

// BuildRegistry converts a parsed mapping file into a registry.
func BuildRegistry(mf *MappingFile) (*mapping.Registry, error) {
	rules := make([]model.MappingRule, len(mf.Rules))
	for i, rc := range mf.Rules {
		side := rc.Side
		if side == "" {
			side = string(model.SideEither)
		}
		rules[i] = model.MappingRule{
			Prefix: rc.Prefix,
			Line:   rc.Line,
			Side:   model.Side(side),
			Nature: model.Nature(rc.Nature),
		}
	}
	reg, err := mapping.NewRegistry(rules)
	if err != nil {
		return nil, fmt.Errorf("mapping config: %w", err)
	}
	return reg, nil
}

// LoadTemplate reads template.yaml and builds the validated template.
func LoadTemplate(path string) (*template.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template config: %w", err)
	}
	var tf TemplateFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("parsing template config: %w", err)
	}
	return BuildTemplate(&tf)
}

// BuildTemplate converts a parsed template file into a template.
func BuildTemplate(tf *TemplateFile) (*template.Template, error) {
	lines := make([]model.Line, len(tf.Lines))
	for i, lc := range tf.Lines {
		lines[i] = model.Line{
			ID:        lc.ID,
			Code:      lc.Code,
			Label:     lc.Label,
			ParentID:  lc.Parent,
			Kind:      model.LineKind(lc.Kind),
			Formula:   lc.Formula,
			Statement: model.Statement(lc.Statement),
		}
	}

	contra := make([]model.ContraDecl, len(tf.Contra))
	for i, cc := range tf.Contra {
		contra[i] = model.ContraDecl{Line: cc.Line, PairsWith: cc.PairsWith}
	}

	tolerance := decimal.NewFromInt(1)
	if tf.Checks.Tolerance != "" {
		d, err := decimal.NewFromString(tf.Checks.Tolerance)
		if err != nil {
			return nil, fmt.Errorf("template config: invalid tolerance %q", tf.Checks.Tolerance)
		}
		tolerance = d
	}

	tpl, err := template.New(lines, contra, template.Checks{
		Tolerance:        tolerance,
		TotalAssets:      tf.Checks.TotalAssets,
		TotalLiabilities: tf.Checks.TotalLiabilities,
		TotalEquity:      tf.Checks.TotalEquity,
		RetainedEarnings: tf.Checks.RetainedEarnings,
		NetIncome:        tf.Checks.NetIncome,
	})
	if err != nil {
		return nil, fmt.Errorf("template config: %w", err)
	}
	return tpl, nil
}

// SaveMapping writes a mapping file as YAML.
func SaveMapping(path string, mf *MappingFile) error {
	return save(path, mf, "marshaling mapping config")
}

// SaveTemplate writes a template file as YAML.
func SaveTemplate(path string, tf *TemplateFile) error {
	return save(path, tf, "marshaling template config")
}

func save(path string, doc any, what string) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
