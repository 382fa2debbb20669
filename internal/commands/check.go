package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerline-dev/ledgerline/internal/config"
	"github.com/ledgerline-dev/ledgerline/internal/model"
)

func newCheckCommand() *cobra.Command {
	var mappingPath string
	var templatePath string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the mapping registry and statement template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, mappingPath, templatePath)
		},
	}

	cmd.Flags().StringVar(&mappingPath, "mapping", "mapping.yaml", "mapping registry file")
	cmd.Flags().StringVar(&templatePath, "template", "template.yaml", "statement template file")

	return cmd
}

func runCheck(cmd *cobra.Command, mappingPath, templatePath string) error {
	reg, err := config.LoadMapping(mappingPath)
	if err != nil {
		return err
	}
	tpl, err := config.LoadTemplate(templatePath)
	if err != nil {
		return err
	}

	// Every rule must route to a declared leaf line.
	var problems []string
	for _, rule := range reg.Rules() {
		ln, ok := tpl.Line(rule.Line)
		if !ok {
			problems = append(problems, fmt.Sprintf("rule %s routes to undeclared line %s", rule.Prefix, rule.Line))
			continue
		}
		if ln.Kind != model.LineLeaf {
			problems = append(problems, fmt.Sprintf("rule %s routes to %s line %s", rule.Prefix, ln.Kind, rule.Line))
		}
	}
	if len(problems) > 0 {
		for _, p := range problems {
			cmd.Println(failStyle.Render(p))
		}
		return fmt.Errorf("%d mapping problems", len(problems))
	}

	cmd.Printf("%s %d rules, %d template lines\n", passStyle.Render("ok"), reg.Len(), len(tpl.Lines()))
	return nil
}
