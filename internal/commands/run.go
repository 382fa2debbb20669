package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ledgerline-dev/ledgerline/internal/config"
	"github.com/ledgerline-dev/ledgerline/internal/pipeline"
	"github.com/ledgerline-dev/ledgerline/internal/runlog"
	"github.com/ledgerline-dev/ledgerline/internal/trialbalance"
	"github.com/ledgerline-dev/ledgerline/internal/validate"
)

func newRunCommand() *cobra.Command {
	var mappingPath string
	var templatePath string
	var outPath string
	var period string
	var strict bool

	cmd := &cobra.Command{
		Use:   "run <trial-balance.csv>",
		Short: "Map a trial balance onto the statement template and validate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if period == "" {
				base := filepath.Base(args[0])
				period = strings.TrimSuffix(base, filepath.Ext(base))
			}
			return runRun(cmd, args[0], mappingPath, templatePath, outPath, period, strict)
		},
	}

	cmd.Flags().StringVar(&mappingPath, "mapping", "mapping.yaml", "mapping registry file")
	cmd.Flags().StringVar(&templatePath, "template", "template.yaml", "statement template file")
	cmd.Flags().StringVar(&outPath, "out", "", "write line values to this CSV file")
	cmd.Flags().StringVar(&period, "period", "", "period label for the run log (default: input file name)")
	cmd.Flags().BoolVar(&strict, "strict", false, "abort on unmapped accounts instead of reporting them")

	return cmd
}

func runRun(cmd *cobra.Command, tbPath, mappingPath, templatePath, outPath, period string, strict bool) error {
	reg, err := config.LoadMapping(mappingPath)
	if err != nil {
		return err
	}
	tpl, err := config.LoadTemplate(templatePath)
	if err != nil {
		return err
	}

	f, err := os.Open(tbPath)
	if err != nil {
		return fmt.Errorf("opening trial balance: %w", err)
	}
	defer f.Close()

	accounts, err := trialbalance.ReadAccounts(f)
	if err != nil {
		return fmt.Errorf("reading trial balance: %w", err)
	}

	res, err := pipeline.Run(reg, tpl, pipeline.Options{Strict: strict}, accounts)
	if err != nil {
		return err
	}

	if outPath != "" {
		out, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer out.Close()
		if err := res.Lines.WriteCSV(out, tpl); err != nil {
			return fmt.Errorf("writing line values: %w", err)
		}
	}

	cmd.Print(renderLines(tpl, res.Lines))
	cmd.Println()
	cmd.Print(renderChecks(res.Checks))

	passed, failed := 0, 0
	for _, c := range res.Checks {
		if c.Passed {
			passed++
		} else {
			failed++
		}
	}

	status := "ok"
	if validate.Failed(res.Checks) {
		status = "review"
	}
	entry := runlog.Entry{
		Timestamp:    time.Now().UTC(),
		Period:       period,
		Accounts:     res.Accounts,
		Leaves:       len(res.Leaves),
		Unmapped:     len(res.Unmapped),
		ChecksPassed: passed,
		ChecksFailed: failed,
		Status:       status,
	}
	if err := runlog.Append(filepath.Dir(mappingPath), []runlog.Entry{entry}); err != nil {
		return fmt.Errorf("appending run log: %w", err)
	}

	cmd.Println()
	cmd.Printf("%d accounts, %d leaves, %d unmapped; %d/%d checks passed (%s)\n",
		res.Accounts, len(res.Leaves), len(res.Unmapped), passed, len(res.Checks), status)
	return nil
}
