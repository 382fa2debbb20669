package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ledgerline-dev/ledgerline/internal/config"
)

func newInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a working directory with a starter mapping and template",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd, absDir)
		},
	}

	return cmd
}

func runInit(cmd *cobra.Command, dir string) error {
	for _, d := range []string{"data", "logs", "out"} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	mappingPath := filepath.Join(dir, "mapping.yaml")
	if _, err := os.Stat(mappingPath); err == nil {
		return fmt.Errorf("%s already exists", mappingPath)
	}
	if err := config.SaveMapping(mappingPath, config.DefaultMapping()); err != nil {
		return err
	}

	templatePath := filepath.Join(dir, "template.yaml")
	if _, err := os.Stat(templatePath); err == nil {
		return fmt.Errorf("%s already exists", templatePath)
	}
	if err := config.SaveTemplate(templatePath, config.DefaultTemplate()); err != nil {
		return err
	}

	cmd.Printf("Initialized %s\n", dir)
	cmd.Println("  mapping.yaml   starter VAS mapping registry")
	cmd.Println("  template.yaml  starter statement template")
	cmd.Println("  data/          place trial balance CSVs here")
	return nil
}
