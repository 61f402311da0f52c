package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nstehr/quartermaster/munitions"
	"github.com/nstehr/quartermaster/scenario"
)

func newValidateCommand(_ *settings) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <scenario.yaml>...",
		Short: "Check scenario files against the schema and ammo catalogue",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := munitions.DefaultCatalog()
			w := cmd.OutOrStdout()
			bad := 0
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("reading scenario: %w", err)
				}
				problems := scenario.Validate(data, cat)
				if len(problems) == 0 {
					fmt.Fprintf(w, "✓ %s\n", path)
					continue
				}
				bad++
				fmt.Fprintf(w, "✗ %s\n", path)
				for _, p := range problems {
					fmt.Fprintf(w, "    %s\n", p)
				}
			}
			if bad > 0 {
				return &ValidationError{Message: fmt.Sprintf("%d of %d scenario(s) invalid", bad, len(args))}
			}
			return nil
		},
	}
}
