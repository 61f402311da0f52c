package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/nstehr/quartermaster/loadout"
)

// fileResults groups one scenario file's loadouts in batch output.
type fileResults struct {
	Scenario string            `json:"scenario" yaml:"scenario"`
	Results  []*loadout.Result `json:"results" yaml:"results"`
}

func newBatchCommand(s *settings) *cobra.Command {
	f := &requestFlags{}
	var jobs int
	cmd := &cobra.Command{
		Use:   "batch <scenario.yaml>...",
		Short: "Generate loadouts for many scenarios concurrently",
		Long: `Batch runs generate over every scenario file given. Each file is an
independent request; output keeps the argument order.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := s.load()
			if err != nil {
				return err
			}
			if jobs <= 0 {
				return fmt.Errorf("--jobs must be positive, got %d", jobs)
			}

			out := make([]fileResults, len(args))
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(jobs)
			for i, path := range args {
				g.Go(func() error {
					res, err := rt.reconfigureFile(ctx, path, f)
					if err != nil {
						return err
					}
					out[i] = fileResults{Scenario: path, Results: res}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			return writeResults(cmd.OutOrStdout(), f.format, out)
		},
	}
	f.register(cmd)
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "Scenarios processed concurrently")
	return cmd
}
