package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nstehr/quartermaster/loadout"
	"github.com/nstehr/quartermaster/model"
	"github.com/nstehr/quartermaster/scenario"
)

// requestFlags are the per-request knobs shared by generate and batch.
type requestFlags struct {
	teams        []string
	seed         int64
	fillRatio    float64
	randomizeAll bool
	noBombs      bool
	format       string
}

func (f *requestFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&f.teams, "team", "t", nil, "Team(s) to reconfigure (default: every team)")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "Random seed (0 picks one and reports it)")
	cmd.Flags().Float64Var(&f.fillRatio, "fill-ratio", 0, "Load bins to this fraction of capacity (0 uses tuning)")
	cmd.Flags().BoolVar(&f.randomizeAll, "randomize-all", false, "Fill bins with no imperative with random munitions")
	cmd.Flags().BoolVar(&f.noBombs, "no-bombs", false, "Skip external ordnance")
	cmd.Flags().StringVarP(&f.format, "format", "f", "yaml", "Output format: yaml or json")
}

func newGenerateCommand(s *settings) *cobra.Command {
	f := &requestFlags{}
	cmd := &cobra.Command{
		Use:   "generate <scenario.yaml>",
		Short: "Generate loadouts for the teams in a scenario",
		Long: `Generate reads a scenario file, reconfigures the requested teams and
prints each team's resulting bins and bomb loads.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := s.load()
			if err != nil {
				return err
			}
			results, err := rt.reconfigureFile(cmd.Context(), args[0], f)
			if err != nil {
				return err
			}
			return writeResults(cmd.OutOrStdout(), f.format, results)
		},
	}
	f.register(cmd)
	return cmd
}

// reconfigureFile runs one request per selected team of a scenario file.
// Teams are reconfigured in order against the same session.
func (rt *service) reconfigureFile(ctx context.Context, path string, f *requestFlags) ([]*loadout.Result, error) {
	session, err := scenario.Load(path, rt.catalog)
	if err != nil {
		if scenario.IsInvalid(err) {
			return nil, &ValidationError{Message: err.Error()}
		}
		return nil, err
	}

	teams := f.teams
	if len(teams) == 0 {
		teams = teamNames(session)
	}
	var out []*loadout.Result
	for _, name := range teams {
		res, err := rt.engine.Reconfigure(ctx, loadout.Request{
			Session:      session,
			Team:         name,
			Seed:         f.seed,
			FillRatio:    f.fillRatio,
			RandomizeAll: f.randomizeAll,
			SkipBombs:    f.noBombs,
			Presets:      rt.presets,
			Tuning:       rt.tuning,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		out = append(out, res)
	}
	return out, nil
}

func teamNames(s *model.Session) []string {
	names := make([]string, 0, len(s.Teams))
	for _, t := range s.Teams {
		names = append(names, t.Name)
	}
	return names
}

func writeResults(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want yaml or json)", format)
	}
}
