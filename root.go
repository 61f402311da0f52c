package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nstehr/quartermaster/config"
	"github.com/nstehr/quartermaster/imperative"
	"github.com/nstehr/quartermaster/loadout"
	"github.com/nstehr/quartermaster/munitions"
)

var version = "dev"

// logLevel is shared with the handler installed in main so --debug can
// lower it after flags are parsed.
var logLevel = new(slog.LevelVar)

// settings are the persistent flags every subcommand reads.
type settings struct {
	debug       bool
	tuningPath  string
	presetsPath string
}

// service is what a command needs to serve requests.
type service struct {
	catalog *munitions.Catalog
	engine  *loadout.Engine
	tuning  *config.Tuning
	presets *imperative.Tree
}

func newRootCommand() *cobra.Command {
	s := &settings{}
	cmd := &cobra.Command{
		Use:   "quartermaster",
		Short: "Quartermaster - munition loadout generation for tabletop battles",
		Long: `Quartermaster reconfigures the ammunition bins and external bomb
loads of a team's units for the battle they are about to fight.

It weighs the opposing force, the map and the era, then fills each bin with
the munitions most likely to matter.`,
		Version:      version,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVar(&s.debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&s.tuningPath, "tuning", "", "YAML file of tuning overrides")
	cmd.PersistentFlags().StringVar(&s.presetsPath, "presets", "", "Preset imperatives (.yaml, or chassis|model|pilot|bin|list lines)")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if s.debug {
			logLevel.Set(slog.LevelDebug)
		}
	}

	cmd.AddCommand(newGenerateCommand(s))
	cmd.AddCommand(newBatchCommand(s))
	cmd.AddCommand(newValidateCommand(s))
	cmd.AddCommand(newServeCommand(s))

	return cmd
}

// load builds the shared runtime from the persistent flags.
func (s *settings) load() (*service, error) {
	rt := &service{catalog: munitions.DefaultCatalog(), tuning: config.New()}
	rt.engine = loadout.NewEngine(rt.catalog, nil)

	if s.tuningPath != "" {
		t, err := config.Load(s.tuningPath)
		if err != nil {
			return nil, err
		}
		rt.tuning = t
		slog.Debug("tuning loaded", "path", s.tuningPath, "values", t.String())
	}

	if s.presetsPath != "" {
		f, err := os.Open(s.presetsPath)
		if err != nil {
			return nil, fmt.Errorf("opening presets: %w", err)
		}
		defer f.Close()

		rt.presets = imperative.New()
		var n int
		switch strings.ToLower(filepath.Ext(s.presetsPath)) {
		case ".yaml", ".yml":
			n, err = rt.presets.LoadPresets(f, rt.catalog)
		default:
			n, err = rt.presets.LoadPresetLines(f, rt.catalog)
		}
		if err != nil {
			return nil, fmt.Errorf("loading presets %s: %w", s.presetsPath, err)
		}
		slog.Info("presets loaded", "path", s.presetsPath, "count", n)
	}
	return rt, nil
}
