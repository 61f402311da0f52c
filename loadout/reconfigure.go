// Package loadout runs one reconfiguration request end to end: context
// analysis, weight voting, imperative planning, bin allocation and bomb
// generation. Every request builds its own scorer, tree and random source,
// so concurrent requests share nothing mutable.
package loadout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/nstehr/quartermaster/allocator"
	"github.com/nstehr/quartermaster/config"
	"github.com/nstehr/quartermaster/imperative"
	"github.com/nstehr/quartermaster/model"
	"github.com/nstehr/quartermaster/munitions"
	"github.com/nstehr/quartermaster/ordnance"
	"github.com/nstehr/quartermaster/rules"
	"github.com/nstehr/quartermaster/weights"
)

// ErrUnknownTeam is returned when the requested team is not in the session.
var ErrUnknownTeam = errors.New("unknown team")

// Request is one reconfiguration of one team.
type Request struct {
	ID           string            // generated when empty
	Session      *model.Session
	Team         string
	Seed         int64             // 0 picks a fresh seed, reported in the Result
	FillRatio    float64           // 0 uses tuning (or the pirate draw)
	RandomizeAll bool              // bins without imperatives get Random munitions
	Presets      *imperative.Tree  // seeds the tree before planning; cloned, never mutated
	Tuning       *config.Tuning    // nil uses built-in defaults
	SkipBombs    bool
}

// BinResult is one ammo bin after allocation.
type BinResult struct {
	ID       int    `json:"id" yaml:"id"`
	Location string `json:"location,omitempty" yaml:"location,omitempty"`
	Ammo     string `json:"ammo" yaml:"ammo"`
	Shots    int    `json:"shots" yaml:"shots"`
	MaxShots int    `json:"maxShots" yaml:"max_shots"`
}

// UnitResult is one unit's final loadout.
type UnitResult struct {
	ID        int            `json:"id" yaml:"id"`
	Name      string         `json:"name" yaml:"name"`
	Bins      []BinResult    `json:"bins,omitempty" yaml:"bins,omitempty"`
	BombTable string         `json:"bombTable,omitempty" yaml:"bomb_table,omitempty"`
	Bombs     map[string]int `json:"bombs,omitempty" yaml:"bombs,omitempty"`
}

// Result reports what a request did.
type Result struct {
	RequestID  string       `json:"requestId" yaml:"request_id"`
	Team       string       `json:"team" yaml:"team"`
	Seed       int64        `json:"seed" yaml:"seed"`
	FillRatio  float64      `json:"fillRatio" yaml:"fill_ratio"`
	AirToAir   bool         `json:"airToAir" yaml:"air_to_air"`
	FiredRules []string     `json:"firedRules" yaml:"fired_rules"`
	Units      []UnitResult `json:"units" yaml:"units"`
}

// Engine holds what requests share read-only: the catalogue, optionally a
// host-supplied legality oracle, and the rule planners compiled so far, one
// per tuning.
type Engine struct {
	catalog  *munitions.Catalog
	legality munitions.Legality
	defaults *config.Tuning

	mu       sync.Mutex
	planners map[*config.Tuning]*rules.Planner
}

// NewEngine returns an Engine. A nil legality picks the built-in oracle per
// request: era tables with era-based tech on, tech level only otherwise.
func NewEngine(cat *munitions.Catalog, legality munitions.Legality) *Engine {
	if cat == nil {
		cat = munitions.DefaultCatalog()
	}
	return &Engine{
		catalog:  cat,
		legality: legality,
		defaults: config.New(),
		planners: make(map[*config.Tuning]*rules.Planner),
	}
}

// planner returns the compiled rule planner for cfg, compiling it on first
// use. Tunings are treated as immutable once handed to the engine.
func (e *Engine) planner(cfg *config.Tuning) (*rules.Planner, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if pl, ok := e.planners[cfg]; ok {
		return pl, nil
	}
	pl, err := rules.NewPlanner(cfg)
	if err != nil {
		return nil, err
	}
	e.planners[cfg] = pl
	slog.Debug("rule planner compiled", "rules", len(pl.Engine().Rules()))
	return pl, nil
}

// Reconfigure mutates the team's ammo bins and bomb loadouts in place and
// returns a report. Data problems degrade the output; errors are reserved for
// an unknown team, rule compilation and cancellation.
func (e *Engine) Reconfigure(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.Session == nil {
		return nil, fmt.Errorf("reconfigure: nil session")
	}
	team := req.Session.Team(req.Team)
	if team == nil {
		return nil, fmt.Errorf("reconfigure %q: %w", req.Team, ErrUnknownTeam)
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.Seed == 0 {
		req.Seed = newSeed()
	}
	cfg := req.Tuning
	if cfg == nil {
		cfg = e.defaults
	}
	log := slog.With("request", req.ID, "team", team.Name)
	rng := NewRNG(req.Seed)
	s := req.Session

	params := rules.Analyze(rules.Input{
		Own:           team.Units,
		Enemy:         s.EnemyUnits(team.Name),
		Environment:   s.Environment,
		Options:       s.Options,
		Faction:       team.Faction,
		EnemyFactions: s.EnemyFactions(team.Name),
		Quality:       team.Quality,
		Pirate:        team.Pirate,
		FastWalkMP:    cfg.Int(config.FastMoverWalkMP),
	})
	params.FillRatio = fillRatio(req, team, cfg, rng.Float64)
	log.Debug("context analyzed", "friendly", params.Friendly, "enemy", params.Enemy, "enemiesVisible", params.EnemiesVisible)

	planner, err := e.planner(cfg)
	if err != nil {
		return nil, fmt.Errorf("reconfigure: %w", err)
	}
	scorer := weights.NewScorer(cfg)
	tree := imperative.New()
	if req.Presets != nil {
		tree = req.Presets.Clone()
	}
	fired := planner.Plan(params, scorer, tree, team.Units)
	scorer.LogState(cfg.Int(config.TopN))

	legal := e.legality
	if legal == nil {
		if s.Options.EraBasedTech {
			legal = munitions.EraTable{}
		} else {
			legal = munitions.Permissive{}
		}
	}
	alloc := allocator.New(e.catalog, legal, rng)
	opts := allocator.Options{
		Legality: munitions.LegalityContext{
			Faction:     team.Faction,
			Year:        s.Environment.Year,
			TechLevel:   s.Options.TechLevel,
			MixedTech:   s.Options.MixedTech,
			ShowExtinct: s.Options.ShowExtinct,
		},
		NukesBanned:  s.Options.NukesBanned,
		TrueRandom:   s.Options.TrueRandom,
		RandomizeAll: req.RandomizeAll,
		FillRatio:    params.FillRatio,
	}
	for _, u := range team.Units {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sum := alloc.Allocate(u, tree, opts)
		log.Debug("unit allocated", "unit", u.DisplayName(), "assigned", sum.Assigned, "defaulted", sum.Defaulted, "untouched", sum.Untouched)
	}

	airToAir := !params.GroundMap ||
		params.EnemyFraction(params.Enemy.Fliers) >= cfg.Get(config.AirToAirFlierFraction)
	tables := make(map[*model.Unit]string)
	if !req.SkipBombs {
		gen := ordnance.New(cfg, rng)
		for _, a := range gen.Generate(ordnance.Request{
			Units:    team.Units,
			Year:     s.Environment.Year,
			AirToAir: airToAir,
			Quality:  team.Quality,
			Pirate:   team.Pirate,
			Bias:     scorer,
		}) {
			tables[a.Unit] = a.Table
		}
	}

	res := &Result{
		RequestID:  req.ID,
		Team:       team.Name,
		Seed:       req.Seed,
		FillRatio:  params.FillRatio,
		AirToAir:   airToAir,
		FiredRules: fired,
		Units:      make([]UnitResult, 0, len(team.Units)),
	}
	for _, u := range team.Units {
		res.Units = append(res.Units, report(u, tables[u]))
	}
	log.Info("team reconfigured", "units", len(res.Units), "rules", len(fired), "seed", req.Seed, "fillRatio", params.FillRatio)
	return res, nil
}

// fillRatio is the request override, else a draw for pirates, else tuning.
func fillRatio(req Request, team *model.Team, cfg *config.Tuning, draw func() float64) float64 {
	if req.FillRatio > 0 {
		return min(req.FillRatio, 1)
	}
	if team.Pirate {
		return min(1, cfg.Get(config.PirateFillMin)+draw()*cfg.Get(config.PirateFillRange))
	}
	return min(1, cfg.Get(config.FillRatio))
}

func report(u *model.Unit, table string) UnitResult {
	r := UnitResult{ID: u.ID, Name: u.DisplayName(), BombTable: table}
	for _, b := range u.Bins {
		ammo := ""
		if b.Type != nil {
			ammo = b.Type.Name
		}
		r.Bins = append(r.Bins, BinResult{ID: b.ID, Location: b.Location, Ammo: ammo, Shots: b.Shots, MaxShots: b.MaxShots})
	}
	if !u.Bombs.Empty() {
		r.Bombs = u.Bombs.Named()
	}
	return r
}
