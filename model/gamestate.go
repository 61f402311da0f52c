package model

import (
	"slices"
	"strings"

	"github.com/nstehr/quartermaster/munitions"
)

// Environment is the battlefield the reconfiguration happens for.
type Environment struct {
	Year      int  `json:"year"`
	GroundMap bool `json:"groundMap"`
	Dark      bool `json:"dark"`
}

// Options are the rules toggles that gate munition choice.
type Options struct {
	BlindDrop    bool                `json:"blindDrop,omitempty"`
	NukesBanned  bool                `json:"nukesBanned,omitempty"`
	TrueRandom   bool                `json:"trueRandom,omitempty"`
	EraBasedTech bool                `json:"eraBasedTech,omitempty"`
	MixedTech    bool                `json:"mixedTech,omitempty"`
	ShowExtinct  bool                `json:"showExtinct,omitempty"`
	TechLevel    munitions.TechLevel `json:"techLevel"`
}

// Team is one side's roster plus the identity the rules key on.
type Team struct {
	Name    string   `json:"name"`
	Faction string   `json:"faction"`
	Quality int      `json:"quality"` // 0 (worst) .. 5 (best)
	Pirate  bool     `json:"pirate,omitempty"`
	Enemies []string `json:"enemies,omitempty"`
	Units   []*Unit  `json:"units"`
}

// IsEnemy reports whether other is listed as this team's enemy.
func (t *Team) IsEnemy(other string) bool {
	return slices.ContainsFunc(t.Enemies, func(e string) bool {
		return strings.EqualFold(e, other)
	})
}

// Session is the game collaborator: teams, environment and options.
type Session struct {
	Environment Environment `json:"environment"`
	Options     Options     `json:"options"`
	Teams       []*Team     `json:"teams"`
}

// Team returns the named team or nil.
func (s *Session) Team(name string) *Team {
	for _, t := range s.Teams {
		if strings.EqualFold(t.Name, name) {
			return t
		}
	}
	return nil
}

// Enemies returns every team hostile to the named team. Enmity is symmetric:
// a team is an enemy if either side lists the other.
func (s *Session) Enemies(name string) []*Team {
	self := s.Team(name)
	if self == nil {
		return nil
	}
	var out []*Team
	for _, t := range s.Teams {
		if t == self {
			continue
		}
		if self.IsEnemy(t.Name) || t.IsEnemy(self.Name) {
			out = append(out, t)
		}
	}
	return out
}

// EnemyUnits flattens the rosters of every enemy team.
func (s *Session) EnemyUnits(name string) []*Unit {
	var out []*Unit
	for _, t := range s.Enemies(name) {
		out = append(out, t.Units...)
	}
	return out
}

// EnemyFactions lists the factions of every enemy team.
func (s *Session) EnemyFactions(name string) []string {
	var out []string
	for _, t := range s.Enemies(name) {
		if t.Faction != "" && !slices.Contains(out, t.Faction) {
			out = append(out, t.Faction)
		}
	}
	return out
}
