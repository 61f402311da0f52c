// Package scenario loads YAML scenario files into a model.Session. Files are
// checked against an embedded JSON schema before they are decoded, and ammo
// names are resolved against the catalogue.
package scenario

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/nstehr/quartermaster/model"
	"github.com/nstehr/quartermaster/munitions"
)

//go:embed scenario.schema.json
var schemaJSON string

var (
	schema  = mustCompileSchema(schemaJSON, "scenario.schema.json")
	printer = message.NewPrinter(language.English)
)

func mustCompileSchema(raw, name string) *jsonschema.Schema {
	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		panic(fmt.Sprintf("failed to parse embedded %s: %v", name, err))
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(name, doc); err != nil {
		panic(fmt.Sprintf("failed to add %s resource: %v", name, err))
	}
	s, err := c.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("failed to compile %s: %v", name, err))
	}
	return s
}

// InvalidError lists every problem found in a scenario document.
type InvalidError struct {
	Problems []string
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("invalid scenario: %s", strings.Join(e.Problems, "; "))
}

// IsInvalid reports whether err is (or wraps) an InvalidError.
func IsInvalid(err error) bool {
	var ie *InvalidError
	return errors.As(err, &ie)
}

type file struct {
	Year      int     `yaml:"year"`
	GroundMap *bool   `yaml:"ground_map"`
	Dark      bool    `yaml:"dark"`
	Options   options `yaml:"options"`
	Teams     []team  `yaml:"teams"`
}

type options struct {
	BlindDrop    bool   `yaml:"blind_drop"`
	NukesBanned  bool   `yaml:"nukes_banned"`
	TrueRandom   bool   `yaml:"true_random"`
	EraBasedTech bool   `yaml:"era_based_tech"`
	MixedTech    bool   `yaml:"mixed_tech"`
	ShowExtinct  bool   `yaml:"show_extinct"`
	TechLevel    string `yaml:"tech_level"`
}

type team struct {
	Name    string   `yaml:"name"`
	Faction string   `yaml:"faction"`
	Quality *int     `yaml:"quality"`
	Pirate  bool     `yaml:"pirate"`
	Enemies []string `yaml:"enemies"`
	Units   []unit   `yaml:"units"`
}

type unit struct {
	ID         int      `yaml:"id"`
	Chassis    string   `yaml:"chassis"`
	Model      string   `yaml:"model"`
	Pilot      string   `yaml:"pilot"`
	Kind       string   `yaml:"kind"`
	Clan       bool     `yaml:"clan"`
	Weight     float64  `yaml:"weight"`
	WalkMP     int      `yaml:"walk_mp"`
	SafeThrust int      `yaml:"safe_thrust"`
	TracksHeat bool     `yaml:"tracks_heat"`
	OffBoard   bool     `yaml:"off_board"`
	Bomber     bool     `yaml:"bomber"`
	Roles      []string `yaml:"roles"`
	Equipment  []string `yaml:"equipment"`
	Armor      []string `yaml:"armor"`
	Weapons    []weapon `yaml:"weapons"`
	Bins       []bin    `yaml:"bins"`
}

type weapon struct {
	Name    string `yaml:"name"`
	Ammo    string `yaml:"ammo"`
	Missile bool   `yaml:"missile"`
}

type bin struct {
	Location string `yaml:"location"`
	Type     string `yaml:"type"`
	Shots    *int   `yaml:"shots"`
}

// defaultQuality is a regular-rated force.
const defaultQuality = 3

// Load reads and parses a scenario file.
func Load(path string, cat *munitions.Catalog) (*model.Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	s, err := Parse(data, cat)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Validate returns the schema and catalogue problems in data, nil when clean.
func Validate(data []byte, cat *munitions.Catalog) []string {
	_, err := Parse(data, cat)
	if err == nil {
		return nil
	}
	var ie *InvalidError
	if errors.As(err, &ie) {
		return ie.Problems
	}
	return []string{err.Error()}
}

// Parse validates data and builds a session. A nil catalogue uses the
// built-in one.
func Parse(data []byte, cat *munitions.Catalog) (*model.Session, error) {
	if cat == nil {
		cat = munitions.DefaultCatalog()
	}
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &InvalidError{Problems: []string{fmt.Sprintf("YAML parse error: %v", err)}}
	}
	if problems := validateSchema(doc); len(problems) > 0 {
		return nil, &InvalidError{Problems: problems}
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding scenario: %w", err)
	}
	return f.session(cat)
}

func validateSchema(doc any) []string {
	err := schema.Validate(doc)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return []string{fmt.Sprintf("schema: %v", err)}
	}
	var out []string
	collect(ve, &out)
	return out
}

func collect(ve *jsonschema.ValidationError, out *[]string) {
	if len(ve.Causes) == 0 {
		*out = append(*out, fmt.Sprintf("/%s: %s", strings.Join(ve.InstanceLocation, "/"), ve.ErrorKind.LocalizedString(printer)))
		return
	}
	for _, c := range ve.Causes {
		collect(c, out)
	}
}

func (f *file) session(cat *munitions.Catalog) (*model.Session, error) {
	s := &model.Session{
		Environment: model.Environment{Year: f.Year, GroundMap: true, Dark: f.Dark},
		Options: model.Options{
			BlindDrop:    f.Options.BlindDrop,
			NukesBanned:  f.Options.NukesBanned,
			TrueRandom:   f.Options.TrueRandom,
			EraBasedTech: f.Options.EraBasedTech,
			MixedTech:    f.Options.MixedTech,
			ShowExtinct:  f.Options.ShowExtinct,
			TechLevel:    munitions.ParseTechLevel(f.Options.TechLevel),
		},
	}
	if f.GroundMap != nil {
		s.Environment.GroundMap = *f.GroundMap
	}

	var problems []string
	names := make(map[string]bool)
	nextID := 1
	for ti, t := range f.Teams {
		key := strings.ToLower(t.Name)
		if names[key] {
			problems = append(problems, fmt.Sprintf("/teams/%d: duplicate team %q", ti, t.Name))
		}
		names[key] = true

		mt := &model.Team{
			Name:    t.Name,
			Faction: t.Faction,
			Quality: defaultQuality,
			Pirate:  t.Pirate,
			Enemies: t.Enemies,
		}
		if t.Quality != nil {
			mt.Quality = *t.Quality
		}
		for ui, u := range t.Units {
			id := u.ID
			if id == 0 {
				id = nextID
			}
			nextID = max(nextID, id) + 1
			mu, errs := u.unit(id, cat)
			for _, e := range errs {
				problems = append(problems, fmt.Sprintf("/teams/%d/units/%d/%s", ti, ui, e))
			}
			mt.Units = append(mt.Units, mu)
		}
		s.Teams = append(s.Teams, mt)
	}
	for ti, t := range f.Teams {
		for _, e := range t.Enemies {
			if !names[strings.ToLower(e)] {
				problems = append(problems, fmt.Sprintf("/teams/%d/enemies: unknown team %q", ti, e))
			}
		}
	}
	if len(problems) > 0 {
		return nil, &InvalidError{Problems: problems}
	}
	return s, nil
}

func (u *unit) unit(id int, cat *munitions.Catalog) (*model.Unit, []string) {
	mu := &model.Unit{
		ID:         id,
		Chassis:    u.Chassis,
		Model:      u.Model,
		Pilot:      u.Pilot,
		Kind:       model.UnitKind(u.Kind),
		Clan:       u.Clan,
		Weight:     u.Weight,
		WalkMP:     u.WalkMP,
		SafeThrust: u.SafeThrust,
		TracksHeat: u.TracksHeat,
		OffBoard:   u.OffBoard,
		Bomber:     u.Bomber,
		Roles:      u.Roles,
		Equipment:  u.Equipment,
		Armor:      u.Armor,
	}
	for _, w := range u.Weapons {
		mu.Weapons = append(mu.Weapons, model.Weapon{Name: w.Name, Ammo: w.Ammo, Missile: w.Missile})
	}
	var problems []string
	for bi, b := range u.Bins {
		at := cat.ByName(b.Type)
		if at == nil {
			msg := fmt.Sprintf("bins/%d: unknown ammo %q", bi, b.Type)
			if s := cat.SuggestAmmo(b.Type); s != "" {
				msg += fmt.Sprintf(" (did you mean %q?)", s)
			}
			problems = append(problems, msg)
			continue
		}
		mb := model.NewAmmoBin(bi+1, b.Location, at)
		if b.Shots != nil {
			mb.Shots = min(*b.Shots, mb.MaxShots)
		}
		mu.Bins = append(mu.Bins, mb)
	}
	return mu, problems
}
