package munitions

import (
	"fmt"
	"strings"
	"sync"
)

// TechBase is the technology base an ammo type is manufactured for.
type TechBase int

const (
	TechIS TechBase = iota
	TechClan
)

// Prefix is the name prefix used by catalogue entries ("IS" or "Clan").
func (t TechBase) Prefix() string {
	if t == TechClan {
		return "Clan"
	}
	return "IS"
}

func (t TechBase) String() string { return t.Prefix() }

// TechLevel orders rules levels from introductory to experimental.
type TechLevel int

const (
	LevelIntro TechLevel = iota
	LevelStandard
	LevelAdvanced
	LevelExperimental
)

var levelNames = []string{"intro", "standard", "advanced", "experimental"}

func (l TechLevel) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return "unknown"
	}
	return levelNames[l]
}

// ParseTechLevel maps "intro", "standard", "advanced" or "experimental" to a level.
// Unknown names resolve to LevelAdvanced.
func ParseTechLevel(s string) TechLevel {
	for i, n := range levelNames {
		if strings.EqualFold(n, s) {
			return TechLevel(i)
		}
	}
	return LevelAdvanced
}

// AmmoType is one concrete ammunition an ammo bin can hold.
type AmmoType struct {
	Name     string // catalogue name, e.g. "IS Ammo LRM-15 Thunder"
	BinName  string // launcher short name, e.g. "LRM-15"
	Kind     string // launcher kind used for mount compatibility, e.g. "LRM"
	Rack     int
	Munition string
	Family   Family
	Tech     TechBase
	Level    TechLevel
	Shots    int
	Intro    int
	Extinct  int // 0 when never extinct
	Nuclear  bool
}

// IsStandard reports whether this is the family's plain round.
func (a *AmmoType) IsStandard() bool { return a.Munition == Standard }

func (a *AmmoType) String() string { return a.Name }

// Compatible reports whether b can be loaded into a bin currently holding a.
func Compatible(a, b *AmmoType) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Kind == b.Kind && a.Rack == b.Rack
}

// Catalog indexes every known ammo type.
type Catalog struct {
	types  []*AmmoType
	byName map[string]*AmmoType
	byBin  map[string][]*AmmoType // kind/rack → all munitions for that launcher
	known  map[string]bool        // munition names across all families
}

// NewCatalog builds a catalogue from explicit entries.
func NewCatalog(types []*AmmoType) *Catalog {
	c := &Catalog{
		byName: make(map[string]*AmmoType, len(types)),
		byBin:  make(map[string][]*AmmoType),
		known:  make(map[string]bool),
	}
	for _, at := range types {
		c.types = append(c.types, at)
		c.byName[strings.ToLower(at.Name)] = at
		k := binKey(at.Kind, at.Rack)
		c.byBin[k] = append(c.byBin[k], at)
	}
	for _, f := range Families() {
		for _, m := range f.Munitions() {
			c.known[strings.ToLower(m)] = true
		}
	}
	return c
}

func binKey(kind string, rack int) string { return fmt.Sprintf("%s#%d", kind, rack) }

// ByName looks up an ammo type by catalogue name (case-insensitive).
func (c *Catalog) ByName(name string) *AmmoType {
	return c.byName[strings.ToLower(strings.TrimSpace(name))]
}

// All returns every catalogue entry in insertion order.
func (c *Catalog) All() []*AmmoType {
	return append([]*AmmoType(nil), c.types...)
}

// ValidMunitions lists every ammo type that can be loaded into a bin holding at,
// regardless of tech base or legality.
func (c *Catalog) ValidMunitions(at *AmmoType) []*AmmoType {
	if at == nil {
		return nil
	}
	return append([]*AmmoType(nil), c.byBin[binKey(at.Kind, at.Rack)]...)
}

// Standard constructs the standard ammo name for a launcher and looks it up,
// falling back to the inverted "<prefix> <bin> Ammo" spelling some launchers use.
func (c *Catalog) Standard(tech TechBase, binName string) *AmmoType {
	if at := c.ByName(fmt.Sprintf("%s Ammo %s", tech.Prefix(), binName)); at != nil {
		return at
	}
	return c.ByName(fmt.Sprintf("%s %s Ammo", tech.Prefix(), binName))
}

// KnownMunition reports whether any family lists the munition name.
func (c *Catalog) KnownMunition(name string) bool {
	if strings.EqualFold(name, Random) {
		return true
	}
	return c.known[strings.ToLower(name)]
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// DefaultCatalog returns the built-in catalogue. It is built once and must be
// treated as read-only.
func DefaultCatalog() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog = NewCatalog(buildDefaultTypes())
	})
	return defaultCatalog
}

type launcher struct {
	bin      string
	kind     string
	rack     int
	family   Family
	shots    int
	intro    int
	techs    []TechBase
	inverted bool     // "IS Arrow IV Ammo" rather than "IS Ammo Arrow IV"
	only     []string // restrict to these munitions; nil = whole family
}

type munitionTrait struct {
	intro   int
	extinct int
	level   TechLevel
	clanOK  bool
	isOK    bool
	nuclear bool
}

var bothTechs = []TechBase{TechIS, TechClan}

var launchers = []launcher{
	{bin: "LRM-5", kind: "LRM", rack: 5, family: FamilyLRM, shots: 24, intro: 2300, techs: bothTechs},
	{bin: "LRM-10", kind: "LRM", rack: 10, family: FamilyLRM, shots: 12, intro: 2300, techs: bothTechs},
	{bin: "LRM-15", kind: "LRM", rack: 15, family: FamilyLRM, shots: 8, intro: 2300, techs: bothTechs},
	{bin: "LRM-20", kind: "LRM", rack: 20, family: FamilyLRM, shots: 6, intro: 2300, techs: bothTechs},
	{bin: "MML-5", kind: "MML", rack: 5, family: FamilyLRM, shots: 24, intro: 3068, techs: []TechBase{TechIS},
		only: []string{Standard, ArtemisCapable, DeadFire}},
	{bin: "MML-7", kind: "MML", rack: 7, family: FamilyLRM, shots: 17, intro: 3068, techs: []TechBase{TechIS},
		only: []string{Standard, ArtemisCapable, DeadFire}},
	{bin: "SRM-2", kind: "SRM", rack: 2, family: FamilySRM, shots: 50, intro: 2370, techs: bothTechs},
	{bin: "SRM-4", kind: "SRM", rack: 4, family: FamilySRM, shots: 25, intro: 2370, techs: bothTechs},
	{bin: "SRM-6", kind: "SRM", rack: 6, family: FamilySRM, shots: 15, intro: 2370, techs: bothTechs},
	{bin: "AC/2", kind: "AC", rack: 2, family: FamilyAC, shots: 45, intro: 2300, techs: []TechBase{TechIS}},
	{bin: "AC/5", kind: "AC", rack: 5, family: FamilyAC, shots: 20, intro: 2250, techs: []TechBase{TechIS}},
	{bin: "AC/10", kind: "AC", rack: 10, family: FamilyAC, shots: 10, intro: 2460, techs: []TechBase{TechIS}},
	{bin: "AC/20", kind: "AC", rack: 20, family: FamilyAC, shots: 5, intro: 2500, techs: []TechBase{TechIS}},
	{bin: "L-AC/2", kind: "LAC", rack: 2, family: FamilyAC, shots: 45, intro: 3068, techs: []TechBase{TechIS},
		only: []string{Standard, "Armor-Piercing", "Precision", "Flak", "Tracer"}},
	{bin: "L-AC/5", kind: "LAC", rack: 5, family: FamilyAC, shots: 20, intro: 3068, techs: []TechBase{TechIS},
		only: []string{Standard, "Armor-Piercing", "Precision", "Flak", "Tracer"}},
	{bin: "ATM-3", kind: "ATM", rack: 3, family: FamilyATM, shots: 20, intro: 3054, techs: []TechBase{TechClan}},
	{bin: "ATM-6", kind: "ATM", rack: 6, family: FamilyATM, shots: 10, intro: 3054, techs: []TechBase{TechClan}},
	{bin: "ATM-9", kind: "ATM", rack: 9, family: FamilyATM, shots: 7, intro: 3054, techs: []TechBase{TechClan}},
	{bin: "ATM-12", kind: "ATM", rack: 12, family: FamilyATM, shots: 5, intro: 3055, techs: []TechBase{TechClan}},
	{bin: "Arrow IV", kind: "Arrow IV", rack: 20, family: FamilyArrowIV, shots: 5, intro: 2600, techs: bothTechs, inverted: true},
	{bin: "Long Tom", kind: "Long Tom", rack: 20, family: FamilyArtillery, shots: 5, intro: 2445, techs: bothTechs, inverted: true},
	{bin: "Sniper", kind: "Sniper", rack: 10, family: FamilyArtillery, shots: 10, intro: 2500, techs: bothTechs, inverted: true},
	{bin: "Thumper", kind: "Thumper", rack: 5, family: FamilyArtillery, shots: 20, intro: 2500, techs: bothTechs, inverted: true},
	{bin: "Long Tom Cannon", kind: "Long Tom Cannon", rack: 20, family: FamilyArtilleryCannon, shots: 5, intro: 3012, techs: []TechBase{TechIS}, inverted: true},
	{bin: "Sniper Cannon", kind: "Sniper Cannon", rack: 10, family: FamilyArtilleryCannon, shots: 10, intro: 3012, techs: []TechBase{TechIS}, inverted: true},
	{bin: "Thumper Cannon", kind: "Thumper Cannon", rack: 5, family: FamilyArtilleryCannon, shots: 20, intro: 3012, techs: []TechBase{TechIS}, inverted: true},
	{bin: "Mek Mortar 1", kind: "Mek Mortar", rack: 1, family: FamilyMekMortar, shots: 24, intro: 2531, techs: bothTechs, inverted: true},
	{bin: "Mek Mortar 2", kind: "Mek Mortar", rack: 2, family: FamilyMekMortar, shots: 12, intro: 2531, techs: bothTechs, inverted: true},
	{bin: "Mek Mortar 4", kind: "Mek Mortar", rack: 4, family: FamilyMekMortar, shots: 6, intro: 2531, techs: bothTechs, inverted: true},
	{bin: "Mek Mortar 8", kind: "Mek Mortar", rack: 8, family: FamilyMekMortar, shots: 4, intro: 2531, techs: bothTechs, inverted: true},
	{bin: "Narc", kind: "Narc", rack: 1, family: FamilyNarc, shots: 6, intro: 2587, techs: bothTechs, inverted: true},
}

// Availability data for special munitions. Standard rounds inherit the launcher's intro year.
var munitionTraits = map[string]munitionTrait{
	ArtemisCapable:          {intro: 2598, level: LevelStandard, isOK: true, clanOK: true},
	ArtemisVCapable:         {intro: 3085, level: LevelAdvanced, clanOK: true},
	NarcCapable:             {intro: 2587, level: LevelStandard, isOK: true, clanOK: true},
	DeadFire:                {intro: 3052, level: LevelAdvanced, isOK: true, clanOK: true},
	"Follow The Leader":     {intro: 2750, extinct: 2800, level: LevelExperimental, isOK: true},
	"Fragmentation":         {intro: 2377, level: LevelStandard, isOK: true, clanOK: true},
	"Heat-Seeking":          {intro: 2430, level: LevelAdvanced, isOK: true, clanOK: true},
	"Listen-Kill":           {intro: 3037, level: LevelAdvanced, isOK: true},
	"Semi-Guided":           {intro: 3057, level: LevelAdvanced, isOK: true},
	"Swarm":                 {intro: 3052, level: LevelAdvanced, isOK: true},
	"Swarm-I":               {intro: 3057, level: LevelAdvanced, isOK: true},
	"Thunder":               {intro: 3052, level: LevelAdvanced, isOK: true, clanOK: true},
	"Thunder-Active":        {intro: 3056, level: LevelAdvanced, isOK: true, clanOK: true},
	"Thunder-Augmented":     {intro: 3057, level: LevelAdvanced, isOK: true, clanOK: true},
	"Thunder-Inferno":       {intro: 3056, level: LevelAdvanced, isOK: true, clanOK: true},
	"Thunder-Vibrabomb":     {intro: 3056, level: LevelAdvanced, isOK: true, clanOK: true},
	"Smoke":                 {intro: 1950, level: LevelStandard, isOK: true, clanOK: true},
	"Anti-TSM":              {intro: 3027, level: LevelAdvanced, isOK: true},
	"Mine Clearance":        {intro: 3069, level: LevelAdvanced, isOK: true, clanOK: true},
	"Inferno":               {intro: 2380, level: LevelStandard, isOK: true, clanOK: true},
	"Tandem-Charge":         {intro: 2757, level: LevelAdvanced, isOK: true, clanOK: true},
	"Acid":                  {intro: 3053, level: LevelAdvanced, isOK: true, clanOK: true},
	"Harpoon":               {intro: 2790, level: LevelAdvanced, isOK: true, clanOK: true},
	"Armor-Piercing":        {intro: 3059, level: LevelStandard, isOK: true},
	Caseless:                {intro: 3056, level: LevelAdvanced, isOK: true},
	"Flak":                  {intro: 2310, level: LevelStandard, isOK: true, clanOK: true},
	"Flechette":             {intro: 2310, level: LevelStandard, isOK: true, clanOK: true},
	"Incendiary":            {intro: 3059, level: LevelAdvanced, isOK: true},
	"Precision":             {intro: 3062, level: LevelStandard, isOK: true},
	"Tracer":                {intro: 2300, level: LevelAdvanced, isOK: true},
	"ER":                    {intro: 3054, level: LevelStandard, clanOK: true},
	"HE":                    {intro: 3054, level: LevelStandard, clanOK: true},
	"ADA":                   {intro: 3068, level: LevelAdvanced, isOK: true, clanOK: true},
	"Cluster":               {intro: 2600, level: LevelStandard, isOK: true, clanOK: true},
	"Homing":                {intro: 2600, level: LevelStandard, isOK: true, clanOK: true},
	"Illumination":          {intro: 2600, level: LevelStandard, isOK: true, clanOK: true},
	"Inferno-IV":            {intro: 3055, level: LevelAdvanced, isOK: true, clanOK: true},
	"Laser Inhibiting":      {intro: 3054, level: LevelAdvanced, isOK: true, clanOK: true},
	"Thunder-IV":            {intro: 2600, level: LevelStandard, isOK: true, clanOK: true},
	"Thunder Vibrabomb-IV":  {intro: 3056, level: LevelAdvanced, isOK: true, clanOK: true},
	"Davy Crockett-M":       {intro: 2412, level: LevelExperimental, isOK: true, clanOK: true, nuclear: true},
	"Fuel-Air":              {intro: 3055, level: LevelAdvanced, isOK: true, clanOK: true},
	"Copperhead":            {intro: 2645, level: LevelAdvanced, isOK: true, clanOK: true},
	"FASCAM":                {intro: 2621, level: LevelAdvanced, isOK: true, clanOK: true},
	"Airburst":              {intro: 2540, level: LevelAdvanced, isOK: true, clanOK: true},
	"Anti-personnel":        {intro: 2540, level: LevelAdvanced, isOK: true, clanOK: true},
	"Flare":                 {intro: 2540, level: LevelAdvanced, isOK: true, clanOK: true},
	"Narc Explosive":        {intro: 2600, level: LevelAdvanced, isOK: true, clanOK: true},
}

func buildDefaultTypes() []*AmmoType {
	ammoReducing := make(map[string]bool)
	for _, m := range GroupAmmoReducing.Members() {
		ammoReducing[m] = true
	}

	var out []*AmmoType
	for _, l := range launchers {
		names := l.only
		if names == nil {
			names = l.family.Munitions()
		}
		for _, tech := range l.techs {
			for _, m := range names {
				at := &AmmoType{
					BinName:  l.bin,
					Kind:     l.kind,
					Rack:     l.rack,
					Munition: m,
					Family:   l.family,
					Tech:     tech,
					Level:    LevelIntro,
					Shots:    l.shots,
					Intro:    l.intro,
				}
				if m != Standard {
					tr, ok := munitionTraits[m]
					if !ok {
						continue
					}
					if (tech == TechClan && !tr.clanOK) || (tech == TechIS && !tr.isOK) {
						continue
					}
					at.Level = tr.level
					at.Intro = max(l.intro, tr.intro)
					at.Extinct = tr.extinct
					at.Nuclear = tr.nuclear
					if ammoReducing[m] {
						at.Shots = max(1, l.shots/2)
					}
					if m == Caseless {
						at.Shots = l.shots * 2
					}
				}
				at.Name = ammoName(tech, l.bin, m, l.inverted)
				out = append(out, at)
			}
		}
	}
	return out
}

func ammoName(tech TechBase, bin, munition string, inverted bool) string {
	base := fmt.Sprintf("%s Ammo %s", tech.Prefix(), bin)
	if inverted {
		base = fmt.Sprintf("%s %s Ammo", tech.Prefix(), bin)
	}
	if munition == Standard {
		return base
	}
	return base + " " + munition
}
