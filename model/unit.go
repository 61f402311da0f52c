package model

import (
	"slices"
	"strings"

	"github.com/nstehr/quartermaster/munitions"
)

// UnitKind is the broad unit class the context analyzer tallies.
type UnitKind string

const (
	KindMek          UnitKind = "mek"
	KindVehicle      UnitKind = "vehicle"
	KindInfantry     UnitKind = "infantry"
	KindBattleArmor  UnitKind = "battle_armor"
	KindProtoMek     UnitKind = "protomek"
	KindAerospace    UnitKind = "aerospace"
	KindConvFighter  UnitKind = "conventional_fighter"
	KindSmallCraft   UnitKind = "small_craft"
	KindDropShip     UnitKind = "dropship"
	KindGunEmplace   UnitKind = "gun_emplacement"
	KindVTOL         UnitKind = "vtol"
	KindSupportTank  UnitKind = "support_vehicle"
	KindLargeSupport UnitKind = "large_support_vehicle"
)

// Flier reports whether the unit flies (aerospace, conventional fighters, VTOLs, craft).
func (k UnitKind) Flier() bool {
	switch k {
	case KindAerospace, KindConvFighter, KindSmallCraft, KindDropShip, KindVTOL:
		return true
	}
	return false
}

// Vehicle reports whether the unit is any kind of vehicle.
func (k UnitKind) Vehicle() bool {
	switch k {
	case KindVehicle, KindVTOL, KindSupportTank, KindLargeSupport:
		return true
	}
	return false
}

// Equipment names the analyzer and planner look for.
const (
	EquipArtemisIV = "Artemis IV FCS"
	EquipArtemisV  = "Artemis V FCS"
	EquipECM       = "ECM"
	EquipTSM       = "TSM"
	EquipNarc      = "Narc"
	EquipTAG       = "TAG"
)

// Armor types the analyzer groups by.
const (
	ArmorHardened      = "Hardened"
	ArmorFerroLamellor = "Ferro-Lamellor"
	ArmorReactive      = "Reactive"
	ArmorReflective    = "Reflective"
	ArmorFireResistant = "Fire-Resistant"
	ArmorBARFireRes    = "BA Fire Resistant"
)

// RoleMissileBoat is the unit role tag for dedicated missile platforms.
const RoleMissileBoat = "missile_boat"

// Weapon is a mounted weapon. Ammo names the bin type it feeds from ("" for energy weapons).
type Weapon struct {
	Name    string `json:"name"`
	Ammo    string `json:"ammo,omitempty"`
	Missile bool   `json:"missile,omitempty"`
}

// AmmoBin is a single ammunition slot owned by a unit.
type AmmoBin struct {
	ID       int                 `json:"id"`
	Location string              `json:"location,omitempty"`
	Type     *munitions.AmmoType `json:"-"`
	MaxShots int                 `json:"maxShots"`
	Shots    int                 `json:"shots"`
}

// NewAmmoBin creates a full bin of the given type.
func NewAmmoBin(id int, location string, at *munitions.AmmoType) *AmmoBin {
	b := &AmmoBin{ID: id, Location: location}
	b.Assign(at)
	return b
}

// Assign swaps the munition in the bin and refills it to the new type's capacity.
func (b *AmmoBin) Assign(at *munitions.AmmoType) {
	b.Type = at
	if at != nil {
		b.MaxShots = at.Shots
		b.Shots = at.Shots
	}
}

// BinName is the launcher short name of the bin's current ammo, e.g. "LRM-15".
func (b *AmmoBin) BinName() string {
	if b.Type == nil {
		return ""
	}
	return b.Type.BinName
}

// Unit is the slice of an entity the loadout engine reads and mutates.
type Unit struct {
	ID         int                   `json:"id"`
	Chassis    string                `json:"chassis"`
	Model      string                `json:"model"`
	Pilot      string                `json:"pilot,omitempty"`
	Kind       UnitKind              `json:"kind"`
	Clan       bool                  `json:"clan,omitempty"`
	Weight     float64               `json:"weight"`
	WalkMP     int                   `json:"walkMP"`
	SafeThrust int                   `json:"safeThrust,omitempty"`
	TracksHeat bool                  `json:"tracksHeat,omitempty"`
	OffBoard   bool                  `json:"offBoard,omitempty"`
	Bomber     bool                  `json:"bomber,omitempty"`
	Roles      []string              `json:"roles,omitempty"`
	Equipment  []string              `json:"equipment,omitempty"`
	Armor      []string              `json:"armor,omitempty"` // armor type per location
	Weapons    []Weapon              `json:"weapons,omitempty"`
	Bins       []*AmmoBin            `json:"bins,omitempty"`
	Bombs      munitions.BombLoadout `json:"-"`
}

// DisplayName is "Chassis Model".
func (u *Unit) DisplayName() string {
	return strings.TrimSpace(u.Chassis + " " + u.Model)
}

// PilotKey is the pilot name used for imperative lookups; units without one use "any".
func (u *Unit) PilotKey() string {
	if u.Pilot == "" {
		return "any"
	}
	return u.Pilot
}

// ImperativeKeys is the chassis/model/pilot path a unit's imperatives live under.
func (u *Unit) ImperativeKeys() []string {
	return []string{u.Chassis, u.Model, u.PilotKey()}
}

// HasEquipment reports whether the unit mounts the named equipment (case-insensitive).
func (u *Unit) HasEquipment(name string) bool {
	return slices.ContainsFunc(u.Equipment, func(e string) bool {
		return strings.EqualFold(e, name)
	})
}

// HasRole reports whether the unit carries the given role tag.
func (u *Unit) HasRole(role string) bool {
	return slices.ContainsFunc(u.Roles, func(r string) bool {
		return strings.EqualFold(r, role)
	})
}

// HasArmor reports whether any location uses one of the given armor types.
func (u *Unit) HasArmor(types ...string) bool {
	for _, a := range u.Armor {
		for _, t := range types {
			if strings.EqualFold(a, t) {
				return true
			}
		}
	}
	return false
}

// Armed reports whether the unit mounts any weapon.
func (u *Unit) Armed() bool { return len(u.Weapons) > 0 }

// MissileFraction is the share of mounted weapons that are missile launchers.
func (u *Unit) MissileFraction() float64 {
	if len(u.Weapons) == 0 {
		return 0
	}
	n := 0
	for _, w := range u.Weapons {
		if w.Missile {
			n++
		}
	}
	return float64(n) / float64(len(u.Weapons))
}

// WeaponCount counts weapons feeding from the given bin type.
func (u *Unit) WeaponCount(binName string) int {
	n := 0
	for _, w := range u.Weapons {
		if strings.EqualFold(w.Ammo, binName) {
			n++
		}
	}
	return n
}

// BinCount counts ammo bins currently holding ammo for the given bin type.
func (u *Unit) BinCount(binName string) int {
	n := 0
	for _, b := range u.Bins {
		if strings.EqualFold(b.BinName(), binName) {
			n++
		}
	}
	return n
}
