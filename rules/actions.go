package rules

import (
	"github.com/nstehr/quartermaster/munitions"
	"github.com/nstehr/quartermaster/weights"
)

// maxScaledVotes caps how many times a count-scaled rule votes.
const maxScaledVotes = 3

func increaseGroups(groups ...munitions.Group) ActionFunc {
	return func(_ Params, s *weights.Scorer) {
		for _, g := range groups {
			s.IncreaseGroup(g)
		}
	}
}

func decreaseGroups(groups ...munitions.Group) ActionFunc {
	return func(_ Params, s *weights.Scorer) {
		for _, g := range groups {
			s.DecreaseGroup(g)
		}
	}
}

func zeroGroups(groups ...munitions.Group) ActionFunc {
	return func(_ Params, s *weights.Scorer) {
		for _, g := range groups {
			s.ZeroGroup(g)
		}
	}
}

func increaseNames(names ...string) ActionFunc {
	return func(_ Params, s *weights.Scorer) { s.Increase(names...) }
}

// increaseScaled votes a group once per counted unit, up to maxScaledVotes.
func increaseScaled(g munitions.Group, count func(Params) int) ActionFunc {
	return func(p Params, s *weights.Scorer) {
		s.IncreaseBy(min(count(p), maxScaledVotes), g.Members()...)
	}
}

// ActionSwapGuidedForSeeking answers enemy ECM: guidance is jammed, seekers are not.
func ActionSwapGuidedForSeeking(_ Params, s *weights.Scorer) {
	s.DecreaseGroup(munitions.GroupGuided)
	s.IncreaseGroup(munitions.GroupSeeking)
}

// ActionAntiTSM favors rounds that punish triple-strength myomer.
func ActionAntiTSM(_ Params, s *weights.Scorer) {
	s.Increase("Anti-TSM", "Heat-Seeking")
}

// ActionAntiEnergyBoat pushes heat onto heat-tracking, ammo-free enemies.
func ActionAntiEnergyBoat(_ Params, s *weights.Scorer) {
	s.IncreaseGroup(munitions.GroupHeat)
	s.Increase("Heat-Seeking")
}

// ActionAgainstAdvancedArmor trades armor-piercing for raw damage.
func ActionAgainstAdvancedArmor(_ Params, s *weights.Scorer) {
	s.DecreaseGroup(munitions.GroupArmorPiercing)
	s.IncreaseGroup(munitions.GroupHighPower)
}
