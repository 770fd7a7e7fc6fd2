package player

import (
	"github.com/poorcraft/npc-engine/pkg/resources"
)

// Skill identifies a progression skill tree.
type Skill string

const (
	SkillMining      Skill = "mining"
	SkillBuilding    Skill = "building"
	SkillCombat      Skill = "combat"
	SkillMagic       Skill = "magic"
	SkillCrafting    Skill = "crafting"
	SkillExploration Skill = "exploration"
	SkillFarming     Skill = "farming"
	SkillTrading     Skill = "trading"
)

// Skills lists all skills in a stable order.
var Skills = []Skill{
	SkillMining,
	SkillBuilding,
	SkillCombat,
	SkillMagic,
	SkillCrafting,
	SkillExploration,
	SkillFarming,
	SkillTrading,
}

const skillPointsPerLevel = 3

// Snapshot is the read-only view of a player's progression handed to the
// dialogue subsystem. Agents reference nothing beyond these fields.
type Snapshot struct {
	Level         int `json:"level"`
	ResourceTypes int `json:"resource_types"`
}

// Progression tracks a player's level, skills and resource bag.
// Not safe for concurrent use; it is owned by the player manager and
// only read (via Snapshot) from other subsystems.
type Progression struct {
	level       int
	experience  int
	xpToNext    int
	skillPoints int
	skillLevels map[Skill]int
	resources   map[resources.Type]int
}

// NewProgression creates a level-1 progression with all skills at level 1.
func NewProgression() *Progression {
	p := &Progression{
		level:       1,
		xpToNext:    experienceRequired(1),
		skillLevels: make(map[Skill]int, len(Skills)),
		resources:   make(map[resources.Type]int),
	}
	for _, s := range Skills {
		p.skillLevels[s] = 1
	}
	return p
}

func experienceRequired(level int) int {
	return 100*level + level*level*10
}

// AddExperience grants experience, applying as many level-ups as earned.
func (p *Progression) AddExperience(amount int) {
	p.experience += amount
	for p.experience >= p.xpToNext {
		p.experience -= p.xpToNext
		p.level++
		p.skillPoints += skillPointsPerLevel
		p.xpToNext = experienceRequired(p.level)
	}
}

// UpgradeSkill spends one skill point on a skill.
// Returns false without mutation when no points are available.
func (p *Progression) UpgradeSkill(s Skill) bool {
	if p.skillPoints <= 0 {
		return false
	}
	p.skillLevels[s]++
	p.skillPoints--
	return true
}

// SkillLevel returns the current level for a skill (minimum 1).
func (p *Progression) SkillLevel(s Skill) int {
	if lvl, ok := p.skillLevels[s]; ok {
		return lvl
	}
	return 1
}

// SkillBonus returns the multiplier for a skill: +10% per level past 1.
func (p *Progression) SkillBonus(s Skill) float64 {
	return 1.0 + float64(p.SkillLevel(s)-1)*0.1
}

// AddResource adds to the resource bag.
func (p *Progression) AddResource(t resources.Type, amount int) {
	p.resources[t] += amount
}

// RemoveResource withdraws from the bag. Returns false without mutation
// when the balance is short; balances never go negative.
func (p *Progression) RemoveResource(t resources.Type, amount int) bool {
	if p.resources[t] < amount {
		return false
	}
	p.resources[t] -= amount
	return true
}

// HasResources reports whether every requirement is met.
func (p *Progression) HasResources(requirements map[resources.Type]int) bool {
	for t, amount := range requirements {
		if p.resources[t] < amount {
			return false
		}
	}
	return true
}

// ResourceCount returns the current balance for a resource.
func (p *Progression) ResourceCount(t resources.Type) int {
	return p.resources[t]
}

// Level returns the current player level.
func (p *Progression) Level() int { return p.level }

// Experience returns experience accumulated toward the next level.
func (p *Progression) Experience() int { return p.experience }

// ExperienceToNextLevel returns the remaining requirement for a level-up.
func (p *Progression) ExperienceToNextLevel() int { return p.xpToNext }

// SkillPoints returns unspent skill points.
func (p *Progression) SkillPoints() int { return p.skillPoints }

// LevelProgress returns progress toward the next level in [0, 1).
func (p *Progression) LevelProgress() float64 {
	return float64(p.experience) / float64(p.xpToNext)
}

// Snapshot derives the read-only view consumed by NPC agents.
func (p *Progression) Snapshot() Snapshot {
	return Snapshot{
		Level:         p.level,
		ResourceTypes: len(p.resources),
	}
}
