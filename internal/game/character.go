package game

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"wagontrail/internal/catalog"
	"wagontrail/internal/errs"
)

// BaseHealth is every character's max health before job and nationality
// bonuses.
const BaseHealth = 10

const (
	SkillHoly     = "holy"
	SkillMoney    = "money"
	StatusBlessed = "blessed"
)

// CharacterSpec describes a character to create.
type CharacterSpec struct {
	Name        string `json:"name"`
	Job         string `json:"job"`
	Nationality string `json:"nationality"`
	Religion    string `json:"religion"`
	Role        Role   `json:"role"`
}

// NewCharacter builds a character at full health from catalog references.
func NewCharacter(cat *catalog.Catalog, spec CharacterSpec) (Character, error) {
	name := strings.TrimSpace(spec.Name)
	if name == "" {
		return Character{}, errs.New(errs.CodeInvalidInput, "character name is required")
	}
	job, ok := cat.Job(spec.Job)
	if !ok {
		return Character{}, unknownRef("job", spec.Job)
	}
	nat, ok := cat.Nationality(spec.Nationality)
	if !ok {
		return Character{}, unknownRef("nationality", spec.Nationality)
	}
	rel, ok := cat.Religion(spec.Religion)
	if !ok {
		return Character{}, unknownRef("religion", spec.Religion)
	}
	role := spec.Role
	if role == "" {
		role = RoleMember
	}
	if !ValidRole(role) {
		return Character{}, errs.New(errs.CodeInvalidInput, fmt.Sprintf("unknown role %q", role))
	}

	maxHealth := BaseHealth + job.HealthBonus + nat.HealthBonus
	if maxHealth < 1 {
		maxHealth = 1
	}
	c := Character{
		ID:          uuid.NewString(),
		Name:        name,
		Job:         job.ID,
		Nationality: nat.ID,
		Religion:    rel.ID,
		Role:        role,
		Health:      maxHealth,
		MaxHealth:   maxHealth,
	}
	for _, s := range job.Skills {
		c.AddSkill(s)
	}
	for _, s := range rel.Skills {
		c.AddSkill(s)
	}
	if c.HasSkill(SkillHoly) {
		c.HolyCharges = 1
	}
	return c, nil
}

func unknownRef(kind, id string) error {
	return errs.WithMetadata(errs.CodeInvalidInput, fmt.Sprintf("unknown %s %q", kind, id),
		map[string]string{"kind": kind, "id": id})
}

// IsAlive reports whether the character can still act.
func (c Character) IsAlive() bool {
	return !c.Dead && (c.Health > 0 || c.ExtraLife)
}

func (c Character) HasSkill(id string) bool { return slices.Contains(c.Skills, id) }

func (c Character) HasStatus(id string) bool { return slices.Contains(c.Statuses, id) }

// AddSkill adds a skill; duplicates collapse.
func (c *Character) AddSkill(id string) {
	if id != "" && !c.HasSkill(id) {
		c.Skills = append(c.Skills, id)
	}
}

// AddStatus adds a status effect; duplicates collapse.
func (c *Character) AddStatus(id string) {
	if id != "" && !c.HasStatus(id) {
		c.Statuses = append(c.Statuses, id)
	}
}

// RemoveStatus clears a status effect if present.
func (c *Character) RemoveStatus(id string) {
	c.Statuses = slices.DeleteFunc(c.Statuses, func(s string) bool { return s == id })
}

// HealthCap is the highest health the character may reach right now.
func (c Character) HealthCap() int {
	if c.HasStatus(StatusBlessed) {
		return c.MaxHealth + 1
	}
	return c.MaxHealth
}

// Damage removes n health, floored at 0. At 0 a holy charge revives the
// character to 1; otherwise an unconsumed extra life keeps them standing at 0
// until the next hit or heal; otherwise they die. It reports what happened.
func (c *Character) Damage(n int) (string, error) {
	if n < 0 {
		return "", errs.New(errs.CodeInvalidInput, "damage must be non-negative")
	}
	if !c.IsAlive() {
		return "", errs.New(errs.CodeInvalidState, fmt.Sprintf("%s is dead", c.Name))
	}
	if n == 0 {
		return "", nil
	}
	wasDown := c.Health == 0
	c.Health -= n
	if c.Health > 0 {
		return fmt.Sprintf("%s loses %d health", c.Name, n), nil
	}
	c.Health = 0
	switch {
	case c.HolyCharges > 0:
		c.HolyCharges--
		c.Health = 1
		return fmt.Sprintf("%s falls, but is raised by a holy blessing", c.Name), nil
	case c.ExtraLife && !wasDown:
		return fmt.Sprintf("%s is down but clinging to life", c.Name), nil
	default:
		c.ExtraLife = false
		c.Dead = true
		return fmt.Sprintf("%s has died", c.Name), nil
	}
}

// Heal restores n health up to HealthCap. Getting back up from 0 spends the
// extra life that kept the character standing.
func (c *Character) Heal(n int) (string, error) {
	if n < 0 {
		return "", errs.New(errs.CodeInvalidInput, "heal must be non-negative")
	}
	if !c.IsAlive() {
		return "", errs.New(errs.CodeInvalidState, fmt.Sprintf("%s is dead", c.Name))
	}
	before := c.Health
	c.Health += n
	if ceiling := c.HealthCap(); c.Health > ceiling {
		c.Health = ceiling
	}
	if before == 0 && c.Health > 0 {
		c.ExtraLife = false
	}
	return fmt.Sprintf("%s recovers %d health", c.Name, c.Health-before), nil
}

func (c Character) clone() Character {
	c.Skills = slices.Clone(c.Skills)
	c.Statuses = slices.Clone(c.Statuses)
	return c
}
