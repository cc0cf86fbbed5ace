// Package combat runs one fight between a wagon train's party and one or
// more enemies.
//
// An Encounter is a small state machine. It starts InProgress and ends in
// exactly one of Won, Lost or Fled; once ended every mutating call fails with
// errs.ErrEncounterResolved. Party health is not tracked here: callers pass
// the party in so the encounter can refuse attacks from a party with no one
// left standing.
package combat

import (
	"fmt"
	"slices"

	"wagontrail/internal/catalog"
	"wagontrail/internal/dice"
	"wagontrail/internal/errs"
)

// HitThreshold is the attack total needed to land a hit.
const HitThreshold = 4

// State is the lifecycle state of an encounter.
type State string

const (
	InProgress State = "in_progress"
	Won        State = "won"
	Lost       State = "lost"
	Fled       State = "fled"
)

// Terminal reports whether s ends the encounter.
func (s State) Terminal() bool { return s != InProgress }

// EnemyInstance is one enemy in the fight.
type EnemyInstance struct {
	Enemy     string   `json:"enemy"`
	Name      string   `json:"name"`
	HP        int      `json:"hp"`
	MaxHP     int      `json:"maxHp"`
	Damage    int      `json:"damage"`
	Abilities []string `json:"abilities"`
}

// Standing reports whether the enemy can still fight.
func (e EnemyInstance) Standing() bool { return e.HP > 0 }

// Party is the side fighting the enemies.
type Party interface {
	ActiveCount() int
}

// AttackResult reports one attack roll.
type AttackResult struct {
	Roll     int   `json:"roll"`
	Modifier int   `json:"modifier"`
	Total    int   `json:"total"`
	Hit      bool  `json:"hit"`
	Target   int   `json:"target"`
	TargetHP int   `json:"targetHp"`
	State    State `json:"state"`
}

// Encounter is one fight. It is not safe for concurrent use; the trail
// engine serializes access per wagon train.
type Encounter struct {
	state   State
	enemies []EnemyInstance
	log     []Event
}

// New starts an encounter against count copies of each enemy definition, all
// at full HP.
func New(count int, enemies ...catalog.Enemy) (*Encounter, error) {
	if len(enemies) == 0 {
		return nil, errs.New(errs.CodeInvalidInput, "an encounter needs at least one enemy")
	}
	if count < 1 {
		count = 1
	}
	enc := &Encounter{state: InProgress}
	for _, def := range enemies {
		if def.HP <= 0 {
			return nil, errs.New(errs.CodeInvalidInput, fmt.Sprintf("enemy %q has no hp", def.ID))
		}
		for range count {
			enc.enemies = append(enc.enemies, EnemyInstance{
				Enemy:     def.ID,
				Name:      def.Name,
				HP:        def.HP,
				MaxHP:     def.HP,
				Damage:    def.Damage,
				Abilities: slices.Clone(def.Abilities),
			})
		}
	}
	for i, e := range enc.enemies {
		enc.record(Event{Type: EventStarted, Enemy: i, HP: e.HP})
	}
	return enc, nil
}

// State returns the current lifecycle state.
func (c *Encounter) State() State { return c.state }

// Enemies returns a copy of the enemy roster.
func (c *Encounter) Enemies() []EnemyInstance {
	out := make([]EnemyInstance, len(c.enemies))
	for i, e := range c.enemies {
		e.Abilities = slices.Clone(e.Abilities)
		out[i] = e
	}
	return out
}

// Target returns the index of the first standing enemy, or -1.
func (c *Encounter) Target() int {
	for i, e := range c.enemies {
		if e.Standing() {
			return i
		}
	}
	return -1
}

// Attack rolls one d6 and adds modifier. A total of HitThreshold or more
// deals 1 damage to the first standing enemy. The encounter is Won on the
// same call that drops the last enemy.
func (c *Encounter) Attack(rng dice.Source, modifier int, party Party) (AttackResult, error) {
	if err := c.active(); err != nil {
		return AttackResult{}, err
	}
	if party == nil || party.ActiveCount() == 0 {
		return AttackResult{}, errs.New(errs.CodeInvalidState, "no party members can fight")
	}
	target := c.Target()
	roll := dice.D6(rng)
	res := AttackResult{
		Roll:     roll,
		Modifier: modifier,
		Total:    roll + modifier,
		Target:   target,
	}
	res.Hit = res.Total >= HitThreshold
	if res.Hit {
		c.enemies[target].HP--
	}
	res.TargetHP = c.enemies[target].HP
	c.record(Event{
		Type:     EventAttack,
		Enemy:    target,
		Roll:     roll,
		Modifier: modifier,
		Total:    res.Total,
		Hit:      res.Hit,
		Amount:   boolInt(res.Hit),
		HP:       res.TargetHP,
	})
	c.checkWon()
	res.State = c.state
	return res, nil
}

// Damage removes n HP from enemy i, floored at 0.
func (c *Encounter) Damage(i, n int) (EnemyInstance, error) {
	if err := c.adjustable(i, n); err != nil {
		return EnemyInstance{}, err
	}
	e := &c.enemies[i]
	e.HP = max(e.HP-n, 0)
	c.record(Event{Type: EventDamage, Enemy: i, Amount: n, HP: e.HP})
	c.checkWon()
	return *e, nil
}

// Heal restores n HP to enemy i, capped at its max.
func (c *Encounter) Heal(i, n int) (EnemyInstance, error) {
	if err := c.adjustable(i, n); err != nil {
		return EnemyInstance{}, err
	}
	e := &c.enemies[i]
	e.HP = min(e.HP+n, e.MaxHP)
	c.record(Event{Type: EventHeal, Enemy: i, Amount: n, HP: e.HP})
	return *e, nil
}

// Flee ends the encounter with the party escaping.
func (c *Encounter) Flee() error {
	if err := c.active(); err != nil {
		return err
	}
	c.finish(Fled)
	return nil
}

// Lose ends the encounter when the caller finds the whole party is down.
func (c *Encounter) Lose() error {
	if err := c.active(); err != nil {
		return err
	}
	c.finish(Lost)
	return nil
}

func (c *Encounter) active() error {
	if c.state.Terminal() {
		return errs.WithMetadata(errs.CodeEncounterResolved,
			fmt.Sprintf("encounter already %s", c.state),
			map[string]string{"state": string(c.state)})
	}
	return nil
}

func (c *Encounter) adjustable(i, n int) error {
	if err := c.active(); err != nil {
		return err
	}
	if i < 0 || i >= len(c.enemies) {
		return errs.New(errs.CodeInvalidInput, fmt.Sprintf("no enemy at index %d", i))
	}
	if n < 0 {
		return errs.New(errs.CodeInvalidInput, "amount must be non-negative")
	}
	return nil
}

func (c *Encounter) checkWon() {
	if c.Target() < 0 {
		c.finish(Won)
	}
}

func (c *Encounter) finish(s State) {
	c.state = s
	c.record(Event{Type: EventEnded, Enemy: -1, State: s})
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
