package trail

import (
	"context"
	"fmt"

	"wagontrail/internal/catalog"
	"wagontrail/internal/combat"
	"wagontrail/internal/encounter"
	"wagontrail/internal/errs"
	"wagontrail/internal/game"
)

// AttackOptions configures one attack. Roll and TeslaRoll are optional
// hand-rolled dice; zero means draw.
type AttackOptions struct {
	Modifier  int  `json:"modifier"`
	Tesla     bool `json:"tesla"`
	Roll      int  `json:"roll,omitempty"`
	TeslaRoll int  `json:"teslaRoll,omitempty"`
}

// CombatOutcome is the committed result of a combat step.
type CombatOutcome struct {
	Attack      *combat.AttackResult `json:"attack,omitempty"`
	Tesla       *encounter.Result    `json:"tesla,omitempty"`
	Description string               `json:"description"`
	Combat      combat.Snapshot      `json:"combat"`
	Train       game.WagonTrain      `json:"train"`
}

func (w *tx) combatOutcome() CombatOutcome {
	o := w.outcome(nil)
	return CombatOutcome{Description: o.Description, Combat: *o.Combat, Train: w.Train}
}

// StartCombat begins a fight against count enemies of one kind.
func (e *Engine) StartCombat(ctx context.Context, id, enemy string, count int) (CombatOutcome, error) {
	w, err := e.mutate(ctx, id, "combat:start", func(w *tx) error {
		if err := e.ready(w); err != nil {
			return err
		}
		return e.startCombat(w, enemy, count)
	})
	if err != nil {
		return CombatOutcome{}, err
	}
	return w.combatOutcome(), nil
}

func (e *Engine) startCombat(w *tx, enemy string, count int) error {
	def, ok := e.Catalog.Enemy(enemy)
	if !ok {
		ids := make([]string, len(e.Catalog.Enemies))
		for i, en := range e.Catalog.Enemies {
			ids[i] = en.ID
		}
		return unknown("enemy", enemy, ids)
	}
	enc, err := combat.New(count, def)
	if err != nil {
		return err
	}
	w.Combat = enc
	if n := len(enc.Enemies()); n > 1 {
		w.note(fmt.Sprintf("%d x %s attack!", n, def.Name))
	} else {
		w.note(def.Name + " attacks!")
	}
	return nil
}

// Combat returns the train's current or most recent fight.
func (e *Engine) Combat(ctx context.Context, id string) (combat.Snapshot, error) {
	if _, err := e.load(ctx, id); err != nil {
		return combat.Snapshot{}, err
	}
	c := e.combat(id)
	if c == nil {
		return combat.Snapshot{}, errs.New(errs.CodeNotFound, fmt.Sprintf("train %s has not fought", id))
	}
	return c.Snapshot(), nil
}

// Attack makes one party attack. With the Tesla gun the Tesla table is
// rolled first for a modifier and possible backfire on the leader. A miss
// lets the targeted enemy strike the leader; if nobody is left standing the
// fight is lost and the journey fails. Winning collects every enemy's reward.
func (e *Engine) Attack(ctx context.Context, id string, opts AttackOptions) (CombatOutcome, error) {
	var (
		attack combat.AttackResult
		tesla  *encounter.Result
	)
	w, err := e.mutate(ctx, id, "combat:attack", func(w *tx) error {
		if err := e.fighting(w); err != nil {
			return err
		}
		if opts.Roll != 0 && (opts.Roll < 1 || opts.Roll > 6) {
			return errs.New(errs.CodeInvalidInput, fmt.Sprintf("attack roll %d is not a d6 face", opts.Roll))
		}
		mod := opts.Modifier
		if opts.Tesla {
			res, err := e.roll(encounter.Tesla, nonZero(opts.TeslaRoll))
			if err != nil {
				return err
			}
			tesla = &res
			mod += res.Tesla.Modifier
			w.note(fmt.Sprintf("Tesla gun: %s (%+d)", res.Tesla.Name, res.Tesla.Modifier))
			if res.Tesla.Backfire > 0 {
				if err := w.apply(e.Catalog, catalog.Effect{Health: -res.Tesla.Backfire, Target: catalog.TargetLeader}); err != nil {
					return err
				}
				if w.Train.ActiveCount() == 0 {
					return w.Combat.Lose()
				}
			}
		}

		var err error
		attack, err = w.Combat.Attack(e.source(nonZero(opts.Roll)), mod, w.Train)
		if err != nil {
			return err
		}
		target := w.Combat.Enemies()[attack.Target]
		if attack.Hit {
			w.note(fmt.Sprintf("rolled %d%+d: hit %s (%d/%d)", attack.Roll, attack.Modifier, target.Name, target.HP, target.MaxHP))
		} else {
			w.note(fmt.Sprintf("rolled %d%+d: miss", attack.Roll, attack.Modifier))
		}

		switch {
		case attack.State == combat.Won:
			return e.collect(w)
		case !attack.Hit && target.Damage > 0:
			w.note(target.Name + " strikes back")
			if err := w.apply(e.Catalog, catalog.Effect{Health: -target.Damage, Target: catalog.TargetLeader}); err != nil {
				return err
			}
			if w.Train.ActiveCount() == 0 {
				return w.Combat.Lose()
			}
		}
		return nil
	})
	if err != nil {
		return CombatOutcome{}, err
	}
	o := w.combatOutcome()
	if w.Combat.State() == combat.Lost {
		o.Description += "; the fight is lost"
	}
	if attack.Roll != 0 {
		o.Attack = &attack
	}
	o.Tesla = tesla
	return o, nil
}

// DamageEnemy is a manual override that removes HP from enemy i.
func (e *Engine) DamageEnemy(ctx context.Context, id string, i, n int) (CombatOutcome, error) {
	w, err := e.mutate(ctx, id, "combat:damage", func(w *tx) error {
		if err := e.fighting(w); err != nil {
			return err
		}
		en, err := w.Combat.Damage(i, n)
		if err != nil {
			return err
		}
		w.note(fmt.Sprintf("%s takes %d (%d/%d)", en.Name, n, en.HP, en.MaxHP))
		if w.Combat.State() == combat.Won {
			return e.collect(w)
		}
		return nil
	})
	if err != nil {
		return CombatOutcome{}, err
	}
	return w.combatOutcome(), nil
}

// HealEnemy is a manual override that restores HP to enemy i.
func (e *Engine) HealEnemy(ctx context.Context, id string, i, n int) (CombatOutcome, error) {
	w, err := e.mutate(ctx, id, "combat:heal", func(w *tx) error {
		if err := e.fighting(w); err != nil {
			return err
		}
		en, err := w.Combat.Heal(i, n)
		if err != nil {
			return err
		}
		w.note(fmt.Sprintf("%s recovers (%d/%d)", en.Name, en.HP, en.MaxHP))
		return nil
	})
	if err != nil {
		return CombatOutcome{}, err
	}
	return w.combatOutcome(), nil
}

// Flee ends the fight with the party escaping.
func (e *Engine) Flee(ctx context.Context, id string) (CombatOutcome, error) {
	w, err := e.mutate(ctx, id, "combat:flee", func(w *tx) error {
		if err := e.fighting(w); err != nil {
			return err
		}
		w.note("the party flees")
		return w.Combat.Flee()
	})
	if err != nil {
		return CombatOutcome{}, err
	}
	return w.combatOutcome(), nil
}

// fighting checks there is an unfinished fight to act on.
func (e *Engine) fighting(w *tx) error {
	switch {
	case w.Combat == nil:
		return errs.New(errs.CodeInvalidState, "no fight in progress")
	case w.Combat.State().Terminal():
		return errs.WithMetadata(errs.CodeEncounterResolved,
			fmt.Sprintf("fight already %s", w.Combat.State()),
			map[string]string{"state": string(w.Combat.State())})
	}
	return w.Train.Mutable()
}

// collect applies the reward of every defeated enemy.
func (e *Engine) collect(w *tx) error {
	w.note("victory")
	for _, en := range w.Combat.Enemies() {
		def, ok := e.Catalog.Enemy(en.Enemy)
		if !ok || def.Reward.IsZero() {
			continue
		}
		if err := w.apply(e.Catalog, def.Reward); err != nil {
			return err
		}
	}
	return nil
}

func nonZero(v int) []int {
	if v == 0 {
		return nil
	}
	return []int{v}
}
