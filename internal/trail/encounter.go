package trail

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"wagontrail/internal/catalog"
	"wagontrail/internal/combat"
	"wagontrail/internal/dice"
	"wagontrail/internal/encounter"
	"wagontrail/internal/errs"
	"wagontrail/internal/game"
)

// Supplies an encounter needs.
const (
	Ammunition  = "ammunition"
	FishingPole = "fishing_pole"
)

// Outcome is the committed result of an encounter or decision.
type Outcome struct {
	Result      *encounter.Result `json:"result,omitempty"`
	Description string            `json:"description"`
	Pending     *game.Pending     `json:"pending,omitempty"`
	Combat      *combat.Snapshot  `json:"combat,omitempty"`
	Train       game.WagonTrain   `json:"train"`
}

func (w *tx) outcome(res *encounter.Result) Outcome {
	o := Outcome{
		Result:      res,
		Description: strings.Join(w.notes, "; "),
		Pending:     w.Train.Pending,
		Train:       w.Train,
	}
	if w.Combat != nil {
		s := w.Combat.Snapshot()
		o.Combat = &s
	}
	return o
}

// Encounter rolls against kind's table and applies the outcome. rolls, when
// given, are dice rolled by hand at the table and are used before any drawn
// ones. Hunting spends one box of ammunition; fishing needs a fishing pole.
// A decision event is left pending until Decide.
func (e *Engine) Encounter(ctx context.Context, id string, kind encounter.Kind, rolls ...int) (Outcome, error) {
	if kind == encounter.Tesla {
		return Outcome{}, errs.New(errs.CodeInvalidInput, "the Tesla gun is rolled as part of a combat attack")
	}
	var res encounter.Result
	w, err := e.mutate(ctx, id, "encounter:"+string(kind), func(w *tx) error {
		if err := e.ready(w); err != nil {
			return err
		}
		switch kind {
		case encounter.Hunting:
			if err := w.Train.RemoveItem(Ammunition, 1); err != nil {
				return fmt.Errorf("hunting needs ammunition: %w", err)
			}
		case encounter.Fishing:
			if w.Train.Quantity(FishingPole) < 1 {
				return errs.WithMetadata(errs.CodeInsufficientStock, "fishing needs a fishing pole",
					map[string]string{"item": FishingPole})
			}
		}
		var err error
		res, err = e.roll(kind, rolls)
		if err != nil {
			return err
		}
		return e.applyResult(w, res)
	})
	if err != nil {
		return Outcome{}, err
	}
	return w.outcome(&res), nil
}

// ready rejects encounters while a decision or a fight is unresolved.
func (e *Engine) ready(w *tx) error {
	if err := w.Train.Mutable(); err != nil {
		return err
	}
	if w.Train.Pending != nil {
		return errs.New(errs.CodeInvalidState, fmt.Sprintf("decision %q is pending", w.Train.Pending.Title))
	}
	if w.inCombat() {
		return errs.New(errs.CodeInvalidState, "a fight is in progress")
	}
	return nil
}

func (e *Engine) roll(kind encounter.Kind, rolls []int) (encounter.Result, error) {
	res, err := e.resolver.RollAndResolve(kind, e.source(rolls))
	if err != nil && len(rolls) > 0 && errors.Is(err, errs.ErrOutOfRange) {
		return encounter.Result{}, errs.Wrap(errs.CodeInvalidInput, "entered roll is not on the table", err)
	}
	return res, err
}

func (e *Engine) source(rolls []int) dice.Source {
	if len(rolls) == 0 {
		return e.Rand
	}
	return &entered{values: rolls, fallback: e.Rand}
}

func (e *Engine) applyResult(w *tx, res encounter.Result) error {
	switch {
	case res.Nested != nil:
		return e.applyResult(w, *res.Nested)
	case res.Hunt != nil:
		w.note(res.Hunt.Text)
		if res.Hunt.Enemy != "" {
			return e.startCombat(w, res.Hunt.Enemy, 1)
		}
		return w.apply(e.Catalog, res.Hunt.Effect)
	case res.Fish != nil:
		w.note(res.Fish.Text)
		return w.apply(e.Catalog, res.Fish.Effect)
	case res.Event != nil:
		return e.applyEvent(w, res.Event, res.Roll)
	}
	return errs.New(errs.CodeInvalidState, "roll resolved to nothing")
}

func (e *Engine) applyEvent(w *tx, ev catalog.Event, roll int) error {
	h := ev.Header()
	w.note(h.Title)
	w.note(h.Text)
	switch ev := ev.(type) {
	case catalog.DecisionEvent:
		w.Train.Pending = &game.Pending{Title: h.Title, Roll: roll}
		keys := make([]string, len(ev.Options))
		for i, o := range ev.Options {
			keys[i] = o.Key
		}
		w.note("choose: " + strings.Join(keys, ", "))
		return nil
	case catalog.LootEvent:
		return w.apply(e.Catalog, ev.Effect)
	case catalog.DamageEvent:
		return w.apply(e.Catalog, ev.Effect)
	case catalog.CombatEvent:
		return e.startCombat(w, ev.Enemy, ev.Count)
	case catalog.RequirementEvent:
		if meets(w.Train, ev.Requires) {
			w.note("requirement met")
			return w.apply(e.Catalog, ev.Pass)
		}
		w.note("requirement not met")
		return w.apply(e.Catalog, ev.Fail)
	}
	return errs.New(errs.CodeInvalidState, fmt.Sprintf("unhandled event kind %q", ev.Kind()))
}

func meets(t game.WagonTrain, r catalog.Requirement) bool {
	if r.Skill != "" {
		return t.PartyHasSkill(r.Skill)
	}
	return t.Quantity(r.Item) >= r.Qty
}

// Decide resolves a pending decision event with the chosen option.
func (e *Engine) Decide(ctx context.Context, id, key string) (Outcome, error) {
	w, err := e.mutate(ctx, id, "decide:"+key, func(w *tx) error {
		if err := w.Train.Mutable(); err != nil {
			return err
		}
		p := w.Train.Pending
		if p == nil {
			return errs.New(errs.CodeInvalidState, "no decision is pending")
		}
		ev, err := e.Catalog.Events.Resolve(p.Roll)
		if err != nil {
			return err
		}
		d, ok := ev.(catalog.DecisionEvent)
		if !ok {
			return errs.New(errs.CodeInvalidState, fmt.Sprintf("event at roll %d is not a decision", p.Roll))
		}
		opt, ok := d.Option(key)
		if !ok {
			keys := make([]string, len(d.Options))
			for i, o := range d.Options {
				keys[i] = o.Key
			}
			return unknown("option", key, keys)
		}
		w.Train.Pending = nil
		w.note(d.Title + ": " + opt.Label)
		return w.apply(e.Catalog, opt.Effect)
	})
	if err != nil {
		return Outcome{}, err
	}
	return w.outcome(nil), nil
}

// entered yields hand-rolled values, then falls back to drawn ones.
type entered struct {
	values   []int
	pos      int
	fallback dice.Source
}

func (s *entered) Draw(min, max int) int {
	if s.pos < len(s.values) {
		v := s.values[s.pos]
		s.pos++
		return v
	}
	return s.fallback.Draw(min, max)
}
