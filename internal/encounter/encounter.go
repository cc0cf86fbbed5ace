// Package encounter rolls against the catalog's outcome tables and reports
// what was rolled and what it means. It never applies effects.
package encounter

import (
	"fmt"

	"wagontrail/internal/catalog"
	"wagontrail/internal/dice"
	"wagontrail/internal/errs"
)

// Kind names an outcome table.
type Kind string

const (
	Hunting     Kind = "hunting"
	Fishing     Kind = "fishing"
	RandomEvent Kind = "randomEvent"
	Tesla       Kind = "tesla"
)

// ParseKind accepts a table name as used in URLs and forms.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case Hunting, Fishing, RandomEvent, Tesla:
		return k, nil
	case "event", "random-event", "random":
		return RandomEvent, nil
	}
	return "", errs.WithMetadata(errs.CodeInvalidInput, fmt.Sprintf("unknown table %q", s),
		map[string]string{"table": s})
}

// Result is one resolved roll. Exactly one of the outcome fields is set,
// matching Kind. A hunting roll in the redirect band carries the nested
// random-event roll in Nested.
type Result struct {
	Kind       Kind                  `json:"kind"`
	Roll       int                   `json:"roll"`
	Hunt       *catalog.HuntOutcome  `json:"hunt,omitempty"`
	Fish       *catalog.FishOutcome  `json:"fish,omitempty"`
	Event      catalog.Event         `json:"event,omitempty"`
	EventKind  catalog.EventKind     `json:"eventKind,omitempty"`
	Tesla      *catalog.TeslaOutcome `json:"tesla,omitempty"`
	Redirected bool                  `json:"redirected"`
	Nested     *Result               `json:"nested,omitempty"`
}

// Title is a short label for the outcome.
func (r Result) Title() string {
	switch {
	case r.Nested != nil:
		return r.Nested.Title()
	case r.Hunt != nil:
		return r.Hunt.Name
	case r.Fish != nil:
		return r.Fish.Name
	case r.Event != nil:
		return r.Event.Header().Title
	case r.Tesla != nil:
		return r.Tesla.Name
	}
	return ""
}

// Rolls lists every roll made, outer first.
func (r Result) Rolls() []int {
	rolls := []int{r.Roll}
	if r.Nested != nil {
		rolls = append(rolls, r.Nested.Rolls()...)
	}
	return rolls
}

// Resolver resolves rolls against a catalog. It holds no state between calls.
type Resolver struct {
	Catalog *catalog.Catalog
}

func New(cat *catalog.Catalog) *Resolver {
	return &Resolver{Catalog: cat}
}

// Max returns the highest roll of the kind's table.
func (r *Resolver) Max(kind Kind) (int, error) {
	switch kind {
	case Hunting:
		return r.Catalog.Hunting.Max(), nil
	case Fishing:
		return r.Catalog.Fishing.Max(), nil
	case RandomEvent:
		return r.Catalog.Events.Max(), nil
	case Tesla:
		return r.Catalog.Tesla.Max(), nil
	}
	return 0, errs.New(errs.CodeInvalidInput, fmt.Sprintf("unknown table %q", kind))
}

// RollAndResolve draws one roll over the table's domain and resolves it. A
// hunting roll in the redirect band draws exactly one more roll against the
// random-event table.
func (r *Resolver) RollAndResolve(kind Kind, rng dice.Source) (Result, error) {
	hi, err := r.Max(kind)
	if err != nil {
		return Result{}, err
	}
	res, err := r.Resolve(kind, rng.Draw(1, hi))
	if err != nil {
		return Result{}, err
	}
	if res.Redirected {
		nested, err := r.RollAndResolve(RandomEvent, rng)
		if err != nil {
			return Result{}, fmt.Errorf("redirected event: %w", err)
		}
		res.Nested = &nested
	}
	return res, nil
}

// Resolve maps a known roll onto kind's table. A redirect is flagged but the
// nested roll is left to the caller.
func (r *Resolver) Resolve(kind Kind, roll int) (Result, error) {
	res := Result{Kind: kind, Roll: roll}
	switch kind {
	case Hunting:
		o, err := r.Catalog.Hunting.Resolve(roll)
		if err != nil {
			return Result{}, err
		}
		res.Hunt = &o
		res.Redirected = o.RandomEvent
	case Fishing:
		o, err := r.Catalog.Fishing.Resolve(roll)
		if err != nil {
			return Result{}, err
		}
		res.Fish = &o
	case RandomEvent:
		e, err := r.Catalog.Events.Resolve(roll)
		if err != nil {
			return Result{}, err
		}
		res.Event = e
		res.EventKind = e.Kind()
	case Tesla:
		o, err := r.Catalog.Tesla.Resolve(roll)
		if err != nil {
			return Result{}, err
		}
		res.Tesla = &o
	default:
		return Result{}, errs.New(errs.CodeInvalidInput, fmt.Sprintf("unknown table %q", kind))
	}
	return res, nil
}

// ResolveRedirect fills in the nested random-event roll of a redirected
// hunting result.
func (r *Resolver) ResolveRedirect(res Result, roll int) (Result, error) {
	if !res.Redirected {
		return Result{}, errs.New(errs.CodeInvalidState, "roll was not redirected")
	}
	nested, err := r.Resolve(RandomEvent, roll)
	if err != nil {
		return Result{}, err
	}
	res.Nested = &nested
	return res, nil
}
