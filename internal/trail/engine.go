// Package trail orchestrates the game engines over stored wagon trains.
//
// Every mutation runs as load, compute on a clone, save, under a per-train
// lock, so two calls against the same train never interleave and a failed
// call leaves nothing behind. Different trains proceed in parallel.
package trail

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	"wagontrail/internal/catalog"
	"wagontrail/internal/combat"
	"wagontrail/internal/dice"
	"wagontrail/internal/economy"
	"wagontrail/internal/encounter"
	"wagontrail/internal/errs"
	"wagontrail/internal/game"
	"wagontrail/internal/scoring"
	"wagontrail/internal/session"
)

// Engine runs every wagon train operation against the catalog and the store.
type Engine struct {
	Catalog *catalog.Catalog
	Store   session.Store[game.WagonTrain]
	Rand    dice.Source
	Logger  *log.Logger
	// Notify, when set, is called with every committed mutation. It runs
	// under the train's lock and must not block.
	Notify  func(Commit)

	resolver *encounter.Resolver
	economy  economy.Model
	locks    *session.Locks

	mu      sync.Mutex
	combats map[string]*combat.Encounter
}

// New wires an engine. A nil rng uses crypto randomness; a nil logger
// discards.
func New(cat *catalog.Catalog, store session.Store[game.WagonTrain], rng dice.Source, logger *log.Logger) *Engine {
	if rng == nil {
		rng = dice.Crypto{}
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Engine{
		Catalog:  cat,
		Store:    store,
		Rand:     rng,
		Logger:   logger,
		resolver: encounter.New(cat),
		economy:  economy.New(cat),
		locks:    session.NewLocks(),
		combats:  map[string]*combat.Encounter{},
	}
}

// Commit describes a saved mutation.
type Commit struct {
	Train       string           `json:"train"`
	Op          string           `json:"op"`
	Description string           `json:"description,omitempty"`
	Summary     game.Summary     `json:"summary"`
	Combat      *combat.Snapshot `json:"combat,omitempty"`
}

func (e *Engine) notify(op string, w *tx) {
	if e.Notify == nil {
		return
	}
	c := Commit{
		Train:       w.Train.ID,
		Op:          op,
		Description: strings.Join(w.notes, "; "),
		Summary:     w.Train.Summarize(),
	}
	if w.Combat != nil {
		s := w.Combat.Snapshot()
		c.Combat = &s
	}
	e.Notify(c)
}

// tx is the working copy of one mutation. Combat is a clone of the train's
// encounter, or nil; it replaces the stored encounter on commit.
type tx struct {
	Train  game.WagonTrain
	Combat *combat.Encounter
	notes  []string
}

func (t *tx) note(s string) {
	if s != "" {
		t.notes = append(t.notes, s)
	}
}

func (t *tx) apply(cat *catalog.Catalog, eff catalog.Effect) error {
	next, desc, err := game.Apply(cat, t.Train, eff)
	if err != nil {
		return err
	}
	t.Train = next
	t.note(desc)
	return nil
}

func (t *tx) inCombat() bool {
	return t.Combat != nil && !t.Combat.State().Terminal()
}

// mutate runs fn under the train's lock and commits its result. On error
// nothing is saved.
func (e *Engine) mutate(ctx context.Context, id, op string, fn func(*tx) error) (*tx, error) {
	unlock := e.locks.Lock(id)
	defer unlock()

	t, err := e.load(ctx, id)
	if err != nil {
		return nil, err
	}
	w := &tx{Train: t.Clone()}
	if c := e.combat(id); c != nil {
		w.Combat = c.Clone()
	}
	if err := fn(w); err != nil {
		e.Logger.Printf("train=%s op=%s rejected: %v", id, op, err)
		return nil, err
	}
	if err := e.Store.Put(ctx, id, w.Train); err != nil {
		return nil, fmt.Errorf("save train %s: %w", id, err)
	}
	e.setCombat(id, w.Combat)
	e.Logger.Printf("train=%s op=%s status=%s stop=%d days=%d cash=%d", id, op,
		w.Train.Status, w.Train.StopIndex, w.Train.Days, w.Train.Cash)
	e.notify(op, w)
	return w, nil
}

// Update applies fn to a copy of the train and saves the result. If fn fails
// the stored train is unchanged.
func (e *Engine) Update(ctx context.Context, id string, fn func(*game.WagonTrain) error) (game.WagonTrain, error) {
	w, err := e.mutate(ctx, id, "update", func(w *tx) error {
		if err := w.Train.Mutable(); err != nil {
			return err
		}
		return fn(&w.Train)
	})
	if err != nil {
		return game.WagonTrain{}, err
	}
	return w.Train, nil
}

func (e *Engine) load(ctx context.Context, id string) (game.WagonTrain, error) {
	t, ok, err := e.Store.Get(ctx, id)
	if err != nil {
		return game.WagonTrain{}, fmt.Errorf("load train %s: %w", id, err)
	}
	if !ok {
		return game.WagonTrain{}, errs.WithMetadata(errs.CodeNotFound,
			fmt.Sprintf("no wagon train %q", id), map[string]string{"train": id})
	}
	return t, nil
}

func (e *Engine) combat(id string) *combat.Encounter {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.combats[id]
}

func (e *Engine) setCombat(id string, c *combat.Encounter) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if c == nil {
		delete(e.combats, id)
		return
	}
	e.combats[id] = c
}

// CreateTrain builds and stores a new wagon train.
func (e *Engine) CreateTrain(ctx context.Context, name string, party []game.CharacterSpec) (game.WagonTrain, error) {
	t, err := game.NewTrain(e.Catalog, name, party)
	if err != nil {
		return game.WagonTrain{}, err
	}
	t.ID = e.Store.NewID()
	if err := e.Store.Put(ctx, t.ID, t); err != nil {
		return game.WagonTrain{}, fmt.Errorf("save train %s: %w", t.ID, err)
	}
	e.Logger.Printf("train=%s op=create name=%q party=%d cash=%d", t.ID, t.Name, len(t.Party), t.Cash)
	e.notify("create", &tx{Train: t})
	return t, nil
}

// Train returns a copy of the stored train.
func (e *Engine) Train(ctx context.Context, id string) (game.WagonTrain, error) {
	t, err := e.load(ctx, id)
	if err != nil {
		return game.WagonTrain{}, err
	}
	return t.Clone(), nil
}

// Trains lists every stored train.
func (e *Engine) Trains(ctx context.Context) ([]game.Summary, error) {
	all, err := e.Store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list trains: %w", err)
	}
	out := make([]game.Summary, 0, len(all))
	for _, t := range all {
		out = append(out, t.Summarize())
	}
	return out, nil
}

// Fail ends a train's journey and abandons any fight.
func (e *Engine) Fail(ctx context.Context, id string) (game.WagonTrain, error) {
	w, err := e.mutate(ctx, id, "fail", func(w *tx) error {
		if w.inCombat() {
			if err := w.Combat.Lose(); err != nil {
				return err
			}
		}
		return w.Train.Fail()
	})
	if err != nil {
		return game.WagonTrain{}, err
	}
	return w.Train, nil
}

// Score totals a train's victory points as things stand.
func (e *Engine) Score(ctx context.Context, id string) (scoring.Breakdown, error) {
	t, err := e.load(ctx, id)
	if err != nil {
		return scoring.Breakdown{}, err
	}
	return scoring.FinalScore(scoring.FactsFromTrain(t, e.Catalog), e.Catalog.Rewards)
}

// ScoreFacts totals caller-supplied facts against the catalog's rewards.
func (e *Engine) ScoreFacts(f scoring.Facts) (scoring.Breakdown, error) {
	return scoring.FinalScore(f, e.Catalog.Rewards)
}

// Prices returns the store's price list at stop.
func (e *Engine) Prices(stop string) ([]economy.Price, error) {
	if _, ok := e.Catalog.Stop(stop); !ok {
		return nil, unknown("stop", stop, e.Catalog.StopIDs())
	}
	return e.economy.PriceList(stop), nil
}

// unknown reports an unrecognized id, with a suggestion when one is close.
func unknown(kind, id string, candidates []string) error {
	msg := fmt.Sprintf("unknown %s %q", kind, id)
	md := map[string]string{kind: id}
	if s := catalog.Suggest(id, candidates); s != "" {
		msg += fmt.Sprintf(", did you mean %q?", s)
		md["suggestion"] = s
	}
	return errs.WithMetadata(errs.CodeInvalidInput, msg, md)
}
