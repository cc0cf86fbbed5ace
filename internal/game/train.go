package game

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"wagontrail/internal/catalog"
	"wagontrail/internal/errs"
)

// NewTrain creates an active wagon train at the first stop. The first
// character with the leader role leads; without one the first character is
// promoted. Starting cash comes from the leader's job.
func NewTrain(cat *catalog.Catalog, name string, party []CharacterSpec) (WagonTrain, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return WagonTrain{}, errs.New(errs.CodeInvalidInput, "train name is required")
	}
	if len(party) == 0 {
		return WagonTrain{}, errs.New(errs.CodeInvalidInput, "a train needs at least one character")
	}
	t := WagonTrain{
		ID:     uuid.NewString(),
		Name:   name,
		Status: StatusActive,
	}
	leader := -1
	for i, spec := range party {
		if spec.Role == RoleLeader {
			if leader >= 0 {
				return WagonTrain{}, errs.New(errs.CodeInvalidInput, "only one leader is allowed")
			}
			leader = i
		}
		c, err := NewCharacter(cat, spec)
		if err != nil {
			return WagonTrain{}, err
		}
		t.Party = append(t.Party, c)
	}
	if leader < 0 {
		leader = 0
		t.Party[0].Role = RoleLeader
	}
	if job, ok := cat.Job(t.Party[leader].Job); ok {
		t.Cash = job.StartingCash
	}
	return t, nil
}

// Clone returns a deep copy; engines mutate clones so a failed operation
// never leaves a partial change behind.
func (t WagonTrain) Clone() WagonTrain {
	out := t
	out.Party = make([]Character, len(t.Party))
	for i, c := range t.Party {
		out.Party[i] = c.clone()
	}
	out.Inventory = slices.Clone(t.Inventory)
	out.Treasures = slices.Clone(t.Treasures)
	if t.Pending != nil {
		p := *t.Pending
		out.Pending = &p
	}
	return out
}

// Mutable fails with errs.ErrInvalidState once the journey is over.
func (t WagonTrain) Mutable() error {
	switch t.Status {
	case StatusFailed:
		return errs.New(errs.CodeInvalidState, fmt.Sprintf("train %s has failed", t.Name))
	case StatusArrived:
		return errs.New(errs.CodeInvalidState, fmt.Sprintf("train %s has already arrived", t.Name))
	}
	return nil
}

// ActiveCount is the number of living party members.
func (t WagonTrain) ActiveCount() int {
	n := 0
	for _, c := range t.Party {
		if c.IsAlive() {
			n++
		}
	}
	return n
}

// LeaderIndex returns the living leader, falling back to the first living
// member, or -1 when everyone is dead.
func (t WagonTrain) LeaderIndex() int {
	first := -1
	for i, c := range t.Party {
		if !c.IsAlive() {
			continue
		}
		if c.Role == RoleLeader {
			return i
		}
		if first < 0 {
			first = i
		}
	}
	return first
}

// PartyHasSkill reports whether any living member has the skill.
func (t WagonTrain) PartyHasSkill(id string) bool {
	for _, c := range t.Party {
		if c.IsAlive() && c.HasSkill(id) {
			return true
		}
	}
	return false
}

func (t WagonTrain) HasTreasure(id string) bool { return slices.Contains(t.Treasures, id) }

// AddTreasure records an achievement; each counts once.
func (t *WagonTrain) AddTreasure(id string) bool {
	if id == "" || t.HasTreasure(id) {
		return false
	}
	t.Treasures = append(t.Treasures, id)
	return true
}

// Spend removes up to n cash, clamped at 0, and returns what was taken.
func (t *WagonTrain) Spend(n int) int {
	if n <= 0 {
		return 0
	}
	if t.Cash <= 0 {
		return 0
	}
	if n > t.Cash {
		n = t.Cash
	}
	t.Cash -= n
	return n
}

// Debt charges n regardless of balance; cash may go negative.
func (t *WagonTrain) Debt(n int) {
	if n > 0 {
		t.Cash -= n
	}
}

func (t *WagonTrain) Earn(n int) {
	if n > 0 {
		t.Cash += n
	}
}

// Advance moves the train to the next stop and charges that leg's days.
// Reaching the terminal stop marks the train arrived.
func (t *WagonTrain) Advance(cat *catalog.Catalog) (catalog.Stop, error) {
	if err := t.Mutable(); err != nil {
		return catalog.Stop{}, err
	}
	if t.StopIndex >= cat.TerminalStop() {
		return catalog.Stop{}, errs.New(errs.CodeInvalidState, "no stops remain")
	}
	t.StopIndex++
	stop := cat.Stops[t.StopIndex]
	t.Days += stop.Days
	if t.StopIndex == cat.TerminalStop() {
		t.Status = StatusArrived
	}
	return stop, nil
}

// Fail ends the journey.
func (t *WagonTrain) Fail() error {
	if err := t.Mutable(); err != nil {
		return err
	}
	t.Status = StatusFailed
	t.Pending = nil
	return nil
}

// Settle fails an active train whose whole party has died.
func (t *WagonTrain) Settle() {
	if t.Status == StatusActive && t.ActiveCount() == 0 {
		t.Status = StatusFailed
		t.Pending = nil
	}
}
