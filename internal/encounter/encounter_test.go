package encounter

import (
	"errors"
	"testing"

	"wagontrail/internal/catalog"
	"wagontrail/internal/dice"
	"wagontrail/internal/errs"
)

func newResolver(t *testing.T) *Resolver {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return New(cat)
}

func TestRollAndResolveHunting(t *testing.T) {
	r := newResolver(t)
	rng := dice.NewSequence(7)
	res, err := r.RollAndResolve(Hunting, rng)
	if err != nil {
		t.Fatalf("RollAndResolve: %v", err)
	}
	if res.Roll != 7 || res.Hunt == nil || res.Hunt.Name != "Buffalo" {
		t.Fatalf("Expected Buffalo on 7, got %+v", res)
	}
	if res.Redirected || res.Nested != nil {
		t.Error("Expected no redirect")
	}
	if rng.Drawn() != 1 {
		t.Errorf("Expected 1 draw, got %d", rng.Drawn())
	}
}

func TestHuntingRedirectRollsExactlyOnce(t *testing.T) {
	r := newResolver(t)
	for roll := 22; roll <= 30; roll++ {
		rng := dice.NewSequence(roll, 57, 99)
		res, err := r.RollAndResolve(Hunting, rng)
		if err != nil {
			t.Fatalf("roll %d: %v", roll, err)
		}
		if !res.Redirected || res.Nested == nil {
			t.Fatalf("roll %d: expected redirect, got %+v", roll, res)
		}
		if rng.Drawn() != 2 {
			t.Errorf("roll %d: expected exactly 2 draws, got %d", roll, rng.Drawn())
		}
		if res.Nested.Kind != RandomEvent || res.Nested.Roll != 57 {
			t.Errorf("roll %d: unexpected nested %+v", roll, res.Nested)
		}
		if got := res.Rolls(); len(got) != 2 || got[0] != roll || got[1] != 57 {
			t.Errorf("roll %d: Rolls() = %v", roll, got)
		}
		if res.Title() != "Toll Bridge" {
			t.Errorf("roll %d: Expected Toll Bridge, got %q", roll, res.Title())
		}
	}
}

func TestRollAndResolveEachTable(t *testing.T) {
	r := newResolver(t)
	tcs := []struct {
		kind  Kind
		roll  int
		title string
	}{
		{Fishing, 12, "Sturgeon"},
		{Fishing, 1, "Nothing"},
		{RandomEvent, 100, "Sasquatch"},
		{RandomEvent, 1, "Dysentery"},
		{Tesla, 6, "Overload"},
	}
	for _, tc := range tcs {
		res, err := r.RollAndResolve(tc.kind, dice.NewSequence(tc.roll))
		if err != nil {
			t.Fatalf("%s %d: %v", tc.kind, tc.roll, err)
		}
		if res.Title() != tc.title {
			t.Errorf("%s %d: Expected %q, got %q", tc.kind, tc.roll, tc.title, res.Title())
		}
	}
}

func TestResolveOutOfRange(t *testing.T) {
	r := newResolver(t)
	tcs := []struct {
		kind Kind
		roll int
	}{
		{Hunting, 0}, {Hunting, 31}, {Fishing, 13}, {RandomEvent, 101}, {Tesla, 7},
	}
	for _, tc := range tcs {
		if _, err := r.Resolve(tc.kind, tc.roll); !errors.Is(err, errs.ErrOutOfRange) {
			t.Errorf("%s %d: expected out of range, got %v", tc.kind, tc.roll, err)
		}
	}
	if _, err := r.RollAndResolve(Fishing, dice.NewSequence(40)); !errors.Is(err, errs.ErrOutOfRange) {
		t.Errorf("expected out of range from a bad draw, got %v", err)
	}
}

func TestResolveIsPure(t *testing.T) {
	r := newResolver(t)
	a, err := r.Resolve(RandomEvent, 42)
	if err != nil {
		t.Fatal(err)
	}
	b, err := r.Resolve(RandomEvent, 42)
	if err != nil {
		t.Fatal(err)
	}
	if a.Title() != b.Title() || a.Roll != b.Roll {
		t.Errorf("Expected identical results, got %q and %q", a.Title(), b.Title())
	}
}

func TestResolveRedirect(t *testing.T) {
	r := newResolver(t)
	res, err := r.Resolve(Hunting, 25)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Redirected || res.Nested != nil {
		t.Fatalf("Expected pending redirect, got %+v", res)
	}
	res, err = r.ResolveRedirect(res, 100)
	if err != nil {
		t.Fatal(err)
	}
	if res.Title() != "Sasquatch" {
		t.Errorf("Expected Sasquatch, got %q", res.Title())
	}

	plain, _ := r.Resolve(Hunting, 2)
	if _, err := r.ResolveRedirect(plain, 50); !errors.Is(err, errs.ErrInvalidState) {
		t.Errorf("expected invalid state, got %v", err)
	}
}

func TestParseKind(t *testing.T) {
	if k, err := ParseKind("event"); err != nil || k != RandomEvent {
		t.Errorf("ParseKind(event) = %q, %v", k, err)
	}
	if _, err := ParseKind("bowling"); !errors.Is(err, errs.ErrInvalidInput) {
		t.Errorf("expected invalid input, got %v", err)
	}
}
