// Package table maps dice rolls onto outcome entries keyed by inclusive
// roll ranges.
package table

import (
	"fmt"
	"sort"

	"wagontrail/internal/errs"
)

// Entry pairs an inclusive roll range with its outcome. Single-value entries
// use Low == High.
type Entry[T any] struct {
	Low     int
	High    int
	Outcome T
}

// Contains reports whether roll lies in [Low, High].
func (e Entry[T]) Contains(roll int) bool {
	return roll >= e.Low && roll <= e.High
}

// Table is a validated outcome table: its entries partition [1, Max] with no
// gaps and no overlaps.
type Table[T any] struct {
	name    string
	max     int
	entries []Entry[T]
}

// New validates entries against the domain [1, max] and returns a table.
// Any gap, overlap or out-of-domain range fails with errs.ErrTableLookup.
func New[T any](name string, max int, entries []Entry[T]) (*Table[T], error) {
	if max < 1 {
		return nil, tableError(name, fmt.Sprintf("domain max %d must be positive", max))
	}
	if len(entries) == 0 {
		return nil, tableError(name, "no entries")
	}
	sorted := append([]Entry[T](nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Low < sorted[j].Low })

	next := 1
	for _, e := range sorted {
		switch {
		case e.Low > e.High:
			return nil, tableError(name, fmt.Sprintf("range [%d,%d] is inverted", e.Low, e.High))
		case e.Low < 1 || e.High > max:
			return nil, tableError(name, fmt.Sprintf("range [%d,%d] outside [1,%d]", e.Low, e.High, max))
		case e.Low < next:
			return nil, tableError(name, fmt.Sprintf("range [%d,%d] overlaps previous entry", e.Low, e.High))
		case e.Low > next:
			return nil, tableError(name, fmt.Sprintf("gap at [%d,%d]", next, e.Low-1))
		}
		next = e.High + 1
	}
	if next != max+1 {
		return nil, tableError(name, fmt.Sprintf("gap at [%d,%d]", next, max))
	}
	return &Table[T]{name: name, max: max, entries: sorted}, nil
}

// Name returns the table's name.
func (t *Table[T]) Name() string { return t.name }

// Max returns the highest roll in the table's domain.
func (t *Table[T]) Max() int { return t.max }

// Entries returns a copy of the entries in roll order.
func (t *Table[T]) Entries() []Entry[T] {
	return append([]Entry[T](nil), t.entries...)
}

// Resolve returns the outcome for roll. Rolls outside [1, Max] fail with
// errs.ErrOutOfRange.
func (t *Table[T]) Resolve(roll int) (T, error) {
	var zero T
	if roll < 1 || roll > t.max {
		return zero, outOfRange(t.name, roll, t.max)
	}
	i := sort.Search(len(t.entries), func(i int) bool { return t.entries[i].High >= roll })
	if i == len(t.entries) || !t.entries[i].Contains(roll) {
		// Unreachable for a table built by New.
		return zero, tableError(t.name, fmt.Sprintf("no entry for roll %d", roll))
	}
	return t.entries[i].Outcome, nil
}

// Lookup scans unvalidated entries in declaration order; the first entry
// containing roll wins.
func Lookup[T any](name string, entries []Entry[T], max, roll int) (T, error) {
	var zero T
	if roll < 1 || roll > max {
		return zero, outOfRange(name, roll, max)
	}
	for _, e := range entries {
		if e.Contains(roll) {
			return e.Outcome, nil
		}
	}
	return zero, tableError(name, fmt.Sprintf("no entry for roll %d", roll))
}

func outOfRange(name string, roll, max int) error {
	return errs.WithMetadata(errs.CodeOutOfRange,
		fmt.Sprintf("%s: roll %d outside [1,%d]", name, roll, max),
		map[string]string{"table": name, "roll": fmt.Sprint(roll)})
}

func tableError(name, msg string) error {
	return errs.WithMetadata(errs.CodeTableLookup, name+": "+msg, map[string]string{"table": name})
}
