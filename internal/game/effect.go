package game

import (
	"fmt"
	"strings"

	"wagontrail/internal/catalog"
	"wagontrail/internal/errs"
)

// Apply returns a copy of t with eff applied and a description of what
// changed. On error t is returned unchanged; no partial effect is visible.
func Apply(cat *catalog.Catalog, t WagonTrain, eff catalog.Effect) (WagonTrain, string, error) {
	if err := t.Mutable(); err != nil {
		return t, "", err
	}
	next := t.Clone()
	var notes []string

	for _, d := range eff.Items {
		supply, ok := cat.Supply(d.Item)
		if !ok {
			return t, "", errs.New(errs.CodeInvalidInput, fmt.Sprintf("unknown item %q", d.Item))
		}
		switch {
		case d.Qty > 0:
			if err := next.AddItem(d.Item, supply.Category, d.Qty); err != nil {
				return t, "", err
			}
			notes = append(notes, fmt.Sprintf("+%d %s", d.Qty, supply.Name))
		case d.Qty < 0:
			if err := next.RemoveItem(d.Item, -d.Qty); err != nil {
				return t, "", err
			}
			notes = append(notes, fmt.Sprintf("-%d %s", -d.Qty, supply.Name))
		}
	}

	switch {
	case eff.Cash > 0:
		next.Earn(eff.Cash)
		notes = append(notes, "earned "+FormatCash(eff.Cash))
	case eff.Cash < 0:
		spent := next.Spend(-eff.Cash)
		notes = append(notes, "spent "+FormatCash(spent))
	}
	if eff.Debt > 0 {
		next.Debt(eff.Debt)
		notes = append(notes, "owes "+FormatCash(eff.Debt))
	}
	if eff.Days > 0 {
		next.Days += eff.Days
		notes = append(notes, fmt.Sprintf("lost %d day(s)", eff.Days))
	}

	if eff.Health != 0 || eff.Status != "" || eff.ExtraLife {
		targets := next.targets(eff.Target)
		for _, i := range targets {
			c := &next.Party[i]
			if eff.Status != "" {
				c.AddStatus(eff.Status)
			}
			if eff.ExtraLife && !c.ExtraLife {
				c.ExtraLife = true
				notes = append(notes, c.Name+" gains an extra life")
			}
			var (
				msg string
				err error
			)
			if eff.Health < 0 {
				msg, err = c.Damage(-eff.Health)
			} else if eff.Health > 0 {
				msg, err = c.Heal(eff.Health)
			}
			if err != nil {
				return t, "", err
			}
			if msg != "" {
				notes = append(notes, msg)
			}
		}
		if eff.Status != "" && len(targets) > 0 {
			name := eff.Status
			if s, ok := cat.Status(eff.Status); ok {
				name = s.Name
			}
			notes = append(notes, "status: "+name)
		}
	}

	if next.AddTreasure(eff.Treasure) {
		notes = append(notes, "found "+strings.ReplaceAll(eff.Treasure, "_", " "))
	}
	if eff.VictoryPoints != 0 {
		next.VictoryPoints += eff.VictoryPoints
		if next.VictoryPoints < 0 {
			next.VictoryPoints = 0
		}
		notes = append(notes, fmt.Sprintf("%+d VP", eff.VictoryPoints))
	}

	next.Settle()
	if next.Status == StatusFailed {
		notes = append(notes, "the wagon train is lost")
	}
	if len(notes) == 0 {
		return next, "nothing changes", nil
	}
	return next, strings.Join(notes, "; "), nil
}

// targets returns party indexes for an effect target. The leader is the
// default.
func (t WagonTrain) targets(target catalog.Target) []int {
	if target == catalog.TargetParty {
		var out []int
		for i, c := range t.Party {
			if c.IsAlive() {
				out = append(out, i)
			}
		}
		return out
	}
	if i := t.LeaderIndex(); i >= 0 {
		return []int{i}
	}
	return nil
}
