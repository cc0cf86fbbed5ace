// Package scoring totals end-of-journey victory points.
package scoring

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"wagontrail/internal/catalog"
	"wagontrail/internal/errs"
	"wagontrail/internal/game"
)

// ElderStatesman is the job whose leader multiplies the final total.
const ElderStatesman = "elder_statesman"

// Facts describes a finished journey.
type Facts struct {
	ReachedOregon     bool     `json:"reachedOregon"`
	SurvivingSpouses  int      `json:"survivingSpouses"`
	SurvivingChildren int      `json:"survivingChildren"`
	TotalWealth       int      `json:"totalWealth"`
	Paintings         int      `json:"paintings"`
	Achievements      []string `json:"achievements"`
	BonusPoints       int      `json:"bonusPoints"`
	Role              string   `json:"role"`
}

// Line is one scored item.
type Line struct {
	Label  string `json:"label"`
	Points int    `json:"points"`
}

// Breakdown is a final score with its line items.
type Breakdown struct {
	Lines      []Line  `json:"lines"`
	Subtotal   int     `json:"subtotal"`
	Multiplier float64 `json:"multiplier"`
	Total      int     `json:"total"`
}

// FinalScore sums the line items. Each achievement counts once. An elder
// statesman's subtotal is multiplied last and floored.
func FinalScore(f Facts, r catalog.Rewards) (Breakdown, error) {
	if err := validate(f); err != nil {
		return Breakdown{}, err
	}
	var b Breakdown
	add := func(label string, points int) {
		if points != 0 {
			b.Lines = append(b.Lines, Line{Label: label, Points: points})
			b.Subtotal += points
		}
	}

	if f.ReachedOregon {
		add("Reached Oregon", r.ReachOregon)
	}
	add(fmt.Sprintf("Wealth ($%d)", f.TotalWealth), r.WealthPer10*(f.TotalWealth/10))
	add(fmt.Sprintf("Surviving spouses (%d)", f.SurvivingSpouses), r.SurvivingSpouse*f.SurvivingSpouses)
	add(fmt.Sprintf("Surviving children (%d)", f.SurvivingChildren), r.SurvivingChild*f.SurvivingChildren)
	add(fmt.Sprintf("Paintings (%d)", f.Paintings), r.PaintingPer*f.Paintings)

	seen := make(map[string]bool, len(f.Achievements))
	for _, a := range f.Achievements {
		if seen[a] {
			continue
		}
		seen[a] = true
		points, ok := r.Achievements[a]
		if !ok {
			return Breakdown{}, errs.WithMetadata(errs.CodeInvalidInput,
				fmt.Sprintf("unknown achievement %q", a), map[string]string{"achievement": a})
		}
		add(achievementLabel(a), points)
	}
	add("Bonus points", f.BonusPoints)

	b.Multiplier = 1
	b.Total = b.Subtotal
	if f.Role == ElderStatesman && r.ElderStatesmanMultiplier > 0 {
		b.Multiplier = r.ElderStatesmanMultiplier
		b.Total = int(math.Floor(float64(b.Subtotal) * r.ElderStatesmanMultiplier))
	}
	return b, nil
}

func validate(f Facts) error {
	for name, v := range map[string]int{
		"survivingSpouses":  f.SurvivingSpouses,
		"survivingChildren": f.SurvivingChildren,
		"totalWealth":       f.TotalWealth,
		"paintings":         f.Paintings,
		"bonusPoints":       f.BonusPoints,
	} {
		if v < 0 {
			return errs.WithMetadata(errs.CodeInvalidInput,
				fmt.Sprintf("%s must be non-negative, got %d", name, v),
				map[string]string{"field": name})
		}
	}
	return nil
}

func achievementLabel(id string) string {
	words := strings.Split(id, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// FactsFromTrain derives scoring facts from a wagon train. Wealth is cash
// plus inventory at base price, never below zero.
func FactsFromTrain(t game.WagonTrain, cat *catalog.Catalog) Facts {
	f := Facts{
		ReachedOregon: t.Status == game.StatusArrived,
		Paintings:     t.Quantity("painting"),
		Achievements:  slices.Clone(t.Treasures),
		BonusPoints:   t.VictoryPoints,
	}
	for _, c := range t.Party {
		if !c.IsAlive() {
			continue
		}
		switch c.Role {
		case game.RoleSpouse:
			f.SurvivingSpouses++
		case game.RoleChild:
			f.SurvivingChildren++
		}
	}
	wealth := t.Cash
	for _, it := range t.Inventory {
		if s, ok := cat.Supply(it.Item); ok {
			wealth += s.Price * it.Quantity
		}
	}
	f.TotalWealth = max(wealth, 0)
	if i := t.LeaderIndex(); i >= 0 {
		f.Role = t.Party[i].Job
	}
	return f
}
