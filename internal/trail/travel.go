package trail

import (
	"context"
	"fmt"
	"strings"

	"wagontrail/internal/catalog"
	"wagontrail/internal/economy"
	"wagontrail/internal/errs"
	"wagontrail/internal/game"
)

// Receipt records a purchase.
type Receipt struct {
	Item      string          `json:"item"`
	Quantity  int             `json:"quantity"`
	UnitPrice int             `json:"unitPrice"`
	Subtotal  int             `json:"subtotal"`
	Discount  int             `json:"discount"`
	Total     int             `json:"total"`
	Train     game.WagonTrain `json:"train"`
}

// Buy purchases qty of item at the train's current stop. The price is the
// inflated unit price times qty, less the money skill's discount when a
// living member has it. A train that cannot pay is refused.
func (e *Engine) Buy(ctx context.Context, id, item string, qty int) (Receipt, error) {
	if qty <= 0 {
		return Receipt{}, errs.New(errs.CodeInvalidInput, "quantity must be positive")
	}
	supply, ok := e.Catalog.Supply(item)
	if !ok {
		return Receipt{}, unknown("item", item, e.Catalog.SupplyIDs())
	}
	var r Receipt
	w, err := e.mutate(ctx, id, fmt.Sprintf("buy:%s:%d", item, qty), func(w *tx) error {
		if err := e.ready(w); err != nil {
			return err
		}
		stop := e.Catalog.Stops[w.Train.StopIndex]
		unit, err := e.economy.ItemPrice(item, stop.ID)
		if err != nil {
			return err
		}
		r = Receipt{Item: item, Quantity: qty, UnitPrice: unit, Subtotal: unit * qty}
		r.Total = r.Subtotal
		if w.Train.PartyHasSkill(game.SkillMoney) {
			if s, ok := e.Catalog.Skill(game.SkillMoney); ok {
				r.Total = economy.Discount(r.Subtotal, s.Discount)
			}
		}
		r.Discount = r.Subtotal - r.Total
		if r.Total > w.Train.Cash {
			return errs.WithMetadata(errs.CodeInsufficientFunds,
				fmt.Sprintf("%d %s costs %s, the train has %s", qty, supply.Name,
					game.FormatCash(r.Total), game.FormatCash(w.Train.Cash)),
				map[string]string{"item": item})
		}
		w.Train.Spend(r.Total)
		return w.Train.AddItem(item, supply.Category, qty)
	})
	if err != nil {
		return Receipt{}, err
	}
	r.Train = w.Train
	return r, nil
}

// Rations each living member eats per leg, in supply order.
var rations = []string{"food", "meat", "fish"}

// Leg is the committed result of one leg of travel.
type Leg struct {
	Stop        catalog.Stop    `json:"stop"`
	Eaten       int             `json:"eaten"`
	Starving    int             `json:"starving"`
	Description string          `json:"description"`
	Train       game.WagonTrain `json:"train"`
}

// Travel moves the train to the next stop. Each living member eats one
// ration; members left without one lose 1 health. A party that starves to
// death never arrives.
func (e *Engine) Travel(ctx context.Context, id string) (Leg, error) {
	var leg Leg
	w, err := e.mutate(ctx, id, "travel", func(w *tx) error {
		if err := e.ready(w); err != nil {
			return err
		}
		if w.Train.StopIndex >= e.Catalog.TerminalStop() {
			return errs.New(errs.CodeInvalidState, "no stops remain")
		}
		hungry := w.Train.ActiveCount()
		for _, item := range rations {
			take := min(hungry, w.Train.Quantity(item))
			if take == 0 {
				continue
			}
			if err := w.Train.RemoveItem(item, take); err != nil {
				return err
			}
			hungry -= take
			leg.Eaten += take
		}
		if hungry > 0 {
			leg.Starving = hungry
			if err := e.starve(w, hungry); err != nil {
				return err
			}
			if w.Train.Status == game.StatusFailed {
				return nil
			}
		}
		stop, err := w.Train.Advance(e.Catalog)
		if err != nil {
			return err
		}
		leg.Stop = stop
		w.note(fmt.Sprintf("reached %s after %d day(s)", stop.Name, stop.Days))
		if w.Train.Status == game.StatusArrived {
			w.note("the wagon train has arrived")
		}
		return nil
	})
	if err != nil {
		return Leg{}, err
	}
	leg.Description = strings.Join(w.notes, "; ")
	leg.Train = w.Train
	return leg, nil
}

// starve takes 1 health from the last n living members; the leader eats
// first.
func (e *Engine) starve(w *tx, n int) error {
	w.note(fmt.Sprintf("%d member(s) go hungry", n))
	leader := w.Train.LeaderIndex()
	var order []int
	for i := len(w.Train.Party) - 1; i >= 0; i-- {
		if i != leader && w.Train.Party[i].IsAlive() {
			order = append(order, i)
		}
	}
	if leader >= 0 {
		order = append(order, leader)
	}
	for _, i := range order[:min(n, len(order))] {
		msg, err := w.Train.Party[i].Damage(1)
		if err != nil {
			return err
		}
		w.note(msg)
	}
	w.Train.Settle()
	return nil
}
