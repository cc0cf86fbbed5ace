package game

import (
	"fmt"

	"wagontrail/internal/errs"
)

// Quantity returns how many of item the train holds.
func (t WagonTrain) Quantity(item string) int {
	for _, it := range t.Inventory {
		if it.Item == item {
			return it.Quantity
		}
	}
	return 0
}

// AddItem adds qty of item, creating the stack if needed.
func (t *WagonTrain) AddItem(item, category string, qty int) error {
	if qty < 0 {
		return errs.New(errs.CodeInvalidInput, "quantity must be non-negative")
	}
	for i := range t.Inventory {
		if t.Inventory[i].Item == item {
			t.Inventory[i].Quantity += qty
			return nil
		}
	}
	t.Inventory = append(t.Inventory, InventoryItem{Item: item, Category: category, Quantity: qty})
	return nil
}

// RemoveItem takes qty of item. When the train holds fewer it fails with
// errs.ErrInsufficientStock and leaves the inventory untouched.
func (t *WagonTrain) RemoveItem(item string, qty int) error {
	if qty < 0 {
		return errs.New(errs.CodeInvalidInput, "quantity must be non-negative")
	}
	have := t.Quantity(item)
	if qty > have {
		return errs.WithMetadata(errs.CodeInsufficientStock,
			fmt.Sprintf("need %d %s, have %d", qty, item, have),
			map[string]string{"item": item})
	}
	for i := range t.Inventory {
		if t.Inventory[i].Item == item {
			t.Inventory[i].Quantity -= qty
			break
		}
	}
	return nil
}
