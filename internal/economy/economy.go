// Package economy prices supplies along the trail.
package economy

import (
	"fmt"
	"math"

	"wagontrail/internal/catalog"
	"wagontrail/internal/errs"
)

// Multiplier returns the inflation multiplier at stop id. Unknown stops
// price at 1.0.
func Multiplier(stops []catalog.Stop, id string) float64 {
	for _, s := range stops {
		if s.ID == id {
			return s.Inflation
		}
	}
	return 1.0
}

// EffectivePrice is round(base × multiplier) at stop id.
func EffectivePrice(base int, id string, stops []catalog.Stop) int {
	return int(math.Round(float64(base) * Multiplier(stops, id)))
}

// Discount takes percent off price, rounded to the nearest dollar.
func Discount(price, percent int) int {
	if percent <= 0 {
		return price
	}
	if percent >= 100 {
		return 0
	}
	return int(math.Round(float64(price) * float64(100-percent) / 100))
}

// Model prices catalog supplies.
type Model struct {
	Catalog *catalog.Catalog
}

func New(cat *catalog.Catalog) Model {
	return Model{Catalog: cat}
}

// Price is one priced line of a store's list.
type Price struct {
	Item     string `json:"item"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Base     int    `json:"base"`
	Price    int    `json:"price"`
}

// ItemPrice returns the inflated unit price of item at stop.
func (m Model) ItemPrice(item, stop string) (int, error) {
	s, ok := m.Catalog.Supply(item)
	if !ok {
		return 0, errs.WithMetadata(errs.CodeInvalidInput, fmt.Sprintf("unknown item %q", item),
			map[string]string{"item": item})
	}
	return EffectivePrice(s.Price, stop, m.Catalog.Stops), nil
}

// PriceList prices every supply at stop, in catalog order.
func (m Model) PriceList(stop string) []Price {
	out := make([]Price, 0, len(m.Catalog.Supplies))
	for _, s := range m.Catalog.Supplies {
		out = append(out, Price{
			Item:     s.ID,
			Name:     s.Name,
			Category: s.Category,
			Base:     s.Price,
			Price:    EffectivePrice(s.Price, stop, m.Catalog.Stops),
		})
	}
	return out
}
