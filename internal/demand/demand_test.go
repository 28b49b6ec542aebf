package demand

import (
	"testing"
	"time"

	"barfops/internal"
	"barfops/internal/util"
)

func mkOrder(location, deliveryDate string, items ...internal.OrderLineItem) internal.Order {
	order := internal.Order{
		ID:        "o1",
		Location:  location,
		CreatedAt: time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC),
		Items:     items,
	}
	if deliveryDate != "" {
		order.DeliveryDate = &deliveryDate
	}
	return order
}

func TestDailyDemandWeightedItem(t *testing.T) {
	agg := NewAggregator(-3)
	orders := []internal.Order{
		mkOrder("CABA", "2026-03-02", internal.OrderLineItem{
			RawName:    "BOX PERRO POLLO",
			SubOptions: []internal.SubOption{{Name: "10KG", Quantity: 3}},
		}),
	}

	ten := internal.CatalogKey{Section: internal.SectionDog, Product: "POLLO", Weight: util.StringPtr("10KG")}
	if got := agg.DailyDemand(ten, orders, "CABA", "2026-03-02"); got != 3 {
		t.Fatalf("got %d want 3", got)
	}

	five := internal.CatalogKey{Section: internal.SectionDog, Product: "POLLO", Weight: util.StringPtr("5KG")}
	if got := agg.DailyDemand(five, orders, "CABA", "2026-03-02"); got != 0 {
		t.Fatalf("got %d want 0", got)
	}

	if got := agg.DailyDemand(ten, orders, "ZONA NORTE", "2026-03-02"); got != 0 {
		t.Fatalf("wrong location counted: %d", got)
	}
	if got := agg.DailyDemand(ten, orders, "CABA", "2026-03-03"); got != 0 {
		t.Fatalf("wrong day counted: %d", got)
	}
}

func TestDailyDemandCategoryGuards(t *testing.T) {
	agg := NewAggregator(-3)
	orders := []internal.Order{
		mkOrder("CABA", "2026-03-02",
			internal.OrderLineItem{RawName: "BOX GATO POLLO 5KG", Quantity: 2},
			internal.OrderLineItem{RawName: "BOX PERRO POLLO 5KG", Quantity: 1},
		),
	}

	dog := internal.CatalogKey{Section: internal.SectionDog, Product: "POLLO", Weight: util.StringPtr("5KG")}
	if got := agg.DailyDemand(dog, orders, "CABA", "2026-03-02"); got != 1 {
		t.Fatalf("dog candidate got %d want 1", got)
	}

	cat := internal.CatalogKey{Section: internal.SectionCat, Product: "POLLO", Weight: util.StringPtr("5KG")}
	if got := agg.DailyDemand(cat, orders, "CABA", "2026-03-02"); got != 2 {
		t.Fatalf("cat candidate got %d want 2", got)
	}
}

func TestDailyDemandBigDog(t *testing.T) {
	agg := NewAggregator(-3)
	orders := []internal.Order{
		mkOrder("CABA", "2026-03-02",
			internal.OrderLineItem{
				RawName:    "BIG DOG (15kg)",
				SubOptions: []internal.SubOption{{Name: "VACA", Quantity: 2}},
			},
			internal.OrderLineItem{RawName: "BIG DOG CORDERO 15KG", Quantity: 1},
		),
	}

	vaca := internal.CatalogKey{Section: internal.SectionDog, Product: "BIG DOG VACA", Weight: util.StringPtr("15KG")}
	if got := agg.DailyDemand(vaca, orders, "CABA", "2026-03-02"); got != 2 {
		t.Fatalf("sub-option flavor got %d want 2", got)
	}

	cordero := internal.CatalogKey{Section: internal.SectionDog, Product: "BIG DOG CORDERO", Weight: util.StringPtr("15KG")}
	if got := agg.DailyDemand(cordero, orders, "CABA", "2026-03-02"); got != 1 {
		t.Fatalf("raw-text flavor got %d want 1", got)
	}

	pollo := internal.CatalogKey{Section: internal.SectionDog, Product: "BIG DOG POLLO", Weight: util.StringPtr("15KG")}
	if got := agg.DailyDemand(pollo, orders, "CABA", "2026-03-02"); got != 0 {
		t.Fatalf("wrong flavor counted: %d", got)
	}

	// A BIG DOG item never feeds a plain dog candidate.
	plain := internal.CatalogKey{Section: internal.SectionDog, Product: "VACA", Weight: util.StringPtr("15KG")}
	if got := agg.DailyDemand(plain, orders, "CABA", "2026-03-02"); got != 0 {
		t.Fatalf("big dog leaked into plain candidate: %d", got)
	}
}

func TestEffectiveDay(t *testing.T) {
	agg := NewAggregator(-3)
	item := internal.OrderLineItem{RawName: "BOX PERRO POLLO 5KG", Quantity: 1}
	candidate := internal.CatalogKey{Section: internal.SectionDog, Product: "POLLO", Weight: util.StringPtr("5KG")}

	// 01:30 UTC shifted by the business offset lands on the previous day.
	late := internal.Order{
		ID:        "o2",
		Location:  "CABA",
		CreatedAt: time.Date(2026, 3, 1, 1, 30, 0, 0, time.UTC),
		Items:     []internal.OrderLineItem{item},
	}
	if got := agg.DailyDemand(candidate, []internal.Order{late}, "CABA", "2026-02-28"); got != 1 {
		t.Fatalf("offset day got %d want 1", got)
	}
	if got := agg.DailyDemand(candidate, []internal.Order{late}, "CABA", "2026-03-01"); got != 0 {
		t.Fatalf("utc day counted: %d", got)
	}

	// An explicit delivery date overrides the creation timestamp.
	delivery := "2026-03-05"
	late.DeliveryDate = &delivery
	if got := agg.DailyDemand(candidate, []internal.Order{late}, "CABA", "2026-03-05"); got != 1 {
		t.Fatalf("delivery date got %d want 1", got)
	}
	if got := agg.DailyDemand(candidate, []internal.Order{late}, "CABA", "2026-02-28"); got != 0 {
		t.Fatalf("creation day counted despite delivery date: %d", got)
	}
}

func TestDailyDemandUnresolvableContributesZero(t *testing.T) {
	agg := NewAggregator(-3)
	orders := []internal.Order{
		mkOrder("CABA", "2026-03-02", internal.OrderLineItem{RawName: "", Quantity: 4}),
	}
	candidate := internal.CatalogKey{Section: internal.SectionOther, Product: "GALLETAS"}
	if got := agg.DailyDemand(candidate, orders, "CABA", "2026-03-02"); got != 0 {
		t.Fatalf("got %d want 0", got)
	}
}
