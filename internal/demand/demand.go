package demand

import (
	"strings"
	"time"

	"barfops/internal"
	"barfops/internal/catalog"
	"barfops/internal/util"
)

const dayLayout = "2006-01-02"

// Aggregator counts daily ordered quantity per catalog item. The UTC
// offset is the operation's fixed business timezone, never the host clock.
type Aggregator struct {
	utcOffset time.Duration
}

func NewAggregator(businessUTCOffsetHours int) *Aggregator {
	return &Aggregator{utcOffset: time.Duration(businessUTCOffsetHours) * time.Hour}
}

// DailyDemand sums the quantities of every line item matching the candidate
// across the orders of one location and day. Items that cannot be resolved
// contribute zero; the aggregation itself never fails.
func (a *Aggregator) DailyDemand(candidate internal.CatalogKey, orders []internal.Order, location, day string) int {
	total := 0
	for _, order := range orders {
		if order.Location != location || a.effectiveDay(order) != day {
			continue
		}
		for _, item := range order.Items {
			if a.itemMatches(candidate, item) {
				total += item.EffectiveQuantity()
			}
		}
	}
	return total
}

// effectiveDay is the designated delivery date when present, else the
// creation timestamp shifted into the business timezone and truncated.
func (a *Aggregator) effectiveDay(order internal.Order) string {
	if order.DeliveryDate != nil && *order.DeliveryDate != "" {
		return *order.DeliveryDate
	}
	return order.CreatedAt.UTC().Add(a.utcOffset).Format(dayLayout)
}

func (a *Aggregator) itemMatches(candidate internal.CatalogKey, item internal.OrderLineItem) bool {
	name := util.Fold(item.RawName)
	if name == "" {
		return false
	}

	// Category guards run before any name comparison; OTROS is exempt.
	switch candidate.Section {
	case internal.SectionDog:
		if strings.Contains(name, "GATO") {
			return false
		}
	case internal.SectionCat:
		if strings.Contains(name, "PERRO") {
			return false
		}
	}

	itemBigDog := strings.Contains(name, catalog.BigDog)
	candidateBigDog := strings.HasPrefix(candidate.Product, catalog.BigDog)
	if itemBigDog != candidateBigDog {
		return false
	}
	if candidateBigDog {
		return bigDogMatches(candidate, item, name)
	}
	return nameMatches(candidate, item)
}

// bigDogMatches resolves the item's flavor from its structured sub-options
// first and only then from the raw text; both fallback paths are load
// bearing for historical rows.
func bigDogMatches(candidate internal.CatalogKey, item internal.OrderLineItem, foldedName string) bool {
	candidateFlavor := strings.TrimSpace(strings.TrimPrefix(candidate.Product, catalog.BigDog))

	itemFlavor := ""
	for _, sub := range item.SubOptions {
		if flavor := catalog.FindFlavor(sub.Name); flavor != "" {
			itemFlavor = flavor
			break
		}
	}
	if itemFlavor == "" {
		itemFlavor = catalog.FindFlavor(foldedName)
	}

	return itemFlavor == candidateFlavor
}

func nameMatches(candidate internal.CatalogKey, item internal.OrderLineItem) bool {
	display := item.RawName
	if len(item.SubOptions) > 0 {
		display += " " + item.SubOptions[0].Name
	}

	itemWeight := util.ParseWeight(util.Fold(display)).Token
	var candidateWeight *string
	if candidate.Weight != nil {
		w := util.NormalizeWeight(*candidate.Weight)
		candidateWeight = &w
	}
	if itemWeight != nil || candidateWeight != nil {
		if itemWeight == nil || candidateWeight == nil || *itemWeight != *candidateWeight {
			return false
		}
	}

	itemClean := util.CleanName(display)
	candidateText := candidate.Product
	if candidate.Weight != nil {
		candidateText += " " + *candidate.Weight
	}
	candidateClean := util.CleanName(candidateText)
	if itemClean == "" || candidateClean == "" {
		return false
	}
	return itemClean == candidateClean ||
		strings.Contains(itemClean, candidateClean) ||
		strings.Contains(candidateClean, itemClean)
}
