package catalog

import (
	"barfops/internal"
)

// Index holds lookup maps over the catalog for reconciliation.
type Index struct {
	Items     []internal.CatalogKey
	ByDisplay map[string]internal.CatalogKey
	ByProduct map[string][]internal.CatalogKey
	BySection map[internal.Section][]internal.CatalogKey
}

func BuildIndex(items []internal.CatalogKey) *Index {
	idx := &Index{
		ByDisplay: map[string]internal.CatalogKey{},
		ByProduct: map[string][]internal.CatalogKey{},
		BySection: map[internal.Section][]internal.CatalogKey{},
	}
	for _, item := range items {
		idx.Items = append(idx.Items, item)
		idx.ByDisplay[Display(item)] = item
		idx.ByProduct[item.Product] = append(idx.ByProduct[item.Product], item)
		idx.BySection[item.Section] = append(idx.BySection[item.Section], item)
	}
	return idx
}

// Lookup returns the catalog item equal to key, if one exists.
func (idx *Index) Lookup(key internal.CatalogKey) (internal.CatalogKey, bool) {
	for _, item := range idx.ByProduct[key.Product] {
		if item.Equal(key) {
			return item, true
		}
	}
	return internal.CatalogKey{}, false
}

// MatchRecord returns every catalog item the legacy record matches. The
// caller treats anything but exactly one hit as unresolved.
func (idx *Index) MatchRecord(record internal.LegacyRecord) []internal.CatalogKey {
	var out []internal.CatalogKey
	for _, item := range idx.Items {
		if Matches(record, item) {
			out = append(out, item)
		}
	}
	return out
}
