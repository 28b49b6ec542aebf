package catalog

import (
	"strings"

	"barfops/internal"
	"barfops/internal/util"
)

var sectionMarkers = []string{"PERRO", "GATO", BigDog, "OTROS"}

// Matches decides whether a legacy record refers to the candidate catalog
// item. Deterministic and unscored; any uncertainty rejects, since a wrong
// merge corrupts inventory counts while a miss only queues manual review.
func Matches(record internal.LegacyRecord, candidate internal.CatalogKey) bool {
	recordW := recordWeight(record)
	var candW *string
	if candidate.Weight != nil {
		w := util.NormalizeWeight(*candidate.Weight)
		candW = &w
	}
	if (recordW == nil) != (candW == nil) {
		return false
	}
	if recordW != nil && *recordW != *candW {
		return false
	}

	if record.Section != nil && *record.Section != candidate.Section {
		return false
	}

	name := util.Fold(record.Name)
	if name == candidate.Product {
		return true
	}
	if record.Section != nil {
		if name == composedName(candidate) {
			return true
		}
		if name == string(candidate.Section)+" "+candidate.Product {
			return true
		}
	}
	if hasSectionMarker(name) {
		resolved := Normalize(record.Name, flavorOption(record))
		return resolved.Section == candidate.Section && resolved.Product == candidate.Product
	}

	// A bare legacy name without section markers only ever matches by exact
	// product equality, handled above.
	return false
}

func recordWeight(r internal.LegacyRecord) *string {
	if opt := ResolveOption(r.Option); opt.Kind == internal.OptionWeight {
		weight := opt.Value
		return &weight
	}
	return util.ParseWeight(util.Fold(r.Name)).Token
}

func flavorOption(r internal.LegacyRecord) *string {
	if opt := ResolveOption(r.Option); opt.Kind == internal.OptionFlavor {
		return &opt.Value
	}
	return nil
}

// composedName is the legacy name form that still embeds the section
// marker, e.g. "BOX PERRO POLLO" for a DOG item.
func composedName(c internal.CatalogKey) string {
	switch c.Section {
	case internal.SectionDog:
		return "BOX PERRO " + c.Product
	case internal.SectionCat:
		return "BOX GATO " + c.Product
	}
	return c.Product
}

func hasSectionMarker(folded string) bool {
	for _, marker := range sectionMarkers {
		if strings.Contains(folded, marker) {
			return true
		}
	}
	return false
}
