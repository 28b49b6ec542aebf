package catalog

import (
	"regexp"
	"strings"

	"barfops/internal"
	"barfops/internal/util"
)

const (
	complementsName  = "BOX DE COMPLEMENTOS"
	unitOption       = "1 U"
	bigDogLegacyName = "BIG DOG (15kg)"
)

// Display renders the canonical user-facing string for a catalog key.
func Display(k internal.CatalogKey) string {
	if k.Weight != nil {
		return string(k.Section) + canonicalDelim + k.Product + canonicalDelim + *k.Weight
	}
	return string(k.Section) + canonicalDelim + k.Product
}

// ResolveOption interprets the dual-purpose legacy option field exactly
// once; call sites work with the resolved variant, never the raw string.
func ResolveOption(option string) internal.LegacyOption {
	folded := util.Fold(option)
	if folded == "" {
		return internal.LegacyOption{Kind: internal.OptionUnknown}
	}
	if token, ok := util.ParseWeightToken(folded); ok {
		return internal.LegacyOption{Kind: internal.OptionWeight, Value: token}
	}
	if reBareWord.MatchString(folded) {
		return internal.LegacyOption{Kind: internal.OptionFlavor, Value: folded}
	}
	return internal.LegacyOption{Kind: internal.OptionUnknown, Value: folded}
}

// ToLegacy recomposes a catalog key into the two-field storage form used by
// historical rows.
func ToLegacy(k internal.CatalogKey) internal.LegacyRecord {
	switch k.Section {
	case internal.SectionDog:
		if strings.HasPrefix(k.Product, BigDog) {
			flavor := strings.TrimSpace(strings.TrimPrefix(k.Product, BigDog))
			return internal.LegacyRecord{Name: bigDogLegacyName, Option: flavor}
		}
		return internal.LegacyRecord{Name: "BOX PERRO " + k.Product, Option: weightOr(k, "")}
	case internal.SectionCat:
		return internal.LegacyRecord{Name: "BOX GATO " + k.Product, Option: weightOr(k, "")}
	case internal.SectionRaw:
		return internal.LegacyRecord{Name: k.Product}
	default:
		return internal.LegacyRecord{Name: k.Product, Option: weightOr(k, unitOption)}
	}
}

// Corrupted legacy rows duplicate a short count token into both fields.
// The known shapes are remapped through a fixed correction table; anything
// else is surfaced concatenated under OTROS, never guessed further.
var corruptShapes = []*regexp.Regexp{
	regexp.MustCompile(`^\d+\s*[A-ZÑ]+$`),
	regexp.MustCompile(`^X\d+$`),
	regexp.MustCompile(`^\d+$`),
}

var corrections = map[string]internal.CatalogKey{
	unitOption: {Section: internal.SectionOther, Product: complementsName},
}

// FromLegacy resolves a legacy record back into its catalog key. Total: a
// row it cannot interpret degrades to OTROS with the fields preserved.
func FromLegacy(r internal.LegacyRecord) internal.CatalogKey {
	name := util.Fold(r.Name)
	option := util.Fold(r.Option)

	if name != "" && name == option && isCorruptToken(name) {
		if fixed, ok := corrections[name]; ok {
			return fixed
		}
		return internal.CatalogKey{Section: internal.SectionOther, Product: util.NormalizeSpaces(name + " " + option)}
	}

	resolved := ResolveOption(r.Option)
	var explicit *string
	if resolved.Kind == internal.OptionFlavor {
		explicit = &resolved.Value
	}

	key := Normalize(r.Name, explicit)
	if r.Section != nil && r.Section.Valid() {
		key.Section = *r.Section
	}
	if key.Weight == nil && key.Section != internal.SectionRaw && resolved.Kind == internal.OptionWeight {
		weight := resolved.Value
		key.Weight = &weight
	}
	return key
}

func isCorruptToken(folded string) bool {
	for _, re := range corruptShapes {
		if re.MatchString(folded) {
			return true
		}
	}
	return false
}

func weightOr(k internal.CatalogKey, fallback string) string {
	if k.Weight != nil {
		return *k.Weight
	}
	return fallback
}
