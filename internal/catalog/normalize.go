package catalog

import (
	"regexp"
	"strings"

	"barfops/internal"
	"barfops/internal/util"
)

const canonicalDelim = " - "

// BigDog is the composite product family whose flavor travels separately
// from the base name and whose weight is fixed.
const (
	BigDog       = "BIG DOG"
	bigDogWeight = "15KG"
)

// FlavorKeywords are the recognized BIG DOG flavors, scanned in order.
var FlavorKeywords = []string{"POLLO", "VACA", "CORDERO", "CERDO", "CONEJO", "PAVO", "MIX"}

var reBareWord = regexp.MustCompile(`^[A-ZÑ]+$`)

type ruleKind int

const (
	rulePrefix ruleKind = iota
	ruleKeyword
)

// sectionRules classify text that lacks the canonical delimiter. The order
// is load-bearing: box prefixes win over keywords, complements over raw
// cuts, so adding a category is a table change.
type sectionRule struct {
	kind      ruleKind
	pattern   string
	section   internal.Section
	bigDog    bool   // product recomposed as BIG DOG + flavor, fixed weight
	fixedName string // non-empty: product forced to this name
	rawName   bool   // raw cuts keep size tokens inside the product name
}

var sectionRules = []sectionRule{
	{kind: rulePrefix, pattern: "BOX PERRO ", section: internal.SectionDog},
	{kind: rulePrefix, pattern: "BOX GATO ", section: internal.SectionCat},
	{kind: ruleKeyword, pattern: BigDog, section: internal.SectionDog, bigDog: true},
	{kind: ruleKeyword, pattern: "BOX DE COMPLEMENTOS", section: internal.SectionOther, fixedName: "BOX DE COMPLEMENTOS"},
	{kind: ruleKeyword, pattern: "HUESOS", section: internal.SectionOther},
	{kind: ruleKeyword, pattern: "OREJA", section: internal.SectionRaw, rawName: true},
	{kind: ruleKeyword, pattern: "TREAT", section: internal.SectionRaw, rawName: true},
	{kind: ruleKeyword, pattern: "TRAQUEA", section: internal.SectionRaw, rawName: true},
	{kind: ruleKeyword, pattern: "GARRAS", section: internal.SectionRaw, rawName: true},
	{kind: ruleKeyword, pattern: "CORNALITOS", section: internal.SectionRaw, rawName: true},
	{kind: ruleKeyword, pattern: "CALDO", section: internal.SectionRaw, rawName: true},
	{kind: ruleKeyword, pattern: "HIGADO", section: internal.SectionRaw, rawName: true},
	{kind: ruleKeyword, pattern: "POLLO 40/100GRS", section: internal.SectionRaw, rawName: true},
}

// Normalize resolves free-form product text into its canonical catalog key.
// Total: unrecognized input degrades to OTROS with the name preserved, it
// never fails.
func Normalize(text string, explicitOption *string) internal.CatalogKey {
	folded := util.Fold(text)
	if key, ok := parseCanonical(folded); ok {
		return key
	}

	section := internal.SectionOther
	rest := folded
	fixedName := ""
	for _, rule := range sectionRules {
		switch rule.kind {
		case rulePrefix:
			if !strings.HasPrefix(folded, rule.pattern) {
				continue
			}
			rest = strings.TrimPrefix(folded, rule.pattern)
		case ruleKeyword:
			if !strings.Contains(folded, rule.pattern) {
				continue
			}
		}
		if rule.bigDog {
			return bigDogKey(folded, explicitOption)
		}
		if rule.rawName {
			return internal.CatalogKey{Section: rule.section, Product: folded}
		}
		section = rule.section
		fixedName = rule.fixedName
		break
	}

	parsed := util.ParseWeight(rest)
	product := baseName(rest, parsed.Raw)
	if fixedName != "" {
		product = fixedName
	}
	if product == "" {
		product = folded
	}
	return internal.CatalogKey{Section: section, Product: product, Weight: parsed.Token}
}

// FindFlavor returns the first BIG DOG flavor keyword contained in text.
func FindFlavor(text string) string {
	folded := util.Fold(text)
	for _, flavor := range FlavorKeywords {
		if strings.Contains(folded, flavor) {
			return flavor
		}
	}
	return ""
}

func bigDogKey(folded string, explicitOption *string) internal.CatalogKey {
	flavor := ""
	if explicitOption != nil {
		if opt := util.Fold(*explicitOption); reBareWord.MatchString(opt) {
			flavor = opt
		}
	}
	if flavor == "" {
		flavor = FindFlavor(folded)
	}
	product := BigDog
	if flavor != "" {
		product += " " + flavor
	}
	weight := bigDogWeight
	return internal.CatalogKey{Section: internal.SectionDog, Product: product, Weight: &weight}
}

// parseCanonical splits "SECTION - PRODUCT - WEIGHT" (or the weight-less
// form) when the text is already in display shape. The product itself may
// contain the delimiter, so only the last field is probed as a weight and
// everything between section and weight is rejoined as the product.
func parseCanonical(folded string) (internal.CatalogKey, bool) {
	parts := strings.Split(folded, canonicalDelim)
	if len(parts) < 2 {
		return internal.CatalogKey{}, false
	}
	section, ok := internal.ParseSection(strings.TrimSpace(parts[0]))
	if !ok {
		return internal.CatalogKey{}, false
	}
	rest := parts[1:]
	key := internal.CatalogKey{Section: section}
	if len(rest) > 1 {
		if token, ok := util.ParseWeightToken(rest[len(rest)-1]); ok {
			key.Weight = &token
			rest = rest[:len(rest)-1]
		}
	}
	key.Product = strings.TrimSpace(strings.Join(rest, canonicalDelim))
	return key, true
}

var (
	reParens    = regexp.MustCompile(`\([^)]*\)`)
	reCountTail = regexp.MustCompile(`\s*-\s*(\d+\s*[A-ZÑ]*|X\d+)$`)
)

// baseName strips the extracted weight token and parenthetical or
// trailing-dash noise to leave the bare product name.
func baseName(text, weightRaw string) string {
	s := text
	if weightRaw != "" {
		if idx := strings.LastIndex(s, weightRaw); idx >= 0 {
			s = s[:idx] + " " + s[idx+len(weightRaw):]
		}
	}
	s = reParens.ReplaceAllString(s, " ")
	s = util.NormalizeSpaces(s)
	s = reCountTail.ReplaceAllString(s, "")
	s = strings.Trim(s, " -")
	return util.NormalizeSpaces(s)
}
