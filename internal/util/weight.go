package util

import (
	"regexp"
	"strconv"
	"strings"
)

// Weight tokens are the trailing size markers on catalog names ("5kg",
// "500 grs", "1 litro"). Count-style tokens ("x2", "1 U", "3 unidades")
// look similar but are not weights and must never be extracted as one.
var (
	reWeight      = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(kg|kilos?|grs?|gramos?|g|lts?|litros?|l)\b`)
	reWeightToken = regexp.MustCompile(`(?i)^(\d+(?:[.,]\d+)?)\s*(kg|kilos?|grs?|gramos?|g|lts?|litros?|l)$`)

	rejectShapes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b\d+\s*x\s*\d+\b`),
		regexp.MustCompile(`(?i)\b\d+\s*u\b`),
		regexp.MustCompile(`(?i)\b\d+\s*(unidades|pcs|piezas|capsulas|tabletas|comprimidos)\b`),
	}

	reFirstNumber = regexp.MustCompile(`(\d+(?:[.,]\d+)?)`)
)

type ParsedWeight struct {
	Token *string // normalized, e.g. "5KG"; nil when no weight found
	Raw   string  // matched substring as it appeared in the input
}

// ParseWeight extracts the trailing weight token of a free-form product
// text. Inputs carrying a count-style token yield no weight at all.
func ParseWeight(input string) ParsedWeight {
	for _, re := range rejectShapes {
		if re.MatchString(input) {
			return ParsedWeight{}
		}
	}

	matches := reWeight.FindAllStringSubmatch(input, -1)
	if len(matches) == 0 {
		return ParsedWeight{}
	}
	last := matches[len(matches)-1]
	token := weightToken(last[1], last[2])
	return ParsedWeight{Token: &token, Raw: last[0]}
}

// ParseWeightToken reports whether the whole input is a single weight token
// and returns its normalized form.
func ParseWeightToken(input string) (string, bool) {
	m := reWeightToken.FindStringSubmatch(strings.TrimSpace(input))
	if m == nil {
		return "", false
	}
	return weightToken(m[1], m[2]), true
}

// NormalizeWeight upper-cases and compacts a weight field; recognizable
// tokens are canonicalized, anything else is preserved compacted.
func NormalizeWeight(input string) string {
	if token, ok := ParseWeightToken(input); ok {
		return token
	}
	return strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(input)), " ", "")
}

func weightToken(number, unit string) string {
	number = strings.ReplaceAll(number, ",", ".")
	return number + unitSymbol(unit)
}

func unitSymbol(unit string) string {
	switch strings.ToLower(unit) {
	case "kg", "kilo", "kilos":
		return "KG"
	case "g", "gr", "grs", "gramo", "gramos":
		return "G"
	case "l", "lt", "lts", "litro", "litros":
		return "L"
	default:
		return strings.ToUpper(unit)
	}
}

// ParseQty reads the first numeric token of an import cell as an order
// quantity.
func ParseQty(input string) *float64 {
	m := reFirstNumber.FindStringSubmatch(input)
	if m == nil {
		return nil
	}
	norm := strings.ReplaceAll(m[1], ",", ".")
	qty, err := strconv.ParseFloat(norm, 64)
	if err != nil {
		return nil
	}
	return &qty
}
