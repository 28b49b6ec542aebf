package util

import (
	"regexp"
	"strings"
)

var (
	reSpaces = regexp.MustCompile(`\s+`)
	reParen  = regexp.MustCompile(`\([^)]*\)`)
	reNoise  = regexp.MustCompile(`[|;,]+`)
)

var accentReplacer = strings.NewReplacer(
	"Á", "A", "É", "E", "Í", "I", "Ó", "O", "Ú", "U", "Ü", "U",
)

func NormalizeSpaces(input string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(input, " "))
}

// Fold upper-cases, strips accents and collapses whitespace. All name
// comparisons in the engine run over folded text.
func Fold(input string) string {
	return NormalizeSpaces(accentReplacer.Replace(strings.ToUpper(input)))
}

// CleanName reduces a product name to its comparable core: folded, with
// parenthetical noise, weight tokens, dashes and separators removed.
func CleanName(input string) string {
	s := Fold(input)
	s = reParen.ReplaceAllString(s, " ")
	s = reWeight.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "-", " ")
	s = reNoise.ReplaceAllString(s, " ")
	return NormalizeSpaces(s)
}

func StringPtr(v string) *string { return &v }

func FloatPtr(v float64) *float64 { return &v }

func IntPtr(v int) *int { return &v }
