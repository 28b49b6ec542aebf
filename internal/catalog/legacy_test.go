package catalog

import (
	"testing"

	"barfops/internal"
	"barfops/internal/util"
)

func TestLegacyRoundTrip(t *testing.T) {
	for _, k := range sampleCatalog() {
		record := ToLegacy(k)
		got := FromLegacy(record)
		if !got.Equal(k) {
			t.Fatalf("round trip drifted: %s -> {%q %q} -> %s",
				Display(k), record.Name, record.Option, Display(got))
		}
	}
}

func TestToLegacyComposition(t *testing.T) {
	cases := []struct {
		name string
		key  internal.CatalogKey
		want internal.LegacyRecord
	}{
		{
			name: "dog box",
			key:  internal.CatalogKey{Section: internal.SectionDog, Product: "POLLO", Weight: util.StringPtr("10KG")},
			want: internal.LegacyRecord{Name: "BOX PERRO POLLO", Option: "10KG"},
		},
		{
			name: "big dog flavor moves to option",
			key:  internal.CatalogKey{Section: internal.SectionDog, Product: "BIG DOG VACA", Weight: util.StringPtr("15KG")},
			want: internal.LegacyRecord{Name: "BIG DOG (15kg)", Option: "VACA"},
		},
		{
			name: "cat box",
			key:  internal.CatalogKey{Section: internal.SectionCat, Product: "PESCADO"},
			want: internal.LegacyRecord{Name: "BOX GATO PESCADO", Option: ""},
		},
		{
			name: "raw keeps bare name",
			key:  internal.CatalogKey{Section: internal.SectionRaw, Product: "TRAQUEA X1"},
			want: internal.LegacyRecord{Name: "TRAQUEA X1", Option: ""},
		},
		{
			name: "otros falls back to unit option",
			key:  internal.CatalogKey{Section: internal.SectionOther, Product: "GALLETAS"},
			want: internal.LegacyRecord{Name: "GALLETAS", Option: "1 U"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ToLegacy(tc.key)
			if got.Name != tc.want.Name || got.Option != tc.want.Option {
				t.Fatalf("got {%q %q} want {%q %q}", got.Name, got.Option, tc.want.Name, tc.want.Option)
			}
		})
	}
}

func TestFromLegacyCorruption(t *testing.T) {
	got := FromLegacy(internal.LegacyRecord{Name: "1 U", Option: "1 U"})
	want := internal.CatalogKey{Section: internal.SectionOther, Product: "BOX DE COMPLEMENTOS"}
	if !got.Equal(want) {
		t.Fatalf("got %s want %s", Display(got), Display(want))
	}

	// Unknown corrupted shapes are surfaced concatenated, never guessed.
	got = FromLegacy(internal.LegacyRecord{Name: "X3", Option: "X3"})
	if got.Section != internal.SectionOther || got.Product != "X3 X3" {
		t.Fatalf("got %s", Display(got))
	}
}

func TestFromLegacySectionOverride(t *testing.T) {
	section := internal.SectionCat
	got := FromLegacy(internal.LegacyRecord{Name: "POLLO", Option: "5KG", Section: &section})
	want := internal.CatalogKey{Section: internal.SectionCat, Product: "POLLO", Weight: util.StringPtr("5KG")}
	if !got.Equal(want) {
		t.Fatalf("got %s want %s", Display(got), Display(want))
	}
}

func TestResolveOption(t *testing.T) {
	cases := []struct {
		input string
		kind  internal.LegacyOptionKind
		value string
	}{
		{input: "10KG", kind: internal.OptionWeight, value: "10KG"},
		{input: "500 grs", kind: internal.OptionWeight, value: "500G"},
		{input: "VACA", kind: internal.OptionFlavor, value: "VACA"},
		{input: "Pollo", kind: internal.OptionFlavor, value: "POLLO"},
		{input: "1 U", kind: internal.OptionUnknown, value: "1 U"},
		{input: "", kind: internal.OptionUnknown, value: ""},
	}
	for _, tc := range cases {
		got := ResolveOption(tc.input)
		if got.Kind != tc.kind || got.Value != tc.value {
			t.Fatalf("ResolveOption(%q) = {%s %q} want {%s %q}", tc.input, got.Kind, got.Value, tc.kind, tc.value)
		}
	}
}
