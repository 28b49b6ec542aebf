package util

import "testing"

func TestParseWeight(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string // "" means no weight expected
	}{
		{name: "plain kg", input: "BOX PERRO POLLO 5KG", want: "5KG"},
		{name: "lowercase kg", input: "pollo 5kg", want: "5KG"},
		{name: "kilo word", input: "HUESOS CARNOSOS 1 KILO", want: "1KG"},
		{name: "gramos word", input: "CORNALITOS 500 GRAMOS", want: "500G"},
		{name: "grs", input: "TREATS 100 GRS", want: "100G"},
		{name: "litro", input: "CALDO DE HUESOS 1 LITRO", want: "1L"},
		{name: "decimal comma", input: "BOX GATO POLLO 2,5 KG", want: "2.5KG"},
		{name: "last token wins", input: "COMBO 1KG + 5KG", want: "5KG"},
		{name: "count x-token rejected", input: "TRAQUEA X1", want: ""},
		{name: "dimension rejected", input: "HUESOS 2 X 3", want: ""},
		{name: "unit count rejected", input: "BOX DE COMPLEMENTOS - 1 U", want: ""},
		{name: "unidades rejected", input: "GALLETAS 6 UNIDADES", want: ""},
		{name: "no number", input: "OREJAS DESHIDRATADAS", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			parsed := ParseWeight(tc.input)
			if tc.want == "" {
				if parsed.Token != nil {
					t.Fatalf("got %q want nil", *parsed.Token)
				}
				return
			}
			if parsed.Token == nil {
				t.Fatalf("got nil want %q", tc.want)
			}
			if *parsed.Token != tc.want {
				t.Fatalf("got %q want %q", *parsed.Token, tc.want)
			}
		})
	}
}

func TestParseWeightToken(t *testing.T) {
	token, ok := ParseWeightToken("10KG")
	if !ok || token != "10KG" {
		t.Fatalf("got %q ok=%v", token, ok)
	}
	token, ok = ParseWeightToken(" 500 grs ")
	if !ok || token != "500G" {
		t.Fatalf("got %q ok=%v", token, ok)
	}
	if _, ok := ParseWeightToken("VACA"); ok {
		t.Fatal("flavor parsed as weight")
	}
	if _, ok := ParseWeightToken("1 U"); ok {
		t.Fatal("unit count parsed as weight")
	}
}

func TestFold(t *testing.T) {
	if got := Fold("  Box Perro   Pollo "); got != "BOX PERRO POLLO" {
		t.Fatalf("got %q", got)
	}
	if got := Fold("Tráquea"); got != "TRAQUEA" {
		t.Fatalf("got %q", got)
	}
}

func TestCleanName(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{input: "BOX PERRO POLLO 10KG", want: "BOX PERRO POLLO"},
		{input: "Big Dog (15kg)", want: "BIG DOG"},
		{input: "POLLO - 5KG", want: "POLLO"},
	}
	for _, tc := range cases {
		if got := CleanName(tc.input); got != tc.want {
			t.Fatalf("CleanName(%q)=%q want %q", tc.input, got, tc.want)
		}
	}
}

func TestParseQty(t *testing.T) {
	qty := ParseQty("3")
	if qty == nil || *qty != 3 {
		t.Fatalf("got %v", qty)
	}
	qty = ParseQty("x2 cajas")
	if qty == nil || *qty != 2 {
		t.Fatalf("got %v", qty)
	}
	if ParseQty("sin datos") != nil {
		t.Fatal("expected nil for non-numeric cell")
	}
}
