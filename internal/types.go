package internal

import "time"

// Section is the top-level product category of the catalog.
type Section string

const (
	SectionDog   Section = "PERRO"
	SectionCat   Section = "GATO"
	SectionOther Section = "OTROS"
	SectionRaw   Section = "CRUDO"
)

func ParseSection(word string) (Section, bool) {
	switch Section(word) {
	case SectionDog, SectionCat, SectionOther, SectionRaw:
		return Section(word), true
	}
	return "", false
}

func (s Section) Valid() bool {
	_, ok := ParseSection(string(s))
	return ok
}

// CatalogKey is the canonical identity of one sellable SKU. Weight is nil
// for unit-counted items.
type CatalogKey struct {
	Section Section
	Product string
	Weight  *string
}

func (k CatalogKey) Equal(other CatalogKey) bool {
	if k.Section != other.Section || k.Product != other.Product {
		return false
	}
	if (k.Weight == nil) != (other.Weight == nil) {
		return false
	}
	return k.Weight == nil || *k.Weight == *other.Weight
}

// LegacyRecord is the two-field storage form used by historical order and
// inventory rows. Option historically carried a weight, a flavor or garbage;
// Section exists only on newer rows. Read-only input, never mutated.
type LegacyRecord struct {
	Name    string
	Option  string
	Section *Section
}

type LegacyOptionKind string

const (
	OptionWeight  LegacyOptionKind = "weight"
	OptionFlavor  LegacyOptionKind = "flavor"
	OptionUnknown LegacyOptionKind = "unknown"
)

// LegacyOption is the dual-purpose option field resolved to a single
// interpretation.
type LegacyOption struct {
	Kind  LegacyOptionKind
	Value string
}

type SubOption struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// OrderLineItem is one product line on a customer order.
type OrderLineItem struct {
	RawName    string
	SubOptions []SubOption
	Quantity   int
}

// EffectiveQuantity is the first sub-option's quantity, else the line
// quantity, else 1.
func (it OrderLineItem) EffectiveQuantity() int {
	if len(it.SubOptions) > 0 && it.SubOptions[0].Quantity > 0 {
		return it.SubOptions[0].Quantity
	}
	if it.Quantity > 0 {
		return it.Quantity
	}
	return 1
}

type Order struct {
	ID           string
	Location     string
	DeliveryDate *string // YYYY-MM-DD, overrides CreatedAt when present
	CreatedAt    time.Time
	Items        []OrderLineItem
}

type RowSource string

const (
	SourceXLSX      RowSource = "xlsx"
	SourceHTMLTable RowSource = "html_table"
	SourcePDF       RowSource = "pdf"
)

// ImportRow is one parsed line from an intake file before normalization.
type ImportRow struct {
	LineNo  int
	Source  RowSource
	RawLine string
	Name    *string
	Qty     *float64
	Option  *string
	OrderID *string
	Meta    map[string]any
}

// DemandRow is the persisted per-day demand count for one catalog item at
// one location.
type DemandRow struct {
	Location string
	Day      string
	Key      CatalogKey
	Count    int
}
