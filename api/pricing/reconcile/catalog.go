package reconcile

import "github.com/shopspring/decimal"

// Dimension is the physical dimension a purchase unit measures.
type Dimension int

const (
	DimensionUnknown Dimension = iota
	DimensionMass
	DimensionVolume
)

func (d Dimension) String() string {
	switch d {
	case DimensionMass:
		return "mass"
	case DimensionVolume:
		return "volume"
	}
	return "unknown"
}

// CatalogEntry is one material from the external material master snapshot.
// BaseUnit is the unit prices are compared in (KG for mass materials, L for
// volume materials). Density is mass per volume and defaults to 1 when the
// master has no measured value.
type CatalogEntry struct {
	Code     string
	Name     string
	Class    MaterialClass
	BaseUnit string
	Density  decimal.Decimal
}

// Dimension returns the dimension implied by the entry's base unit.
func (e CatalogEntry) Dimension() Dimension {
	dim, ok := UnitDimension(e.BaseUnit)
	if !ok {
		return DimensionUnknown
	}
	return dim
}

// Catalog is an immutable snapshot of the material master, keyed by code.
// Lookup is exact and case-sensitive.
type Catalog struct {
	entries map[string]CatalogEntry
}

func NewCatalog(entries []CatalogEntry) Catalog {
	m := make(map[string]CatalogEntry, len(entries))
	for _, e := range entries {
		m[e.Code] = e
	}
	return Catalog{entries: m}
}

func (c Catalog) Resolve(code string) (CatalogEntry, bool) {
	e, ok := c.entries[code]
	return e, ok
}

func (c Catalog) Len() int {
	return len(c.entries)
}
