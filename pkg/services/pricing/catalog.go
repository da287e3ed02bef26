package pricing

import (
	"github.com/de-tools/shop-ledger/pkg/models/domain"
	"github.com/samber/lo"
)

// Resolver prices a single hardware component. A zero result means the
// price is unknown.
type Resolver interface {
	Resolve(kind domain.PriceCategory, capacity, typeHint string) float64
}

type priceKey struct {
	category domain.PriceCategory
	capacity string
	typ      string
}

type indexedEntry struct {
	key   priceKey
	price float64
}

// Catalog is an immutable index over a flat price list.
type Catalog struct {
	exact   map[priceKey]float64
	entries []indexedEntry
}

// NewCatalog indexes entries once. When several entries normalize to the
// same key the first one wins.
func NewCatalog(entries []domain.PriceEntry) *Catalog {
	c := &Catalog{
		exact:   make(map[priceKey]float64, len(entries)),
		entries: make([]indexedEntry, 0, len(entries)),
	}

	for _, e := range entries {
		key := priceKey{
			category: e.Category,
			capacity: NormalizeCapacity(e.Capacity),
			typ:      normalizeType(e.Category, e.Type),
		}
		if key.capacity == "" {
			continue
		}
		if _, exists := c.exact[key]; !exists {
			c.exact[key] = e.Price
		}
		c.entries = append(c.entries, indexedEntry{key: key, price: e.Price})
	}

	return c
}

func (c *Catalog) Resolve(kind domain.PriceCategory, capacity, typeHint string) float64 {
	if c == nil {
		return 0
	}
	normCap := NormalizeCapacity(capacity)
	if normCap == "" {
		return 0
	}

	if price, ok := c.exact[priceKey{category: kind, capacity: normCap, typ: normalizeType(kind, typeHint)}]; ok {
		return price
	}
	if price, ok := c.exact[priceKey{category: kind, capacity: normCap, typ: fallbackType(kind)}]; ok {
		return price
	}

	entry, found := lo.Find(c.entries, func(e indexedEntry) bool {
		return e.key.category == kind && e.key.capacity == normCap
	})
	if !found {
		return 0
	}
	return entry.price
}

// Len returns the number of usable entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// SumSpecs prices every item of a detail list.
func SumSpecs(r Resolver, kind domain.PriceCategory, specs []domain.HardwareSpec) float64 {
	total := 0.0
	for _, s := range specs {
		total += r.Resolve(kind, s.Capacity, s.Type)
	}
	return total
}

// Unresolved counts items of a detail list that resolve to the zero sentinel.
func Unresolved(r Resolver, kind domain.PriceCategory, specs []domain.HardwareSpec) int {
	return lo.CountBy(specs, func(s domain.HardwareSpec) bool {
		return r.Resolve(kind, s.Capacity, s.Type) == 0
	})
}

func normalizeType(kind domain.PriceCategory, raw string) string {
	if kind == domain.PriceCategoryDisk {
		return NormalizeDiskType(raw)
	}
	return NormalizeRAMType(raw)
}

func fallbackType(kind domain.PriceCategory) string {
	if kind == domain.PriceCategoryDisk {
		return DiskFallbackType
	}
	return RAMFallbackType
}
