package pricing

import (
	"testing"

	"github.com/de-tools/shop-ledger/pkg/models/domain"
	"github.com/stretchr/testify/assert"
)

func testEntries() []domain.PriceEntry {
	return []domain.PriceEntry{
		{Category: domain.PriceCategoryRAM, Type: "DDR4", Capacity: "16GB", Price: 30000},
		{Category: domain.PriceCategoryRAM, Type: "DDR5", Capacity: "16 GB", Price: 45000},
		{Category: domain.PriceCategoryRAM, Type: "DDR3", Capacity: "4", Price: 8000},
		{Category: domain.PriceCategoryDisk, Type: "SSD", Capacity: "512GB", Price: 35000},
		{Category: domain.PriceCategoryDisk, Type: "NVMe", Capacity: "512GB", Price: 42000},
		{Category: domain.PriceCategoryDisk, Type: "HDD", Capacity: "1TB", Price: 25000},
		{Category: domain.PriceCategoryDisk, Type: "SSD", Capacity: "", Price: 99999},
	}
}

func TestNormalizeCapacity(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"16", "16GB"},
		{" 8 ", "8GB"},
		{"16GB", "16GB"},
		{"16 gb", "16GB"},
		{"1 TB", "1TB"},
		{"2x 8GB DDR4", "8GB"},
		{"", ""},
		{"N/A", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCapacity(tt.raw))
		})
	}
}

func TestNormalizeDiskType(t *testing.T) {
	assert.Equal(t, DiskTypeNVME, NormalizeDiskType("nvme m.2"))
	assert.Equal(t, DiskTypeNVME, NormalizeDiskType("M.2"))
	assert.Equal(t, DiskTypeHDD, NormalizeDiskType("hdd 7200rpm"))
	assert.Equal(t, DiskTypeSSD, NormalizeDiskType("ssd sata"))
	assert.Equal(t, DiskTypeSSD, NormalizeDiskType(""))
	assert.Equal(t, DiskTypeSSD, NormalizeDiskType("unknown"))
}

func TestCatalog_Resolve(t *testing.T) {
	catalog := NewCatalog(testEntries())

	tests := []struct {
		name     string
		kind     domain.PriceCategory
		capacity string
		typeHint string
		want     float64
	}{
		{"exact ram", domain.PriceCategoryRAM, "16GB", "DDR5", 45000},
		{"ram type is case insensitive", domain.PriceCategoryRAM, "16GB", "ddr 5", 45000},
		{"ram falls back to DDR4", domain.PriceCategoryRAM, "16GB", "LPDDR4X", 30000},
		{"ram with no type falls back to DDR4", domain.PriceCategoryRAM, "16", "", 30000},
		{"ram falls back to any type", domain.PriceCategoryRAM, "4GB", "DDR4", 8000},
		{"exact nvme", domain.PriceCategoryDisk, "512GB", "NVMe PCIe", 42000},
		{"unknown disk type is ssd", domain.PriceCategoryDisk, "512", "", 35000},
		{"hdd exact", domain.PriceCategoryDisk, "1TB", "HDD", 25000},
		{"hdd capacity only has hdd entry", domain.PriceCategoryDisk, "1TB", "NVME", 25000},
		{"unknown capacity", domain.PriceCategoryDisk, "256GB", "SSD", 0},
		{"unparseable capacity", domain.PriceCategoryRAM, "lots", "DDR4", 0},
		{"category mismatch", domain.PriceCategoryRAM, "512GB", "SSD", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, catalog.Resolve(tt.kind, tt.capacity, tt.typeHint))
		})
	}
}

func TestCatalog_NumericAndSuffixedCapacityResolveIdentically(t *testing.T) {
	catalog := NewCatalog(testEntries())

	assert.Equal(t,
		catalog.Resolve(domain.PriceCategoryRAM, "16GB", "DDR4"),
		catalog.Resolve(domain.PriceCategoryRAM, "16", "DDR4"),
	)
}

func TestCatalog_ResultIndependentOfCallOrder(t *testing.T) {
	catalog := NewCatalog(testEntries())

	first := catalog.Resolve(domain.PriceCategoryDisk, "512GB", "")
	catalog.Resolve(domain.PriceCategoryDisk, "512GB", "NVME")
	catalog.Resolve(domain.PriceCategoryRAM, "16", "DDR5")
	second := catalog.Resolve(domain.PriceCategoryDisk, "512GB", "")

	assert.Equal(t, first, second)
}

func TestCatalog_SkipsEntriesWithoutCapacity(t *testing.T) {
	catalog := NewCatalog(testEntries())
	assert.Equal(t, 6, catalog.Len())
}

func TestCatalog_NilIsEmpty(t *testing.T) {
	var catalog *Catalog
	assert.Equal(t, 0.0, catalog.Resolve(domain.PriceCategoryRAM, "16", "DDR4"))
}

func TestSumSpecsAndUnresolved(t *testing.T) {
	catalog := NewCatalog(testEntries())
	specs := []domain.HardwareSpec{
		{Capacity: "16", Type: "DDR4"},
		{Capacity: "16", Type: "DDR4"},
		{Capacity: "64", Type: "DDR4"},
	}

	assert.Equal(t, 60000.0, SumSpecs(catalog, domain.PriceCategoryRAM, specs))
	assert.Equal(t, 1, Unresolved(catalog, domain.PriceCategoryRAM, specs))
	assert.Equal(t, 0.0, SumSpecs(catalog, domain.PriceCategoryRAM, nil))
}
