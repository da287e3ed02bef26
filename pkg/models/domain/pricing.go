package domain

type PriceCategory string

const (
	PriceCategoryRAM  PriceCategory = "RAM"
	PriceCategoryDisk PriceCategory = "DISK"
)

type PriceEntry struct {
	Category PriceCategory
	Type     string  // DDR4, SSD, NVME
	Capacity string  // 16GB
	Price    float64 // CLP, VAT included
}
