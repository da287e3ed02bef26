package domain

import "time"

type DocumentType string

const (
	DocumentFactura DocumentType = "Factura"
	DocumentBoleta  DocumentType = "Boleta"
	DocumentNone    DocumentType = ""
)

// IsFormal reports whether the document is one of the two legal sale documents.
func (d DocumentType) IsFormal() bool {
	return d == DocumentFactura || d == DocumentBoleta
}

type HardwareSpec struct {
	Capacity string // 16GB
	Type     string // DDR4, NVME
}

type OriginalSource int

const (
	OriginalSourceNone OriginalSource = iota
	OriginalSourceDetailed
	OriginalSourceFlat
	OriginalSourceLegacyText
)

func (s OriginalSource) String() string {
	switch s {
	case OriginalSourceDetailed:
		return "detailed"
	case OriginalSourceFlat:
		return "flat"
	case OriginalSourceLegacyText:
		return "legacy_text"
	default:
		return "none"
	}
}

// OriginalSpec is the hardware a ticket arrived with, resolved once from
// whichever legacy shape the document carried.
type OriginalSpec struct {
	Source OriginalSource
	Items  []HardwareSpec
}

type HistoryEvent struct {
	Area   string
	Action string
	At     time.Time
}

type Ticket struct {
	ID       string
	TicketID string

	Status      string
	CurrentArea string
	Deleted     bool
	CreatedAt   *time.Time
	SoldAt      *time.Time // fechaSalida
	ClosedAt    *time.Time
	UpdatedAt   *time.Time

	PurchasePrice  float64 // precioCompra
	SalePrice      float64 // precioVenta, also the list price while in stock
	ExtraCosts     float64 // costosExtra
	Viatico        float64
	Advertising    float64 // publicidad
	SparePartsCost float64
	ServiceCost    float64

	Brand      string
	DeviceType string
	Technician string

	RAM          []HardwareSpec
	Disk         []HardwareSpec
	OriginalRAM  OriginalSpec
	OriginalDisk OriginalSpec

	PurchasedWithInvoice bool
	SaleDocument         DocumentType

	History []HistoryEvent
}
