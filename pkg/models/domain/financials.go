package domain

// FinancialSnapshot is the derived money view of one ticket. Costs are
// positive magnitudes; deltas may be negative on downgrades.
type FinancialSnapshot struct {
	BaseCost       float64
	RAMDelta       float64
	DiskDelta      float64
	SparePartsCost float64
	ServiceCost    float64
	ExtraCosts     float64
	ViaticoCost    float64
	AdCost         float64
	TotalCost      float64

	SalePrice       float64
	NetCost         float64 // purchase price without VAT, formal purchases only
	EconomicCost    float64 // TotalCost - VATInput
	GrossMargin     float64 // utilidad bruta
	MarginPercent   float64
	ImmediateProfit float64 // ganancia inmediata

	NetSale    float64
	VATOutput  float64
	VATInput   float64
	VATPayable float64
	VATShadow  float64

	DeductibleCost  float64
	TaxableBase     float64
	IncomeTaxFiscal float64
	IncomeTaxShadow float64

	NetRealProfit float64

	IsSold           bool
	IsFormalSale     bool
	IsFormalPurchase bool
}
