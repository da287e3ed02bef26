package api

import "time"

type FinancialSnapshot struct {
	BaseCost       float64 `json:"base_cost"`
	RAMDelta       float64 `json:"ram_delta"`
	DiskDelta      float64 `json:"disk_delta"`
	SparePartsCost float64 `json:"spare_parts_cost"`
	ServiceCost    float64 `json:"service_cost"`
	ExtraCosts     float64 `json:"extra_costs"`
	ViaticoCost    float64 `json:"viatico_cost"`
	AdCost         float64 `json:"ad_cost"`
	TotalCost      float64 `json:"total_cost"`

	SalePrice       float64 `json:"sale_price"`
	NetCost         float64 `json:"net_cost"`
	EconomicCost    float64 `json:"economic_cost"`
	GrossMargin     float64 `json:"gross_margin"`
	MarginPercent   float64 `json:"margin_percent"`
	ImmediateProfit float64 `json:"immediate_profit"`

	NetSale    float64 `json:"net_sale"`
	VATOutput  float64 `json:"vat_output"`
	VATInput   float64 `json:"vat_input"`
	VATPayable float64 `json:"vat_payable"`
	VATShadow  float64 `json:"vat_shadow"`

	DeductibleCost  float64 `json:"deductible_cost"`
	TaxableBase     float64 `json:"taxable_base"`
	IncomeTaxFiscal float64 `json:"income_tax_fiscal"`
	IncomeTaxShadow float64 `json:"income_tax_shadow"`

	NetRealProfit float64 `json:"net_real_profit"`

	IsSold           bool `json:"is_sold"`
	IsFormalSale     bool `json:"is_formal_sale"`
	IsFormalPurchase bool `json:"is_formal_purchase"`
}

type TicketFinancials struct {
	ID        string            `json:"id"`
	TicketID  string            `json:"ticket_id"`
	Financial FinancialSnapshot `json:"financials"`
}

type Finding struct {
	ID             string  `json:"id"`
	Severity       string  `json:"severity"`
	Issue          string  `json:"issue"`
	Subject        string  `json:"subject"`
	Count          int     `json:"count"`
	Amount         float64 `json:"amount"`
	Description    string  `json:"description"`
	Recommendation string  `json:"recommendation"`
}

type AggregateReport struct {
	GeneratedAt  time.Time         `json:"generated_at"`
	TicketCount  int               `json:"ticket_count"`
	Stock        StockSummary      `json:"stock"`
	Sales        SalesSummary      `json:"sales"`
	ByBrand      []DimensionTotal  `json:"by_brand"`
	ByType       []DimensionTotal  `json:"by_type"`
	ByTechnician []DimensionTotal  `json:"by_technician"`
	Monthly      []SeriesPoint     `json:"monthly"`
	Weekly       []SeriesPoint     `json:"weekly"`
	Risk         RiskSummary       `json:"risk"`
	SLA          SLASummary        `json:"sla"`
	Operations   OperationsSummary `json:"operations"`
	Findings     []Finding         `json:"findings"`
}

type StockSummary struct {
	ActiveCount     int         `json:"active_count"`
	InvestedCapital float64     `json:"invested_capital"`
	EstimatedValue  float64     `json:"estimated_value"`
	StaleCount      int         `json:"stale_count"`
	StaleCapital    float64     `json:"stale_capital"`
	ZombieCount     int         `json:"zombie_count"`
	ZombieCapital   float64     `json:"zombie_capital"`
	ByArea          []AreaStock `json:"by_area"`
}

type AreaStock struct {
	Area            string  `json:"area"`
	Count           int     `json:"count"`
	InvestedCapital float64 `json:"invested_capital"`
	EstimatedValue  float64 `json:"estimated_value"`
	StaleCount      int     `json:"stale_count"`
	StaleCapital    float64 `json:"stale_capital"`
}

type SalesSummary struct {
	Count                   int     `json:"count"`
	GrossVolume             float64 `json:"gross_volume"`
	TotalCost               float64 `json:"total_cost"`
	EconomicCost            float64 `json:"economic_cost"`
	GrossMargin             float64 `json:"gross_margin"`
	ImmediateProfit         float64 `json:"immediate_profit"`
	VATDebit                float64 `json:"vat_debit"`
	VATCredit               float64 `json:"vat_credit"`
	VATPayable              float64 `json:"vat_payable"`
	VATShadow               float64 `json:"vat_shadow"`
	IncomeTaxFiscal         float64 `json:"income_tax_fiscal"`
	IncomeTaxShadow         float64 `json:"income_tax_shadow"`
	NetRealProfit           float64 `json:"net_real_profit"`
	AverageTicket           float64 `json:"average_ticket"`
	MarginPercent           float64 `json:"margin_percent"`
	InconsistentSoldSignals int     `json:"inconsistent_sold_signals"`
}

type DimensionTotal struct {
	Key           string  `json:"key"`
	Count         int     `json:"count"`
	Revenue       float64 `json:"revenue"`
	Cost          float64 `json:"cost"`
	GrossMargin   float64 `json:"gross_margin"`
	NetRealProfit float64 `json:"net_real_profit"`
}

type SeriesPoint struct {
	Key             string  `json:"key"`
	Count           int     `json:"count"`
	Revenue         float64 `json:"revenue"`
	Cost            float64 `json:"cost"`
	GrossMargin     float64 `json:"gross_margin"`
	NetRealProfit   float64 `json:"net_real_profit"`
	VATPayable      float64 `json:"vat_payable"`
	IncomeTaxFiscal float64 `json:"income_tax_fiscal"`
}

type RiskBucket struct {
	Count    int     `json:"count"`
	Exposure float64 `json:"exposure"`
}

type RiskSummary struct {
	TaxHit     RiskBucket `json:"tax_hit"`
	LostCredit RiskBucket `json:"lost_credit"`
	// Matrix keys are "<purchase>_<sale>", e.g. "formal_informal".
	Matrix map[string]int `json:"matrix"`
}

type AreaSLA struct {
	Area             string  `json:"area"`
	LimitHours       float64 `json:"limit_hours"`
	Count            int     `json:"count"`
	Expired          int     `json:"expired"`
	PercentRemaining float64 `json:"percent_remaining"`
}

type SLASummary struct {
	Count            int       `json:"count"`
	Expired          int       `json:"expired"`
	PercentRemaining float64   `json:"percent_remaining"`
	ByArea           []AreaSLA `json:"by_area"`
}

type AreaOperations struct {
	Area         string  `json:"area"`
	OpenCount    int     `json:"open_count"`
	AvgAgeDays   float64 `json:"avg_age_days"`
	ClosedCount  int     `json:"closed_count"`
	AvgCycleDays float64 `json:"avg_cycle_days"`
	AvgDwellDays float64 `json:"avg_dwell_days"`
}

type OperationsSummary struct {
	ClosedCount  int              `json:"closed_count"`
	AvgCycleDays float64          `json:"avg_cycle_days"`
	OpenCount    int              `json:"open_count"`
	AvgAgeDays   float64          `json:"avg_age_days"`
	ZombieCount  int              `json:"zombie_count"`
	ByArea       []AreaOperations `json:"by_area"`
}

type PriceResolution struct {
	Category string  `json:"category"`
	Capacity string  `json:"capacity"`
	Type     string  `json:"type"`
	Price    float64 `json:"price"`
	Resolved bool    `json:"resolved"`
}
