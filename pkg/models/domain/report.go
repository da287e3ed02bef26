package domain

import "time"

// AggregateReport is built once per aggregation pass over the full ticket set.
type AggregateReport struct {
	GeneratedAt  time.Time
	TicketCount  int
	Stock        StockSummary
	Sales        SalesSummary
	ByBrand      []DimensionTotal
	ByType       []DimensionTotal
	ByTechnician []DimensionTotal
	Monthly      []SeriesPoint
	Weekly       []SeriesPoint
	Risk         RiskSummary
	SLA          SLASummary
	Operations   OperationsSummary
	Findings     []Finding
}

type StockSummary struct {
	ActiveCount     int
	InvestedCapital float64
	EstimatedValue  float64
	StaleCount      int
	StaleCapital    float64
	ZombieCount     int
	ZombieCapital   float64
	ByArea          []AreaStock
}

type AreaStock struct {
	Area            string
	Count           int
	InvestedCapital float64
	EstimatedValue  float64
	StaleCount      int
	StaleCapital    float64
}

type SalesSummary struct {
	Count           int
	GrossVolume     float64
	TotalCost       float64
	EconomicCost    float64
	GrossMargin     float64
	ImmediateProfit float64
	VATDebit        float64
	VATCredit       float64
	VATPayable      float64
	VATShadow       float64
	IncomeTaxFiscal float64
	IncomeTaxShadow float64
	NetRealProfit   float64
	AverageTicket   float64
	MarginPercent   float64
	// InconsistentSoldSignals counts sold tickets whose status, area and
	// sold timestamp do not all agree.
	InconsistentSoldSignals int
}

type DimensionTotal struct {
	Key           string
	Count         int
	Revenue       float64
	Cost          float64
	GrossMargin   float64
	NetRealProfit float64
}

type SeriesPoint struct {
	Key             string
	Count           int
	Revenue         float64
	Cost            float64
	GrossMargin     float64
	NetRealProfit   float64
	VATPayable      float64
	IncomeTaxFiscal float64
}

type RiskBucket struct {
	Count    int
	Exposure float64
}

type RiskSummary struct {
	TaxHit     RiskBucket // informal purchase, formal sale
	LostCredit RiskBucket // formal purchase, informal sale
	// Matrix[purchaseFormal][saleFormal] with index 1 meaning formal.
	Matrix [2][2]int
}

type AreaSLA struct {
	Area             string
	LimitHours       float64
	Count            int
	Expired          int
	PercentRemaining float64
}

type SLASummary struct {
	Count            int
	Expired          int
	PercentRemaining float64
	ByArea           []AreaSLA
}

type AreaOperations struct {
	Area         string
	OpenCount    int
	AvgAgeDays   float64
	ClosedCount  int
	AvgCycleDays float64
	AvgDwellDays float64
}

type OperationsSummary struct {
	ClosedCount  int
	AvgCycleDays float64
	OpenCount    int
	AvgAgeDays   float64
	ZombieCount  int
	ByArea       []AreaOperations
}
