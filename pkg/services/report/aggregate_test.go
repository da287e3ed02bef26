package report

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/shop-ledger/pkg/models/domain"
	"github.com/de-tools/shop-ledger/pkg/services/financials"
	"github.com/de-tools/shop-ledger/pkg/services/pricing"
)

var testNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func at(year int, month time.Month, day, hour int) *time.Time {
	t := time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
	return &t
}

func testSettings() Settings {
	s := DefaultSettings()
	s.Now = testNow
	return s
}

func testTickets() []domain.Ticket {
	return []domain.Ticket{
		{
			ID:            "sold-tax-hit",
			Status:        "Vendido",
			CurrentArea:   "Ventas",
			Brand:         "Lenovo",
			DeviceType:    "Notebook",
			Technician:    "Ana",
			CreatedAt:     at(2025, time.June, 1, 0),
			SoldAt:        at(2025, time.June, 10, 0),
			PurchasePrice: 100000,
			SalePrice:     150000,
			SaleDocument:  domain.DocumentBoleta,
		},
		{
			ID:                   "sold-lost-credit",
			Status:               "Vendido",
			CurrentArea:          "Ventas",
			CreatedAt:            at(2025, time.April, 30, 0),
			SoldAt:               at(2025, time.May, 2, 0),
			ClosedAt:             at(2025, time.May, 4, 0),
			PurchasePrice:        119000,
			SalePrice:            200000,
			PurchasedWithInvoice: true,
		},
		{
			ID:            "fresh",
			Status:        "En proceso",
			CurrentArea:   "Reparación",
			CreatedAt:     at(2025, time.June, 14, 0),
			PurchasePrice: 50000,
			History: []domain.HistoryEvent{
				{Area: "Recepción", At: *at(2025, time.June, 14, 0)},
				{Area: "Reparación", At: *at(2025, time.June, 14, 12)},
			},
		},
		{
			ID:            "zombie",
			Status:        "En proceso",
			CurrentArea:   "Diagnóstico",
			CreatedAt:     at(2025, time.March, 1, 0),
			PurchasePrice: 80000,
			SalePrice:     120000,
			History: []domain.HistoryEvent{
				{Area: "Diagnóstico", At: *at(2025, time.June, 12, 12)},
			},
		},
		{
			ID:            "deleted",
			Deleted:       true,
			CurrentArea:   "Reparación",
			CreatedAt:     at(2024, time.January, 1, 0),
			PurchasePrice: 999999,
		},
	}
}

func TestAggregate_Stock(t *testing.T) {
	report := Aggregate(testTickets(), pricing.NewCatalog(nil), testSettings())

	assert.Equal(t, 5, report.TicketCount)
	assert.Equal(t, 2, report.Stock.ActiveCount)
	assert.Equal(t, 130000.0, report.Stock.InvestedCapital)
	assert.Equal(t, 195000.0, report.Stock.EstimatedValue)
	assert.Equal(t, 1, report.Stock.StaleCount)
	assert.Equal(t, 80000.0, report.Stock.StaleCapital)
	assert.Equal(t, 1, report.Stock.ZombieCount)
	assert.Equal(t, 80000.0, report.Stock.ZombieCapital)

	require.Len(t, report.Stock.ByArea, 2)
	assert.Equal(t, "Diagnóstico", report.Stock.ByArea[0].Area)
	assert.Equal(t, 120000.0, report.Stock.ByArea[0].EstimatedValue)
	assert.Equal(t, "Reparación", report.Stock.ByArea[1].Area)
	assert.Equal(t, 75000.0, report.Stock.ByArea[1].EstimatedValue)
}

func TestAggregate_Sales(t *testing.T) {
	report := Aggregate(testTickets(), pricing.NewCatalog(nil), testSettings())

	assert.Equal(t, 2, report.Sales.Count)
	assert.Equal(t, 350000.0, report.Sales.GrossVolume)
	assert.Equal(t, 175000.0, report.Sales.AverageTicket)
	assert.Equal(t, 23950.0, report.Sales.VATDebit)
	assert.Equal(t, 19000.0, report.Sales.VATCredit)
	assert.Equal(t, 23950.0-19000.0, report.Sales.VATPayable)
	assert.Equal(t, 31513.0, report.Sales.IncomeTaxFiscal)
	assert.Equal(t, 0, report.Sales.InconsistentSoldSignals)

	require.Len(t, report.ByBrand, 2)
	assert.Equal(t, UnassignedLabel, report.ByBrand[0].Key)
	assert.Equal(t, 200000.0, report.ByBrand[0].Revenue)
	assert.Equal(t, "Lenovo", report.ByBrand[1].Key)
}

func TestAggregate_Series(t *testing.T) {
	report := Aggregate(testTickets(), pricing.NewCatalog(nil), testSettings())

	require.Len(t, report.Monthly, 12)
	require.Len(t, report.Weekly, 20)

	assert.Equal(t, "2024-07", report.Monthly[0].Key)
	assert.Equal(t, "2025-06", report.Monthly[11].Key)
	assert.Equal(t, 150000.0, report.Monthly[11].Revenue)
	assert.Equal(t, "2025-05", report.Monthly[10].Key)
	assert.Equal(t, 200000.0, report.Monthly[10].Revenue)
	assert.Equal(t, 0, report.Monthly[9].Count)

	assert.Equal(t, "2025-W24", report.Weekly[19].Key)
	assert.Equal(t, 1, report.Weekly[19].Count)
	assert.Equal(t, "2025-W18", report.Weekly[13].Key)
	assert.Equal(t, 1, report.Weekly[13].Count)
}

func TestAggregate_SeriesSkipsUndatedSales(t *testing.T) {
	tickets := []domain.Ticket{{Status: "Vendido", SalePrice: 1000}}

	report := Aggregate(tickets, nil, testSettings())

	assert.Equal(t, 1, report.Sales.Count)
	for _, p := range report.Monthly {
		assert.Zero(t, p.Count)
	}
}

func TestAggregate_Risk(t *testing.T) {
	report := Aggregate(testTickets(), pricing.NewCatalog(nil), testSettings())

	assert.Equal(t, 1, report.Risk.TaxHit.Count)
	assert.Equal(t, 23950.0+31513.0, report.Risk.TaxHit.Exposure)
	assert.Equal(t, 1, report.Risk.LostCredit.Count)
	assert.Equal(t, 19000.0, report.Risk.LostCredit.Exposure)
	assert.Equal(t, [2][2]int{{0, 1}, {1, 0}}, report.Risk.Matrix)
}

func TestFold_FormalPurchaseInformalSaleOnlyAddsLostCredit(t *testing.T) {
	settings := testSettings()
	calc := financials.NewCalculator(settings.Financials, nil)
	base := testTickets()[:1]
	before := Fold(base, financials.DeriveAll(base, calc), settings)

	extra := domain.Ticket{
		Status:               "Vendido",
		PurchasePrice:        238000,
		SalePrice:            300000,
		PurchasedWithInvoice: true,
	}
	after := append(append([]domain.Ticket{}, base...), extra)
	report := Fold(after, financials.DeriveAll(after, calc), settings)

	inputVAT := calc.Derive(extra).VATInput
	assert.Equal(t, 38000.0, inputVAT)
	assert.Equal(t, before.Risk.TaxHit, report.Risk.TaxHit)
	assert.Equal(t, before.Risk.LostCredit.Count+1, report.Risk.LostCredit.Count)
	assert.Equal(t, before.Risk.LostCredit.Exposure+inputVAT, report.Risk.LostCredit.Exposure)
}

func TestAggregate_SLA(t *testing.T) {
	report := Aggregate(testTickets(), pricing.NewCatalog(nil), testSettings())

	assert.Equal(t, 2, report.SLA.Count)
	assert.Equal(t, 1, report.SLA.Expired)
	assert.InDelta(t, 40.0, report.SLA.PercentRemaining, 1e-9)

	require.Len(t, report.SLA.ByArea, 2)
	assert.Equal(t, "Diagnóstico", report.SLA.ByArea[0].Area)
	assert.Equal(t, 1, report.SLA.ByArea[0].Expired)
	assert.Equal(t, 0.0, report.SLA.ByArea[0].PercentRemaining)
	assert.Equal(t, "Reparación", report.SLA.ByArea[1].Area)
	assert.Equal(t, 72.0, report.SLA.ByArea[1].LimitHours)
	assert.InDelta(t, 200.0/3, report.SLA.ByArea[1].PercentRemaining, 1e-9)
}

func TestAggregate_SLAIgnoresAreasWithoutLimit(t *testing.T) {
	settings := testSettings()
	settings.SLALimits = map[string]time.Duration{"reparación": 10 * time.Hour}
	tickets := []domain.Ticket{
		{CurrentArea: "Bodega", UpdatedAt: at(2025, time.June, 1, 0)},
		{CurrentArea: "REPARACIÓN", UpdatedAt: at(2025, time.June, 15, 7)},
	}

	report := Aggregate(tickets, nil, settings)

	assert.Equal(t, 1, report.SLA.Count)
	assert.Equal(t, 0, report.SLA.Expired)
	assert.InDelta(t, 50.0, report.SLA.PercentRemaining, 1e-9)
}

func TestAggregate_SLAEnteredAreaIgnoresPadding(t *testing.T) {
	tickets := []domain.Ticket{
		{
			CurrentArea: " Reparación ",
			UpdatedAt:   at(2025, time.June, 15, 6),
			History: []domain.HistoryEvent{
				{Area: "Diagnóstico", At: *at(2025, time.June, 13, 12)},
				{Area: "reparación", At: *at(2025, time.June, 14, 12)},
			},
		},
	}

	report := Aggregate(tickets, nil, testSettings())

	require.Len(t, report.SLA.ByArea, 1)
	assert.InDelta(t, 200.0/3, report.SLA.PercentRemaining, 1e-9)
}

func TestAggregate_NonFiniteAmountsDoNotPanic(t *testing.T) {
	tickets := []domain.Ticket{
		{SalePrice: math.NaN(), SaleDocument: domain.DocumentBoleta, Status: "Vendido"},
		{PurchasePrice: math.Inf(1), PurchasedWithInvoice: true, CurrentArea: "Reparación"},
	}

	assert.NotPanics(t, func() {
		report := Aggregate(tickets, pricing.NewCatalog(nil), testSettings())
		assert.Equal(t, 2, report.TicketCount)
	})
}

func TestAggregate_Operations(t *testing.T) {
	report := Aggregate(testTickets(), pricing.NewCatalog(nil), testSettings())

	ops := report.Operations
	assert.Equal(t, 2, ops.ClosedCount)
	assert.InDelta(t, 6.5, ops.AvgCycleDays, 1e-9)
	assert.Equal(t, 2, ops.OpenCount)
	assert.InDelta(t, (1.5+106.5)/2, ops.AvgAgeDays, 1e-9)
	assert.Equal(t, 1, ops.ZombieCount)

	byArea := map[string]domain.AreaOperations{}
	for _, a := range ops.ByArea {
		byArea[a.Area] = a
	}
	assert.InDelta(t, 0.5, byArea["Recepción"].AvgDwellDays, 1e-9)
	assert.Equal(t, 2, byArea["Ventas"].ClosedCount)
}

func TestAggregate_Findings(t *testing.T) {
	report := Aggregate(testTickets(), pricing.NewCatalog(nil), testSettings())

	issues := map[string]domain.Finding{}
	for _, f := range report.Findings {
		issues[f.ID] = f
	}

	require.Contains(t, issues, "global_zombie_stock")
	assert.Equal(t, domain.SeverityCritical, report.Findings[0].Severity)
	assert.Contains(t, issues, "diagnóstico_stale_stock")
	assert.Contains(t, issues, "diagnóstico_sla_expired")
	assert.Equal(t, domain.SeverityHigh, issues["diagnóstico_sla_expired"].Severity)
	assert.Equal(t, 55463.0, issues["global_tax_hit"].Amount)
	assert.Equal(t, domain.SeverityLow, issues["global_lost_credit"].Severity)

	counts := CountBySeverity(report.Findings)
	assert.Equal(t, 1, counts[domain.SeverityCritical])
}

func TestAggregate_InconsistentSoldSignals(t *testing.T) {
	tickets := []domain.Ticket{
		{Status: "Vendido", CurrentArea: "Ventas", SoldAt: at(2025, time.June, 1, 0)},
		{Status: "Vendido", CurrentArea: "Reparación"},
	}

	report := Aggregate(tickets, nil, testSettings())

	assert.Equal(t, 2, report.Sales.Count)
	assert.Equal(t, 1, report.Sales.InconsistentSoldSignals)
}

func TestAggregate_EmptyInput(t *testing.T) {
	report := Aggregate(nil, nil, testSettings())

	assert.Equal(t, 0, report.TicketCount)
	assert.Len(t, report.Monthly, 12)
	assert.Len(t, report.Weekly, 20)
	assert.Empty(t, report.Findings)
	assert.Equal(t, 0.0, report.Sales.MarginPercent)
}
