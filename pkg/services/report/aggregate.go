// Package report folds per-ticket financial snapshots into the aggregate
// report consumed by dashboards: stock, sales, tax risk, SLA and cycle time.
package report

import (
	"strings"
	"time"

	"github.com/de-tools/shop-ledger/pkg/models/domain"
	"github.com/de-tools/shop-ledger/pkg/services/financials"
	"github.com/de-tools/shop-ledger/pkg/services/pricing"
	"github.com/de-tools/shop-ledger/pkg/services/timeseries"
)

// UnassignedLabel buckets tickets with no area, brand, type or technician.
const UnassignedLabel = "Sin asignar"

// Aggregate derives every ticket and folds the result.
func Aggregate(tickets []domain.Ticket, resolver pricing.Resolver, settings Settings) *domain.AggregateReport {
	calc := financials.NewCalculator(settings.Financials, resolver)
	return Fold(tickets, financials.DeriveAll(tickets, calc), settings)
}

// Fold accumulates tickets and their snapshots (same order, same length)
// into a report. It reads nothing but its arguments.
func Fold(tickets []domain.Ticket, snapshots []domain.FinancialSnapshot, settings Settings) *domain.AggregateReport {
	settings = settings.withDefaults()
	f := newFolder(settings)

	for i, t := range tickets {
		if i >= len(snapshots) {
			break
		}
		f.add(t, snapshots[i])
	}

	return f.assemble(len(tickets))
}

type slaAcc struct {
	limit     time.Duration
	count     int
	expired   int
	remaining time.Duration
	total     time.Duration
}

type opsAcc struct {
	openCount   int
	ageDays     float64
	closedCount int
	cycleDays   float64
	dwellCount  int
	dwellDays   float64
}

type folder struct {
	settings  Settings
	calc      *financials.Calculator
	now       time.Time
	slaLimits map[string]time.Duration

	stock     domain.StockSummary
	areaStock map[string]*domain.AreaStock

	sales      domain.SalesSummary
	brands     map[string]*domain.DimensionTotal
	types      map[string]*domain.DimensionTotal
	techs      map[string]*domain.DimensionTotal
	months     map[string]domain.SeriesPoint
	weeks      map[string]domain.SeriesPoint
	risk       domain.RiskSummary
	sla        map[string]*slaAcc
	ops        opsAcc
	areaOps    map[string]*opsAcc
	areaLabels map[string]string
}

func newFolder(settings Settings) *folder {
	limits := make(map[string]time.Duration, len(settings.SLALimits))
	for area, limit := range settings.SLALimits {
		if limit > 0 {
			limits[areaKey(area)] = limit
		}
	}

	return &folder{
		settings:   settings,
		calc:       financials.NewCalculator(settings.Financials, nil),
		now:        settings.Now,
		slaLimits:  limits,
		areaStock:  map[string]*domain.AreaStock{},
		brands:     map[string]*domain.DimensionTotal{},
		types:      map[string]*domain.DimensionTotal{},
		techs:      map[string]*domain.DimensionTotal{},
		months:     map[string]domain.SeriesPoint{},
		weeks:      map[string]domain.SeriesPoint{},
		sla:        map[string]*slaAcc{},
		areaOps:    map[string]*opsAcc{},
		areaLabels: map[string]string{},
	}
}

func (f *folder) add(t domain.Ticket, s domain.FinancialSnapshot) {
	if f.calc.IsDeleted(t) {
		return
	}

	f.addDwell(t)

	if s.IsSold {
		f.addSale(t, s)
		f.addRisk(s)
		f.addCycle(t)
		return
	}

	age := f.ageDays(t)
	f.addStock(t, s, age)
	f.addSLA(t)
	f.addOpen(t, age)
}

func (f *folder) addStock(t domain.Ticket, s domain.FinancialSnapshot, age float64) {
	area := f.area(t.CurrentArea)
	bucket, ok := f.areaStock[area]
	if !ok {
		bucket = &domain.AreaStock{Area: area}
		f.areaStock[area] = bucket
	}

	estimated := s.SalePrice
	if estimated <= 0 {
		estimated = f.settings.EstimateMarkup * s.TotalCost
	}

	f.stock.ActiveCount++
	f.stock.InvestedCapital += s.TotalCost
	f.stock.EstimatedValue += estimated
	bucket.Count++
	bucket.InvestedCapital += s.TotalCost
	bucket.EstimatedValue += estimated

	if age > float64(f.settings.StaleDays) {
		f.stock.StaleCount++
		f.stock.StaleCapital += s.TotalCost
		bucket.StaleCount++
		bucket.StaleCapital += s.TotalCost
	}
	if age > float64(f.settings.ZombieDays) {
		f.stock.ZombieCount++
		f.stock.ZombieCapital += s.TotalCost
	}
}

func (f *folder) addSale(t domain.Ticket, s domain.FinancialSnapshot) {
	f.sales.Count++
	f.sales.GrossVolume += s.SalePrice
	f.sales.TotalCost += s.TotalCost
	f.sales.EconomicCost += s.EconomicCost
	f.sales.GrossMargin += s.GrossMargin
	f.sales.ImmediateProfit += s.ImmediateProfit
	f.sales.VATDebit += s.VATOutput
	f.sales.VATCredit += s.VATInput
	f.sales.VATPayable += s.VATPayable
	f.sales.VATShadow += s.VATShadow
	f.sales.IncomeTaxFiscal += s.IncomeTaxFiscal
	f.sales.IncomeTaxShadow += s.IncomeTaxShadow
	f.sales.NetRealProfit += s.NetRealProfit
	if !f.calc.SoldSignalsAgree(t) {
		f.sales.InconsistentSoldSignals++
	}

	addDimension(f.brands, label(t.Brand), s)
	addDimension(f.types, label(t.DeviceType), s)
	addDimension(f.techs, label(t.Technician), s)

	at := t.SoldAt
	if at == nil {
		at = t.UpdatedAt
	}
	if at == nil {
		return
	}
	addSeries(f.months, timeseries.MonthKey(*at), s)
	addSeries(f.weeks, timeseries.ISOWeekKey(*at), s)
}

// addRisk classifies a sale by how the purchase and sale documents line up.
func (f *folder) addRisk(s domain.FinancialSnapshot) {
	f.risk.Matrix[boolIndex(s.IsFormalPurchase)][boolIndex(s.IsFormalSale)]++

	switch {
	case !s.IsFormalPurchase && s.IsFormalSale:
		f.risk.TaxHit.Count++
		f.risk.TaxHit.Exposure += s.VATOutput + s.IncomeTaxFiscal
	case s.IsFormalPurchase && !s.IsFormalSale:
		f.risk.LostCredit.Count++
		f.risk.LostCredit.Exposure += s.VATInput
	}
}

func (f *folder) addSLA(t domain.Ticket) {
	area := f.area(t.CurrentArea)
	limit, ok := f.slaLimits[areaKey(area)]
	if !ok {
		return
	}

	acc, exists := f.sla[area]
	if !exists {
		acc = &slaAcc{limit: limit}
		f.sla[area] = acc
	}

	elapsed := f.now.Sub(f.enteredArea(t))
	if elapsed < 0 {
		elapsed = 0
	}
	acc.count++
	acc.total += limit
	if elapsed > limit {
		acc.expired++
		return
	}
	acc.remaining += limit - elapsed
}

func (f *folder) addOpen(t domain.Ticket, age float64) {
	acc := f.opsFor(f.area(t.CurrentArea))
	f.ops.openCount++
	f.ops.ageDays += age
	acc.openCount++
	acc.ageDays += age
}

func (f *folder) addCycle(t domain.Ticket) {
	if t.CreatedAt == nil {
		return
	}
	end := f.now
	switch {
	case t.ClosedAt != nil:
		end = *t.ClosedAt
	case t.SoldAt != nil:
		end = *t.SoldAt
	}
	if end.Before(*t.CreatedAt) {
		return
	}

	days := timeseries.DaysBetween(*t.CreatedAt, end)
	acc := f.opsFor(f.area(t.CurrentArea))
	f.ops.closedCount++
	f.ops.cycleDays += days
	acc.closedCount++
	acc.cycleDays += days
}

// addDwell attributes the time between consecutive history events to the
// area of the earlier event.
func (f *folder) addDwell(t domain.Ticket) {
	for i := 0; i+1 < len(t.History); i++ {
		from, to := t.History[i], t.History[i+1]
		if from.Area == "" || to.At.Before(from.At) {
			continue
		}
		acc := f.opsFor(f.area(from.Area))
		acc.dwellCount++
		acc.dwellDays += timeseries.DaysBetween(from.At, to.At)
	}
}

// enteredArea is the last time the ticket moved into its current area.
func (f *folder) enteredArea(t domain.Ticket) time.Time {
	for i := len(t.History) - 1; i >= 0; i-- {
		if areaKey(t.History[i].Area) == areaKey(t.CurrentArea) {
			return t.History[i].At
		}
	}
	if t.UpdatedAt != nil {
		return *t.UpdatedAt
	}
	if t.CreatedAt != nil {
		return *t.CreatedAt
	}
	return f.now
}

// ageDays falls back to zero age when the creation date is unknown.
func (f *folder) ageDays(t domain.Ticket) float64 {
	if t.CreatedAt == nil {
		return 0
	}
	return max(0, timeseries.DaysBetween(*t.CreatedAt, f.now))
}

func (f *folder) opsFor(area string) *opsAcc {
	acc, ok := f.areaOps[area]
	if !ok {
		acc = &opsAcc{}
		f.areaOps[area] = acc
	}
	return acc
}

// area canonicalizes an area name so "ventas" and "Ventas " share a bucket,
// keeping the first spelling seen as the label.
func (f *folder) area(raw string) string {
	l := label(raw)
	key := areaKey(l)
	if existing, ok := f.areaLabels[key]; ok {
		return existing
	}
	f.areaLabels[key] = l
	return l
}

func addDimension(m map[string]*domain.DimensionTotal, key string, s domain.FinancialSnapshot) {
	d, ok := m[key]
	if !ok {
		d = &domain.DimensionTotal{Key: key}
		m[key] = d
	}
	d.Count++
	d.Revenue += s.SalePrice
	d.Cost += s.TotalCost
	d.GrossMargin += s.GrossMargin
	d.NetRealProfit += s.NetRealProfit
}

func addSeries(m map[string]domain.SeriesPoint, key string, s domain.FinancialSnapshot) {
	p := m[key]
	p.Count++
	p.Revenue += s.SalePrice
	p.Cost += s.TotalCost
	p.GrossMargin += s.GrossMargin
	p.NetRealProfit += s.NetRealProfit
	p.VATPayable += s.VATPayable
	p.IncomeTaxFiscal += s.IncomeTaxFiscal
	m[key] = p
}

func label(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return UnassignedLabel
	}
	return s
}

func areaKey(area string) string {
	return strings.ToLower(strings.TrimSpace(area))
}

func boolIndex(b bool) int {
	if b {
		return 1
	}
	return 0
}
