package report

import (
	"sort"

	"github.com/samber/lo"

	"github.com/de-tools/shop-ledger/pkg/models/domain"
	"github.com/de-tools/shop-ledger/pkg/money"
	"github.com/de-tools/shop-ledger/pkg/services/timeseries"
)

func (f *folder) assemble(ticketCount int) *domain.AggregateReport {
	report := &domain.AggregateReport{
		GeneratedAt:  f.now,
		TicketCount:  ticketCount,
		Stock:        f.stockSummary(),
		Sales:        f.salesSummary(),
		ByBrand:      sortDimensions(f.brands),
		ByType:       sortDimensions(f.types),
		ByTechnician: sortDimensions(f.techs),
		Monthly:      series(f.months, timeseries.TrailingMonths(f.now, f.settings.TrailingMonths)),
		Weekly:       series(f.weeks, timeseries.TrailingWeeks(f.now, f.settings.TrailingWeeks)),
		Risk:         f.risk,
		SLA:          f.slaSummary(),
		Operations:   f.operationsSummary(),
	}
	report.Findings = BuildFindings(report, f.settings)
	return report
}

func (f *folder) stockSummary() domain.StockSummary {
	stock := f.stock
	stock.ByArea = lo.Map(sortedKeys(f.areaStock), func(area string, _ int) domain.AreaStock {
		return *f.areaStock[area]
	})
	return stock
}

func (f *folder) salesSummary() domain.SalesSummary {
	sales := f.sales
	if sales.Count > 0 {
		sales.AverageTicket = money.Round(sales.GrossVolume / float64(sales.Count))
	}
	sales.MarginPercent = money.Ratio(sales.GrossMargin, sales.GrossVolume)
	return sales
}

func (f *folder) slaSummary() domain.SLASummary {
	var (
		summary   domain.SLASummary
		remaining float64
		total     float64
	)

	for _, area := range sortedKeys(f.sla) {
		acc := f.sla[area]
		summary.ByArea = append(summary.ByArea, domain.AreaSLA{
			Area:             area,
			LimitHours:       acc.limit.Hours(),
			Count:            acc.count,
			Expired:          acc.expired,
			PercentRemaining: percentOf(acc.remaining.Hours(), acc.total.Hours()),
		})
		summary.Count += acc.count
		summary.Expired += acc.expired
		remaining += acc.remaining.Hours()
		total += acc.total.Hours()
	}

	summary.PercentRemaining = percentOf(remaining, total)
	return summary
}

func (f *folder) operationsSummary() domain.OperationsSummary {
	ops := domain.OperationsSummary{
		ClosedCount:  f.ops.closedCount,
		AvgCycleDays: average(f.ops.cycleDays, f.ops.closedCount),
		OpenCount:    f.ops.openCount,
		AvgAgeDays:   average(f.ops.ageDays, f.ops.openCount),
		ZombieCount:  f.stock.ZombieCount,
	}

	for _, area := range sortedKeys(f.areaOps) {
		acc := f.areaOps[area]
		ops.ByArea = append(ops.ByArea, domain.AreaOperations{
			Area:         area,
			OpenCount:    acc.openCount,
			AvgAgeDays:   average(acc.ageDays, acc.openCount),
			ClosedCount:  acc.closedCount,
			AvgCycleDays: average(acc.cycleDays, acc.closedCount),
			AvgDwellDays: average(acc.dwellDays, acc.dwellCount),
		})
	}
	return ops
}

// sortDimensions orders by revenue descending, then key.
func sortDimensions(m map[string]*domain.DimensionTotal) []domain.DimensionTotal {
	out := lo.Map(lo.Values(m), func(d *domain.DimensionTotal, _ int) domain.DimensionTotal {
		return *d
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].Key < out[j].Key
	})
	return out
}

func series(buckets map[string]domain.SeriesPoint, keys []string) []domain.SeriesPoint {
	return lo.Map(timeseries.FillGaps(buckets, keys), func(p timeseries.Point[domain.SeriesPoint], _ int) domain.SeriesPoint {
		point := p.Value
		point.Key = p.Key
		return point
	})
}

func sortedKeys[V any](m map[string]V) []string {
	keys := lo.Keys(m)
	sort.Strings(keys)
	return keys
}

func percentOf(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return part / whole * 100
}

func average(sum float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
