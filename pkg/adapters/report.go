package adapters

import (
	"github.com/de-tools/shop-ledger/pkg/models/api"
	"github.com/de-tools/shop-ledger/pkg/models/domain"
)

func MapSnapshotDomainToApi(s domain.FinancialSnapshot) api.FinancialSnapshot {
	return api.FinancialSnapshot{
		BaseCost:         s.BaseCost,
		RAMDelta:         s.RAMDelta,
		DiskDelta:        s.DiskDelta,
		SparePartsCost:   s.SparePartsCost,
		ServiceCost:      s.ServiceCost,
		ExtraCosts:       s.ExtraCosts,
		ViaticoCost:      s.ViaticoCost,
		AdCost:           s.AdCost,
		TotalCost:        s.TotalCost,
		SalePrice:        s.SalePrice,
		NetCost:          s.NetCost,
		EconomicCost:     s.EconomicCost,
		GrossMargin:      s.GrossMargin,
		MarginPercent:    s.MarginPercent,
		ImmediateProfit:  s.ImmediateProfit,
		NetSale:          s.NetSale,
		VATOutput:        s.VATOutput,
		VATInput:         s.VATInput,
		VATPayable:       s.VATPayable,
		VATShadow:        s.VATShadow,
		DeductibleCost:   s.DeductibleCost,
		TaxableBase:      s.TaxableBase,
		IncomeTaxFiscal:  s.IncomeTaxFiscal,
		IncomeTaxShadow:  s.IncomeTaxShadow,
		NetRealProfit:    s.NetRealProfit,
		IsSold:           s.IsSold,
		IsFormalSale:     s.IsFormalSale,
		IsFormalPurchase: s.IsFormalPurchase,
	}
}

func MapTicketFinancialsDomainToApi(t domain.Ticket, s domain.FinancialSnapshot) api.TicketFinancials {
	return api.TicketFinancials{
		ID:        t.ID,
		TicketID:  t.TicketID,
		Financial: MapSnapshotDomainToApi(s),
	}
}

func MapFindingDomainToApi(f domain.Finding) api.Finding {
	return api.Finding{
		ID:             f.ID,
		Severity:       f.Severity.String(),
		Issue:          f.Issue,
		Subject:        f.Subject,
		Count:          f.Count,
		Amount:         f.Amount,
		Description:    f.Description,
		Recommendation: f.Recommendation,
	}
}

func MapReportDomainToApi(r *domain.AggregateReport) api.AggregateReport {
	out := api.AggregateReport{
		GeneratedAt:  r.GeneratedAt,
		TicketCount:  r.TicketCount,
		Stock:        mapStock(r.Stock),
		Sales:        api.SalesSummary(r.Sales),
		ByBrand:      mapDimensions(r.ByBrand),
		ByType:       mapDimensions(r.ByType),
		ByTechnician: mapDimensions(r.ByTechnician),
		Monthly:      mapSeries(r.Monthly),
		Weekly:       mapSeries(r.Weekly),
		Risk: api.RiskSummary{
			TaxHit:     api.RiskBucket(r.Risk.TaxHit),
			LostCredit: api.RiskBucket(r.Risk.LostCredit),
			Matrix: map[string]int{
				"informal_informal": r.Risk.Matrix[0][0],
				"informal_formal":   r.Risk.Matrix[0][1],
				"formal_informal":   r.Risk.Matrix[1][0],
				"formal_formal":     r.Risk.Matrix[1][1],
			},
		},
		SLA: api.SLASummary{
			Count:            r.SLA.Count,
			Expired:          r.SLA.Expired,
			PercentRemaining: r.SLA.PercentRemaining,
			ByArea:           make([]api.AreaSLA, 0, len(r.SLA.ByArea)),
		},
		Operations: api.OperationsSummary{
			ClosedCount:  r.Operations.ClosedCount,
			AvgCycleDays: r.Operations.AvgCycleDays,
			OpenCount:    r.Operations.OpenCount,
			AvgAgeDays:   r.Operations.AvgAgeDays,
			ZombieCount:  r.Operations.ZombieCount,
			ByArea:       make([]api.AreaOperations, 0, len(r.Operations.ByArea)),
		},
		Findings: make([]api.Finding, 0, len(r.Findings)),
	}

	for _, a := range r.SLA.ByArea {
		out.SLA.ByArea = append(out.SLA.ByArea, api.AreaSLA(a))
	}
	for _, a := range r.Operations.ByArea {
		out.Operations.ByArea = append(out.Operations.ByArea, api.AreaOperations(a))
	}
	for _, f := range r.Findings {
		out.Findings = append(out.Findings, MapFindingDomainToApi(f))
	}

	return out
}

func mapStock(s domain.StockSummary) api.StockSummary {
	out := api.StockSummary{
		ActiveCount:     s.ActiveCount,
		InvestedCapital: s.InvestedCapital,
		EstimatedValue:  s.EstimatedValue,
		StaleCount:      s.StaleCount,
		StaleCapital:    s.StaleCapital,
		ZombieCount:     s.ZombieCount,
		ZombieCapital:   s.ZombieCapital,
		ByArea:          make([]api.AreaStock, 0, len(s.ByArea)),
	}
	for _, a := range s.ByArea {
		out.ByArea = append(out.ByArea, api.AreaStock(a))
	}
	return out
}

func mapDimensions(in []domain.DimensionTotal) []api.DimensionTotal {
	out := make([]api.DimensionTotal, 0, len(in))
	for _, d := range in {
		out = append(out, api.DimensionTotal(d))
	}
	return out
}

func mapSeries(in []domain.SeriesPoint) []api.SeriesPoint {
	out := make([]api.SeriesPoint, 0, len(in))
	for _, p := range in {
		out = append(out, api.SeriesPoint(p))
	}
	return out
}
