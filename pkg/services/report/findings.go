package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/de-tools/shop-ledger/pkg/models/domain"
)

// BuildFindings turns the rollups of a report into actionable findings,
// most severe first.
func BuildFindings(report *domain.AggregateReport, settings Settings) []domain.Finding {
	findings := []domain.Finding{}

	if report.Stock.ZombieCount > 0 {
		findings = append(findings, domain.Finding{
			ID:             "global_zombie_stock",
			Severity:       domain.SeverityCritical,
			Issue:          "zombie_stock",
			Subject:        "global",
			Count:          report.Stock.ZombieCount,
			Amount:         report.Stock.ZombieCapital,
			Description:    fmt.Sprintf("%d tickets have been open for more than %d days.", report.Stock.ZombieCount, settings.ZombieDays),
			Recommendation: "Liquidate or part out the equipment to recover invested capital.",
		})
	}

	for _, area := range report.Stock.ByArea {
		if area.StaleCount == 0 {
			continue
		}
		findings = append(findings, domain.Finding{
			ID:             fmt.Sprintf("%s_stale_stock", slug(area.Area)),
			Severity:       domain.SeverityMedium,
			Issue:          "stale_stock",
			Subject:        area.Area,
			Count:          area.StaleCount,
			Amount:         area.StaleCapital,
			Description:    fmt.Sprintf("%d tickets in %s are older than %d days.", area.StaleCount, area.Area, settings.StaleDays),
			Recommendation: "Review pricing and prioritise these tickets before they become critical.",
		})
	}

	for _, area := range report.SLA.ByArea {
		if area.Expired == 0 {
			continue
		}
		findings = append(findings, domain.Finding{
			ID:             fmt.Sprintf("%s_sla_expired", slug(area.Area)),
			Severity:       domain.SeverityHigh,
			Issue:          "sla_expired",
			Subject:        area.Area,
			Count:          area.Expired,
			Description:    fmt.Sprintf("%d of %d tickets exceeded the %.0fh limit in %s.", area.Expired, area.Count, area.LimitHours, area.Area),
			Recommendation: "Rebalance technician workload or revise the area limit.",
		})
	}

	if report.Risk.TaxHit.Count > 0 {
		findings = append(findings, domain.Finding{
			ID:             "global_tax_hit",
			Severity:       domain.SeverityMedium,
			Issue:          "tax_hit",
			Subject:        "global",
			Count:          report.Risk.TaxHit.Count,
			Amount:         report.Risk.TaxHit.Exposure,
			Description:    fmt.Sprintf("%d sales were invoiced formally on equipment bought without invoice.", report.Risk.TaxHit.Count),
			Recommendation: "Source equipment with invoices when a formal sale is expected.",
		})
	}

	if report.Risk.LostCredit.Count > 0 {
		findings = append(findings, domain.Finding{
			ID:             "global_lost_credit",
			Severity:       domain.SeverityLow,
			Issue:          "lost_credit",
			Subject:        "global",
			Count:          report.Risk.LostCredit.Count,
			Amount:         report.Risk.LostCredit.Exposure,
			Description:    fmt.Sprintf("%d sales without document left the purchase VAT credit unrecovered.", report.Risk.LostCredit.Count),
			Recommendation: "Issue a boleta or factura for equipment purchased with invoice.",
		})
	}

	if report.Sales.InconsistentSoldSignals > 0 {
		findings = append(findings, domain.Finding{
			ID:             "global_inconsistent_sold_signals",
			Severity:       domain.SeverityLow,
			Issue:          "inconsistent_sold_signals",
			Subject:        "global",
			Count:          report.Sales.InconsistentSoldSignals,
			Description:    fmt.Sprintf("%d sold tickets disagree on status, area and sale date.", report.Sales.InconsistentSoldSignals),
			Recommendation: "Check for partially applied sale updates.",
		})
	}

	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Severity > findings[j].Severity
	})
	return findings
}

// CountBySeverity tallies findings per severity for the report's findings header.
func CountBySeverity(findings []domain.Finding) map[domain.Severity]int {
	return lo.CountValuesBy(findings, func(f domain.Finding) domain.Severity {
		return f.Severity
	})
}

func slug(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "_")
}
