package export

import (
	"fmt"
	"strings"

	"github.com/de-tools/shop-ledger/pkg/models/domain"
	"github.com/de-tools/shop-ledger/pkg/services/report"
)

func (c *Reporter) reportDocument(r *domain.AggregateReport) document {
	doc := document{
		Title:    "Shop ledger report",
		Subtitle: fmt.Sprintf("%s tickets, generated %s", c.count(r.TicketCount), r.GeneratedAt.Format("2006-01-02 15:04")),
	}

	doc.Sections = append(doc.Sections,
		c.stockSection(r.Stock),
		c.salesSection(r.Sales),
		c.riskSection(r.Risk),
		c.slaSection(r.SLA),
		c.operationsSection(r.Operations),
		c.dimensionSection("Sales by brand", r.ByBrand),
		c.dimensionSection("Sales by device type", r.ByType),
		c.dimensionSection("Sales by technician", r.ByTechnician),
		c.seriesSection("Monthly sales", r.Monthly),
	)

	if len(r.Findings) > 0 {
		doc.Sections = append(doc.Sections, c.findingsSection(r.Findings))
	}
	return doc
}

func (c *Reporter) stockSection(s domain.StockSummary) Section {
	rows := []Row{
		{Name: "Active tickets", Value: c.count(s.ActiveCount), Description: "Not sold and not deleted"},
		{Name: "Invested capital", Value: c.clp(s.InvestedCapital), Unit: "CLP", Description: "Total cost of active stock"},
		{Name: "Estimated value", Value: c.clp(s.EstimatedValue), Unit: "CLP", Description: "List price, or cost with markup"},
		{Name: "Stale tickets", Value: c.count(s.StaleCount), Description: c.clp(s.StaleCapital) + " CLP at risk"},
		{Name: "Zombie tickets", Value: c.count(s.ZombieCount), Description: c.clp(s.ZombieCapital) + " CLP critical"},
	}
	for _, a := range s.ByArea {
		rows = append(rows, Row{
			Name:        "  " + a.Area,
			Value:       c.clp(a.InvestedCapital),
			Unit:        "CLP",
			Description: fmt.Sprintf("%s tickets, %s stale", c.count(a.Count), c.count(a.StaleCount)),
		})
	}
	return Section{Title: "Active stock", Rows: rows}
}

func (c *Reporter) salesSection(s domain.SalesSummary) Section {
	rows := []Row{
		{Name: "Sold tickets", Value: c.count(s.Count)},
		{Name: "Gross volume", Value: c.clp(s.GrossVolume), Unit: "CLP", Description: "Sale prices, VAT included"},
		{Name: "Total cost", Value: c.clp(s.TotalCost), Unit: "CLP"},
		{Name: "Gross margin", Value: c.clp(s.GrossMargin), Unit: "CLP", Description: c.percent(s.MarginPercent) + "% of volume"},
		{Name: "Average ticket", Value: c.clp(s.AverageTicket), Unit: "CLP"},
		{Name: "VAT debit", Value: c.clp(s.VATDebit), Unit: "CLP", Description: "Output VAT on formal sales"},
		{Name: "VAT credit", Value: c.clp(s.VATCredit), Unit: "CLP", Description: "Input VAT on invoiced purchases"},
		{Name: "VAT payable", Value: c.clp(s.VATPayable), Unit: "CLP"},
		{Name: "Income tax (fiscal)", Value: c.clp(s.IncomeTaxFiscal), Unit: "CLP", Description: "Formal sales only"},
		{Name: "Income tax (shadow)", Value: c.clp(s.IncomeTaxShadow), Unit: "CLP", Description: "As if every sale were formal"},
		{Name: "Net real profit", Value: c.clp(s.NetRealProfit), Unit: "CLP", Description: "After VAT and income tax"},
	}
	if s.InconsistentSoldSignals > 0 {
		rows = append(rows, Row{
			Name:        "Inconsistent sold signals",
			Value:       c.count(s.InconsistentSoldSignals),
			Description: "Status, area and sale date disagree",
		})
	}
	return Section{Title: "Sales", Rows: rows}
}

func (c *Reporter) riskSection(r domain.RiskSummary) Section {
	return Section{Title: "Tax risk", Rows: []Row{
		{Name: "Tax hit", Value: c.clp(r.TaxHit.Exposure), Unit: "CLP", Description: c.count(r.TaxHit.Count) + " bought informally, sold formally"},
		{Name: "Lost credit", Value: c.clp(r.LostCredit.Exposure), Unit: "CLP", Description: c.count(r.LostCredit.Count) + " bought formally, sold informally"},
		{Name: "Informal -> informal", Value: c.count(r.Matrix[0][0])},
		{Name: "Informal -> formal", Value: c.count(r.Matrix[0][1])},
		{Name: "Formal -> informal", Value: c.count(r.Matrix[1][0])},
		{Name: "Formal -> formal", Value: c.count(r.Matrix[1][1])},
	}}
}

func (c *Reporter) slaSection(s domain.SLASummary) Section {
	rows := []Row{{
		Name:        "All areas",
		Value:       c.percent(s.PercentRemaining),
		Unit:        "%",
		Description: fmt.Sprintf("%s of %s tickets expired", c.count(s.Expired), c.count(s.Count)),
	}}
	for _, a := range s.ByArea {
		rows = append(rows, Row{
			Name:        "  " + a.Area,
			Value:       c.percent(a.PercentRemaining),
			Unit:        "%",
			Description: fmt.Sprintf("%s of %s expired, limit %.0fh", c.count(a.Expired), c.count(a.Count), a.LimitHours),
		})
	}
	return Section{Title: "SLA time remaining", Rows: rows}
}

func (c *Reporter) operationsSection(o domain.OperationsSummary) Section {
	rows := []Row{
		{Name: "Cycle time", Value: c.days(o.AvgCycleDays), Unit: "days", Description: c.count(o.ClosedCount) + " closed tickets"},
		{Name: "Inventory age", Value: c.days(o.AvgAgeDays), Unit: "days", Description: c.count(o.OpenCount) + " open tickets"},
	}
	for _, a := range o.ByArea {
		rows = append(rows, Row{
			Name:        "  " + a.Area,
			Value:       c.days(a.AvgDwellDays),
			Unit:        "days",
			Description: fmt.Sprintf("dwell; age %s, cycle %s", c.days(a.AvgAgeDays), c.days(a.AvgCycleDays)),
		})
	}
	return Section{Title: "Operations", Rows: rows}
}

func (c *Reporter) dimensionSection(title string, totals []domain.DimensionTotal) Section {
	rows := make([]Row, 0, len(totals))
	for _, d := range totals {
		rows = append(rows, Row{
			Name:        d.Key,
			Value:       c.clp(d.Revenue),
			Unit:        "CLP",
			Description: fmt.Sprintf("%s sales, margin %s, net %s", c.count(d.Count), c.clp(d.GrossMargin), c.clp(d.NetRealProfit)),
		})
	}
	return Section{Title: title, Rows: rows}
}

func (c *Reporter) seriesSection(title string, points []domain.SeriesPoint) Section {
	rows := make([]Row, 0, len(points))
	for _, p := range points {
		rows = append(rows, Row{
			Name:        p.Key,
			Value:       c.clp(p.Revenue),
			Unit:        "CLP",
			Description: fmt.Sprintf("%s sales, net %s", c.count(p.Count), c.clp(p.NetRealProfit)),
		})
	}
	return Section{Title: title, Rows: rows}
}

func (c *Reporter) findingsSection(findings []domain.Finding) Section {
	rows := make([]Row, 0, len(findings))
	for _, f := range findings {
		value := c.count(f.Count)
		unit := ""
		if f.Amount != 0 {
			value = c.clp(f.Amount)
			unit = "CLP"
		}
		rows = append(rows, Row{
			Name:        fmt.Sprintf("[%s] %s", f.Severity, f.Issue),
			Value:       value,
			Unit:        unit,
			Description: f.Description,
		})
	}
	return Section{Title: findingsTitle(findings), Rows: rows}
}

// findingsTitle summarizes findings per severity, most severe first.
func findingsTitle(findings []domain.Finding) string {
	counts := report.CountBySeverity(findings)
	parts := make([]string, 0, len(counts))
	for sev := domain.SeverityCritical; sev >= domain.SeverityLow; sev-- {
		if n := counts[sev]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, sev))
		}
	}
	return fmt.Sprintf("Findings (%s)", strings.Join(parts, ", "))
}

func (c *Reporter) ticketDocument(t domain.Ticket, s domain.FinancialSnapshot) document {
	title := t.TicketID
	if title == "" {
		title = t.ID
	}

	status := "in stock"
	if s.IsSold {
		status = "sold"
	}

	return document{
		Title:    "Ticket " + title,
		Subtitle: fmt.Sprintf("%s, %s", status, t.CurrentArea),
		Sections: []Section{
			{Title: "Costs", Rows: []Row{
				{Name: "Purchase", Value: c.clp(s.BaseCost), Unit: "CLP"},
				{Name: "RAM delta", Value: c.clp(s.RAMDelta), Unit: "CLP", Description: "Current minus original RAM"},
				{Name: "Disk delta", Value: c.clp(s.DiskDelta), Unit: "CLP", Description: "Current minus original disk"},
				{Name: "Spare parts", Value: c.clp(s.SparePartsCost), Unit: "CLP"},
				{Name: "Service", Value: c.clp(s.ServiceCost), Unit: "CLP"},
				{Name: "Extra", Value: c.clp(s.ExtraCosts), Unit: "CLP"},
				{Name: "Travel", Value: c.clp(s.ViaticoCost), Unit: "CLP"},
				{Name: "Advertising", Value: c.clp(s.AdCost), Unit: "CLP"},
				{Name: "Total cost", Value: c.clp(s.TotalCost), Unit: "CLP"},
				{Name: "Economic cost", Value: c.clp(s.EconomicCost), Unit: "CLP", Description: "Total cost net of recoverable VAT"},
			}},
			{Title: "Sale", Rows: []Row{
				{Name: "Sale price", Value: c.clp(s.SalePrice), Unit: "CLP"},
				{Name: "Gross margin", Value: c.clp(s.GrossMargin), Unit: "CLP", Description: c.percent(s.MarginPercent) + "% of sale"},
				{Name: "Immediate profit", Value: c.clp(s.ImmediateProfit), Unit: "CLP", Description: "Sale price minus total cost"},
			}},
			{Title: "Taxes", Rows: []Row{
				{Name: "VAT output", Value: c.clp(s.VATOutput), Unit: "CLP", Description: formality("sale", s.IsFormalSale)},
				{Name: "VAT input", Value: c.clp(s.VATInput), Unit: "CLP", Description: formality("purchase", s.IsFormalPurchase)},
				{Name: "VAT payable", Value: c.clp(s.VATPayable), Unit: "CLP"},
				{Name: "Taxable base", Value: c.clp(s.TaxableBase), Unit: "CLP"},
				{Name: "Income tax (fiscal)", Value: c.clp(s.IncomeTaxFiscal), Unit: "CLP"},
				{Name: "Income tax (shadow)", Value: c.clp(s.IncomeTaxShadow), Unit: "CLP"},
				{Name: "Net real profit", Value: c.clp(s.NetRealProfit), Unit: "CLP"},
			}},
		},
	}
}

func formality(what string, formal bool) string {
	if formal {
		return "formal " + what
	}
	return "informal " + what
}
