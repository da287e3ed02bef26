package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/de-tools/shop-ledger/pkg/adapters"
	"github.com/de-tools/shop-ledger/pkg/models/api"
	"github.com/de-tools/shop-ledger/pkg/models/domain"
	"github.com/de-tools/shop-ledger/pkg/services/pricing"
)

const (
	FormatTable = "table"
	FormatJSON  = "json"
)

type TableConfig struct {
	NameWidth        int
	ValueWidth       int
	UnitWidth        int
	DescriptionWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		NameWidth:        32,
		ValueWidth:       18,
		UnitWidth:        8,
		DescriptionWidth: 54,
	}
}

type Row struct {
	Name        string
	Value       string
	Unit        string
	Description string
}

type Section struct {
	Title string
	Rows  []Row
}

type document struct {
	Title    string
	Subtitle string
	Sections []Section
}

type Reporter struct {
	writer  io.Writer
	config  TableConfig
	printer *message.Printer
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer:  writer,
		config:  DefaultTableConfig(),
		printer: message.NewPrinter(language.Spanish),
	}
}

func ValidFormat(format string) error {
	switch format {
	case FormatTable, FormatJSON:
		return nil
	}
	return fmt.Errorf("unsupported format %q, expected %s or %s", format, FormatTable, FormatJSON)
}

func (c *Reporter) HandleReport(report *domain.AggregateReport, format string) error {
	if format == FormatJSON {
		return c.writeJSON(adapters.MapReportDomainToApi(report))
	}
	return c.render(c.reportDocument(report))
}

func (c *Reporter) HandleTicket(t domain.Ticket, s domain.FinancialSnapshot, format string) error {
	if format == FormatJSON {
		return c.writeJSON(adapters.MapTicketFinancialsDomainToApi(t, s))
	}
	return c.render(c.ticketDocument(t, s))
}

func (c *Reporter) HandlePrice(kind domain.PriceCategory, capacity, typeHint string, price float64, format string) error {
	if format == FormatJSON {
		return c.writeJSON(api.PriceResolution{
			Category: string(kind),
			Capacity: pricing.NormalizeCapacity(capacity),
			Type:     typeHint,
			Price:    price,
			Resolved: price > 0,
		})
	}
	desc := "catalog price"
	if price == 0 {
		desc = "no catalog entry matched"
	}
	return c.render(document{
		Title: "Price lookup",
		Sections: []Section{{
			Title: string(kind),
			Rows:  []Row{{Name: strings.TrimSpace(capacity + " " + typeHint), Value: c.clp(price), Unit: "CLP", Description: desc}},
		}},
	})
}

func (c *Reporter) writeJSON(v any) error {
	enc := json.NewEncoder(c.writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}

func (c *Reporter) render(doc document) error {
	funcMap := template.FuncMap{
		"formatRow": func(name, value, unit, desc string) string {
			return fmt.Sprintf("| %-*s | %*s | %-*s | %-*s |",
				c.config.NameWidth, name,
				c.config.ValueWidth, value,
				c.config.UnitWidth, unit,
				c.config.DescriptionWidth, desc)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+",
				strings.Repeat("-", c.config.NameWidth+2),
				strings.Repeat("-", c.config.ValueWidth+2),
				strings.Repeat("-", c.config.UnitWidth+2),
				strings.Repeat("-", c.config.DescriptionWidth+2))
		},
	}

	tmpl := `
{{.Title}}{{if .Subtitle}} ({{.Subtitle}}){{end}}
{{range .Sections}}
=== {{.Title}} ===
{{separator}}
{{formatRow "Name" "Value" "Unit" "Description"}}
{{separator}}
{{range .Rows}}{{formatRow .Name .Value .Unit .Description}}
{{end}}{{separator}}
{{end}}`

	t, err := template.New("report").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, doc)
}

func (c *Reporter) clp(v float64) string {
	return c.printer.Sprintf("%.0f", v)
}

func (c *Reporter) count(n int) string {
	return c.printer.Sprintf("%d", n)
}

func (c *Reporter) days(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

func (c *Reporter) percent(v float64) string {
	return fmt.Sprintf("%.1f", v)
}
