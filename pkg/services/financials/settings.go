package financials

// Settings holds the fiscal constants and lifecycle labels used by the derivation.
type Settings struct {
	// VATRate is the VAT included in every price (default: 0.19)
	VATRate float64
	// IncomeTaxRate applies to the fiscal taxable base and to the shadow estimate (default: 0.25)
	IncomeTaxRate float64
	// SalesArea is the workshop area where finished devices wait to be sold (default: "Ventas")
	SalesArea string
	// SoldStatuses are terminal statuses, compared case-insensitively
	SoldStatuses []string
	// DeletedStatuses mark tickets excluded from stock
	DeletedStatuses []string
}

func DefaultSettings() Settings {
	return Settings{
		VATRate:         0.19,
		IncomeTaxRate:   0.25,
		SalesArea:       "Ventas",
		SoldStatuses:    []string{"Vendido", "Cerrado", "Entregado"},
		DeletedStatuses: []string{"Eliminado", "Anulado"},
	}
}

// withDefaults fills zero values so a partially configured Settings behaves.
func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	if s.VATRate <= 0 {
		s.VATRate = d.VATRate
	}
	if s.IncomeTaxRate <= 0 {
		s.IncomeTaxRate = d.IncomeTaxRate
	}
	if s.SalesArea == "" {
		s.SalesArea = d.SalesArea
	}
	if s.SoldStatuses == nil {
		s.SoldStatuses = d.SoldStatuses
	}
	if s.DeletedStatuses == nil {
		s.DeletedStatuses = d.DeletedStatuses
	}
	return s
}
