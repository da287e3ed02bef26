package report

import (
	"time"

	"github.com/de-tools/shop-ledger/pkg/services/financials"
)

// Settings contains the thresholds used by the aggregation pass.
type Settings struct {
	// Now is the reference instant for ages, SLA and trailing windows
	Now time.Time
	// StaleDays flags invested capital at risk (default: 60)
	StaleDays int
	// ZombieDays flags critical stock (default: 90)
	ZombieDays int
	// EstimateMarkup prices stock without a list price (default: 1.5)
	EstimateMarkup float64
	// TrailingMonths is the length of the monthly series (default: 12)
	TrailingMonths int
	// TrailingWeeks is the length of the weekly series (default: 20)
	TrailingWeeks int
	// SLALimits is the maximum expected dwell time per area
	SLALimits  map[string]time.Duration
	Financials financials.Settings
}

func DefaultSLALimits() map[string]time.Duration {
	return map[string]time.Duration{
		"Recepción":          24 * time.Hour,
		"Diagnóstico":        48 * time.Hour,
		"Reparación":         72 * time.Hour,
		"Limpieza":           24 * time.Hour,
		"Control de Calidad": 24 * time.Hour,
	}
}

func DefaultSettings() Settings {
	return Settings{
		StaleDays:      60,
		ZombieDays:     90,
		EstimateMarkup: 1.5,
		TrailingMonths: 12,
		TrailingWeeks:  20,
		SLALimits:      DefaultSLALimits(),
		Financials:     financials.DefaultSettings(),
	}
}

// withDefaults fills zero fields. A zero Now falls back to the wall clock,
// so callers that need reproducible output must set it.
func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	if s.Now.IsZero() {
		s.Now = time.Now()
	}
	s.Now = s.Now.UTC()
	if s.StaleDays <= 0 {
		s.StaleDays = d.StaleDays
	}
	if s.ZombieDays <= 0 {
		s.ZombieDays = d.ZombieDays
	}
	if s.EstimateMarkup <= 0 {
		s.EstimateMarkup = d.EstimateMarkup
	}
	if s.TrailingMonths <= 0 {
		s.TrailingMonths = d.TrailingMonths
	}
	if s.TrailingWeeks <= 0 {
		s.TrailingWeeks = d.TrailingWeeks
	}
	if s.SLALimits == nil {
		s.SLALimits = d.SLALimits
	}
	return s
}
