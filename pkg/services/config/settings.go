package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/de-tools/shop-ledger/pkg/services/financials"
	"github.com/de-tools/shop-ledger/pkg/services/report"
)

const EnvPrefix = "LEDGER"

// Settings is the host-side configuration of the ledger. Every field can be
// overridden with a LEDGER_ prefixed environment variable.
type Settings struct {
	VATRate         float64            `mapstructure:"vat_rate"`
	IncomeTaxRate   float64            `mapstructure:"income_tax_rate"`
	SalesArea       string             `mapstructure:"sales_area"`
	SoldStatuses    []string           `mapstructure:"sold_statuses"`
	DeletedStatuses []string           `mapstructure:"deleted_statuses"`
	StaleDays       int                `mapstructure:"stale_days"`
	ZombieDays      int                `mapstructure:"zombie_days"`
	EstimateMarkup  float64            `mapstructure:"estimate_markup"`
	TrailingMonths  int                `mapstructure:"trailing_months"`
	TrailingWeeks   int                `mapstructure:"trailing_weeks"`
	SLAHours        map[string]float64 `mapstructure:"sla_hours"`
	Workers         int                `mapstructure:"workers"`
	CacheTTL        time.Duration      `mapstructure:"cache_ttl"`
	RefreshInterval time.Duration      `mapstructure:"refresh_interval"`
}

// LoadSettings reads a YAML, JSON or TOML file on top of the defaults.
// An empty path yields defaults plus environment overrides.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Settings
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse ledger config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	fin := financials.DefaultSettings()
	rep := report.DefaultSettings()

	v.SetDefault("vat_rate", fin.VATRate)
	v.SetDefault("income_tax_rate", fin.IncomeTaxRate)
	v.SetDefault("sales_area", fin.SalesArea)
	v.SetDefault("sold_statuses", fin.SoldStatuses)
	v.SetDefault("deleted_statuses", fin.DeletedStatuses)
	v.SetDefault("stale_days", rep.StaleDays)
	v.SetDefault("zombie_days", rep.ZombieDays)
	v.SetDefault("estimate_markup", rep.EstimateMarkup)
	v.SetDefault("trailing_months", rep.TrailingMonths)
	v.SetDefault("trailing_weeks", rep.TrailingWeeks)
	v.SetDefault("workers", 4)
	v.SetDefault("cache_ttl", time.Minute)
	v.SetDefault("refresh_interval", 30*time.Second)
}

// ReportSettings converts the configuration into engine settings. Without
// configured SLA hours the default workshop areas apply.
func (s *Settings) ReportSettings() report.Settings {
	out := report.DefaultSettings()
	out.Financials = financials.Settings{
		VATRate:         s.VATRate,
		IncomeTaxRate:   s.IncomeTaxRate,
		SalesArea:       s.SalesArea,
		SoldStatuses:    s.SoldStatuses,
		DeletedStatuses: s.DeletedStatuses,
	}
	out.StaleDays = s.StaleDays
	out.ZombieDays = s.ZombieDays
	out.EstimateMarkup = s.EstimateMarkup
	out.TrailingMonths = s.TrailingMonths
	out.TrailingWeeks = s.TrailingWeeks

	if len(s.SLAHours) > 0 {
		out.SLALimits = make(map[string]time.Duration, len(s.SLAHours))
		for area, hours := range s.SLAHours {
			out.SLALimits[area] = hoursToDuration(hours)
		}
	}
	return out
}

// ServiceOptions carries the worker and cache settings into a report.Service.
func (s *Settings) ServiceOptions() []report.Option {
	return []report.Option{
		report.WithWorkers(s.Workers),
		report.WithMaxAge(s.CacheTTL),
	}
}

func hoursToDuration(hours float64) time.Duration {
	return time.Duration(hours * float64(time.Hour))
}
