package config

import (
	"fmt"
	"time"

	"gopkg.in/ini.v1"
)

const slaLimitKey = "limit_hours"

// LoadSLAProfile reads per-area SLA limits from an ini file with one
// section per workshop area:
//
//	[Reparación]
//	limit_hours = 72
func LoadSLAProfile(path string) (map[string]time.Duration, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read SLA profile: %w", err)
	}

	limits := map[string]time.Duration{}
	for _, section := range cfg.Sections() {
		if !section.HasKey(slaLimitKey) {
			continue
		}
		hours, err := section.Key(slaLimitKey).Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid %s for area %s: %w", slaLimitKey, section.Name(), err)
		}
		if hours <= 0 {
			return nil, fmt.Errorf("invalid %s for area %s: must be positive", slaLimitKey, section.Name())
		}
		limits[section.Name()] = hoursToDuration(hours)
	}
	return limits, nil
}
