package pricing

import (
	"regexp"
	"strings"
)

const (
	DiskTypeNVME = "NVME"
	DiskTypeSSD  = "SSD"
	DiskTypeHDD  = "HDD"

	RAMFallbackType  = "DDR4"
	DiskFallbackType = DiskTypeSSD
)

var (
	bareNumberPattern = regexp.MustCompile(`^\d+$`)
	capacityPattern   = regexp.MustCompile(`(?i)\d+\s*(GB|TB)`)
	whitespace        = regexp.MustCompile(`\s+`)
)

// NormalizeCapacity turns "16", "16 gb" or "2x 16GB DDR4" into "16GB".
// It returns "" when no capacity can be read.
func NormalizeCapacity(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if bareNumberPattern.MatchString(s) {
		return s + "GB"
	}
	match := capacityPattern.FindString(s)
	if match == "" {
		return ""
	}
	return strings.ToUpper(whitespace.ReplaceAllString(match, ""))
}

// NormalizeDiskType maps free-form disk descriptions to NVME, SSD or HDD.
func NormalizeDiskType(raw string) string {
	s := strings.ToUpper(raw)
	switch {
	case strings.Contains(s, "NVME"), strings.Contains(s, "M.2"):
		return DiskTypeNVME
	case strings.Contains(s, "HDD"), strings.Contains(s, "MECANICO"), strings.Contains(s, "MECÁNICO"):
		return DiskTypeHDD
	default:
		return DiskTypeSSD
	}
}

func NormalizeRAMType(raw string) string {
	return strings.ToUpper(whitespace.ReplaceAllString(raw, ""))
}
