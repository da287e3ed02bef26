package domain

type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

type Finding struct {
	ID             string
	Severity       Severity
	Issue          string // zombie_stock, sla_expired, tax_hit
	Subject        string // area or "global"
	Count          int
	Amount         float64
	Description    string
	Recommendation string
}
