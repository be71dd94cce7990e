package date

import (
	"fmt"
	"strings"
)

// Period is the granularity used to bucket dates into grouping keys.
type Period int

const (
	Daily Period = iota
	Monthly
)

func (p Period) String() string {
	switch p {
	case Daily:
		return "daily"
	case Monthly:
		return "monthly"
	default:
		return "periodic"
	}
}

// Name returns the singular noun for the period (e.g., "day", "month").
func (p Period) Name() string {
	switch p {
	case Daily:
		return "day"
	case Monthly:
		return "month"
	default:
		return "period"
	}
}

// Key returns the canonical grouping key for the period containing d.
// Keys are formatted calendar boundaries ("2024-01-05" or "2024-01") and
// sort chronologically as plain strings.
func (p Period) Key(d Date) string {
	switch p {
	case Monthly:
		return fmt.Sprintf("%04d-%02d", d.Year(), int(d.Month()))
	default:
		return d.String()
	}
}

func ParsePeriod(p string) (Period, error) {
	p = strings.ToLower(strings.TrimSpace(p))
	switch p {
	case "daily", "day":
		return Daily, nil
	case "monthly", "month":
		return Monthly, nil
	default:
		return Daily, fmt.Errorf("unknown period %s", p)
	}
}
