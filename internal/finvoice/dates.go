package finvoice

import (
	"fmt"
	"time"
)

// ccyymmdd is the only date layout Finvoice 2.0 emits: 8 digits, no
// separators, tagged with a Format="CCYYMMDD" attribute on the element.
const ccyymmdd = "20060102"

// FormatDate renders t as CCYYMMDD.
func FormatDate(t time.Time) string {
	return t.Format(ccyymmdd)
}

// ParseDate reads a calendar date from incoming documents. Finvoice proper
// uses CCYYMMDD, but the ISO layout is accepted too since settings arriving
// over JSON carry it.
func ParseDate(s string) (time.Time, error) {
	formats := []string{
		ccyymmdd,
		"2006-01-02",
		"2006-01-02T15:04:05",
		time.RFC3339,
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("cannot parse date: %s", s)
}
