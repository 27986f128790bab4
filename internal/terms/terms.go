// Package terms turns customer payment-terms text into due dates.
//
// Terms data arrives as free text imported from the tenants' ledgers,
// so parsing is lenient: recognized terms map through a canonical
// table, anything else degrades to a numeric day-count extraction with
// a Net 30 default. Due-date calculation never fails.
package terms

import (
	"regexp"
	"strings"
	"time"
)

// PaymentTerm is a canonical payment-terms value.
type PaymentTerm string

const (
	COD              PaymentTerm = "C.O.D."
	Net30Days        PaymentTerm = "Net 30 Days"
	Net32Days        PaymentTerm = "Net 32 Days"
	Net45Days        PaymentTerm = "Net 45 Days"
	Net15thNextMonth PaymentTerm = "Net 15th of Next Month"
	Net30thNextMonth PaymentTerm = "Net 30th of Next Month"
)

// DefaultNetDays applies when terms text carries no recognizable day
// count.
const DefaultNetDays = 30

var canonicalTerms = map[string]PaymentTerm{
	"c o d":                  COD,
	"cod":                    COD,
	"cash on delivery":       COD,
	"due on receipt":         COD,
	"net 30":                 Net30Days,
	"net 30 days":            Net30Days,
	"net 30 day":             Net30Days,
	"net 30day":              Net30Days,
	"net30":                  Net30Days,
	"net30day":               Net30Days,
	"net30days":              Net30Days,
	"net30 days":             Net30Days,
	"net thirty":             Net30Days,
	"net thirty days":        Net30Days,
	"net 32 days":            Net32Days,
	"net 45 days":            Net45Days,
	"net 15th of next month": Net15thNextMonth,
	"net 30th of next month": Net30thNextMonth,
}

var netDaysPattern = regexp.MustCompile(`(\d+)`)

// Normalize maps free-form terms text to a canonical PaymentTerm, or
// empty when unrecognized.
func Normalize(raw string) PaymentTerm {
	canonical := canonicalize(raw)
	if canonical == "" {
		return ""
	}
	return canonicalTerms[canonical]
}

// NetDays extracts the day count implied by terms text. C.O.D.-style
// terms are due on receipt (0 days); unrecognized text with an
// embedded number uses that number; everything else defaults to 30.
func NetDays(raw string) int {
	switch Normalize(raw) {
	case COD:
		return 0
	case Net30Days:
		return 30
	case Net32Days:
		return 32
	case Net45Days:
		return 45
	}

	if m := netDaysPattern.FindString(canonicalize(raw)); m != "" {
		days := 0
		for _, r := range m {
			days = days*10 + int(r-'0')
		}
		return days
	}
	return DefaultNetDays
}

// DueDate computes the invoice due date for the given terms text.
// The two month-anchored terms pin the due date to the 15th or the
// last day of the following month; everything else adds NetDays.
func DueDate(issuedAt time.Time, raw string) time.Time {
	switch Normalize(raw) {
	case Net15thNextMonth:
		next := issuedAt.AddDate(0, 1, 0)
		return time.Date(next.Year(), next.Month(), 15, 0, 0, 0, 0, issuedAt.Location())
	case Net30thNextMonth:
		// Day zero of the month after next is the last day of next month.
		firstOfMonth := time.Date(issuedAt.Year(), issuedAt.Month(), 1, 0, 0, 0, 0, issuedAt.Location())
		return firstOfMonth.AddDate(0, 2, -1)
	}
	return issuedAt.AddDate(0, 0, NetDays(raw))
}

func canonicalize(raw string) string {
	s := strings.ToLower(raw)
	var b strings.Builder
	lastSpace := true
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		if !lastSpace {
			b.WriteByte(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}
