// Package number formats and parses sequential invoice numbers of the
// form INV-YYYYMM-XXXX, scoped per tenant and calendar month.
package number

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	prefix   = "INV"
	seqWidth = 4
)

// MonthPrefix returns the tenant-month scope prefix, e.g.
// "INV-202603-".
func MonthPrefix(at time.Time) string {
	return fmt.Sprintf("%s-%s-", prefix, at.Format("200601"))
}

// Format renders a full invoice number. The sequence keeps growing
// past 9999; the pad is a floor, not a ceiling.
func Format(at time.Time, seq int64) (string, error) {
	if seq <= 0 {
		return "", fmt.Errorf("invalid invoice sequence: %d", seq)
	}
	return fmt.Sprintf("%s%0*d", MonthPrefix(at), seqWidth, seq), nil
}

// Sequence extracts the numeric sequence from an invoice number with
// the given month prefix. Returns 0 for an empty or foreign number.
func Sequence(invoiceNumber, monthPrefix string) int64 {
	if invoiceNumber == "" || !strings.HasPrefix(invoiceNumber, monthPrefix) {
		return 0
	}
	seq, err := strconv.ParseInt(invoiceNumber[len(monthPrefix):], 10, 64)
	if err != nil || seq < 0 {
		return 0
	}
	return seq
}

// Next returns the successor number given the highest existing number
// in the month scope ("" when the month is empty).
func Next(at time.Time, highestExisting string) (string, error) {
	return Format(at, Sequence(highestExisting, MonthPrefix(at))+1)
}
