package unitconv

import (
	"fmt"
	"strconv"
)

// DisplayFormat renders a quantity the way VA compliance invoices
// print it: bottle count alone under one full case, case and bottle
// counts together from one case up (shown even for whole-case
// quantities).
func DisplayFormat(bottles int, itemsPerCase *int) string {
	size := perCase(itemsPerCase)
	if bottles < size {
		return strconv.Itoa(bottles) + " btl"
	}
	cases := BottlesToCases(bottles, itemsPerCase)
	return fmt.Sprintf("%s cs / %d btl", cases.StringFixed(2), bottles)
}
