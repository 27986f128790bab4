package unitconv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wellcrafted/invoicing/pkg/money"
)

func TestParseBottleSizeToLiters(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"750ml", "0.75"},
		{"750 ml", "0.75"},
		{"750ML", "0.75"},
		{"375ml", "0.375"},
		{"1.5L", "1.5"},
		{"1.5 l", "1.5"},
		{"3l", "3"},
		{"0.750", "0.75"},
		{"1", "1"},
		// degrade-to-default inputs
		{"", "0.75"},
		{"magnum", "0.75"},
		{"-750ml", "0.75"},
		{"0ml", "0.75"},
	}
	for _, tc := range cases {
		got := ParseBottleSizeToLiters(tc.raw)
		assert.True(t, got.Equal(money.MustParse(tc.want)), "%q: got %s want %s", tc.raw, got, tc.want)
	}
}

func TestBottlesToCases(t *testing.T) {
	twelve := 12
	six := 6

	assert.True(t, BottlesToCases(12, &twelve).Equal(money.New(1)))
	assert.True(t, BottlesToCases(18, &twelve).Equal(money.MustParse("1.5")))
	assert.True(t, BottlesToCases(3, &six).Equal(money.MustParse("0.5")))

	// nil and zero itemsPerCase default to 12
	zero := 0
	assert.True(t, BottlesToCases(24, nil).Equal(money.New(2)))
	assert.True(t, BottlesToCases(24, &zero).Equal(money.New(2)))
}

// TestCaseRoundTrip checks that bottle->case->bottle conversion is an
// exact identity for any exact multiple of the case size.
func TestCaseRoundTrip(t *testing.T) {
	for _, perCase := range []int{1, 6, 12, 24} {
		pc := perCase
		for _, mult := range []int{0, 1, 2, 7, 100} {
			bottles := perCase * mult
			back := CasesToBottles(BottlesToCases(bottles, &pc), &pc)
			assert.True(t, back.Equal(money.New(int64(bottles))),
				"round trip %d bottles @ %d/case: got %s", bottles, perCase, back)
		}
	}
}

func TestLineItemLiters(t *testing.T) {
	got := LineItemLiters(12, "750ml")
	assert.True(t, got.Equal(money.New(9)), "got %s", got)
}

func TestInvoiceTotalLiters(t *testing.T) {
	precomputed := money.MustParse("4.5")
	lines := []LiterLine{
		{Quantity: 12, BottleSize: "750ml"},        // 9.0 recomputed
		{Quantity: 99, TotalLiters: &precomputed}, // precomputed total wins
	}
	assert.True(t, InvoiceTotalLiters(lines).Equal(money.MustParse("13.5")))
}

func TestDisplayFormat(t *testing.T) {
	twelve := 12
	assert.Equal(t, "5 btl", DisplayFormat(5, &twelve))
	assert.Equal(t, "1.00 cs / 12 btl", DisplayFormat(12, &twelve))
	assert.Equal(t, "1.50 cs / 18 btl", DisplayFormat(18, &twelve))
}
