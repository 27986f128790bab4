package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDecimalExactness guards against binary floating point drift:
// 14.50 * 12 must be exactly 174.00, not 173.99999...
func TestDecimalExactness(t *testing.T) {
	unitPrice := MustParse("14.50")
	lineTotal := unitPrice.Mul(New(12))

	assert.True(t, lineTotal.Equal(MustParse("174.00")), "got %s", lineTotal)
	assert.Equal(t, "174.00", lineTotal.StringFixed(2))
}

func TestSumNoDrift(t *testing.T) {
	// 0.1 summed ten times is a classic float trap.
	tenth := MustParse("0.1")
	total := Zero
	for i := 0; i < 10; i++ {
		total = total.Add(tenth)
	}
	assert.True(t, total.Equal(New(1)), "got %s", total)

	assert.True(t, Sum(MustParse("1.11"), MustParse("2.22"), MustParse("3.33")).Equal(MustParse("6.66")))
}

func TestParse(t *testing.T) {
	a, err := Parse("0.750")
	require.NoError(t, err)
	assert.True(t, a.Equal(MustParse("0.75")))

	_, err = Parse("not-a-number")
	require.Error(t, err)
}

func TestFormatUSD(t *testing.T) {
	assert.Equal(t, "$174.00", FormatUSD(MustParse("174")))
	assert.Equal(t, "$3.60", FormatUSD(MustParse("3.6")))
}
