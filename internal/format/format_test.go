package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetermineMatrix(t *testing.T) {
	cases := []struct {
		name        string
		customer    string
		distributor string
		want        Type
	}{
		{"domestic to domestic", "VA", "VA", VAABCInState},
		{"domestic to foreign", "MD", "VA", VAABCTaxExempt},
		{"domestic to foreign DC", "DC", "VA", VAABCTaxExempt},
		{"unknown customer state", "", "VA", Standard},
		{"blank customer state", "   ", "VA", Standard},
		{"unregulated distributor", "VA", "NC", Standard},
		{"both unregulated", "NY", "NC", Standard},
		{"lowercase input", "va", "va", VAABCInState},
	}
	for _, tc := range cases {
		got := Determine(Input{CustomerState: tc.customer, DistributorState: tc.distributor})
		assert.Equal(t, tc.want, got, tc.name)
	}
}

func TestDetermineOverrideWins(t *testing.T) {
	override := VAABCTaxExempt
	got := Determine(Input{
		CustomerState:    "VA",
		DistributorState: "VA",
		Override:         &override,
	})
	assert.Equal(t, VAABCTaxExempt, got)

	override = Standard
	got = Determine(Input{CustomerState: "", DistributorState: "VA", Override: &override})
	assert.Equal(t, Standard, got)
}

func TestDetermineIsPure(t *testing.T) {
	in := Input{CustomerState: "VA", DistributorState: "VA"}
	first := Determine(in)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Determine(in))
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid(Standard))
	assert.True(t, Valid(VAABCInState))
	assert.True(t, Valid(VAABCTaxExempt))
	assert.False(t, Valid(Type("CONDENSED")))
}
