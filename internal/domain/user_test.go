package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContactMatches(t *testing.T) {
	c := Contact{Name: "Priya Patel", Company: "Acme Corp", Title: "VP Sales"}

	assert.True(t, c.Matches("priya"))
	assert.True(t, c.Matches("  ACME "))
	assert.True(t, c.Matches("vp sa"))
	assert.False(t, c.Matches("globex"))
	assert.False(t, c.Matches("   "))
}

func TestValidStrength(t *testing.T) {
	assert.False(t, ValidStrength(0))
	assert.True(t, ValidStrength(MinStrength))
	assert.True(t, ValidStrength(MaxStrength))
	assert.False(t, ValidStrength(6))
}
