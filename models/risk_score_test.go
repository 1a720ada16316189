package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRiskTierBoundaries(t *testing.T) {
	assert.Equal(t, RiskTierNone, RiskTierFor(100))
	assert.Equal(t, RiskTierLow, RiskTierFor(99))
	assert.Equal(t, RiskTierLow, RiskTierFor(90))
	assert.Equal(t, RiskTierMedium, RiskTierFor(89))
	assert.Equal(t, RiskTierMedium, RiskTierFor(75))
	assert.Equal(t, RiskTierHigh, RiskTierFor(74))
	assert.Equal(t, RiskTierHigh, RiskTierFor(50))
	assert.Equal(t, RiskTierMaximum, RiskTierFor(49))
	assert.Equal(t, RiskTierMaximum, RiskTierFor(0))
}
