package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutcomeConstructors(t *testing.T) {
	ok := Ok([]float64{1, 2})
	assert.Equal(t, OutcomeOK, ok.Status)
	assert.True(t, ok.Usable())

	fallback := Fallback("substitute")
	assert.Equal(t, OutcomeFallback, fallback.Status)
	assert.Equal(t, "substitute", fallback.Value)
	assert.True(t, fallback.Usable(), "fallback values are consumed like ok values")

	failed := Failed[int]()
	assert.Equal(t, OutcomeFailed, failed.Status)
	assert.False(t, failed.Usable())
	assert.Zero(t, failed.Value)
}
