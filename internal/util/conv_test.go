package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 33.33, Round2(100.0/3))
	assert.Equal(t, 66.67, Round2(200.0/3))
	assert.Equal(t, 70.0, Round2(70))
	assert.Equal(t, 0.0, Round2(0))
	assert.Equal(t, 0.01, Round2(0.005))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "100.00", FormatPercent(100))
	assert.Equal(t, "0.00", FormatPercent(0))
	assert.Equal(t, "33.33", FormatPercent(33.33))
	assert.Equal(t, "50.00", FormatPercent(50.0))
}
