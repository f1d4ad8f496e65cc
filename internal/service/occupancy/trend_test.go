package occupancy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrend_NilOnZeroBaseline(t *testing.T) {
	assert.Nil(t, Trend(0, 0))
	assert.Nil(t, Trend(100, 0))
	assert.Nil(t, Trend(1, 0))
}

func TestTrend(t *testing.T) {
	tests := []struct {
		name     string
		current  int
		previous int
		want     float64
	}{
		{name: "up ten percent", current: 110, previous: 100, want: 10.0},
		{name: "down fifteen percent", current: 85, previous: 100, want: -15.0},
		{name: "flat", current: 100, previous: 100, want: 0.0},
		{name: "collapse to zero", current: 0, previous: 80, want: -100.0},
		{name: "rounded to two decimals", current: 100, previous: 300, want: -66.67},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := Trend(test.current, test.previous)
			require.NotNil(t, got)
			assert.Equal(t, test.want, *got)
		})
	}
}
