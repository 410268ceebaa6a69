package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentile(t *testing.T) {
	values := []float64{3, 1, 100}

	assert.Equal(t, 3.0, Percentile(values, 50))
	assert.Equal(t, 1.0, Percentile(values, 0))
	assert.Equal(t, 100.0, Percentile(values, 100))
	assert.Zero(t, Percentile(nil, 50))

	// Out-of-range p is clamped.
	assert.Equal(t, 100.0, Percentile(values, 150))
}

func TestPercentileInterpolates(t *testing.T) {
	assert.Equal(t, 1.5, Percentile([]float64{1, 2}, 50))
}

func TestMedian(t *testing.T) {
	assert.Equal(t, 2.0, Median([]float64{1, 2, 3}))
	assert.Equal(t, 2.5, Median([]float64{1, 2, 3, 4}))
}
