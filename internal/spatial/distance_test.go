package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance(t *testing.T) {
	// Madrid to Barcelona is roughly 505 km.
	d := HaversineDistance(40.4168, -3.7038, 41.3874, 2.1686)
	assert.InDelta(t, 505000, d, 15000)

	assert.Zero(t, HaversineDistance(42.9, -8.74, 42.9, -8.74))
}
