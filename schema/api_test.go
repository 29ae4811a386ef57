package schema

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayAmount(t *testing.T) {
	assert.Equal(t, "0", DisplayAmount(0))
	assert.Equal(t, "1.5", DisplayAmount(1_500_000))
	assert.Equal(t, "50", DisplayAmount(50_000_000))
	assert.Equal(t, "0.000001", DisplayAmount(1))

	// the full uint64 range renders without wrapping negative
	assert.Equal(t, "18446744073709.551615", DisplayAmount(math.MaxUint64))
}
