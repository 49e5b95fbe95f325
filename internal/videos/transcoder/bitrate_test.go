package transcoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTargetBitrate(t *testing.T) {
	t.Parallel()

	t.Run("applies the reduction percent", func(t *testing.T) {
		assert.Equal(t, 4000000, ComputeTargetBitrate(8000000, 50))
		assert.Equal(t, 6000000, ComputeTargetBitrate(8000000, 25))
	})

	t.Run("out of range percent falls back to 50", func(t *testing.T) {
		assert.Equal(t, 4000000, ComputeTargetBitrate(8000000, 0))
		assert.Equal(t, 4000000, ComputeTargetBitrate(8000000, 100))
		assert.Equal(t, 4000000, ComputeTargetBitrate(8000000, -10))
		assert.Equal(t, 4000000, ComputeTargetBitrate(8000000, 150))
	})

	t.Run("non positive result clamps to the floor", func(t *testing.T) {
		assert.Equal(t, minProxyBitrate, ComputeTargetBitrate(0, 50))
	})
}
