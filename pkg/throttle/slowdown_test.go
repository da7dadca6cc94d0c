package throttle_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/totpgate/pkg/throttle"
)

func TestSlowdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		size int
		want time.Duration
	}{
		{size: 0, want: 0},
		{size: 100, want: 0},
		{size: 101, want: 256 * time.Millisecond},
		{size: 1000, want: 256 * time.Millisecond},
		{size: 1001, want: 1024 * time.Millisecond},
		{size: 3000, want: 1024 * time.Millisecond},
		{size: 3001, want: 2048 * time.Millisecond},
		{size: 6000, want: 2048 * time.Millisecond},
		{size: 6001, want: 3072 * time.Millisecond},
		{size: 8000, want: 3072 * time.Millisecond},
		{size: 8001, want: 4096 * time.Millisecond},
		{size: 1_000_000, want: 4096 * time.Millisecond},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, throttle.Slowdown(tt.size), "size %d", tt.size)
	}
}
