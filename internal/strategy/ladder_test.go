package strategy

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrewmao33/polybot/internal/domain"
)

func TestBuildLadder_Basic(t *testing.T) {
	size := decimal.NewFromInt(12)
	ladder := BuildLadder(480, size, 3, 10, 100)

	require.Len(t, ladder, 3)
	for _, price := range []domain.Ticks{480, 470, 460} {
		got, ok := ladder[price]
		require.True(t, ok, "falta rung %d", price)
		assert.True(t, got.Equal(size))
	}
}

func TestBuildLadder_EmptyOnZero(t *testing.T) {
	assert.Empty(t, BuildLadder(0, decimal.NewFromInt(12), 3, 10, 100))
	assert.Empty(t, BuildLadder(480, decimal.Zero, 3, 10, 100))
}

func TestBuildLadder_RespectsFloor(t *testing.T) {
	// top=120, 5 rungs, spacing=10, floor=100.
	// Los rungs 90 y 80 caen por debajo del floor → solo quedan 3.
	ladder := BuildLadder(120, decimal.NewFromInt(12), 5, 10, 100)

	require.Len(t, ladder, 3)
	assert.Contains(t, ladder, domain.Ticks(120))
	assert.Contains(t, ladder, domain.Ticks(110))
	assert.Contains(t, ladder, domain.Ticks(100))
	assert.NotContains(t, ladder, domain.Ticks(90))
	assert.NotContains(t, ladder, domain.Ticks(80))
}

func TestBuildLadder_WideSpacingNeverUnderflows(t *testing.T) {
	// spacing mayor que el top: los rungs siguientes serían negativos
	ladder := BuildLadder(150, decimal.NewFromInt(5), 4, 200, 100)
	require.Len(t, ladder, 1)
	assert.Contains(t, ladder, domain.Ticks(150))
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, domain.Ticks(5), cfg.MarginTicks)
	assert.Equal(t, 3, cfg.LadderRungs)
	assert.Equal(t, domain.Ticks(10), cfg.RungSpacing)
	assert.Equal(t, domain.Ticks(100), cfg.LadderFloor)
	assert.Equal(t, domain.Duration5m, cfg.Duration)
	assert.Equal(t, domain.Ticks(600), cfg.TakePriceCeiling)

	// Los hooks de pricing se entregan desactivados
	assert.True(t, cfg.SkewGamma.IsZero())
	assert.Equal(t, domain.Ticks(0), cfg.CrashFloor)
}
