package strategy

import (
	"github.com/shopspring/decimal"

	"github.com/andrewmao33/polybot/internal/domain"
)

// Config holds every tunable of the quoting strategy.
type Config struct {
	// MarginTicks is the minimum profit reserved per completed pair
	// (5 = 0.5c).
	MarginTicks domain.Ticks
	// MaxPosition is the maximum signed exposure allowed per side, in shares.
	MaxPosition decimal.Decimal
	// MinOrderSize is the smallest order worth placing (API minimum is 5).
	MinOrderSize decimal.Decimal
	// LadderRungs is the number of price levels quoted per side.
	LadderRungs int
	// RungSpacing is the distance between rungs in ticks (10 = 1c).
	RungSpacing domain.Ticks
	// LadderFloor drops any rung priced below it (100 = 10c).
	LadderFloor domain.Ticks
	// Duration selects the sizing table (5m or 15m markets).
	Duration domain.MarketDuration
	// RebalanceThreshold is the share imbalance that triggers a taker buy.
	RebalanceThreshold decimal.Decimal
	// MaxTakeSize caps a single rebalance take.
	MaxTakeSize decimal.Decimal
	// TakePriceCeiling skips the rebalance when the lighter side's ask is
	// above it. Sanity check: never overpay to rebalance.
	TakePriceCeiling domain.Ticks

	// SkewGamma lowers the bid of the side we are already heavy on,
	// proportionally to the net position. Zero disables it; there is no
	// agreed coefficient yet, so it ships disabled.
	SkewGamma decimal.Decimal
	// CrashFloor suppresses bidding on a side whose own ask fell below it
	// (a side crashing toward zero). Zero disables it; no agreed threshold
	// yet, ships disabled.
	CrashFloor domain.Ticks
}

// DefaultConfig returns the tuning used in production for 5m markets.
func DefaultConfig() Config {
	return Config{
		MarginTicks:        5,
		MaxPosition:        decimal.NewFromInt(150),
		MinOrderSize:       decimal.NewFromInt(5),
		LadderRungs:        3,
		RungSpacing:        10,
		LadderFloor:        100,
		Duration:           domain.Duration5m,
		RebalanceThreshold: decimal.NewFromInt(30),
		MaxTakeSize:        decimal.NewFromInt(12),
		TakePriceCeiling:   600,
	}
}
