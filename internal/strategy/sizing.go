package strategy

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/andrewmao33/polybot/internal/domain"
)

// OrderSize returns the quote size for the time remaining in the epoch.
// Time-based, not imbalance-based: size steps down as the market nears its
// end, when adverse selection gets worse. Tier lower bounds are inclusive
// (exactly 180s in a 5m market already belongs to the smaller tier).
func OrderSize(timeRemaining time.Duration, duration domain.MarketDuration) decimal.Decimal {
	secs := int64(timeRemaining / time.Second)
	if duration == domain.Duration15m {
		return size15m(secs)
	}
	return size5m(secs)
}

// size5m is the 5-minute table:
//
//	>180s → 12, >120s → 11, >60s → 9, ≤60s → 7
func size5m(secs int64) decimal.Decimal {
	switch {
	case secs > 180:
		return decimal.NewFromInt(12)
	case secs > 120:
		return decimal.NewFromInt(11)
	case secs > 60:
		return decimal.NewFromInt(9)
	default:
		return decimal.NewFromInt(7)
	}
}

// size15m is the 15-minute table, roughly 2x the 5m sizes:
//
//	>540s → 24, >360s → 20, >180s → 16, ≤180s → 12
func size15m(secs int64) decimal.Decimal {
	switch {
	case secs > 540:
		return decimal.NewFromInt(24)
	case secs > 360:
		return decimal.NewFromInt(20)
	case secs > 180:
		return decimal.NewFromInt(16)
	default:
		return decimal.NewFromInt(12)
	}
}

// CanPlace reports whether this side is still under its position limit.
// The side's signed exposure is the net position for YES and its negation
// for NO; reaching maxPosition exactly already blocks placing.
func CanPlace(side domain.Side, pos *domain.Position, maxPosition decimal.Decimal) bool {
	exposure := pos.NetPosition()
	if side == domain.SideNo {
		exposure = exposure.Neg()
	}
	return exposure.LessThan(maxPosition)
}

// SizeWithLimit returns the quote size, or zero when the side is at its
// position limit.
func SizeWithLimit(
	side domain.Side,
	pos *domain.Position,
	timeRemaining time.Duration,
	duration domain.MarketDuration,
	maxPosition decimal.Decimal,
) decimal.Decimal {
	if !CanPlace(side, pos, maxPosition) {
		return decimal.Zero
	}
	return OrderSize(timeRemaining, duration)
}
