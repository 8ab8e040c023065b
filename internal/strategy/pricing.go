package strategy

import (
	"github.com/andrewmao33/polybot/internal/domain"
)

// MaxBid returns the highest price we are willing to bid on a side.
//
// A pair filled at maxBid plus the opposite ask costs at most
// 1000 - margin ticks, so every completed pair locks in at least margin
// ticks of profit at settlement — provided the opposite leg later fills at
// or below its observed ask.
//
// Returns 0 (don't bid) when the opposite side has no ask: without a priced
// hedge there is no way to bound the pair cost.
func MaxBid(side domain.Side, book *domain.Book, margin domain.Ticks) domain.Ticks {
	oppositeAsk, ok := book.OppositeAsk(side)
	if !ok {
		return 0
	}
	return domain.TickNotional.SubSat(oppositeAsk).SubSat(margin)
}

// maxBidFor applies the configured pricing refinements on top of MaxBid.
// Both hooks default to disabled, in which case this is exactly MaxBid.
func maxBidFor(side domain.Side, book *domain.Book, pos *domain.Position, cfg Config) domain.Ticks {
	if cfg.CrashFloor > 0 {
		if ask, ok := book.BestAsk(side); ok && ask < cfg.CrashFloor {
			return 0
		}
	}

	base := MaxBid(side, book, cfg.MarginTicks)
	if cfg.SkewGamma.IsZero() || base == 0 {
		return base
	}

	// Positive exposure on this side lowers the bid to discourage fills.
	// Negative exposure never raises it above the margin-safe base.
	exposure := pos.NetPosition()
	if side == domain.SideNo {
		exposure = exposure.Neg()
	}
	adjusted := base.Decimal().Sub(cfg.SkewGamma.Mul(exposure))
	switch {
	case adjusted.IsNegative():
		return 0
	case adjusted.GreaterThan(base.Decimal()):
		return base
	default:
		return domain.Ticks(adjusted.IntPart())
	}
}
