package strategy

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/andrewmao33/polybot/internal/domain"
)

var three = decimal.NewFromInt(3)

// Reconcile diffs the ideal ladder against the resting orders and returns
// the minimal action list that moves the book toward target, for both sides,
// plus an optional rebalance take.
//
// It is a pure function of its arguments — no hidden state, no clock reads —
// so identical inputs always produce the identical action list. That makes
// every decision replayable in tests.
//
// Per side, in order:
//  1. every resting price absent from the ideal ladder is fully withdrawn
//     (one Cancel per order at that price, stale rungs are never trimmed);
//  2. every ideal rung short by at least MinOrderSize gets one Place for
//     the shortfall (top-up only — a rung is never cancelled for being
//     short, and never for being overfull).
//
// Output order is deterministic: YES actions, then NO actions, then the
// optional Take; within a side, cancels then places, highest price first.
func Reconcile(
	book *domain.Book,
	pos *domain.Position,
	orders *domain.OrderTracker,
	market domain.Market,
	cfg Config,
	now time.Time,
) []domain.Action {
	var actions []domain.Action
	remaining := market.TimeRemaining(now)

	for _, side := range domain.Sides {
		maxBid := maxBidFor(side, book, pos, cfg)
		size := SizeWithLimit(side, pos, remaining, cfg.Duration, cfg.MaxPosition)
		ideal := BuildLadder(maxBid, size, cfg.LadderRungs, cfg.RungSpacing, cfg.LadderFloor)

		// 1. Withdraw stale rungs.
		for _, price := range descending(orders.Prices(side)) {
			if _, wanted := ideal[price]; wanted {
				continue
			}
			for _, o := range orders.OrdersAtPrice(side, price) {
				actions = append(actions, domain.Cancel{OrderID: o.OrderID})
			}
		}

		// 2. Top up short rungs.
		for _, price := range descendingKeys(ideal) {
			shortfall := ideal[price].Sub(orders.TotalSizeAtPrice(side, price))
			if shortfall.GreaterThanOrEqual(cfg.MinOrderSize) {
				actions = append(actions, domain.Place{Side: side, Price: price, Size: shortfall})
			}
		}
	}

	if take, ok := checkRebalance(pos, book, cfg); ok {
		actions = append(actions, take)
	}
	return actions
}

// checkRebalance emits a taker buy on the lighter side when the inventory
// imbalance exceeds the threshold. Takes a third of the imbalance at a time
// (capped at MaxTakeSize) so one bad print doesn't overcorrect.
func checkRebalance(pos *domain.Position, book *domain.Book, cfg Config) (domain.Take, bool) {
	imbalance := pos.Imbalance()
	if !imbalance.GreaterThan(cfg.RebalanceThreshold) {
		return domain.Take{}, false
	}

	// The lighter side is the one with fewer shares.
	lighter := domain.SideYes
	if pos.NetPosition().IsPositive() {
		lighter = domain.SideNo
	}

	maxPrice, ok := book.BestAsk(lighter)
	if !ok || maxPrice > cfg.TakePriceCeiling {
		return domain.Take{}, false
	}

	takeSize := decimal.Min(imbalance.Div(three), cfg.MaxTakeSize)
	return domain.Take{Side: lighter, Size: takeSize, MaxPrice: maxPrice}, true
}

func descending(prices []domain.Ticks) []domain.Ticks {
	sort.Slice(prices, func(i, j int) bool { return prices[i] > prices[j] })
	return prices
}

func descendingKeys(ladder map[domain.Ticks]decimal.Decimal) []domain.Ticks {
	keys := make([]domain.Ticks, 0, len(ladder))
	for p := range ladder {
		keys = append(keys, p)
	}
	return descending(keys)
}
