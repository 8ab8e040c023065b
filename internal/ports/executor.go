package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/andrewmao33/polybot/internal/domain"
)

// OrderExecutor places, cancels, and takes orders against the CLOB.
type OrderExecutor interface {
	// PlaceOrder submits a limit maker order on the given side and returns
	// the resulting standing order with its exchange-assigned ID.
	PlaceOrder(ctx context.Context, market *domain.Market, side domain.Side, price domain.Ticks, size decimal.Decimal) (domain.StandingOrder, error)

	// CancelOrder cancels a specific order by its CLOB order ID.
	CancelOrder(ctx context.Context, orderID string) error

	// CancelAll cancels every open order for this wallet.
	CancelAll(ctx context.Context) error

	// Take submits a marketable limit order capped at maxPrice. Used by
	// the rebalance leg; fills come back through the fill stream like any
	// other order.
	Take(ctx context.Context, market *domain.Market, side domain.Side, maxPrice domain.Ticks, size decimal.Decimal) error
}
