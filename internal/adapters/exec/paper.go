// Package exec contiene los ejecutores de órdenes.
//
// Por ahora solo existe el ejecutor paper: registra las órdenes sin tocar
// el exchange, con IDs propios, para validar la estrategia en seco contra
// feeds reales.
package exec

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/andrewmao33/polybot/internal/domain"
)

// PaperExecutor implementa ports.OrderExecutor sin enviar nada al CLOB.
type PaperExecutor struct {
	// events permite simular el fill inmediato de los takes de rebalance.
	// Si es nil, los takes solo se loguean.
	events chan<- domain.Event
}

// NewPaperExecutor crea un ejecutor paper. Pasar un canal de eventos no
// nulo activa la simulación de fills para los takes.
func NewPaperExecutor(events chan<- domain.Event) *PaperExecutor {
	return &PaperExecutor{events: events}
}

// PlaceOrder registra la orden y devuelve un ID local.
func (e *PaperExecutor) PlaceOrder(ctx context.Context, market *domain.Market, side domain.Side, price domain.Ticks, size decimal.Decimal) (domain.StandingOrder, error) {
	order := domain.StandingOrder{
		OrderID:       "paper-" + uuid.NewString(),
		Price:         price,
		OriginalSize:  size,
		RemainingSize: size,
	}
	slog.Info("[paper] place",
		"market", market.Slug,
		"side", side,
		"price", price,
		"size", size,
		"order_id", order.OrderID,
	)
	return order, nil
}

// CancelOrder registra la cancelación.
func (e *PaperExecutor) CancelOrder(ctx context.Context, orderID string) error {
	slog.Info("[paper] cancel", "order_id", orderID)
	return nil
}

// CancelAll registra la cancelación global.
func (e *PaperExecutor) CancelAll(ctx context.Context) error {
	slog.Info("[paper] cancel all")
	return nil
}

// Take registra el take de rebalance. Con simulación activa, emite un fill
// inmediato al precio tope; el fill vuelve por el canal de eventos como
// cualquier otro, así que el flujo aguas abajo es idéntico al real.
func (e *PaperExecutor) Take(ctx context.Context, market *domain.Market, side domain.Side, maxPrice domain.Ticks, size decimal.Decimal) error {
	slog.Info("[paper] take",
		"market", market.Slug,
		"side", side,
		"max_price", maxPrice,
		"size", size,
	)
	if e.events == nil {
		return nil
	}

	fill := domain.OrderFill{
		TradeID: "paper-trade-" + uuid.NewString(),
		OrderID: "paper-take-" + uuid.NewString(),
		Side:    side,
		Price:   maxPrice,
		Size:    size,
	}
	select {
	case e.events <- fill:
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}
