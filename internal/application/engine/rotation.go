package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// rotate cierra el epoch terminado y arranca el siguiente.
//
// El descubrimiento va primero: si Gamma aún no conoce el epoch nuevo no
// se toca nada y el tick siguiente reintenta. Una vez descubierto, el
// reset de Book, Position y OrderTracker es atómico respecto al resto de
// eventos porque corre dentro del consumidor único — ningún evento del
// epoch viejo puede colarse a mitad.
func (e *Engine) rotate(ctx context.Context, now time.Time) error {
	next, err := e.markets.MarketAt(ctx, e.cfg.Duration, now)
	if err != nil {
		return fmt.Errorf("engine.rotate: %w", err)
	}
	if next.ConditionID == e.market.ConditionID {
		return fmt.Errorf("engine.rotate: gamma sigue devolviendo el epoch cerrado %s", e.market.Slug)
	}

	closed := e.market

	if err := e.executor.CancelAll(ctx); err != nil {
		// Las órdenes huérfanas del epoch viejo mueren con el mercado;
		// se loguea y se sigue.
		slog.Error("cancel all on rotation failed", "market", closed.Slug, "err", err)
	}

	if err := e.journal.RecordRotation(ctx, &closed, &e.pos); err != nil {
		slog.Error("journal rotation failed", "market", closed.Slug, "err", err)
	}

	slog.Info("epoch rotated",
		"closed", closed.Slug,
		"next", next.Slug,
		"final_net", e.pos.NetPosition(),
		"final_min_pnl_usd", e.pos.MinPnLUSD().StringFixed(2),
	)

	e.market = next
	e.book.Reset()
	e.pos.Reset()
	e.tracker.ClearAll()
	e.seenTrades = make(map[string]struct{})
	e.ticks = 0

	e.feed.Subscribe(next.YesTokenID, next.NoTokenID)
	return nil
}
