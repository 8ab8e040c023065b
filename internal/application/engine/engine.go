// Package engine contiene el event loop del maker: un único consumidor
// que drena eventos de uno en uno, muta el estado en memoria y reconcilia
// las órdenes contra el ladder ideal.
//
// La consistencia secuencial sale gratis de esta forma: ningún evento se
// procesa en paralelo con otro, así que Book/Position/OrderTracker nunca
// necesitan locks.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/andrewmao33/polybot/internal/domain"
	"github.com/andrewmao33/polybot/internal/ports"
	"github.com/andrewmao33/polybot/internal/strategy"
)

// statusEvery define cada cuántos ticks se imprime el estado (10 ticks ≈ 10s).
const statusEvery = 10

// Engine es el consumidor único del canal de eventos.
type Engine struct {
	events   <-chan domain.Event
	executor ports.OrderExecutor
	markets  ports.MarketProvider
	feed     ports.BookFeed
	journal  ports.TradeJournal
	notifier ports.StatusNotifier
	cfg      strategy.Config

	market  domain.Market
	book    domain.Book
	pos     domain.Position
	tracker *domain.OrderTracker

	// seenTrades dedupea redeliveries del feed de fills dentro del epoch.
	// Se vacía en cada rollover; los trade IDs no cruzan epochs.
	seenTrades map[string]struct{}

	lastPrice float64
	ticks     int
}

// New crea el engine. El mercado inicial se descubre en Run.
func New(
	events <-chan domain.Event,
	executor ports.OrderExecutor,
	markets ports.MarketProvider,
	feed ports.BookFeed,
	journal ports.TradeJournal,
	notifier ports.StatusNotifier,
	cfg strategy.Config,
) *Engine {
	return &Engine{
		events:     events,
		executor:   executor,
		markets:    markets,
		feed:       feed,
		journal:    journal,
		notifier:   notifier,
		cfg:        cfg,
		tracker:    domain.NewOrderTracker(),
		seenTrades: make(map[string]struct{}),
	}
}

// Run descubre el epoch activo y consume eventos hasta Shutdown o hasta
// que el contexto se cancele. Fallar el descubrimiento inicial es fatal;
// después, cualquier fallo se loguea y se reintenta.
func (e *Engine) Run(ctx context.Context) error {
	market, err := e.markets.MarketAt(ctx, e.cfg.Duration, time.Now())
	if err != nil {
		return fmt.Errorf("engine.Run: descubrimiento inicial: %w", err)
	}
	e.market = market
	e.feed.Subscribe(market.YesTokenID, market.NoTokenID)

	slog.Info("engine started",
		"market", market.Slug,
		"duration", e.cfg.Duration,
		"end_at", market.EndAt,
	)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-e.events:
			if done := e.handleEvent(ctx, ev); done {
				return nil
			}
		}
	}
}

// handleEvent aplica UN evento. Devuelve true solo en Shutdown.
func (e *Engine) handleEvent(ctx context.Context, ev domain.Event) bool {
	switch ev := ev.(type) {
	case domain.PriceUpdate:
		// Solo referencia para el status; no entra en ningún cálculo.
		e.lastPrice = ev.Price

	case domain.BookUpdate:
		e.book.Update(ev.Side, ev.Bid, ev.Ask, time.Now())
		e.reconcile(ctx, time.Now())

	case domain.OrderFill:
		e.applyFill(ctx, ev)
		e.reconcile(ctx, time.Now())

	case domain.Tick:
		e.onTick(ctx, ev.At)

	case domain.Shutdown:
		slog.Info("shutdown event received, cancelling open orders")
		if err := e.executor.CancelAll(ctx); err != nil {
			slog.Error("cancel all on shutdown failed", "err", err)
		}
		return true
	}
	return false
}

// applyFill muta posición y tracker con un fill nuevo. Los redeliveries
// del mismo trade se descartan antes de tocar nada: aplicarlos dos veces
// duplicaría inventario y coste.
func (e *Engine) applyFill(ctx context.Context, fill domain.OrderFill) {
	if _, seen := e.seenTrades[fill.TradeID]; seen {
		slog.Debug("duplicate fill dropped", "trade_id", fill.TradeID)
		return
	}
	e.seenTrades[fill.TradeID] = struct{}{}

	e.pos.ApplyFill(fill.Side, fill.Price, fill.Size)
	e.tracker.UpdateFill(fill.Side, fill.OrderID, fill.Size)

	slog.Info("fill",
		"side", fill.Side,
		"price", fill.Price,
		"size", fill.Size,
		"net", e.pos.NetPosition(),
		"min_pnl_usd", e.pos.MinPnLUSD().StringFixed(2),
	)

	if err := e.journal.RecordFill(ctx, &e.market, fill); err != nil {
		slog.Error("journal fill failed", "trade_id", fill.TradeID, "err", err)
	}
}

// onTick rota el epoch si terminó y, si no, imprime estado cada statusEvery
// ticks y reconcilia con el tiempo restante fresco (los tamaños del ladder
// dependen de él aunque el book no se haya movido).
func (e *Engine) onTick(ctx context.Context, at time.Time) {
	if e.market.Ended(at) {
		if err := e.rotate(ctx, at); err != nil {
			// El epoch nuevo puede tardar unos segundos en existir en
			// Gamma; el tick siguiente reintenta.
			slog.Warn("rotation failed, retrying next tick", "err", err)
		}
		return
	}

	e.ticks++
	if e.ticks%statusEvery == 0 {
		if err := e.notifier.Status(ctx, &e.market, &e.book, &e.pos, e.tracker, at); err != nil {
			slog.Error("status failed", "err", err)
		}
	}

	e.reconcile(ctx, at)
}

// reconcile calcula el ladder ideal y ejecuta la diferencia. No hace nada
// hasta tener ask en ambos lados: sin book completo no hay precio seguro.
func (e *Engine) reconcile(ctx context.Context, now time.Time) {
	if !e.book.IsSynced() {
		return
	}

	actions := strategy.Reconcile(&e.book, &e.pos, e.tracker, e.market, e.cfg, now)
	for _, action := range actions {
		e.dispatch(ctx, action)
	}
}

// dispatch ejecuta una acción contra el executor y refleja el resultado en
// el tracker. Un fallo del executor deja el tracker como estaba: la acción
// se recalculará en el próximo reconcile.
func (e *Engine) dispatch(ctx context.Context, action domain.Action) {
	switch action := action.(type) {
	case domain.Place:
		order, err := e.executor.PlaceOrder(ctx, &e.market, action.Side, action.Price, action.Size)
		if err != nil {
			slog.Error("place failed", "side", action.Side, "price", action.Price, "err", err)
			return
		}
		e.tracker.Add(action.Side, order.OrderID, order.Price, order.RemainingSize)

	case domain.Cancel:
		if err := e.executor.CancelOrder(ctx, action.OrderID); err != nil {
			slog.Error("cancel failed", "order_id", action.OrderID, "err", err)
			return
		}
		for _, side := range domain.Sides {
			if _, ok := e.tracker.RemoveByID(side, action.OrderID); ok {
				break
			}
		}

	case domain.CancelAll:
		if err := e.executor.CancelAll(ctx); err != nil {
			slog.Error("cancel all failed", "err", err)
			return
		}
		e.tracker.ClearAll()

	case domain.Take:
		// El fill del take vuelve por el feed como cualquier otro;
		// aquí no se toca posición ni tracker.
		if err := e.executor.Take(ctx, &e.market, action.Side, action.MaxPrice, action.Size); err != nil {
			slog.Error("take failed", "side", action.Side, "max_price", action.MaxPrice, "err", err)
		}
	}
}
