package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event es la unión cerrada de eventos normalizados que producen los feeds.
// El engine los consume de uno en uno con un switch exhaustivo.
type Event interface {
	isEvent()
}

// PriceUpdate es el último precio de BTC del feed de trades.
// Solo referencia para logging/display; nunca entra en cálculos de coste.
type PriceUpdate struct {
	Price float64
}

// BookUpdate es el nuevo best bid/ask de UN lado, en ticks.
// El feed solo lo emite cuando el par (bid, ask) realmente cambió.
type BookUpdate struct {
	Side Side
	Bid  Ticks
	Ask  Ticks
}

// OrderFill notifica el fill (total o parcial) de una orden nuestra.
// TradeID identifica la ejecución concreta; el engine lo usa para
// descartar redeliveries del feed.
type OrderFill struct {
	TradeID string
	OrderID string
	Side    Side
	Price   Ticks
	Size    decimal.Decimal
}

// Tick es el latido periódico del timer (cada segundo).
type Tick struct {
	At time.Time
}

// Shutdown rompe el event loop (Ctrl+C o señal de kill).
type Shutdown struct{}

func (PriceUpdate) isEvent() {}
func (BookUpdate) isEvent()  {}
func (OrderFill) isEvent()   {}
func (Tick) isEvent()        {}
func (Shutdown) isEvent()    {}
