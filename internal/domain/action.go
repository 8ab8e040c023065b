package domain

import "github.com/shopspring/decimal"

// Action es la unión cerrada de acciones que emite la estrategia.
// Son value objects sin ciclo de vida: el executor las traduce a llamadas
// al exchange en el mismo orden en que llegan.
type Action interface {
	isAction()
}

// Place coloca una orden limit (maker) que descansa en el book.
type Place struct {
	Side  Side
	Price Ticks
	Size  decimal.Decimal
}

// Cancel cancela una orden concreta por id.
type Cancel struct {
	OrderID string
}

// CancelAll cancela todas las órdenes de ambos lados.
// Solo para circuit breakers y rollover; el reconciler normal nunca lo emite.
type CancelAll struct{}

// Take cruza el spread para comprar inmediatamente (taker).
// Solo para rebalancear inventario desbalanceado.
type Take struct {
	Side Side
	Size decimal.Decimal
	// MaxPrice es el precio máximo a pagar; no llena por encima.
	MaxPrice Ticks
}

func (Place) isAction()     {}
func (Cancel) isAction()    {}
func (CancelAll) isAction() {}
func (Take) isAction()      {}
