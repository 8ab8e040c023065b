package domain

import "github.com/shopspring/decimal"

// StandingOrder es una orden nuestra descansando en el book.
type StandingOrder struct {
	OrderID string
	Price   Ticks
	// OriginalSize es el tamaño con el que se colocó.
	OriginalSize decimal.Decimal
	// RemainingSize decrece con cada fill parcial. Siempre > 0 mientras
	// la orden esté en el tracker.
	RemainingSize decimal.Decimal
}

// OrderTracker mantiene las órdenes descansando por lado y por precio.
// Soporta varias órdenes al mismo precio (stacking): nunca se fusionan,
// porque pueden haberse colocado en momentos distintos con tamaños distintos.
//
// Invariantes tras cada mutación: ninguna orden con remaining <= 0,
// ningún nivel de precio vacío.
type OrderTracker struct {
	sides [numSides]map[Ticks][]StandingOrder
}

// NewOrderTracker crea un tracker vacío.
func NewOrderTracker() *OrderTracker {
	var t OrderTracker
	for i := range t.sides {
		t.sides[i] = make(map[Ticks][]StandingOrder)
	}
	return &t
}

// Add registra una orden nueva tras el ack de colocación.
// Hace append al nivel de precio (stacking).
func (t *OrderTracker) Add(side Side, orderID string, price Ticks, size decimal.Decimal) {
	t.sides[side][price] = append(t.sides[side][price], StandingOrder{
		OrderID:       orderID,
		Price:         price,
		OriginalSize:  size,
		RemainingSize: size,
	})
}

// RemoveByID elimina una orden concreta por id.
// Devuelve la orden eliminada y true si existía.
func (t *OrderTracker) RemoveByID(side Side, orderID string) (StandingOrder, bool) {
	for price, list := range t.sides[side] {
		for i, o := range list {
			if o.OrderID != orderID {
				continue
			}
			t.sides[side][price] = append(list[:i:i], list[i+1:]...)
			if len(t.sides[side][price]) == 0 {
				delete(t.sides[side], price)
			}
			return o, true
		}
	}
	return StandingOrder{}, false
}

// RemoveAtPrice elimina todas las órdenes de un nivel de precio.
func (t *OrderTracker) RemoveAtPrice(side Side, price Ticks) []StandingOrder {
	removed := t.sides[side][price]
	delete(t.sides[side], price)
	return removed
}

// UpdateFill decrementa el remaining de una orden tras un fill.
// Si remaining llega a <= 0 la orden se elimina inmediatamente.
// Un fill de tamaño cero, o sobre un id desconocido, es un no-op seguro.
func (t *OrderTracker) UpdateFill(side Side, orderID string, filled decimal.Decimal) {
	for price, list := range t.sides[side] {
		for i := range list {
			if list[i].OrderID != orderID {
				continue
			}
			list[i].RemainingSize = list[i].RemainingSize.Sub(filled)
			if list[i].RemainingSize.IsPositive() {
				return
			}
			t.sides[side][price] = append(list[:i:i], list[i+1:]...)
			if len(t.sides[side][price]) == 0 {
				delete(t.sides[side], price)
			}
			return
		}
	}
}

// Clear elimina todas las órdenes de un lado.
func (t *OrderTracker) Clear(side Side) {
	t.sides[side] = make(map[Ticks][]StandingOrder)
}

// ClearAll elimina todas las órdenes de ambos lados.
func (t *OrderTracker) ClearAll() {
	for _, s := range Sides {
		t.Clear(s)
	}
}

// OrdersAtPrice devuelve las órdenes de un nivel de precio.
func (t *OrderTracker) OrdersAtPrice(side Side, price Ticks) []StandingOrder {
	return t.sides[side][price]
}

// TotalSizeAtPrice devuelve la suma de remaining de todas las órdenes
// a un precio.
func (t *OrderTracker) TotalSizeAtPrice(side Side, price Ticks) decimal.Decimal {
	total := decimal.Zero
	for _, o := range t.sides[side][price] {
		total = total.Add(o.RemainingSize)
	}
	return total
}

// Prices devuelve todos los precios con órdenes descansando.
func (t *OrderTracker) Prices(side Side) []Ticks {
	prices := make([]Ticks, 0, len(t.sides[side]))
	for p := range t.sides[side] {
		prices = append(prices, p)
	}
	return prices
}

// AllOrders devuelve todas las órdenes de un lado, aplanadas.
func (t *OrderTracker) AllOrders(side Side) []StandingOrder {
	var out []StandingOrder
	for _, list := range t.sides[side] {
		out = append(out, list...)
	}
	return out
}

// AllOrderIDs devuelve todos los ids de un lado.
func (t *OrderTracker) AllOrderIDs(side Side) []string {
	orders := t.AllOrders(side)
	ids := make([]string, len(orders))
	for i, o := range orders {
		ids[i] = o.OrderID
	}
	return ids
}

// Count devuelve el número de órdenes de un lado.
func (t *OrderTracker) Count(side Side) int {
	n := 0
	for _, list := range t.sides[side] {
		n += len(list)
	}
	return n
}

// TotalCount devuelve el número total de órdenes.
func (t *OrderTracker) TotalCount() int {
	return t.Count(SideYes) + t.Count(SideNo)
}

// TopPrice devuelve el precio más alto con órdenes.
func (t *OrderTracker) TopPrice(side Side) (Ticks, bool) {
	var top Ticks
	found := false
	for p := range t.sides[side] {
		if !found || p > top {
			top = p
			found = true
		}
	}
	return top, found
}

// BottomPrice devuelve el precio más bajo con órdenes.
func (t *OrderTracker) BottomPrice(side Side) (Ticks, bool) {
	var bottom Ticks
	found := false
	for p := range t.sides[side] {
		if !found || p < bottom {
			bottom = p
			found = true
		}
	}
	return bottom, found
}

// TotalExposure devuelve la suma de remaining de todas las órdenes de un lado.
func (t *OrderTracker) TotalExposure(side Side) decimal.Decimal {
	total := decimal.Zero
	for _, list := range t.sides[side] {
		for _, o := range list {
			total = total.Add(o.RemainingSize)
		}
	}
	return total
}

// HasOrders devuelve true si hay alguna orden en ese lado.
func (t *OrderTracker) HasOrders(side Side) bool {
	return len(t.sides[side]) > 0
}

// FindPriceByID devuelve el precio de la orden con ese id, si existe.
func (t *OrderTracker) FindPriceByID(side Side, orderID string) (Ticks, bool) {
	for price, list := range t.sides[side] {
		for _, o := range list {
			if o.OrderID == orderID {
				return price, true
			}
		}
	}
	return 0, false
}
