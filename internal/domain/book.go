package domain

import "time"

// sideQuotes es el mejor bid/ask de un lado. Los flags distinguen
// "sin datos todavía" de un precio legítimo de 0 ticks.
type sideQuotes struct {
	bid, ask       Ticks
	hasBid, hasAsk bool
}

// Book mantiene el mejor bid/ask de cada lado en ticks.
// Solo lo mutan los eventos de book; last-write-wins por lado, sin merge.
type Book struct {
	sides      [numSides]sideQuotes
	lastUpdate time.Time
}

// Update sobreescribe el bid/ask de un lado y el timestamp del último update.
// El otro lado queda intacto.
func (b *Book) Update(side Side, bid, ask Ticks, at time.Time) {
	b.sides[side] = sideQuotes{bid: bid, ask: ask, hasBid: true, hasAsk: true}
	b.lastUpdate = at
}

// IsSynced devuelve true si ambos lados tienen ask.
// No operar hasta que devuelva true.
func (b *Book) IsSynced() bool {
	return b.sides[SideYes].hasAsk && b.sides[SideNo].hasAsk
}

// BestBid devuelve el mejor bid de un lado, si existe.
func (b *Book) BestBid(side Side) (Ticks, bool) {
	q := b.sides[side]
	return q.bid, q.hasBid
}

// BestAsk devuelve el mejor ask de un lado, si existe.
func (b *Book) BestAsk(side Side) (Ticks, bool) {
	q := b.sides[side]
	return q.ask, q.hasAsk
}

// OppositeAsk devuelve el ask del lado contrario.
// Es el input del pricing: max_bid = 1000 - opposite_ask - margin.
func (b *Book) OppositeAsk(side Side) (Ticks, bool) {
	return b.BestAsk(side.Opposite())
}

// LastUpdate devuelve el timestamp del último update aplicado.
func (b *Book) LastUpdate() time.Time {
	return b.lastUpdate
}

// Reset limpia todo el estado del book. Se llama en cada rollover.
func (b *Book) Reset() {
	*b = Book{}
}
