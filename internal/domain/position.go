package domain

import "github.com/shopspring/decimal"

// sideInventory acumula cantidad y coste (en ticks) de un lado.
type sideInventory struct {
	qty  decimal.Decimal
	cost decimal.Decimal
}

// Position es el inventario y cost basis de ambos lados.
// Solo lo mutan fills confirmados, siempre sumando: un cierre parcial se
// modela como fill del lado contrario, nunca como fill negativo.
type Position struct {
	sides [numSides]sideInventory
}

// ApplyFill acumula un fill confirmado: qty += size, cost += price*size.
func (p *Position) ApplyFill(side Side, price Ticks, size decimal.Decimal) {
	inv := &p.sides[side]
	inv.qty = inv.qty.Add(size)
	inv.cost = inv.cost.Add(price.Decimal().Mul(size))
}

// Qty devuelve la cantidad acumulada de un lado.
func (p *Position) Qty(side Side) decimal.Decimal {
	return p.sides[side].qty
}

// Cost devuelve el coste acumulado de un lado, en ticks.
func (p *Position) Cost(side Side) decimal.Decimal {
	return p.sides[side].cost
}

// AvgPrice devuelve el precio medio pagado por share de un lado, en ticks.
// No está definido con qty = 0.
func (p *Position) AvgPrice(side Side) (decimal.Decimal, bool) {
	inv := p.sides[side]
	if !inv.qty.IsPositive() {
		return decimal.Decimal{}, false
	}
	return inv.cost.Div(inv.qty), true
}

// NetPosition devuelve qtyYES - qtyNO: positivo = sobrecargado de YES.
func (p *Position) NetPosition() decimal.Decimal {
	return p.sides[SideYes].qty.Sub(p.sides[SideNo].qty)
}

// Imbalance devuelve el desbalance absoluto entre YES y NO.
func (p *Position) Imbalance() decimal.Decimal {
	return p.NetPosition().Abs()
}

// PairCost devuelve avg(YES) + avg(NO) en ticks: el coste de un par completo.
// No está definido si falta un lado.
func (p *Position) PairCost() (decimal.Decimal, bool) {
	avgYes, okYes := p.AvgPrice(SideYes)
	avgNo, okNo := p.AvgPrice(SideNo)
	if !okYes || !okNo {
		return decimal.Decimal{}, false
	}
	return avgYes.Add(avgNo), true
}

// MinPnLTicks devuelve el P&L mínimo garantizado en ticks.
// min(qtyYES, qtyNO) pares redimen a 1000 ticks pase lo que pase;
// el resto del coste se asume perdido en el peor caso.
func (p *Position) MinPnLTicks() decimal.Decimal {
	minQty := decimal.Min(p.sides[SideYes].qty, p.sides[SideNo].qty)
	payout := minQty.Mul(TickNotional.Decimal())
	totalCost := p.sides[SideYes].cost.Add(p.sides[SideNo].cost)
	return payout.Sub(totalCost)
}

// MinPnLUSD devuelve el P&L mínimo garantizado en dólares.
func (p *Position) MinPnLUSD() decimal.Decimal {
	return p.MinPnLTicks().Div(TickNotional.Decimal())
}

// IsEmpty devuelve true si no hay shares de ningún lado.
func (p *Position) IsEmpty() bool {
	return p.sides[SideYes].qty.IsZero() && p.sides[SideNo].qty.IsZero()
}

// HasBothSides devuelve true si hay shares de ambos lados.
func (p *Position) HasBothSides() bool {
	return p.sides[SideYes].qty.IsPositive() && p.sides[SideNo].qty.IsPositive()
}

// Reset limpia la posición. Solo en rollover de mercado.
func (p *Position) Reset() {
	*p = Position{}
}
