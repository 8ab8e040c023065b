package domain

import "github.com/shopspring/decimal"

// Ticks es un precio en ticks enteros: 1 tick = 0.1¢, 1000 ticks = $1.00.
// Todos los cálculos de precio usan aritmética entera, nunca float.
type Ticks uint16

// TickNotional es el valor de redención de una share ganadora.
const TickNotional Ticks = 1000

// SubSat resta con saturación a 0; nunca hace wrap.
func (t Ticks) SubSat(o Ticks) Ticks {
	if o >= t {
		return 0
	}
	return t - o
}

// Decimal convierte el precio a decimal exacto, para cálculos de coste.
func (t Ticks) Decimal() decimal.Decimal {
	return decimal.NewFromInt(int64(t))
}

// USD devuelve el precio en dólares. Solo para logging y display.
func (t Ticks) USD() float64 {
	return float64(t) / 1000.0
}
