package domain

import (
	"sort"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderTracker_AddAndQuery(t *testing.T) {
	tracker := NewOrderTracker()

	tracker.Add(SideYes, "order1", 450, dec(10))
	tracker.Add(SideYes, "order2", 440, dec(10))
	tracker.Add(SideNo, "order3", 540, dec(10))

	assert.Equal(t, 2, tracker.Count(SideYes))
	assert.Equal(t, 1, tracker.Count(SideNo))
	assert.Equal(t, 3, tracker.TotalCount())

	assert.True(t, tracker.TotalSizeAtPrice(SideYes, 450).Equal(dec(10)))
	assert.True(t, tracker.TotalSizeAtPrice(SideYes, 999).IsZero())
}

func TestOrderTracker_Stacking(t *testing.T) {
	tracker := NewOrderTracker()

	// Dos órdenes al mismo precio: se apilan, nunca se fusionan
	tracker.Add(SideYes, "order1", 450, dec(10))
	tracker.Add(SideYes, "order2", 450, dec(5))

	assert.Equal(t, 2, tracker.Count(SideYes))
	assert.True(t, tracker.TotalSizeAtPrice(SideYes, 450).Equal(dec(15)))
	assert.Len(t, tracker.OrdersAtPrice(SideYes, 450), 2)
}

func TestOrderTracker_RemoveByID(t *testing.T) {
	tracker := NewOrderTracker()
	tracker.Add(SideYes, "order1", 450, dec(10))
	tracker.Add(SideYes, "order2", 450, dec(5))

	removed, ok := tracker.RemoveByID(SideYes, "order1")
	require.True(t, ok)
	assert.True(t, removed.RemainingSize.Equal(dec(10)))

	assert.Equal(t, 1, tracker.Count(SideYes))
	assert.True(t, tracker.TotalSizeAtPrice(SideYes, 450).Equal(dec(5)))

	_, ok = tracker.RemoveByID(SideYes, "missing")
	assert.False(t, ok)
}

func TestOrderTracker_AddRemoveRoundTrip(t *testing.T) {
	tracker := NewOrderTracker()
	tracker.Add(SideYes, "base", 450, dec(10))

	// add + remove_by_id deja el tracker como estaba antes del par
	tracker.Add(SideYes, "tmp", 460, dec(7))
	_, ok := tracker.RemoveByID(SideYes, "tmp")
	require.True(t, ok)

	assert.Equal(t, 1, tracker.Count(SideYes))
	assert.Equal(t, []Ticks{450}, tracker.Prices(SideYes))
	assert.True(t, tracker.TotalSizeAtPrice(SideYes, 460).IsZero())
	_, ok = tracker.FindPriceByID(SideYes, "tmp")
	assert.False(t, ok)
}

func TestOrderTracker_RemoveAtPrice(t *testing.T) {
	tracker := NewOrderTracker()
	tracker.Add(SideYes, "o1", 450, dec(10))
	tracker.Add(SideYes, "o2", 450, dec(5))
	tracker.Add(SideYes, "o3", 440, dec(8))

	removed := tracker.RemoveAtPrice(SideYes, 450)
	assert.Len(t, removed, 2)
	assert.Equal(t, 1, tracker.Count(SideYes))

	removed = tracker.RemoveAtPrice(SideYes, 999)
	assert.Empty(t, removed)
}

func TestOrderTracker_UpdateFillPartial(t *testing.T) {
	tracker := NewOrderTracker()
	tracker.Add(SideYes, "order1", 450, dec(10))

	tracker.UpdateFill(SideYes, "order1", dec(3))

	orders := tracker.OrdersAtPrice(SideYes, 450)
	require.Len(t, orders, 1)
	assert.True(t, orders[0].RemainingSize.Equal(dec(7)))
	assert.True(t, orders[0].OriginalSize.Equal(dec(10)), "el tamaño original no cambia")
}

func TestOrderTracker_UpdateFillComplete(t *testing.T) {
	tracker := NewOrderTracker()
	tracker.Add(SideYes, "order1", 450, dec(10))

	tracker.UpdateFill(SideYes, "order1", dec(10))

	// Orden llena → desaparece de todas las queries y el nivel queda limpio
	assert.Equal(t, 0, tracker.Count(SideYes))
	assert.False(t, tracker.HasOrders(SideYes))
	assert.Empty(t, tracker.Prices(SideYes))
	_, ok := tracker.FindPriceByID(SideYes, "order1")
	assert.False(t, ok)
}

func TestOrderTracker_UpdateFillNoOps(t *testing.T) {
	tracker := NewOrderTracker()
	tracker.Add(SideYes, "order1", 450, dec(10))

	// Fill de tamaño cero y fill de id desconocido: no-ops seguros
	tracker.UpdateFill(SideYes, "order1", dec(0))
	tracker.UpdateFill(SideYes, "ghost", dec(5))

	orders := tracker.OrdersAtPrice(SideYes, 450)
	require.Len(t, orders, 1)
	assert.True(t, orders[0].RemainingSize.Equal(dec(10)))
}

func TestOrderTracker_TotalSizeMatchesSumOfRemaining(t *testing.T) {
	tracker := NewOrderTracker()
	tracker.Add(SideYes, "o1", 450, dec(10))
	tracker.Add(SideYes, "o2", 450, dec(5))
	tracker.UpdateFill(SideYes, "o1", dec(4))

	total := decimal.Zero
	for _, o := range tracker.OrdersAtPrice(SideYes, 450) {
		total = total.Add(o.RemainingSize)
	}
	assert.True(t, tracker.TotalSizeAtPrice(SideYes, 450).Equal(total))
	assert.True(t, total.Equal(dec(11)))
}

func TestOrderTracker_PricesTopBottom(t *testing.T) {
	tracker := NewOrderTracker()
	tracker.Add(SideYes, "o1", 450, dec(10))
	tracker.Add(SideYes, "o2", 440, dec(10))
	tracker.Add(SideYes, "o3", 430, dec(10))

	prices := tracker.Prices(SideYes)
	sort.Slice(prices, func(i, j int) bool { return prices[i] < prices[j] })
	assert.Equal(t, []Ticks{430, 440, 450}, prices)

	top, ok := tracker.TopPrice(SideYes)
	require.True(t, ok)
	assert.Equal(t, Ticks(450), top)

	bottom, ok := tracker.BottomPrice(SideYes)
	require.True(t, ok)
	assert.Equal(t, Ticks(430), bottom)

	_, ok = tracker.TopPrice(SideNo)
	assert.False(t, ok)
}

func TestOrderTracker_TotalExposure(t *testing.T) {
	tracker := NewOrderTracker()
	tracker.Add(SideYes, "o1", 450, dec(10))
	tracker.Add(SideYes, "o2", 440, dec(12))
	tracker.Add(SideYes, "o3", 430, dec(8))

	assert.True(t, tracker.TotalExposure(SideYes).Equal(dec(30)))

	tracker.UpdateFill(SideYes, "o2", dec(2))
	assert.True(t, tracker.TotalExposure(SideYes).Equal(dec(28)))
}

func TestOrderTracker_FindPriceByID(t *testing.T) {
	tracker := NewOrderTracker()
	tracker.Add(SideNo, "o9", 540, dec(10))

	price, ok := tracker.FindPriceByID(SideNo, "o9")
	require.True(t, ok)
	assert.Equal(t, Ticks(540), price)

	_, ok = tracker.FindPriceByID(SideYes, "o9")
	assert.False(t, ok, "el id vive solo en su lado")
}

func TestOrderTracker_Clear(t *testing.T) {
	tracker := NewOrderTracker()
	tracker.Add(SideYes, "o1", 450, dec(10))
	tracker.Add(SideNo, "o2", 540, dec(10))

	tracker.Clear(SideYes)
	assert.Equal(t, 0, tracker.Count(SideYes))
	assert.Equal(t, 1, tracker.Count(SideNo))

	tracker.ClearAll()
	assert.Equal(t, 0, tracker.TotalCount())
}
