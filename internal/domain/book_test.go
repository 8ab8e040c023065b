package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var t0 = time.Unix(1739884800, 0)

func TestBook_DefaultNotSynced(t *testing.T) {
	var book Book
	assert.False(t, book.IsSynced())

	_, ok := book.BestBid(SideYes)
	assert.False(t, ok)
	_, ok = book.BestAsk(SideNo)
	assert.False(t, ok)
}

func TestBook_PartialSync(t *testing.T) {
	var book Book

	book.Update(SideYes, 480, 490, t0)
	assert.False(t, book.IsSynced(), "falta el lado NO")

	book.Update(SideNo, 500, 510, t0.Add(time.Second))
	assert.True(t, book.IsSynced())
}

func TestBook_UpdateLeavesOtherSideUntouched(t *testing.T) {
	var book Book
	book.Update(SideYes, 480, 490, t0)
	book.Update(SideNo, 500, 510, t0.Add(time.Second))

	// Actualizar YES no debe tocar NO
	book.Update(SideYes, 470, 485, t0.Add(2*time.Second))

	bid, ok := book.BestBid(SideNo)
	assert.True(t, ok)
	assert.Equal(t, Ticks(500), bid)
	ask, ok := book.BestAsk(SideNo)
	assert.True(t, ok)
	assert.Equal(t, Ticks(510), ask)

	bid, _ = book.BestBid(SideYes)
	assert.Equal(t, Ticks(470), bid)
	assert.Equal(t, t0.Add(2*time.Second), book.LastUpdate())
}

func TestBook_OppositeAsk(t *testing.T) {
	var book Book
	book.Update(SideYes, 480, 490, t0)
	book.Update(SideNo, 500, 510, t0)

	// Para pricear YES se mira el ask de NO, y viceversa
	ask, ok := book.OppositeAsk(SideYes)
	assert.True(t, ok)
	assert.Equal(t, Ticks(510), ask)

	ask, ok = book.OppositeAsk(SideNo)
	assert.True(t, ok)
	assert.Equal(t, Ticks(490), ask)
}

func TestBook_Reset(t *testing.T) {
	var book Book
	book.Update(SideYes, 480, 490, t0)
	book.Update(SideNo, 500, 510, t0)

	book.Reset()

	assert.False(t, book.IsSynced())
	_, ok := book.BestAsk(SideYes)
	assert.False(t, ok)
	_, ok = book.BestAsk(SideNo)
	assert.False(t, ok)
	assert.True(t, book.LastUpdate().IsZero())
}
