package polymarket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrewmao33/polybot/internal/domain"
)

const (
	yesTok = "token_yes_001"
	noTok  = "token_no_001"
)

func TestParseBookUpdate_Yes(t *testing.T) {
	data := []byte(`{"event_type":"best_bid_ask","asset_id":"token_yes_001","best_bid":"0.485","best_ask":"0.505"}`)

	u, ok := parseBookUpdate(data, yesTok, noTok)
	require.True(t, ok)
	assert.Equal(t, domain.SideYes, u.Side)
	assert.Equal(t, domain.Ticks(485), u.Bid)
	assert.Equal(t, domain.Ticks(505), u.Ask)
}

func TestParseBookUpdate_No(t *testing.T) {
	data := []byte(`{"event_type":"best_bid_ask","asset_id":"token_no_001","best_bid":"0.49","best_ask":"0.51"}`)

	u, ok := parseBookUpdate(data, yesTok, noTok)
	require.True(t, ok)
	assert.Equal(t, domain.SideNo, u.Side)
	assert.Equal(t, domain.Ticks(490), u.Bid)
	assert.Equal(t, domain.Ticks(510), u.Ask)
}

func TestParseBookUpdate_Dropped(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"otro event_type", `{"event_type":"price_change","asset_id":"token_yes_001","best_bid":"0.48","best_ask":"0.50"}`},
		{"asset desconocido", `{"event_type":"best_bid_ask","asset_id":"otro_token","best_bid":"0.48","best_ask":"0.50"}`},
		{"bid no numérico", `{"event_type":"best_bid_ask","asset_id":"token_yes_001","best_bid":"??","best_ask":"0.50"}`},
		{"ask vacío", `{"event_type":"best_bid_ask","asset_id":"token_yes_001","best_bid":"0.48","best_ask":""}`},
		{"precio fuera de rango", `{"event_type":"best_bid_ask","asset_id":"token_yes_001","best_bid":"0.48","best_ask":"1.5"}`},
		{"json inválido", `{not json`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := parseBookUpdate([]byte(tc.data), yesTok, noTok)
			assert.False(t, ok)
		})
	}
}

func TestParseTicks_Exact(t *testing.T) {
	// "0.485" debe ser exactamente 485, no 484 por redondeo float.
	tick, ok := parseTicks("0.485")
	require.True(t, ok)
	assert.Equal(t, domain.Ticks(485), tick)

	tick, ok = parseTicks("1")
	require.True(t, ok)
	assert.Equal(t, domain.Ticks(1000), tick)

	tick, ok = parseTicks("0")
	require.True(t, ok)
	assert.Equal(t, domain.Ticks(0), tick)
}

func TestChanged_DedupePerSide(t *testing.T) {
	f := NewBookFeed("", yesTok, noTok, nil)

	first := domain.BookUpdate{Side: domain.SideYes, Bid: 480, Ask: 500}
	assert.True(t, f.changed(first), "primera actualización siempre pasa")
	assert.False(t, f.changed(first), "par repetido se descarta")

	// Mismo par en el otro lado: el dedupe es por lado.
	other := domain.BookUpdate{Side: domain.SideNo, Bid: 480, Ask: 500}
	assert.True(t, f.changed(other))

	moved := domain.BookUpdate{Side: domain.SideYes, Bid: 481, Ask: 500}
	assert.True(t, f.changed(moved), "cambio de bid pasa")
	assert.False(t, f.changed(moved))
}

func TestSubscribe_ResetsDedupe(t *testing.T) {
	f := NewBookFeed("", yesTok, noTok, nil)

	u := domain.BookUpdate{Side: domain.SideYes, Bid: 480, Ask: 500}
	require.True(t, f.changed(u))
	require.False(t, f.changed(u))

	f.Subscribe("new_yes", "new_no")
	assert.True(t, f.changed(u), "tras rollover el estado de dedupe se olvida")
}
