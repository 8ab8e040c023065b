package binance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTradePrice(t *testing.T) {
	payload := []byte(`{"e":"trade","E":1739884961000,"s":"BTCUSDT","t":12345,"p":"97500.01","q":"0.005"}`)

	price, ok := parseTradePrice(payload)
	require.True(t, ok)
	assert.InDelta(t, 97500.01, price, 0.001)
}

func TestParseTradePrice_Dropped(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"json inválido", `{not json`},
		{"sin precio", `{"e":"trade","s":"BTCUSDT"}`},
		{"precio no numérico", `{"p":"abc"}`},
		{"precio cero", `{"p":"0"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := parseTradePrice([]byte(tc.data))
			assert.False(t, ok)
		})
	}
}
