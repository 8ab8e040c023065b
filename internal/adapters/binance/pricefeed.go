package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"github.com/andrewmao33/polybot/internal/domain"
)

const (
	defaultTradeWSURL = "wss://stream.binance.com:9443/ws/btcusdt@trade"

	reconnectWait    = 5 * time.Second
	handshakeTimeout = 10 * time.Second
)

// binanceTrade es el payload del stream @trade. Solo nos interesa el precio.
type binanceTrade struct {
	Price string `json:"p"`
}

// PriceFeed publica el precio spot de BTC como PriceUpdate en el canal de
// eventos. Implementa ports.PriceFeed.
type PriceFeed struct {
	url    string
	events chan<- domain.Event
}

// NewPriceFeed crea el feed. Si url está vacío, usa el stream de producción.
func NewPriceFeed(url string, events chan<- domain.Event) *PriceFeed {
	if url == "" {
		url = defaultTradeWSURL
	}
	return &PriceFeed{url: url, events: events}
}

// Run conecta y reconecta para siempre. Solo retorna cuando el contexto
// se cancela.
func (f *PriceFeed) Run(ctx context.Context) error {
	for {
		if err := f.runOnce(ctx); err != nil && ctx.Err() == nil {
			slog.Warn("price feed disconnected", "err", err)
		}
		select {
		case <-time.After(reconnectWait):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (f *PriceFeed) runOnce(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, f.url, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()

	slog.Info("price feed connected", "url", f.url)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}

		price, ok := parseTradePrice(data)
		if !ok {
			continue
		}

		select {
		case f.events <- domain.PriceUpdate{Price: price}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// parseTradePrice extrae el precio de un mensaje @trade.
// Payloads malformados se descartan.
func parseTradePrice(data []byte) (float64, bool) {
	var trade binanceTrade
	if err := json.Unmarshal(data, &trade); err != nil {
		return 0, false
	}
	price, err := strconv.ParseFloat(trade.Price, 64)
	if err != nil || price <= 0 {
		return 0, false
	}
	return price, true
}
