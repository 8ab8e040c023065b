package polymarket

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"

	"github.com/andrewmao33/polybot/internal/domain"
)

const (
	defaultMarketWSURL = "wss://ws-subscriptions-clob.polymarket.com/ws/market"

	reconnectWait    = 5 * time.Second
	handshakeTimeout = 10 * time.Second
	writeTimeout     = 5 * time.Second
)

// BookFeed mantiene el websocket de mercado del CLOB y publica BookUpdate
// en el canal de eventos. Implementa ports.BookFeed.
//
// Cada lado solo emite cuando su par (bid, ask) cambia de verdad; el CLOB
// repite el top-of-book con cada trade y reenviar duplicados solo genera
// reconciles inútiles aguas abajo.
type BookFeed struct {
	url    string
	events chan<- domain.Event

	mu       sync.Mutex
	yesToken string
	noToken  string
	conn     *websocket.Conn
	last     [2]bidAskPair
}

type bidAskPair struct {
	bid, ask domain.Ticks
	seen     bool
}

// NewBookFeed crea el feed para los tokens iniciales.
// Si url está vacío, usa el endpoint de producción.
func NewBookFeed(url, yesTokenID, noTokenID string, events chan<- domain.Event) *BookFeed {
	if url == "" {
		url = defaultMarketWSURL
	}
	return &BookFeed{
		url:      url,
		events:   events,
		yesToken: yesTokenID,
		noToken:  noTokenID,
	}
}

// Subscribe cambia los tokens suscritos y fuerza una reconexión para que
// la suscripción nueva tome efecto. Se llama en cada rollover.
func (f *BookFeed) Subscribe(yesTokenID, noTokenID string) {
	f.mu.Lock()
	f.yesToken = yesTokenID
	f.noToken = noTokenID
	f.last = [2]bidAskPair{}
	conn := f.conn
	f.mu.Unlock()

	if conn != nil {
		conn.Close()
	}
}

// Run conecta y reconecta para siempre. Solo retorna cuando el contexto
// se cancela. Un error de transporte nunca es fatal.
func (f *BookFeed) Run(ctx context.Context) error {
	for {
		if err := f.runOnce(ctx); err != nil && ctx.Err() == nil {
			slog.Warn("book feed disconnected", "err", err)
		}
		select {
		case <-time.After(reconnectWait):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (f *BookFeed) runOnce(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	conn, _, err := dialer.DialContext(ctx, f.url, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()

	f.mu.Lock()
	f.conn = conn
	yes, no := f.yesToken, f.noToken
	f.mu.Unlock()
	defer func() {
		f.mu.Lock()
		f.conn = nil
		f.mu.Unlock()
	}()

	sub := subscribeMsg{
		AssetIDs:             []string{yes, no},
		Operation:            "subscribe",
		CustomFeatureEnabled: true,
	}
	payload, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("marshal subscribe: %w", err)
	}
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}

	slog.Info("book feed connected", "url", f.url)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}

		update, ok := parseBookUpdate(data, yes, no)
		if !ok {
			continue
		}
		if !f.changed(update) {
			continue
		}

		select {
		case f.events <- update:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// changed registra el último (bid, ask) por lado y devuelve true solo si
// el par difiere del anterior.
func (f *BookFeed) changed(u domain.BookUpdate) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	prev := f.last[u.Side]
	if prev.seen && prev.bid == u.Bid && prev.ask == u.Ask {
		return false
	}
	f.last[u.Side] = bidAskPair{bid: u.Bid, ask: u.Ask, seen: true}
	return true
}

// parseBookUpdate convierte un mensaje best_bid_ask en un BookUpdate.
// Cualquier payload malformado o de otro asset se descarta en silencio.
func parseBookUpdate(data []byte, yesToken, noToken string) (domain.BookUpdate, bool) {
	var msg bestBidAskMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return domain.BookUpdate{}, false
	}
	if msg.EventType != "best_bid_ask" {
		return domain.BookUpdate{}, false
	}

	var side domain.Side
	switch msg.AssetID {
	case yesToken:
		side = domain.SideYes
	case noToken:
		side = domain.SideNo
	default:
		return domain.BookUpdate{}, false
	}

	bid, ok := parseTicks(msg.BestBid)
	if !ok {
		return domain.BookUpdate{}, false
	}
	ask, ok := parseTicks(msg.BestAsk)
	if !ok {
		return domain.BookUpdate{}, false
	}

	return domain.BookUpdate{Side: side, Bid: bid, Ask: ask}, true
}

var thousand = decimal.NewFromInt(1000)

// parseTicks convierte un precio en dólares ("0.485") a ticks (485).
// Se parsea con decimal para no perder el último tick por redondeo float.
func parseTicks(s string) (domain.Ticks, bool) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, false
	}
	t := d.Mul(thousand).IntPart()
	if t < 0 || t > int64(domain.TickNotional) {
		return 0, false
	}
	return domain.Ticks(t), true
}
