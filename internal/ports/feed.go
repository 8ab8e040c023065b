package ports

import "context"

// BookFeed mantiene la suscripción websocket al orderbook y publica
// BookUpdate en el canal de eventos del engine.
type BookFeed interface {
	// Run bloquea hasta que el contexto se cancela. Internamente
	// reconecta para siempre con backoff fijo.
	Run(ctx context.Context) error

	// Subscribe cambia los tokens suscritos. Se llama en cada rollover
	// con los tokens del epoch nuevo.
	Subscribe(yesTokenID, noTokenID string)
}

// PriceFeed publica PriceUpdate del subyacente en el canal de eventos.
type PriceFeed interface {
	Run(ctx context.Context) error
}
