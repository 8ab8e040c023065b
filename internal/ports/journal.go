package ports

import (
	"context"

	"github.com/andrewmao33/polybot/internal/domain"
)

// TradeJournal persiste fills y rollovers para análisis posterior.
// Es write-only: el engine nunca lee de aquí, el estado vive en memoria.
type TradeJournal interface {
	// RecordFill guarda un fill ya deduplicado.
	RecordFill(ctx context.Context, market *domain.Market, fill domain.OrderFill) error

	// RecordRotation guarda el cierre de un epoch con el PnL mínimo
	// garantizado de la posición final.
	RecordRotation(ctx context.Context, closed *domain.Market, pos *domain.Position) error

	// Close libera la conexión subyacente.
	Close() error
}
