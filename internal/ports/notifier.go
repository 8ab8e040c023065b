package ports

import (
	"context"
	"time"

	"github.com/andrewmao33/polybot/internal/domain"
)

// StatusNotifier presenta el estado actual del maker al usuario.
type StatusNotifier interface {
	// Status imprime posición, exposición y PnL mínimo del epoch activo.
	// En la implementación de consola, imprime una tabla formateada.
	Status(ctx context.Context, market *domain.Market, book *domain.Book, pos *domain.Position, orders *domain.OrderTracker, now time.Time) error
}
