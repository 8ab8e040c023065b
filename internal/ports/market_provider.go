package ports

import (
	"context"
	"time"

	"github.com/andrewmao33/polybot/internal/domain"
)

// MarketProvider descubre el mercado up/down activo para un instante dado.
type MarketProvider interface {
	// MarketAt devuelve el mercado cuyo epoch contiene el instante `at`.
	// Se usa en el arranque y en cada rollover para localizar el epoch
	// siguiente.
	MarketAt(ctx context.Context, duration domain.MarketDuration, at time.Time) (domain.Market, error)
}
