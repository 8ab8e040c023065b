package polymarket

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/andrewmao33/polybot/internal/domain"
)

// MarketAt devuelve el mercado up/down cuyo epoch contiene el instante `at`.
// El slug es determinista: btc-updown-{5m|15m}-{inicio del epoch en unix}.
func (c *Client) MarketAt(ctx context.Context, duration domain.MarketDuration, at time.Time) (domain.Market, error) {
	length := int64(duration.Length() / time.Second)
	epoch := at.Unix() - at.Unix()%length
	slug := fmt.Sprintf("btc-updown-%s-%d", duration, epoch)

	url := fmt.Sprintf("%s/markets/slug/%s", c.gammaBase, slug)

	var raw gammaMarket
	if err := c.get(ctx, url, &raw); err != nil {
		return domain.Market{}, fmt.Errorf("polymarket.MarketAt: %s: %w", slug, err)
	}

	// clobTokenIds es un array serializado dentro de un string JSON.
	var tokenIDs []string
	if err := json.Unmarshal([]byte(raw.ClobTokenIDs), &tokenIDs); err != nil {
		return domain.Market{}, fmt.Errorf("polymarket.MarketAt: parse clobTokenIds de %s: %w", slug, err)
	}
	if len(tokenIDs) < 2 {
		return domain.Market{}, fmt.Errorf("polymarket.MarketAt: %s tiene %d tokens, se esperan 2", slug, len(tokenIDs))
	}

	// Si Gamma no trae endDate, el fin del epoch se deriva del slug.
	endAt := time.Unix(epoch, 0).Add(duration.Length())
	if raw.EndDate != "" {
		if parsed, err := time.Parse(time.RFC3339, raw.EndDate); err == nil {
			endAt = parsed
		} else {
			slog.Warn("endDate de Gamma no parseable, usando fin del epoch", "slug", slug, "end_date", raw.EndDate)
		}
	}

	m := domain.Market{
		ConditionID: raw.ConditionID,
		YesTokenID:  tokenIDs[0],
		NoTokenID:   tokenIDs[1],
		Slug:        slug,
		EndAt:       endAt,
	}

	slog.Debug("market discovered",
		"slug", m.Slug,
		"condition_id", m.ConditionID,
		"end_at", m.EndAt,
	)
	return m, nil
}
