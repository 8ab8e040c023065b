package strategy

import (
	"github.com/shopspring/decimal"

	"github.com/andrewmao33/polybot/internal/domain"
)

// BuildLadder builds the ideal quote set for one side: rungs levels at
// top, top-spacing, top-2*spacing, ..., all with the same size. Rungs that
// would land below floor are dropped, so the ladder may come back shorter
// than rungs. A zero top price or zero size yields an empty ladder.
func BuildLadder(
	top domain.Ticks,
	size decimal.Decimal,
	rungs int,
	spacing domain.Ticks,
	floor domain.Ticks,
) map[domain.Ticks]decimal.Decimal {
	ladder := make(map[domain.Ticks]decimal.Decimal, rungs)
	if top == 0 || size.IsZero() {
		return ladder
	}

	for i := 0; i < rungs; i++ {
		price := int(top) - i*int(spacing)
		if price < int(floor) {
			break
		}
		ladder[domain.Ticks(price)] = size
	}
	return ladder
}
