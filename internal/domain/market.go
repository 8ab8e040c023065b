package domain

import "time"

// MarketDuration clasifica la duración del epoch (5m o 15m).
// Determina el bucket del slug y la tabla de sizing.
type MarketDuration int

const (
	Duration5m MarketDuration = iota
	Duration15m
)

// Length devuelve la duración total del epoch.
func (d MarketDuration) Length() time.Duration {
	if d == Duration15m {
		return 15 * time.Minute
	}
	return 5 * time.Minute
}

func (d MarketDuration) String() string {
	if d == Duration15m {
		return "15m"
	}
	return "5m"
}

// Market es la identidad de un epoch de contrato. Inmutable una vez creado;
// en cada rollover se sustituye por uno nuevo.
type Market struct {
	ConditionID string
	YesTokenID  string
	NoTokenID   string
	Slug        string
	EndAt       time.Time
}

// TokenID devuelve el token id del lado dado.
func (m Market) TokenID(side Side) string {
	if side == SideYes {
		return m.YesTokenID
	}
	return m.NoTokenID
}

// TimeRemaining devuelve el tiempo hasta la expiración del epoch.
// Nunca negativo, monótonamente no creciente.
func (m Market) TimeRemaining(now time.Time) time.Duration {
	if rem := m.EndAt.Sub(now); rem > 0 {
		return rem
	}
	return 0
}

// Ended devuelve true si el epoch ya expiró.
func (m Market) Ended(now time.Time) bool {
	return !now.Before(m.EndAt)
}
