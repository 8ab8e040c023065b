package storage

// sqlite.go — journal write-only de fills y rollovers.
//
// El engine nunca lee de aquí: todo el estado operativo vive en memoria y
// se reconstruye con una suscripción fresca al arrancar. La DB existe solo
// para analizar la estrategia a posteriori.
//
//   - `fills`: una fila por fill deduplicado (trade_id UNIQUE).
//   - `rotations`: una fila por epoch cerrado, con la posición final y el
//     PnL mínimo garantizado.
//   - Tamaños y costes se guardan como TEXT para no perder precisión
//     decimal en REAL.
//   - Prune automático al arrancar: fills > 30d, rotations > 90d.

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/andrewmao33/polybot/internal/domain"
	_ "modernc.org/sqlite"
)

const schema = `
-- Un fill por fila; trade_id UNIQUE hace el insert idempotente
CREATE TABLE IF NOT EXISTS fills (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    trade_id     TEXT     NOT NULL UNIQUE,
    order_id     TEXT     NOT NULL,
    market_slug  TEXT     NOT NULL,
    condition_id TEXT     NOT NULL,
    side         TEXT     NOT NULL,
    price_ticks  INTEGER  NOT NULL,
    size         TEXT     NOT NULL,
    filled_at    DATETIME NOT NULL
);

-- Un epoch cerrado por fila
CREATE TABLE IF NOT EXISTS rotations (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    market_slug   TEXT     NOT NULL,
    condition_id  TEXT     NOT NULL,
    qty_yes       TEXT     NOT NULL,
    qty_no        TEXT     NOT NULL,
    total_cost    TEXT     NOT NULL,
    min_pnl_ticks TEXT     NOT NULL,
    closed_at     DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_fills_market ON fills(market_slug);
CREATE INDEX IF NOT EXISTS idx_fills_at     ON fills(filled_at DESC);
CREATE INDEX IF NOT EXISTS idx_rot_at       ON rotations(closed_at DESC);
`

const (
	retentionFills     = 30 * 24 * time.Hour
	retentionRotations = 90 * 24 * time.Hour
)

// SQLiteJournal implementa ports.TradeJournal usando SQLite (pure Go, sin CGo).
type SQLiteJournal struct {
	db *sql.DB
}

// NewSQLiteJournal abre (o crea) la base de datos en la ruta dada.
// Aplica el schema y limpia datos antiguos.
func NewSQLiteJournal(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteJournal: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteJournal: apply schema: %w", err)
	}

	j := &SQLiteJournal{db: db}
	j.pruneOld(context.Background())
	return j, nil
}

// RecordFill persiste un fill. Un trade_id repetido es un no-op silencioso:
// el dedupe fuerte vive en el engine, esto es solo el cinturón en disco.
func (j *SQLiteJournal) RecordFill(ctx context.Context, market *domain.Market, fill domain.OrderFill) error {
	_, err := j.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO fills
			(trade_id, order_id, market_slug, condition_id, side, price_ticks, size, filled_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		fill.TradeID,
		fill.OrderID,
		market.Slug,
		market.ConditionID,
		fill.Side.String(),
		int64(fill.Price),
		fill.Size.String(),
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("storage.RecordFill: %w", err)
	}
	return nil
}

// RecordRotation persiste el cierre de un epoch.
func (j *SQLiteJournal) RecordRotation(ctx context.Context, closed *domain.Market, pos *domain.Position) error {
	totalCost := pos.Cost(domain.SideYes).Add(pos.Cost(domain.SideNo))
	_, err := j.db.ExecContext(ctx, `
		INSERT INTO rotations
			(market_slug, condition_id, qty_yes, qty_no, total_cost, min_pnl_ticks, closed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		closed.Slug,
		closed.ConditionID,
		pos.Qty(domain.SideYes).String(),
		pos.Qty(domain.SideNo).String(),
		totalCost.String(),
		pos.MinPnLTicks().String(),
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("storage.RecordRotation: %w", err)
	}
	return nil
}

// Close cierra la conexión a la base de datos.
func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}

// pruneOld elimina datos antiguos para mantener la DB ligera.
func (j *SQLiteJournal) pruneOld(ctx context.Context) {
	cutoffFills := time.Now().UTC().Add(-retentionFills)
	cutoffRots := time.Now().UTC().Add(-retentionRotations)
	j.db.ExecContext(ctx, `DELETE FROM fills WHERE filled_at < ?`, cutoffFills)
	j.db.ExecContext(ctx, `DELETE FROM rotations WHERE closed_at < ?`, cutoffRots)
}
