package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists historical scoring data to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for concurrent reads (Grafana reads while the monitor writes).
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS score_snapshots (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp       INTEGER NOT NULL,
			real_yield      REAL,
			currency_index  REAL,
			credit_spread   REAL,
			momentum_ratio  REAL,
			momentum_ma     REAL,
			hkd             REAL,
			cash_level      REAL,
			yield_points    INTEGER,
			currency_points INTEGER,
			cash_points     INTEGER,
			spread_points   INTEGER,
			momentum_points INTEGER,
			total           INTEGER,
			band            TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_score_ts ON score_snapshots(timestamp)`,

		`CREATE TABLE IF NOT EXISTS empty_series_events (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			series    TEXT,
			note      TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_empty_ts ON empty_series_events(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordScore(snap *ScoreSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Component points in rule-table order (up to 5).
	points := make([]int, 5)
	for i := 0; i < len(snap.Card.Components) && i < 5; i++ {
		points[i] = snap.Card.Components[i].Points
	}

	_, err := r.db.Exec(`INSERT INTO score_snapshots
		(timestamp, real_yield, currency_index, credit_spread, momentum_ratio, momentum_ma,
		 hkd, cash_level,
		 yield_points, currency_points, cash_points, spread_points, momentum_points,
		 total, band)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(),
		snap.RealYield, snap.CurrencyIndex, snap.CreditSpread,
		snap.MomentumRatio, snap.MomentumMA,
		snap.HKD, snap.CashLevel,
		points[0], points[1], points[2], points[3], points[4],
		snap.Card.Total, snap.Card.Band,
	)
	return err
}

func (r *SQLiteRecorder) RecordEmptySeries(evt *EmptySeriesEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO empty_series_events (timestamp, series, note) VALUES (?,?,?)`,
		time.Now().Unix(), evt.Series, evt.Note)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
