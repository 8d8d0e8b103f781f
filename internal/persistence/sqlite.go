package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure go sqlite driver

	"ising-mc/internal/ising"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	width INTEGER NOT NULL,
	height INTEGER NOT NULL,
	seed INTEGER NOT NULL,
	mode TEXT NOT NULL,
	config TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS samples (
	run_id TEXT NOT NULL REFERENCES runs(id),
	block INTEGER NOT NULL,
	step INTEGER NOT NULL,
	temperature REAL NOT NULL,
	field REAL NOT NULL,
	magnetization REAL NOT NULL,
	order_parameter REAL NOT NULL,
	PRIMARY KEY (run_id, block)
);
`

// SQLiteStore keeps runs and their samples in a SQLite database.
type SQLiteStore struct {
	db *sqlx.DB
}

// Run is a row of the runs table.
type Run struct {
	ID        string `db:"id"`
	CreatedAt string `db:"created_at"`
	Width     int    `db:"width"`
	Height    int    `db:"height"`
	Seed      int64  `db:"seed"`
	Mode      string `db:"mode"`
	Config    string `db:"config"`
}

type sampleRow struct {
	RunID          string  `db:"run_id"`
	Block          int     `db:"block"`
	Step           int     `db:"step"`
	Temperature    float64 `db:"temperature"`
	Field          float64 `db:"field"`
	Magnetization  float64 `db:"magnetization"`
	OrderParameter float64 `db:"order_parameter"`
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sqlx.Open("sqlite", "file:"+path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// One connection serialises writers from concurrent runs.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// BeginRun registers a run for cfg and returns a writer for its samples.
func (s *SQLiteStore) BeginRun(cfg ising.Config) (*RunWriter, error) {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	run := Run{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC().Format(time.RFC3339Nano),
		Width:     cfg.Width,
		Height:    cfg.Height,
		Seed:      cfg.Seed,
		Mode:      cfg.Mode.String(),
		Config:    string(raw),
	}
	_, err = s.db.NamedExec(`INSERT INTO runs (id, created_at, width, height, seed, mode, config)
		VALUES (:id, :created_at, :width, :height, :seed, :mode, :config)`, run)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return &RunWriter{store: s, runID: run.ID}, nil
}

// Runs lists every stored run, oldest first.
func (s *SQLiteStore) Runs() ([]Run, error) {
	var runs []Run
	if err := s.db.Select(&runs, `SELECT * FROM runs ORDER BY created_at, id`); err != nil {
		return nil, fmt.Errorf("select runs: %w", err)
	}
	return runs, nil
}

// Samples returns the samples of a run in block order.
func (s *SQLiteStore) Samples(runID string) ([]ising.Sample, error) {
	var rows []sampleRow
	err := s.db.Select(&rows, `SELECT * FROM samples WHERE run_id = ? ORDER BY block`, runID)
	if err != nil {
		return nil, fmt.Errorf("select samples: %w", err)
	}
	out := make([]ising.Sample, len(rows))
	for i, r := range rows {
		out[i] = ising.Sample{
			Block:          r.Block,
			Step:           r.Step,
			Temperature:    r.Temperature,
			Field:          r.Field,
			Magnetization:  r.Magnetization,
			OrderParameter: r.OrderParameter,
		}
	}
	return out, nil
}

// insertBatch keeps multi-row inserts under SQLite's bound variable limit.
const insertBatch = 500

// RunWriter writes the samples of one run. Rows are buffered and inserted in
// one transaction per Flush.
type RunWriter struct {
	store   *SQLiteStore
	runID   string
	pending []sampleRow
}

// RunID identifies the run in the runs table.
func (w *RunWriter) RunID() string { return w.runID }

// WriteSample buffers s until the next Flush.
func (w *RunWriter) WriteSample(s ising.Sample) error {
	w.pending = append(w.pending, sampleRow{
		RunID:          w.runID,
		Block:          s.Block,
		Step:           s.Step,
		Temperature:    s.Temperature,
		Field:          s.Field,
		Magnetization:  s.Magnetization,
		OrderParameter: s.OrderParameter,
	})
	return nil
}

// Flush inserts the buffered rows in one transaction.
func (w *RunWriter) Flush() error {
	if len(w.pending) == 0 {
		return nil
	}
	tx, err := w.store.db.Beginx()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for start := 0; start < len(w.pending); start += insertBatch {
		end := min(start+insertBatch, len(w.pending))
		_, err = tx.NamedExec(`INSERT INTO samples (run_id, block, step, temperature, field, magnetization, order_parameter)
			VALUES (:run_id, :block, :step, :temperature, :field, :magnetization, :order_parameter)`, w.pending[start:end])
		if err != nil {
			return fmt.Errorf("insert samples: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	w.pending = w.pending[:0]
	return nil
}

// Close flushes pending rows. The store stays open.
func (w *RunWriter) Close() error {
	return w.Flush()
}
