/*
Package sqlite persists simulation runs in SQLite.

A run is one evaluated household: the input, the reference date it was
evaluated at, and the ranked result. The input and result are stored as
JSON payload columns; the headline figures are copied into their own
columns so listings never decode payloads.

Runs are immutable once saved. The only mutation besides SaveRun is
DeleteRun.

USAGE:

	store, err := sqlite.New("./benefitsim.db")
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	run, err := store.SaveRun(ctx, sqlite.Run{Label: "current", Input: input, Result: result})
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/rgehrsitz/benefitsim/internal/domain"
)

// ErrRunNotFound is returned when no run has the requested ID
var ErrRunNotFound = errors.New("run not found")

// DefaultListLimit caps ListRuns when the caller passes no limit
const DefaultListLimit = 50

// timestampLayout is fixed width and always UTC so created_at sorts as text
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Run is a saved simulation
type Run struct {
	ID            string                  `json:"id"`
	Label         string                  `json:"label,omitempty"`
	ReferenceDate time.Time               `json:"reference_date"`
	Input         domain.SimulatorInput   `json:"input"`
	Result        *domain.SimulatorResult `json:"result"`
	CreatedAt     time.Time               `json:"created_at"`
}

// RunSummary is the listing view of a run
type RunSummary struct {
	ID            string    `json:"id"`
	Label         string    `json:"label,omitempty"`
	ReferenceDate time.Time `json:"reference_date"`
	ChildCount    int       `json:"child_count"`
	EligibleCount int       `json:"eligible_count"`
	TotalAnnual   int64     `json:"total_annual"`
	CreatedAt     time.Time `json:"created_at"`
}

// Store saves and loads runs.
type Store struct {
	db *sql.DB
	mu sync.RWMutex

	// Now stamps CreatedAt on new runs
	Now func() time.Time
}

// New opens (creating if needed) the database at dbPath.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// every pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db, Now: time.Now}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		label TEXT,
		reference_date TEXT NOT NULL,
		child_count INTEGER NOT NULL,
		eligible_count INTEGER NOT NULL,
		total_annual INTEGER NOT NULL,
		input_json TEXT NOT NULL,
		result_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created_at
		ON runs(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SaveRun stores a run, assigning its ID and creation time when unset.
func (s *Store) SaveRun(ctx context.Context, run Run) (Run, error) {
	if run.Result == nil {
		return Run{}, fmt.Errorf("run has no result")
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = s.Now()
	}
	run.CreatedAt = run.CreatedAt.UTC()
	if run.ReferenceDate.IsZero() {
		run.ReferenceDate = run.Result.ReferenceDate
	}

	inputJSON, err := json.Marshal(run.Input)
	if err != nil {
		return Run{}, fmt.Errorf("failed to encode input: %w", err)
	}
	resultJSON, err := json.Marshal(run.Result)
	if err != nil {
		return Run{}, fmt.Errorf("failed to encode result: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, label, reference_date, child_count, eligible_count, total_annual, input_json, result_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Label,
		run.ReferenceDate.Format(domain.DateLayout),
		len(run.Input.Children),
		len(run.Result.EligiblePrograms),
		run.Result.TotalAnnualEstimate,
		string(inputJSON),
		string(resultJSON),
		run.CreatedAt.Format(timestampLayout),
	)
	if err != nil {
		return Run{}, fmt.Errorf("failed to save run: %w", err)
	}
	return run, nil
}

// GetRun loads a run with its payloads.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var run Run
	var label sql.NullString
	var refDate, inputJSON, resultJSON, createdAt string

	err := s.db.QueryRowContext(ctx,
		"SELECT id, label, reference_date, input_json, result_json, created_at FROM runs WHERE id = ?",
		id,
	).Scan(&run.ID, &label, &refDate, &inputJSON, &resultJSON, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	run.Label = label.String
	run.ReferenceDate, _ = time.Parse(domain.DateLayout, refDate)
	run.CreatedAt, _ = time.Parse(timestampLayout, createdAt)
	if err := json.Unmarshal([]byte(inputJSON), &run.Input); err != nil {
		return nil, fmt.Errorf("failed to decode input of run %s: %w", id, err)
	}
	run.Result = &domain.SimulatorResult{}
	if err := json.Unmarshal([]byte(resultJSON), run.Result); err != nil {
		return nil, fmt.Errorf("failed to decode result of run %s: %w", id, err)
	}
	return &run, nil
}

// ListRuns returns the newest runs first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, label, reference_date, child_count, eligible_count, total_annual, created_at
		FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []RunSummary{}
	for rows.Next() {
		var r RunSummary
		var label sql.NullString
		var refDate, createdAt string
		if err := rows.Scan(&r.ID, &label, &refDate, &r.ChildCount, &r.EligibleCount, &r.TotalAnnual, &createdAt); err != nil {
			return nil, err
		}
		r.Label = label.String
		r.ReferenceDate, _ = time.Parse(domain.DateLayout, refDate)
		r.CreatedAt, _ = time.Parse(timestampLayout, createdAt)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// DeleteRun removes a run.
func (s *Store) DeleteRun(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return nil
}
