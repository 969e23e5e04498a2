package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"time"

	_ "github.com/mattn/go-sqlite3"

	apperrors "options-payoff/internal/errors"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-based store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to open database")
	}

	// Configure connection pool for concurrent access
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, apperrors.Wrap(err, "failed to initialize schema")
	}

	return store, nil
}

// initSchema creates all required tables and indexes.
func (s *SQLiteStore) initSchema() error {
	schema := `
	-- Recorded evaluation runs
	CREATE TABLE IF NOT EXISTS evaluations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at DATETIME NOT NULL,
		strategy TEXT NOT NULL DEFAULT '',
		legs TEXT NOT NULL,
		min_price REAL NOT NULL,
		max_price REAL NOT NULL,
		step REAL NOT NULL,
		max_profit REAL,
		max_loss REAL,
		unlimited_profit INTEGER NOT NULL DEFAULT 0,
		unlimited_loss INTEGER NOT NULL DEFAULT 0,
		breakevens TEXT NOT NULL
	);

	-- Named, reusable leg lists
	CREATE TABLE IF NOT EXISTS saved_strategies (
		name TEXT PRIMARY KEY,
		legs TEXT NOT NULL,
		note TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL
	);

	-- Create indexes for performance
	CREATE INDEX IF NOT EXISTS idx_evaluations_strategy ON evaluations(strategy);
	CREATE INDEX IF NOT EXISTS idx_evaluations_created_at ON evaluations(created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ============================================================================
// Evaluation Methods
// ============================================================================

// SaveEvaluation records an evaluation run and returns its row ID.
func (s *SQLiteStore) SaveEvaluation(ctx context.Context, rec *Evaluation) (int64, error) {
	legsJSON, err := json.Marshal(rec.Legs)
	if err != nil {
		return 0, apperrors.NewStoreError("save_evaluation", "encoding legs", err)
	}

	breakevens := rec.Breakevens
	if breakevens == nil {
		breakevens = []float64{}
	}
	breakevensJSON, err := json.Marshal(breakevens)
	if err != nil {
		return 0, apperrors.NewStoreError("save_evaluation", "encoding breakevens", err)
	}

	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	// Infinities cannot live in REAL columns, so unbounded extrema are
	// stored as NULL plus a flag.
	maxProfit := sql.NullFloat64{Float64: rec.MaxProfit, Valid: !math.IsInf(rec.MaxProfit, 1)}
	maxLoss := sql.NullFloat64{Float64: rec.MaxLoss, Valid: !math.IsInf(rec.MaxLoss, -1)}
	unlimitedProfit := boolToInt(math.IsInf(rec.MaxProfit, 1))
	unlimitedLoss := boolToInt(math.IsInf(rec.MaxLoss, -1))

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO evaluations (created_at, strategy, legs, min_price, max_price, step,
			max_profit, max_loss, unlimited_profit, unlimited_loss, breakevens)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, createdAt, rec.Strategy, string(legsJSON), rec.Range.Min, rec.Range.Max, rec.Step,
		maxProfit, maxLoss, unlimitedProfit, unlimitedLoss, string(breakevensJSON))
	if err != nil {
		return 0, apperrors.NewStoreError("save_evaluation", "inserting row", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, apperrors.NewStoreError("save_evaluation", "reading insert id", err)
	}

	return id, nil
}

// GetEvaluation retrieves a recorded evaluation by ID.
func (s *SQLiteStore) GetEvaluation(ctx context.Context, id int64) (*Evaluation, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, strategy, legs, min_price, max_price, step,
			max_profit, max_loss, unlimited_profit, unlimited_loss, breakevens
		FROM evaluations
		WHERE id = ?
	`, id)

	rec, err := scanEvaluation(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("evaluation %d: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, apperrors.NewStoreError("get_evaluation", "scanning row", err)
	}

	return rec, nil
}

// ListEvaluations retrieves recorded evaluations matching the filter,
// newest first.
func (s *SQLiteStore) ListEvaluations(ctx context.Context, filter EvaluationFilter) ([]Evaluation, error) {
	query := `SELECT id, created_at, strategy, legs, min_price, max_price, step,
		max_profit, max_loss, unlimited_profit, unlimited_loss, breakevens
		FROM evaluations WHERE 1=1`
	args := []interface{}{}

	if filter.Strategy != "" {
		query += " AND strategy = ?"
		args = append(args, filter.Strategy)
	}
	if !filter.Since.IsZero() {
		query += " AND created_at >= ?"
		args = append(args, filter.Since)
	}

	query += " ORDER BY created_at DESC, id DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewStoreError("list_evaluations", "querying rows", err)
	}
	defer rows.Close()

	var recs []Evaluation
	for rows.Next() {
		rec, err := scanEvaluation(rows.Scan)
		if err != nil {
			return nil, apperrors.NewStoreError("list_evaluations", "scanning row", err)
		}
		recs = append(recs, *rec)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("list_evaluations", "iterating rows", err)
	}

	return recs, nil
}

// scanEvaluation decodes one evaluations row. The scan argument is the
// Scan method of either *sql.Row or *sql.Rows.
func scanEvaluation(scan func(...interface{}) error) (*Evaluation, error) {
	var (
		rec                            Evaluation
		legsJSON, breakevensJSON       string
		maxProfit, maxLoss             sql.NullFloat64
		unlimitedProfit, unlimitedLoss int
	)

	err := scan(&rec.ID, &rec.CreatedAt, &rec.Strategy, &legsJSON,
		&rec.Range.Min, &rec.Range.Max, &rec.Step,
		&maxProfit, &maxLoss, &unlimitedProfit, &unlimitedLoss, &breakevensJSON)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(legsJSON), &rec.Legs); err != nil {
		return nil, fmt.Errorf("decoding legs: %w", err)
	}
	if err := json.Unmarshal([]byte(breakevensJSON), &rec.Breakevens); err != nil {
		return nil, fmt.Errorf("decoding breakevens: %w", err)
	}

	rec.MaxProfit = maxProfit.Float64
	if unlimitedProfit != 0 {
		rec.MaxProfit = math.Inf(1)
	}
	rec.MaxLoss = maxLoss.Float64
	if unlimitedLoss != 0 {
		rec.MaxLoss = math.Inf(-1)
	}

	return &rec, nil
}

// ============================================================================
// Saved Strategy Methods
// ============================================================================

// SaveStrategy stores a named leg list, replacing any previous legs under
// the same name.
func (s *SQLiteStore) SaveStrategy(ctx context.Context, rec *SavedStrategy) error {
	if rec.Name == "" {
		return apperrors.NewStoreError("save_strategy", "name must not be empty", nil)
	}

	legsJSON, err := json.Marshal(rec.Legs)
	if err != nil {
		return apperrors.NewStoreError("save_strategy", "encoding legs", err)
	}

	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO saved_strategies (name, legs, note, created_at)
		VALUES (?, ?, ?, ?)
	`, rec.Name, string(legsJSON), rec.Note, createdAt)
	if err != nil {
		return apperrors.NewStoreError("save_strategy", "inserting row", err)
	}

	return nil
}

// GetStrategy retrieves a saved strategy by name.
func (s *SQLiteStore) GetStrategy(ctx context.Context, name string) (*SavedStrategy, error) {
	var (
		rec      SavedStrategy
		legsJSON string
	)

	err := s.db.QueryRowContext(ctx, `
		SELECT name, legs, note, created_at
		FROM saved_strategies
		WHERE name = ?
	`, name).Scan(&rec.Name, &legsJSON, &rec.Note, &rec.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("saved strategy %q: %w", name, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, apperrors.NewStoreError("get_strategy", "scanning row", err)
	}

	if err := json.Unmarshal([]byte(legsJSON), &rec.Legs); err != nil {
		return nil, apperrors.NewStoreError("get_strategy", "decoding legs", err)
	}

	return &rec, nil
}

// ListStrategies retrieves all saved strategies ordered by name.
func (s *SQLiteStore) ListStrategies(ctx context.Context) ([]SavedStrategy, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, legs, note, created_at
		FROM saved_strategies
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, apperrors.NewStoreError("list_strategies", "querying rows", err)
	}
	defer rows.Close()

	var recs []SavedStrategy
	for rows.Next() {
		var (
			rec      SavedStrategy
			legsJSON string
		)
		if err := rows.Scan(&rec.Name, &legsJSON, &rec.Note, &rec.CreatedAt); err != nil {
			return nil, apperrors.NewStoreError("list_strategies", "scanning row", err)
		}
		if err := json.Unmarshal([]byte(legsJSON), &rec.Legs); err != nil {
			return nil, apperrors.NewStoreError("list_strategies", "decoding legs", err)
		}
		recs = append(recs, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError("list_strategies", "iterating rows", err)
	}

	return recs, nil
}

// DeleteStrategy removes a saved strategy by name.
func (s *SQLiteStore) DeleteStrategy(ctx context.Context, name string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM saved_strategies WHERE name = ?`, name)
	if err != nil {
		return apperrors.NewStoreError("delete_strategy", "deleting row", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewStoreError("delete_strategy", "reading affected rows", err)
	}
	if affected == 0 {
		return fmt.Errorf("saved strategy %q: %w", name, apperrors.ErrNotFound)
	}

	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
