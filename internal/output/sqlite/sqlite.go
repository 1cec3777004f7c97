// Package sqlite persists emitted actions to a local SQLite audit table.
package sqlite

import (
	"context"
	"crypto/rand"
	"database/sql"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/crimson-sun/actionlog/internal/model"
	"github.com/crimson-sun/actionlog/internal/output"
)

// CurrentSchemaVersion is the latest schema version.
// Bump this when adding migrations.
const CurrentSchemaVersion = 1

// Output appends one row per action to the actions table.
type Output struct {
	db  *sql.DB
	now func() time.Time

	mu      sync.Mutex
	entropy io.Reader
}

// Open opens (creating if needed) the database at path and migrates it.
func Open(path string) (*Output, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite output: path is required")
	}
	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite output: open: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite output: ping: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Output{
		db:      db,
		now:     time.Now,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}, nil
}

func (o *Output) newID(t time.Time) string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), o.entropy).String()
}

// Write inserts the action.
func (o *Output) Write(ctx context.Context, action model.Action) error {
	rec := output.NewRecord(action, o.now())
	_, err := o.db.ExecContext(ctx,
		`INSERT INTO actions (id, created_at, tick, category, detail, line) VALUES (?, ?, ?, ?, ?, ?)`,
		o.newID(rec.Time),
		rec.Time.UnixMilli(),
		rec.Tick,
		string(rec.Category),
		rec.Detail,
		rec.Line,
	)
	if err != nil {
		return fmt.Errorf("sqlite output: insert: %w", err)
	}
	return nil
}

// Close closes the database handle.
func (o *Output) Close() error {
	return o.db.Close()
}

// Stored is a persisted action row.
type Stored struct {
	ID string
	output.Record
}

// Filter narrows a Query. Zero values match everything.
type Filter struct {
	Category model.Category
	Limit    int
}

// Query returns the most recent stored actions, up to f.Limit, oldest first.
func (o *Output) Query(ctx context.Context, f Filter) ([]Stored, error) {
	q := `SELECT id, created_at, tick, category, detail, line FROM actions`
	var args []any
	if f.Category != "" {
		q += ` WHERE category = ?`
		args = append(args, string(f.Category))
	}
	q += ` ORDER BY id DESC`
	if f.Limit > 0 {
		q += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := o.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite output: query: %w", err)
	}
	defer rows.Close()

	var out []Stored
	for rows.Next() {
		var (
			s        Stored
			millis   int64
			category string
		)
		if err := rows.Scan(&s.ID, &millis, &s.Tick, &category, &s.Detail, &s.Line); err != nil {
			return nil, fmt.Errorf("sqlite output: scan: %w", err)
		}
		s.Time = time.UnixMilli(millis).UTC()
		s.Category = model.Category(category)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite output: query: %w", err)
	}
	slices.Reverse(out)
	return out, nil
}

// Counts returns the number of stored actions per category.
func (o *Output) Counts(ctx context.Context) (map[model.Category]int, error) {
	rows, err := o.db.QueryContext(ctx, `SELECT category, COUNT(*) FROM actions GROUP BY category`)
	if err != nil {
		return nil, fmt.Errorf("sqlite output: count: %w", err)
	}
	defer rows.Close()

	out := make(map[model.Category]int)
	for rows.Next() {
		var (
			category string
			n        int
		)
		if err := rows.Scan(&category, &n); err != nil {
			return nil, fmt.Errorf("sqlite output: scan: %w", err)
		}
		out[model.Category(category)] = n
	}
	return out, rows.Err()
}

// migrate applies schema migrations based on user_version.
func migrate(db *sql.DB) error {
	version, err := userVersion(db)
	if err != nil {
		return err
	}

	if version < 1 {
		schema := `
		CREATE TABLE IF NOT EXISTS actions (
		  id         TEXT PRIMARY KEY,
		  created_at INTEGER NOT NULL,
		  tick       INTEGER NOT NULL,
		  category   TEXT NOT NULL,
		  detail     TEXT NOT NULL,
		  line       TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_actions_category ON actions(category, id);
		CREATE INDEX IF NOT EXISTS idx_actions_tick ON actions(tick);
		`
		if _, err := db.Exec(schema); err != nil {
			return fmt.Errorf("sqlite output: migration 1: %w", err)
		}
		if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version=%d", 1)); err != nil {
			return fmt.Errorf("sqlite output: set user_version: %w", err)
		}
	}
	return nil
}

func userVersion(db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRow("PRAGMA user_version;").Scan(&version); err != nil {
		return 0, fmt.Errorf("sqlite output: get user_version: %w", err)
	}
	return version, nil
}
