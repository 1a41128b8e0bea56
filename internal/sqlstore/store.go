// Package sqlstore mirrors a catalog snapshot into an in-memory SQLite
// database so it can be explored with plain SQL.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/KaramelBytes/catalogscope/internal/catalog"
	"github.com/KaramelBytes/catalogscope/internal/logging"
	_ "modernc.org/sqlite"
)

// DefaultQuery is the sample query shown when none is given.
const DefaultQuery = "SELECT title, type, release_year FROM titles LIMIT 5"

const schema = `CREATE TABLE titles (
	show_id      TEXT,
	type         TEXT,
	title        TEXT,
	director     TEXT,
	"cast"       TEXT,
	country      TEXT,
	date_added   TEXT,
	release_year INTEGER,
	rating       TEXT NOT NULL,
	duration     TEXT,
	duration_num REAL,
	listed_in    TEXT,
	description  TEXT
)`

const insertTitle = `INSERT INTO titles (show_id, type, title, director, "cast", country,
	date_added, release_year, rating, duration, duration_num, listed_in, description)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// Store is a read-only SQL view of one catalog snapshot.
type Store struct {
	db *sql.DB
}

// Result is the tabular output of a query.
type Result struct {
	Columns []string `json:"columns" yaml:"columns"`
	Rows    [][]any  `json:"rows" yaml:"rows"`
}

// Open creates the in-memory database, loads every title of t into the
// titles table and switches the connection to query-only mode.
func Open(ctx context.Context, t *catalog.Table) (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)

	if err := load(ctx, db, t); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA query_only = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set query_only: %w", err)
	}
	logging.Debug().Str("source", t.Name()).Int("rows", t.Len()).Msg("sqlite snapshot ready")
	return &Store{db: db}, nil
}

func load(ctx context.Context, db *sql.DB, t *catalog.Table) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create titles table: %w", err)
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, insertTitle)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, ti := range t.Titles() {
		var added sql.NullString
		var dur sql.NullFloat64
		var year sql.NullInt64
		if ti.HasYear() {
			year = sql.NullInt64{Int64: int64(ti.ReleaseYear), Valid: true}
		}
		if ti.DateAdded != nil {
			added = text(ti.DateAdded.Format("2006-01-02"))
		}
		if ti.DurationNum != nil {
			dur = sql.NullFloat64{Float64: *ti.DurationNum, Valid: true}
		}
		_, err := stmt.ExecContext(ctx,
			text(ti.ShowID), text(ti.Type), text(ti.Title), text(ti.Director), text(ti.Cast), text(ti.Country),
			added, year, ti.Rating, text(ti.Duration), dur, text(ti.ListedIn), text(ti.Description))
		if err != nil {
			return fmt.Errorf("insert %s: %w", ti.ShowID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// text maps absent values to NULL.
func text(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// Query runs a single read statement and collects every row.
func (s *Store) Query(ctx context.Context, query string) (*Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		query = DefaultQuery
	}
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}
	res := &Result{Columns: cols, Rows: [][]any{}}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		for i, v := range vals {
			if b, ok := v.([]byte); ok {
				vals[i] = string(b)
			}
		}
		res.Rows = append(res.Rows, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return res, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}
