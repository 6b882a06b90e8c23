// Package ticketstore reads ticket sales records from a SQLite database.
package ticketstore

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	_ "github.com/mattn/go-sqlite3"
)

// Store is a read-only view over the tickets table.
type Store struct {
	db *sql.DB
}

// Open connects to the database file at path in read-only mode. The file is
// never created.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?mode=ro", path)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return New(db), nil
}

// New wraps an existing connection.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Total is a SUM result. SQLite sums INTEGER values exactly, so integer
// totals are kept as int64 and only REAL totals use Float.
type Total struct {
	Int     int64
	Float   float64
	IsFloat bool
}

// Value returns the total as an int64 or a float64.
func (t Total) Value() any {
	if t.IsFloat {
		return t.Float
	}
	return t.Int
}

// String formats the total as plain digits, never in exponent form for
// integers.
func (t Total) String() string {
	if t.IsFloat {
		return strconv.FormatFloat(t.Float, 'f', -1, 64)
	}
	return strconv.FormatInt(t.Int, 10)
}

// TotalSales returns SUM(units * price) for rows of the given ticket type.
// An empty selection sums to 0.
func (s *Store) TotalSales(ctx context.Context, ticketType string) (Total, error) {
	var raw any

	err := s.db.QueryRowContext(ctx,
		`SELECT SUM(units * price) FROM tickets WHERE type = ?`,
		ticketType,
	).Scan(&raw)
	if err != nil {
		return Total{}, fmt.Errorf("failed to sum %s ticket sales: %w", ticketType, err)
	}

	switch v := raw.(type) {
	case nil:
		return Total{}, nil
	case int64:
		return Total{Int: v}, nil
	case float64:
		return Total{Float: v, IsFloat: true}, nil
	default:
		return Total{}, fmt.Errorf("unexpected %T sum for %s ticket sales", raw, ticketType)
	}
}

func (s *Store) Close() error {
	return s.db.Close()
}
