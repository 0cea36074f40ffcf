// Package training owns the lifecycle of the SQL-generation training
// context: DDL, documentation and example-SQL fragments stored in
// Postgres and assembled into prompt context for the generator.
package training

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Kind is the training fragment category.
type Kind string

const (
	KindDDL           Kind = "ddl"
	KindDocumentation Kind = "documentation"
	KindSQL           Kind = "sql"
)

// Example is one stored training fragment.
type Example struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Payload   string    `json:"payload"`
	CreatedAt time.Time `json:"created_at"`
}

// position makes insertion order structural: created_at has microsecond
// resolution and id is random, so neither can break ties between two
// inserts landing in the same instant.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS training_examples (
	position   BIGSERIAL,
	id         UUID PRIMARY KEY,
	kind       TEXT NOT NULL,
	payload    TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Store persists training examples in Postgres. Writes are append-only;
// submission order within one request is preserved by insertion
// timestamps and the ordered listing below.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, connString string) (*Store, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	if _, err := pool.Exec(ctx, schemaDDL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

// Ping verifies Postgres connectivity
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// AddExample appends one fragment and returns the stored row.
func (s *Store) AddExample(ctx context.Context, kind Kind, payload string) (Example, error) {
	ex := Example{
		ID:      uuid.NewString(),
		Kind:    kind,
		Payload: payload,
	}
	row := s.pool.QueryRow(ctx,
		`INSERT INTO training_examples (id, kind, payload) VALUES ($1, $2, $3) RETURNING created_at`,
		ex.ID, string(kind), payload)
	if err := row.Scan(&ex.CreatedAt); err != nil {
		return Example{}, fmt.Errorf("insert training example: %w", err)
	}
	return ex, nil
}

// ListExamples returns all fragments in insertion order.
func (s *Store) ListExamples(ctx context.Context) ([]Example, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, kind, payload, created_at FROM training_examples ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("list training examples: %w", err)
	}
	defer rows.Close()

	var out []Example
	for rows.Next() {
		var ex Example
		var kind string
		if err := rows.Scan(&ex.ID, &kind, &ex.Payload, &ex.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan training example: %w", err)
		}
		ex.Kind = Kind(kind)
		out = append(out, ex)
	}
	return out, rows.Err()
}
