package outcome

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists outcome events in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore constructs a PostgreSQL-backed event store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Append(ctx context.Context, event Event) error {
	query := `
		INSERT INTO verification_outcomes (id, chat_id, user_id, verification_id, status, elapsed_seconds, at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.pool.Exec(ctx, query,
		event.ID, event.ChatID, event.UserID, event.VerificationID,
		event.Status, event.ElapsedSeconds, event.At,
	)
	if err != nil {
		return fmt.Errorf("append outcome event: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByChat(ctx context.Context, chatID int64) ([]Event, error) {
	query := `
		SELECT id, chat_id, user_id, verification_id, status, elapsed_seconds, at
		FROM verification_outcomes
		WHERE chat_id = $1
		ORDER BY at
	`
	rows, err := s.pool.Query(ctx, query, chatID)
	if err != nil {
		return nil, fmt.Errorf("list outcome events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.ChatID, &e.UserID, &e.VerificationID, &e.Status, &e.ElapsedSeconds, &e.At); err != nil {
			return nil, fmt.Errorf("scan outcome event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
