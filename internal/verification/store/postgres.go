package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/btx638/policr-mini/internal/verification/models"
	pkgerrors "github.com/btx638/policr-mini/pkg/errors"
)

// PostgresStore persists verifications in PostgreSQL. Pure I/O; branch logic
// stays in the dispatcher service.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgres constructs a PostgreSQL-backed verification store.
func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Create(ctx context.Context, v *models.Verification) error {
	query := `
		INSERT INTO verifications (chat_id, target_user_id, target_user_name, status, correct_indices, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	status := v.Status
	if status == "" {
		status = models.StatusWaiting
	}
	err := s.pool.QueryRow(ctx, query,
		v.ChatID, v.TargetUserID, v.TargetUserName, string(status), v.CorrectIndices, v.CreatedAt,
	).Scan(&v.ID)
	if err != nil {
		return fmt.Errorf("create verification: %w", err)
	}
	v.Status = status
	return nil
}

func (s *PostgresStore) GetByID(ctx context.Context, id int64) (*models.Verification, error) {
	query := `
		SELECT id, chat_id, target_user_id, target_user_name, status, correct_indices, chosen, created_at
		FROM verifications
		WHERE id = $1
	`
	v, err := scanVerification(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "verification %d not found", id)
		}
		return nil, fmt.Errorf("get verification: %w", err)
	}
	return v, nil
}

func (s *PostgresStore) UpdateStatus(ctx context.Context, id int64, status models.Status) error {
	if !status.Valid() {
		return pkgerrors.Newf(pkgerrors.CodePersistence, "invalid status %q", status)
	}
	// Terminal states only accept a rewrite of the same value.
	query := `
		UPDATE verifications
		SET status = $2
		WHERE id = $1 AND (status = 'waiting' OR status = $2)
	`
	tag, err := s.pool.Exec(ctx, query, id, string(status))
	if err != nil {
		return pkgerrors.Wrap(err, pkgerrors.CodePersistence, "update verification status")
	}
	if tag.RowsAffected() == 0 {
		existing, getErr := s.GetByID(ctx, id)
		if getErr != nil {
			return getErr
		}
		return pkgerrors.Newf(pkgerrors.CodePersistence,
			"verification %d is %s and cannot become %s", id, existing.Status, status)
	}
	return nil
}

func (s *PostgresStore) UpdateChosen(ctx context.Context, id int64, chosen int) error {
	tag, err := s.pool.Exec(ctx, `UPDATE verifications SET chosen = $2 WHERE id = $1`, id, chosen)
	if err != nil {
		return pkgerrors.Wrap(err, pkgerrors.CodePersistence, "update verification chosen")
	}
	if tag.RowsAffected() == 0 {
		return pkgerrors.Newf(pkgerrors.CodeNotFound, "verification %d not found", id)
	}
	return nil
}

func (s *PostgresStore) CountWaitingByChat(ctx context.Context, chatID int64) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM verifications WHERE chat_id = $1 AND status = 'waiting'`, chatID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count waiting verifications: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) FindLatestWaitingByChat(ctx context.Context, chatID int64) (*models.Verification, error) {
	query := `
		SELECT id, chat_id, target_user_id, target_user_name, status, correct_indices, chosen, created_at
		FROM verifications
		WHERE chat_id = $1 AND status = 'waiting'
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`
	v, err := scanVerification(s.pool.QueryRow(ctx, query, chatID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "no waiting verification in chat %d", chatID)
		}
		return nil, fmt.Errorf("find latest waiting verification: %w", err)
	}
	return v, nil
}

func scanVerification(row pgx.Row) (*models.Verification, error) {
	var (
		v      models.Verification
		status string
	)
	err := row.Scan(
		&v.ID,
		&v.ChatID,
		&v.TargetUserID,
		&v.TargetUserName,
		&status,
		&v.CorrectIndices,
		&v.Chosen,
		&v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	v.Status = models.Status(status)
	return &v, nil
}

// PostgresSchemeStore reads per-chat schemes from PostgreSQL.
type PostgresSchemeStore struct {
	pool *pgxpool.Pool
}

// NewPostgresSchemes constructs a PostgreSQL-backed scheme store.
func NewPostgresSchemes(pool *pgxpool.Pool) *PostgresSchemeStore {
	return &PostgresSchemeStore{pool: pool}
}

func (s *PostgresSchemeStore) FetchByChat(ctx context.Context, chatID int64) (*models.Scheme, error) {
	query := `
		SELECT chat_id, killing_method, seconds, vmode, ventrance, voccasion
		FROM schemes
		WHERE chat_id = $1
	`
	var (
		scheme models.Scheme
		method string
	)
	err := s.pool.QueryRow(ctx, query, chatID).Scan(
		&scheme.ChatID, &method, &scheme.Seconds,
		&scheme.VMode, &scheme.VEntrance, &scheme.VOccasion,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "no scheme for chat %d", chatID)
		}
		return nil, fmt.Errorf("fetch scheme: %w", err)
	}
	scheme.KillingMethod = models.KillingMethod(method)
	return &scheme, nil
}
