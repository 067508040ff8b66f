package chat

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	pkgerrors "github.com/btx638/policr-mini/pkg/errors"
)

// PostgresStore reads chat records from PostgreSQL. Pure I/O; permission
// decisions belong to the permission controller.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgres constructs a PostgreSQL-backed chat store.
func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) GetByID(ctx context.Context, chatID int64) (*Chat, error) {
	query := `
		SELECT id, title,
		       can_send_messages, can_send_media_messages, can_send_polls,
		       can_send_other_messages, can_add_web_page_previews,
		       can_change_info, can_invite_users, can_pin_messages
		FROM chats
		WHERE id = $1
	`
	var c Chat
	err := s.pool.QueryRow(ctx, query, chatID).Scan(
		&c.ID,
		&c.Title,
		&c.Permissions.CanSendMessages,
		&c.Permissions.CanSendMediaMessages,
		&c.Permissions.CanSendPolls,
		&c.Permissions.CanSendOtherMessages,
		&c.Permissions.CanAddWebPagePreviews,
		&c.Permissions.CanChangeInfo,
		&c.Permissions.CanInviteUsers,
		&c.Permissions.CanPinMessages,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "chat %d not found", chatID)
		}
		return nil, fmt.Errorf("get chat: %w", err)
	}
	return &c, nil
}
