// Package store defines the record-store interfaces behind the verification
// core and ships in-memory and PostgreSQL implementations. Single-record
// atomicity is the only consistency guarantee; there is no multi-record
// transaction across status updates and waiting-count reads.
package store

import (
	"context"

	"github.com/btx638/policr-mini/internal/verification/models"
)

// VerificationStore persists challenge instances.
type VerificationStore interface {
	Create(ctx context.Context, v *models.Verification) error
	GetByID(ctx context.Context, id int64) (*models.Verification, error)
	// UpdateStatus rejects transitions out of a terminal state.
	UpdateStatus(ctx context.Context, id int64, status models.Status) error
	// UpdateChosen records the picked answer. Not idempotent against duplicate
	// callback delivery; the status check upstream is the only guard.
	UpdateChosen(ctx context.Context, id int64, chosen int) error
	CountWaitingByChat(ctx context.Context, chatID int64) (int, error)
	FindLatestWaitingByChat(ctx context.Context, chatID int64) (*models.Verification, error)
}

// SchemeStore reads per-chat policy. Read-only to the core.
type SchemeStore interface {
	FetchByChat(ctx context.Context, chatID int64) (*models.Scheme, error)
}
