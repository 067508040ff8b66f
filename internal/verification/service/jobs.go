package service

import (
	"context"
	"time"

	"github.com/btx638/policr-mini/internal/delivery"
)

// Side effects leave the dispatcher as explicit job descriptors: the data each
// one needs is a field, not a captured variable, so failure logs in the
// scheduler name exactly what was attempted.

type derestrictJob struct {
	permissions Permissions
	chatID      int64
	userID      int64
}

func (j *derestrictJob) Name() string { return "derestrict" }

func (j *derestrictJob) Execute(ctx context.Context) error {
	return j.permissions.Derestrict(ctx, j.chatID, j.userID)
}

type deleteMessageJob struct {
	deliverer Deliverer
	chatID    int64
	messageID int64
}

func (j *deleteMessageJob) Name() string { return "delete_message" }

func (j *deleteMessageJob) Execute(ctx context.Context) error {
	return j.deliverer.DeleteMessage(ctx, j.chatID, j.messageID)
}

// privateNoticeJob posts a plain notice to the user's private context.
type privateNoticeJob struct {
	deliverer Deliverer
	userID    int64
	text      string
}

func (j *privateNoticeJob) Name() string { return "private_notice" }

func (j *privateNoticeJob) Execute(ctx context.Context) error {
	_, err := j.deliverer.SendText(ctx, j.userID, j.text)
	return err
}

// publicNoticeJob posts a richtext notice to the chat and, once sent,
// schedules its own deletion after ttl.
type publicNoticeJob struct {
	deliverer Deliverer
	pool      Scheduler
	chatID    int64
	text      string
	ttl       time.Duration
}

func (j *publicNoticeJob) Name() string { return "public_notice" }

func (j *publicNoticeJob) Execute(ctx context.Context) error {
	msg, err := j.deliverer.SendText(ctx, j.chatID, j.text, delivery.WithMode(delivery.ModeRich))
	if err != nil {
		return err
	}
	j.pool.SubmitAfter(&deleteMessageJob{
		deliverer: j.deliverer,
		chatID:    j.chatID,
		messageID: msg.MessageID,
	}, j.ttl)
	return nil
}
