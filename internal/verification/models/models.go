// Package models holds the verification domain records. Chat and target user
// are immutable after creation; all mutation flows through the dispatcher.
package models

import "time"

// Status is the lifecycle state of a verification. Waiting is the only
// non-terminal state; a record never re-enters it.
type Status string

const (
	StatusWaiting Status = "waiting"
	StatusPassed  Status = "passed"
	StatusWronged Status = "wronged"
	StatusExpired Status = "expired"
)

// Terminal reports whether the status can no longer change.
func (s Status) Terminal() bool {
	return s == StatusPassed || s == StatusWronged || s == StatusExpired
}

// Valid reports whether the status is one of the known states.
func (s Status) Valid() bool {
	switch s {
	case StatusWaiting, StatusPassed, StatusWronged, StatusExpired:
		return true
	}
	return false
}

// Verification is one challenge instance for one (chat, user) pair. The
// challenge content itself lives outside the core; only the answer key is
// carried here.
type Verification struct {
	ID             int64
	ChatID         int64
	TargetUserID   int64
	TargetUserName string
	Status         Status
	CorrectIndices []int
	Chosen         *int
	CreatedAt      time.Time
}

// IsCorrect reports whether the chosen index is in the answer key.
func (v *Verification) IsCorrect(chosen int) bool {
	for _, idx := range v.CorrectIndices {
		if idx == chosen {
			return true
		}
	}
	return false
}

// KillingMethod is the punitive action taken on a wrong answer.
type KillingMethod string

// KillKick removes the member by ban-then-unban so they may rejoin and retry.
// It is the only method currently implemented; any other value is rejected.
const KillKick KillingMethod = "kick"

// Scheme is the per-chat policy the core reads but never writes. The display
// fields (VMode, VEntrance, VOccasion) are opaque pass-through values owned by
// the administrative surface.
type Scheme struct {
	ChatID        int64
	KillingMethod KillingMethod
	Seconds       int
	VMode         int
	VEntrance     int
	VOccasion     int
}
