package domain

import (
	"fmt"
	"time"
)

type PostID string

type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailed  Outcome = "failed"
	OutcomeSkipped Outcome = "skipped"
	OutcomeDryRun  Outcome = "dry_run"
)

func ParseOutcome(raw string) (Outcome, error) {
	switch Outcome(raw) {
	case OutcomeSuccess, OutcomeFailed, OutcomeSkipped, OutcomeDryRun:
		return Outcome(raw), nil
	default:
		return "", fmt.Errorf("unknown outcome %q", raw)
	}
}

// Settled reports whether a record with this outcome means the action must not be repeated.
func (o Outcome) Settled() bool {
	return o == OutcomeSuccess || o == OutcomeSkipped || o == OutcomeDryRun
}

type ActionRecord struct {
	ID        string     `json:"id"`
	AccountID AccountID  `json:"account"`
	PostID    PostID     `json:"post_id"`
	Action    ActionKind `json:"action"`
	Outcome   Outcome    `json:"outcome"`
	At        time.Time  `json:"at"`
	Note      string     `json:"note,omitempty"`
}

type Post struct {
	ID     PostID
	Author string
	Text   string
}
