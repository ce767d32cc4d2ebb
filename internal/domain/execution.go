package domain

// UIStateSnapshot is what the rendered page currently shows for a post. Advisory only.
type UIStateSnapshot struct {
	Favorited  bool
	Reshared   bool
	Bookmarked bool
	Replied    bool
}

func (s UIStateSnapshot) Applied(kind ActionKind) bool {
	switch kind {
	case ActionFavorite:
		return s.Favorited
	case ActionReshare:
		return s.Reshared
	case ActionBookmark:
		return s.Bookmarked
	case ActionComment:
		return s.Replied
	default:
		return false
	}
}

type ActionState string

const (
	StateChecking  ActionState = "checking"
	StateSkipped   ActionState = "skipped"
	StateApplying  ActionState = "applying"
	StateSucceeded ActionState = "succeeded"
	StateFailed    ActionState = "failed"
)

type SkipReason string

const (
	SkipUIDetected SkipReason = "ui-detected"
	SkipIdempotent SkipReason = "idempotent"
	SkipRateLimit  SkipReason = "rate-limit"
	SkipNoReply    SkipReason = "no-reply-text"
)

type ActionResult struct {
	Action ActionKind
	State  ActionState
	Reason SkipReason
	DryRun bool
	Note   string
}

type PostReport struct {
	Target  string
	PostID  PostID
	Results []ActionResult
}

func (r PostReport) Count(state ActionState) int {
	n := 0
	for _, result := range r.Results {
		if result.State == state {
			n++
		}
	}
	return n
}

type AccountStatus string

const (
	AccountCompleted AccountStatus = "completed"
	AccountBusy      AccountStatus = "busy"
	AccountAborted   AccountStatus = "aborted"
	AccountInvalid   AccountStatus = "invalid"
)

type AccountReport struct {
	AccountID AccountID
	Status    AccountStatus
	Posts     []PostReport
	Err       error
}

// Fatal reports whether the account ended in a way that should fail the process.
func (r AccountReport) Fatal() bool {
	return r.Status == AccountAborted || r.Status == AccountInvalid
}
