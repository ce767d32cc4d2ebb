package domain

import "time"

// RateWindow is the trailing window hourly ceilings are counted over.
const RateWindow = time.Hour

type RateLimits struct {
	PerHour     map[ActionKind]int
	MinInterval time.Duration
}

// Limit returns the hourly ceiling for kind. Zero or negative means unlimited.
func (l RateLimits) Limit(kind ActionKind) int {
	if l.PerHour == nil {
		return 0
	}
	return l.PerHour[kind]
}

type RateDecision struct {
	Allowed bool
	Used    int
	Limit   int
}

func (d RateDecision) Unlimited() bool {
	return d.Limit <= 0
}

// Remaining returns how many more actions fit in the window, or -1 when unlimited.
func (d RateDecision) Remaining() int {
	if d.Unlimited() {
		return -1
	}
	if d.Used >= d.Limit {
		return 0
	}
	return d.Limit - d.Used
}
