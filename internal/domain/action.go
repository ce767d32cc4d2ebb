package domain

import (
	"fmt"
	"strings"
)

type ActionKind string

const (
	ActionFavorite ActionKind = "favorite"
	ActionBookmark ActionKind = "bookmark"
	ActionReshare  ActionKind = "reshare"
	ActionComment  ActionKind = "comment"
)

// ExecutionOrder is the order actions are applied to a post. Comment stays last.
var ExecutionOrder = []ActionKind{ActionFavorite, ActionBookmark, ActionReshare, ActionComment}

var actionAliases = map[string]ActionKind{
	"favorite": ActionFavorite,
	"like":     ActionFavorite,
	"bookmark": ActionBookmark,
	"reshare":  ActionReshare,
	"retweet":  ActionReshare,
	"repost":   ActionReshare,
	"comment":  ActionComment,
	"reply":    ActionComment,
}

func ParseActionKind(raw string) (ActionKind, error) {
	kind, ok := actionAliases[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return "", fmt.Errorf("unknown action %q: %w", raw, ErrInvalidConfig)
	}

	return kind, nil
}

func (k ActionKind) bit() ActionSet {
	for i, kind := range ExecutionOrder {
		if kind == k {
			return 1 << i
		}
	}

	return 0
}

// ActionSet is an immutable set of action kinds.
type ActionSet uint8

func NewActionSet(kinds ...ActionKind) ActionSet {
	var s ActionSet
	for _, kind := range kinds {
		s |= kind.bit()
	}
	return s
}

func AllActions() ActionSet {
	return NewActionSet(ExecutionOrder...)
}

func ParseActionSet(raw []string) (ActionSet, error) {
	var s ActionSet
	for _, name := range raw {
		if strings.TrimSpace(name) == "" {
			continue
		}
		kind, err := ParseActionKind(name)
		if err != nil {
			return 0, err
		}
		s = s.With(kind)
	}

	return s, nil
}

func (s ActionSet) Has(kind ActionKind) bool {
	bit := kind.bit()
	return bit != 0 && s&bit == bit
}

func (s ActionSet) With(kind ActionKind) ActionSet {
	return s | kind.bit()
}

func (s ActionSet) Without(kind ActionKind) ActionSet {
	return s &^ kind.bit()
}

func (s ActionSet) Intersect(other ActionSet) ActionSet {
	return s & other
}

func (s ActionSet) Empty() bool {
	return s == 0
}

// Kinds lists members in execution order.
func (s ActionSet) Kinds() []ActionKind {
	kinds := make([]ActionKind, 0, len(ExecutionOrder))
	for _, kind := range ExecutionOrder {
		if s.Has(kind) {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}

func (s ActionSet) String() string {
	kinds := s.Kinds()
	names := make([]string, len(kinds))
	for i, kind := range kinds {
		names[i] = string(kind)
	}
	return strings.Join(names, ",")
}

func (s ActionSet) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *ActionSet) UnmarshalText(text []byte) error {
	parsed, err := ParseActionSet(strings.Split(string(text), ","))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
