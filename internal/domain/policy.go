package domain

import (
	"fmt"
	"strings"
)

type GreetingMode string

const (
	GreetingOff   GreetingMode = ""
	GreetingFixed GreetingMode = "fixed"
	GreetingAuto  GreetingMode = "auto"
)

func ParseGreetingMode(raw string) (GreetingMode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "off", "none", "false":
		return GreetingOff, nil
	case "fixed":
		return GreetingFixed, nil
	case "auto":
		return GreetingAuto, nil
	default:
		return "", fmt.Errorf("unknown greeting mode %q: %w", raw, ErrInvalidConfig)
	}
}

// TargetPolicy holds per-target overrides. A nil Actions inherits the account's enabled set.
type TargetPolicy struct {
	Handle     string
	Actions    *ActionSet
	FixedReply string
	Greeting   GreetingMode
	Nickname   string
}

type ReplySourceKind string

const (
	ReplyNone      ReplySourceKind = ""
	ReplyFixed     ReplySourceKind = "fixed"
	ReplyGreeting  ReplySourceKind = "greeting"
	ReplyGenerated ReplySourceKind = "generated"
)

// ReplySource says where comment text comes from. Greeting sources carry the mode they were
// selected under because fixed and auto greetings vary differently.
type ReplySource struct {
	Kind     ReplySourceKind
	Text     string
	Greeting GreetingType
	Mode     GreetingMode
	Nickname string
}

type ResolvedPolicy struct {
	Allowed ActionSet
	Reply   ReplySource
}
