package domain

import "errors"

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrSecretNotFound  = errors.New("secret not found")
	ErrInvalidConfig   = errors.New("invalid configuration")
	ErrProfileBusy     = errors.New("browser profile is locked by another process")
	ErrSessionDead     = errors.New("browser session is not alive")
	ErrAccountAborted  = errors.New("account run aborted")
	ErrTargetNotFound  = errors.New("target account does not exist")
	ErrPostNotFound    = errors.New("no eligible post found")
	ErrElementNotFound = errors.New("page element not found")
	ErrNotConfirmed    = errors.New("action result not confirmed on page")
)
