package core

import "errors"

var (
	// ErrValidation indicates rejected input; nothing was written.
	ErrValidation = errors.New("validation failed")
	// ErrStorage indicates the durable store was unreachable or unwritable.
	ErrStorage = errors.New("storage unavailable")
	// ErrGateLocked indicates a clock action before the presence token was accepted.
	ErrGateLocked = errors.New("presence gate locked")
	// ErrAccessDenied indicates the current role may not view the requested page.
	ErrAccessDenied = errors.New("access denied")
)
