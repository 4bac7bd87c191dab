package events

import "github.com/pkg/errors"

var (
	// ErrDuplicateRegistration is returned when the derived identity key is
	// already registered. The pre-existing entry is left untouched.
	ErrDuplicateRegistration = errors.New("handler already registered")

	// ErrEventDropped is returned when the registry a Handle refers to no
	// longer exists because the owning Event was closed. The event is
	// permanently gone for this handle.
	ErrEventDropped = errors.New("event already dropped")

	// ErrNilHandler is returned when a nil callback is passed to a
	// registration call.
	ErrNilHandler = errors.New("nil handler")
)
