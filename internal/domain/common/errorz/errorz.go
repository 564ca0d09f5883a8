package errorz

import "errors"

var (
	InvalidCredentials = errors.New("invalid email or password")
	NotAuthorized      = errors.New("authentication required")
	Forbidden          = errors.New("forbidden")

	EventNotFound        = errors.New("event not found")
	RegistrationNotFound = errors.New("registration not found")
	UserNotFound         = errors.New("user not found")

	AlreadyRegistered = errors.New("already registered for this event")
	DeadlineExpired   = errors.New("registration deadline has passed")
	EventFull         = errors.New("event is full")
	AlreadyCancelled  = errors.New("registration is already cancelled")
	InvalidStatus     = errors.New("invalid registration status")
	HasDependents     = errors.New("record has dependent rows")
	EmailTaken        = errors.New("email already exists")

	NoRegistrationStatuses = errors.New("no registration statuses configured")
)
