package email

import "errors"

var (
	// ErrInvalidConfig is returned when sender configuration is incomplete.
	ErrInvalidConfig = errors.New("email: invalid config")

	// ErrInvalidMessage is returned when a message fails validation before sending.
	ErrInvalidMessage = errors.New("email: invalid message")

	// ErrSendFailed is returned when the transport fails to deliver a message.
	ErrSendFailed = errors.New("email: failed to send")
)
