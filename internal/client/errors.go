package client

import "errors"

var (
	// ErrUnknownCommand is returned for a sub-command the client does not know.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrInvalidArguments is returned when sub-command arguments cannot be
	// parsed.
	ErrInvalidArguments = errors.New("invalid arguments")
)
