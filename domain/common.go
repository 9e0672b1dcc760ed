package domain

import (
	"errors"
)

var (
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedProcessRequest = "failed to process request"

	ErrParseUUID          = errors.New("failed to parse UUID")
	ErrInvalidImageFormat = errors.New("invalid image format")
)

const (
	// Default lookahead for the expiring-soon window, in days.
	DefaultExpiryWarningDays = 3
)
