package domain

import (
	"errors"
	"fmt"
)

// Authentication errors. All of them match ErrAuthentication with errors.Is.
var (
	ErrAuthentication             = errors.New("authentication error")
	ErrAuthenticationRequired     = fmt.Errorf("%w: authentication required", ErrAuthentication)
	ErrInvalidCredentials         = fmt.Errorf("%w: invalid credentials", ErrAuthentication)
	ErrVerificationNotImplemented = fmt.Errorf("%w: verification method not implemented", ErrAuthentication)
)

// Mapping errors
var (
	ErrUnknownLiveStatus = errors.New("unknown live stream status")
	ErrMissingExpiry     = errors.New("token expiry could not be derived")
)
