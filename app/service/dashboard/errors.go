package service

import "github.com/pkg/errors"

var (
	ErrUnknownScreen   = errors.New("unknown screen")
	ErrSessionNotFound = errors.New("session not found")
	ErrNotReady        = errors.New("session is still loading")
	ErrLoadFailed      = errors.New("session failed to load")
	ErrUnknownDataset  = errors.New("unknown dataset")
	ErrUnknownChart    = errors.New("unknown chart")
	ErrMissingField    = errors.New("field is required")
	ErrMissingValue    = errors.New("value is required")
)
