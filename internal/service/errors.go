package service

import "errors"

var (
	ErrInternal          = errors.New("internal server error")
	ErrFailedToFetchUser = errors.New("failed to fetch user")
	ErrInvalidMessage    = errors.New("invalid message payload")
)
