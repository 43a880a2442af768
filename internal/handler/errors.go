package handler

import "errors"

var (
	errNotAuthorized         = errors.New("user is not authorized")
	errInvalidPostID         = errors.New("invalid post ID")
	errPostNotFound          = errors.New("post not found")
	errPageAndLimitMustBeInt = errors.New("page and limit must be int")
	errTooManyRequests       = errors.New("too many requests")
)
