package domain

import "errors"

var (
	// ErrNoTopics is returned when a generate request contains no usable topics.
	ErrNoTopics = errors.New("at least one topic is required")
	// ErrTooManyTopics is returned when a generate request exceeds the topic limit.
	ErrTooManyTopics = errors.New("too many topics")
	// ErrInvalidSourceType is returned for an unrecognized source type.
	ErrInvalidSourceType = errors.New("invalid source type")
	// ErrClipNotFound is returned when a requested audio clip does not exist.
	ErrClipNotFound = errors.New("clip not found")
	// ErrOverloaded marks upstream throttling (HTTP 429 or overload responses).
	ErrOverloaded = errors.New("upstream service overloaded")
)
