package models

import "errors"

// Custom errors
var (
	ErrNoMatches    = errors.New("no matches found")
	ErrInvalidMatch = errors.New("invalid match record")
)
