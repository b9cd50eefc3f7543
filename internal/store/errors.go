package store

import "errors"

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrEmptyKey       = errors.New("key must not be empty")
)
