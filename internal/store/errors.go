package store

import "errors"

var (
	ErrNotFound    = errors.New("lore entry not found")
	ErrTagNotFound = errors.New("tag not found")
)
