package domain

import "errors"

var (
	ErrUnknownStyle = errors.New("unknown logo style")
	ErrNoStyles     = errors.New("at least one style is required")
	ErrEmptyBrand   = errors.New("brand name cannot be empty")
	ErrNoCandidates = errors.New("no candidates to select from")
	ErrRunNotFound  = errors.New("run not found")
)
