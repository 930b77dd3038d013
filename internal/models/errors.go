package models

import "errors"

// Custom errors
var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key violation")
	ErrInvalidID    = errors.New("invalid ID format")
	ErrStatsPending = errors.New("match statistics not yet available")

	// ErrInsufficientHistory signals that a team has too few qualifying
	// matches before the cutoff for a meaningful analysis.
	ErrInsufficientHistory = errors.New("insufficient historical data")
)
