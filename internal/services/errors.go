package services

import "errors"

// Dashboard service errors
var (
	// ErrEmptyDataset means nothing survived acquisition and
	// normalization; rendering halts entirely.
	ErrEmptyDataset = errors.New("no transaction data available")

	// ErrUnknownMode means the requested data-source mode is not one of
	// the two supported modes.
	ErrUnknownMode = errors.New("unknown data mode")

	// ErrInvalidArea means the requested detail unit size is not one of
	// the offered choices.
	ErrInvalidArea = errors.New("unsupported unit size")
)
