package domain

import "errors"

// Sentinel errors. Every one of them aborts the whole report run.
var (
	// ErrInvalidInput is returned for an unparseable start date or a record
	// whose derived durations cannot be computed.
	ErrInvalidInput = errors.New("invalid input")
	// ErrParse is returned when a pull request log file is malformed.
	ErrParse = errors.New("parse error")
	// ErrUsage is returned when the command line does not select exactly one source.
	ErrUsage = errors.New("usage error")
)
