// Package domainerr classifies engine failures so callers can decide whether
// to abort a division, skip it for this cycle, or treat the call as a no-op.
package domainerr

import (
	crerr "github.com/cockroachdb/errors"
)

var (
	ErrConfiguration     = crerr.New("configuration error")
	ErrInsufficientData  = crerr.New("insufficient data")
	ErrInconsistentState = crerr.New("inconsistent state")
)

type Kind string

const (
	KindNone              Kind = ""
	KindConfiguration     Kind = "configuration"
	KindInsufficientData  Kind = "insufficient_data"
	KindInconsistentState Kind = "inconsistent_state"
	KindUnclassified      Kind = "unclassified"
)

// Configuration returns a sentinel marked as a configuration error.
func Configuration(msg string) error {
	return crerr.Mark(crerr.New(msg), ErrConfiguration)
}

// InsufficientData returns a sentinel marked as a recoverable data shortage.
func InsufficientData(msg string) error {
	return crerr.Mark(crerr.New(msg), ErrInsufficientData)
}

// InconsistentState returns a sentinel marked as a data-integrity fault.
func InconsistentState(msg string) error {
	return crerr.Mark(crerr.New(msg), ErrInconsistentState)
}

func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case crerr.Is(err, ErrConfiguration):
		return KindConfiguration
	case crerr.Is(err, ErrInsufficientData):
		return KindInsufficientData
	case crerr.Is(err, ErrInconsistentState):
		return KindInconsistentState
	default:
		return KindUnclassified
	}
}

// IsFatal reports whether err must abort processing of the affected division.
func IsFatal(err error) bool {
	switch KindOf(err) {
	case KindNone, KindInsufficientData:
		return false
	default:
		return true
	}
}
