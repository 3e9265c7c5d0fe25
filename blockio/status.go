package blockio

import "github.com/skyfits/fitsbuf/errors"

// Status is the in-out status parameter threaded through every public
// operation. The first non-nil error set on a Status short-circuits every
// subsequent call that is passed the same Status: operations check
// Failed() on entry and are expected to no-op if it is already true.
//
// Modeled on errors.Once's first-error-wins pattern: Status wraps one so
// that a single zero-value Status can be shared safely across the
// sequence of calls that make up one logical request.
type Status struct {
	once errors.Once
}

// Failed reports whether a prior operation already recorded an error.
func (s *Status) Failed() bool { return s.once.Err() != nil }

// Err returns the first error recorded on s, or nil.
func (s *Status) Err() error { return s.once.Err() }

// Set records err as s's error, unless s already holds one or err is nil.
func (s *Status) Set(err error) { s.once.Set(err) }
