// Package errors implements an error type that defines standard
// interpretable error codes for common error conditions, plus the
// discriminated kinds this module's block cache surfaces (negative
// seek position, end of file, too many open files, and malformed
// table row/element requests). Errors also carry an interpretable
// severity, and can be chained: thus attributing one error to
// another.
package errors

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"syscall"

	"github.com/skyfits/fitsbuf/log"
)

// Separator defines the separation string inserted between
// chained errors in error messages.
var Separator = ":\n\t"

// Kind defines the type of error. Kinds are semantically
// meaningful, and may be interpreted by the receiver of an error
// (e.g., to determine whether an operation should be retried).
type Kind int

const (
	// Other indicates an unknown error.
	Other Kind = iota
	// Canceled indicates a context cancellation.
	Canceled
	// Timeout indicates an operation timed out.
	Timeout
	// NotExist indicates a nonexistent resource.
	NotExist
	// NotAllowed indicates a permission failure.
	NotAllowed
	// Invalid indicates that the caller supplied invalid parameters.
	Invalid
	// Precondition indicates that a precondition was not met.
	Precondition

	// NegativeFilePos: seek_to was asked to move to a negative byte
	// position.
	NegativeFilePos
	// EndOfFile: a report_eof load reached or passed the file's
	// logical end.
	EndOfFile
	// TooManyOpenFiles: the victim selector found no slot to reuse,
	// because every slot is pinned by a different open file.
	TooManyOpenFiles
	// BadRow: a table helper was given a non-positive row, or a row
	// range that runs past numrows.
	BadRow
	// BadElem: a table helper was given a non-positive first-char
	// offset.
	BadElem
	// IoError: the platform I/O driver (seek/read/write/flush_sys)
	// reported failure; the underlying error is chained unchanged.
	IoError

	maxKind
)

var kinds = map[Kind]string{
	Other:            "unknown error",
	Canceled:         "operation was canceled",
	Timeout:          "operation timed out",
	NotExist:         "resource does not exist",
	NotAllowed:       "access denied",
	Invalid:          "invalid argument",
	Precondition:     "precondition failed",
	NegativeFilePos:  "negative file position",
	EndOfFile:        "end of file",
	TooManyOpenFiles: "too many open files",
	BadRow:           "bad row number",
	BadElem:          "bad element number",
	IoError:          "i/o error",
}

// kindStdErrs maps some Kinds to the standard library's equivalent.
var kindStdErrs = map[Kind]error{
	Canceled:   context.Canceled,
	Timeout:    context.DeadlineExceeded,
	NotExist:   os.ErrNotExist,
	NotAllowed: os.ErrPermission,
	Invalid:    os.ErrInvalid,
}

// String returns a human-readable explanation of the error kind k.
func (k Kind) String() string {
	return kinds[k]
}

var kindErrnos = map[Kind]syscall.Errno{
	Canceled:         syscall.EINTR,
	Timeout:          syscall.ETIMEDOUT,
	NotExist:         syscall.ENOENT,
	NotAllowed:       syscall.EACCES,
	Invalid:          syscall.EINVAL,
	NegativeFilePos:  syscall.EINVAL,
	EndOfFile:        syscall.ENOSPC,
	TooManyOpenFiles: syscall.EMFILE,
}

// Errno maps k to an equivalent Errno or returns false if there's no good match.
func (k Kind) Errno() (syscall.Errno, bool) {
	errno, ok := kindErrnos[k]
	return errno, ok
}

// Severity defines an Error's severity. An Error's severity determines
// whether an error-producing operation may be retried or not.
type Severity int

const (
	// Retriable indicates that the failing operation can be safely retried.
	Retriable Severity = -2
	// Temporary indicates that the underlying error condition is likely
	// temporary.
	Temporary Severity = -1
	// Unknown is the default severity level.
	Unknown Severity = 0
	// Fatal indicates that the underlying error condition is unrecoverable.
	Fatal Severity = 1
)

var severities = map[Severity]string{
	Retriable: "retriable",
	Temporary: "temporary",
	Unknown:   "unknown",
	Fatal:     "fatal",
}

// String returns a human-readable explanation of the error severity s.
func (s Severity) String() string {
	return severities[s]
}

// Error is the standard error type, carrying a kind (error code),
// message (error message), and potentially an underlying error.
// Errors should be constructed by errors.E, which interprets
// arguments according to a set of rules.
type Error struct {
	Kind     Kind
	Severity Severity
	Message  string
	Err      error
}

// E constructs a new error from the provided arguments. Arguments are
// interpreted according to their types:
//
//   - Kind: sets the Error's kind
//   - Severity: sets the Error's severity
//   - string: sets the Error's message; multiple strings are
//     separated by a single space
//   - *Error: copies the error and sets the error's cause
//   - error: sets the Error's cause
//
// If a kind is not provided but an underlying error is, E attempts to
// interpret the underlying error: os.IsNotExist maps to NotExist,
// context.Canceled maps to Canceled, and an error implementing
// interface{ Timeout() bool } that returns true maps to Timeout.
func E(args ...interface{}) error {
	if len(args) == 0 {
		panic("no args")
	}
	e := new(Error)
	var msg strings.Builder
	for _, arg := range args {
		switch arg := arg.(type) {
		case Kind:
			e.Kind = arg
		case Severity:
			e.Severity = arg
		case string:
			if msg.Len() > 0 {
				msg.WriteString(" ")
			}
			msg.WriteString(arg)
		case *Error:
			cp := *arg
			if len(args) == 1 {
				return &cp
			}
			e.Err = &cp
		case error:
			e.Err = arg
		default:
			_, file, line, _ := runtime.Caller(1)
			log.Error.Printf("errors.E: bad call (type %T) from %s:%d: %v", arg, file, line, arg)
			return &Error{Kind: Invalid, Message: fmt.Sprintf("unknown type %T, value %v in error call", arg, arg)}
		}
	}
	e.Message = msg.String()
	if e.Err == nil {
		return e
	}
	switch prev := e.Err.(type) {
	case *Error:
		if prev.Kind == e.Kind || e.Kind == Other {
			e.Kind = prev.Kind
			prev.Kind = Other
		}
		if prev.Severity == e.Severity || e.Severity == Unknown {
			e.Severity = prev.Severity
			prev.Severity = Unknown
		}
	default:
		if err, ok := e.Err.(interface{ Temporary() bool }); ok && err.Temporary() && e.Severity == Unknown {
			e.Severity = Temporary
		}
		if e.Kind != Other {
			break
		}
		for kind := Kind(0); kind < maxKind; kind++ {
			stdErr := kindStdErrs[kind]
			if stdErr != nil && errors.Is(e.Err, stdErr) {
				e.Kind = kind
				break
			}
		}
		if e.Kind != Other {
			break
		}
		if isTimeoutErr(e.Err) {
			e.Kind = Timeout
		}
	}
	return e
}

func isTimeoutErr(err error) bool {
	t, ok := err.(interface{ Timeout() bool })
	return ok && t.Timeout()
}

// Recover recovers any error into an *Error. If the passed-in error is
// already an *Error, it is returned as-is; otherwise it is wrapped.
func Recover(err error) *Error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok {
		return e
	}
	return E(err).(*Error)
}

// Error returns a human readable string describing this error.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	var b bytes.Buffer
	e.writeError(&b)
	return b.String()
}

func (e *Error) writeError(b *bytes.Buffer) {
	if e.Message != "" {
		pad(b, ": ")
		b.WriteString(e.Message)
	}
	if e.Kind != Other {
		pad(b, ": ")
		b.WriteString(e.Kind.String())
	}
	if e.Severity != Unknown {
		pad(b, " ")
		b.WriteByte('(')
		b.WriteString(e.Severity.String())
		b.WriteByte(')')
	}
	if e.Err == nil {
		return
	}
	if err, ok := e.Err.(*Error); ok {
		pad(b, Separator)
		b.WriteString(err.Error())
	} else {
		pad(b, ": ")
		b.WriteString(e.Err.Error())
	}
}

// Timeout tells whether this error is a timeout error.
func (e *Error) Timeout() bool { return e.Kind == Timeout }

// Temporary tells whether this error is temporary.
func (e *Error) Temporary() bool { return e.Severity <= Temporary }

// Unwrap returns e's cause, if any, or nil.
func (e *Error) Unwrap() error { return e.Err }

// Is tells whether e.Kind is equivalent to err, supporting
// errors.Is(e, errors.Canceled)-style interop with the standard library.
func (e *Error) Is(err error) bool {
	if err == nil {
		return false
	}
	if err == kindStdErrs[e.Kind] {
		return true
	}
	if e.Kind == Timeout && isTimeoutErr(err) {
		return true
	}
	return false
}

// Is tells whether err's cause chain carries the given Kind.
func Is(kind Kind, err error) bool {
	if err == nil {
		return false
	}
	return is(kind, Recover(err))
}

func is(kind Kind, e *Error) bool {
	if e.Kind != Other {
		return e.Kind == kind
	}
	if e.Err != nil {
		if e2, ok := e.Err.(*Error); ok {
			return is(kind, e2)
		}
	}
	return false
}

// IsTemporary tells whether the provided error is likely temporary.
func IsTemporary(err error) bool {
	return Recover(err).Temporary()
}

// New is synonymous with errors.New, provided so callers need only
// import this package.
func New(msg string) error { return errors.New(msg) }

func pad(b *bytes.Buffer, s string) {
	if b.Len() == 0 {
		return
	}
	b.WriteString(s)
}
