// Package fits provides minimal default collaborators for the block
// cache: a Navigator and HeaderRescanner sufficient to drive its byte,
// group, and table helpers end-to-end without a full FITS header parser.
// A real HDU directory, keyword parsing, and checksum verification are
// out of scope here; callers with those needs supply their own Navigator.
package fits

import (
	"context"

	"github.com/skyfits/fitsbuf/blockio"
)

// SingleHDU is a Navigator/HeaderRescanner pair for files that contain
// exactly one HDU starting at byte 0, of a type and row geometry fixed at
// construction. It never needs to look anything up, so EnsureCurrentHDU
// and CloseCurrentHDU/ReopenHDU are no-ops once the file's fields are
// primed; RescanIfUndefined is a no-op too, since priming always sets
// DataStart.
type SingleHDU struct {
	Type      blockio.HDUType
	RowLength int64
	NumRows   int64

	primed map[*blockio.File]bool
}

// NewSingleHDU constructs a SingleHDU navigator for one fixed HDU layout.
func NewSingleHDU(t blockio.HDUType, rowLength, numRows int64) *SingleHDU {
	return &SingleHDU{
		Type:      t,
		RowLength: rowLength,
		NumRows:   numRows,
		primed:    make(map[*blockio.File]bool),
	}
}

// EnsureCurrentHDU primes f's HDU fields on first use; afterward it is a
// no-op, since a SingleHDU file never has more than one HDU to switch to.
func (n *SingleHDU) EnsureCurrentHDU(_ context.Context, f *blockio.File) error {
	if n.primed[f] {
		return nil
	}
	f.CurHDU = 1
	f.HDUType = n.Type
	f.DataStart = 0
	f.RowLength = n.RowLength
	f.NumRows = n.NumRows
	n.primed[f] = true
	return nil
}

// CloseCurrentHDU is a no-op: a SingleHDU file has nothing to close
// before a flush.
func (n *SingleHDU) CloseCurrentHDU(context.Context, *blockio.File) error { return nil }

// ReopenHDU is a no-op for the same reason CloseCurrentHDU is.
func (n *SingleHDU) ReopenHDU(context.Context, *blockio.File) error { return nil }

// RescanIfUndefined is a no-op: EnsureCurrentHDU always leaves DataStart
// defined for a SingleHDU file.
func (n *SingleHDU) RescanIfUndefined(context.Context, *blockio.File) error { return nil }
