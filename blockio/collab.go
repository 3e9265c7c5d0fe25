package blockio

import "context"

// Driver is the platform I/O driver collaborator: it maintains the
// OS-level file position for one open file and performs the actual
// syscalls. Pool never calls these concurrently for the same File.
type Driver interface {
	// Seek moves the OS-level file position to pos.
	Seek(ctx context.Context, pos int64) error
	// Read reads exactly n bytes into dst[:n] at the current OS position.
	Read(ctx context.Context, n int, dst []byte) error
	// Write writes exactly n bytes from src[:n] at the current OS position.
	Write(ctx context.Context, n int, src []byte) error
	// FlushSys asks the platform to persist any data it is still holding
	// back (e.g. fdatasync).
	FlushSys(ctx context.Context) error
}

// Navigator is the HDU navigator collaborator. The core calls it when
// its view of the current HDU may have drifted; a Navigator
// implementation may update f's HDU fields
// (CurHDU, HDUType, DataStart, RowLength, NumRows) as a side effect.
type Navigator interface {
	EnsureCurrentHDU(ctx context.Context, f *File) error
	// CloseCurrentHDU and ReopenHDU bracket flushHDU's HDU-boundary
	// handoff.
	CloseCurrentHDU(ctx context.Context, f *File) error
	ReopenHDU(ctx context.Context, f *File) error
}

// HeaderRescanner is the header rescanner collaborator.
type HeaderRescanner interface {
	RescanIfUndefined(ctx context.Context, f *File) error
}

// Converter is the numeric format converter collaborator: an in-place
// byte-swap / float-reformat step applied to typed array helper payloads.
type Converter interface {
	Swap2(buf []byte)
	Swap4(buf []byte)
	Swap8(buf []byte)
	// ScaleR4Write and ScaleR4Read implement the legacy non-IEEE float
	// scale step for 4-byte reals (a no-op on IEEE-float platforms).
	ScaleR4Write(buf []byte)
	ScaleR4Read(buf []byte)
	// ScaleR8Write and ScaleR8Read: the 8-byte equivalent.
	ScaleR8Write(buf []byte)
	ScaleR8Read(buf []byte)
}

// ErrMode controls how load reacts to a request that reaches or passes a
// file's logical end.
type ErrMode int

const (
	// ReportEOF fails the load with errors.EndOfFile.
	ReportEOF ErrMode = iota
	// IgnoreEOF silently extends logfilesize and hands back a block filled
	// with the HDU's fill byte instead of failing.
	IgnoreEOF
)

// HDUType distinguishes the one HDU kind that changes the fill byte used
// to pad newly-extended blocks.
type HDUType int

const (
	// ImageHDU and BinaryTBL both fill with 0x00.
	ImageHDU HDUType = iota
	BinaryTBL
	// ASCIITBL fills with the space character, 0x20.
	ASCIITBL
)

// FillByte returns the byte used to pad newly-allocated blocks for HDUs
// of kind t.
func (t HDUType) FillByte() byte {
	if t == ASCIITBL {
		return ' '
	}
	return 0x00
}
