package blockio

import (
	"context"

	"github.com/skyfits/fitsbuf/bitset"
)

// handleTable allocates small, reusable integer ids for open files. Slots
// store an owner as one of these ids rather than a *File pointer, so the
// pool never holds a direct reference to file state; a slot's owner is
// looked up through Pool.files when needed.
type handleTable struct {
	used  []uintptr
	nbits int
	next  int
	free  []int
}

const noOwner = -1

func newHandleTable() *handleTable {
	const initialBits = 64
	return &handleTable{
		used:  bitset.NewClearBits(initialBits),
		nbits: initialBits,
	}
}

func (t *handleTable) alloc() int {
	if n := len(t.free); n > 0 {
		id := t.free[n-1]
		t.free = t.free[:n-1]
		bitset.Set(t.used, id)
		return id
	}
	id := t.next
	t.next++
	if id >= t.nbits {
		grown := t.nbits * 2
		newUsed := bitset.NewClearBits(grown)
		copy(newUsed, t.used)
		t.used = newUsed
		t.nbits = grown
	}
	bitset.Set(t.used, id)
	return id
}

func (t *handleTable) release(id int) {
	bitset.Clear(t.used, id)
	t.free = append(t.free, id)
}

func (t *handleTable) inUse(id int) bool {
	if id < 0 || id >= t.nbits {
		return false
	}
	return bitset.Test(t.used, id)
}

// File is the per-open-file state tracked by the pool. It is returned
// by Pool.Open and is the handle every public operation in this package
// takes.
type File struct {
	id   int
	pool *Pool

	driver Driver
	nav    Navigator
	rescan HeaderRescanner
	conv   Converter

	// bytepos is the logical byte cursor for the next read or write.
	bytepos int64
	// ioPos is the last OS-level position the driver was seeked to, or -1
	// if unknown; lets seekTo/writeBytes/readBytes elide redundant seeks.
	ioPos int64
	// filesize is the physical on-disk size in bytes.
	filesize int64
	// logfilesize is the logical size including blocks only present in
	// memory beyond current EOF; always >= filesize, a multiple of L.
	logfilesize int64
	// curBlock is the slot index most recently made current for this
	// file (its pinned block), or -1 if unset.
	curBlock int

	// Fields passed through to/from the HDU navigator; the core treats
	// these as opaque except for HDUType.FillByte.
	CurHDU    int
	HDUType   HDUType
	DataStart int64
	RowLength int64
	NumRows   int64
}

// Pool returns the pool f was opened from.
func (f *File) Pool() *Pool { return f.pool }

// FileSize returns f's physical on-disk size, in bytes.
func (f *File) FileSize() int64 { return f.filesize }

// LogicalFileSize returns f's logical size, including blocks held only in
// memory beyond the physical end of file.
func (f *File) LogicalFileSize() int64 { return f.logfilesize }

// BytePos returns f's current logical byte cursor.
func (f *File) BytePos() int64 { return f.bytepos }

// Open registers a new file with the pool and returns its handle. initSize
// is the file's current physical size in bytes, as reported by the
// caller's filesystem stat; logfilesize starts equal to it, rounded up to
// a block boundary.
func (p *Pool) Open(driver Driver, nav Navigator, rescan HeaderRescanner, conv Converter, initSize int64) *File {
	f := &File{
		id:          p.handles.alloc(),
		pool:        p,
		driver:      driver,
		nav:         nav,
		rescan:      rescan,
		conv:        conv,
		bytepos:     0,
		ioPos:       -1,
		filesize:    initSize,
		logfilesize: roundUpBlock(initSize),
		curBlock:    -1,
	}
	p.files[f.id] = f
	return f
}

// Close flushes every slot owned by f, disassociates them, then removes f
// from the pool's handle table.
func (p *Pool) Close(ctx context.Context, f *File, status *Status) {
	p.flushFile(ctx, f, true, status)
	delete(p.files, f.id)
	p.handles.release(f.id)
	f.curBlock = -1
}

func roundUpBlock(n int64) int64 {
	if rem := n % BlockSize; rem != 0 {
		return n + (BlockSize - rem)
	}
	return n
}
