// Package osdriver implements blockio.Driver against a real OS file
// descriptor.
package osdriver

import (
	"context"
	"os"

	"github.com/skyfits/fitsbuf/errors"
	"github.com/skyfits/fitsbuf/fileio"
)

var _ fileio.Closer = (*Driver)(nil)

// Driver is a blockio.Driver backed by one open *os.File. It is not safe
// for concurrent use, matching blockio's externally-serialized contract.
// It implements fileio.Closer, so callers can pass it to
// fileio.CloseAndReport for chained close-error reporting.
type Driver struct {
	f    *os.File
	name string
	pos  int64
}

// Open opens name with the given flags (os.O_RDWR, os.O_CREATE, etc.) and
// returns a Driver plus the file's current size, for use as the initSize
// argument to blockio.Pool.Open.
func Open(name string, flag int, perm os.FileMode) (*Driver, int64, error) {
	f, err := os.OpenFile(name, flag, perm)
	if err != nil {
		return nil, 0, errors.E(errors.IoError, "osdriver.Open", err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, errors.E(errors.IoError, "osdriver.Open: stat", err)
	}
	return &Driver{f: f, name: name}, fi.Size(), nil
}

// Name returns the path the Driver was opened with.
func (d *Driver) Name() string { return d.name }

// Close closes the underlying file. Callers should flush the pool's
// dirty blocks for this file via blockio.Pool.Close before calling Close.
func (d *Driver) Close() error {
	if err := d.f.Close(); err != nil {
		return errors.E(errors.IoError, "osdriver.Close: "+d.name, err)
	}
	return nil
}

// Seek records the logical OS-level position for the next Read/Write;
// the actual positioned syscall happens in the platform-specific
// pread/pwrite call, so this never issues its own seek syscall.
func (d *Driver) Seek(_ context.Context, pos int64) error {
	d.pos = pos
	return nil
}

// Read reads exactly n bytes into dst[:n] at the driver's current
// position, advancing it by n.
func (d *Driver) Read(ctx context.Context, n int, dst []byte) error {
	if err := d.preadFull(dst[:n], d.pos); err != nil {
		return errors.E(errors.IoError, "osdriver.Read: "+d.name, err)
	}
	d.pos += int64(n)
	return nil
}

// Write writes exactly n bytes from src[:n] at the driver's current
// position, advancing it by n.
func (d *Driver) Write(ctx context.Context, n int, src []byte) error {
	if err := d.pwriteFull(src[:n], d.pos); err != nil {
		return errors.E(errors.IoError, "osdriver.Write: "+d.name, err)
	}
	d.pos += int64(n)
	return nil
}

// FlushSys asks the platform to persist the file's data, per
// blockio.Driver.
func (d *Driver) FlushSys(ctx context.Context) error {
	if err := d.fdatasync(); err != nil {
		return errors.E(errors.IoError, "osdriver.FlushSys: "+d.name, err)
	}
	return nil
}
