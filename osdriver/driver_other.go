//go:build !unix

package osdriver

import (
	"context"

	"github.com/skyfits/fitsbuf/ioctx"
)

// preadFull falls back to ReadAt on platforms without a pread syscall
// exposed through golang.org/x/sys/unix, going through ioctx.ReaderAt so
// the context-first call shape matches blockio.Driver.Read even on this
// fallback path.
func (d *Driver) preadFull(buf []byte, off int64) error {
	r := ioctx.FromStdReaderAt(d.f)
	_, err := r.ReadAt(context.Background(), buf, off)
	return err
}

// pwriteFull falls back to WriteAt; ioctx has no WriterAt analogue, so
// this goes straight to the stdlib.
func (d *Driver) pwriteFull(buf []byte, off int64) error {
	_, err := d.f.WriteAt(buf, off)
	return err
}

// fdatasync falls back to a full Sync; the platform has no cheaper
// data-only variant exposed.
func (d *Driver) fdatasync() error {
	return d.f.Sync()
}
