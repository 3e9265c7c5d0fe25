package blockio_test

import (
	"context"
	"sync"

	"github.com/skyfits/fitsbuf/blockio"
)

// fakeDriver is an in-memory stand-in for blockio.Driver: a growable byte
// slice plus a cursor, enough to exercise every seek/read/write/flush
// path the pool can take without touching a real file.
type fakeDriver struct {
	mu     sync.Mutex
	data   []byte
	pos    int64
	synced bool
}

func newFakeDriver(initial []byte) *fakeDriver {
	return &fakeDriver{data: append([]byte(nil), initial...)}
}

func (d *fakeDriver) Seek(_ context.Context, pos int64) error {
	d.pos = pos
	return nil
}

func (d *fakeDriver) Read(_ context.Context, n int, dst []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	end := d.pos + int64(n)
	if end > int64(len(d.data)) {
		grown := make([]byte, end)
		copy(grown, d.data)
		d.data = grown
	}
	copy(dst[:n], d.data[d.pos:end])
	d.pos = end
	return nil
}

func (d *fakeDriver) Write(_ context.Context, n int, src []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	end := d.pos + int64(n)
	if end > int64(len(d.data)) {
		grown := make([]byte, end)
		copy(grown, d.data)
		d.data = grown
	}
	copy(d.data[d.pos:end], src[:n])
	d.pos = end
	d.synced = false
	return nil
}

func (d *fakeDriver) FlushSys(context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.synced = true
	return nil
}

func (d *fakeDriver) size() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return int64(len(d.data))
}

// fakeNav is a Navigator/HeaderRescanner that never switches HDUs; it
// behaves like fits.SingleHDU but is defined here rather than imported,
// so blockio's own tests have no dependency on the fits package.
type fakeNav struct {
	hduType   blockio.HDUType
	rowLength int64
	numRows   int64
	primed    bool
}

func (n *fakeNav) EnsureCurrentHDU(_ context.Context, f *blockio.File) error {
	if n.primed {
		return nil
	}
	f.CurHDU = 1
	f.HDUType = n.hduType
	f.DataStart = 0
	f.RowLength = n.rowLength
	f.NumRows = n.numRows
	n.primed = true
	return nil
}

func (n *fakeNav) CloseCurrentHDU(context.Context, *blockio.File) error { return nil }
func (n *fakeNav) ReopenHDU(context.Context, *blockio.File) error      { return nil }
func (n *fakeNav) RescanIfUndefined(context.Context, *blockio.File) error {
	return nil
}

// fakeConv is a Converter whose swap/scale steps are all identity, so
// tests that don't care about wire format can ignore it.
type fakeConv struct{}

func (fakeConv) Swap2([]byte)        {}
func (fakeConv) Swap4([]byte)        {}
func (fakeConv) Swap8([]byte)        {}
func (fakeConv) ScaleR4Write([]byte) {}
func (fakeConv) ScaleR4Read([]byte)  {}
func (fakeConv) ScaleR8Write([]byte) {}
func (fakeConv) ScaleR8Read([]byte)  {}
