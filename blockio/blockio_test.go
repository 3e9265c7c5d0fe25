package blockio_test

import (
	"context"
	"testing"

	"github.com/skyfits/fitsbuf/blockio"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

func openFile(pool *blockio.Pool, initial []byte) (*blockio.File, *fakeDriver) {
	d := newFakeDriver(initial)
	nav := &fakeNav{hduType: blockio.ImageHDU, rowLength: blockio.BlockSize, numRows: 0}
	f := pool.Open(d, nav, nav, fakeConv{}, int64(len(initial)))
	return f, d
}

func TestWriteReadBytesRoundTrip(t *testing.T) {
	pool := blockio.NewPool(4)
	f, _ := openFile(pool, nil)
	var status blockio.Status

	want := []byte("hello, fixed-pool block cache")
	pool.SeekTo(ctx, f, 0, blockio.IgnoreEOF, &status)
	pool.WriteBytes(ctx, f, len(want), want, &status)
	require.False(t, status.Failed())

	got := make([]byte, len(want))
	pool.SeekTo(ctx, f, 0, blockio.ReportEOF, &status)
	pool.ReadBytes(ctx, f, len(got), got, &status)
	require.False(t, status.Failed())
	require.Equal(t, want, got)
}

func TestWriteReadBytesLargeRoundTrip(t *testing.T) {
	pool := blockio.NewPool(4)
	f, _ := openFile(pool, nil)
	var status blockio.Status

	n := blockio.DirectCutoff + 137
	want := make([]byte, n)
	for i := range want {
		want[i] = byte(i)
	}
	pool.SeekTo(ctx, f, 0, blockio.IgnoreEOF, &status)
	pool.WriteBytes(ctx, f, n, want, &status)
	require.False(t, status.Failed())

	got := make([]byte, n)
	pool.SeekTo(ctx, f, 0, blockio.ReportEOF, &status)
	pool.ReadBytes(ctx, f, n, got, &status)
	require.False(t, status.Failed())
	require.Equal(t, want, got)
}

func TestReadPastEOFReports(t *testing.T) {
	pool := blockio.NewPool(4)
	f, _ := openFile(pool, make([]byte, blockio.BlockSize))
	var status blockio.Status

	pool.SeekTo(ctx, f, f.FileSize()+blockio.BlockSize, blockio.ReportEOF, &status)
	require.True(t, status.Failed())
}

func TestWriteGroupsReadGroupsStrided(t *testing.T) {
	pool := blockio.NewPool(4)
	f, _ := openFile(pool, nil)
	var status blockio.Status

	const gsize, ngroups, gap = 4, 50, 6
	src := make([]byte, gsize*ngroups)
	for i := range src {
		src[i] = byte(i + 1)
	}
	pool.SeekTo(ctx, f, 0, blockio.IgnoreEOF, &status)
	pool.WriteGroups(ctx, f, gsize, ngroups, gap, src, &status)
	require.False(t, status.Failed())

	dst := make([]byte, gsize*ngroups)
	pool.SeekTo(ctx, f, 0, blockio.ReportEOF, &status)
	pool.ReadGroups(ctx, f, gsize, ngroups, gap, dst, &status)
	require.False(t, status.Failed())
	require.Equal(t, src, dst)
}

func TestWriteGroupsCrossesBlockBoundary(t *testing.T) {
	pool := blockio.NewPool(4)
	f, _ := openFile(pool, nil)
	var status blockio.Status

	// Choose gsize/ngroups/gap so groups straddle block boundaries.
	const gsize, ngroups, gap = 17, 400, 4
	src := make([]byte, gsize*ngroups)
	for i := range src {
		src[i] = byte(i % 251)
	}
	pool.SeekTo(ctx, f, 0, blockio.IgnoreEOF, &status)
	pool.WriteGroups(ctx, f, gsize, ngroups, gap, src, &status)
	require.False(t, status.Failed())

	dst := make([]byte, gsize*ngroups)
	pool.SeekTo(ctx, f, 0, blockio.ReportEOF, &status)
	pool.ReadGroups(ctx, f, gsize, ngroups, gap, dst, &status)
	require.False(t, status.Failed())
	require.Equal(t, src, dst)
}

func TestTableReadWriteBytes(t *testing.T) {
	pool := blockio.NewPool(4)
	f, _ := openFile(pool, nil)
	var status blockio.Status

	// Prime the navigator with a row length via EnsureCurrentHDU, then
	// widen it through writes.
	row1 := []byte("row number one, 20b")
	pool.TableWriteBytes(ctx, f, 1, 1, len(row1), row1, &status)
	require.False(t, status.Failed())
	require.Equal(t, int64(1), f.NumRows)

	row2 := []byte("row number two, 20b ")
	pool.TableWriteBytes(ctx, f, 2, 1, len(row2), row2, &status)
	require.False(t, status.Failed())
	require.Equal(t, int64(2), f.NumRows)

	got := make([]byte, len(row1))
	pool.TableReadBytes(ctx, f, 1, 1, len(got), got, &status)
	require.False(t, status.Failed())
	require.Equal(t, row1, got)
}

func TestTableReadBytesPastEndOfTableFails(t *testing.T) {
	pool := blockio.NewPool(4)
	f, _ := openFile(pool, nil)
	var status blockio.Status

	row := []byte("a single row")
	pool.TableWriteBytes(ctx, f, 1, 1, len(row), row, &status)
	require.False(t, status.Failed())

	got := make([]byte, len(row))
	pool.TableReadBytes(ctx, f, 5, 1, len(got), got, &status)
	require.True(t, status.Failed())
}

func TestEvictionReusesOldestUnpinnedSlot(t *testing.T) {
	pool := blockio.NewPool(2)
	f, _ := openFile(pool, nil)
	var status blockio.Status

	// Write three distinct blocks through a two-slot pool; every write
	// round-trips even though not all three blocks can be resident at
	// once.
	for i := int64(0); i < 3; i++ {
		buf := make([]byte, blockio.BlockSize)
		for j := range buf {
			buf[j] = byte(i + 1)
		}
		pool.SeekTo(ctx, f, i*blockio.BlockSize, blockio.IgnoreEOF, &status)
		pool.WriteBytes(ctx, f, len(buf), buf, &status)
		require.False(t, status.Failed())
	}

	for i := int64(0); i < 3; i++ {
		got := make([]byte, blockio.BlockSize)
		pool.SeekTo(ctx, f, i*blockio.BlockSize, blockio.ReportEOF, &status)
		pool.ReadBytes(ctx, f, len(got), got, &status)
		require.False(t, status.Failed())
		for j := range got {
			require.Equal(t, byte(i+1), got[j])
		}
	}
}

func TestTooManyOpenFilesWhenEveryFileHasAPinnedSlot(t *testing.T) {
	pool := blockio.NewPool(2)
	f1, _ := openFile(pool, nil)
	f2, _ := openFile(pool, nil)
	f3, _ := openFile(pool, nil)
	var status blockio.Status

	pool.SeekTo(ctx, f1, 0, blockio.IgnoreEOF, &status)
	require.False(t, status.Failed())
	pool.SeekTo(ctx, f2, 0, blockio.IgnoreEOF, &status)
	require.False(t, status.Failed())

	// Both of the pool's two slots are now pinned as f1's and f2's
	// current block. f3 has no pinned block of its own to fall back to,
	// so it has nowhere to land.
	pool.SeekTo(ctx, f3, 0, blockio.IgnoreEOF, &status)
	require.True(t, status.Failed())
}

func TestFlushFileWritesBackDirtySlots(t *testing.T) {
	pool := blockio.NewPool(4)
	f, d := openFile(pool, nil)
	var status blockio.Status

	want := []byte("dirty data that must survive a flush")
	pool.SeekTo(ctx, f, 0, blockio.IgnoreEOF, &status)
	pool.WriteBytes(ctx, f, len(want), want, &status)
	require.False(t, status.Failed())

	pool.FlushFile(ctx, f, true, &status)
	require.False(t, status.Failed())
	require.True(t, d.synced)
	require.GreaterOrEqual(t, d.size(), int64(len(want)))
}

func TestFlushFileIsIdempotent(t *testing.T) {
	pool := blockio.NewPool(4)
	f, _ := openFile(pool, nil)
	var status blockio.Status

	pool.SeekTo(ctx, f, 0, blockio.IgnoreEOF, &status)
	pool.WriteBytes(ctx, f, 4, []byte("data"), &status)
	require.False(t, status.Failed())

	pool.FlushFile(ctx, f, true, &status)
	require.False(t, status.Failed())
	pool.FlushFile(ctx, f, true, &status)
	require.False(t, status.Failed())
}

func TestPastEOFWriteExtendsMonotonically(t *testing.T) {
	pool := blockio.NewPool(4)
	f, d := openFile(pool, nil)
	var status blockio.Status

	// Write the third block directly, skipping the first two: writeback
	// must zero-fill the gap so the file still grows monotonically.
	buf := make([]byte, blockio.BlockSize)
	for i := range buf {
		buf[i] = 0xAB
	}
	pool.SeekTo(ctx, f, 2*blockio.BlockSize, blockio.IgnoreEOF, &status)
	pool.WriteBytes(ctx, f, len(buf), buf, &status)
	require.False(t, status.Failed())

	pool.FlushFile(ctx, f, true, &status)
	require.False(t, status.Failed())
	require.Equal(t, int64(3*blockio.BlockSize), d.size())

	d.mu.Lock()
	gap := append([]byte(nil), d.data[:2*blockio.BlockSize]...)
	tail := append([]byte(nil), d.data[2*blockio.BlockSize:3*blockio.BlockSize]...)
	d.mu.Unlock()
	for _, b := range gap {
		require.Equal(t, byte(0), b)
	}
	for _, b := range tail {
		require.Equal(t, byte(0xAB), b)
	}
}

func TestDropBeyondEOFIsIdempotent(t *testing.T) {
	pool := blockio.NewPool(4)
	f, _ := openFile(pool, make([]byte, blockio.BlockSize))
	var status blockio.Status

	pool.SeekTo(ctx, f, 0, blockio.ReportEOF, &status)
	require.False(t, status.Failed())

	pool.DropBeyondEOF(f, &status)
	require.False(t, status.Failed())
	pool.DropBeyondEOF(f, &status)
	require.False(t, status.Failed())
}

func TestOptimalChunkFloorsAtOne(t *testing.T) {
	pool := blockio.NewPool(1)
	f, _ := openFile(pool, nil)
	_, _ = openFile(pool, nil)

	require.GreaterOrEqual(t, pool.OptimalChunk(f, blockio.BlockSize*1000), int64(1))
}

func TestCloseRemovesFileFromPool(t *testing.T) {
	pool := blockio.NewPool(4)
	f, _ := openFile(pool, nil)
	require.Equal(t, 1, pool.OpenFileCount())

	var status blockio.Status
	pool.Close(ctx, f, &status)
	require.False(t, status.Failed())
	require.Equal(t, 0, pool.OpenFileCount())
}
