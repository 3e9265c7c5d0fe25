package fits_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/skyfits/fitsbuf/blockio"
	"github.com/skyfits/fitsbuf/convert"
	"github.com/skyfits/fitsbuf/fits"
	"github.com/skyfits/fitsbuf/osdriver"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

func TestSingleHDUPrimesFieldsOnce(t *testing.T) {
	dir := t.TempDir()
	d, size, err := osdriver.Open(filepath.Join(dir, "x.fits"), os.O_RDWR|os.O_CREATE, 0o644)
	require.NoError(t, err)
	defer d.Close()

	nav := fits.NewSingleHDU(blockio.BinaryTBL, 80, 3)
	pool := blockio.NewPool(blockio.DefaultSlots)
	f := pool.Open(d, nav, nav, convert.IEEE{}, size)

	var status blockio.Status
	pool.SeekTo(ctx, f, 0, blockio.IgnoreEOF, &status)
	require.False(t, status.Failed())

	require.Equal(t, 1, f.CurHDU)
	require.Equal(t, blockio.BinaryTBL, f.HDUType)
	require.Equal(t, int64(0), f.DataStart)
	require.Equal(t, int64(80), f.RowLength)
	require.Equal(t, int64(3), f.NumRows)

	// Mutating a field after the first prime must stick: EnsureCurrentHDU
	// is a no-op on every subsequent call.
	f.NumRows = 99
	pool.SeekTo(ctx, f, 0, blockio.IgnoreEOF, &status)
	require.False(t, status.Failed())
	require.Equal(t, int64(99), f.NumRows)
}

func TestSingleHDUFillByteMatchesType(t *testing.T) {
	require.Equal(t, byte(0x00), blockio.ImageHDU.FillByte())
	require.Equal(t, byte(0x00), blockio.BinaryTBL.FillByte())
	require.Equal(t, byte(0x20), blockio.ASCIITBL.FillByte())
}

func TestSingleHDUCloseAndReopenAreNoops(t *testing.T) {
	nav := fits.NewSingleHDU(blockio.ImageHDU, blockio.BlockSize, 0)
	dir := t.TempDir()
	d, size, err := osdriver.Open(filepath.Join(dir, "y.fits"), os.O_RDWR|os.O_CREATE, 0o644)
	require.NoError(t, err)
	defer d.Close()

	pool := blockio.NewPool(blockio.DefaultSlots)
	f := pool.Open(d, nav, nav, convert.IEEE{}, size)

	require.NoError(t, nav.CloseCurrentHDU(ctx, f))
	require.NoError(t, nav.ReopenHDU(ctx, f))
	require.NoError(t, nav.RescanIfUndefined(ctx, f))
}
