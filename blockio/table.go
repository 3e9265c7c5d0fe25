package blockio

import (
	"context"

	"github.com/skyfits/fitsbuf/errors"
)

// TableReadBytes reads a consecutive run of bytes from a table HDU,
// spanning rows as needed.
func (p *Pool) TableReadBytes(ctx context.Context, f *File, firstRow, firstChar int64, n int, dst []byte, status *Status) {
	if status.Failed() || n <= 0 {
		return
	}
	if firstRow < 1 {
		status.Set(errors.E(errors.BadRow, "table_read_bytes: non-positive row"))
		return
	}
	if firstChar < 1 {
		status.Set(errors.E(errors.BadElem, "table_read_bytes: non-positive first char"))
		return
	}
	if err := f.nav.EnsureCurrentHDU(ctx, f); err != nil {
		status.Set(errors.E(errors.IoError, "table_read_bytes: ensure current hdu", err))
		return
	}

	endRow := (firstChar+int64(n)-2)/f.RowLength + firstRow
	if endRow > f.NumRows {
		status.Set(errors.E(errors.BadRow, "table_read_bytes: past end of table"))
		return
	}

	bytePos := f.DataStart + (firstRow-1)*f.RowLength + firstChar - 1
	p.SeekTo(ctx, f, bytePos, ReportEOF, status)
	if status.Failed() {
		return
	}
	p.ReadBytes(ctx, f, n, dst, status)
}

// TableWriteBytes writes a
// consecutive run of bytes to a table HDU, bumping NumRows if the write
// extends the table.
func (p *Pool) TableWriteBytes(ctx context.Context, f *File, firstRow, firstChar int64, n int, src []byte, status *Status) {
	if status.Failed() || n <= 0 {
		return
	}
	if firstRow < 1 {
		status.Set(errors.E(errors.BadRow, "table_write_bytes: non-positive row"))
		return
	}
	if firstChar < 1 {
		status.Set(errors.E(errors.BadElem, "table_write_bytes: non-positive first char"))
		return
	}
	if err := f.nav.EnsureCurrentHDU(ctx, f); err != nil {
		status.Set(errors.E(errors.IoError, "table_write_bytes: ensure current hdu", err))
		return
	}
	if f.DataStart < 0 {
		if err := f.rescan.RescanIfUndefined(ctx, f); err != nil {
			status.Set(errors.E(errors.IoError, "table_write_bytes: rescan header", err))
			return
		}
	}

	bytePos := f.DataStart + (firstRow-1)*f.RowLength + firstChar - 1
	p.SeekTo(ctx, f, bytePos, IgnoreEOF, status)
	if status.Failed() {
		return
	}
	p.WriteBytes(ctx, f, n, src, status)
	if status.Failed() {
		return
	}

	if endRow := (firstChar+int64(n)-2)/f.RowLength + firstRow; endRow > f.NumRows {
		f.NumRows = endRow
	}
}
