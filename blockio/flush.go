package blockio

import (
	"context"

	"github.com/skyfits/fitsbuf/errors"
)

// FlushFile iterates all slots, writing back any owned by f that are
// dirty, and if clear, disassociating them. Finally it calls the
// driver's FlushSys.
func (p *Pool) FlushFile(ctx context.Context, f *File, clear bool, status *Status) {
	if status.Failed() {
		return
	}
	for idx := range p.slots {
		s := &p.slots[idx]
		if s.owner != f.id {
			continue
		}
		if s.dirty {
			p.writeback(ctx, idx, status)
			if status.Failed() {
				return
			}
		}
		if clear {
			s.owner = noOwner
			if f.curBlock == idx {
				f.curBlock = -1
			}
		}
	}
	if err := f.driver.FlushSys(ctx); err != nil {
		status.Set(errors.E(errors.IoError, "flush_file: flush_sys", err))
	}
}

// flushFile is the unexported entry point used internally (e.g. by
// Close), identical to FlushFile.
func (p *Pool) flushFile(ctx context.Context, f *File, clear bool, status *Status) {
	p.FlushFile(ctx, f, clear, status)
}

// FlushHDU closes out the current
// HDU via the navigator, flush the file without clearing buffers, then
// reopen the HDU.
func (p *Pool) FlushHDU(ctx context.Context, f *File, status *Status) {
	if status.Failed() {
		return
	}
	if err := f.nav.CloseCurrentHDU(ctx, f); err != nil {
		status.Set(errors.E(errors.IoError, "flush_hdu: close current hdu", err))
		return
	}
	p.FlushFile(ctx, f, false, status)
	if status.Failed() {
		return
	}
	if err := f.nav.ReopenHDU(ctx, f); err != nil {
		status.Set(errors.E(errors.IoError, "flush_hdu: reopen hdu", err))
	}
}

// DropBeyondEOF disassociates every slot of f whose on-disk block offset
// has reached or passed f.filesize. It is idempotent and a no-op once no
// such slot remains.
func (p *Pool) DropBeyondEOF(f *File, status *Status) {
	if status.Failed() {
		return
	}
	for idx := range p.slots {
		s := &p.slots[idx]
		if s.owner != f.id {
			continue
		}
		if s.blockIndex*BlockSize >= f.filesize {
			s.owner = noOwner
			s.dirty = false
			if f.curBlock == idx {
				f.curBlock = -1
			}
		}
	}
}
