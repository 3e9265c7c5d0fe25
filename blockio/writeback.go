package blockio

import (
	"context"

	"github.com/skyfits/fitsbuf/errors"
	"github.com/skyfits/fitsbuf/log"
)

// writeback writes slot idx to disk, creating any
// intervening on-disk content the file might be missing. Writeback errors
// do not clear the dirty flag, so a retry remains possible.
func (p *Pool) writeback(ctx context.Context, idx int, status *Status) {
	if status.Failed() {
		return
	}
	s := &p.slots[idx]
	f := p.files[s.owner]
	offset := s.blockIndex * BlockSize

	if offset <= f.filesize {
		if f.ioPos != offset {
			if err := f.driver.Seek(ctx, offset); err != nil {
				status.Set(errors.E(errors.IoError, "writeback: seek", err))
				return
			}
			f.ioPos = offset
		}
		if err := f.driver.Write(ctx, BlockSize, s.bytes); err != nil {
			status.Set(errors.E(errors.IoError, "writeback: write", err))
			return
		}
		f.ioPos = offset + BlockSize
		if offset == f.filesize {
			f.filesize += BlockSize
		}
		s.dirty = false
		return
	}

	// s lives strictly past EOF: keep on-disk order monotone by writing
	// the lowest-index dirty slot owned by f first, filling any gap with
	// zero blocks, until s itself has been written.
	log.Debug.Printf("writeback past eof: file %d, target block %d, current filesize %d", f.id, s.blockIndex, f.filesize)
	if f.ioPos != f.filesize {
		if err := f.driver.Seek(ctx, f.filesize); err != nil {
			status.Set(errors.E(errors.IoError, "writeback: seek", err))
			return
		}
		f.ioPos = f.filesize
	}

	var zero []byte
	for {
		minRec := f.filesize / BlockSize
		candidate := -1
		for ci := range p.slots {
			cs := &p.slots[ci]
			if cs.owner != f.id || cs.blockIndex < minRec {
				continue
			}
			if candidate == -1 || cs.blockIndex < p.slots[candidate].blockIndex {
				candidate = ci
			}
		}
		if candidate == -1 {
			candidate = idx
		}
		cs := &p.slots[candidate]
		targetOff := cs.blockIndex * BlockSize

		if targetOff > f.filesize {
			if zero == nil {
				zero = make([]byte, BlockSize)
			}
			nloop := (targetOff - f.filesize) / BlockSize
			for i := int64(0); i < nloop; i++ {
				if err := f.driver.Write(ctx, BlockSize, zero); err != nil {
					status.Set(errors.E(errors.IoError, "writeback: gap fill", err))
					return
				}
			}
			f.filesize = targetOff
		}

		if err := f.driver.Write(ctx, BlockSize, cs.bytes); err != nil {
			status.Set(errors.E(errors.IoError, "writeback: write", err))
			return
		}
		cs.dirty = false
		f.filesize += BlockSize

		if candidate == idx {
			break
		}
	}
	f.ioPos = f.filesize
}
