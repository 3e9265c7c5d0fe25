package blockio

import (
	"context"

	"github.com/skyfits/fitsbuf/errors"
)

// LoadBlock ensures that (f, b) is resident, returns
// the slot index that now holds it, set f.curBlock, and move the slot to
// the youngest end of the age index. On failure it returns -1 and sets
// status.
func (p *Pool) LoadBlock(ctx context.Context, f *File, b int64, mode ErrMode, status *Status) int {
	if status.Failed() {
		return -1
	}

	// Hit path: scan youngest to oldest.
	for i := len(p.age) - 1; i >= 0; i-- {
		idx := p.age[i]
		s := &p.slots[idx]
		if s.owner == f.id && s.blockIndex == b {
			f.curBlock = idx
			p.touch(idx)
			return idx
		}
	}

	off := b * BlockSize
	if off >= f.logfilesize && mode == ReportEOF {
		status.Set(errors.E(errors.EndOfFile, "load_block: past logical end of file"))
		return -1
	}

	victim := p.chooseVictim(f)
	if victim == -1 {
		status.Set(errors.E(errors.TooManyOpenFiles, "load_block: no slot available"))
		return -1
	}
	s := &p.slots[victim]
	if s.dirty {
		p.writeback(ctx, victim, status)
		if status.Failed() {
			return -1
		}
	}

	if off >= f.filesize {
		fill := f.HDUType.FillByte()
		for i := range s.bytes {
			s.bytes[i] = fill
		}
		if ext := off + BlockSize; ext > f.logfilesize {
			f.logfilesize = ext
		}
		s.dirty = true
	} else {
		if f.ioPos != off {
			if err := f.driver.Seek(ctx, off); err != nil {
				status.Set(errors.E(errors.IoError, "load_block: seek", err))
				return -1
			}
			f.ioPos = off
		}
		if err := f.driver.Read(ctx, BlockSize, s.bytes); err != nil {
			status.Set(errors.E(errors.IoError, "load_block: read", err))
			return -1
		}
		f.ioPos = off + BlockSize
		s.dirty = false
	}

	s.owner = f.id
	s.blockIndex = b
	f.curBlock = victim
	p.touch(victim)
	return victim
}
