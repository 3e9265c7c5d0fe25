package blockio

import (
	"context"

	"github.com/skyfits/fitsbuf/errors"
)

// SeekTo moves f's logical cursor to pos, loading
// the owning block if it isn't already current.
func (p *Pool) SeekTo(ctx context.Context, f *File, pos int64, mode ErrMode, status *Status) {
	if status.Failed() {
		return
	}
	if pos < 0 {
		status.Set(errors.E(errors.NegativeFilePos, "seek_to: negative position"))
		return
	}
	if err := f.nav.EnsureCurrentHDU(ctx, f); err != nil {
		status.Set(errors.E(errors.IoError, "seek_to: ensure current hdu", err))
		return
	}
	b := pos / BlockSize
	if f.curBlock == -1 || p.slots[f.curBlock].blockIndex != b {
		p.LoadBlock(ctx, f, b, mode, status)
		if status.Failed() {
			return
		}
	}
	f.bytepos = pos
}

func (p *Pool) ensureCurrent(ctx context.Context, f *File, status *Status) {
	if f.curBlock == -1 {
		p.LoadBlock(ctx, f, f.bytepos/BlockSize, IgnoreEOF, status)
	}
}

// WriteBytes writes n bytes from src at f's
// current logical position. Transfers under DirectCutoff go through the
// pool a block at a time; larger transfers bypass it for the interior,
// touching the pool only for the partial head (already current) and
// partial tail blocks.
func (p *Pool) WriteBytes(ctx context.Context, f *File, n int, src []byte, status *Status) {
	if status.Failed() {
		return
	}
	p.ensureCurrent(ctx, f, status)
	if status.Failed() {
		return
	}

	if n < DirectCutoff {
		p.writeBytesSmall(ctx, f, n, src, status)
		return
	}
	p.writeBytesLarge(ctx, f, n, src, status)
}

func (p *Pool) writeBytesSmall(ctx context.Context, f *File, n int, src []byte, status *Status) {
	ntodo := n
	srcOff := 0
	nbuff := f.curBlock
	bufpos := int(f.bytepos - p.slots[nbuff].blockIndex*BlockSize)
	nspace := BlockSize - bufpos

	for ntodo > 0 {
		nwrite := ntodo
		if nwrite > nspace {
			nwrite = nspace
		}
		s := &p.slots[nbuff]
		copy(s.bytes[bufpos:bufpos+nwrite], src[srcOff:srcOff+nwrite])
		ntodo -= nwrite
		srcOff += nwrite
		f.bytepos += int64(nwrite)
		s.dirty = true

		if ntodo > 0 {
			nbuff = p.LoadBlock(ctx, f, f.bytepos/BlockSize, IgnoreEOF, status)
			if status.Failed() {
				return
			}
			bufpos = 0
			nspace = BlockSize
		}
	}
}

func (p *Pool) writeBytesLarge(ctx context.Context, f *File, n int, src []byte, status *Status) {
	nbuff := f.curBlock
	filepos := f.bytepos
	recstart := p.slots[nbuff].blockIndex
	recend := (filepos + int64(n) - 1) / BlockSize
	bufpos := filepos - recstart*BlockSize
	nspace := int64(BlockSize) - bufpos
	ntodo := int64(n)
	srcOff := int64(0)

	if nspace > 0 {
		s := &p.slots[nbuff]
		copy(s.bytes[bufpos:bufpos+nspace], src[srcOff:srcOff+nspace])
		ntodo -= nspace
		srcOff += nspace
		filepos += nspace
		s.dirty = true
	}

	// Flush and disassociate every slot overlapping [recstart, recend]
	// owned by f: no stale cached image may contradict the bulk write.
	for idx := range p.slots {
		s := &p.slots[idx]
		if s.owner != f.id || s.blockIndex < recstart || s.blockIndex > recend {
			continue
		}
		if s.dirty {
			p.writeback(ctx, idx, status)
			if status.Failed() {
				return
			}
		}
		s.owner = noOwner
	}

	if f.ioPos != filepos {
		if err := f.driver.Seek(ctx, filepos); err != nil {
			status.Set(errors.E(errors.IoError, "write_bytes: seek", err))
			return
		}
		f.ioPos = filepos
	}

	nwrite := ((ntodo - 1) / BlockSize) * BlockSize
	if nwrite > 0 {
		if err := f.driver.Write(ctx, int(nwrite), src[srcOff:srcOff+nwrite]); err != nil {
			status.Set(errors.E(errors.IoError, "write_bytes: write", err))
			return
		}
	}
	ntodo -= nwrite
	srcOff += nwrite
	f.ioPos = filepos + nwrite

	s := &p.slots[nbuff]
	if f.ioPos >= f.filesize {
		f.filesize = f.ioPos
		fill := f.HDUType.FillByte()
		for i := range s.bytes {
			s.bytes[i] = fill
		}
	} else {
		if err := f.driver.Read(ctx, BlockSize, s.bytes); err != nil {
			status.Set(errors.E(errors.IoError, "write_bytes: read tail", err))
			return
		}
		f.ioPos += BlockSize
	}

	copy(s.bytes[:ntodo], src[srcOff:srcOff+ntodo])
	s.dirty = true
	s.blockIndex = recend
	s.owner = f.id

	if ext := (recend + 1) * BlockSize; ext > f.logfilesize {
		f.logfilesize = ext
	}
	f.bytepos = filepos + nwrite + ntodo
	f.curBlock = nbuff
}

// ReadBytes reads n bytes into dst starting at f's
// current logical position.
func (p *Pool) ReadBytes(ctx context.Context, f *File, n int, dst []byte, status *Status) {
	if status.Failed() {
		return
	}
	p.ensureCurrent(ctx, f, status)
	if status.Failed() {
		return
	}

	if n < DirectCutoff {
		p.readBytesSmall(ctx, f, n, dst, status)
		return
	}
	p.readBytesLarge(ctx, f, n, dst, status)
}

func (p *Pool) readBytesSmall(ctx context.Context, f *File, n int, dst []byte, status *Status) {
	ntodo := n
	dstOff := 0
	nbuff := f.curBlock
	bufpos := int(f.bytepos - p.slots[nbuff].blockIndex*BlockSize)
	nspace := BlockSize - bufpos

	for ntodo > 0 {
		nread := ntodo
		if nread > nspace {
			nread = nspace
		}
		s := &p.slots[nbuff]
		copy(dst[dstOff:dstOff+nread], s.bytes[bufpos:bufpos+nread])
		ntodo -= nread
		dstOff += nread
		f.bytepos += int64(nread)

		if ntodo > 0 {
			nbuff = p.LoadBlock(ctx, f, f.bytepos/BlockSize, ReportEOF, status)
			if status.Failed() {
				return
			}
			bufpos = 0
			nspace = BlockSize
		}
	}
}

func (p *Pool) readBytesLarge(ctx context.Context, f *File, n int, dst []byte, status *Status) {
	filepos := f.bytepos
	recstart := p.slots[f.curBlock].blockIndex
	recend := (filepos + int64(n) - 1) / BlockSize

	for idx := range p.slots {
		s := &p.slots[idx]
		if !s.dirty || s.owner != f.id || s.blockIndex < recstart || s.blockIndex > recend {
			continue
		}
		p.writeback(ctx, idx, status)
		if status.Failed() {
			return
		}
	}

	if f.ioPos != filepos {
		if err := f.driver.Seek(ctx, filepos); err != nil {
			status.Set(errors.E(errors.IoError, "read_bytes: seek", err))
			return
		}
		f.ioPos = filepos
	}
	if err := f.driver.Read(ctx, n, dst); err != nil {
		status.Set(errors.E(errors.IoError, "read_bytes: read", err))
		return
	}
	f.ioPos = filepos + int64(n)
	f.bytepos = filepos + int64(n)
}
