package blockio

import "context"

// Typed array helpers: get_i1/i2/i4/r4/r8 and put_i*/put_r*.
// Each computes contiguous-versus-strided, optionally bypasses the pool
// by temporarily overriding f's logical cursor when the payload reaches
// DirectCutoff, and calls the numeric format converter before writing or
// after reading.
//
// Gets take an absolute byteloc and read without disturbing f.bytepos
// when the transfer is large enough to bypass the pool, saving, overriding,
// and restoring bytepos around the direct read.
// Puts write at f's current position, left advanced by the transfer, as
// with any other write_bytes call; callers are expected to have already
// positioned f (e.g. via table_write_bytes) before calling a put.

func (p *Pool) getContiguous(ctx context.Context, f *File, byteloc int64, n int, dst []byte, status *Status) {
	if n < DirectCutoff {
		p.SeekTo(ctx, f, byteloc, ReportEOF, status)
		if status.Failed() {
			return
		}
		p.ReadBytes(ctx, f, n, dst, status)
		return
	}
	saved := f.bytepos
	f.bytepos = byteloc
	p.ReadBytes(ctx, f, n, dst, status)
	f.bytepos = saved
}

func (p *Pool) putContiguous(ctx context.Context, f *File, n int, src []byte, status *Status) {
	p.WriteBytes(ctx, f, n, src, status)
}

// GetI1 reads nvals unsigned bytes starting at byteloc, incre bytes apart.
func (p *Pool) GetI1(ctx context.Context, f *File, byteloc int64, nvals, incre int64, dst []byte, status *Status) {
	if status.Failed() {
		return
	}
	if incre == 1 {
		p.getContiguous(ctx, f, byteloc, int(nvals), dst, status)
	} else {
		p.SeekTo(ctx, f, byteloc, ReportEOF, status)
		if status.Failed() {
			return
		}
		p.ReadGroups(ctx, f, 1, nvals, incre-1, dst, status)
	}
}

// PutI1 writes nvals unsigned bytes at f's current position, incre bytes
// apart.
func (p *Pool) PutI1(ctx context.Context, f *File, nvals, incre int64, src []byte, status *Status) {
	if status.Failed() {
		return
	}
	if incre == 1 {
		p.putContiguous(ctx, f, int(nvals), src, status)
	} else {
		p.WriteGroups(ctx, f, 1, nvals, incre-1, src, status)
	}
}

// GetI2 reads nvals 2-byte big-endian integers, applying f's converter's
// byte-swap after the read.
func (p *Pool) GetI2(ctx context.Context, f *File, byteloc int64, nvals, incre int64, dst []byte, status *Status) {
	if status.Failed() {
		return
	}
	if incre == 2 {
		p.getContiguous(ctx, f, byteloc, int(nvals*2), dst, status)
	} else {
		p.SeekTo(ctx, f, byteloc, ReportEOF, status)
		if status.Failed() {
			return
		}
		p.ReadGroups(ctx, f, 2, nvals, incre-2, dst, status)
	}
	if !status.Failed() {
		f.conv.Swap2(dst[:nvals*2])
	}
}

// PutI2 byte-swaps then writes nvals 2-byte integers.
func (p *Pool) PutI2(ctx context.Context, f *File, nvals, incre int64, src []byte, status *Status) {
	if status.Failed() {
		return
	}
	f.conv.Swap2(src[:nvals*2])
	if incre == 2 {
		p.putContiguous(ctx, f, int(nvals*2), src, status)
	} else {
		p.WriteGroups(ctx, f, 2, nvals, incre-2, src, status)
	}
}

// GetI4 reads nvals 4-byte big-endian integers, applying the byte-swap
// after the read.
func (p *Pool) GetI4(ctx context.Context, f *File, byteloc int64, nvals, incre int64, dst []byte, status *Status) {
	if status.Failed() {
		return
	}
	if incre == 4 {
		p.getContiguous(ctx, f, byteloc, int(nvals*4), dst, status)
	} else {
		p.SeekTo(ctx, f, byteloc, ReportEOF, status)
		if status.Failed() {
			return
		}
		p.ReadGroups(ctx, f, 4, nvals, incre-4, dst, status)
	}
	if !status.Failed() {
		f.conv.Swap4(dst[:nvals*4])
	}
}

// PutI4 byte-swaps then writes nvals 4-byte integers.
func (p *Pool) PutI4(ctx context.Context, f *File, nvals, incre int64, src []byte, status *Status) {
	if status.Failed() {
		return
	}
	f.conv.Swap4(src[:nvals*4])
	if incre == 4 {
		p.putContiguous(ctx, f, int(nvals*4), src, status)
	} else {
		p.WriteGroups(ctx, f, 4, nvals, incre-4, src, status)
	}
}

// GetR4 reads nvals 4-byte reals: byte-swap first, then the legacy
// non-IEEE scale-on-read step (a no-op on the default IEEE converter).
func (p *Pool) GetR4(ctx context.Context, f *File, byteloc int64, nvals, incre int64, dst []byte, status *Status) {
	if status.Failed() {
		return
	}
	if incre == 4 {
		p.getContiguous(ctx, f, byteloc, int(nvals*4), dst, status)
	} else {
		p.SeekTo(ctx, f, byteloc, ReportEOF, status)
		if status.Failed() {
			return
		}
		p.ReadGroups(ctx, f, 4, nvals, incre-4, dst, status)
	}
	if !status.Failed() {
		f.conv.Swap4(dst[:nvals*4])
		f.conv.ScaleR4Read(dst[:nvals*4])
	}
}

// PutR4 applies the legacy scale-on-write step then byte-swaps before
// writing nvals 4-byte reals.
func (p *Pool) PutR4(ctx context.Context, f *File, nvals, incre int64, src []byte, status *Status) {
	if status.Failed() {
		return
	}
	f.conv.ScaleR4Write(src[:nvals*4])
	f.conv.Swap4(src[:nvals*4])
	if incre == 4 {
		p.putContiguous(ctx, f, int(nvals*4), src, status)
	} else {
		p.WriteGroups(ctx, f, 4, nvals, incre-4, src, status)
	}
}

// GetR8 mirrors GetR4 for 8-byte reals.
func (p *Pool) GetR8(ctx context.Context, f *File, byteloc int64, nvals, incre int64, dst []byte, status *Status) {
	if status.Failed() {
		return
	}
	if incre == 8 {
		p.getContiguous(ctx, f, byteloc, int(nvals*8), dst, status)
	} else {
		p.SeekTo(ctx, f, byteloc, ReportEOF, status)
		if status.Failed() {
			return
		}
		p.ReadGroups(ctx, f, 8, nvals, incre-8, dst, status)
	}
	if !status.Failed() {
		f.conv.Swap8(dst[:nvals*8])
		f.conv.ScaleR8Read(dst[:nvals*8])
	}
}

// PutR8 mirrors PutR4 for 8-byte reals.
func (p *Pool) PutR8(ctx context.Context, f *File, nvals, incre int64, src []byte, status *Status) {
	if status.Failed() {
		return
	}
	f.conv.ScaleR8Write(src[:nvals*8])
	f.conv.Swap8(src[:nvals*8])
	if incre == 8 {
		p.putContiguous(ctx, f, int(nvals*8), src, status)
	} else {
		p.WriteGroups(ctx, f, 8, nvals, incre-8, src, status)
	}
}

// OptimalChunk advises the amount
// of data a caller sizing batched transfers should move at once to avoid
// thrashing the pool, floored at 1.
func (p *Pool) OptimalChunk(f *File, elementStride int64) int64 {
	if elementStride <= 0 {
		elementStride = 1
	}
	n := int64(len(p.slots)-p.OpenFileCount()) * BlockSize / elementStride
	if n < 1 {
		n = 1
	}
	return n
}
