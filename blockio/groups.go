package blockio

import "context"

// WriteGroups writes ngroups groups of gsize bytes
// each, separated by a gap of gap bytes, starting at f's current logical
// position. It maintains a live (slot, offset, space-remaining) cursor so
// each group typically costs one copy and a pointer bump, crossing block
// boundaries by calling LoadBlock directly rather than re-deriving the
// target block from f.bytepos via SeekTo.
func (p *Pool) WriteGroups(ctx context.Context, f *File, gsize, ngroups, gap int64, src []byte, status *Status) {
	p.transferGroups(ctx, f, gsize, ngroups, gap, status, groupWrite{src: src})
}

// ReadGroups mirrors WriteGroups.
func (p *Pool) ReadGroups(ctx context.Context, f *File, gsize, ngroups, gap int64, dst []byte, status *Status) {
	p.transferGroups(ctx, f, gsize, ngroups, gap, status, groupRead{dst: dst})
}

// groupOp abstracts the one difference between write_groups and
// read_groups: which direction bytes move between the user buffer and the
// current slot, and which ErrMode/dirty-marking applies to a cross-block
// load.
type groupOp interface {
	copy(slotBytes []byte, slotOff int, userOff int64, n int64)
	errMode() ErrMode
	markDirty() bool
}

type groupWrite struct{ src []byte }

func (g groupWrite) copy(slotBytes []byte, slotOff int, userOff int64, n int64) {
	copy(slotBytes[slotOff:int64(slotOff)+n], g.src[userOff:userOff+n])
}
func (groupWrite) errMode() ErrMode { return IgnoreEOF }
func (groupWrite) markDirty() bool  { return true }

type groupRead struct{ dst []byte }

func (g groupRead) copy(slotBytes []byte, slotOff int, userOff int64, n int64) {
	copy(g.dst[userOff:userOff+n], slotBytes[slotOff:int64(slotOff)+n])
}
func (groupRead) errMode() ErrMode { return ReportEOF }
func (groupRead) markDirty() bool  { return false }

func (p *Pool) transferGroups(ctx context.Context, f *File, gsize, ngroups, gap int64, status *Status, op groupOp) {
	if status.Failed() {
		return
	}
	p.ensureCurrent(ctx, f, status)
	if status.Failed() {
		return
	}

	bcurrent := f.curBlock
	record := p.slots[bcurrent].blockIndex
	bufpos := f.bytepos - record*BlockSize
	nspace := int64(BlockSize) - bufpos
	userOff := int64(0)

	transferOne := func() {
		nmove := gsize
		if nmove > nspace {
			nmove = nspace
		}
		op.copy(p.slots[bcurrent].bytes, int(bufpos), userOff, nmove)
		userOff += nmove
		if op.markDirty() {
			p.slots[bcurrent].dirty = true
		}

		if nmove < gsize {
			// The group straddles a block boundary: finish it in the
			// next block.
			record++
			bcurrent = p.LoadBlock(ctx, f, record, op.errMode(), status)
			if status.Failed() {
				return
			}
			rest := gsize - nmove
			op.copy(p.slots[bcurrent].bytes, 0, userOff, rest)
			userOff += rest
			if op.markDirty() {
				p.slots[bcurrent].dirty = true
			}
			bufpos = gap + rest
			nspace = int64(BlockSize) - (gap + rest)
		} else {
			bufpos += gap + nmove
			nspace -= gap + nmove
		}

		if nspace <= 0 {
			// The gap itself (or more) pushed past the current block;
			// re-establish the cursor at the right offset into whatever
			// block that lands in. nspace <= 0 here, so -nspace is
			// non-negative and (-nspace) % BlockSize is already the
			// correct non-negative in-block offset.
			record += (BlockSize - nspace) / BlockSize
			bcurrent = p.LoadBlock(ctx, f, record, op.errMode(), status)
			if status.Failed() {
				return
			}
			bufpos = (-nspace) % BlockSize
			nspace = BlockSize - bufpos
		}
	}

	for i := int64(1); i < ngroups; i++ {
		transferOne()
		if status.Failed() {
			return
		}
	}
	if ngroups >= 1 {
		// Last group: same per-group transfer, but no trailing gap skip.
		nmove := gsize
		if nmove > nspace {
			nmove = nspace
		}
		op.copy(p.slots[bcurrent].bytes, int(bufpos), userOff, nmove)
		userOff += nmove
		if op.markDirty() {
			p.slots[bcurrent].dirty = true
		}
		if nmove < gsize {
			record++
			bcurrent = p.LoadBlock(ctx, f, record, op.errMode(), status)
			if status.Failed() {
				return
			}
			rest := gsize - nmove
			op.copy(p.slots[bcurrent].bytes, 0, userOff, rest)
			if op.markDirty() {
				p.slots[bcurrent].dirty = true
			}
		}
	}

	f.bytepos = f.bytepos + ngroups*gsize + (ngroups-1)*gap
	f.curBlock = bcurrent
}
