package blockio

import "github.com/skyfits/fitsbuf/log"

// chooseVictim traverses the age index oldest to youngest, returning the
// first slot that is either empty or not the pinned (curBlock) slot of
// its owning file. If every slot is pinned, it forces reuse of f's own
// pinned block when it has one; otherwise it returns -1, which the
// caller surfaces as errors.TooManyOpenFiles.
func (p *Pool) chooseVictim(f *File) int {
	for _, idx := range p.age {
		s := &p.slots[idx]
		if s.owner == noOwner {
			return idx
		}
		owner := p.files[s.owner]
		if owner == nil || owner.curBlock != idx {
			log.Debug.Printf("evicting slot %d (file %d, block %d) for file %d", idx, s.owner, s.blockIndex, f.id)
			return idx
		}
	}
	if f.curBlock != -1 {
		return f.curBlock
	}
	log.Debug.Printf("pool exhausted: all %d slots pinned, none belong to file %d", len(p.slots), f.id)
	return -1
}
