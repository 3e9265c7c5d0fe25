// Package convert provides the default numeric format converter used by
// the block cache's typed array helpers: big-endian byte swaps for
// 2/4/8-byte elements, and a legacy VAX/Alpha GFLOAT scale step for
// 4- and 8-byte reals on platforms that still produce that format.
package convert

import (
	"encoding/binary"
	"math"
)

// IEEE is the default Converter: big-endian byte swaps, and a no-op
// scale step since IEEE 754 floats need no reformatting.
type IEEE struct{}

func (IEEE) Swap2(buf []byte) { swapN(buf, 2) }
func (IEEE) Swap4(buf []byte) { swapN(buf, 4) }
func (IEEE) Swap8(buf []byte) { swapN(buf, 8) }

func (IEEE) ScaleR4Write([]byte) {}
func (IEEE) ScaleR4Read([]byte)  {}
func (IEEE) ScaleR8Write([]byte) {}
func (IEEE) ScaleR8Read([]byte)  {}

func swapN(buf []byte, n int) {
	for off := 0; off+n <= len(buf); off += n {
		lo, hi := off, off+n-1
		for lo < hi {
			buf[lo], buf[hi] = buf[hi], buf[lo]
			lo++
			hi--
		}
	}
}

// VAXGFloat is a Converter for files written by legacy VAX/Alpha systems,
// whose native floating point format differs from IEEE 754: an extra
// power-of-4 scale factor is folded into the exponent, and byte order
// within each element runs opposite to IEEE big-endian. Writers scale by
// 0.25 before swapping, leaving NaN, zero and denormal values unscaled;
// readers swap then scale back up by 4.
type VAXGFloat struct{}

func (VAXGFloat) Swap2(buf []byte) { swapN(buf, 2) }
func (VAXGFloat) Swap4(buf []byte) { swapN(buf, 4) }
func (VAXGFloat) Swap8(buf []byte) { swapN(buf, 8) }

func (VAXGFloat) ScaleR4Write(buf []byte) { scaleFloat32Guarded(buf, 0.25) }
func (VAXGFloat) ScaleR4Read(buf []byte)  { scaleFloat32(buf, 4.0) }
func (VAXGFloat) ScaleR8Write(buf []byte) { scaleFloat64Guarded(buf, 0.25) }
func (VAXGFloat) ScaleR8Read(buf []byte)  { scaleFloat64(buf, 4.0) }

func scaleFloat32(buf []byte, factor float32) {
	for off := 0; off+4 <= len(buf); off += 4 {
		v := math.Float32frombits(binary.BigEndian.Uint32(buf[off : off+4]))
		binary.BigEndian.PutUint32(buf[off:off+4], math.Float32bits(v*factor))
	}
}

func scaleFloat32Guarded(buf []byte, factor float32) {
	for off := 0; off+4 <= len(buf); off += 4 {
		bits := binary.BigEndian.Uint32(buf[off : off+4])
		v := math.Float32frombits(bits)
		// A zero exponent field marks both zero and denormal values.
		if math.IsNaN(float64(v)) || bits>>23&0xFF == 0 {
			continue
		}
		binary.BigEndian.PutUint32(buf[off:off+4], math.Float32bits(v*factor))
	}
}

func scaleFloat64(buf []byte, factor float64) {
	for off := 0; off+8 <= len(buf); off += 8 {
		v := math.Float64frombits(binary.BigEndian.Uint64(buf[off : off+8]))
		binary.BigEndian.PutUint64(buf[off:off+8], math.Float64bits(v*factor))
	}
}

func scaleFloat64Guarded(buf []byte, factor float64) {
	for off := 0; off+8 <= len(buf); off += 8 {
		bits := binary.BigEndian.Uint64(buf[off : off+8])
		v := math.Float64frombits(bits)
		// A zero exponent field marks both zero and denormal values.
		if math.IsNaN(v) || bits>>52&0x7FF == 0 {
			continue
		}
		binary.BigEndian.PutUint64(buf[off:off+8], math.Float64bits(v*factor))
	}
}
