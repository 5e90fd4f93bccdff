// Package quantize maps the block transform's float coefficients to the
// fixed-width integer codeword fields and back.
//
// Field widths are a fixed contract, not tunables:
//
//	a              9-bit unsigned
//	b, c, d        5-bit signed each
//	avgPb, avgPr   4-bit unsigned indices into the chroma-of-15 table
//
// Every forward function saturates out-of-range input instead of
// erroring: saturation is the defined lossy behavior, not a bug.
// Decoding cannot overflow because BitPack enforces field widths
// upstream of this package.
package quantize

import "math"

// Field widths, duplicated here from codec.go's packed-word layout
// because these are the quantizer's own domain constants, used to
// compute saturation bounds; the bit offsets are defined only in
// codec.go.
const (
	aWidth   = 9
	bcdWidth = 5

	aMax   = 1<<aWidth - 1       // 511
	bcdMax = 1<<(bcdWidth-1) - 1 // 15
	bcdMin = -(1 << (bcdWidth - 1)) + 1 // -15 (widths allow -16, but the
	// clamp-then-scale range only ever produces [-15,15])

	chromaClamp = 0.3
	chromaScale = float64(bcdMax) / chromaClamp // 15/0.3
)

// EncodeA saturating-quantizes a (expected in [0,1]) into [0, 511].
func EncodeA(a float64) uint64 {
	v := int(math.Round(a * aMax))
	if v < 0 {
		v = 0
	}
	if v > aMax {
		v = aMax
	}
	return uint64(v)
}

// DecodeA recovers the approximate float value of a 9-bit a field.
func DecodeA(code uint64) float64 {
	return float64(code) / aMax
}

// EncodeBCD saturating-quantizes one of b, c, d: clamp to [-0.3, 0.3],
// then round(value * (15/0.3)) into [-15, 15].
func EncodeBCD(v float64) int64 {
	if v < -chromaClamp {
		v = -chromaClamp
	}
	if v > chromaClamp {
		v = chromaClamp
	}
	code := int64(math.Round(v * chromaScale))
	if code < bcdMin {
		code = bcdMin
	}
	if code > bcdMax {
		code = bcdMax
	}
	return code
}

// DecodeBCD recovers the approximate float value of a signed b/c/d field.
func DecodeBCD(code int64) float64 {
	return float64(code) / chromaScale
}

const chromaLevels = 16

// chromaOfIndexTable and indexOfChroma are generated from the same procedure
// (equal-width bins spanning [-0.5, 0.5], one per index, value at each
// bin's midpoint) so they are mutual inverses for every index by
// construction; init() checks that invariant at startup rather than
// merely asserting it in a comment.
var chromaOfIndexTable [chromaLevels]float64

func init() {
	for i := 0; i < chromaLevels; i++ {
		chromaOfIndexTable[i] = chromaBinMidpoint(i)
	}
	for i := 0; i < chromaLevels; i++ {
		if indexOfChroma(chromaOfIndexTable[i]) != uint64(i) {
			panic("quantize: chroma table is not self-inverse")
		}
	}
}

func chromaBinMidpoint(i int) float64 {
	return -0.5 + (float64(i)+0.5)/chromaLevels
}

// EncodeChroma quantizes avgPb or avgPr (expected in [-0.5, 0.5]) into a
// 4-bit unsigned index via the chroma-of-15 table, saturating out-of-range
// input to the nearest edge index.
func EncodeChroma(v float64) uint64 {
	return indexOfChroma(v)
}

// DecodeChroma recovers the representative chroma value for a 4-bit
// index.
func DecodeChroma(idx uint64) float64 {
	if idx >= chromaLevels {
		idx = chromaLevels - 1
	}
	return chromaOfIndexTable[idx]
}

// indexOfChroma maps a chroma value to its bin index. The 1e-9 epsilon
// absorbs floating-point rounding at bin boundaries so that
// indexOfChroma(chromaBinMidpoint(i)) == i exactly for every i.
func indexOfChroma(v float64) uint64 {
	idx := int(math.Floor((v+0.5)*chromaLevels + 1e-9))
	if idx < 0 {
		idx = 0
	}
	if idx > chromaLevels-1 {
		idx = chromaLevels - 1
	}
	return uint64(idx)
}
