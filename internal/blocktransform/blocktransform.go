// Package blocktransform implements the forward and inverse 2x2 block
// transform: chroma averaging plus a 4-point cosine-like transform of
// the luma tile into (a,b,c,d) coefficients.
//
// This is the lossy step of the codec: chroma is averaged across the
// 2x2 tile (deliberate loss on color), and b,c,d absorb the luma
// quantization (deliberate loss on detail). a carries the tile's mean
// luma and survives quantization with the least loss.
package blocktransform

import "github.com/danielediazp/rpeg/internal/colorspace"

// Block2x2 holds the four samples of a tile, indexed (0,0),(0,1),(1,0),(1,1).
type Block2x2 struct {
	Y1, Y2, Y3, Y4 colorspace.YPbPr // (0,0) (0,1) (1,0) (1,1)
}

// Coeffs is the per-tile coefficient set produced by Forward and
// consumed by Inverse.
type Coeffs struct {
	A, B, C, D     float64 // luma coefficients
	AvgPb, AvgPr float64 // averaged chroma
}

// Forward computes the tile's averaged chroma and four luma coefficients
// from its four Y/Pb/Pr samples.
func Forward(blk Block2x2) Coeffs {
	y1, y2, y3, y4 := blk.Y1.Y, blk.Y2.Y, blk.Y3.Y, blk.Y4.Y
	return Coeffs{
		A: (y4 + y3 + y2 + y1) / 4,
		B: (y4 + y3 - y2 - y1) / 4,
		C: (y4 - y3 + y2 - y1) / 4,
		D: (y4 - y3 - y2 + y1) / 4,
		AvgPb: (blk.Y1.Pb + blk.Y2.Pb + blk.Y3.Pb + blk.Y4.Pb) / 4,
		AvgPr: (blk.Y1.Pr + blk.Y2.Pr + blk.Y3.Pr + blk.Y4.Pr) / 4,
	}
}

// Inverse reconstructs a Block2x2 from its coefficients. This is the
// exact algebraic inverse of Forward when b,c,d carry no quantization
// error; every pixel in the reconstructed tile shares the same pb/pr
// (chroma was only ever stored once per tile).
func Inverse(c Coeffs) Block2x2 {
	y1 := c.A - c.B - c.C + c.D
	y2 := c.A - c.B + c.C - c.D
	y3 := c.A + c.B - c.C - c.D
	y4 := c.A + c.B + c.C + c.D
	return Block2x2{
		Y1: colorspace.YPbPr{Y: y1, Pb: c.AvgPb, Pr: c.AvgPr},
		Y2: colorspace.YPbPr{Y: y2, Pb: c.AvgPb, Pr: c.AvgPr},
		Y3: colorspace.YPbPr{Y: y3, Pb: c.AvgPb, Pr: c.AvgPr},
		Y4: colorspace.YPbPr{Y: y4, Pb: c.AvgPb, Pr: c.AvgPr},
	}
}
