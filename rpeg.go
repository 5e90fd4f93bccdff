// Package rpeg implements a small lossy image codec modeled on the
// pedagogical "rpeg"/"arith" pipeline: RGB -> float RGB -> Y/Pb/Pr ->
// 2x2 block-averaged chroma and cosine-transformed luma -> quantized
// fixed-width codeword -> packed 32-bit word -> big-endian byte stream,
// and back.
//
// Basic usage for compressing:
//
//	img, err := rpeg.ReadPPM(file)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = rpeg.Compress(out, img)
//
// Basic usage for decompressing:
//
//	img, err := rpeg.Decompress(in)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = rpeg.WritePPM(out, img)
package rpeg

import (
	"github.com/danielediazp/rpeg/internal/array2"
	"github.com/danielediazp/rpeg/internal/colorspace"
)

// Image is a full-color raster plus the denominator (PPM max-value) its
// samples are scaled against. width and height are not required to be
// even; Compress trims to even dimensions internally.
type Image struct {
	Pixels *array2.Array2[colorspace.RGB8]
	Denom  int
}

// Width returns the image's width in pixels.
func (img *Image) Width() int { return img.Pixels.Width() }

// Height returns the image's height in pixels.
func (img *Image) Height() int { return img.Pixels.Height() }

// streamMagic is the fixed ASCII header every compressed stream begins
// with: an exact 33-byte literal, not a prefix to be fuzzy-matched.
const streamMagic = "COMP40 Compressed image format 2\n"
