package rpeg

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/danielediazp/rpeg/internal/array2"
	"github.com/danielediazp/rpeg/internal/bitpack"
	"github.com/danielediazp/rpeg/internal/blocktransform"
	"github.com/danielediazp/rpeg/internal/colorspace"
	"github.com/danielediazp/rpeg/internal/quantize"
)

// Packed word layout (MSB -> LSB), a fixed contract, not tunable.
const (
	fieldAWidth, fieldAOffset         = 9, 23
	fieldBWidth, fieldBOffset         = 5, 18
	fieldCWidth, fieldCOffset         = 5, 13
	fieldDWidth, fieldDOffset         = 5, 8
	fieldAvgPbWidth, fieldAvgPbOffset = 4, 4
	fieldAvgPrWidth, fieldAvgPrOffset = 4, 0

	decompressedDenom = 255
)

// Compress trims img to even dimensions, runs it through the pipeline
// tile by tile in row-major order, and writes the header plus packed
// words to w.
func Compress(w io.Writer, img *Image) error {
	trimmed := img.Pixels.TrimToEven()
	width, height := trimmed.Width(), trimmed.Height()

	if _, err := io.WriteString(w, streamMagic); err != nil {
		return fmt.Errorf("writing header: %w: %v", ErrIOError, err)
	}
	if _, err := fmt.Fprintf(w, "%d %d\n", width, height); err != nil {
		return fmt.Errorf("writing dimensions: %w: %v", ErrIOError, err)
	}

	ypbpr := array2.Map(trimmed, func(p colorspace.RGB8) colorspace.YPbPr {
		return colorspace.RGBToYPbPr(p, img.Denom)
	})

	bw := bufio.NewWriter(w)
	var wordBuf [4]byte
	for tr := 0; tr < height/2; tr++ {
		for tc := 0; tc < width/2; tc++ {
			blk := readTile(ypbpr, tc, tr)
			coeffs := blocktransform.Forward(blk)
			word, err := packWord(coeffs)
			if err != nil {
				return fmt.Errorf("packing tile (%d,%d): %w", tc, tr, err)
			}
			binary.BigEndian.PutUint32(wordBuf[:], word)
			if _, err := bw.Write(wordBuf[:]); err != nil {
				return fmt.Errorf("writing tile (%d,%d): %w: %v", tc, tr, ErrIOError, err)
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing output: %w: %v", ErrIOError, err)
	}
	return nil
}

// Decompress parses the header, reads the packed words, and reconstructs
// an Image with Denom 255: the decompressor always emits denom=255
// regardless of the source image's original denominator.
func Decompress(r io.Reader) (*Image, error) {
	br := bufio.NewReader(r)

	magic := make([]byte, len(streamMagic))
	if _, err := io.ReadFull(br, magic); err != nil {
		return nil, fmt.Errorf("reading magic: %w", ErrBadHeader)
	}
	if string(magic) != streamMagic {
		return nil, fmt.Errorf("%w: magic line mismatch", ErrBadHeader)
	}

	dimLine, err := br.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("reading dimension line: %w", ErrBadHeader)
	}
	width, height, err := parseDimensions(dimLine)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadHeader, err)
	}
	if width%2 != 0 || height%2 != 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d are not both even", ErrBadHeader, width, height)
	}

	payload, err := io.ReadAll(br)
	if err != nil {
		return nil, fmt.Errorf("reading payload: %w: %v", ErrIOError, err)
	}
	if len(payload)%4 != 0 {
		return nil, fmt.Errorf("%w: payload length %d is not a multiple of 4", ErrFormatError, len(payload))
	}
	wantWords := (width / 2) * (height / 2)
	if len(payload) != wantWords*4 {
		return nil, fmt.Errorf("%w: got %d words, want %d for %dx%d", ErrFormatError, len(payload)/4, wantWords, width, height)
	}

	out := array2.New(width, height, colorspace.RGB8{})
	idx := 0
	for tr := 0; tr < height/2; tr++ {
		for tc := 0; tc < width/2; tc++ {
			word := binary.BigEndian.Uint32(payload[idx*4 : idx*4+4])
			idx++
			coeffs := unpackWord(word)
			blk := blocktransform.Inverse(coeffs)
			writeTile(out, tc, tr, blk)
		}
	}

	return &Image{Pixels: out, Denom: decompressedDenom}, nil
}

func readTile(ypbpr *array2.Array2[colorspace.YPbPr], tc, tr int) blocktransform.Block2x2 {
	y1, _ := ypbpr.Get(2*tc, 2*tr)
	y2, _ := ypbpr.Get(2*tc+1, 2*tr)
	y3, _ := ypbpr.Get(2*tc, 2*tr+1)
	y4, _ := ypbpr.Get(2*tc+1, 2*tr+1)
	return blocktransform.Block2x2{Y1: y1, Y2: y2, Y3: y3, Y4: y4}
}

func writeTile(out *array2.Array2[colorspace.RGB8], tc, tr int, blk blocktransform.Block2x2) {
	out.Set(2*tc, 2*tr, colorspace.YPbPrToRGB(blk.Y1, decompressedDenom))
	out.Set(2*tc+1, 2*tr, colorspace.YPbPrToRGB(blk.Y2, decompressedDenom))
	out.Set(2*tc, 2*tr+1, colorspace.YPbPrToRGB(blk.Y3, decompressedDenom))
	out.Set(2*tc+1, 2*tr+1, colorspace.YPbPrToRGB(blk.Y4, decompressedDenom))
}

func packWord(c blocktransform.Coeffs) (uint32, error) {
	var word uint64
	var err error
	if word, err = bitpack.PutUnsigned(word, fieldAWidth, fieldAOffset, quantize.EncodeA(c.A)); err != nil {
		return 0, err
	}
	if word, err = bitpack.PutSigned(word, fieldBWidth, fieldBOffset, quantize.EncodeBCD(c.B)); err != nil {
		return 0, err
	}
	if word, err = bitpack.PutSigned(word, fieldCWidth, fieldCOffset, quantize.EncodeBCD(c.C)); err != nil {
		return 0, err
	}
	if word, err = bitpack.PutSigned(word, fieldDWidth, fieldDOffset, quantize.EncodeBCD(c.D)); err != nil {
		return 0, err
	}
	if word, err = bitpack.PutUnsigned(word, fieldAvgPbWidth, fieldAvgPbOffset, quantize.EncodeChroma(c.AvgPb)); err != nil {
		return 0, err
	}
	if word, err = bitpack.PutUnsigned(word, fieldAvgPrWidth, fieldAvgPrOffset, quantize.EncodeChroma(c.AvgPr)); err != nil {
		return 0, err
	}
	return uint32(word), nil
}

func unpackWord(word uint32) blocktransform.Coeffs {
	w := uint64(word)
	return blocktransform.Coeffs{
		A:     quantize.DecodeA(bitpack.GetUnsigned(w, fieldAWidth, fieldAOffset)),
		B:     quantize.DecodeBCD(bitpack.GetSigned(w, fieldBWidth, fieldBOffset)),
		C:     quantize.DecodeBCD(bitpack.GetSigned(w, fieldCWidth, fieldCOffset)),
		D:     quantize.DecodeBCD(bitpack.GetSigned(w, fieldDWidth, fieldDOffset)),
		AvgPb: quantize.DecodeChroma(bitpack.GetUnsigned(w, fieldAvgPbWidth, fieldAvgPbOffset)),
		AvgPr: quantize.DecodeChroma(bitpack.GetUnsigned(w, fieldAvgPrWidth, fieldAvgPrOffset)),
	}
}

// parseDimensions parses a "<width> <height>\n" line, the second line of
// the stream header.
func parseDimensions(line string) (width, height int, err error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("dimension line %q: want two fields", line)
	}
	width, err = strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("dimension line %q: %v", line, err)
	}
	height, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("dimension line %q: %v", line, err)
	}
	if width < 0 || height < 0 {
		return 0, 0, fmt.Errorf("dimension line %q: negative dimension", line)
	}
	return width, height, nil
}

// MeanAbsoluteError returns the mean absolute per-channel difference
// between two equally-sized images, used by the round-trip tolerance
// tests and exposed as a small quality estimate for callers who hold
// both the original and the decoded image.
func MeanAbsoluteError(a, b *Image) (float64, error) {
	if a.Width() != b.Width() || a.Height() != b.Height() {
		return 0, fmt.Errorf("%w: dimensions differ (%dx%d vs %dx%d)",
			ErrFormatError, a.Width(), a.Height(), b.Width(), b.Height())
	}
	var sum float64
	var n int
	a.Pixels.IterRowMajor(func(p array2.Pos, pa colorspace.RGB8) bool {
		pb, _ := b.Pixels.Get(p.Col, p.Row)
		sum += absDiff(pa.R, pb.R) + absDiff(pa.G, pb.G) + absDiff(pa.B, pb.B)
		n += 3
		return true
	})
	if n == 0 {
		return 0, nil
	}
	return sum / float64(n), nil
}

func absDiff(a, b uint8) float64 {
	if a > b {
		return float64(a - b)
	}
	return float64(b - a)
}
