package rpeg

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"strconv"
	"strings"

	// Blank-imported for their format-registration side effect: with
	// the stdlib's PNG, JPEG and GIF decoders and BMP registered,
	// ImageFromReader accepts any of those formats, not only PPM.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"

	"github.com/danielediazp/rpeg/internal/array2"
	"github.com/danielediazp/rpeg/internal/colorspace"
)

// PPM parsing supports both the plain ASCII (P3) and binary (P6)
// flavors with 8-bit samples; serialization always writes P6.

// ReadPPM reads a plain 8-bit RGB PPM (P3 or P6) from r.
func ReadPPM(r io.Reader) (*Image, error) {
	br := bufio.NewReader(r)

	magic, err := readToken(br)
	if err != nil {
		return nil, fmt.Errorf("reading PPM magic: %w", ErrFormatError)
	}
	if magic != "P3" && magic != "P6" {
		return nil, fmt.Errorf("%w: unsupported PPM magic %q", ErrFormatError, magic)
	}

	width, err := readIntToken(br)
	if err != nil {
		return nil, fmt.Errorf("reading PPM width: %w", ErrFormatError)
	}
	height, err := readIntToken(br)
	if err != nil {
		return nil, fmt.Errorf("reading PPM height: %w", ErrFormatError)
	}
	denom, err := readIntToken(br)
	if err != nil {
		return nil, fmt.Errorf("reading PPM max-value: %w", ErrFormatError)
	}
	if denom <= 0 || denom > 255 {
		return nil, fmt.Errorf("%w: PPM max-value %d out of [1,255]", ErrFormatError, denom)
	}
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: negative PPM dimensions", ErrFormatError)
	}

	cells := make([]colorspace.RGB8, width*height)
	if magic == "P6" {
		// Exactly one whitespace byte separates the header from the
		// binary sample data; readToken already consumed it when it
		// ended the max-value token.
		buf := make([]byte, 3*width*height)
		if _, err := io.ReadFull(br, buf); err != nil {
			return nil, fmt.Errorf("reading PPM samples: %w", ErrFormatError)
		}
		for i := range cells {
			cells[i] = colorspace.RGB8{R: buf[3*i], G: buf[3*i+1], B: buf[3*i+2]}
		}
	} else {
		for i := range cells {
			r, err := readIntToken(br)
			if err != nil {
				return nil, fmt.Errorf("reading PPM sample %d: %w", i, ErrFormatError)
			}
			g, err := readIntToken(br)
			if err != nil {
				return nil, fmt.Errorf("reading PPM sample %d: %w", i, ErrFormatError)
			}
			b, err := readIntToken(br)
			if err != nil {
				return nil, fmt.Errorf("reading PPM sample %d: %w", i, ErrFormatError)
			}
			cells[i] = colorspace.RGB8{R: uint8(r), G: uint8(g), B: uint8(b)}
		}
	}

	arr, err := array2.FromRowMajor(width, height, cells)
	if err != nil {
		return nil, fmt.Errorf("building PPM raster: %w", err)
	}
	return &Image{Pixels: arr, Denom: denom}, nil
}

// WritePPM writes img as a binary (P6) PPM to w.
func WritePPM(w io.Writer, img *Image) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n%d\n", img.Width(), img.Height(), img.Denom); err != nil {
		return fmt.Errorf("writing PPM header: %w: %v", ErrIOError, err)
	}
	buf := make([]byte, 3*img.Width()*img.Height())
	img.Pixels.IterRowMajor(func(p array2.Pos, v colorspace.RGB8) bool {
		i := (p.Row*img.Width() + p.Col) * 3
		buf[i], buf[i+1], buf[i+2] = v.R, v.G, v.B
		return true
	})
	if _, err := bw.Write(buf); err != nil {
		return fmt.Errorf("writing PPM samples: %w: %v", ErrIOError, err)
	}
	return bw.Flush()
}

// ImageFromReader decodes any image.Image-registered format (PNG, JPEG,
// GIF, BMP) from r and converts it into this package's native Image at
// denom=255. Unlike ReadPPM, it does not accept PPM: PPM has no
// image.RegisterFormat entry in the standard library, so PPM input
// always goes through ReadPPM.
func ImageFromReader(r io.Reader) (*Image, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormatError, err)
	}
	return imageToRPEG(src), nil
}

func imageToRPEG(src image.Image) *Image {
	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	cells := make([]colorspace.RGB8, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := src.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			cells[y*width+x] = colorspace.RGB8{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
		}
	}
	arr, _ := array2.FromRowMajor(width, height, cells)
	return &Image{Pixels: arr, Denom: 255}
}

// ToImage converts img to a stdlib image.Image (an *image.RGBA), the
// other direction of the bridge ImageFromReader provides. image.RGBA is
// always full 8-bit range, so channels are rescaled to 255 first when
// Denom != 255.
func (img *Image) ToImage() image.Image {
	width, height := img.Width(), img.Height()
	out := image.NewRGBA(image.Rect(0, 0, width, height))
	denom := img.Denom
	img.Pixels.IterRowMajor(func(p array2.Pos, v colorspace.RGB8) bool {
		r, g, b := v.R, v.G, v.B
		if denom != 255 && denom > 0 {
			r = colorspace.Clamp8(int(uint32(r)*255/uint32(denom)), 255)
			g = colorspace.Clamp8(int(uint32(g)*255/uint32(denom)), 255)
			b = colorspace.Clamp8(int(uint32(b)*255/uint32(denom)), 255)
		}
		out.Set(p.Col, p.Row, color.RGBA{R: r, G: g, B: b, A: 255})
		return true
	})
	return out
}

// readToken reads whitespace-delimited tokens, skipping PPM "#" comments
// (a comment runs to end of line), matching the PPM header grammar.
func readToken(r *bufio.Reader) (string, error) {
	var sb strings.Builder
	for {
		b, err := r.ReadByte()
		if err != nil {
			if sb.Len() > 0 {
				return sb.String(), nil
			}
			return "", err
		}
		if b == '#' {
			for {
				c, err := r.ReadByte()
				if err != nil || c == '\n' {
					break
				}
			}
			continue
		}
		if isPPMSpace(b) {
			if sb.Len() > 0 {
				return sb.String(), nil
			}
			continue
		}
		sb.WriteByte(b)
	}
}

func readIntToken(r *bufio.Reader) (int, error) {
	tok, err := readToken(r)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(tok)
}

func isPPMSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
