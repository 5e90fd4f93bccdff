// Package colorspace converts between 8-bit integer RGB and the
// component-video Y/Pb/Pr float triple used by the block transform.
//
// The matrix coefficients below are the standard Y/Pb/Pr coefficients
// (the same luma weights ITU-R BT.601 uses); they are contract, not
// tunable.
package colorspace

import "math"

// RGB8 is an 8-bit-per-channel pixel. The type does not clamp its
// channels to [0, denom] when it is built; FromFloat and YPbPrToRGB
// clamp the values they produce.
type RGB8 struct {
	R, G, B uint8
}

// Clamp8 clamps v into [0, denom] and returns it as a uint8. denom must
// be <= 255.
func Clamp8(v int, denom int) uint8 {
	if v < 0 {
		return 0
	}
	if v > denom {
		return uint8(denom)
	}
	return uint8(v)
}

// Float is an RGB pixel with channels in [0.0, 1.0].
type Float struct {
	R, G, B float64
}

// ToFloat converts an RGB8 pixel to Float by dividing each channel by
// denom.
func ToFloat(p RGB8, denom int) Float {
	d := float64(denom)
	return Float{
		R: float64(p.R) / d,
		G: float64(p.G) / d,
		B: float64(p.B) / d,
	}
}

// FromFloat converts a Float pixel back to RGB8, rounding to nearest and
// clamping to [0, denom].
func FromFloat(p Float, denom int) RGB8 {
	d := float64(denom)
	return RGB8{
		R: Clamp8(int(math.Round(p.R*d)), denom),
		G: Clamp8(int(math.Round(p.G*d)), denom),
		B: Clamp8(int(math.Round(p.B*d)), denom),
	}
}

// YPbPr is a component-video pixel: Y in [0,1], Pb and Pr in [-0.5,0.5].
type YPbPr struct {
	Y, Pb, Pr float64
}

// RGBToYPbPr applies the forward component-video matrix to an RGB8
// pixel, first dividing by denom to map it into [0,1].
func RGBToYPbPr(p RGB8, denom int) YPbPr {
	f := ToFloat(p, denom)
	return YPbPr{
		Y:  0.299*f.R + 0.587*f.G + 0.114*f.B,
		Pb: -0.168736*f.R - 0.331264*f.G + 0.5*f.B,
		Pr: 0.5*f.R - 0.418688*f.G - 0.081312*f.B,
	}
}

// YPbPrToRGB applies the inverse component-video matrix and converts
// back to RGB8 at the given denom. Because quantization can push values
// slightly outside the unit cube, the result is always clamped to
// [0, denom]; this clamp is mandatory, not optional.
func YPbPrToRGB(p YPbPr, denom int) RGB8 {
	f := Float{
		R: p.Y + 1.402*p.Pr,
		G: p.Y - 0.344136*p.Pb - 0.714136*p.Pr,
		B: p.Y + 1.772*p.Pb,
	}
	return FromFloat(f, denom)
}
