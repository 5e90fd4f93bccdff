package quantize

import "testing"

func TestEncodeASaturates(t *testing.T) {
	tests := []struct {
		in   float64
		want uint64
	}{
		{-1.0, 0},
		{0.0, 0},
		{1.0, 511},
		{2.0, 511},
		{0.5, 256}, // round(0.5*511) = round(255.5) = 256
	}
	for _, tt := range tests {
		if got := EncodeA(tt.in); got != tt.want {
			t.Errorf("EncodeA(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestAReflectsSmallAndLarge(t *testing.T) {
	if got := DecodeA(EncodeA(0)); got != 0 {
		t.Errorf("round trip of 0 = %v, want 0", got)
	}
	if got := DecodeA(EncodeA(1)); got < 0.99 || got > 1.0 {
		t.Errorf("round trip of 1 = %v, want ~1", got)
	}
}

func TestEncodeBCDClampsThenScales(t *testing.T) {
	tests := []struct {
		in   float64
		want int64
	}{
		{0.0, 0},
		{0.3, 15},
		{-0.3, -15},
		{1.0, 15},  // clamped to 0.3 before scaling
		{-1.0, -15}, // clamped to -0.3 before scaling
		{0.15, 8},  // round(0.15 * 50) = round(7.5) = 8
	}
	for _, tt := range tests {
		if got := EncodeBCD(tt.in); got != tt.want {
			t.Errorf("EncodeBCD(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestChromaTableMutualInverse(t *testing.T) {
	for i := uint64(0); i < chromaLevels; i++ {
		v := DecodeChroma(i)
		if got := EncodeChroma(v); got != i {
			t.Errorf("EncodeChroma(DecodeChroma(%d)) = %d, want %d", i, got, i)
		}
	}
}

func TestChromaTableMonotone(t *testing.T) {
	prev := DecodeChroma(0)
	for i := uint64(1); i < chromaLevels; i++ {
		v := DecodeChroma(i)
		if v <= prev {
			t.Fatalf("chroma table not monotone at index %d: %v <= %v", i, v, prev)
		}
		prev = v
	}
}

func TestChromaTableSpansRange(t *testing.T) {
	lo := DecodeChroma(0)
	hi := DecodeChroma(chromaLevels - 1)
	if lo < -0.5 || lo > 0 {
		t.Errorf("lowest chroma bin = %v, want in [-0.5, 0]", lo)
	}
	if hi > 0.5 || hi < 0 {
		t.Errorf("highest chroma bin = %v, want in [0, 0.5]", hi)
	}
}

func TestEncodeChromaSaturates(t *testing.T) {
	if got := EncodeChroma(-10); got != 0 {
		t.Errorf("EncodeChroma(-10) = %d, want 0", got)
	}
	if got := EncodeChroma(10); got != chromaLevels-1 {
		t.Errorf("EncodeChroma(10) = %d, want %d", got, chromaLevels-1)
	}
}
