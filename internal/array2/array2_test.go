package array2

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewAndGet(t *testing.T) {
	a := New(3, 2, 7)
	if a.Width() != 3 || a.Height() != 2 {
		t.Fatalf("dims = (%d,%d), want (3,2)", a.Width(), a.Height())
	}
	v, err := a.Get(2, 1)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if v != 7 {
		t.Errorf("Get(2,1) = %d, want 7", v)
	}
}

func TestFromRowMajorShapeMismatch(t *testing.T) {
	_, err := FromRowMajor(2, 2, []int{1, 2, 3})
	if !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("error = %v, want ErrShapeMismatch", err)
	}
}

func TestGetSetOutOfBounds(t *testing.T) {
	a := New(2, 2, 0)
	if _, err := a.Get(-1, 0); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Errorf("Get(-1,0) error = %v, want ErrIndexOutOfBounds", err)
	}
	if _, err := a.Get(2, 0); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Errorf("Get(2,0) error = %v, want ErrIndexOutOfBounds", err)
	}
	if err := a.Set(0, 2, 9); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Errorf("Set(0,2) error = %v, want ErrIndexOutOfBounds", err)
	}
}

func TestIterRowMajorOrder(t *testing.T) {
	a, err := FromRowMajor(2, 2, []int{1, 2, 3, 4})
	if err != nil {
		t.Fatal(err)
	}
	var got []int
	a.IterRowMajor(func(p Pos, v int) bool {
		got = append(got, v)
		return true
	})
	want := []int{1, 2, 3, 4}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("iteration order mismatch (-want +got):\n%s", diff)
	}
}

func TestMapPreservesDimensions(t *testing.T) {
	a := New(4, 3, 2)
	b := Map(a, func(v int) int { return v * 10 })
	if b.Width() != a.Width() || b.Height() != a.Height() {
		t.Errorf("Map changed dimensions: (%d,%d) vs (%d,%d)", b.Width(), b.Height(), a.Width(), a.Height())
	}
	v, _ := b.Get(0, 0)
	if v != 20 {
		t.Errorf("Map(2) = %d, want 20", v)
	}
}

func TestTrimToEven(t *testing.T) {
	tests := []struct {
		name          string
		w, h          int
		wantW, wantH  int
	}{
		{"both odd", 3, 5, 2, 4},
		{"already even", 4, 4, 4, 4},
		{"odd width only", 5, 4, 4, 4},
		{"odd height only", 4, 5, 4, 4},
		{"degenerate 1x1", 1, 1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New(tt.w, tt.h, 1)
			trimmed := a.TrimToEven()
			if trimmed.Width() != tt.wantW || trimmed.Height() != tt.wantH {
				t.Fatalf("TrimToEven() dims = (%d,%d), want (%d,%d)",
					trimmed.Width(), trimmed.Height(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestTrimToEvenIdempotent(t *testing.T) {
	a := New(7, 9, 3)
	once := a.TrimToEven()
	twice := once.TrimToEven()
	if twice.Width() != once.Width() || twice.Height() != once.Height() {
		t.Fatalf("trim not idempotent in dims")
	}
	if diff := cmp.Diff(once.cells, twice.cells); diff != "" {
		t.Errorf("trim not idempotent in contents (-once +twice):\n%s", diff)
	}
}

func TestTrimToEvenPreservesCells(t *testing.T) {
	cells := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12} // 4x3
	a, err := FromRowMajor(4, 3, cells)
	if err != nil {
		t.Fatal(err)
	}
	trimmed := a.TrimToEven() // -> 4x2
	for row := 0; row < trimmed.Height(); row++ {
		for col := 0; col < trimmed.Width(); col++ {
			want, _ := a.Get(col, row)
			got, _ := trimmed.Get(col, row)
			if got != want {
				t.Errorf("cell (%d,%d) = %d, want %d", col, row, got, want)
			}
		}
	}
}
