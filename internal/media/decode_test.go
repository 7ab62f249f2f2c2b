package media

import "testing"

func TestFullScaleRejectsBadDepth(t *testing.T) {
	for _, bits := range []int{0, -8, 33} {
		if _, err := fullScale(bits); err == nil {
			t.Fatalf("fullScale(%d): expected error", bits)
		}
	}
	for bits, want := range map[int]float64{8: 128, 16: 32768, 24: 8388608, 32: 2147483648} {
		got, err := fullScale(bits)
		if err != nil {
			t.Fatalf("fullScale(%d): %v", bits, err)
		}
		if got != want {
			t.Fatalf("fullScale(%d) = %v, want %v", bits, got, want)
		}
	}
}
