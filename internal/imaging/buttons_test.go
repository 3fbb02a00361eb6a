package imaging

import (
	"image"
	"testing"
)

// binRegion builds a binarized region: white background with the given
// pixels set to black, the way printed text comes out of Binarize.
func binRegion(w, h int, black ...[2]int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	for _, p := range black {
		img.Pix[p[1]*w+p[0]] = 0
	}
	return img
}

func TestIsolateButtons_KeepsInteriorGlyphs(t *testing.T) {
	// A black ring along the border (the button outline) plus a small
	// interior blob (a glyph stroke).
	var black [][2]int
	for x := 0; x < 10; x++ {
		black = append(black, [2]int{x, 0}, [2]int{x, 9})
	}
	for y := 0; y < 10; y++ {
		black = append(black, [2]int{0, y}, [2]int{9, y})
	}
	black = append(black, [2]int{4, 4}, [2]int{4, 5})

	out := IsolateButtons(binRegion(10, 10, black...))

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			want := uint8(0)
			if x == 4 && (y == 4 || y == 5) {
				want = 255
			}
			if got := out.GrayAt(x, y).Y; got != want {
				t.Errorf("pixel (%d,%d) = %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestIsolateButtons_AllWhiteRegion(t *testing.T) {
	out := IsolateButtons(binRegion(6, 6))
	for i, v := range out.Pix {
		if v != 0 {
			t.Fatalf("pixel %d = %d in the inversion of an all-white region", i, v)
		}
	}
}

func TestIsolateButtons_DiagonalDoesNotConnect(t *testing.T) {
	// (0,0) touches the border; (1,1) is only diagonally adjacent, so under
	// 4-connectivity it is a separate component and survives.
	out := IsolateButtons(binRegion(8, 8, [2]int{0, 0}, [2]int{1, 1}))

	if out.GrayAt(0, 0).Y != 0 {
		t.Error("border-touching pixel survived")
	}
	if out.GrayAt(1, 1).Y != 255 {
		t.Error("interior pixel was removed through a diagonal connection")
	}
}

func TestIsolateButtons_EmptyRegion(t *testing.T) {
	out := IsolateButtons(image.NewGray(image.Rect(0, 0, 0, 0)))
	if out.Bounds().Dx() != 0 || out.Bounds().Dy() != 0 {
		t.Errorf("expected an empty output, got %v", out.Bounds())
	}
}
