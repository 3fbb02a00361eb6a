package imaging

import (
	"image"
	"image/color"
	"image/draw"

	"gonum.org/v1/gonum/floats"
)

// maxSmoothIterations caps the histogram smoothing loop in MinimumThreshold.
const maxSmoothIterations = 10000

// Grayscale converts an image to 8-bit grayscale using luminosity weights.
func Grayscale(img image.Image) *image.Gray {
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			rf := float64(r) / 65535.0
			gf := float64(g) / 65535.0
			bf := float64(b) / 65535.0
			v := (0.2125*rf + 0.7154*gf + 0.0721*bf) * 255.0
			if v > 255 {
				v = 255
			}
			gray.SetGray(x, y, color.Gray{Y: uint8(v + 0.5)})
		}
	}
	return gray
}

// CropBand copies the fractional vertical band [fromFrac, toFrac) of an
// image into a fresh RGBA, full width. An empty band yields a zero-height
// image rather than an error.
func CropBand(img image.Image, fromFrac, toFrac float64) image.Image {
	bounds := img.Bounds()
	height := bounds.Dy()
	from := bounds.Min.Y + int(fromFrac*float64(height))
	to := bounds.Min.Y + int(toFrac*float64(height))
	if from < bounds.Min.Y {
		from = bounds.Min.Y
	}
	if to > bounds.Max.Y {
		to = bounds.Max.Y
	}
	if to < from {
		to = from
	}
	rect := image.Rect(bounds.Min.X, from, bounds.Max.X, to)
	band := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(band, band.Bounds(), img, rect.Min, draw.Src)
	return band
}

// StripReady reports whether every pixel of the readiness strip (the row
// at rowFrac of the height, across the central half of the width) is at
// maximum brightness in all channels. The strip goes uniformly white only
// once the answer buttons have finished rendering.
func StripReady(img image.Image, rowFrac float64) bool {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return false
	}
	row := bounds.Min.Y + int(rowFrac*float64(height))
	if row >= bounds.Max.Y {
		row = bounds.Max.Y - 1
	}
	for x := bounds.Min.X + width/4; x < bounds.Min.X+width/4*3; x++ {
		r, g, b, _ := img.At(x, row).RGBA()
		if r != 0xffff || g != 0xffff || b != 0xffff {
			return false
		}
	}
	return true
}

// MinimumThreshold computes a global binarization threshold using the
// minimum method: the 256-bin histogram is mean-smoothed (window 3) until
// exactly two local maxima remain, and the threshold is the lowest bin
// between them. Falls back to the midpoint when the histogram never
// becomes bimodal (uniform regions must not crash the pipeline).
func MinimumThreshold(gray *image.Gray) uint8 {
	bounds := gray.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return 128
	}

	hist := make([]float64, 256)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			hist[gray.GrayAt(x, y).Y]++
		}
	}

	smoothed := make([]float64, 256)
	copy(smoothed, hist)
	scratch := make([]float64, 256)

	for i := 0; i < maxSmoothIterations; i++ {
		peaks := localMaxima(smoothed)
		if len(peaks) == 2 {
			return minimumBetween(smoothed, peaks[0], peaks[1])
		}
		if len(peaks) < 2 {
			break
		}
		meanSmooth(smoothed, scratch)
		smoothed, scratch = scratch, smoothed
	}
	return 128
}

// meanSmooth applies a window-3 mean filter, clamping at the edges.
func meanSmooth(src, dst []float64) {
	n := len(src)
	for i := 0; i < n; i++ {
		lo, hi := i-1, i+1
		if lo < 0 {
			lo = 0
		}
		if hi > n-1 {
			hi = n - 1
		}
		dst[i] = floats.Sum(src[lo:hi+1]) / float64(hi-lo+1)
	}
}

func localMaxima(hist []float64) []int {
	var peaks []int
	n := len(hist)
	for i := 0; i < n; i++ {
		if hist[i] == 0 {
			continue
		}
		left := i == 0 || hist[i-1] < hist[i]
		right := i == n-1 || hist[i+1] <= hist[i]
		if left && right {
			peaks = append(peaks, i)
		}
	}
	return peaks
}

func minimumBetween(hist []float64, lo, hi int) uint8 {
	if hi <= lo+1 {
		return uint8(lo + 1)
	}
	idx := lo + 1 + floats.MinIdx(hist[lo+1:hi])
	return uint8(idx)
}

// Binarize produces a two-level image: pixels at or above the threshold
// become white (255), the rest black (0).
func Binarize(gray *image.Gray, threshold uint8) *image.Gray {
	bounds := gray.Bounds()
	bin := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if gray.GrayAt(x, y).Y >= threshold {
				bin.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return bin
}

// Agreement returns the fraction of pixels at which the two binary images
// are equal. Images of different dimensions never agree.
func Agreement(a, b *image.Gray) float64 {
	ab, bb := a.Bounds(), b.Bounds()
	if ab.Dx() != bb.Dx() || ab.Dy() != bb.Dy() {
		return 0
	}
	total := ab.Dx() * ab.Dy()
	if total == 0 {
		return 1
	}
	equal := 0
	for y := 0; y < ab.Dy(); y++ {
		for x := 0; x < ab.Dx(); x++ {
			if a.GrayAt(ab.Min.X+x, ab.Min.Y+y).Y == b.GrayAt(bb.Min.X+x, bb.Min.Y+y).Y {
				equal++
			}
		}
	}
	return float64(equal) / float64(total)
}
