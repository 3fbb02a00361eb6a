package imaging

import (
	"image"
	"image/color"
)

// IsolateButtons inverts a binarized answer-button region and removes
// every connected component that touches the image border. The button
// backgrounds form one big border-touching component and vanish; the
// printed glyphs inside the buttons survive, whatever the number or
// layout of buttons. A region with no components is returned as-is.
func IsolateButtons(bin *image.Gray) *image.Gray {
	bounds := bin.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	inverted := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if bin.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y == 0 {
				inverted.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	if width == 0 || height == 0 {
		return inverted
	}

	// Label foreground components with 4-connectivity; zero out any
	// component that reaches the border.
	labels := make([]int, width*height)
	var stack []int
	for start := range labels {
		if labels[start] != 0 || inverted.Pix[start] == 0 {
			continue
		}
		touchesBorder := false
		stack = append(stack[:0], start)
		labels[start] = 1
		pixels := []int{start}
		for len(stack) > 0 {
			idx := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			x, y := idx%width, idx/width
			if x == 0 || x == width-1 || y == 0 || y == height-1 {
				touchesBorder = true
			}
			for _, n := range [4]int{idx - width, idx + width, idx - 1, idx + 1} {
				if n < 0 || n >= width*height {
					continue
				}
				// Horizontal neighbors must stay on the same row.
				if (n == idx-1 || n == idx+1) && n/width != y {
					continue
				}
				if labels[n] == 0 && inverted.Pix[n] != 0 {
					labels[n] = 1
					stack = append(stack, n)
					pixels = append(pixels, n)
				}
			}
		}
		if touchesBorder {
			for _, idx := range pixels {
				inverted.Pix[idx] = 0
			}
		}
	}
	return inverted
}
