package viz

// Bar is one spectrum bar in canvas pixels, y growing downward.
type Bar struct {
	X, Y, W, H float64
}

const (
	barHeadroom = 10
	gridStepX   = 60
	gridStepY   = 50
)

// Bars lays out one bar per analyser byte across a w×h canvas, reusing
// dst. Full scale leaves 10 px of headroom.
func Bars(data []byte, w, h float64, dst []Bar) []Bar {
	dst = dst[:0]
	if len(data) == 0 || w <= 0 || h <= barHeadroom {
		return dst
	}
	barW := w / float64(len(data))
	bw := max(1, barW-1)
	for i, b := range data {
		bh := float64(b) / 255 * (h - barHeadroom)
		dst = append(dst, Bar{X: float64(i) * barW, Y: h - bh, W: bw, H: bh})
	}
	return dst
}

// Grid returns the background grid line positions.
func Grid(w, h float64) (xs, ys []float64) {
	for x := 0.0; x <= w; x += gridStepX {
		xs = append(xs, x)
	}
	for y := 0.0; y <= h; y += gridStepY {
		ys = append(ys, y)
	}
	return xs, ys
}
