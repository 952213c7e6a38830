package puzzle

import "math"

// Point is a position on the riddle board.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// SnapDistance is how far a piece may sit from a position and still count as
// placed there.
const SnapDistance = 30.0

// Near reports whether p is within dist of q on both axes.
func (p Point) Near(q Point, dist float64) bool {
	return math.Abs(p.X-q.X) < dist && math.Abs(p.Y-q.Y) < dist
}

// Nearest returns the target closest to p. It reports false when there are no
// targets.
func Nearest(p Point, targets []Point) (Point, bool) {
	if len(targets) == 0 {
		return Point{}, false
	}
	best := targets[0]
	bestDist := math.Inf(1)
	for _, t := range targets {
		d := math.Hypot(t.X-p.X, t.Y-p.Y)
		if d < bestDist {
			best, bestDist = t, d
		}
	}
	return best, true
}

// Snap moves p onto the nearest target if that target is near enough.
// Otherwise p is returned unchanged with false.
func Snap(p Point, targets []Point, dist float64) (Point, bool) {
	t, ok := Nearest(p, targets)
	if !ok || !p.Near(t, dist) {
		return p, false
	}
	return t, true
}

// AllPlaced reports whether every piece named in correct sits near its
// position. A missing piece fails the check.
func AllPlaced(pieces, correct map[string]Point, dist float64) bool {
	for name, want := range correct {
		got, ok := pieces[name]
		if !ok || !got.Near(want, dist) {
			return false
		}
	}
	return true
}
