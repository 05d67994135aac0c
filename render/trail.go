package render

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// Trail is a fixed length history of recent pixel positions for one tracked
// landmark.  It is rendered with linearly decaying radius from most to least
// recent to depict the motion path of the tracked point.
type Trail struct {
	// size is the maximum number of most recent points to keep in history
	size   int
	points []image.Point
}

// NewTrail returns a trail keeping the given number of most recent points.
func NewTrail(size int) *Trail {
	return &Trail{
		size:   size,
		points: make([]image.Point, 0, size),
	}
}

// Add appends a point to the history, dropping the oldest point once the
// trail length is exceeded.
func (t *Trail) Add(p image.Point) {

	t.points = append(t.points, p)

	if len(t.points) > t.size {
		t.points = t.points[1:]
	}
}

// Points returns the point history ordered oldest to most recent.
func (t *Trail) Points() []image.Point {
	return t.points
}

// Len returns the number of points currently held.
func (t *Trail) Len() int {
	return len(t.points)
}

// Reset clears the history.
func (t *Trail) Reset() {
	t.points = t.points[:0]
}

// Radius returns the circle radius for the point at the given age, where
// age 0 is the most recent point.  The radius decays linearly with age from
// maxRadius down to zero.
func (t *Trail) Radius(age, maxRadius int) int {

	if t.Len() == 0 {
		return 0
	}

	alpha := 1.0 - float64(age)/float64(t.Len())

	return int(float64(maxRadius) * alpha)
}

// Draw renders the trail on the image as fading circles, most recent first.
func (t *Trail) Draw(img *gocv.Mat, clr color.RGBA, maxRadius int) {

	pts := t.points

	for age := 0; age < len(pts); age++ {
		// iterate most recent to oldest
		p := pts[len(pts)-1-age]
		gocv.Circle(img, p, t.Radius(age, maxRadius), clr, -1)
	}
}
