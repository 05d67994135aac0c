// Package render draws the annotated skeleton overlay video: colored
// joints, skeletal connectors, a fading trail of the tracked wrist, a live
// elbow angle readout and a caption bar.
package render

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/cricketlab/crickmotion/feature"
	"github.com/cricketlab/crickmotion/pose"
)

// connections defines the skeleton landmark pairs to draw limb and torso
// lines between
var connections = [][2]int{
	{11, 13}, {13, 15}, {12, 14}, {14, 16},
	{11, 12}, {11, 23}, {12, 24},
	{23, 25}, {25, 27}, {24, 26}, {26, 28},
}

// ProjectPoints converts the normalized landmark coordinates of a record to
// pixel space for a frame of the given width and height.  Landmarks below
// the visibility threshold are filtered out.
func ProjectPoints(rec pose.Record, width, height int,
	visThreshold float64) map[int]image.Point {

	pts := make(map[int]image.Point)

	for idx, lm := range rec {
		if lm.Vis <= visThreshold {
			continue
		}

		pts[idx] = image.Pt(int(lm.X*float64(width)), int(lm.Y*float64(height)))
	}

	return pts
}

// DrawSkeleton draws the visible joints as filled circles colored by body
// side and the skeletal connectors between pairs where both endpoints are
// visible.
func DrawSkeleton(img *gocv.Mat, pts map[int]image.Point, jointRadius,
	limbThickness int) {

	// limbs first so joints render on top
	for _, conn := range connections {
		a, okA := pts[conn[0]]
		b, okB := pts[conn[1]]

		if !okA || !okB {
			continue
		}

		gocv.Line(img, a, b, Grey, limbThickness)
	}

	for idx, p := range pts {
		gocv.Circle(img, p, jointRadius, ColorForJoint(idx), -1)
	}
}

// ElbowAngle computes the live right elbow angle from projected pixel
// points.  It returns false when any of the three right arm points is not
// visible, in which case the readout is omitted for the frame.
func ElbowAngle(pts map[int]image.Point) (float64, bool) {

	s, okS := pts[pose.RightShoulder]
	e, okE := pts[pose.RightElbow]
	w, okW := pts[pose.RightWrist]

	if !okS || !okE || !okW {
		return 0, false
	}

	toLandmark := func(p image.Point) pose.Landmark {
		return pose.Landmark{X: float64(p.X), Y: float64(p.Y)}
	}

	return feature.Angle(toLandmark(s), toLandmark(e), toLandmark(w)), true
}

// DrawAngleReadout draws the live elbow angle text at the given position,
// green while under the threshold and red once at or above it.
func DrawAngleReadout(img *gocv.Mat, angle, threshold float64,
	pos image.Point, font Font) {

	clr := Green

	if angle >= threshold {
		clr = Red
	}

	text := fmt.Sprintf("Elbow %.0f deg", angle)
	drawLabel(img, text, pos, font, clr)
}

// DrawCaptionBar draws the fixed height lower caption bar with the frame
// counter.
func DrawCaptionBar(img *gocv.Mat, frameIdx, frameTotal, barHeight int,
	font Font) {

	h := img.Rows()
	w := img.Cols()

	gocv.Rectangle(img, image.Rect(0, h-barHeight, w, h), Black, -1)

	text := fmt.Sprintf("Frame %d/%d", frameIdx+1, frameTotal)
	drawLabel(img, text, image.Pt(20, h-20), font, White)
}

// drawLabel renders text with a black backing box sized from the text
// extent plus the font padding
func drawLabel(img *gocv.Mat, text string, pos image.Point, font Font,
	clr color.RGBA) {

	textSize := gocv.GetTextSize(text, font.Face, font.Scale, font.Thickness)

	box := image.Rect(pos.X-font.LeftPad, pos.Y-textSize.Y-font.TopPad,
		pos.X+textSize.X+font.RightPad, pos.Y+font.BottomPad)

	gocv.Rectangle(img, box, Black, -1)

	gocv.PutTextWithParams(img, text, pos, font.Face, font.Scale, clr,
		font.Thickness, font.LineType, false)
}
