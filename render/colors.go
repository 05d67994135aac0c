package render

import "image/color"

var (
	Black  = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Green  = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	Red    = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	Gold   = color.RGBA{R: 255, G: 215, B: 0, A: 255}
	Grey   = color.RGBA{R: 180, G: 180, B: 180, A: 255}
	Orange = color.RGBA{R: 255, G: 80, B: 0, A: 255}
	Cyan   = color.RGBA{R: 0, G: 80, B: 255, A: 255}
	Lime   = color.RGBA{R: 60, G: 255, B: 60, A: 255}
)

// left and right side landmark indices used to color joints by body side
var (
	leftSide  = map[int]bool{11: true, 13: true, 15: true, 23: true, 25: true, 27: true}
	rightSide = map[int]bool{12: true, 14: true, 16: true, 24: true, 26: true, 28: true}
)

// ColorForJoint returns the joint circle color for a landmark index, left
// side orange, right side cyan and torso/head light green.
func ColorForJoint(idx int) color.RGBA {

	if leftSide[idx] {
		return Orange
	}

	if rightSide[idx] {
		return Cyan
	}

	return Lime
}
