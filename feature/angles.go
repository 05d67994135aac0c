// Package feature computes biomechanical joint angles from landmark records
// and assembles them into a per frame feature table.
package feature

import (
	"math"

	"github.com/cricketlab/crickmotion/pose"
)

// Angle returns the angle ABC in degrees using the 2D projection (x, y) of
// the three landmarks.  The result is always in [0,180], values above 180
// are reflected as 360 minus the value.
func Angle(a, b, c pose.Landmark) float64 {

	rad := math.Atan2(c.Y-b.Y, c.X-b.X) - math.Atan2(a.Y-b.Y, a.X-b.X)
	deg := math.Abs(rad * 180 / math.Pi)

	if deg > 180 {
		deg = 360 - deg
	}

	return deg
}

// TrunkTilt returns the angle in degrees of the shoulder to hip line
// against the horizontal, normalized into [0,180].
func TrunkTilt(shoulder, hip pose.Landmark) float64 {

	deg := math.Abs(math.Atan2(shoulder.Y-hip.Y, shoulder.X-hip.X) * 180 / math.Pi)

	if deg > 180 {
		deg = 360 - deg
	}

	return deg
}

// Angles holds the three joint angles derived from one landmark record.
type Angles struct {
	RightElbow float64
	RightKnee  float64
	Trunk      float64
}

// FromRecord computes the fixed angle triples from a landmark record:
// right elbow (shoulder-elbow-wrist), right knee (hip-knee-ankle) and trunk
// tilt (shoulder-hip line vs horizontal).  It returns false when any
// required landmark index is absent.
func FromRecord(rec pose.Record) (Angles, bool) {

	required := []int{
		pose.RightShoulder, pose.RightElbow, pose.RightWrist,
		pose.RightHip, pose.RightKnee, pose.RightAnkle,
	}

	for _, idx := range required {
		if _, ok := rec.Point(idx); !ok {
			return Angles{}, false
		}
	}

	shoulder := rec[pose.RightShoulder]
	hip := rec[pose.RightHip]

	return Angles{
		RightElbow: Angle(shoulder, rec[pose.RightElbow], rec[pose.RightWrist]),
		RightKnee:  Angle(hip, rec[pose.RightKnee], rec[pose.RightAnkle]),
		Trunk:      TrunkTilt(shoulder, hip),
	}, true
}
