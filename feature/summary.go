package feature

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarises one angle series over a whole video.
type Stats struct {
	Mean   float64
	Min    float64
	Max    float64
	StdDev float64
	// MeanAbsVelocity is the mean absolute frame to frame change of the
	// angle scaled by the sampling FPS, in degrees per second
	MeanAbsVelocity float64
}

// Summary holds per angle statistics for the analysed video.
type Summary struct {
	RightElbow Stats
	RightKnee  Stats
	Trunk      Stats
	Rows       int
}

// Summarise computes summary statistics over the feature rows.  fps is the
// sampling rate the rows were produced at and scales the velocity metric.
func Summarise(rows []Row, fps int) Summary {

	s := Summary{Rows: len(rows)}

	if len(rows) == 0 {
		return s
	}

	elbow := make([]float64, len(rows))
	knee := make([]float64, len(rows))
	trunk := make([]float64, len(rows))

	for i, row := range rows {
		elbow[i] = row.Angles.RightElbow
		knee[i] = row.Angles.RightKnee
		trunk[i] = row.Angles.Trunk
	}

	s.RightElbow = seriesStats(elbow, fps)
	s.RightKnee = seriesStats(knee, fps)
	s.Trunk = seriesStats(trunk, fps)

	return s
}

func seriesStats(series []float64, fps int) Stats {

	st := Stats{
		Mean:   stat.Mean(series, nil),
		Min:    floats.Min(series),
		Max:    floats.Max(series),
		StdDev: 0,
	}

	if len(series) > 1 {
		st.StdDev = stat.StdDev(series, nil)

		// mean absolute finite difference scaled to degrees per second
		var sum float64

		for i := 1; i < len(series); i++ {
			d := series[i] - series[i-1]

			if d < 0 {
				d = -d
			}

			sum += d
		}

		st.MeanAbsVelocity = sum / float64(len(series)-1) * float64(fps)
	}

	return st
}
