package render

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"gocv.io/x/gocv"

	"github.com/cricketlab/crickmotion/logging"
	"github.com/cricketlab/crickmotion/pose"
)

// Style defines the drawing parameters for the overlay renderer
type Style struct {
	// JointRadius is the radius of the filled joint circles
	JointRadius int
	// LimbThickness is the line thickness of the skeletal connectors
	LimbThickness int
	// TrailLength is the number of recent tracked point positions kept
	TrailLength int
	// TrackedPoint is the landmark index followed by the fading trail
	TrackedPoint int
	// VisThreshold filters out landmarks below this visibility score
	VisThreshold float64
	// ElbowThreshold is the angle in degrees at which the live elbow
	// readout switches from good (green) to bad (red)
	ElbowThreshold float64
	// CaptionHeight is the pixel height of the lower caption bar
	CaptionHeight int
	// Font is the text style for the readouts
	Font Font
}

// DefaultStyle returns the default overlay drawing parameters
func DefaultStyle() Style {
	return Style{
		JointRadius:    6,
		LimbThickness:  3,
		TrailLength:    15,
		TrackedPoint:   pose.RightWrist,
		VisThreshold:   0.3,
		ElbowThreshold: 170,
		CaptionHeight:  60,
		Font:           DefaultFont(),
	}
}

// VideoRenderer writes the annotated overlay video for a set of sampled
// frames and their landmark records.
type VideoRenderer struct {
	Style Style

	log *logging.Logger
}

// NewVideoRenderer returns a VideoRenderer with the given style.
func NewVideoRenderer(style Style, log *logging.Logger) *VideoRenderer {
	return &VideoRenderer{
		Style: style,
		log:   log,
	}
}

// PairRecords matches landmark record paths to frame paths by file name
// stem.  The returned slice is frame ordered, a frame with no matching
// record gets an empty string.  Pairing by stem keeps frames aligned with
// their own landmark data even when the pose stage dropped frames.
func PairRecords(framePaths, recordPaths []string) []string {

	byStem := make(map[string]string, len(recordPaths))

	for _, jpath := range recordPaths {
		byStem[pose.Stem(jpath)] = jpath
	}

	paired := make([]string, len(framePaths))

	for i, fpath := range framePaths {
		paired[i] = byStem[pose.Stem(fpath)]
	}

	return paired
}

// Render composes the overlay video from the sampled frames and landmark
// records and writes it sequentially to outPath at the given frame rate.
// The output video has the same pixel dimensions as the input frames.
func (r *VideoRenderer) Render(framePaths, recordPaths []string,
	outPath string, fps int) error {

	if len(framePaths) == 0 {
		return fmt.Errorf("no frames to render")
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	// size the output from the first frame
	sample := gocv.IMRead(framePaths[0], gocv.IMReadColor)

	if sample.Empty() {
		return fmt.Errorf("error reading first frame %s", framePaths[0])
	}

	width := sample.Cols()
	height := sample.Rows()
	sample.Close()

	writer, err := gocv.VideoWriterFile(outPath, "mp4v", float64(fps),
		width, height, true)

	if err != nil {
		return fmt.Errorf("error creating video writer: %w", err)
	}

	defer writer.Close()

	paired := PairRecords(framePaths, recordPaths)
	trail := NewTrail(r.Style.TrailLength)

	for i, fpath := range framePaths {

		img := gocv.IMRead(fpath, gocv.IMReadColor)

		if img.Empty() {
			return fmt.Errorf("error reading frame %s", fpath)
		}

		if paired[i] != "" {
			rec, err := pose.LoadRecord(paired[i])

			if err != nil {
				img.Close()
				return fmt.Errorf("error loading record for frame %s: %w",
					fpath, err)
			}

			r.drawOverlay(&img, rec, trail, width, height)
		} else {
			r.log.Debug("[render] no landmark record for %s", filepath.Base(fpath))
		}

		DrawCaptionBar(&img, i, len(framePaths), r.Style.CaptionHeight,
			r.Style.Font)

		if err := writer.Write(img); err != nil {
			img.Close()
			return fmt.Errorf("error writing frame %d: %w", i, err)
		}

		img.Close()
	}

	r.log.Info("[render] overlay video saved to %s", outPath)

	return nil
}

// drawOverlay draws the trail, skeleton and live angle readout for one frame
func (r *VideoRenderer) drawOverlay(img *gocv.Mat, rec pose.Record,
	trail *Trail, width, height int) {

	pts := ProjectPoints(rec, width, height, r.Style.VisThreshold)

	if p, ok := pts[r.Style.TrackedPoint]; ok {
		trail.Add(p)
	}

	trail.Draw(img, Gold, r.Style.JointRadius)

	DrawSkeleton(img, pts, r.Style.JointRadius, r.Style.LimbThickness)

	if angle, ok := ElbowAngle(pts); ok {
		DrawAngleReadout(img, angle, r.Style.ElbowThreshold,
			image.Pt(30, 40), r.Style.Font)
	}
}
