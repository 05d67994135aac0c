// Package pipeline sequences the analysis stages for a single input video:
// frame sampling, pose extraction, feature computation, overlay rendering
// and the first frame 3D figure.
package pipeline

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cricketlab/crickmotion/extract"
	"github.com/cricketlab/crickmotion/feature"
	"github.com/cricketlab/crickmotion/logging"
	"github.com/cricketlab/crickmotion/pose"
	"github.com/cricketlab/crickmotion/render"
	"github.com/cricketlab/crickmotion/viewer"
)

var (
	// ErrNoFrames is returned when frame sampling yields nothing
	ErrNoFrames = errors.New("no frames extracted")
	// ErrNoPoses is returned when no pose was detected in any frame
	ErrNoPoses = errors.New("no pose landmarks detected")
)

// Result names the artifacts produced by one pipeline run together with
// the per stage counts.
type Result struct {
	VideoName   string
	FPS         int
	FrameCount  int
	RecordCount int
	RowCount    int
	Summary     feature.Summary
	FeaturesCSV string
	OverlayMP4  string
	PoseHTML    string
}

// Pipeline runs the full analysis sequence for one video.  The stages are
// function fields so tests can stub them, New wires the real ones.
type Pipeline struct {
	ws  Workspace
	log *logging.Logger

	sampleFrames func(video, outDir string, fps int) ([]string, error)
	extractPose  func(frames []string, outDir string) ([]string, error)
	renderVideo  func(frames, records []string, outPath string, fps int) error
}

// New returns a Pipeline running the real stages with the given pose
// estimator and workspace.
func New(ws Workspace, est *pose.Estimator, log *logging.Logger) *Pipeline {

	return &Pipeline{
		ws:  ws,
		log: log,
		sampleFrames: func(video, outDir string, fps int) ([]string, error) {
			return extract.NewSampler(fps).Frames(video, outDir)
		},
		extractPose: func(frames []string, outDir string) ([]string, error) {
			return pose.ExtractFromFrames(est, frames, outDir, log)
		},
		renderVideo: func(frames, records []string, outPath string, fps int) error {
			return render.NewVideoRenderer(render.DefaultStyle(), log).
				Render(frames, records, outPath, fps)
		},
	}
}

// Run executes the full analysis on a single video at the given sampling
// rate.  It aborts early with ErrNoFrames or ErrNoPoses when an
// intermediate manifest comes back empty.
func (p *Pipeline) Run(videoPath string, fps int) (*Result, error) {

	name := videoName(videoPath)

	if err := p.ws.Ensure(name); err != nil {
		return nil, err
	}

	res := &Result{
		VideoName:   name,
		FPS:         fps,
		FeaturesCSV: p.ws.FeaturesCSV(name),
		OverlayMP4:  p.ws.OverlayVideo(name),
		PoseHTML:    p.ws.PoseFigure(name),
	}

	// 1. frame sampling
	frames, err := p.sampleFrames(videoPath, p.ws.FramesDir(name), fps)

	if err != nil {
		return nil, fmt.Errorf("frame extraction: %w", err)
	}

	if len(frames) == 0 {
		p.log.Error("no frames extracted from %s, aborting", videoPath)
		return nil, ErrNoFrames
	}

	res.FrameCount = len(frames)
	p.log.Info("extracted %d frames from %s", len(frames), filepath.Base(videoPath))

	// 2. pose estimation
	records, err := p.extractPose(frames, p.ws.KeypointsDir(name))

	if err != nil {
		return nil, fmt.Errorf("pose extraction: %w", err)
	}

	if len(records) == 0 {
		p.log.Error("no pose landmarks detected in %s, aborting", videoPath)
		return nil, ErrNoPoses
	}

	res.RecordCount = len(records)

	// 3. biomechanical features
	rows, err := feature.ExtractFeatures(records, res.FeaturesCSV, p.log)

	if err != nil {
		return nil, fmt.Errorf("feature extraction: %w", err)
	}

	res.RowCount = len(rows)
	res.Summary = feature.Summarise(rows, fps)

	// 4. overlay video
	if err := p.renderVideo(frames, records, res.OverlayMP4, fps); err != nil {
		return nil, fmt.Errorf("overlay rendering: %w", err)
	}

	// 5. first frame 3D figure
	title := fmt.Sprintf("%s - first pose", name)

	if err := viewer.PlotRecordFile(records[0], title, res.PoseHTML); err != nil {
		return nil, fmt.Errorf("pose figure: %w", err)
	}

	p.log.Info("analysis complete for %s: %d frames, %d poses, %d rows",
		name, res.FrameCount, res.RecordCount, res.RowCount)

	return res, nil
}

// videoName returns the file name of the video without its extension, used
// to key all per video artifacts.
func videoName(videoPath string) string {
	base := filepath.Base(videoPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
