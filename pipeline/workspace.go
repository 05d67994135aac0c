package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
)

// Workspace lays out the per video artifact directories under a single data
// directory:
//
//	<data>/frames/<name>/        sampled frame images
//	<data>/keypoints/<name>/     landmark record files
//	<data>/analysis/             feature table, overlay video, pose figure
type Workspace struct {
	DataDir string
}

// FramesDir returns the frame image directory for the named video.
func (w Workspace) FramesDir(name string) string {
	return filepath.Join(w.DataDir, "frames", name)
}

// KeypointsDir returns the landmark record directory for the named video.
func (w Workspace) KeypointsDir(name string) string {
	return filepath.Join(w.DataDir, "keypoints", name)
}

// AnalysisDir returns the directory holding the terminal artifacts.
func (w Workspace) AnalysisDir() string {
	return filepath.Join(w.DataDir, "analysis")
}

// FeaturesCSV returns the feature table path for the named video.
func (w Workspace) FeaturesCSV(name string) string {
	return filepath.Join(w.AnalysisDir(), name+"_features.csv")
}

// OverlayVideo returns the annotated overlay video path for the named video.
func (w Workspace) OverlayVideo(name string) string {
	return filepath.Join(w.AnalysisDir(), name+"_overlay.mp4")
}

// PoseFigure returns the first frame 3D figure path for the named video.
func (w Workspace) PoseFigure(name string) string {
	return filepath.Join(w.AnalysisDir(), name+"_pose.html")
}

// Ensure creates the workspace directories for the named video.
func (w Workspace) Ensure(name string) error {

	for _, dir := range []string{
		w.FramesDir(name),
		w.KeypointsDir(name),
		w.AnalysisDir(),
	} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating workspace directory %s: %w", dir, err)
		}
	}

	return nil
}
