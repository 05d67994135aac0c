package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/cricketlab/crickmotion/logging"
	"github.com/cricketlab/crickmotion/pose"
)

func testLogger() *logging.Logger {
	return logging.New(logging.LevelError, "")
}

func stubRecord() pose.Record {
	return pose.Record{
		pose.RightShoulder: {X: 0.5, Y: 0.2, Vis: 1},
		pose.RightElbow:    {X: 0.55, Y: 0.35, Vis: 1},
		pose.RightWrist:    {X: 0.5, Y: 0.5, Vis: 1},
		pose.RightHip:      {X: 0.5, Y: 0.55, Vis: 1},
		pose.RightKnee:     {X: 0.52, Y: 0.75, Vis: 1},
		pose.RightAnkle:    {X: 0.5, Y: 0.95, Vis: 1},
	}
}

// stubbed pipeline writing real records and skipping the gocv stages
func stubPipeline(ws Workspace, frameCount int, t *testing.T) *Pipeline {
	t.Helper()

	return &Pipeline{
		ws:  ws,
		log: testLogger(),
		sampleFrames: func(video, outDir string, fps int) ([]string, error) {
			frames := make([]string, frameCount)
			for i := range frames {
				frames[i] = filepath.Join(outDir, fmt.Sprintf("frame_%05d.jpg", i))
			}
			return frames, nil
		},
		extractPose: func(frames []string, outDir string) ([]string, error) {
			var records []string
			for _, f := range frames {
				jpath := filepath.Join(outDir, pose.RecordName(f))
				if err := stubRecord().Save(jpath); err != nil {
					t.Fatal(err)
				}
				records = append(records, jpath)
			}
			return records, nil
		},
		renderVideo: func(frames, records []string, outPath string, fps int) error {
			return nil
		},
	}
}

func TestRun(t *testing.T) {

	ws := Workspace{DataDir: t.TempDir()}
	p := stubPipeline(ws, 3, t)

	res, err := p.Run("/videos/delivery.mp4", 5)

	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if res.VideoName != "delivery" {
		t.Errorf("video name = %s, expected delivery", res.VideoName)
	}

	if res.FrameCount != 3 || res.RecordCount != 3 || res.RowCount != 3 {
		t.Errorf("unexpected counts: frames=%d records=%d rows=%d",
			res.FrameCount, res.RecordCount, res.RowCount)
	}

	// feature table row count <= record count <= frame count
	if res.RowCount > res.RecordCount || res.RecordCount > res.FrameCount {
		t.Error("manifest count invariant violated")
	}

	for _, artifact := range []string{res.FeaturesCSV, res.PoseHTML} {
		if !fileExists(artifact) {
			t.Errorf("expected artifact %s to exist", artifact)
		}
	}
}

func TestRunNoFrames(t *testing.T) {

	ws := Workspace{DataDir: t.TempDir()}
	p := stubPipeline(ws, 0, t)

	if _, err := p.Run("/videos/empty.mp4", 5); !errors.Is(err, ErrNoFrames) {
		t.Errorf("expected ErrNoFrames, got %v", err)
	}
}

func TestRunNoPoses(t *testing.T) {

	ws := Workspace{DataDir: t.TempDir()}
	p := stubPipeline(ws, 2, t)

	p.extractPose = func(frames []string, outDir string) ([]string, error) {
		return nil, nil
	}

	if _, err := p.Run("/videos/blurry.mp4", 5); !errors.Is(err, ErrNoPoses) {
		t.Errorf("expected ErrNoPoses, got %v", err)
	}
}

func TestWorkspaceLayout(t *testing.T) {

	ws := Workspace{DataDir: "data"}

	tests := []struct {
		got      string
		expected string
	}{
		{ws.FramesDir("vid"), filepath.Join("data", "frames", "vid")},
		{ws.KeypointsDir("vid"), filepath.Join("data", "keypoints", "vid")},
		{ws.FeaturesCSV("vid"), filepath.Join("data", "analysis", "vid_features.csv")},
		{ws.OverlayVideo("vid"), filepath.Join("data", "analysis", "vid_overlay.mp4")},
		{ws.PoseFigure("vid"), filepath.Join("data", "analysis", "vid_pose.html")},
	}

	for _, tc := range tests {
		if tc.got != tc.expected {
			t.Errorf("workspace path = %s, expected %s", tc.got, tc.expected)
		}
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
