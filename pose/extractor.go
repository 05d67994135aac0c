package pose

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gocv.io/x/gocv"

	"github.com/cricketlab/crickmotion/logging"
)

// logEvery controls how often extraction progress is logged
const logEvery = 25

// ExtractFromFrames runs the estimator over each frame image and persists
// one landmark record per successfully processed frame, named to match the
// source frame.  It returns the ordered manifest of saved record paths.
//
// Unreadable frame images are skipped with a warning, frames with no
// detected pose are skipped silently.  The returned manifest may therefore
// be shorter than the frame manifest, downstream consumers must pair by
// file name stem rather than list position.
func ExtractFromFrames(est *Estimator, framePaths []string, outDir string,
	log *logging.Logger) ([]string, error) {

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("error creating output directory: %w", err)
	}

	var saved []string

	for i, fpath := range framePaths {

		img := gocv.IMRead(fpath, gocv.IMReadColor)

		if img.Empty() {
			log.Warn("[pose] unreadable frame %s", fpath)
			continue
		}

		rec, ok, err := est.Detect(img)
		img.Close()

		if err != nil {
			return nil, fmt.Errorf("error running pose inference on %s: %w",
				fpath, err)
		}

		if !ok {
			// no pose in this frame
			continue
		}

		jpath := filepath.Join(outDir, RecordName(fpath))

		if err := rec.Save(jpath); err != nil {
			return nil, err
		}

		saved = append(saved, jpath)

		if i%logEvery == 0 {
			log.Info("[pose] %d/%d", i+1, len(framePaths))
		}
	}

	log.Info("[pose] saved %d landmark records", len(saved))

	return saved, nil
}

// RecordName returns the landmark record file name matching the given frame
// image path, ie. frame_00003.jpg becomes frame_00003.json.
func RecordName(framePath string) string {
	return Stem(framePath) + ".json"
}

// Stem returns the file name of path without its directory or extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
