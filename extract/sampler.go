// Package extract samples frames from a source video at a target FPS and
// writes them to disk as an ordered sequence of JPEG images.
package extract

import (
	"fmt"
	"os"
	"path/filepath"

	"gocv.io/x/gocv"
)

// Sampler extracts frames from a video at a reduced sampling rate.
type Sampler struct {
	// TargetFPS is the desired sampling rate in frames per second
	TargetFPS int
	// Overwrite clears any previously extracted frames from the output
	// directory before sampling
	Overwrite bool
}

// NewSampler returns a Sampler for the given target sampling rate.
func NewSampler(targetFPS int) *Sampler {
	return &Sampler{
		TargetFPS: targetFPS,
		Overwrite: true,
	}
}

// Stride calculates the integer frame skip interval used to approximate the
// target sampling rate from the video's native rate.  A stride of N keeps
// every Nth frame.  It is always at least 1.
func Stride(nativeFPS float64, targetFPS int) int {

	if targetFPS <= 0 {
		return 1
	}

	stride := int(nativeFPS) / targetFPS

	if stride < 1 {
		return 1
	}

	return stride
}

// Frames walks the decoded frame sequence of the video and writes every
// stride-th frame to outDir as frame_NNNNN.jpg.  It returns the ordered
// manifest of saved frame paths.
//
// The call fails if the video cannot be opened or reports a native frame
// rate of zero.  Any frame write failure aborts the whole call.
func (s *Sampler) Frames(videoFile, outDir string) ([]string, error) {

	if _, err := os.Stat(videoFile); err != nil {
		return nil, fmt.Errorf("video file not found: %w", err)
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("error creating output directory: %w", err)
	}

	if s.Overwrite {
		if err := clearFrames(outDir); err != nil {
			return nil, fmt.Errorf("error clearing output directory: %w", err)
		}
	}

	video, err := gocv.VideoCaptureFile(videoFile)

	if err != nil {
		return nil, fmt.Errorf("error opening video %s: %w", videoFile, err)
	}

	defer video.Close()

	nativeFPS := video.Get(gocv.VideoCaptureFPS)

	if nativeFPS == 0 {
		return nil, fmt.Errorf("video %s reports native FPS of 0", videoFile)
	}

	stride := Stride(nativeFPS, s.TargetFPS)

	img := gocv.NewMat()
	defer img.Close()

	var saved []string
	idx := 0
	savedIdx := 0

	for {
		if ok := video.Read(&img); !ok {
			// end of stream
			break
		}

		if img.Empty() {
			continue
		}

		if idx%stride == 0 {
			fpath := filepath.Join(outDir, FrameName(savedIdx))

			if ok := gocv.IMWrite(fpath, img); !ok {
				return nil, fmt.Errorf("error writing frame %s", fpath)
			}

			saved = append(saved, fpath)
			savedIdx++
		}

		idx++
	}

	return saved, nil
}

// FrameName returns the zero padded file name for the saved frame at the
// given manifest position.
func FrameName(idx int) string {
	return fmt.Sprintf("frame_%05d.jpg", idx)
}

// KeptFrames returns how many frames survive sampling a video of totalFrames
// length with the given stride, ie. ceil(totalFrames / stride).
func KeptFrames(totalFrames, stride int) int {

	if totalFrames <= 0 || stride <= 0 {
		return 0
	}

	return (totalFrames + stride - 1) / stride
}

// clearFrames removes previously extracted *.jpg frames from dir
func clearFrames(dir string) error {

	matches, err := filepath.Glob(filepath.Join(dir, "*.jpg"))

	if err != nil {
		return err
	}

	for _, m := range matches {
		if err := os.Remove(m); err != nil {
			return err
		}
	}

	return nil
}
