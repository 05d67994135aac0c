package web

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"

	"golang.org/x/image/draw"
)

// WriteThumb scales the given frame image down to the target width, keeping
// the aspect ratio, and writes it as a JPEG poster for the session list.
func WriteThumb(srcFrame, dstPath string, width int) error {

	in, err := os.Open(srcFrame)

	if err != nil {
		return fmt.Errorf("failed to open frame image: %w", err)
	}

	defer in.Close()

	src, _, err := image.Decode(in)

	if err != nil {
		return fmt.Errorf("failed to decode frame image: %w", err)
	}

	bounds := src.Bounds()

	if bounds.Dx() == 0 {
		return fmt.Errorf("frame image has zero width")
	}

	height := bounds.Dy() * width / bounds.Dx()
	dst := image.NewRGBA(image.Rect(0, 0, width, height))

	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	out, err := os.Create(dstPath)

	if err != nil {
		return fmt.Errorf("failed to create thumbnail: %w", err)
	}

	defer out.Close()

	if err := jpeg.Encode(out, dst, &jpeg.Options{Quality: 85}); err != nil {
		return fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	return nil
}
