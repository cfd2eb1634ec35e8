package main

import (
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/spf13/afero"
	"github.com/user-none/neospr/emu"
	"golang.org/x/image/draw"
)

// errScale is returned for output scales below 1.
var errScale = errors.New("scale must be at least 1")

// renderFrames runs the emulator for frames frames (at least one) and
// returns the visible picture of the last one.
func renderFrames(e *emu.Emulator, frames int) image.Image {
	if frames < 1 {
		frames = 1
	}
	for i := 0; i < frames; i++ {
		e.RunFrame()
	}
	width := e.Sprites().ScreenWidth()
	return e.Image().SubImage(image.Rect(0, 0, width, emu.ScreenHeight))
}

// scaleImage enlarges src by an integer factor with nearest neighbour sampling.
func scaleImage(src image.Image, scale int) (*image.RGBA, error) {
	if scale < 1 {
		return nil, errScale
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst, nil
}

// writePNG scales img and writes it to path on fs.
func writePNG(fs afero.Fs, path string, img image.Image, scale int) error {
	scaled, err := scaleImage(img, scale)
	if err != nil {
		return err
	}
	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, scaled); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return f.Close()
}
