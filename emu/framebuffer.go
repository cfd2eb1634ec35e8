package emu

// FrameBuffer holds palette-indexed pixels: palette number in bits 4-15,
// colour in bits 0-3. Pitch is the row stride in pixels.
type FrameBuffer struct {
	Pix    []uint16
	Pitch  int
	Width  int
	Height int
}

// NewFrameBuffer allocates a frame buffer with Pitch equal to width.
func NewFrameBuffer(width, height int) *FrameBuffer {
	return &FrameBuffer{
		Pix:    make([]uint16, width*height),
		Pitch:  width,
		Width:  width,
		Height: height,
	}
}

// Fill sets every pixel to value.
func (f *FrameBuffer) Fill(value uint16) {
	for i := range f.Pix {
		f.Pix[i] = value
	}
}

// At returns the pixel at (x, y).
func (f *FrameBuffer) At(x, y int) uint16 {
	return f.Pix[y*f.Pitch+x]
}
