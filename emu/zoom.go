package emu

import (
	"errors"
	"fmt"
)

// ZoomROMSize is the size of the L0 vertical shrink ROM.
const ZoomROMSize = 0x10000

// ErrZoomROMSize is returned when a vertical shrink ROM is not 64KiB.
var ErrZoomROMSize = errors.New("zoom ROM must be 64KiB")

// xZoomTable marks, for each horizontal shrink value, which of the 16
// source columns of a tile line reach the screen. Shrink value n keeps
// n+1 columns; 15 is a 1:1 copy.
var xZoomTable = [16][16]uint8{
	{0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0},
	{0, 0, 1, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0},
	{0, 0, 1, 0, 1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 1, 0},
	{0, 0, 1, 0, 1, 0, 1, 0, 1, 0, 0, 0, 1, 0, 1, 0},
	{0, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0},
	{1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0, 1, 0},
	{1, 0, 1, 0, 1, 0, 1, 0, 1, 1, 1, 0, 1, 0, 1, 0},
	{1, 0, 1, 1, 1, 0, 1, 0, 1, 1, 1, 0, 1, 0, 1, 0},
	{1, 0, 1, 1, 1, 0, 1, 0, 1, 1, 1, 0, 1, 0, 1, 1},
	{1, 0, 1, 1, 1, 0, 1, 1, 1, 1, 1, 0, 1, 0, 1, 1},
	{1, 0, 1, 1, 1, 0, 1, 1, 1, 1, 1, 0, 1, 1, 1, 1},
	{1, 1, 1, 1, 1, 0, 1, 1, 1, 1, 1, 0, 1, 1, 1, 1},
	{1, 1, 1, 1, 1, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
}

// zoomColumns returns the source columns kept for a horizontal shrink
// value, in screen order.
func zoomColumns(xZoom int) []int {
	cols := make([]int, 0, 16)
	for i, keep := range xZoomTable[xZoom&0x0F] {
		if keep != 0 {
			cols = append(cols, i)
		}
	}
	return cols
}

// SetZoomROM installs the L0 vertical shrink ROM. Entry (yZoom<<8 | line)
// holds the tile (high nibble) and tile line (low nibble) sampled for the
// line of a bank at that vertical shrink. The data is used in place.
func (s *Sprites) SetZoomROM(rom []byte) error {
	if len(rom) != ZoomROMSize {
		return fmt.Errorf("%w: got %d bytes", ErrZoomROMSize, len(rom))
	}
	s.zoomROM = rom
	return nil
}
