package emu

import (
	"encoding/binary"
	"image"
	"image/color"
)

// PaletteEntries is the number of colours in palette RAM (256 palettes of 16).
const PaletteEntries = 0x1000

// BackdropColour is the palette entry shown where no layer draws.
const BackdropColour = 0x0FFF

// PaletteRAM holds Neo Geo colour words:
// bit 15 dark, bits 14/13/12 red/green/blue LSB, bits 11-8 red,
// bits 7-4 green, bits 3-0 blue.
type PaletteRAM [PaletteEntries]uint16

// Load copies a big-endian byte image into palette RAM and returns the
// number of entries loaded.
func (p *PaletteRAM) Load(data []byte) int {
	n := len(data) / 2
	if n > PaletteEntries {
		n = PaletteEntries
	}
	for i := 0; i < n; i++ {
		p[i] = binary.BigEndian.Uint16(data[i*2:])
	}
	return n
}

// Bytes returns palette RAM as a big-endian byte image.
func (p *PaletteRAM) Bytes() []byte {
	out := make([]byte, PaletteEntries*2)
	for i, c := range p {
		binary.BigEndian.PutUint16(out[i*2:], c)
	}
	return out
}

// RGBA returns the colour of a palette entry.
func (p *PaletteRAM) RGBA(index uint16) color.RGBA {
	return colourToRGBA(p[index&(PaletteEntries-1)])
}

// colourToRGBA expands a colour word to 8 bits per channel. Each channel
// is 6 bits: 4 high bits, its own LSB and the inverted dark bit.
func colourToRGBA(c uint16) color.RGBA {
	lsb := uint8(c>>15)&1 ^ 1
	r := uint8(c>>7)&0x1E | uint8(c>>14)&1
	g := uint8(c>>3)&0x1E | uint8(c>>13)&1
	b := uint8(c<<1)&0x1E | uint8(c>>12)&1
	return color.RGBA{
		R: expand6(r<<1 | lsb),
		G: expand6(g<<1 | lsb),
		B: expand6(b<<1 | lsb),
		A: 255,
	}
}

func expand6(v uint8) uint8 {
	return v<<2 | v>>4
}

// resolve writes the colours of an indexed frame buffer into dst.
func (p *PaletteRAM) resolve(dst *image.RGBA, src *FrameBuffer) {
	for y := 0; y < src.Height; y++ {
		row := src.Pix[y*src.Pitch : y*src.Pitch+src.Width]
		off := y * dst.Stride
		for x, index := range row {
			c := p.RGBA(index)
			dst.Pix[off+x*4] = c.R
			dst.Pix[off+x*4+1] = c.G
			dst.Pix[off+x*4+2] = c.B
			dst.Pix[off+x*4+3] = c.A
		}
	}
}
