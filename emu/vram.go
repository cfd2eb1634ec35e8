package emu

import "encoding/binary"

// VideoRAMWords is the size of LSPC video RAM in 16-bit words.
const VideoRAMWords = 0x10000

// Sprite control block bases (word addresses).
// SCB1 holds 64 words of tile map per bank, SCB2-4 one word per bank.
const (
	scb1Base = 0x0000
	scb2Base = 0x8000 // shrink: x zoom bits 8-11, y zoom bits 0-7
	scb3Base = 0x8200 // y position bits 7-15, sticky bit 6, size bits 0-5
	scb4Base = 0x8400 // x position bits 7-15
)

// SCB3 fields
const (
	scb3Sticky   = 0x0040
	scb3SizeMask = 0x003F
)

// Tile map attribute word fields (odd SCB1 words)
const (
	attrHFlip     = 0x0001
	attrVFlip     = 0x0002
	attrAnim4     = 0x0004
	attrAnim8     = 0x0008
	attrCodeHigh  = 0x00F0
	attrPaletteHi = 0xFF00
)

// VideoRAM is the LSPC video RAM, addressed by word.
type VideoRAM [VideoRAMWords]uint16

// Word returns the word at index, wrapping to the RAM size.
func (v *VideoRAM) Word(index int) uint16 {
	return v[index&(VideoRAMWords-1)]
}

// SetWord stores a word at index, wrapping to the RAM size.
func (v *VideoRAM) SetWord(index int, value uint16) {
	v[index&(VideoRAMWords-1)] = value
}

// Load copies a big-endian byte image into video RAM starting at word 0.
// It returns the number of words loaded. A trailing odd byte is ignored.
func (v *VideoRAM) Load(data []byte) int {
	n := len(data) / 2
	if n > VideoRAMWords {
		n = VideoRAMWords
	}
	for i := 0; i < n; i++ {
		v[i] = binary.BigEndian.Uint16(data[i*2:])
	}
	return n
}

// Bytes returns video RAM as a big-endian byte image.
func (v *VideoRAM) Bytes() []byte {
	out := make([]byte, VideoRAMWords*2)
	for i, w := range v {
		binary.BigEndian.PutUint16(out[i*2:], w)
	}
	return out
}
