package emu

import (
	emucore "github.com/user-none/eblitui/api"
)

var (
	_ emucore.MemoryInspector = (*Emulator)(nil)
	_ emucore.MemoryMapper    = (*Emulator)(nil)
)

// Flat address boundaries for ReadMemory. Words read big-endian.
const (
	vramStart    = 0x00000
	vramEnd      = vramStart + VideoRAMWords*2 - 1
	paletteStart = vramEnd + 1
	paletteEnd   = paletteStart + PaletteEntries*2 - 1
)

// wordByte returns the byte at a big-endian byte offset of a word array.
func wordByte(w uint16, offset uint32) byte {
	if offset&1 == 0 {
		return byte(w >> 8)
	}
	return byte(w)
}

// ReadMemory reads from a flat address into buf and returns the number
// of bytes read.
// 0x00000-0x1FFFF -> video RAM
// 0x20000-0x21FFF -> palette RAM
func (e *Emulator) ReadMemory(addr uint32, buf []byte) uint32 {
	var count uint32
	for i := range buf {
		cur := addr + uint32(i)
		switch {
		case cur <= vramEnd:
			buf[i] = wordByte(e.vram[cur>>1], cur)
		case cur >= paletteStart && cur <= paletteEnd:
			off := cur - paletteStart
			buf[i] = wordByte(e.palette[off>>1], off)
		default:
			return count
		}
		count++
	}
	return count
}

// MemoryMap lists video RAM as the system RAM region. There is no save RAM.
func (e *Emulator) MemoryMap() []emucore.MemoryRegion {
	return []emucore.MemoryRegion{
		{Type: emucore.MemorySystemRAM, Size: VideoRAMWords * 2},
	}
}

// ReadRegion returns a copy of the specified memory region.
func (e *Emulator) ReadRegion(regionType int) []byte {
	if regionType == emucore.MemorySystemRAM {
		return e.vram.Bytes()
	}
	return nil
}

// WriteRegion writes data to the specified memory region.
func (e *Emulator) WriteRegion(regionType int, data []byte) {
	if regionType == emucore.MemorySystemRAM {
		e.vram.Load(data)
	}
}
