package emu

import "encoding/binary"

// ProgramBus adapts a 68000 program ROM image, mapped at address 0, into
// a CPUReader. Reads past the image return open bus (0xFFFF).
type ProgramBus struct {
	rom []byte
}

// NewProgramBus creates a ProgramBus over rom. The slice is not copied.
func NewProgramBus(rom []byte) *ProgramBus {
	return &ProgramBus{rom: rom}
}

// ReadWord returns the big-endian word at addr. Bit 0 of addr is ignored.
func (b *ProgramBus) ReadWord(addr uint32) uint16 {
	addr &^= 1
	if uint64(addr)+2 > uint64(len(b.rom)) {
		return 0xFFFF
	}
	return binary.BigEndian.Uint16(b.rom[addr:])
}
