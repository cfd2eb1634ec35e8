package emu

var zeroTileLine [tileLineBytes]byte

// tileRow returns the 8 packed bytes of one line of a tile. Two pixels
// are packed per byte, the even column in the low nibble. Lines outside
// the ROM read as transparent.
func tileRow(rom []byte, tile uint32, line int) []byte {
	off := int(tile)<<tileShift | (line&0x0F)*tileLineBytes
	if off < 0 || off+tileLineBytes > len(rom) {
		return zeroTileLine[:]
	}
	return rom[off : off+tileLineBytes]
}

// rowPixel returns the colour index (0-15) of column x of a packed row.
func rowPixel(row []byte, x int) uint8 {
	b := row[(x>>1)&0x07]
	if x&1 != 0 {
		return b >> 4
	}
	return b & 0x0F
}
