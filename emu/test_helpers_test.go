package emu

// createTestZoomROM creates a vertical shrink ROM where every shrink value
// samples lines without skipping: line n maps to tile n/16, tile line n%16.
func createTestZoomROM() []byte {
	rom := make([]byte, ZoomROMSize)
	for zoom := 0; zoom < 0x100; zoom++ {
		for line := 0; line < 0x100; line++ {
			rom[zoom<<8|line] = byte(line)
		}
	}
	return rom
}

// createTestSpriteROM creates a sprite ROM of the given number of tiles.
// Tile 0 is left transparent; every other tile is filled with colour
// (tile % 15) + 1 so each opaque tile draws a solid, identifiable block.
func createTestSpriteROM(tiles int) []byte {
	rom := make([]byte, tiles*tileSize)
	for t := 1; t < tiles; t++ {
		c := byte(t%15 + 1)
		for i := 0; i < tileSize; i++ {
			rom[t*tileSize+i] = c<<4 | c
		}
	}
	return rom
}

// setTilePixel sets one pixel of a tile in a sprite ROM.
func setTilePixel(rom []byte, tile, line, col int, colour byte) {
	off := tile*tileSize + line*tileLineBytes + col>>1
	if col&1 != 0 {
		rom[off] = rom[off]&0x0F | colour<<4
	} else {
		rom[off] = rom[off]&0xF0 | colour&0x0F
	}
}

// setBank writes SCB2-4 for a bank placed at screen line y (FirstVisibleLine
// is the top of the picture) and raw x position.
func setBank(vram *VideoRAM, bank, x, y, size, xZoom, yZoom int, sticky bool) {
	ctrl := uint16((0x200-y)&0x1FF)<<7 | uint16(size&scb3SizeMask)
	if sticky {
		ctrl |= scb3Sticky
	}
	vram.SetWord(scb2Base+bank, uint16(xZoom&0x0F)<<8|uint16(yZoom&0xFF))
	vram.SetWord(scb3Base+bank, ctrl)
	vram.SetWord(scb4Base+bank, uint16(x&0x1FF)<<7)
}

// setStickyBank marks a bank as chained to the previous one.
func setStickyBank(vram *VideoRAM, bank, xZoom int) {
	vram.SetWord(scb2Base+bank, uint16(xZoom&0x0F)<<8|0xFF)
	vram.SetWord(scb3Base+bank, scb3Sticky)
	vram.SetWord(scb4Base+bank, 0)
}

// setTileMap writes the tile map pair for one tile of a bank.
func setTileMap(vram *VideoRAM, bank, tile int, code uint32, palette int, attr uint16) {
	addr := bank<<6 | tile<<1
	vram.SetWord(addr, uint16(code))
	vram.SetWord(addr+1, uint16(palette&0xFF)<<8|uint16(code>>12)&attrCodeHigh|attr&0x0F)
}

// newTestSprites returns a compositor with the test zoom ROM and a sprite
// ROM of the given tile count active in slot 0.
func newTestSprites(tiles int) (*Sprites, []byte) {
	s := NewSprites()
	if err := s.SetZoomROM(createTestZoomROM()); err != nil {
		panic(err)
	}
	rom := createTestSpriteROM(tiles)
	if err := s.InitSprites(0, NewSpriteROM(rom)); err != nil {
		panic(err)
	}
	return s, rom
}

// newSentinelFrame returns a frame buffer wider than the screen, filled
// with a value no bank draws, so stray writes are visible.
func newSentinelFrame() *FrameBuffer {
	fb := NewFrameBuffer(ScreenWidth+32, ScreenHeight)
	fb.Fill(sentinel)
	return fb
}

const sentinel = 0xDEAD

// drawnColumns returns the columns of a frame buffer row that differ from
// the sentinel.
func drawnColumns(fb *FrameBuffer, y int) []int {
	var cols []int
	for x := 0; x < fb.Width; x++ {
		if fb.At(x, y) != sentinel {
			cols = append(cols, x)
		}
	}
	return cols
}

// bankPixel is the frame buffer value an opaque test tile draws.
func bankPixel(tile, palette int) uint16 {
	return uint16(palette)<<4 | uint16(tile%15+1)
}
