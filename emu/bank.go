package emu

// bankRenderer draws the current bank (Sprites.bank* fields) into the
// frame buffer for every line of the render slice.
type bankRenderer func(s *Sprites)

// bankRenderers is indexed by horizontal shrink. Entries 16-31 are the
// same shrink values with every column bounded to the screen.
var bankRenderers = func() [32]bankRenderer {
	var table [32]bankRenderer
	for zoom := 0; zoom < 16; zoom++ {
		table[zoom] = makeBankRenderer(zoom, false)
		table[zoom+16] = makeBankRenderer(zoom, true)
	}
	return table
}()

func makeBankRenderer(xZoom int, clip bool) bankRenderer {
	cols := zoomColumns(xZoom)
	return func(s *Sprites) {
		for line := s.lineStart; line < s.lineEnd; line++ {
			tile, tileLine, ok := s.bankLine(line)
			if !ok {
				continue
			}
			s.drawBankLine(line, tile, tileLine, cols, clip)
		}
	}
}

// bankLine resolves which tile of the bank and which line of that tile
// the hardware samples on a scanline.
func (s *Sprites) bankLine(line int) (int, int, bool) {
	spriteLine := (line - s.bankYPos) & 0x1FF

	// Banks of 32 tiles or more cover the whole 512 line field
	if s.bankSize < 0x20 && spriteLine >= s.bankSize<<4 {
		return 0, 0, false
	}

	zoomLine := spriteLine & 0xFF
	invert := spriteLine&0x100 != 0
	if invert {
		zoomLine ^= 0xFF
	}

	// Oversized banks repeat the shrunk image, mirroring every other copy
	if s.bankSize > 0x20 {
		period := (s.bankYZoom + 1) << 1
		zoomLine %= period
		if zoomLine > s.bankYZoom {
			zoomLine = period - 1 - zoomLine
			invert = !invert
		}
	}

	entry := s.zoomROM[s.bankYZoom<<8|zoomLine]
	tile := int(entry >> 4)
	tileLine := int(entry & 0x0F)
	if invert {
		tile ^= 0x1F
		tileLine ^= 0x0F
	}
	return tile, tileLine, true
}

// drawBankLine draws one tile line of the bank at the bank's x position.
func (s *Sprites) drawBankLine(line, tile, tileLine int, cols []int, clip bool) {
	mapAddr := scb1Base + (s.bank<<6 | tile<<1)
	attr := s.vram.Word(mapAddr + 1)
	code := uint32(s.vram.Word(mapAddr)) | uint32(attr&attrCodeHigh)<<12

	// Auto-animation replaces the low code bits with the frame counter
	if attr&attrAnim8 != 0 {
		code = code&^0x07 | uint32(s.animFrame&0x07)
	} else if attr&attrAnim4 != 0 {
		code = code&^0x03 | uint32(s.animFrame&0x03)
	}

	code &= s.active.tileMask
	if s.active.attrib[code] == tileTransparent {
		return
	}

	if attr&attrVFlip != 0 {
		tileLine ^= 0x0F
	}
	row := tileRow(s.active.rom, code, tileLine)
	palette := (attr & attrPaletteHi) >> 4
	hFlip := attr&attrHFlip != 0

	dst := s.fb.Pix[(line-FirstVisibleLine)*s.fb.Pitch:]
	x := s.bankXPos
	for _, col := range cols {
		if hFlip {
			col = 15 - col
		}
		if pixel := rowPixel(row, col); pixel != 0 {
			if !clip || (x >= 0 && x < s.drawWidth) {
				dst[x] = palette | uint16(pixel)
			}
		}
		x++
	}
}
