package emu

// Sprite tiles are 16x16 pixels at 4bpp: 16 lines of 8 bytes.
const (
	tileSize      = 128
	tileShift     = 7
	tileLineBytes = 8
)

// Transparency index entries
const (
	tileOpaque      = 0
	tileTransparent = 1
)

// tileIsTransparent reports whether every byte of a tile is zero.
func tileIsTransparent(tile []byte) bool {
	for _, b := range tile {
		if b != 0 {
			return false
		}
	}
	return true
}

// tileAttrib classifies a single tile. Tiles at or past maxTile are
// unpopulated address space and always transparent.
func tileAttrib(rom []byte, tile, maxTile int) uint8 {
	if tile >= maxTile {
		return tileTransparent
	}
	start := tile << tileShift
	if start >= len(rom) {
		return tileTransparent
	}
	end := start + tileSize
	if end > len(rom) {
		end = len(rom)
	}
	if tileIsTransparent(rom[start:end]) {
		return tileTransparent
	}
	return tileOpaque
}

// buildTileAttrib classifies every tile covered by attrib.
func buildTileAttrib(attrib []uint8, rom []byte, maxTile int) {
	for i := range attrib {
		attrib[i] = tileAttrib(rom, i, maxTile)
	}
}

// updateTileAttrib reclassifies the tiles touched by the byte range
// [offset, offset+size). The start is rounded down to a tile boundary.
// Entries for other tiles are left as they are.
func updateTileAttrib(attrib []uint8, rom []byte, maxTile, offset, size int) {
	if size <= 0 {
		return
	}
	end := offset + size
	if offset < 0 {
		offset = 0
	}
	for i := offset &^ (tileSize - 1); i < end; i += tileSize {
		tile := i >> tileShift
		if tile >= len(attrib) {
			break
		}
		attrib[tile] = tileAttrib(rom, tile, maxTile)
	}
}

// countTransparent returns the number of transparent entries.
func countTransparent(attrib []uint8) int {
	n := 0
	for _, a := range attrib {
		if a == tileTransparent {
			n++
		}
	}
	return n
}
