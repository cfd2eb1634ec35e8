package emu

import (
	"errors"
	"fmt"

	"github.com/retroenv/retrogolib/log"
)

// MaxSlot is the number of sprite ROM slots the registry holds.
const MaxSlot = 8

// maxTiles is the size of the sprite tile address space (20-bit codes).
const maxTiles = 1 << 20

var (
	// ErrTileMask is returned when a tile mask is not a power of two minus one
	// or addresses more than the 20-bit tile space.
	ErrTileMask = errors.New("invalid tile mask")

	// ErrMaxTile is returned for a negative populated tile count.
	ErrMaxTile = errors.New("invalid max tile")

	// ErrSpriteROMShort is returned when the ROM holds fewer bytes than its
	// populated tiles need.
	ErrSpriteROMShort = errors.New("sprite ROM shorter than populated tile count")
)

// SpriteROM is the decoded graphics of one sprite slot.
type SpriteROM struct {
	Data     []byte // 128 bytes per tile
	TileMask uint32 // power of two minus one; wraps tile codes
	MaxTile  int    // populated tiles; tiles from MaxTile to TileMask are empty
}

// NewSpriteROM describes data as a sprite ROM whose tile mask is the
// populated tile count rounded up to a power of two.
func NewSpriteROM(data []byte) SpriteROM {
	maxTile := len(data) >> tileShift
	count := maxTile
	if count == 0 {
		count = 1
	}
	pow2 := 1
	for pow2 < count {
		pow2 <<= 1
	}
	return SpriteROM{
		Data:     data,
		TileMask: uint32(pow2 - 1),
		MaxTile:  maxTile,
	}
}

// validate checks the ROM geometry before an index is allocated for it.
func (r SpriteROM) validate() error {
	tiles := uint64(r.TileMask) + 1
	if tiles&(tiles-1) != 0 || tiles > maxTiles {
		return fmt.Errorf("%w: 0x%X", ErrTileMask, r.TileMask)
	}
	if r.MaxTile < 0 {
		return fmt.Errorf("%w: %d", ErrMaxTile, r.MaxTile)
	}
	if r.MaxTile > int(tiles) {
		return fmt.Errorf("%w: %d tiles past mask 0x%X", ErrMaxTile, r.MaxTile, r.TileMask)
	}
	if len(r.Data) < r.MaxTile<<tileShift {
		return fmt.Errorf("%w: %d bytes for %d tiles", ErrSpriteROMShort, len(r.Data), r.MaxTile)
	}
	return nil
}

// spriteSlot is one registry entry. A nil attrib means uninitialised.
type spriteSlot struct {
	rom    SpriteROM
	attrib []uint8
}

// activeSlot is the selection the compositor reads. It is only ever
// replaced as a whole.
type activeSlot struct {
	rom      []byte
	attrib   []uint8
	tileMask uint32
	maxTile  int
}

func checkSlot(slot int) {
	if slot < 0 || slot >= MaxSlot {
		panic(fmt.Sprintf("sprite slot %d out of range [0, %d)", slot, MaxSlot))
	}
}

// InitSprites takes ownership of rom for slot, builds its transparency
// index and makes it the active slot. Reinitialising a slot replaces it.
func (s *Sprites) InitSprites(slot int, rom SpriteROM) error {
	checkSlot(slot)
	if err := rom.validate(); err != nil {
		return fmt.Errorf("slot %d: %w", slot, err)
	}

	attrib := make([]uint8, int(rom.TileMask)+1)
	buildTileAttrib(attrib, rom.Data, rom.MaxTile)

	s.slots[slot] = spriteSlot{rom: rom, attrib: attrib}
	s.SetSpriteSlot(slot)

	s.logger.Debug("sprite slot initialised",
		log.Int("slot", slot),
		log.Int("tiles", rom.MaxTile),
		log.String("mask", fmt.Sprintf("0x%05X", rom.TileMask)),
		log.Int("transparent", countTransparent(attrib)))
	return nil
}

// SetSpriteSlot makes an initialised slot the one rendered from.
func (s *Sprites) SetSpriteSlot(slot int) {
	checkSlot(slot)
	sl := &s.slots[slot]
	if sl.attrib == nil {
		panic(fmt.Sprintf("sprite slot %d is not initialised", slot))
	}
	s.active = activeSlot{
		rom:      sl.rom.Data,
		attrib:   sl.attrib,
		tileMask: sl.rom.TileMask,
		maxTile:  sl.rom.MaxTile,
	}
	s.activeIndex = slot
}

// ExitSprites releases the slot's transparency index. If the slot was
// active the selection is cleared and nothing renders until another slot
// is selected.
func (s *Sprites) ExitSprites(slot int) {
	checkSlot(slot)
	if s.slots[slot].attrib == nil {
		panic(fmt.Sprintf("sprite slot %d is not initialised", slot))
	}
	s.slots[slot] = spriteSlot{}
	if s.activeIndex == slot {
		s.active = activeSlot{}
		s.activeIndex = -1
	}
}

// UpdateSprites reclassifies the active slot's tiles touched by a write of
// size bytes at offset into its sprite ROM.
func (s *Sprites) UpdateSprites(offset, size int) {
	if s.activeIndex < 0 {
		panic("UpdateSprites called with no active sprite slot")
	}
	updateTileAttrib(s.active.attrib, s.active.rom, s.active.maxTile, offset, size)
}

// ActiveSlot returns the selected slot, or -1 when none is selected.
func (s *Sprites) ActiveSlot() int {
	return s.activeIndex
}

// SlotInitialised reports whether slot holds a sprite ROM.
func (s *Sprites) SlotInitialised(slot int) bool {
	checkSlot(slot)
	return s.slots[slot].attrib != nil
}
