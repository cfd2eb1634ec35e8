package emu

import (
	"errors"
	"image/color"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// newTestEmulator builds a harness showing bank 1 (tile 3, palette 1) at
// x=20 on the top line, with a white backdrop and red palette 1.
func newTestEmulator(t *testing.T, animSpeed int) *Emulator {
	t.Helper()

	vram := &VideoRAM{}
	setBank(vram, 1, 20, FirstVisibleLine, 1, 15, 0xFF, false)
	setTileMap(vram, 1, 0, 3, 1, 0)

	palette := &PaletteRAM{}
	palette[BackdropColour] = 0x7FFF
	palette[bankPixel(3, 1)] = 0x4F00

	e, err := NewEmulator(Config{
		ZoomROM:   createTestZoomROM(),
		SpriteROM: NewSpriteROM(createTestSpriteROM(16)),
		VRAM:      vram,
		Palette:   palette,
		AnimSpeed: animSpeed,
	})
	if err != nil {
		t.Fatalf("NewEmulator: %v", err)
	}
	return &e
}

var (
	white = color.RGBA{255, 255, 255, 255}
	red   = color.RGBA{255, 4, 4, 255}
)

// TestEmulator_RunFrame tests backdrop and sprite colours in the output
func TestEmulator_RunFrame(t *testing.T) {
	e := newTestEmulator(t, 0)
	e.RunFrame()

	img := e.Image()
	assert.Equal(t, white, img.RGBAAt(0, 0))
	assert.Equal(t, white, img.RGBAAt(19, 0))
	assert.Equal(t, red, img.RGBAAt(20, 0))
	assert.Equal(t, red, img.RGBAAt(35, 15))
	assert.Equal(t, white, img.RGBAAt(36, 0))
	assert.Equal(t, white, img.RGBAAt(20, 16))

	fb := e.GetFramebuffer()
	assert.Equal(t, ScreenWidth*ScreenHeight*4, len(fb))
	assert.Equal(t, ScreenWidth*4, e.GetFramebufferStride())
	assert.Equal(t, ScreenHeight, e.GetActiveHeight())
}

// TestEmulator_SpritesOption tests disabling the sprite layer
func TestEmulator_SpritesOption(t *testing.T) {
	e := newTestEmulator(t, 0)
	e.SetOption("sprites", "false")
	e.RunFrame()
	assert.Equal(t, white, e.Image().RGBAAt(20, 0))

	e.SetOption("sprites", "true")
	e.RunFrame()
	assert.Equal(t, red, e.Image().RGBAAt(20, 0))
}

// TestEmulator_NarrowScreen tests the 304 pixel crop
func TestEmulator_NarrowScreen(t *testing.T) {
	e := newTestEmulator(t, 0)
	e.SetOption("narrow_screen", "true")
	assert.Equal(t, NarrowScreenWidth, e.Sprites().ScreenWidth())
	e.RunFrame()

	stride := e.GetFramebufferStride()
	fb := e.GetFramebuffer()
	assert.Equal(t, NarrowScreenWidth*4, stride)
	assert.Equal(t, NarrowScreenWidth*ScreenHeight*4, len(fb))

	// Bank moves 8 pixels left: red now starts at x=12 on every row
	for _, y := range []int{0, 15} {
		off := y*stride + 12*4
		assert.Equal(t, red.R, fb[off])
		assert.Equal(t, red.G, fb[off+1])
		off = y*stride + 11*4
		assert.Equal(t, white.G, fb[off+1])
	}

	e.SetOption("narrow_screen", "false")
	assert.Equal(t, ScreenWidth, e.Sprites().ScreenWidth())
	assert.Equal(t, ScreenWidth*4, e.GetFramebufferStride())
}

// TestEmulator_Animation tests the auto-animation frame divider
func TestEmulator_Animation(t *testing.T) {
	testCases := []struct {
		speed    int
		frames   int
		expected int
	}{
		{0, 1, 1},
		{0, 3, 3},
		{0, 9, 1},
		{2, 1, 1},
		{2, 3, 1},
		{2, 4, 2},
		{2, 7, 3},
	}

	for _, tc := range testCases {
		e := newTestEmulator(t, tc.speed)
		for i := 0; i < tc.frames; i++ {
			e.RunFrame()
		}
		if got := e.Sprites().AnimationFrame(); got != tc.expected {
			t.Errorf("speed %d after %d frames: expected frame %d, got %d",
				tc.speed, tc.frames, tc.expected, got)
		}
	}
}

// TestEmulator_PatchSpriteROM tests that patched tiles refresh transparency
func TestEmulator_PatchSpriteROM(t *testing.T) {
	e := newTestEmulator(t, 0)

	n := e.PatchSpriteROM(3*tileSize, make([]byte, tileSize))
	assert.Equal(t, tileSize, n)
	e.RunFrame()
	assert.Equal(t, white, e.Image().RGBAAt(20, 0))

	assert.Equal(t, 0, e.PatchSpriteROM(-1, []byte{1}))
	assert.Equal(t, 0, e.PatchSpriteROM(16*tileSize, []byte{1}))

	// A write running past the end is truncated
	n = e.PatchSpriteROM(16*tileSize-4, make([]byte, 8))
	assert.Equal(t, 4, n)
}

// TestEmulator_Region tests timing follows the region
func TestEmulator_Region(t *testing.T) {
	e := newTestEmulator(t, 0)
	assert.Equal(t, RegionNTSC, e.GetRegion())
	assert.Equal(t, NTSCTiming.FPS, e.GetTiming().FPS)

	e.SetRegion(RegionPAL)
	assert.Equal(t, RegionPAL, e.GetRegion())
	assert.Equal(t, PALTiming.FPS, e.GetTiming().FPS)
	assert.Equal(t, PALTiming.Scanlines, e.GetTiming().Scanlines)
}

// TestEmulator_ConfigErrors tests that bad ROMs are reported
func TestEmulator_ConfigErrors(t *testing.T) {
	_, err := NewEmulator(Config{
		ZoomROM:   make([]byte, 16),
		SpriteROM: NewSpriteROM(createTestSpriteROM(4)),
	})
	assert.True(t, errors.Is(err, ErrZoomROMSize))

	_, err = NewEmulator(Config{
		ZoomROM:   createTestZoomROM(),
		SpriteROM: SpriteROM{TileMask: 6},
	})
	assert.True(t, errors.Is(err, ErrTileMask))
}

// TestEmulator_ProgramHeader tests that the program header reaches the
// bank order quirk
func TestEmulator_ProgramHeader(t *testing.T) {
	program := make([]byte, 0x200)
	program[nghAddress+1] = 0x85

	vram := &VideoRAM{}
	vram.SetWord(scb3Base+3, scb3Sticky)
	e, err := NewEmulator(Config{
		ZoomROM:     createTestZoomROM(),
		SpriteROM:   NewSpriteROM(createTestSpriteROM(4)),
		VRAM:        vram,
		Program:     program,
		ScreenWidth: NarrowScreenWidth,
	})
	assert.NoError(t, err)
	assert.Equal(t, 4, e.Sprites().startBank(e.VRAM()))
	assert.Equal(t, NarrowScreenWidth, e.Sprites().ScreenWidth())
}

// TestEmulator_Logger tests that a configured logger reaches the compositor
func TestEmulator_Logger(t *testing.T) {
	logger := log.NewNop()
	e, err := NewEmulator(Config{
		ZoomROM:   createTestZoomROM(),
		SpriteROM: NewSpriteROM(createTestSpriteROM(4)),
		Logger:    logger,
	})
	assert.NoError(t, err)
	assert.True(t, e.logger == logger)
	assert.True(t, e.Sprites().logger == logger)

	e, err = NewEmulator(Config{
		ZoomROM:   createTestZoomROM(),
		SpriteROM: NewSpriteROM(createTestSpriteROM(4)),
	})
	assert.NoError(t, err)
	assert.True(t, e.logger != nil, "default logger")
	e.SetOption("sprites", "true")
}
