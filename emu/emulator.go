package emu

import (
	"fmt"
	"image"

	"github.com/retroenv/retrogolib/log"
	emucore "github.com/user-none/eblitui/api"
)

// Compile-time interface check.
var _ emucore.Emulator = (*Emulator)(nil)

// Config describes a sprite scene to display.
type Config struct {
	ZoomROM     []byte    // L0 vertical shrink ROM, ZoomROMSize bytes
	SpriteROM   SpriteROM // decoded sprite graphics for slot 0
	VRAM        *VideoRAM // nil for empty video RAM
	Palette     *PaletteRAM
	Program     []byte // 68000 program ROM header, may be nil
	Region      Region
	ScreenWidth int // ScreenWidth or NarrowScreenWidth; 0 selects ScreenWidth
	AnimSpeed   int // frames between auto-animation steps, minus one
	Logger      *log.Logger
}

// Emulator drives the sprite compositor one frame at a time over a fixed
// video RAM image, so a scene can be shown by an eblitui frontend.
type Emulator struct {
	sprites   *Sprites
	vram      *VideoRAM
	palette   *PaletteRAM
	spriteROM []byte

	frame       *FrameBuffer
	framebuffer *image.RGBA

	region Region
	timing RegionTiming

	animSpeed int
	animTimer int

	// Narrow screen crop buffer
	cropBuffer []byte

	logger *log.Logger
}

// NewEmulator builds a compositor for cfg with the sprite ROM in slot 0.
func NewEmulator(cfg Config) (Emulator, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewNop()
	}

	sprites := NewSprites()
	sprites.SetLogger(logger)
	if err := sprites.SetZoomROM(cfg.ZoomROM); err != nil {
		return Emulator{}, err
	}
	if err := sprites.InitSprites(0, cfg.SpriteROM); err != nil {
		return Emulator{}, fmt.Errorf("failed to init sprites: %w", err)
	}
	if cfg.Program != nil {
		sprites.SetCPUReader(NewProgramBus(cfg.Program))
	}
	if cfg.ScreenWidth != 0 {
		sprites.SetScreenWidth(cfg.ScreenWidth)
	}

	vram := cfg.VRAM
	if vram == nil {
		vram = &VideoRAM{}
	}
	palette := cfg.Palette
	if palette == nil {
		palette = &PaletteRAM{}
	}

	logger.Debug("scene loaded",
		log.String("region", cfg.Region.String()),
		log.Int("width", sprites.ScreenWidth()),
		log.Int("anim_speed", cfg.AnimSpeed))

	return Emulator{
		sprites:     sprites,
		vram:        vram,
		palette:     palette,
		spriteROM:   cfg.SpriteROM.Data,
		frame:       NewFrameBuffer(ScreenWidth, ScreenHeight),
		framebuffer: image.NewRGBA(image.Rect(0, 0, ScreenWidth, ScreenHeight)),
		region:      cfg.Region,
		timing:      GetTimingForRegion(cfg.Region),
		animSpeed:   cfg.AnimSpeed,
		cropBuffer:  make([]byte, NarrowScreenWidth*ScreenHeight*4),
		logger:      logger,
	}, nil
}

// Sprites returns the compositor.
func (e *Emulator) Sprites() *Sprites {
	return e.sprites
}

// VRAM returns the video RAM being displayed.
func (e *Emulator) VRAM() *VideoRAM {
	return e.vram
}

// Image returns the last rendered frame at full width.
func (e *Emulator) Image() *image.RGBA {
	return e.framebuffer
}

// PatchSpriteROM overwrites sprite ROM bytes at offset and refreshes the
// transparency of the tiles written. It returns the number of bytes written.
func (e *Emulator) PatchSpriteROM(offset int, data []byte) int {
	if offset < 0 || offset >= len(e.spriteROM) {
		return 0
	}
	n := copy(e.spriteROM[offset:], data)
	e.sprites.UpdateSprites(offset, n)
	return n
}

// advanceAnimation steps the auto-animation counter when its timer expires.
func (e *Emulator) advanceAnimation() {
	if e.animTimer > 0 {
		e.animTimer--
		return
	}
	e.animTimer = e.animSpeed
	e.sprites.SetAnimationFrame(e.sprites.AnimationFrame() + 1)
}

// RunFrame renders one frame: backdrop, then the sprite layer.
func (e *Emulator) RunFrame() {
	e.advanceAnimation()
	e.frame.Fill(BackdropColour)
	e.sprites.RenderSprites(e.vram, e.frame)
	e.palette.resolve(e.framebuffer, e.frame)
}

// GetFramebuffer returns raw RGBA pixel data for current frame.
// In narrow screen mode only the left 304 pixels of each row are returned.
func (e *Emulator) GetFramebuffer() []byte {
	if e.sprites.ScreenWidth() == NarrowScreenWidth {
		dstStride := NarrowScreenWidth * 4
		for y := 0; y < ScreenHeight; y++ {
			srcOff := y * e.framebuffer.Stride
			copy(e.cropBuffer[y*dstStride:(y+1)*dstStride], e.framebuffer.Pix[srcOff:srcOff+dstStride])
		}
		return e.cropBuffer
	}
	return e.framebuffer.Pix
}

// GetFramebufferStride returns the stride (bytes per row) of the framebuffer.
func (e *Emulator) GetFramebufferStride() int {
	if e.sprites.ScreenWidth() == NarrowScreenWidth {
		return NarrowScreenWidth * 4
	}
	return e.framebuffer.Stride
}

// GetActiveHeight returns the visible height, which is fixed.
func (e *Emulator) GetActiveHeight() int {
	return ScreenHeight
}

// GetAudioSamples returns no samples; the sprite core has no audio.
func (e *Emulator) GetAudioSamples() []int16 {
	return nil
}

// SetInput is a no-op; scenes take no input.
func (e *Emulator) SetInput(player int, buttons uint32) {}

// GetRegion returns the emulator's region setting
func (e *Emulator) GetRegion() Region {
	return e.region
}

// SetRegion updates the emulator's region configuration
func (e *Emulator) SetRegion(region Region) {
	e.region = region
	e.timing = GetTimingForRegion(region)
}

// GetTiming returns FPS and scanline count for the current region.
func (e *Emulator) GetTiming() emucore.Timing {
	return emucore.Timing{
		FPS:       e.timing.FPS,
		Scanlines: e.timing.Scanlines,
	}
}

// SetOption applies a core option change identified by key.
func (e *Emulator) SetOption(key string, value string) {
	switch key {
	case "narrow_screen":
		if value == "true" {
			e.sprites.SetScreenWidth(NarrowScreenWidth)
		} else {
			e.sprites.SetScreenWidth(ScreenWidth)
		}
	case "sprites":
		e.sprites.SetLayerEnabled(value != "false")
	}
	e.logger.Debug("option set", log.String("key", key), log.String("value", value))
}

// Close releases any resources held by the emulator.
func (e *Emulator) Close() {}
