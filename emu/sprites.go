package emu

import "github.com/retroenv/retrogolib/log"

// Video geometry. Lines are numbered as the LSPC counts them; the visible
// picture covers lines 16-239.
const (
	TotalBanks        = 0x17D
	FirstVisibleLine  = 0x10
	LastVisibleLine   = 0xF0 // exclusive
	ScreenHeight      = LastVisibleLine - FirstVisibleLine
	ScreenWidth       = 320
	NarrowScreenWidth = 304
)

// Banks at x positions at or past xWrap sit left of the screen.
const (
	xWrap   = 0x1E0
	xPeriod = 0x200
)

// Samurai Shodown RPG relies on undefined bank ordering. Its NGH number
// sits in the program header at nghAddress.
const (
	nghAddress = 0x108
	nghSSRPG   = 0x0085
)

// CPUReader reads a word from the main CPU address space without side effects.
type CPUReader interface {
	ReadWord(addr uint32) uint16
}

// Sprites composites the sprite layer. It owns the sprite ROM slots and
// holds the per-bank state the bank renderers read while a frame is drawn.
//
// Sprites is not safe for concurrent use: InitSprites, SetSpriteSlot,
// UpdateSprites, ExitSprites and RenderSprites each need exclusive access.
type Sprites struct {
	slots       [MaxSlot]spriteSlot
	active      activeSlot
	activeIndex int

	zoomROM []byte
	cpu     CPUReader
	logger  *log.Logger

	screenWidth  int
	layerEnabled bool
	sliceStart   int
	sliceEnd     int
	animFrame    int

	// Frame state, valid during RenderSprites
	vram      *VideoRAM
	fb        *FrameBuffer
	drawWidth int
	lineStart int
	lineEnd   int

	// Bank state. Position and size carry over to sticky banks.
	bank      int
	bankSize  int
	bankXPos  int
	bankYPos  int
	bankXZoom int
	bankYZoom int
}

// NewSprites returns a compositor with no slots, a 320 pixel screen and
// the sprite layer enabled.
func NewSprites() *Sprites {
	return &Sprites{
		activeIndex:  -1,
		logger:       log.NewNop(),
		screenWidth:  ScreenWidth,
		layerEnabled: true,
		sliceStart:   FirstVisibleLine,
		sliceEnd:     LastVisibleLine,
	}
}

// SetLogger sets the logger used for slot lifecycle messages.
func (s *Sprites) SetLogger(logger *log.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// SetCPUReader sets the main CPU reader used by the Samurai Shodown RPG
// bank order quirk. nil disables it.
func (s *Sprites) SetCPUReader(cpu CPUReader) {
	s.cpu = cpu
}

// SetScreenWidth selects a 320 or 304 pixel wide screen. Other values are ignored.
func (s *Sprites) SetScreenWidth(width int) {
	if width == ScreenWidth || width == NarrowScreenWidth {
		s.screenWidth = width
	}
}

// ScreenWidth returns the configured screen width.
func (s *Sprites) ScreenWidth() int {
	return s.screenWidth
}

// SetLayerEnabled turns sprite rendering on or off.
func (s *Sprites) SetLayerEnabled(enabled bool) {
	s.layerEnabled = enabled
}

// LayerEnabled reports whether the sprite layer is drawn.
func (s *Sprites) LayerEnabled() bool {
	return s.layerEnabled
}

// SetSlice limits rendering to lines [start, end). It is clamped to the
// visible lines when a frame is rendered.
func (s *Sprites) SetSlice(start, end int) {
	s.sliceStart = start
	s.sliceEnd = end
}

// SetAnimationFrame sets the auto-animation counter.
func (s *Sprites) SetAnimationFrame(frame int) {
	s.animFrame = frame & 0x07
}

// AnimationFrame returns the auto-animation counter.
func (s *Sprites) AnimationFrame() int {
	return s.animFrame
}

// RenderSprites draws every active bank into fb, whose row 0 is
// FirstVisibleLine. It returns false without drawing when no slot is
// active, the layer is disabled or no zoom ROM is installed.
func (s *Sprites) RenderSprites(vram *VideoRAM, fb *FrameBuffer) bool {
	if s.activeIndex < 0 || !s.layerEnabled || s.zoomROM == nil {
		return false
	}

	s.vram = vram
	s.fb = fb
	defer func() {
		s.vram = nil
		s.fb = nil
	}()

	s.drawWidth = s.screenWidth
	if fb.Width < s.drawWidth {
		s.drawWidth = fb.Width
	}
	s.lineStart = max(s.sliceStart, FirstVisibleLine)
	s.lineEnd = min(s.sliceEnd, LastVisibleLine, FirstVisibleLine+fb.Height)

	s.bankSize, s.bankXPos, s.bankYPos = 0, 0, 0
	s.bankXZoom, s.bankYZoom = 0, 0

	start := s.startBank(vram)
	for i := 0; i < TotalBanks; i++ {
		s.bank = (i + start) % TotalBanks
		shrink := vram.Word(scb2Base + s.bank)
		ctrl := vram.Word(scb3Base + s.bank)

		if ctrl&scb3Sticky != 0 {
			s.bankXPos += s.bankXZoom + 1
		} else {
			s.bankYPos = (0x200 - int(ctrl>>7)) & 0x1FF
			s.bankXPos = int(vram.Word(scb4Base+s.bank) >> 7)
			if s.screenWidth == NarrowScreenWidth {
				s.bankXPos -= 8
			}
			s.bankYZoom = int(shrink & 0xFF)
			s.bankSize = int(ctrl & scb3SizeMask)
		}

		if s.bankSize == 0 {
			continue
		}

		s.bankXZoom = int(shrink>>8) & 0x0F
		if s.bankXPos >= xWrap {
			s.bankXPos -= xPeriod
		}

		if s.bankXPos >= 0 && s.bankXPos < s.drawWidth-s.bankXZoom-1 {
			bankRenderers[s.bankXZoom](s)
		} else if s.bankXPos >= -s.bankXZoom && s.bankXPos < s.drawWidth {
			bankRenderers[s.bankXZoom+16](s)
		}
	}

	return true
}

// startBank returns the bank the frame starts from. It is 0 except for
// Samurai Shodown RPG, which expects drawing to begin after a sticky chain
// that starts at bank 3.
func (s *Sprites) startBank(vram *VideoRAM) int {
	if s.cpu == nil || s.cpu.ReadWord(nghAddress) != nghSSRPG {
		return 0
	}
	if vram.Word(scb3Base+2)&scb3Sticky != 0 || vram.Word(scb3Base+3)&scb3Sticky == 0 {
		return 0
	}
	start := 3
	for start < TotalBanks && vram.Word(scb3Base+start)&scb3Sticky != 0 {
		start++
	}
	if start == 3 || start == TotalBanks {
		return 0
	}
	return start
}
