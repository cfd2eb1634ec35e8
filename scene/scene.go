// Package scene reads and writes sprite scene bundles: a snapshot of
// everything the sprite compositor consumes (zoom ROM, sprite ROM, video
// RAM, palette RAM and the program header) in one compressed file.
package scene

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"

	"github.com/klauspost/compress/zstd"
	"github.com/user-none/neospr/emu"
)

// Bundle format constants
const (
	bundleMagic   = "NEOSPRSC"
	bundleVersion = 1
	headerSize    = 20 // magic(8) + version(2) + flags(2) + payloadCRC(4) + payloadLen(4)

	// Extension is the file extension of scene bundles.
	Extension = ".neospr"
)

// Header flags
const (
	FlagPAL    = 1 << 0
	FlagNarrow = 1 << 1
)

// maxPayloadSize bounds the decompressed payload (sprite ROMs top out at 64MiB).
const maxPayloadSize = 80 << 20

var (
	// ErrTooShort is returned when data is smaller than a bundle header.
	ErrTooShort = errors.New("scene bundle too short")

	// ErrMagic is returned when the bundle magic does not match.
	ErrMagic = errors.New("invalid scene bundle magic")

	// ErrVersion is returned for bundles newer than this reader.
	ErrVersion = errors.New("unsupported scene bundle version")

	// ErrCorrupt is returned when the payload checksum does not match.
	ErrCorrupt = errors.New("scene bundle data is corrupted")

	// ErrTruncated is returned when the payload ends before a section does.
	ErrTruncated = errors.New("scene bundle payload truncated")
)

// Scene is a decoded bundle.
type Scene struct {
	Region      emu.Region
	ScreenWidth int
	AnimSpeed   int

	ZoomROM []byte
	Program []byte
	VRAM    emu.VideoRAM
	Palette emu.PaletteRAM
	Sprites emu.SpriteROM
}

// Header is the uncompressed bundle header.
type Header struct {
	Version    uint16
	Flags      uint16
	PayloadCRC uint32
	PayloadLen uint32
}

// Region returns the region recorded in the header flags.
func (h Header) Region() emu.Region {
	if h.Flags&FlagPAL != 0 {
		return emu.RegionPAL
	}
	return emu.RegionNTSC
}

// Config returns an emulator configuration for the scene.
func (s *Scene) Config() emu.Config {
	return emu.Config{
		ZoomROM:     s.ZoomROM,
		SpriteROM:   s.Sprites,
		VRAM:        &s.VRAM,
		Palette:     &s.Palette,
		Program:     s.Program,
		Region:      s.Region,
		ScreenWidth: s.ScreenWidth,
		AnimSpeed:   s.AnimSpeed,
	}
}

// PeekHeader validates and returns the bundle header without decoding
// the payload.
func PeekHeader(data []byte) (Header, error) {
	if len(data) < headerSize {
		return Header{}, ErrTooShort
	}
	if string(data[0:8]) != bundleMagic {
		return Header{}, ErrMagic
	}
	h := Header{
		Version:    binary.LittleEndian.Uint16(data[8:10]),
		Flags:      binary.LittleEndian.Uint16(data[10:12]),
		PayloadCRC: binary.LittleEndian.Uint32(data[12:16]),
		PayloadLen: binary.LittleEndian.Uint32(data[16:20]),
	}
	if h.Version > bundleVersion {
		return Header{}, fmt.Errorf("%w: %d", ErrVersion, h.Version)
	}
	return h, nil
}

// Encode serializes a scene into a bundle.
func Encode(s *Scene) ([]byte, error) {
	if len(s.ZoomROM) != emu.ZoomROMSize {
		return nil, fmt.Errorf("%w: got %d bytes", emu.ErrZoomROMSize, len(s.ZoomROM))
	}

	payload := make([]byte, 0, payloadSize(s))
	payload = append(payload, s.ZoomROM...)
	payload = append(payload, s.VRAM.Bytes()...)
	payload = append(payload, s.Palette.Bytes()...)
	payload = binary.LittleEndian.AppendUint16(payload, uint16(s.AnimSpeed))
	payload = appendSection(payload, s.Program)
	payload = binary.LittleEndian.AppendUint32(payload, s.Sprites.TileMask)
	payload = binary.LittleEndian.AppendUint32(payload, uint32(s.Sprites.MaxTile))
	payload = appendSection(payload, s.Sprites.Data)

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create encoder: %w", err)
	}
	defer enc.Close()
	compressed := enc.EncodeAll(payload, nil)

	var flags uint16
	if s.Region == emu.RegionPAL {
		flags |= FlagPAL
	}
	if s.ScreenWidth == emu.NarrowScreenWidth {
		flags |= FlagNarrow
	}

	data := make([]byte, headerSize, headerSize+len(compressed))
	copy(data[0:8], bundleMagic)
	binary.LittleEndian.PutUint16(data[8:10], bundleVersion)
	binary.LittleEndian.PutUint16(data[10:12], flags)
	binary.LittleEndian.PutUint32(data[12:16], crc32.ChecksumIEEE(compressed))
	binary.LittleEndian.PutUint32(data[16:20], uint32(len(compressed)))
	return append(data, compressed...), nil
}

// Decode parses a bundle.
func Decode(data []byte) (*Scene, error) {
	h, err := PeekHeader(data)
	if err != nil {
		return nil, err
	}
	compressed := data[headerSize:]
	if uint32(len(compressed)) < h.PayloadLen {
		return nil, ErrTruncated
	}
	compressed = compressed[:h.PayloadLen]
	if crc32.ChecksumIEEE(compressed) != h.PayloadCRC {
		return nil, ErrCorrupt
	}

	dec, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxPayloadSize))
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}
	defer dec.Close()
	payload, err := dec.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	s := &Scene{
		Region:      h.Region(),
		ScreenWidth: emu.ScreenWidth,
	}
	if h.Flags&FlagNarrow != 0 {
		s.ScreenWidth = emu.NarrowScreenWidth
	}

	r := payloadReader{data: payload}
	s.ZoomROM = r.bytes(emu.ZoomROMSize)
	s.VRAM.Load(r.bytes(emu.VideoRAMWords * 2))
	s.Palette.Load(r.bytes(emu.PaletteEntries * 2))
	s.AnimSpeed = int(r.uint16())
	s.Program = r.section()
	tileMask := r.uint32()
	maxTile := int(r.uint32())
	s.Sprites = emu.SpriteROM{
		Data:     r.section(),
		TileMask: tileMask,
		MaxTile:  maxTile,
	}
	if r.short {
		return nil, ErrTruncated
	}
	return s, nil
}

func payloadSize(s *Scene) int {
	return emu.ZoomROMSize + emu.VideoRAMWords*2 + emu.PaletteEntries*2 + 2 +
		4 + len(s.Program) + 8 + 4 + len(s.Sprites.Data)
}

// appendSection appends a length-prefixed byte section.
func appendSection(dst, section []byte) []byte {
	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(section)))
	return append(dst, section...)
}

// payloadReader walks a decompressed payload. Reads past the end return
// zero values and set short.
type payloadReader struct {
	data   []byte
	offset int
	short  bool
}

func (r *payloadReader) bytes(n int) []byte {
	if n < 0 || r.offset+n > len(r.data) {
		r.short = true
		r.offset = len(r.data)
		return nil
	}
	b := r.data[r.offset : r.offset+n]
	r.offset += n
	return b
}

func (r *payloadReader) uint16() uint16 {
	b := r.bytes(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

func (r *payloadReader) uint32() uint32 {
	b := r.bytes(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (r *payloadReader) section() []byte {
	n := r.uint32()
	if n == 0 {
		return nil
	}
	return r.bytes(int(n))
}
