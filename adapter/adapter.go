package adapter

import (
	"github.com/retroenv/retrogolib/log"
	emucore "github.com/user-none/eblitui/api"
	"github.com/user-none/neospr/emu"
	"github.com/user-none/neospr/scene"
)

// Compile-time interface check.
var _ emucore.CoreFactory = (*Factory)(nil)

// Factory implements emucore.CoreFactory for the sprite scene viewer.
// The "ROM" handed over by the frontend is a scene bundle.
type Factory struct {
	// Logger receives scene and slot messages; nil discards them.
	Logger *log.Logger
}

// SystemInfo returns system metadata for UI configuration.
func (f *Factory) SystemInfo() emucore.SystemInfo {
	return emucore.SystemInfo{
		Name:            "neospr",
		ConsoleName:     "SNK Neo Geo",
		Extensions:      []string{scene.Extension},
		ScreenWidth:     emu.ScreenWidth,
		MaxScreenHeight: emu.ScreenHeight,
		AspectRatio:     4.0 / 3.0,
		SampleRate:      48000,
		Players:         1,
		CoreOptions: []emucore.CoreOption{
			{
				Key:         "narrow_screen",
				Label:       "Narrow Screen",
				Description: "Show the 304 pixel wide picture",
				Type:        emucore.CoreOptionBool,
				Default:     "false",
				Category:    emucore.CoreOptionCategoryVideo,
			},
			{
				Key:         "sprites",
				Label:       "Sprite Layer",
				Description: "Draw the sprite layer",
				Type:        emucore.CoreOptionBool,
				Default:     "true",
				Category:    emucore.CoreOptionCategoryVideo,
			},
		},
		DataDirName: "neospr",
		CoreName:    emu.Name,
		CoreVersion: emu.Version,
	}
}

// CreateEmulator decodes a scene bundle and creates an emulator for it.
// The region recorded in the bundle is overridden by region.
func (f *Factory) CreateEmulator(rom []byte, region emucore.Region) (emucore.Emulator, error) {
	s, err := scene.Decode(rom)
	if err != nil {
		return nil, err
	}
	cfg := s.Config()
	cfg.Region = region
	cfg.Logger = f.Logger
	e, err := emu.NewEmulator(cfg)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// DetectRegion reads the region from the bundle header.
// The bool return indicates whether the data was a valid bundle.
func (f *Factory) DetectRegion(rom []byte) (emucore.Region, bool) {
	h, err := scene.PeekHeader(rom)
	if err != nil {
		return emu.RegionNTSC, false
	}
	return h.Region(), true
}
