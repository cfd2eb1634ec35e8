package adapter

import (
	"errors"
	"testing"

	emucore "github.com/user-none/eblitui/api"
	"github.com/user-none/neospr/emu"
	"github.com/user-none/neospr/scene"
)

func createTestBundle(t *testing.T, region emu.Region) []byte {
	t.Helper()
	s := &scene.Scene{
		Region:      region,
		ScreenWidth: emu.ScreenWidth,
		ZoomROM:     make([]byte, emu.ZoomROMSize),
		Sprites:     emu.NewSpriteROM(make([]byte, 4*128)),
	}
	data, err := scene.Encode(s)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return data
}

// TestFactory_SystemInfo tests the metadata reported to frontends
func TestFactory_SystemInfo(t *testing.T) {
	info := (&Factory{}).SystemInfo()
	if len(info.Extensions) != 1 || info.Extensions[0] != scene.Extension {
		t.Errorf("Extensions: expected [%s], got %v", scene.Extension, info.Extensions)
	}
	if info.ScreenWidth != emu.ScreenWidth || info.MaxScreenHeight != emu.ScreenHeight {
		t.Errorf("screen: got %dx%d", info.ScreenWidth, info.MaxScreenHeight)
	}

	keys := map[string]bool{}
	for _, opt := range info.CoreOptions {
		keys[opt.Key] = true
	}
	for _, key := range []string{"narrow_screen", "sprites"} {
		if !keys[key] {
			t.Errorf("missing core option %q", key)
		}
	}
}

// TestFactory_DetectRegion tests region detection from the bundle header
func TestFactory_DetectRegion(t *testing.T) {
	f := &Factory{}

	region, ok := f.DetectRegion(createTestBundle(t, emu.RegionPAL))
	if !ok || region != emucore.RegionPAL {
		t.Errorf("PAL bundle: got %v, %v", region, ok)
	}

	region, ok = f.DetectRegion([]byte("not a scene bundle at all"))
	if ok || region != emucore.RegionNTSC {
		t.Errorf("garbage: got %v, %v", region, ok)
	}
}

// TestFactory_CreateEmulator tests emulator creation from a bundle
func TestFactory_CreateEmulator(t *testing.T) {
	f := &Factory{}

	// The frontend region wins over the bundle's
	e, err := f.CreateEmulator(createTestBundle(t, emu.RegionNTSC), emucore.RegionPAL)
	if err != nil {
		t.Fatalf("CreateEmulator: %v", err)
	}
	defer e.Close()
	if e.GetRegion() != emucore.RegionPAL {
		t.Errorf("region: expected PAL, got %v", e.GetRegion())
	}

	e.RunFrame()
	if got := len(e.GetFramebuffer()); got != emu.ScreenWidth*emu.ScreenHeight*4 {
		t.Errorf("framebuffer: expected %d bytes, got %d", emu.ScreenWidth*emu.ScreenHeight*4, got)
	}

	_, err = f.CreateEmulator([]byte("NEOSPRSC"), emucore.RegionNTSC)
	if !errors.Is(err, scene.ErrTooShort) {
		t.Errorf("short bundle: expected ErrTooShort, got %v", err)
	}
}
