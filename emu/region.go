package emu

import (
	emucore "github.com/user-none/eblitui/api"
)

// Region is an alias for emucore.Region so internal code compiles unchanged.
type Region = emucore.Region

const (
	RegionNTSC = emucore.RegionNTSC
	RegionPAL  = emucore.RegionPAL
)

// RegionTiming holds the video timing for a region
type RegionTiming struct {
	Scanlines int // Total scanlines per frame
	FPS       int // Frames per second
}

// NTSC timing: 264 scanlines at 59.19 Hz
var NTSCTiming = RegionTiming{
	Scanlines: 264,
	FPS:       59,
}

// PAL timing: 312 scanlines at 50 Hz
var PALTiming = RegionTiming{
	Scanlines: 312,
	FPS:       50,
}

// GetTimingForRegion returns the appropriate timing constants
func GetTimingForRegion(r Region) RegionTiming {
	if r == RegionPAL {
		return PALTiming
	}
	return NTSCTiming
}
