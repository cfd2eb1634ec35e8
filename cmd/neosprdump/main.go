// Command neosprdump renders a sprite scene bundle to a PNG file.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/retrogolib/log"
	"github.com/spf13/afero"
	"github.com/user-none/neospr/emu"
	"github.com/user-none/neospr/internal/config"
	"github.com/user-none/neospr/scene"
)

func main() {
	scenePath := flag.String("scene", "", "path to scene bundle")
	outPath := flag.String("out", "frame.png", "output PNG path")
	scale := flag.Int("scale", 1, "integer output scale")
	frames := flag.Int("frames", 1, "frames to run before capturing")
	narrow := flag.Bool("narrow", false, "render the 304 pixel wide picture")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	if *scenePath == "" {
		fmt.Println("Usage: neosprdump -scene <bundle> [-out frame.png] [-scale n] [-frames n] [-narrow]")
		os.Exit(1)
	}

	logger := config.CreateLogger(*debug)

	fs := afero.NewOsFs()
	s, err := scene.Load(fs, *scenePath)
	if err != nil {
		logger.Error("Loading scene failed", log.Err(err))
		os.Exit(1)
	}

	cfg := s.Config()
	cfg.Logger = logger
	if *narrow {
		cfg.ScreenWidth = emu.NarrowScreenWidth
	}
	e, err := emu.NewEmulator(cfg)
	if err != nil {
		logger.Error("Creating emulator failed", log.Err(err))
		os.Exit(1)
	}

	img := renderFrames(&e, *frames)
	if err := writePNG(fs, *outPath, img, *scale); err != nil {
		logger.Error("Writing PNG failed", log.Err(err))
		os.Exit(1)
	}
	logger.Info("frame written",
		log.String("path", *outPath),
		log.Int("frames", *frames),
		log.Int("scale", *scale))
}
