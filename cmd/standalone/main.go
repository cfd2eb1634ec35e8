//go:build !libretro && !ios

package main

import (
	"flag"
	"os"

	"github.com/retroenv/retrogolib/log"
	"github.com/user-none/eblitui/standalone"
	"github.com/user-none/neospr/adapter"
	"github.com/user-none/neospr/internal/config"
)

func main() {
	scenePath := flag.String("rom", "", "path to scene bundle (opens UI if not provided)")
	regionFlag := flag.String("region", "auto", "region: auto, ntsc, or pal")
	narrow := flag.Bool("narrow", false, "show the 304 pixel wide picture")
	noSprites := flag.Bool("no-sprites", false, "disable the sprite layer")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	logger := config.CreateLogger(*debug)

	factory := &adapter.Factory{Logger: logger}

	if *scenePath != "" {
		options := map[string]string{}
		if *narrow {
			options["narrow_screen"] = "true"
		}
		if *noSprites {
			options["sprites"] = "false"
		}
		if err := standalone.RunDirect(factory, *scenePath, *regionFlag, options); err != nil {
			logger.Error("Running scene failed", log.Err(err))
			os.Exit(1)
		}
		return
	}

	if err := standalone.Run(factory); err != nil {
		logger.Error("Running frontend failed", log.Err(err))
		os.Exit(1)
	}
}
