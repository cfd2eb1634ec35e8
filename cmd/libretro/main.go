package main

import (
	libretro "github.com/user-none/eblitui/libretro"
	"github.com/user-none/neospr/adapter"
)

func init() {
	// Scenes take no input
	libretro.RegisterFactory(&adapter.Factory{}, nil)
}

func main() {}
