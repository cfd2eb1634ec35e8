package emu

// Core identification reported to frontends.
const (
	Name    = "neospr"
	Version = "0.1.0"
)
