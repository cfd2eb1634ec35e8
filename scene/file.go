package scene

import (
	"fmt"

	"github.com/spf13/afero"
)

// Load reads and decodes a bundle from fs.
func Load(fs afero.Fs, path string) (*Scene, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene: %w", err)
	}
	s, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return s, nil
}

// Save encodes a scene and writes it to fs.
func Save(fs afero.Fs, path string, s *Scene) error {
	data, err := Encode(s)
	if err != nil {
		return err
	}
	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return fmt.Errorf("failed to write scene: %w", err)
	}
	return nil
}
