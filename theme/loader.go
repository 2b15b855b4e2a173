package theme

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// header is read first to pick the preset the file edits
type header struct {
	Base string `toml:"base"`
}

// file mirrors Theme plus the base key so Undecoded stays empty for valid files
type file struct {
	Base string `toml:"base"`
	Theme
}

// Load reads a theme file, decoding present keys over the selected preset
// Absent keys keep the preset value
func Load(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("read theme: %w", err)
	}
	t, err := Parse(string(data))
	if err != nil {
		return Theme{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Parse decodes TOML text, see Load
func Parse(data string) (Theme, error) {
	var h header
	if _, err := toml.Decode(data, &h); err != nil {
		return Theme{}, fmt.Errorf("%w: %v", ErrInvalidTheme, err)
	}
	base := h.Base
	if base == "" {
		base = "neon"
	}
	t, err := Preset(base)
	if err != nil {
		return Theme{}, err
	}

	f := file{Theme: t}
	md, err := toml.Decode(data, &f)
	if err != nil {
		return Theme{}, fmt.Errorf("%w: %v", ErrInvalidTheme, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Theme{}, fmt.Errorf("%w: unknown keys %s", ErrInvalidTheme, strings.Join(keys, ", "))
	}

	if err := f.Theme.Validate(); err != nil {
		return Theme{}, err
	}
	return f.Theme, nil
}
