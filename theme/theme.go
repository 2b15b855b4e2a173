package theme

import (
	"errors"
	"fmt"
	"slices"
	"sort"
)

var ErrInvalidTheme = errors.New("invalid theme")

// TrackColors drives floor, wall, hazard and fog rendering
type TrackColors struct {
	FloorPrimary     Color   `toml:"floor_primary"`
	FloorSecondary   Color   `toml:"floor_secondary"`
	WallBase         Color   `toml:"wall_base"`
	WallAccent       Color   `toml:"wall_accent"`
	Obstacle         Color   `toml:"obstacle"`
	BoostPad         Color   `toml:"boost_pad"`
	CenterMarker     Color   `toml:"center_marker"`
	Fog              Color   `toml:"fog"`
	FogNear          float64 `toml:"fog_near"`
	FogFar           float64 `toml:"fog_far"`
	Ambient          Color   `toml:"ambient"`
	AmbientIntensity float64 `toml:"ambient_intensity"`
}

// VisualStyle selects decorative variants and effect strength
type VisualStyle struct {
	WallStyle       string   `toml:"wall_style"`
	FloorPattern    string   `toml:"floor_pattern"`
	GlowIntensity   float64  `toml:"glow_intensity"`
	ParticleType    string   `toml:"particle_type"`
	ParticleDensity float64  `toml:"particle_density"`
	PulseWithBeat   bool     `toml:"pulse_with_beat"`
	SkyGradient     [2]Color `toml:"sky_gradient"`
}

// Theme is a complete, validated look for the track
type Theme struct {
	Name   string      `toml:"name"`
	Colors TrackColors `toml:"colors"`
	Style  VisualStyle `toml:"style"`
}

var (
	WallStyles    = []string{"solid", "wireframe", "energy", "glass", "glow"}
	FloorPatterns = []string{"solid", "grid", "stripes", "circuit", "waves", "hexagon"}
	ParticleTypes = []string{"sparks", "bubbles", "petals", "embers", "data", "snow", "dust", "code"}
)

// Default returns the neon look used when no theme is given
func Default() Theme {
	return Theme{
		Name: "neon",
		Colors: TrackColors{
			FloorPrimary:     0x0a0a18,
			FloorSecondary:   0x0f0f22,
			WallBase:         0x1a0033,
			WallAccent:       0xff00ff,
			Obstacle:         0xff0044,
			BoostPad:         0x00ffff,
			CenterMarker:     0xff00ff,
			Fog:              0x000008,
			FogNear:          30,
			FogFar:           200,
			Ambient:          0x111122,
			AmbientIntensity: 0.3,
		},
		Style: VisualStyle{
			WallStyle:       "solid",
			FloorPattern:    "solid",
			GlowIntensity:   0.5,
			ParticleType:    "sparks",
			ParticleDensity: 0.4,
			PulseWithBeat:   true,
			SkyGradient:     [2]Color{0x000005, 0x000010},
		},
	}
}

// presets are sparse edits applied over Default
var presets = map[string]func(t *Theme){
	"neon": func(t *Theme) {},
	"ocean": func(t *Theme) {
		t.Colors.FloorPrimary, t.Colors.FloorSecondary = 0x001a2c, 0x00223a
		t.Colors.WallBase, t.Colors.WallAccent = 0x001830, 0x00bfff
		t.Colors.CenterMarker = 0x00bfff
		t.Colors.Fog, t.Colors.FogNear, t.Colors.FogFar = 0x000810, 20, 300
		t.Style.WallStyle, t.Style.FloorPattern = "glass", "waves"
		t.Style.ParticleType = "bubbles"
		t.Style.SkyGradient = [2]Color{0x000510, 0x001830}
	},
	"volcanic": func(t *Theme) {
		t.Colors.FloorPrimary, t.Colors.FloorSecondary = 0x1a0808, 0x220a0a
		t.Colors.WallBase, t.Colors.WallAccent = 0x1a0505, 0xff4400
		t.Colors.Obstacle, t.Colors.BoostPad = 0xffcc00, 0xff8800
		t.Colors.CenterMarker = 0xff4400
		t.Colors.Fog, t.Colors.FogNear, t.Colors.FogFar = 0x0a0000, 15, 200
		t.Style.WallStyle, t.Style.FloorPattern = "energy", "hexagon"
		t.Style.GlowIntensity, t.Style.ParticleType = 0.8, "embers"
		t.Style.SkyGradient = [2]Color{0x0a0000, 0x1a0505}
	},
	"cyber": func(t *Theme) {
		t.Colors.FloorPrimary, t.Colors.FloorSecondary = 0x0a0015, 0x100020
		t.Colors.WallBase, t.Colors.WallAccent = 0x150020, 0x00ff88
		t.Colors.Fog, t.Colors.FogNear, t.Colors.FogFar = 0x08000f, 25, 250
		t.Style.WallStyle, t.Style.FloorPattern = "wireframe", "circuit"
		t.Style.ParticleType, t.Style.ParticleDensity = "data", 0.6
		t.Style.SkyGradient = [2]Color{0x05000a, 0x150020}
	},
	"ice": func(t *Theme) {
		t.Colors.FloorPrimary, t.Colors.FloorSecondary = 0x0a1a2a, 0x10243a
		t.Colors.WallBase, t.Colors.WallAccent = 0x1a3040, 0xe0ffff
		t.Colors.Obstacle, t.Colors.CenterMarker = 0xff3366, 0xe0ffff
		t.Colors.Fog, t.Colors.FogNear, t.Colors.FogFar = 0x102030, 30, 280
		t.Style.WallStyle, t.Style.FloorPattern = "glow", "grid"
		t.Style.ParticleType, t.Style.PulseWithBeat = "snow", false
		t.Style.SkyGradient = [2]Color{0x0a1020, 0x203040}
	},
}

// Preset returns a named preset over the defaults
func Preset(name string) (Theme, error) {
	apply, ok := presets[name]
	if !ok {
		return Theme{}, fmt.Errorf("%w: unknown preset %q", ErrInvalidTheme, name)
	}
	t := Default()
	t.Name = name
	apply(&t)
	return t, nil
}

// PresetNames lists presets in sorted order
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Validate checks ranges and enumerated style names
func (t Theme) Validate() error {
	c, s := t.Colors, t.Style
	switch {
	case c.FogNear < 0 || c.FogFar <= c.FogNear:
		return fmt.Errorf("%w: fog range %.1f..%.1f", ErrInvalidTheme, c.FogNear, c.FogFar)
	case c.AmbientIntensity < 0 || c.AmbientIntensity > 1:
		return fmt.Errorf("%w: ambient intensity %.2f", ErrInvalidTheme, c.AmbientIntensity)
	case s.GlowIntensity < 0 || s.GlowIntensity > 1:
		return fmt.Errorf("%w: glow intensity %.2f", ErrInvalidTheme, s.GlowIntensity)
	case s.ParticleDensity < 0 || s.ParticleDensity > 1:
		return fmt.Errorf("%w: particle density %.2f", ErrInvalidTheme, s.ParticleDensity)
	case !slices.Contains(WallStyles, s.WallStyle):
		return fmt.Errorf("%w: wall style %q", ErrInvalidTheme, s.WallStyle)
	case !slices.Contains(FloorPatterns, s.FloorPattern):
		return fmt.Errorf("%w: floor pattern %q", ErrInvalidTheme, s.FloorPattern)
	case !slices.Contains(ParticleTypes, s.ParticleType):
		return fmt.Errorf("%w: particle type %q", ErrInvalidTheme, s.ParticleType)
	}
	return nil
}

// FogFactor returns 0 inside FogNear, 1 beyond FogFar
func (t Theme) FogFactor(dist float64) float64 {
	c := t.Colors
	if dist <= c.FogNear {
		return 0
	}
	if dist >= c.FogFar {
		return 1
	}
	return (dist - c.FogNear) / (c.FogFar - c.FogNear)
}
