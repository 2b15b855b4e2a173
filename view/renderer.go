package view

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/beatrace/audio"
	"github.com/lixenwraith/beatrace/parameter"
	"github.com/lixenwraith/beatrace/session"
	"github.com/lixenwraith/beatrace/status"
	"github.com/lixenwraith/beatrace/theme"
	"github.com/lixenwraith/beatrace/track"
	"github.com/lixenwraith/beatrace/vmath"
)

// Source is the read-only game state a frame is drawn from
type Source interface {
	Snapshot() session.Snapshot
	Transform() session.Transform
	Segments() []*track.Segment
	Theme() theme.Theme
	Features() audio.Features
}

// Config sets the top-down projection scale
type Config struct {
	UnitsPerRow float64 // world Z per terminal row
	UnitsPerCol float64 // world X per terminal column
	VehicleRow  int     // vehicle distance from the bottom row
}

func DefaultConfig() Config {
	return Config{UnitsPerRow: 2, UnitsPerCol: 0.5, VehicleRow: 3}
}

const (
	hudRows       = 2
	glyphObstacle = '◆'
	glyphBoost    = '≡'
	glyphMarker   = '┊'
	glyphVehicle  = '▲'
	glyphLeanL    = '◣'
	glyphLeanR    = '◢'
)

var wallGlyphs = map[string]rune{
	"solid":     '█',
	"wireframe": '▒',
	"energy":    '║',
	"glass":     '░',
	"glow":      '▓',
}

// Renderer draws a session onto a tcell screen
type Renderer struct {
	screen     tcell.Screen
	cfg        Config
	reg        *status.Registry
	showStatus bool
}

func NewRenderer(screen tcell.Screen, cfg Config, reg *status.Registry) *Renderer {
	return &Renderer{screen: screen, cfg: cfg, reg: reg}
}

func (r *Renderer) ToggleStatus() {
	r.showStatus = !r.showStatus
}

// camera maps world coordinates to cells around the vehicle
type camera struct {
	x, z       float64
	centerCol  int
	vehicleRow int
	jitter     int
	cfg        Config
}

func (c camera) col(x float64) int {
	return c.centerCol + c.jitter + int(math.Floor((x-c.x)/c.cfg.UnitsPerCol+0.5))
}

func (c camera) worldX(col int) float64 {
	return c.x + float64(col-c.centerCol-c.jitter)*c.cfg.UnitsPerCol
}

func (c camera) worldZ(row int) float64 {
	return c.z + float64(c.vehicleRow-row)*c.cfg.UnitsPerRow
}

// Draw renders one frame and shows it
func (r *Renderer) Draw(src Source) {
	r.screen.Clear()
	w, h := r.screen.Size()
	if w <= 0 || h <= hudRows {
		r.screen.Show()
		return
	}

	snap := src.Snapshot()
	tr := src.Transform()
	th := src.Theme()

	cam := camera{
		x:          tr.Position.X,
		z:          tr.Position.Z,
		centerCol:  w / 2,
		vehicleRow: max(hudRows, h-1-r.cfg.VehicleRow),
		cfg:        r.cfg,
	}
	if snap.Shake > 0 {
		cam.jitter = int(math.Round(snap.Shake * 4 * math.Sin(float64(snap.Frame)*1.7)))
	}

	glow := th.Style.GlowIntensity
	if th.Style.PulseWithBeat {
		glow = vmath.Clamp01(glow + src.Features().VisualIntensity()*0.5)
		if snap.Beat {
			glow = 1
		}
	}

	r.drawTrack(src.Segments(), th, cam, glow, w, h)
	r.drawVehicle(tr, snap, th, cam)
	r.drawHUD(snap, th, w)
	r.drawPhase(snap, w, h)
	if r.showStatus && r.reg != nil {
		r.drawStatus(w, h)
	}
	r.screen.Show()
}

func (r *Renderer) drawTrack(segs []*track.Segment, th theme.Theme, cam camera, glow float64, w, h int) {
	c, style := th.Colors, th.Style
	wallGlyph, ok := wallGlyphs[style.WallStyle]
	if !ok {
		wallGlyph = wallGlyphs["solid"]
	}
	wallColor := theme.Blend(c.WallBase, c.WallAccent, glow)
	halfThick := parameter.TrackWallThickness / 2

	i := 0
	// Bottom to top so z and the segment cursor only increase
	for row := h - 1; row >= hudRows; row-- {
		z := cam.worldZ(row)
		fog := th.FogFactor(z - cam.z)

		for i < len(segs) && segs[i].EndZ <= z {
			i++
		}
		if i >= len(segs) || z < segs[i].Z {
			sky := theme.Blend(style.SkyGradient[1], style.SkyGradient[0], float64(h-row)/float64(h))
			r.fillRow(row, w, tcell.StyleDefault.Background(sky.Tcell()))
			continue
		}
		s := segs[i]

		t := 0.0
		if span := s.EndZ - s.Z; span > 0 {
			t = (z - s.Z) / span
		}
		cx := vmath.Lerp(s.X, s.EndX, t)
		half := s.Width / 2

		floor := c.FloorPrimary
		if s.Index%2 != 0 {
			floor = c.FloorSecondary
		}
		floorStyle := tcell.StyleDefault.
			Background(theme.Blend(floor, c.Fog, fog).Tcell()).
			Foreground(theme.Blend(c.WallAccent.Scale(0.4), c.Fog, fog).Tcell())
		r.fillRow(row, w, tcell.StyleDefault.Background(c.Fog.Tcell()))

		left := cam.col(cx - half - halfThick)
		right := cam.col(cx + half + halfThick)
		for col := max(0, left+1); col < min(w, right); col++ {
			r.screen.SetContent(col, row, floorGlyph(style.FloorPattern, col-cam.col(cx), s.Index, row), nil, floorStyle)
		}

		wallStyle := tcell.StyleDefault.Foreground(theme.Blend(wallColor, c.Fog, fog).Tcell())
		r.set(left, row, w, wallGlyph, wallStyle)
		r.set(right, row, w, wallGlyph, wallStyle)

		if s.Index%4 == 0 {
			r.set(cam.col(cx), row, w, glyphMarker,
				floorStyle.Foreground(theme.Blend(c.CenterMarker, c.Fog, fog).Tcell()))
		}
	}

	for _, s := range segs {
		if s.HasBoost {
			r.drawBox(s.Boost, glyphBoost, c.BoostPad, th, cam, w, h)
		}
		if s.HasObstacle {
			r.drawBox(s.Obstacle, glyphObstacle, c.Obstacle, th, cam, w, h)
		}
	}
}

// drawBox fills every cell whose centre lies within b grown by half a cell
func (r *Renderer) drawBox(b vmath.OBB2, glyph rune, color theme.Color, th theme.Theme, cam camera, w, h int) {
	reach := math.Hypot(b.HalfW, b.HalfL)
	top := cam.vehicleRow - int(math.Ceil((b.CZ+reach-cam.z)/r.cfg.UnitsPerRow))
	bottom := cam.vehicleRow - int(math.Floor((b.CZ-reach-cam.z)/r.cfg.UnitsPerRow))
	if bottom < hudRows || top >= h {
		return
	}
	left := cam.col(b.CX - reach)
	right := cam.col(b.CX + reach)

	padW := b.HalfW + r.cfg.UnitsPerCol/2
	padL := b.HalfL + r.cfg.UnitsPerRow/2
	for row := max(hudRows, top); row <= min(h-1, bottom); row++ {
		z := cam.worldZ(row)
		fog := th.FogFactor(z - cam.z)
		st := tcell.StyleDefault.
			Foreground(theme.Blend(color, th.Colors.Fog, fog).Tcell()).
			Background(theme.Blend(th.Colors.FloorPrimary, th.Colors.Fog, fog).Tcell())
		for col := max(0, left); col <= min(w-1, right); col++ {
			lx, lz := b.ToLocal(cam.worldX(col), z)
			if math.Abs(lx) <= padW && math.Abs(lz) <= padL {
				r.screen.SetContent(col, row, glyph, nil, st)
			}
		}
	}
}

func (r *Renderer) drawVehicle(tr session.Transform, snap session.Snapshot, th theme.Theme, cam camera) {
	glyph := glyphVehicle
	switch {
	case tr.Roll > 0.1:
		glyph = glyphLeanR
	case tr.Roll < -0.1:
		glyph = glyphLeanL
	}
	color := theme.Color(0xffffff)
	if snap.Shake > 0.05 {
		color = th.Colors.Obstacle
	} else if snap.BoostCooldown > parameter.VehicleBoostCooldown-0.5 {
		color = th.Colors.BoostPad
	}
	w, _ := r.screen.Size()
	st := tcell.StyleDefault.
		Foreground(color.Tcell()).
		Background(th.Colors.FloorPrimary.Tcell()).
		Bold(true)
	r.set(cam.centerCol+cam.jitter, cam.vehicleRow, w, glyph, st)
}

func (r *Renderer) drawHUD(snap session.Snapshot, th theme.Theme, w int) {
	base := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	r.fillRow(0, w, base)
	r.fillRow(1, w, base)

	boost := "BOOST READY"
	if snap.BoostCooldown > 0 {
		boost = fmt.Sprintf("BOOST %.1fs", snap.BoostCooldown)
	}
	line := fmt.Sprintf(" SCORE %d  SPEED %3d  SHIELD %s  %s",
		snap.Score, int(snap.Speed*100), shieldBar(snap.Shield, 10), boost)
	r.text(0, 0, w, line, base)

	if snap.Combo > 1 {
		combo := fmt.Sprintf("x%d COMBO ", snap.Combo)
		r.text(w-len(combo), 0, w, combo, base.Foreground(th.Colors.WallAccent.Tcell()).Bold(true))
	}

	info := fmt.Sprintf(" %s  %.0fm  %s", snap.Phase, snap.Distance, snap.Pattern)
	r.text(0, 1, w, info, base.Foreground(tcell.ColorGray))
	if snap.Beat {
		r.text(w-3, 1, w, " ● ", base.Foreground(th.Colors.CenterMarker.Tcell()))
	}
}

func (r *Renderer) drawPhase(snap session.Snapshot, w, h int) {
	st := tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	mid := h / 2
	switch snap.Phase {
	case session.PhaseCountdown:
		msg := "GO!"
		if n := int(math.Ceil(snap.Countdown)); n > 0 {
			msg = fmt.Sprintf("%d", n)
		}
		r.centered(mid, w, msg, st)
	case session.PhaseGameOver:
		r.centered(mid-1, w, "GAME OVER", st.Foreground(tcell.ColorRed))
		r.centered(mid, w, fmt.Sprintf("SCORE %d  BEST %d", snap.Score, snap.BestScore), st)
		r.centered(mid+1, w, "press space to restart", st.Bold(false))
	}
}

func (r *Renderer) drawStatus(w, h int) {
	lines := r.reg.Lines()
	width := 0
	for _, l := range lines {
		width = max(width, len(l))
	}
	x := w - width - 2
	st := tcell.StyleDefault.Foreground(tcell.ColorLightGreen).Background(tcell.ColorBlack)
	for i, l := range lines {
		y := hudRows + 1 + i
		if y >= h {
			break
		}
		r.text(x, y, w, " "+l+strings.Repeat(" ", width-len(l)+1), st)
	}
}

func (r *Renderer) set(x, y, w int, ch rune, st tcell.Style) {
	if x < 0 || x >= w {
		return
	}
	r.screen.SetContent(x, y, ch, nil, st)
}

func (r *Renderer) fillRow(y, w int, st tcell.Style) {
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, ' ', nil, st)
	}
}

func (r *Renderer) text(x, y, w int, s string, st tcell.Style) {
	for _, ch := range s {
		r.set(x, y, w, ch, st)
		x++
	}
}

func (r *Renderer) centered(y, w int, s string, st tcell.Style) {
	r.text((w-len([]rune(s)))/2, y, w, s, st)
}

func shieldBar(shield float64, n int) string {
	filled := int(math.Round(vmath.Clamp01(shield) * float64(n)))
	return "[" + strings.Repeat("■", filled) + strings.Repeat("·", n-filled) + "]"
}

// floorGlyph draws the floor pattern, dx is the column offset from the centerline
func floorGlyph(pattern string, dx, index, row int) rune {
	switch pattern {
	case "grid":
		if dx%4 == 0 || row%3 == 0 {
			return '┼'
		}
	case "stripes":
		if dx%3 == 0 {
			return '│'
		}
	case "circuit":
		if (dx+index)%5 == 0 {
			return '·'
		}
	case "waves":
		if (dx+row)%4 == 0 {
			return '~'
		}
	case "hexagon":
		if (dx+row%2*2)%4 == 0 {
			return '⬡'
		}
	}
	return ' '
}
