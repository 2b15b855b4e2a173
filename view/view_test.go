package view

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/beatrace/audio"
	"github.com/lixenwraith/beatrace/parameter"
	"github.com/lixenwraith/beatrace/session"
	"github.com/lixenwraith/beatrace/status"
	"github.com/lixenwraith/beatrace/theme"
	"github.com/lixenwraith/beatrace/track"
	"github.com/lixenwraith/beatrace/vehicle"
	"github.com/lixenwraith/beatrace/vmath"
)

type fakeSource struct {
	snap session.Snapshot
	tr   session.Transform
	segs []*track.Segment
	th   theme.Theme
	f    audio.Features
}

func (f *fakeSource) Snapshot() session.Snapshot   { return f.snap }
func (f *fakeSource) Transform() session.Transform { return f.tr }
func (f *fakeSource) Segments() []*track.Segment   { return f.segs }
func (f *fakeSource) Theme() theme.Theme           { return f.th }
func (f *fakeSource) Features() audio.Features     { return f.f }

// straightTrack lays n segments of width 12 along x=0 starting at z0
func straightTrack(n int, z0 float64) []*track.Segment {
	segs := make([]*track.Segment, n)
	for i := range segs {
		z := z0 + float64(i)*parameter.TrackSegmentLength
		segs[i] = &track.Segment{
			Index: i,
			Z:     z,
			EndZ:  z + parameter.TrackSegmentLength,
			Width: parameter.TrackBaseWidth,
		}
	}
	return segs
}

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func rowText(screen tcell.Screen, y int) string {
	w, _ := screen.Size()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		ch, _, _, _ := screen.GetContent(x, y)
		if ch == 0 {
			ch = ' '
		}
		sb.WriteRune(ch)
	}
	return sb.String()
}

func playingSource() *fakeSource {
	return &fakeSource{
		snap: session.Snapshot{
			Phase:  session.PhasePlaying,
			Score:  120,
			Shield: 0.5,
			Speed:  1.5,
			Combo:  1,
		},
		tr:   session.Transform{Position: vmath.Vec3F{Y: parameter.VehicleHoverHeight}},
		segs: straightTrack(6, -40),
		th:   theme.Default(),
	}
}

func TestDrawHUD(t *testing.T) {
	screen := newScreen(t, 80, 30)
	r := NewRenderer(screen, DefaultConfig(), nil)
	src := playingSource()
	src.snap.Combo = 3
	src.snap.BoostCooldown = 1.3

	r.Draw(src)
	top := rowText(screen, 0)
	assert.Contains(t, top, "SCORE 120")
	assert.Contains(t, top, "SPEED 150")
	assert.Contains(t, top, "[■■■■■·····]")
	assert.Contains(t, top, "BOOST 1.3s")
	assert.Contains(t, top, "x3 COMBO")
	assert.Contains(t, rowText(screen, 1), "Playing")
}

func TestDrawTrackAndVehicle(t *testing.T) {
	screen := newScreen(t, 80, 30)
	cfg := DefaultConfig()
	r := NewRenderer(screen, cfg, nil)
	src := playingSource()
	src.segs[2].HasObstacle = true
	src.segs[2].Obstacle = vmath.OBB2{CX: 0, CZ: 20, HalfW: 1, HalfL: 1}

	r.Draw(src)

	vehicleRow := 30 - 1 - cfg.VehicleRow
	ch, _, _, _ := screen.GetContent(40, vehicleRow)
	assert.Equal(t, glyphVehicle, ch)

	// Walls sit symmetrically about the vehicle on a straight track
	row := []rune(rowText(screen, vehicleRow))
	var walls []int
	for x, c := range row {
		if c == wallGlyphs["solid"] {
			walls = append(walls, x)
		}
	}
	require.Len(t, walls, 2)
	assert.InDelta(t, 40-12.5, float64(walls[0]), 1)
	assert.InDelta(t, 40+12.5, float64(walls[1]), 1)

	// Obstacle 20 units ahead is 10 rows up at the centre
	ch, _, _, _ = screen.GetContent(40, vehicleRow-10)
	assert.Equal(t, glyphObstacle, ch)
}

func TestDrawSkyBeyondTrack(t *testing.T) {
	screen := newScreen(t, 40, 30)
	r := NewRenderer(screen, DefaultConfig(), nil)
	src := playingSource()
	src.segs = straightTrack(1, -10)

	r.Draw(src)
	// Row 2 is far beyond the only segment
	assert.Equal(t, strings.Repeat(" ", 40), rowText(screen, 2))
}

func TestDrawPhaseMessages(t *testing.T) {
	screen := newScreen(t, 60, 20)
	r := NewRenderer(screen, DefaultConfig(), nil)
	src := playingSource()

	src.snap.Phase = session.PhaseCountdown
	src.snap.Countdown = 2.4
	r.Draw(src)
	ch, _, _, _ := screen.GetContent(29, 10)
	assert.Equal(t, '3', ch)

	src.snap.Countdown = -0.2
	r.Draw(src)
	assert.Contains(t, rowText(screen, 10), "GO!")

	src.snap.Phase = session.PhaseGameOver
	src.snap.BestScore = 500
	r.Draw(src)
	assert.Contains(t, rowText(screen, 9), "GAME OVER")
	assert.Contains(t, rowText(screen, 10), "SCORE 120  BEST 500")
}

func TestStatusOverlay(t *testing.T) {
	screen := newScreen(t, 80, 30)
	reg := status.NewRegistry()
	reg.Ints.Get("track.active").Store(23)
	r := NewRenderer(screen, DefaultConfig(), reg)
	src := playingSource()

	r.Draw(src)
	assert.NotContains(t, rowText(screen, 3), "track.active")

	r.ToggleStatus()
	r.Draw(src)
	assert.Contains(t, rowText(screen, 3), "track.active: 23")
}

func TestDrawTinyScreen(t *testing.T) {
	screen := newScreen(t, 3, 2)
	r := NewRenderer(screen, DefaultConfig(), nil)
	assert.NotPanics(t, func() { r.Draw(playingSource()) })
}

func TestDrawLiveSession(t *testing.T) {
	screen := newScreen(t, 80, 40)
	reg := status.NewRegistry()
	s := session.New(session.DefaultConfig(), session.WithStatus(reg), session.WithRand(vmath.NewFastRand(3)))
	s.Init()
	r := NewRenderer(screen, DefaultConfig(), reg)
	r.ToggleStatus()

	for i := 0; i < 600; i++ {
		s.Update(1.0/60, nil, vehicle.Input{Steer: float64(i/90%3 - 1)})
		r.Draw(s)
	}
	assert.Contains(t, rowText(screen, 0), "SCORE")
}

func TestInputMapperHold(t *testing.T) {
	m := NewInputMapper(parameter.KeyHoldTimeout)
	now := time.Unix(100, 0)

	assert.Equal(t, ActionSteerLeft, m.Press(tcell.KeyLeft, 0, now))
	assert.Equal(t, ActionBoost, m.Press(tcell.KeyRune, 'w', now))
	in := m.Input(now.Add(100 * time.Millisecond))
	assert.Equal(t, vehicle.Input{Steer: -1, Boost: true}, in)

	// Repeats stopped
	assert.Equal(t, vehicle.Input{}, m.Input(now.Add(200*time.Millisecond)))
}

func TestInputMapperOppositeSteerCancels(t *testing.T) {
	m := NewInputMapper(parameter.KeyHoldTimeout)
	now := time.Unix(100, 0)

	m.Press(tcell.KeyRune, 'a', now)
	m.Press(tcell.KeyRune, 'd', now.Add(10*time.Millisecond))
	assert.Equal(t, 1.0, m.Input(now.Add(20*time.Millisecond)).Steer)

	assert.Equal(t, ActionSteerLeft, m.Press(tcell.KeyRune, 'A', now.Add(30*time.Millisecond)))
	in := m.Input(now.Add(40 * time.Millisecond))
	assert.Equal(t, -1.0, in.Steer)
	assert.True(t, in.Drift)

	m.Release()
	assert.Equal(t, vehicle.Input{}, m.Input(now.Add(40*time.Millisecond)))
}

func TestInputMapperCommands(t *testing.T) {
	m := NewInputMapper(parameter.KeyHoldTimeout)
	now := time.Unix(100, 0)

	tests := []struct {
		key  tcell.Key
		r    rune
		want Action
	}{
		{tcell.KeyEscape, 0, ActionQuit},
		{tcell.KeyCtrlC, 0, ActionQuit},
		{tcell.KeyRune, 'q', ActionQuit},
		{tcell.KeyRune, ' ', ActionRestart},
		{tcell.KeyRune, 't', ActionCycleTheme},
		{tcell.KeyF1, 0, ActionToggleStatus},
		{tcell.KeyDown, 0, ActionBrake},
		{tcell.KeyRune, 'z', ActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, m.Press(tt.key, tt.r, now))
		})
	}
	assert.True(t, m.Input(now).Restart)
	assert.True(t, m.Input(now).Brake)
	assert.Equal(t, ActionNone, m.HandleEvent(tcell.NewEventResize(10, 10), now))
}
