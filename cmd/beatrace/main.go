package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/beatrace/audio"
	"github.com/lixenwraith/beatrace/audio/playback"
	"github.com/lixenwraith/beatrace/event"
	"github.com/lixenwraith/beatrace/parameter"
	"github.com/lixenwraith/beatrace/session"
	"github.com/lixenwraith/beatrace/status"
	"github.com/lixenwraith/beatrace/theme"
	"github.com/lixenwraith/beatrace/view"
	"github.com/lixenwraith/beatrace/vmath"
)

var (
	debugFlag = flag.Bool("debug", false, "Write a debug log to logs/beatrace.log")
	wavFlag   = flag.String("wav", "", "WAV file to race to (default: built-in beat synth)")
	themeFlag = flag.String("theme", "neon", "Theme preset name or path to a TOML theme file")
	seedFlag  = flag.Uint64("seed", 0, "Track generator seed (0: time based)")
	muteFlag  = flag.Bool("mute", false, "Run without audio output")
)

// effectFor maps session events to one-shot sounds
var effectFor = map[event.EventType]playback.Effect{
	event.EventBeat:          playback.EffectBeat,
	event.EventBoostPickup:   playback.EffectBoost,
	event.EventBoostFired:    playback.EffectBoost,
	event.EventCollision:     playback.EffectCollision,
	event.EventGameOver:      playback.EffectGameOver,
	event.EventCountdownTick: playback.EffectCountdown,
}

func main() {
	var screen tcell.Screen

	// Panic Recovery: Ensure terminal is reset even if the game crashes
	defer func() {
		if r := recover(); r != nil {
			if screen != nil {
				screen.Fini()
			}
			fmt.Fprintf(os.Stderr, "\n\x1b[31mBEATRACE CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	th, err := resolveTheme(*themeFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load theme: %v\n", err)
		os.Exit(1)
	}

	player := playback.NewPlayer()
	if !*muteFlag {
		if err := startMusic(player, *wavFlag); err != nil {
			log.Printf("audio disabled: %v", err)
		}
	}
	defer player.Cleanup()

	screen, err = tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	// Normal exit terminal cleanup
	defer screen.Fini()
	screen.HideCursor()

	reg := status.NewRegistry()
	opts := []session.Option{session.WithStatus(reg), session.WithEvents(event.NewEventQueue())}
	if *seedFlag != 0 {
		opts = append(opts, session.WithRand(vmath.NewFastRand(*seedFlag)))
	}
	cfg := session.DefaultConfig()
	cfg.Theme = th
	s := session.New(cfg, opts...)
	s.Init()

	run(screen, s, player, view.NewRenderer(screen, view.DefaultConfig(), reg))
}

// resolveTheme treats an existing file as a TOML theme, anything else as a preset name
func resolveTheme(arg string) (theme.Theme, error) {
	if _, err := os.Stat(arg); err == nil {
		return theme.Load(arg)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return theme.Theme{}, err
	}
	return theme.Preset(arg)
}

// startMusic opens the WAV file, or falls back to the beat synth, and starts playback
func startMusic(player *playback.Player, path string) error {
	if path == "" {
		rate := player.Rate()
		return player.Initialize(playback.NewBeatSynth(rate, parameter.SynthBPM), rate, nil)
	}
	music, format, closer, err := playback.OpenWAV(path)
	if err != nil {
		return err
	}
	if err := player.Initialize(music, format.SampleRate, closer); err != nil {
		closer()
		return err
	}
	return nil
}

func run(screen tcell.Screen, s *session.Session, player *playback.Player, renderer *view.Renderer) {
	mapper := view.NewInputMapper(parameter.KeyHoldTimeout)
	analyzer := audio.NewAnalyzer(parameter.AnalyzerWindowSize)
	samples := make([]float64, parameter.AnalyzerWindowSize)
	themes := theme.PresetNames()
	themeIdx := indexOf(themes, s.Theme().Name)

	eventChan := make(chan tcell.Event, 100)
	go func() {
		// Panic recovery for input polling goroutine to ensure terminal cleanup
		defer func() {
			if r := recover(); r != nil {
				screen.Fini()
				fmt.Fprintf(os.Stderr, "\r\n\x1b[31mEVENT POLLER CRASHED: %v\x1b[0m\r\n", r)
				fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
				os.Exit(1)
			}
		}()

		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	ticker := time.NewTicker(parameter.FrameInterval)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				switch mapper.HandleEvent(ev, time.Now()) {
				case view.ActionQuit:
					return
				case view.ActionToggleStatus:
					renderer.ToggleStatus()
				case view.ActionCycleTheme:
					themeIdx = (themeIdx + 1) % len(themes)
					if t, err := theme.Preset(themes[themeIdx]); err == nil {
						if err := s.SetTheme(t, false); err != nil {
							log.Printf("theme %s: %v", themes[themeIdx], err)
						}
					}
				}
			}

		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now

			var bins []uint8
			if tap := player.Tap(); tap != nil {
				bins = analyzer.Analyze(tap.Snapshot(samples))
			}
			s.Update(dt, bins, mapper.Input(now))

			s.Events().Drain(func(ev event.GameEvent) {
				if e, ok := effectFor[ev.Type]; ok {
					player.PlayEffect(e)
				}
			})
			renderer.Draw(s)
		}
	}
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return 0
}
