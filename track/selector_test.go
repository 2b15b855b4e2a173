package track

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/beatrace/audio"
)

func TestSelectTrigger(t *testing.T) {
	tests := []struct {
		name string
		in   audio.Features
		want Trigger
	}{
		{"silence", audio.Features{}, TriggerRandom},
		{"below floor", audio.Features{Bass: 0.3, Mid: 0.29}, TriggerRandom},
		{"bass dominant", audio.Features{Bass: 0.5, Mid: 0.4}, TriggerBass},
		{"mid dominant", audio.Features{Bass: 0.4, Mid: 0.5, Treble: 0.45}, TriggerMid},
		{"treble dominant", audio.Features{Treble: 0.7}, TriggerTreble},
		{"tie goes to earlier band", audio.Features{Bass: 0.5, Mid: 0.5}, TriggerBass},
		{"energy override", audio.Features{Bass: 0.9, Energy: 0.61}, TriggerEnergy},
		{"energy at limit", audio.Features{Bass: 0.9, Energy: 0.6}, TriggerBass},
		{"beat beats energy", audio.Features{Energy: 0.9, Beat: true}, TriggerBeat},
		{"beat alone", audio.Features{Beat: true}, TriggerBeat},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SelectTrigger(tc.in), "got %s", SelectTrigger(tc.in))
		})
	}
}

func poolNames(pool []*Pattern) []string {
	names := make([]string, len(pool))
	for i, p := range pool {
		names[i] = p.Name
	}
	return names
}

func TestDefaultLibraryPools(t *testing.T) {
	lib := DefaultLibrary()

	want := map[Trigger][]string{
		TriggerBass:   {"straight", "boostRun", "sweeper"},
		TriggerMid:    {"sCurve", "wave", "slalom"},
		TriggerTreble: {"chicane", "funnel", "gauntlet"},
		TriggerEnergy: {"sweeper", "gauntlet", "hairpin"},
		TriggerBeat:   {"hairpin", "chicane"},
		TriggerRandom: {"straight", "sCurve", "chicane", "sweeper", "wave", "slalom"},
	}
	for trig, names := range want {
		if diff := cmp.Diff(names, poolNames(lib.Pool(trig))); diff != "" {
			t.Errorf("pool %s mismatch (-want +got):\n%s", trig, diff)
		}
	}

	// Out of range triggers use the random pool
	assert.Equal(t, want[TriggerRandom], poolNames(lib.Pool(Trigger(42))))
	assert.Nil(t, lib.Pattern("nope"))
}

func TestMirrorSpec(t *testing.T) {
	in := SegmentSpec{Curve: 2.5, Width: 0.85, Obstacle: SideLeft, Boost: true}
	want := SegmentSpec{Curve: -2.5, Width: 0.85, Obstacle: SideRight, Boost: true}
	if diff := cmp.Diff(want, in.Mirrored()); diff != "" {
		t.Errorf("mirror mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, SideCenter, SideCenter.Mirror())
	assert.Equal(t, SideNone, SideNone.Mirror())
	assert.Equal(t, 0.0, SideCenter.Offset())
}

func TestNewLibraryUnknownPoolEntryPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewLibrary([]Pattern{{Name: "a"}}, map[Trigger][]string{TriggerRandom: {"b"}})
	})
}
