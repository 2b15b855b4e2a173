package track

import (
	"github.com/lixenwraith/beatrace/audio"
	"github.com/lixenwraith/beatrace/parameter"
)

// triggerRule is one row of the selection table
// Dominant rules compete through a running maximum; override rules win outright when their predicate holds
type triggerRule struct {
	trigger  Trigger
	value    func(audio.Features) float64
	dominant bool
	override func(audio.Features) bool
}

// Evaluated top to bottom; later matches replace earlier ones
var triggerTable = []triggerRule{
	{trigger: TriggerBass, value: func(f audio.Features) float64 { return f.Bass }, dominant: true},
	{trigger: TriggerMid, value: func(f audio.Features) float64 { return f.Mid }, dominant: true},
	{trigger: TriggerTreble, value: func(f audio.Features) float64 { return f.Treble }, dominant: true},
	{trigger: TriggerEnergy, override: func(f audio.Features) bool { return f.Energy > parameter.TriggerEnergyOverride }},
	{trigger: TriggerBeat, override: func(f audio.Features) bool { return f.Beat }},
}

// SelectTrigger picks the pattern trigger for the current music
// Ties between bands go to the earlier band; silence falls back to random
func SelectTrigger(f audio.Features) Trigger {
	trigger := TriggerRandom
	maxVal := parameter.TriggerFloor
	for _, rule := range triggerTable {
		if rule.dominant {
			if v := rule.value(f); v > maxVal {
				maxVal = v
				trigger = rule.trigger
			}
			continue
		}
		if rule.override(f) {
			trigger = rule.trigger
		}
	}
	return trigger
}
