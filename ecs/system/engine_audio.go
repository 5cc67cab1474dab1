package system

import (
	"math"
	"math/rand/v2"

	"github.com/Ali-Parandeh/tanks/ecs"
	"github.com/Ali-Parandeh/tanks/ecs/component"
)

// engineDriveThreshold is the axis magnitude above which a tank sounds like
// it is driving.
const engineDriveThreshold = 0.1

type EngineAudioSystem struct {
	pick func(n int) int
}

func NewEngineAudioSystem() *EngineAudioSystem {
	return &EngineAudioSystem{pick: rand.IntN}
}

func (s *EngineAudioSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	ecs.ForEach2(w, component.EngineAudioComponent.Kind(), component.InputComponent.Kind(), func(e ecs.Entity, engine *component.EngineAudio, input *component.Input) {
		if !isActive(w, e) {
			if p := engine.Player(); p != nil && p.IsPlaying() {
				p.Pause()
			}
			engine.Started = false
			return
		}

		want := component.EngineIdling
		if math.Abs(input.MoveAxis) >= engineDriveThreshold || math.Abs(input.TurnAxis) >= engineDriveThreshold {
			want = component.EngineDriving
		}

		if engine.Started && want == engine.Clip {
			return
		}

		if p := engine.Player(); p != nil && p.IsPlaying() {
			p.Pause()
		}

		engine.Clip = want
		engine.Variant = s.variant(engine)
		engine.Started = true

		if p := engine.Player(); p != nil {
			p.SetVolume(engine.Volume)
			p.Rewind()
			p.Play()
		}
	})
}

func (s *EngineAudioSystem) variant(engine *component.EngineAudio) int {
	n := len(engine.Idling)
	if engine.Clip == component.EngineDriving {
		n = len(engine.Driving)
	}
	if n <= 1 || s.pick == nil {
		return 0
	}
	return s.pick(n)
}

// EnginePitch is the playback pitch of the current engine variant, or the
// original pitch when no variants were generated.
func EnginePitch(engine *component.EngineAudio) float64 {
	if engine == nil {
		return 1
	}
	if engine.Variant >= 0 && engine.Variant < len(engine.Pitches) {
		return engine.Pitches[engine.Variant]
	}
	return engine.OriginalPitch
}
