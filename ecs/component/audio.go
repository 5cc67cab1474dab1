package component

import "github.com/hajimehoshi/ebiten/v2/audio"

// Audio holds an entity's one-shot clips. Systems raise Play/Stop flags by
// clip name and the audio system acts on them at the end of the tick.
type Audio struct {
	Names   []string
	Players []*audio.Player
	Volume  []float64
	Play    []bool
	Stop    []bool
}

var AudioComponent = NewComponent[Audio]()

func (a *Audio) index(name string) int {
	if a == nil {
		return -1
	}
	for i, n := range a.Names {
		if n == name {
			return i
		}
	}
	return -1
}

// Request queues the named clip to play. Unknown names are ignored.
func (a *Audio) Request(name string) bool {
	i := a.index(name)
	if i < 0 || i >= len(a.Play) {
		return false
	}
	a.Play[i] = true
	return true
}

// Halt queues the named clip to stop.
func (a *Audio) Halt(name string) bool {
	i := a.index(name)
	if i < 0 || i >= len(a.Stop) {
		return false
	}
	a.Stop[i] = true
	return true
}

type EngineClip int

const (
	EngineIdling EngineClip = iota
	EngineDriving
)

// EngineAudio loops the idle or driving engine sound. Each clip comes in a
// few pitch variants so tanks don't phase against each other.
type EngineAudio struct {
	Idling  []*audio.Player
	Driving []*audio.Player
	Volume  float64

	OriginalPitch float64
	PitchRange    float64
	Pitches       []float64

	Clip    EngineClip
	Variant int
	Started bool
}

var EngineAudioComponent = NewComponent[EngineAudio]()

// Player returns the player for the current clip and variant, if any.
func (e *EngineAudio) Player() *audio.Player {
	if e == nil {
		return nil
	}
	set := e.Idling
	if e.Clip == EngineDriving {
		set = e.Driving
	}
	if e.Variant < 0 || e.Variant >= len(set) {
		return nil
	}
	return set[e.Variant]
}
