package system

import (
	"github.com/Ali-Parandeh/tanks/ecs"
	"github.com/Ali-Parandeh/tanks/ecs/component"
)

// AudioSystem acts on the play and stop flags raised during the tick.
type AudioSystem struct {
	muted bool
}

func NewAudioSystem() *AudioSystem {
	return &AudioSystem{}
}

// SetMuted drops play requests and pauses everything already playing.
func (a *AudioSystem) SetMuted(muted bool) {
	a.muted = muted
}

func (a *AudioSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.AudioComponent.Kind(), func(_ ecs.Entity, audioComp *component.Audio) {
		count := min(len(audioComp.Play), len(audioComp.Stop), len(audioComp.Players), len(audioComp.Volume))

		for i := 0; i < count; i++ {
			player := audioComp.Players[i]
			play, stop := audioComp.Play[i], audioComp.Stop[i] || a.muted
			audioComp.Play[i] = false
			audioComp.Stop[i] = false
			if player == nil {
				continue
			}

			if stop && player.IsPlaying() {
				player.Pause()
				continue
			}
			if play && !stop && !player.IsPlaying() {
				player.SetVolume(audioComp.Volume[i])
				player.Rewind()
				player.Play()
			}
		}
	})

	if a.muted {
		ecs.ForEach(w, component.EngineAudioComponent.Kind(), func(_ ecs.Entity, engine *component.EngineAudio) {
			if p := engine.Player(); p != nil && p.IsPlaying() {
				p.Pause()
			}
			engine.Started = false
		})
	}
}
