package entity

import (
	"fmt"
	"strings"

	"github.com/Ali-Parandeh/tanks/assets"
	"github.com/Ali-Parandeh/tanks/ecs/component"
	"github.com/Ali-Parandeh/tanks/prefabs"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

func buildAudioComponent(audioSpecs []prefabs.AudioSpec) (*component.Audio, error) {
	n := len(audioSpecs)
	if n == 0 {
		return nil, nil
	}

	names := make([]string, 0, n)
	players := make([]*audio.Player, 0, n)
	volume := make([]float64, 0, n)

	for i, clip := range audioSpecs {
		player, err := assets.LoadAudioPlayer(clip.File)
		if err != nil {
			return nil, fmt.Errorf("audio clip %d (%q): %w", i, clip.Name, err)
		}
		names = append(names, clip.Name)
		players = append(players, player)
		volume = append(volume, clip.Volume)
	}

	return &component.Audio{
		Names:   names,
		Players: players,
		Volume:  volume,
		Play:    make([]bool, n),
		Stop:    make([]bool, n),
	}, nil
}

func buildEngineAudio(spec prefabs.EngineSpec) (*component.EngineAudio, error) {
	if spec.Idling == "" || spec.Driving == "" {
		return nil, nil
	}

	original := spec.OriginalPitch
	if original <= 0 {
		original = 1
	}
	pitches := assets.PitchVariants(original, spec.PitchRange, spec.Variants)

	idling, err := assets.LoadLoopVariants(clipFile(spec.Idling), pitches)
	if err != nil {
		return nil, fmt.Errorf("engine idle: %w", err)
	}
	driving, err := assets.LoadLoopVariants(clipFile(spec.Driving), pitches)
	if err != nil {
		return nil, fmt.Errorf("engine driving: %w", err)
	}

	return &component.EngineAudio{
		Idling:        idling,
		Driving:       driving,
		Volume:        spec.Volume,
		OriginalPitch: original,
		PitchRange:    spec.PitchRange,
		Pitches:       pitches,
	}, nil
}

func clipFile(name string) string {
	if strings.HasSuffix(name, ".wav") {
		return name
	}
	return name + ".wav"
}
