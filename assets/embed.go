// Package assets embeds the game's sound clips and turns them into ebiten
// audio players.
package assets

import (
	"bytes"
	"embed"
	"encoding/binary"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

const SampleRate = 44100

// bytesPerFrame is one 16-bit stereo frame, the format ebiten players take.
const bytesPerFrame = 4

//go:embed *.wav
var assetsFS embed.FS

var (
	audioOnce    sync.Once
	audioContext *audio.Context
)

func audioCtx() *audio.Context {
	audioOnce.Do(func() {
		audioContext = audio.CurrentContext()
		if audioContext == nil {
			audioContext = audio.NewContext(SampleRate)
		}
	})
	return audioContext
}

// LoadFile loads an embedded asset by assets-relative path.
func LoadFile(path string) ([]byte, error) {
	return assetsFS.ReadFile(cleanAssetPath(path))
}

// LoadPCM decodes an embedded clip to 16-bit stereo PCM at SampleRate.
func LoadPCM(path string) ([]byte, error) {
	b, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(strings.ToLower(path), ".wav") {
		// already in ebiten's native format
		return b, nil
	}
	stream, err := wav.DecodeWithSampleRate(SampleRate, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode wav %q: %w", path, err)
	}
	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("read wav %q: %w", path, err)
	}
	return pcm, nil
}

// LoadAudioPlayer loads an embedded clip for one-shot playback.
func LoadAudioPlayer(path string) (*audio.Player, error) {
	pcm, err := LoadPCM(path)
	if err != nil {
		return nil, err
	}
	return audioCtx().NewPlayerFromBytes(pcm), nil
}

// LoadLoopVariants returns one looping player per pitch, each a resampled
// copy of the clip.
func LoadLoopVariants(path string, pitches []float64) ([]*audio.Player, error) {
	pcm, err := LoadPCM(path)
	if err != nil {
		return nil, err
	}
	if len(pitches) == 0 {
		pitches = []float64{1}
	}

	players := make([]*audio.Player, 0, len(pitches))
	for _, pitch := range pitches {
		shifted := Resample(pcm, pitch)
		loop := audio.NewInfiniteLoop(bytes.NewReader(shifted), int64(len(shifted)))
		player, err := audioCtx().NewPlayer(loop)
		if err != nil {
			return nil, fmt.Errorf("loop %q at pitch %.2f: %w", path, pitch, err)
		}
		players = append(players, player)
	}
	return players, nil
}

// PitchVariants spreads n pitches evenly over [original-spread, original+spread].
func PitchVariants(original, spread float64, n int) []float64 {
	if n <= 1 || spread == 0 {
		return []float64{original}
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = original - spread + 2*spread*float64(i)/float64(n-1)
	}
	return out
}

// Resample plays 16-bit stereo PCM back at pitch times the speed, which also
// shifts its pitch, using linear interpolation.
func Resample(pcm []byte, pitch float64) []byte {
	frames := len(pcm) / bytesPerFrame
	if pitch <= 0 || pitch == 1 || frames < 2 {
		out := make([]byte, frames*bytesPerFrame)
		copy(out, pcm)
		return out
	}

	sample := func(frame, ch int) float64 {
		off := frame*bytesPerFrame + ch*2
		return float64(int16(binary.LittleEndian.Uint16(pcm[off:])))
	}

	n := int(float64(frames-1)/pitch) + 1
	out := make([]byte, n*bytesPerFrame)
	for i := 0; i < n; i++ {
		pos := float64(i) * pitch
		f := int(pos)
		if f >= frames-1 {
			f = frames - 2
		}
		frac := pos - float64(f)
		for ch := 0; ch < 2; ch++ {
			v := sample(f, ch)*(1-frac) + sample(f+1, ch)*frac
			binary.LittleEndian.PutUint16(out[i*bytesPerFrame+ch*2:], uint16(int16(v)))
		}
	}
	return out
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if idx := strings.LastIndex(s, "assets/"); idx >= 0 {
		return s[idx+len("assets/"):]
	}
	return s
}
