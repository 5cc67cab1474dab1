package assets

import (
	"encoding/binary"
	"math"
	"testing"
)

func stereoPCM(samples ...int16) []byte {
	out := make([]byte, 0, len(samples)*bytesPerFrame)
	for _, s := range samples {
		out = binary.LittleEndian.AppendUint16(out, uint16(s))
		out = binary.LittleEndian.AppendUint16(out, uint16(-s))
	}
	return out
}

func frameAt(pcm []byte, i int) (int16, int16) {
	off := i * bytesPerFrame
	return int16(binary.LittleEndian.Uint16(pcm[off:])), int16(binary.LittleEndian.Uint16(pcm[off+2:]))
}

func TestPitchVariants(t *testing.T) {
	tests := []struct {
		name     string
		original float64
		spread   float64
		n        int
		want     []float64
	}{
		{name: "single", original: 1, spread: 0.2, n: 1, want: []float64{1}},
		{name: "no spread", original: 1, spread: 0, n: 4, want: []float64{1}},
		{name: "three", original: 1, spread: 0.2, n: 3, want: []float64{0.8, 1, 1.2}},
		{name: "five", original: 1, spread: 0.2, n: 5, want: []float64{0.8, 0.9, 1, 1.1, 1.2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PitchVariants(tt.original, tt.spread, tt.n)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d pitches, got %v", len(tt.want), got)
			}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-9 {
					t.Fatalf("pitch %d: expected %v, got %v", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestResample(t *testing.T) {
	pcm := stereoPCM(0, 100, 200, 300, 400)

	t.Run("pitch one copies", func(t *testing.T) {
		out := Resample(pcm, 1)
		if len(out) != len(pcm) {
			t.Fatalf("expected %d bytes, got %d", len(pcm), len(out))
		}
		out[0] = 1
		if pcm[0] == 1 {
			t.Fatalf("expected a copy, not an alias")
		}
	})

	t.Run("double speed halves length", func(t *testing.T) {
		out := Resample(pcm, 2)
		if got := len(out) / bytesPerFrame; got != 3 {
			t.Fatalf("expected 3 frames, got %d", got)
		}
		for i, want := range []int16{0, 200, 400} {
			l, r := frameAt(out, i)
			if l != want || r != -want {
				t.Fatalf("frame %d: expected (%d,%d), got (%d,%d)", i, want, -want, l, r)
			}
		}
	})

	t.Run("half speed interpolates", func(t *testing.T) {
		out := Resample(pcm, 0.5)
		if got := len(out) / bytesPerFrame; got != 9 {
			t.Fatalf("expected 9 frames, got %d", got)
		}
		if l, _ := frameAt(out, 1); l != 50 {
			t.Fatalf("expected midpoint 50, got %d", l)
		}
		if l, _ := frameAt(out, 8); l != 400 {
			t.Fatalf("expected last frame 400, got %d", l)
		}
	})

	t.Run("drops partial frames", func(t *testing.T) {
		out := Resample(append(pcm, 0xff), 1)
		if len(out)%bytesPerFrame != 0 {
			t.Fatalf("expected whole frames, got %d bytes", len(out))
		}
	})
}

func TestLoadPCM(t *testing.T) {
	for _, name := range []string{
		"engine_idle.wav",
		"engine_driving.wav",
		"shot_charging.wav",
		"shot_firing.wav",
		"shell_explosion.wav",
		"tank_explosion.wav",
	} {
		t.Run(name, func(t *testing.T) {
			pcm, err := LoadPCM("assets/" + name)
			if err != nil {
				t.Fatalf("LoadPCM(%q) failed: %v", name, err)
			}
			if len(pcm) == 0 || len(pcm)%bytesPerFrame != 0 {
				t.Fatalf("expected whole stereo frames, got %d bytes", len(pcm))
			}
		})
	}

	if _, err := LoadPCM("missing.wav"); err == nil {
		t.Fatalf("expected error for a missing clip")
	}
}
