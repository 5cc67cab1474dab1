package prefabs

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestLoadEmbeddedSpecs(t *testing.T) {
	tank, err := LoadTankSpec()
	if err != nil {
		t.Fatalf("LoadTankSpec: %v", err)
	}
	if len(tank.Players) != 4 || tank.Players[0].Name != "Blue" {
		t.Fatalf("unexpected players %+v", tank.Players)
	}
	if tank.Movement.Speed != 12 || tank.Shooting.MaxLaunchForce != 30 {
		t.Fatalf("unexpected tank spec %+v", tank)
	}
	if tank.Health.FullColor.Or(nil) != (color.NRGBA{G: 0xff, A: 0xff}) {
		t.Fatalf("unexpected full colour %v", tank.Health.FullColor)
	}

	cam, err := LoadCameraSpec()
	if err != nil {
		t.Fatalf("LoadCameraSpec: %v", err)
	}
	if cam.Pitch != 90 || cam.MinSize != 6.5 || cam.ScreenEdgeBuffer != 4 {
		t.Fatalf("unexpected camera spec %+v", cam)
	}

	shell, err := LoadShellSpec()
	if err != nil {
		t.Fatalf("LoadShellSpec: %v", err)
	}
	if shell.BlastRadius != 5 || shell.Explosion.Duration != 0.8 {
		t.Fatalf("unexpected shell spec %+v", shell)
	}

	arena, err := LoadArenaSpec()
	if err != nil {
		t.Fatalf("LoadArenaSpec: %v", err)
	}
	if len(arena.Walls) == 0 {
		t.Fatalf("arena has no walls")
	}

	round, err := LoadRoundSpec()
	if err != nil {
		t.Fatalf("LoadRoundSpec: %v", err)
	}
	if round.RoundsToWin != 5 {
		t.Fatalf("expected 5 rounds to win, got %d", round.RoundsToWin)
	}
}

func TestLoadPrefersDisk(t *testing.T) {
	old := Dir
	Dir = t.TempDir()
	t.Cleanup(func() { Dir = old })

	if err := os.WriteFile(filepath.Join(Dir, RoundFile), []byte("rounds_to_win: 2\n"), 0o644); err != nil {
		t.Fatalf("write override: %v", err)
	}

	round, err := LoadRoundSpec()
	if err != nil {
		t.Fatalf("LoadRoundSpec: %v", err)
	}
	if round.RoundsToWin != 2 {
		t.Fatalf("expected disk override, got %d", round.RoundsToWin)
	}
	// Files missing on disk still come from the embedded copy.
	if _, err := LoadCameraSpec(); err != nil {
		t.Fatalf("LoadCameraSpec: %v", err)
	}
	if _, err := LoadScript("bot.tengo"); err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
}

func TestLoadSpecErrors(t *testing.T) {
	if _, err := LoadSpec[RoundSpec]("missing.yaml"); err == nil {
		t.Fatalf("expected error for missing file")
	}

	old := Dir
	Dir = t.TempDir()
	t.Cleanup(func() { Dir = old })
	if err := os.WriteFile(filepath.Join(Dir, RoundFile), []byte("rounds_to_win: [1"), 0o644); err != nil {
		t.Fatalf("write override: %v", err)
	}
	if _, err := LoadRoundSpec(); err == nil {
		t.Fatalf("expected error for malformed yaml")
	}
}

func TestYAMLColor(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"rgb", `"#ff8000"`, color.NRGBA{R: 0xff, G: 0x80, A: 0xff}, false},
		{"rgba", `"#10203040"`, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}, false},
		{"no_hash", `"00ff00"`, color.NRGBA{G: 0xff, A: 0xff}, false},
		{"short", `"#fff"`, color.NRGBA{}, true},
		{"bad_hex", `"#gg0000"`, color.NRGBA{}, true},
		{"not_scalar", `[1, 2]`, color.NRGBA{}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var got YAMLColor
			err := yaml.Unmarshal([]byte(c.in), &got)
			if c.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got.Color)
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got.Color != c.want {
				t.Fatalf("expected %v, got %v", c.want, got.Color)
			}
		})
	}
}

func TestYAMLColorOr(t *testing.T) {
	var missing *YAMLColor
	if missing.Or(color.White) != color.White {
		t.Fatalf("nil colour should fall back")
	}
	if (&YAMLColor{}).Or(color.Black) != color.Black {
		t.Fatalf("empty colour should fall back")
	}
	set := &YAMLColor{Color: color.NRGBA{R: 1, A: 0xff}}
	if set.Or(color.White) != (color.NRGBA{R: 1, A: 0xff}) {
		t.Fatalf("set colour should win")
	}
}

func TestCleanPaths(t *testing.T) {
	cases := []struct {
		in, prefab, script string
	}{
		{"tank.yaml", "tank.yaml", "scripts/tank.yaml"},
		{"prefabs/tank.yaml", "tank.yaml", "scripts/tank.yaml"},
		{"/home/me/tanks/prefabs/scripts/bot.tengo", "scripts/bot.tengo", "scripts/bot.tengo"},
		{"bot.tengo", "bot.tengo", "scripts/bot.tengo"},
		{"", "", ""},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			if got := cleanPrefabPath(c.in); got != c.prefab {
				t.Fatalf("cleanPrefabPath(%q) = %q, want %q", c.in, got, c.prefab)
			}
			if got := cleanScriptPath(c.in); got != c.script {
				t.Fatalf("cleanScriptPath(%q) = %q, want %q", c.in, got, c.script)
			}
		})
	}
}
