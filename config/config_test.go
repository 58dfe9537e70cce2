package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}

	if cfg.Morph.Duration != 3 {
		t.Errorf("morph.duration = %v, want 3", cfg.Morph.Duration)
	}
	if cfg.Morph.Ease != "none" {
		t.Errorf("morph.ease = %q, want none", cfg.Morph.Ease)
	}
	if cfg.Particles.Size != 0.4 {
		t.Errorf("particles.size = %v, want 0.4", cfg.Particles.Size)
	}
	if cfg.Screen.MaxPixelRatio != 2 {
		t.Errorf("screen.max_pixel_ratio = %v, want 2", cfg.Screen.MaxPixelRatio)
	}
	if cfg.Camera.FOV != 35 || cfg.Camera.Distance != 16 {
		t.Errorf("camera fov/distance = %v/%v, want 35/16", cfg.Camera.FOV, cfg.Camera.Distance)
	}

	wantA := color.RGBA{R: 0xff, G: 0x73, B: 0x00, A: 0xff}
	if cfg.Derived.ColorA != wantA {
		t.Errorf("derived colour A = %v, want %v", cfg.Derived.ColorA, wantA)
	}
	wantClear := color.RGBA{R: 0x16, G: 0x09, B: 0x20, A: 0xff}
	if cfg.Derived.ClearColor != wantClear {
		t.Errorf("derived clear colour = %v, want %v", cfg.Derived.ClearColor, wantClear)
	}
	if cfg.Derived.Ease == nil || cfg.Derived.Ease(0.5) != 0.5 {
		t.Error("derived ease should be linear")
	}
	if cfg.Derived.Restart != RestartZero {
		t.Errorf("derived restart = %v, want RestartZero", cfg.Derived.Restart)
	}
}

func TestLoadOverridesOnlyPresentFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("morph:\n  restart: progress\n  stagger: 0.4\nparticles:\n  color_b: \"#00ff00\"\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Derived.Restart != RestartProgress {
		t.Errorf("restart = %v, want RestartProgress", cfg.Derived.Restart)
	}
	if cfg.Morph.Stagger != 0.4 {
		t.Errorf("stagger = %v, want 0.4", cfg.Morph.Stagger)
	}
	if cfg.Morph.Duration != 3 {
		t.Errorf("duration = %v, want default 3 kept", cfg.Morph.Duration)
	}
	if cfg.Derived.ColorB != (color.RGBA{G: 0xff, A: 0xff}) {
		t.Errorf("colour B = %v, want green", cfg.Derived.ColorB)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad colour", "particles:\n  color_a: \"#zzzzzz\"\n"},
		{"bad restart", "morph:\n  restart: sometimes\n"},
		{"bad ease", "morph:\n  ease: bounce.out\n"},
		{"stagger too high", "morph:\n  stagger: 1\n"},
		{"not yaml", "morph: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#ff7300", color.RGBA{R: 255, G: 115, B: 0, A: 255}, false},
		{"0091ff", color.RGBA{R: 0, G: 145, B: 255, A: 255}, false},
		{"#fff", color.RGBA{R: 255, G: 255, B: 255, A: 255}, false},
		{"#11223344", color.RGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x44}, false},
		{"", color.RGBA{}, true},
		{"#12345", color.RGBA{}, true},
		{"#gg0000", color.RGBA{}, true},
	}

	for _, tt := range tests {
		got, err := ParseHexColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseHexColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHexColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if HexColor(color.RGBA{R: 0x16, G: 0x09, B: 0x20, A: 0xff}) != "#160920" {
		t.Error("HexColor did not round trip")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Morph.Ease = "sine.inOut"

	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load snapshot: %v", err)
	}
	if back.Morph.Ease != "sine.inOut" {
		t.Errorf("ease = %q, want sine.inOut", back.Morph.Ease)
	}
}

func TestCfgPanicsBeforeInit(t *testing.T) {
	global = nil
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Cfg()
}
