package config

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Swarm.Variant != "desktop-hero" {
		t.Errorf("expected default variant desktop-hero, got %q", cfg.Swarm.Variant)
	}
	hero, ok := cfg.Variant("desktop-hero")
	if !ok {
		t.Fatal("expected desktop-hero variant")
	}
	if hero.Constrained.MaxParticles != 40 || hero.Full.MaxParticles != 100 {
		t.Errorf("unexpected caps %d/%d", hero.Constrained.MaxParticles, hero.Full.MaxParticles)
	}
	if hero.Constrained.AreaPerParticle != 8000 || hero.Full.AreaPerParticle != 4000 {
		t.Errorf("unexpected densities %v/%v", hero.Constrained.AreaPerParticle, hero.Full.AreaPerParticle)
	}

	if cfg.Derived.PauseTimeout != time.Minute {
		t.Errorf("expected 60s pause timeout, got %v", cfg.Derived.PauseTimeout)
	}
	if cfg.Derived.ResizeDebounce != 16*time.Millisecond {
		t.Errorf("expected 16ms debounce, got %v", cfg.Derived.ResizeDebounce)
	}
	if cfg.Derived.TrailColor != (color.RGBA{R: 26, G: 35, B: 50, A: 255}) {
		t.Errorf("unexpected trail color %v", cfg.Derived.TrailColor)
	}
	if got := strings.Join(cfg.Derived.VariantNames, ","); got != "desktop-hero,gallery" {
		t.Errorf("unexpected variant names %q", got)
	}
}

func TestLoad_Overlay(t *testing.T) {
	path := writeFile(t, `
swarm:
  variant: gallery
activity:
  pause_timeout: 5
surface:
  trail_color: [300, -4, 7]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Swarm.Variant != "gallery" {
		t.Errorf("expected overlay variant, got %q", cfg.Swarm.Variant)
	}
	// Fields absent from the file keep their defaults.
	if cfg.Swarm.MinLife != 3000 || cfg.Swarm.MaxLife != 9000 {
		t.Errorf("expected default lifespan range, got %v-%v", cfg.Swarm.MinLife, cfg.Swarm.MaxLife)
	}
	if cfg.Derived.PauseTimeout != 5*time.Second {
		t.Errorf("expected 5s pause timeout, got %v", cfg.Derived.PauseTimeout)
	}
	if cfg.Derived.TrailColor != (color.RGBA{R: 255, G: 0, B: 7, A: 255}) {
		t.Errorf("expected clamped trail color, got %v", cfg.Derived.TrailColor)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"unknown variant", "swarm:\n  variant: nope\n", "unknown swarm variant"},
		{"bad boundary", "variants:\n  gallery:\n    boundary: bounce\n", "boundary must be reset or wrap"},
		{"lifespan", "swarm:\n  min_life: 9000\n  max_life: 3000\n", "max_life"},
		{"glow stops", "swarm:\n  glow_stops: [1, 0]\n", "glow_stops"},
		{"syntax", "swarm: [", "parsing config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestInitAndCfg(t *testing.T) {
	prev := global
	t.Cleanup(func() { global = prev })

	global = nil
	func() {
		defer func() {
			if recover() == nil {
				t.Error("expected Cfg to panic before Init")
			}
		}()
		Cfg()
	}()

	if err := Init(""); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if Cfg().Screen.TargetFPS != 60 {
		t.Errorf("expected 60 fps, got %d", Cfg().Screen.TargetFPS)
	}
}

func TestWriteYAML_RoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.Swarm.Variant = "gallery"
	cfg.Activity.PauseTimeout = 12

	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load snapshot: %v", err)
	}
	if loaded.Swarm.Variant != "gallery" || loaded.Derived.PauseTimeout != 12*time.Second {
		t.Errorf("snapshot lost overrides: variant %q timeout %v", loaded.Swarm.Variant, loaded.Derived.PauseTimeout)
	}
}
