package profile

import (
	"testing"

	"github.com/pthm-cable/chaos-swarm/config"
)

func loadVariant(t *testing.T, name string) Variant {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	v, err := VariantByName(cfg, name)
	if err != nil {
		t.Fatalf("variant %s: %v", name, err)
	}
	return v
}

func desktopHeuristics() Heuristics {
	return Heuristics{LowEndCores: 4, LowEndMemoryGB: 4, SmallScreenWidth: 768}
}

func TestClassify(t *testing.T) {
	h := desktopHeuristics()

	testCases := []struct {
		name string
		sig  Signals
		want Class
	}{
		{"desktop", Signals{Cores: 8, MemoryGB: 16, ViewportW: 1440, ViewportH: 900}, ClassFull},
		{"unknown memory", Signals{Cores: 8, ViewportW: 1440, ViewportH: 900}, ClassFull},
		{"touch", Signals{Touch: true, Cores: 8, MemoryGB: 16, ViewportW: 1440, ViewportH: 900}, ClassConstrained},
		{"small screen", Signals{Cores: 8, MemoryGB: 16, ViewportW: 400, ViewportH: 800}, ClassConstrained},
		{"few cores", Signals{Cores: 4, MemoryGB: 16, ViewportW: 1440, ViewportH: 900}, ClassConstrained},
		{"low memory", Signals{Cores: 8, MemoryGB: 4, ViewportW: 1440, ViewportH: 900}, ClassConstrained},
	}

	for _, tc := range testCases {
		if got := Classify(tc.sig, h); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestClassifyForced(t *testing.T) {
	h := desktopHeuristics()
	h.Force = "constrained"
	sig := Signals{Cores: 32, MemoryGB: 64, ViewportW: 2560, ViewportH: 1440}
	if got := Classify(sig, h); got != ClassConstrained {
		t.Errorf("expected forced constrained, got %v", got)
	}
}

func TestDeriveHeroCounts(t *testing.T) {
	v := loadVariant(t, VariantDesktopHero)
	h := desktopHeuristics()

	testCases := []struct {
		name string
		sig  Signals
		want int
	}{
		// 1000*800/4000 = 200, capped at 100
		{"full capped", Signals{Cores: 8, MemoryGB: 16, ViewportW: 1000, ViewportH: 800}, 100},
		// 800*400/4000 = 80
		{"full scaled", Signals{Cores: 8, MemoryGB: 16, ViewportW: 800, ViewportH: 400}, 80},
		// 1000*800/8000 = 100, capped at 40
		{"constrained capped", Signals{Cores: 2, ViewportW: 1000, ViewportH: 800}, 40},
		// 800*200/8000 = 20
		{"constrained scaled", Signals{Cores: 2, ViewportW: 800, ViewportH: 200}, 20},
		{"empty viewport", Signals{Cores: 8, ViewportW: 0, ViewportH: 0}, 0},
	}

	for _, tc := range testCases {
		p := Derive(v, tc.sig, h)
		if p.ParticleCount != tc.want {
			t.Errorf("%s: got %d particles, want %d", tc.name, p.ParticleCount, tc.want)
		}
	}
}

func TestDeriveBundles(t *testing.T) {
	v := loadVariant(t, VariantDesktopHero)
	h := desktopHeuristics()

	full := Derive(v, Signals{Cores: 8, MemoryGB: 16, ViewportW: 1280, ViewportH: 720}, h)
	if full.Class != ClassFull || full.MaxVelocity != 5.0 || full.Damping != 0.94 || full.UpdateEvery != 3 {
		t.Errorf("unexpected full profile: %+v", full)
	}
	if full.Boundary != BoundaryReset {
		t.Errorf("hero variant should reset on exit, got %v", full.Boundary)
	}

	low := Derive(v, Signals{Touch: true, ViewportW: 1280, ViewportH: 720}, h)
	if low.Class != ClassConstrained || low.MaxVelocity != 12.0 || low.PositionScale != 6.5 {
		t.Errorf("unexpected constrained profile: %+v", low)
	}
}

func TestDeriveIsPure(t *testing.T) {
	v := loadVariant(t, VariantGallery)
	sig := Signals{Cores: 8, MemoryGB: 16, ViewportW: 1280, ViewportH: 720}
	a := Derive(v, sig, desktopHeuristics())
	b := Derive(v, sig, desktopHeuristics())
	if a == b {
		t.Fatal("expected fresh snapshots")
	}
	if *a != *b {
		t.Errorf("expected equal profiles, got %+v vs %+v", a, b)
	}
	if a.Boundary != BoundaryWrap {
		t.Errorf("gallery variant should wrap, got %v", a.Boundary)
	}
}

func TestVariantByNameUnknown(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := VariantByName(cfg, "nope"); err == nil {
		t.Error("expected error for unknown variant")
	}
}

func TestSurfaceGeometry(t *testing.T) {
	cfg := config.SurfaceConfig{HeightFraction: 0.6, MinHeight: 400, MaxPixelRatio: 2, MaxPixelRatioTouch: 1.5}

	g := SurfaceGeometry(Signals{ViewportW: 1280, ViewportH: 1000, PixelRatio: 3}, cfg)
	if g.Width != 1280 || g.Height != 600 || g.PixelRatio != 2 {
		t.Errorf("unexpected geometry: %+v", g)
	}

	// Short viewports hit the height floor
	g = SurfaceGeometry(Signals{ViewportW: 800, ViewportH: 500, PixelRatio: 1}, cfg)
	if g.Height != 400 {
		t.Errorf("expected min height 400, got %f", g.Height)
	}

	g = SurfaceGeometry(Signals{Touch: true, ViewportW: 390, ViewportH: 844, PixelRatio: 3}, cfg)
	if g.PixelRatio != 1.5 {
		t.Errorf("expected touch DPR cap 1.5, got %f", g.PixelRatio)
	}

	g = SurfaceGeometry(Signals{ViewportW: 800, ViewportH: 600}, cfg)
	if g.PixelRatio != 1 {
		t.Errorf("expected default DPR 1, got %f", g.PixelRatio)
	}
}

func TestProbeOverrides(t *testing.T) {
	sig := Probe(config.DeviceConfig{Touch: true, Cores: 3, MemoryGB: 2}, 640, 480, 2)
	if !sig.Touch || sig.Cores != 3 || sig.MemoryGB != 2 {
		t.Errorf("overrides not applied: %+v", sig)
	}
	if sig.ViewportW != 640 || sig.ViewportH != 480 || sig.PixelRatio != 2 {
		t.Errorf("viewport not recorded: %+v", sig)
	}

	sig = Probe(config.DeviceConfig{}, 640, 480, 1)
	if sig.Cores < 1 {
		t.Errorf("expected probed core count, got %d", sig.Cores)
	}
}
