package systems

import (
	"math"
	"math/rand"
	"testing"
)

func TestSimplexNoise_Origin(t *testing.T) {
	n := NewSimplexNoise()
	if v := n.Sample(0, 0, 0); v != 0 {
		t.Errorf("expected 0 at origin, got %v", v)
	}
}

func TestSimplexNoise_ReferenceValues(t *testing.T) {
	n := NewSimplexNoise()

	testCases := []struct {
		x, y, z float64
		want    float64
	}{
		{0.5, 0.5, 0.5, 0},
		{0.1, 0.2, 0.3, 0.6358903679999998},
		{1.25, -3.5, 0.75, -0.0615093750000001},
		{100.3, 200.7, -50.1, -0.019279264658434013},
		{-7.9, 3.3, 12.6, -0.5086983254650191},
	}

	for _, tc := range testCases {
		got := n.Sample(tc.x, tc.y, tc.z)
		if math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("Sample(%v, %v, %v) = %v, want %v", tc.x, tc.y, tc.z, got, tc.want)
		}
	}
}

func TestSimplexNoise_Deterministic(t *testing.T) {
	a := NewSimplexNoise()
	b := NewSimplexNoise()
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 1000; i++ {
		x := rng.Float64()*200 - 100
		y := rng.Float64()*200 - 100
		z := rng.Float64()*200 - 100
		v1 := a.Sample(x, y, z)
		v2 := a.Sample(x, y, z)
		v3 := b.Sample(x, y, z)
		if v1 != v2 || v1 != v3 {
			t.Fatalf("non-deterministic at (%v, %v, %v): %v %v %v", x, y, z, v1, v2, v3)
		}
	}
}

func TestSimplexNoise_RangeAndFinite(t *testing.T) {
	n := NewSimplexNoise()
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 50000; i++ {
		x := (rng.Float64() - 0.5) * 1e5
		y := (rng.Float64() - 0.5) * 1e5
		z := (rng.Float64() - 0.5) * 1e5
		v := n.Sample(x, y, z)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("non-finite value at (%v, %v, %v)", x, y, z)
		}
		if v < -1.0001 || v > 1.0001 {
			t.Fatalf("value %v out of range at (%v, %v, %v)", v, x, y, z)
		}
	}
}

func TestSimplexNoise_LatticePeriod(t *testing.T) {
	n := NewSimplexNoise()

	// Shifting every axis by 256 lands on the same permutation slots
	points := [][3]float64{{0.1, 0.2, 0.3}, {3.7, -1.2, 9.9}, {-20.5, 4.25, 0.125}}
	for _, p := range points {
		a := n.Sample(p[0], p[1], p[2])
		b := n.Sample(p[0]+256, p[1]+256, p[2]+256)
		if math.Abs(a-b) > 1e-9 {
			t.Errorf("expected period 256 at %v: %v vs %v", p, a, b)
		}
	}
}

func TestSimplexNoise_Continuity(t *testing.T) {
	n := NewSimplexNoise()

	// Neighbouring samples should not jump
	prev := n.Sample(0, 0.37, 1.1)
	for i := 1; i <= 1000; i++ {
		v := n.Sample(float64(i)*0.001, 0.37, 1.1)
		if math.Abs(v-prev) > 0.05 {
			t.Fatalf("discontinuity at step %d: %v -> %v", i, prev, v)
		}
		prev = v
	}
}

func TestOpenSimplexField(t *testing.T) {
	f := NewOpenSimplexField(1)
	g := NewOpenSimplexField(1)

	for i := 0; i < 100; i++ {
		x, y, z := float64(i)*0.37, float64(i)*-0.11, float64(i)*0.05
		v := f.Sample(x, y, z)
		if v != g.Sample(x, y, z) {
			t.Fatal("same seed should give same values")
		}
		if v < -1.5 || v > 1.5 {
			t.Fatalf("value %v out of expected range", v)
		}
	}
}

func TestNewNoiseField(t *testing.T) {
	if _, ok := NewNoiseField("simplex", 0).(*SimplexNoise); !ok {
		t.Error("expected SimplexNoise for simplex")
	}
	if _, ok := NewNoiseField("", 0).(*SimplexNoise); !ok {
		t.Error("expected SimplexNoise by default")
	}
	if _, ok := NewNoiseField("opensimplex", 3).(*OpenSimplexField); !ok {
		t.Error("expected OpenSimplexField for opensimplex")
	}
}

func BenchmarkSimplexNoise(b *testing.B) {
	n := NewSimplexNoise()
	x := 0.0
	for i := 0; i < b.N; i++ {
		n.Sample(x, x*0.5, -x)
		x += 0.01
	}
}
