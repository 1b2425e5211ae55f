package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeSpeedStats(t *testing.T) {
	values := []float64{4, 2, 5, 1, 3}
	mean, std, p50, p90 := ComputeSpeedStats(values)

	if math.Abs(mean-3) > 1e-9 {
		t.Errorf("expected mean 3, got %v", mean)
	}
	// sample standard deviation of 1..5
	if math.Abs(std-math.Sqrt(2.5)) > 1e-9 {
		t.Errorf("expected std %v, got %v", math.Sqrt(2.5), std)
	}
	if p50 != 3 {
		t.Errorf("expected median 3, got %v", p50)
	}
	if math.Abs(p90-4.6) > 1e-9 {
		t.Errorf("expected p90 4.6, got %v", p90)
	}
	if values[0] != 4 {
		t.Error("input slice should not be reordered")
	}
}

func TestComputeSpeedStats_Small(t *testing.T) {
	if m, s, p50, p90 := ComputeSpeedStats(nil); m != 0 || s != 0 || p50 != 0 || p90 != 0 {
		t.Error("expected zeros for no samples")
	}
	if m, s, _, _ := ComputeSpeedStats([]float64{2}); m != 2 || s != 0 {
		t.Errorf("expected mean 2 std 0 for a single sample, got %v %v", m, s)
	}
}
