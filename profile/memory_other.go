//go:build !linux

package profile

// probeMemoryGB is unknown off Linux; the memory heuristic is skipped.
func probeMemoryGB() float64 {
	return 0
}
