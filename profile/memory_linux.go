//go:build linux

package profile

import "golang.org/x/sys/unix"

// probeMemoryGB returns total system memory, or 0 if it cannot be read.
func probeMemoryGB() float64 {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return 0
	}
	total := uint64(info.Totalram) * uint64(info.Unit)
	return float64(total) / (1 << 30)
}
