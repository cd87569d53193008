package whisper

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
)

// availableCores returns the number of logical processors.
func availableCores() int {
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}
