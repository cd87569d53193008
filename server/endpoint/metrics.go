package endpoint

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Metrics reports process and host resource usage. Transcription is
// CPU-bound, so core count and host memory are included.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		host := gin.H{}
		if n, err := cpu.Counts(true); err == nil {
			host["logical_cores"] = n
		}
		if vm, err := mem.VirtualMemoryWithContext(c.Request.Context()); err == nil {
			host["memory_total_mb"] = vm.Total / 1024 / 1024
			host["memory_available_mb"] = vm.Available / 1024 / 1024
			host["memory_used_percent"] = vm.UsedPercent
		}

		c.JSON(http.StatusOK, gin.H{
			"timestamp":  time.Now().UTC().Format(time.RFC3339),
			"goroutines": runtime.NumGoroutine(),
			"memory": gin.H{
				"alloc_mb":       m.Alloc / 1024 / 1024,
				"total_alloc_mb": m.TotalAlloc / 1024 / 1024,
				"sys_mb":         m.Sys / 1024 / 1024,
				"gc_runs":        m.NumGC,
			},
			"host": host,
		})
	}
}
