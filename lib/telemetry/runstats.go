package telemetry

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"go.opentelemetry.io/otel"
)

var meter = otel.Meter("pricetrack.runstats")
var cpuGauge, _ = meter.Float64Gauge("cpu_usage")
var memoryGauge, _ = meter.Int64Gauge("allocated_mb")
var goroutineGauge, _ = meter.Int64Gauge("goroutine_count")

// ReportRunStats records process resource usage once. The pipeline
// is a short-lived batch, so a single sample at the end of a run is
// the whole story; periodic sampling would never get a tick in.
func ReportRunStats(ctx context.Context) {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	allocatedMb := int64(memStats.Alloc / 1_000_000)
	goroutines := int64(runtime.NumGoroutine())

	memoryGauge.Record(ctx, allocatedMb)
	goroutineGauge.Record(ctx, goroutines)

	cpuUsage, err := cpu.Percent(0, false)
	if err == nil && len(cpuUsage) > 0 {
		cpuGauge.Record(ctx, cpuUsage[0])
		slog.Debug(
			"run stats",
			"cpu_percent", cpuUsage[0],
			"allocated_mb", allocatedMb,
			"goroutines", goroutines,
		)
		return
	}

	slog.Debug(
		"run stats",
		"allocated_mb", allocatedMb,
		"goroutines", goroutines,
	)
}
