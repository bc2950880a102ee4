package compositor

import (
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/user/scenemix/pkg/ports"
)

// loopDiagnostics accumulates per-tick counters and periodically logs a
// debug line with loop and process health.
type loopDiagnostics struct {
	logger   ports.Logger
	proc     *process.Process
	interval time.Duration

	frames  int
	skipped int
	since   time.Time
}

func newLoopDiagnostics(logger ports.Logger, interval time.Duration) *loopDiagnostics {
	d := &loopDiagnostics{
		logger:   logger,
		interval: interval,
		since:    time.Now(),
	}
	// Best effort; diagnostics degrade to fps-only when unavailable.
	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		d.proc = proc
	}
	return d
}

// record counts one finished tick and reports when the interval is up.
func (d *loopDiagnostics) record(skipped int, now time.Time) {
	d.frames++
	d.skipped += skipped

	elapsed := now.Sub(d.since)
	if elapsed < d.interval {
		return
	}

	fps := float64(d.frames) / elapsed.Seconds()
	var cpu float64
	var rssMB uint64
	if d.proc != nil {
		if v, err := d.proc.CPUPercent(); err == nil {
			cpu = v
		}
		if mem, err := d.proc.MemoryInfo(); err == nil {
			rssMB = mem.RSS / (1024 * 1024)
		}
	}
	d.logger.Debug("Render loop: %.1f fps, %d layouts skipped, cpu %.1f%%, rss %d MB",
		fps, d.skipped, cpu, rssMB)

	d.frames = 0
	d.skipped = 0
	d.since = now
}
