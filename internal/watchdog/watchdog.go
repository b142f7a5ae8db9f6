package watchdog

import (
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/adityaska2007-maker/meta-sonic-bot/internal/logging"
)

// Watchdog periodically reports process and host health. Purely
// informational; it takes no corrective action.
type Watchdog struct {
	interval time.Duration
	started  time.Time
	stop     chan struct{}
}

func New(interval time.Duration) *Watchdog {
	return &Watchdog{
		interval: interval,
		started:  time.Now(),
		stop:     make(chan struct{}),
	}
}

// Start launches the reporting loop.
func (w *Watchdog) Start() {
	go w.run()
}

// Stop terminates the reporting loop.
func (w *Watchdog) Stop() {
	close(w.stop)
}

func (w *Watchdog) run() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			return
		case <-ticker.C:
			w.report()
		}
	}
}

func (w *Watchdog) report() {
	uptime := time.Since(w.started).Round(time.Second)

	var cpuPct float64
	if pct, err := cpu.Percent(0, false); err == nil && len(pct) > 0 {
		cpuPct = pct[0]
	}

	var memPct float64
	if vm, err := mem.VirtualMemory(); err == nil {
		memPct = vm.UsedPercent
	}

	logging.Info("[WATCHDOG] uptime=%s cpu=%.1f%% mem=%.1f%%", uptime, cpuPct, memPct)
}
