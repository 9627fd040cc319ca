package system_metric

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/load"

	"github.com/Sunshine-Research/Sentinel/logging"
	"github.com/Sunshine-Research/Sentinel/util"
)

// NotRetrievedValue is returned for a gauge that has not been sampled
// yet, distinguishing "unknown" from a genuine zero reading.
const NotRetrievedValue float64 = -1.0

var (
	currentLoad     atomic.Value
	currentCPUUsage atomic.Value

	prevCPUStat *cpu.TimesStat

	collectOnce sync.Once
	stopChan    = make(chan struct{})
)

func init() {
	currentLoad.Store(NotRetrievedValue)
	currentCPUUsage.Store(NotRetrievedValue)
}

// StartCollector launches the background ticker that keeps CurrentLoad
// and CurrentCPUUsage fresh; the System guard (spec.md §4.6) reads them
// synchronously off atomic.Value rather than sampling gopsutil inline on
// every check, which would make every inbound entry pay a syscall.
func StartCollector(intervalMs uint32) {
	if intervalMs == 0 {
		return
	}
	collectOnce.Do(func() {
		sample()
		ticker := time.NewTicker(time.Duration(intervalMs) * time.Millisecond)
		go util.RunWithRecover(func() {
			for {
				select {
				case <-ticker.C:
					sample()
				case <-stopChan:
					ticker.Stop()
					return
				}
			}
		}, func(r interface{}) {
			logging.Errorf("system_metric: collector goroutine panicked: %v", r)
		})
	})
}

func StopCollector() {
	close(stopChan)
}

func sample() {
	cpuStats, err := cpu.Times(false)
	if err != nil {
		logging.Warnf("system_metric: failed to sample CPU times: %v", err)
	}
	loadStat, err := load.Avg()
	if err != nil {
		logging.Warnf("system_metric: failed to sample load average: %v", err)
	}

	if len(cpuStats) > 0 {
		cur := &cpuStats[0]
		recordCPUUsage(prevCPUStat, cur)
		prevCPUStat = cur
	}
	if loadStat != nil {
		currentLoad.Store(loadStat.Load1)
	}
}

func recordCPUUsage(prev, cur *cpu.TimesStat) {
	if prev == nil || cur == nil {
		return
	}
	prevTotal := totalTicks(prev)
	curTotal := totalTicks(cur)

	diff := curTotal - prevTotal
	if diff == 0 {
		currentCPUUsage.Store(0.0)
		return
	}

	prevUsed := userTicks(prev) + kernelTicks(prev)
	curUsed := userTicks(cur) + kernelTicks(cur)
	usage := (curUsed - prevUsed) / diff
	if usage < 0 {
		usage = 0
	}
	if usage > 1 {
		usage = 1
	}
	currentCPUUsage.Store(usage)
}

func totalTicks(s *cpu.TimesStat) float64 {
	return s.User + s.Nice + s.System + s.Idle + s.Iowait + s.Irq + s.Softirq + s.Steal
}

func userTicks(s *cpu.TimesStat) float64   { return s.User + s.Nice }
func kernelTicks(s *cpu.TimesStat) float64 { return s.System + s.Irq + s.Softirq }

func CurrentLoad() float64 {
	v, ok := currentLoad.Load().(float64)
	if !ok {
		return NotRetrievedValue
	}
	return v
}

func CurrentCPUUsage() float64 {
	v, ok := currentCPUUsage.Load().(float64)
	if !ok {
		return NotRetrievedValue
	}
	return v
}

// SetLoadForTest/SetCPUUsageForTest let package tests exercise the
// System guard's load/CPU checks deterministically.
func SetLoadForTest(v float64)    { currentLoad.Store(v) }
func SetCPUUsageForTest(v float64) { currentCPUUsage.Store(v) }
