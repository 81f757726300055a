package metrics

import (
	"sync/atomic"
	"time"
)

type Collector struct {
	generated       uint64
	duplicates      uint64
	inProgress      uint64
	failed          uint64
	confirmed       uint64
	taxCaveats      uint64
	jobRuns         uint64
	totalDurationMs uint64
}

func New() *Collector {
	return &Collector{}
}

// RecordGeneration counts one payroll generation attempt. A nil collector
// is a no-op so services can run without metrics.
func (c *Collector) RecordGeneration(outcome Outcome, duration time.Duration) {
	if c == nil {
		return
	}
	switch outcome {
	case OutcomeCreated:
		atomic.AddUint64(&c.generated, 1)
	case OutcomeDuplicate:
		atomic.AddUint64(&c.duplicates, 1)
	case OutcomeInProgress:
		atomic.AddUint64(&c.inProgress, 1)
	default:
		atomic.AddUint64(&c.failed, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

func (c *Collector) RecordConfirmation() {
	if c == nil {
		return
	}
	atomic.AddUint64(&c.confirmed, 1)
}

func (c *Collector) RecordTaxCaveat() {
	if c == nil {
		return
	}
	atomic.AddUint64(&c.taxCaveats, 1)
}

func (c *Collector) RecordJobRun() {
	if c == nil {
		return
	}
	atomic.AddUint64(&c.jobRuns, 1)
}

type Outcome int

const (
	OutcomeCreated Outcome = iota
	OutcomeDuplicate
	OutcomeInProgress
	OutcomeFailed
)

func (c *Collector) Snapshot() map[string]any {
	generated := atomic.LoadUint64(&c.generated)
	duplicates := atomic.LoadUint64(&c.duplicates)
	inProgress := atomic.LoadUint64(&c.inProgress)
	failed := atomic.LoadUint64(&c.failed)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	attempts := generated + duplicates + inProgress + failed
	avg := float64(0)
	if attempts > 0 {
		avg = float64(totalMs) / float64(attempts)
	}
	return map[string]any{
		"payrollGeneratedTotal":  generated,
		"duplicateRejectedTotal": duplicates,
		"inProgressTotal":        inProgress,
		"generationFailedTotal":  failed,
		"confirmedTotal":         atomic.LoadUint64(&c.confirmed),
		"taxCaveatTotal":         atomic.LoadUint64(&c.taxCaveats),
		"jobRunsTotal":           atomic.LoadUint64(&c.jobRuns),
		"avgGenerationMs":        avg,
	}
}
