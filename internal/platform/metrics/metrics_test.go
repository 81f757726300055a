package metrics

import (
	"testing"
	"time"
)

func TestCollectorSnapshot(t *testing.T) {
	c := New()
	c.RecordGeneration(OutcomeCreated, 10*time.Millisecond)
	c.RecordGeneration(OutcomeCreated, 30*time.Millisecond)
	c.RecordGeneration(OutcomeDuplicate, 20*time.Millisecond)
	c.RecordConfirmation()
	c.RecordTaxCaveat()

	snap := c.Snapshot()
	if snap["payrollGeneratedTotal"].(uint64) != 2 {
		t.Fatalf("expected 2 generated, got %v", snap["payrollGeneratedTotal"])
	}
	if snap["duplicateRejectedTotal"].(uint64) != 1 {
		t.Fatalf("expected 1 duplicate, got %v", snap["duplicateRejectedTotal"])
	}
	if snap["avgGenerationMs"].(float64) != 20 {
		t.Fatalf("expected avg 20ms, got %v", snap["avgGenerationMs"])
	}
	if snap["confirmedTotal"].(uint64) != 1 || snap["taxCaveatTotal"].(uint64) != 1 {
		t.Fatalf("unexpected snapshot %v", snap)
	}
}

func TestNilCollectorIsNoop(t *testing.T) {
	var c *Collector
	c.RecordGeneration(OutcomeFailed, time.Second)
	c.RecordConfirmation()
	c.RecordTaxCaveat()
	c.RecordJobRun()
}
