package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNoopRecorderSatisfiesInterface(t *testing.T) {
	var r Recorder = NoopRecorder{}
	assert.NotPanics(t, func() {
		r.ObserveStepDuration("sync_source", time.Second)
		r.ObserveRunDuration(time.Second)
		r.IncStepResult("sync_source", ResultSkipped)
		r.IncRunOutcome(OutcomeCanceled)
		r.SetArtifactSize(1)
		r.SetLastSuccess(time.Now())
	})
}

func TestPrometheusRecorderSatisfiesInterface(_ *testing.T) {
	var _ Recorder = (*PrometheusRecorder)(nil)
}
