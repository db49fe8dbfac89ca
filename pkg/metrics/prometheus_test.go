package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewReturnsSharedRecorder(t *testing.T) {
	r1 := New()
	r2 := New()
	require.Same(t, r1, r2)

	// All record paths stay usable through either handle.
	r1.RecordBarsIngested("clickhouse", 10)
	r1.RecordScan("ok", 0.1)
	r2.RecordScan("cached", 0.01)
	r2.RecordMatches("SPY", 3)
	r2.RecordError("scan_load")
	r1.RecordLatency("pipeline_process", 0.02)
}
