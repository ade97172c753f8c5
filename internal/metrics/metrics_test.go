package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firestige.xyz/burstgen/internal/core"
	"firestige.xyz/burstgen/internal/schedule"
)

func TestRecorderCountsRun(t *testing.T) {
	r := NewRecorder()
	timing := core.TimingParameters{LineRate: 1e9, CaptureDurationMs: 1, BurstCount: 2, BurstPeriodUs: 100}
	spec := core.DefaultFrameSpec(make([]byte, 6), make([]byte, 6))

	s := schedule.New(spec, timing, r)
	r.ObserveSchedule(s.Schedule())
	_, err := s.Run()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "burstgen.prom")
	require.NoError(t, r.WriteTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, "burstgen_frames_total 20\n")
	assert.Contains(t, text, "burstgen_burst_cycles_total 10\n")
	assert.Contains(t, text, `burstgen_bytes_total{kind="frame"} 30240`)
	assert.Contains(t, text, `burstgen_bytes_total{kind="gap"} 94760`)
	assert.Contains(t, text, "burstgen_payload_bytes_consumed_total 29480\n")
	assert.Contains(t, text, `burstgen_schedule{quantity="ifg_bytes_per_burst"} 9476`)
	assert.Contains(t, text, `burstgen_schedule{quantity="payload_size"} 29480`)
}

func TestWriteTextfileUnwritable(t *testing.T) {
	r := NewRecorder()
	err := r.WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom"))
	assert.Error(t, err)
}
