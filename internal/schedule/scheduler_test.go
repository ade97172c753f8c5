package schedule

import (
	"bytes"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firestige.xyz/burstgen/internal/checksum"
	"firestige.xyz/burstgen/internal/core"
	"firestige.xyz/burstgen/internal/frame"
)

type recordedFrame struct {
	number, cycle, offset int64
	slot                  int
	at                    time.Duration
	size                  int
	wire                  []byte
}

type recordingEmitter struct {
	frames   []recordedFrame
	gaps     [][]byte
	gapAt    []time.Duration
	interval []float64
	failAt   int64
}

func (r *recordingEmitter) EmitFrame(ev *FrameEvent) error {
	if r.failAt != 0 && ev.Number == r.failAt {
		return errors.New("sink closed")
	}
	r.frames = append(r.frames, recordedFrame{
		number: ev.Number,
		cycle:  ev.Cycle,
		offset: ev.PayloadOffset,
		slot:   ev.Slot,
		at:     ev.Offset,
		size:   len(ev.Bytes),
		wire:   append([]byte(nil), ev.Wire...),
	})
	return nil
}

func (r *recordingEmitter) EmitGap(ev *GapEvent) error {
	r.gaps = append(r.gaps, append([]byte(nil), ev.Bytes...))
	r.gapAt = append(r.gapAt, ev.Offset)
	r.interval = append(r.interval, ev.IntervalUs)
	return nil
}

func testSpec() *core.FrameSpec {
	return core.DefaultFrameSpec(
		[]byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF},
		[]byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55},
	)
}

func TestRunWorkedExample(t *testing.T) {
	rec := &recordingEmitter{}
	s := New(testSpec(), workedExample, rec)

	stats, err := s.Run()
	require.NoError(t, err)

	assert.Equal(t, int64(10), stats.Cycles)
	assert.Equal(t, int64(20), stats.Frames)
	assert.Equal(t, int64(20*1512), stats.FrameBytes)
	assert.Equal(t, int64(10*9476), stats.GapBytes)
	assert.Equal(t, int64(125000), stats.TotalBytes())
	assert.Equal(t, s.Schedule().PayloadSize, stats.PayloadConsumed)

	require.Len(t, rec.frames, 20)
	require.Len(t, rec.gaps, 10)
	for i, f := range rec.frames {
		assert.Equal(t, int64(i+1), f.number)
		assert.Equal(t, int64(i/2), f.cycle)
		assert.Equal(t, i%2, f.slot)
		assert.Equal(t, int64(i*core.PayloadPerFrame), f.offset, "fragments are consecutive")
		assert.Equal(t, 1512, f.size)

		h, err := frame.Decode(f.wire)
		require.NoError(t, err)
		assert.True(t, h.Valid())
		assert.Len(t, h.Payload, core.PayloadPerFrame)
	}
	for _, g := range rec.gaps {
		assert.Equal(t, bytes.Repeat([]byte{0x07}, 9476), g)
	}
	assert.InDelta(t, 75.808, rec.interval[0], 1e-9)

	// second frame of cycle 3 starts 300 µs + 12.096 µs in
	assert.Equal(t, 312096*time.Nanosecond, rec.frames[7].at)
	assert.Equal(t, 24192*time.Nanosecond, rec.gapAt[0])
}

func TestRunFragmentsCarryBufferContent(t *testing.T) {
	rec := &recordingEmitter{}
	s := New(testSpec(), workedExample, rec)
	for i := range s.payload {
		s.payload[i] = byte(i / core.PayloadPerFrame)
	}

	_, err := s.Run()
	require.NoError(t, err)
	for i, f := range rec.frames {
		h, err := frame.Decode(f.wire)
		require.NoError(t, err)
		assert.Equal(t, bytes.Repeat([]byte{byte(i)}, core.PayloadPerFrame), h.Payload)
		assert.Equal(t, checksum.Sum(h.Payload), h.Checksum)
	}
}

func TestRunPartialPayloadUse(t *testing.T) {
	// 3 cycles x 2 frames out of a 7 frame buffer
	rec := &recordingEmitter{}
	s := New(testSpec(), core.TimingParameters{LineRate: 1e8, CaptureDurationMs: 1, BurstCount: 2, BurstPeriodUs: 300}, rec)

	stats, err := s.Run()
	require.NoError(t, err)
	assert.Equal(t, int64(6), stats.Frames)
	assert.Equal(t, int64(6*1474), stats.PayloadConsumed)
	assert.LessOrEqual(t, stats.PayloadConsumed, s.Schedule().PayloadSize)
	assert.Len(t, rec.gaps[0], 727)
}

func TestRunNegativeGapEmitsNothing(t *testing.T) {
	rec := &recordingEmitter{}
	s := New(testSpec(), core.TimingParameters{LineRate: 1000001, CaptureDurationMs: 1, BurstCount: 1, BurstPeriodUs: 1000}, rec)

	stats, err := s.Run()
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Frames)
	assert.Zero(t, stats.GapBytes)
	require.Len(t, rec.gaps, 1)
	assert.Empty(t, rec.gaps[0])
}

func TestRunPayloadExhausted(t *testing.T) {
	rec := &recordingEmitter{}
	s := New(testSpec(), workedExample, rec)
	s.payload = s.payload[:len(s.payload)-1]

	_, err := s.Run()
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrPayloadExhausted)
	assert.Empty(t, rec.frames, "nothing is emitted before the bounds check")
}

func TestRunPayloadExhaustedOverflow(t *testing.T) {
	t.Run("saturated cycle count", func(t *testing.T) {
		rec := &recordingEmitter{}
		s := New(testSpec(), workedExample, rec)
		s.schedule.BurstCycleCount = math.MaxInt64
		s.payload = []byte{}

		_, err := s.Run()
		assert.ErrorIs(t, err, core.ErrPayloadExhausted)
		assert.Empty(t, rec.frames)
	})

	t.Run("frame count wraps int64", func(t *testing.T) {
		rec := &recordingEmitter{}
		timing := core.TimingParameters{
			LineRate:          1e9,
			CaptureDurationMs: 2147483647,
			BurstCount:        1073741824,
			BurstPeriodUs:     1,
		}
		s := New(testSpec(), timing, rec)

		var err error
		require.NotPanics(t, func() { _, err = s.Run() })
		assert.ErrorIs(t, err, core.ErrPayloadExhausted)
		assert.Empty(t, rec.frames)
	})
}

func TestRunEmitterError(t *testing.T) {
	rec := &recordingEmitter{failAt: 3}
	s := New(testSpec(), workedExample, rec)

	stats, err := s.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "emit frame 3")
	assert.Equal(t, int64(2), stats.Frames)
}

func TestRunCaptureDeterministic(t *testing.T) {
	a, b := &recordingEmitter{}, &recordingEmitter{}
	sa, err := RunCapture(testSpec(), workedExample, a)
	require.NoError(t, err)
	sb, err := RunCapture(testSpec(), workedExample, b)
	require.NoError(t, err)

	assert.Equal(t, sa, sb)
	assert.Equal(t, a.frames, b.frames)
	assert.Equal(t, a.gaps, b.gaps)
}
