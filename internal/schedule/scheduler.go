package schedule

import (
	"fmt"
	"math"
	"time"

	"firestige.xyz/burstgen/internal/core"
	"firestige.xyz/burstgen/internal/frame"
	"firestige.xyz/burstgen/internal/log"
)

// FrameEvent is one assembled frame handed to the emitter.
// The byte slices are read-only and only valid for the duration of the call.
type FrameEvent struct {
	Number        int64 // 1-based across the run
	Cycle         int64
	Slot          int   // position inside the burst
	PayloadOffset int64 // cursor position the fragment was taken from
	Offset        time.Duration
	Payload       []byte // borrowed fragment of the payload buffer
	Bytes         []byte // assembled frame, preamble through padding
	Wire          []byte // addresses through checksum
}

// GapEvent is the idle filler closing a burst cycle.
type GapEvent struct {
	Cycle      int64
	IntervalUs float64
	Offset     time.Duration
	Bytes      []byte
}

// Emitter receives the generated stream in order.
type Emitter interface {
	EmitFrame(ev *FrameEvent) error
	EmitGap(ev *GapEvent) error
}

// Stats summarises a finished run.
type Stats struct {
	Cycles          int64
	Frames          int64
	FrameBytes      int64
	GapBytes        int64
	PayloadConsumed int64
}

// TotalBytes is everything emitted, frames plus gaps.
func (s Stats) TotalBytes() int64 {
	return s.FrameBytes + s.GapBytes
}

// Scheduler runs one capture. It is single use and not safe for
// concurrent use.
type Scheduler struct {
	spec     *core.FrameSpec
	timing   core.TimingParameters
	schedule Schedule
	payload  []byte
	emitter  Emitter
}

// New derives the schedule and allocates the payload buffer.
func New(spec *core.FrameSpec, timing core.TimingParameters, emitter Emitter) *Scheduler {
	s := Derive(timing)
	return &Scheduler{
		spec:     spec,
		timing:   timing,
		schedule: s,
		payload:  NewPayload(s.PayloadSize, 0x00),
		emitter:  emitter,
	}
}

// RunCapture derives the schedule for timing and runs it into emitter.
func RunCapture(spec *core.FrameSpec, timing core.TimingParameters, emitter Emitter) (Stats, error) {
	return New(spec, timing, emitter).Run()
}

// Schedule returns the derived schedule.
func (s *Scheduler) Schedule() Schedule {
	return s.schedule
}

// Run emits BurstCount frames per cycle, each carrying the next unread
// fragment of the payload buffer, then the cycle's gap. The cursor never
// rewinds. Run fails before emitting anything if the cycles would read past
// the payload buffer.
func (s *Scheduler) Run() (Stats, error) {
	var stats Stats
	sched := s.schedule
	logger := log.GetLogger().WithField("component", "scheduler")

	if !sched.Fits(s.timing.BurstCount, int64(len(s.payload))) {
		return stats, fmt.Errorf("%w: %d cycles x %d frames need %d bytes, buffer holds %d",
			core.ErrPayloadExhausted, sched.BurstCycleCount, s.timing.BurstCount,
			sched.PayloadNeeded(s.timing.BurstCount), len(s.payload))
	}

	logger.WithFields(map[string]interface{}{
		"cycles":         sched.BurstCycleCount,
		"burst_count":    s.timing.BurstCount,
		"gap_per_burst":  sched.IFGBytesPerBurst,
		"payload_buffer": len(s.payload),
	}).Debug("starting capture run")

	gap := frame.Gap(sched.IFGBytesPerBurst, s.spec.Filler)
	period := float64(s.timing.BurstPeriodUs)
	var cursor int64

	for cycle := int64(0); cycle < sched.BurstCycleCount; cycle++ {
		base := float64(cycle) * period

		for slot := 0; slot < s.timing.BurstCount; slot++ {
			end := cursor + core.PayloadPerFrame
			fragment := s.payload[cursor:end:end]
			out := frame.Assemble(s.spec, fragment)
			ws, we := frame.WireSpan(s.spec, len(fragment))

			ev := &FrameEvent{
				Number:        stats.Frames + 1,
				Cycle:         cycle,
				Slot:          slot,
				PayloadOffset: cursor,
				Offset:        micros(base + float64(slot)*sched.PacketTimeUs),
				Payload:       fragment,
				Bytes:         out,
				Wire:          out[ws:we],
			}
			if err := s.emitter.EmitFrame(ev); err != nil {
				return stats, fmt.Errorf("emit frame %d: %w", ev.Number, err)
			}

			cursor = end
			stats.Frames++
			stats.FrameBytes += int64(len(out))
			stats.PayloadConsumed += core.PayloadPerFrame
		}

		ev := &GapEvent{
			Cycle:      cycle,
			IntervalUs: sched.IFGIntervalUs,
			Offset:     micros(base + float64(s.timing.BurstCount)*sched.PacketTimeUs),
			Bytes:      gap,
		}
		if err := s.emitter.EmitGap(ev); err != nil {
			return stats, fmt.Errorf("emit gap of cycle %d: %w", cycle, err)
		}
		stats.GapBytes += int64(len(gap))
		stats.Cycles++
	}

	logger.WithFields(map[string]interface{}{
		"frames":      stats.Frames,
		"gap_bytes":   stats.GapBytes,
		"total_bytes": stats.TotalBytes(),
	}).Info("capture run finished")
	return stats, nil
}

func micros(us float64) time.Duration {
	return time.Duration(math.Round(us * float64(time.Microsecond)))
}
