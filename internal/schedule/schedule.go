// Package schedule derives the burst timing of a capture and drives frame
// and gap emission from it.
package schedule

import (
	"math"

	"firestige.xyz/burstgen/internal/core"
)

// Schedule holds the quantities derived once from core.TimingParameters.
//
// Integer quantities are rounded up from their floating point intermediates,
// except BurstCycleCount which counts whole burst periods. Inconsistent
// timing yields negative values; they are not corrected.
type Schedule struct {
	CaptureTimeUs     float64
	TotalCaptureBytes int64
	BurstCycleCount   int64
	PacketTimeUs      float64 // one MaxFrameSize frame at line rate
	IFGIntervalUs     float64 // idle time left in a burst period
	IFGBytesPerBurst  int64
	TotalIFGBytes     int64
	TotalPacketBytes  int64
	TotalPackets      int64
	PayloadSize       int64
}

// Derive evaluates the schedule formulas in order.
func Derive(t core.TimingParameters) Schedule {
	var s Schedule
	rateMbps := t.LineRate / 1e6
	period := float64(t.BurstPeriodUs)

	s.CaptureTimeUs = float64(t.CaptureDurationMs) * 1000
	s.TotalCaptureBytes = ceilInt(s.CaptureTimeUs * rateMbps / 8)
	s.BurstCycleCount = int64(math.Trunc(s.CaptureTimeUs / period))
	s.PacketTimeUs = core.MaxFrameSize * 8 / rateMbps
	// the conversion keeps the product rounded before the subtraction
	s.IFGIntervalUs = period - float64(s.PacketTimeUs*float64(t.BurstCount))
	s.IFGBytesPerBurst = ceilInt(t.LineRate / 8e6 * s.IFGIntervalUs)
	s.TotalIFGBytes = ceilInt(float64(s.IFGBytesPerBurst) * float64(s.BurstCycleCount))
	s.TotalPacketBytes = ceilInt(float64(s.TotalCaptureBytes - s.TotalIFGBytes))
	s.TotalPackets = ceilInt(float64(s.TotalPacketBytes) / core.MaxFrameSize)
	s.PayloadSize = ceilInt(float64(s.TotalPackets) * core.PayloadPerFrame)
	return s
}

// FramesToEmit is the number of frames a run emits. It saturates at
// math.MaxInt64.
func (s Schedule) FramesToEmit(burstCount int) int64 {
	if s.BurstCycleCount <= 0 || burstCount <= 0 {
		return 0
	}
	if s.BurstCycleCount > math.MaxInt64/int64(burstCount) {
		return math.MaxInt64
	}
	return s.BurstCycleCount * int64(burstCount)
}

// PayloadNeeded is the payload a run consumes. It saturates at
// math.MaxInt64.
func (s Schedule) PayloadNeeded(burstCount int) int64 {
	frames := s.FramesToEmit(burstCount)
	if frames > math.MaxInt64/core.PayloadPerFrame {
		return math.MaxInt64
	}
	return frames * core.PayloadPerFrame
}

// Fits reports whether a buffer of bufLen bytes covers every fragment the
// run reads.
func (s Schedule) Fits(burstCount int, bufLen int64) bool {
	return s.FramesToEmit(burstCount) <= max(bufLen, 0)/core.PayloadPerFrame
}

func ceilInt(v float64) int64 {
	return int64(math.Ceil(v))
}
