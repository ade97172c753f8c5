// Package metrics implements Prometheus metrics for a capture run.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"firestige.xyz/burstgen/internal/schedule"
)

// Recorder counts the generated stream. It implements schedule.Emitter so
// it can sit beside the output sinks.
type Recorder struct {
	registry *prometheus.Registry

	framesTotal  prometheus.Counter
	bytesTotal   *prometheus.CounterVec
	cyclesTotal  prometheus.Counter
	payloadTotal prometheus.Counter
	schedule     *prometheus.GaugeVec
}

// NewRecorder builds a Recorder on its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		framesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "burstgen_frames_total",
			Help: "Total number of frames emitted",
		}),
		bytesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "burstgen_bytes_total",
			Help: "Total number of bytes emitted by kind",
		}, []string{"kind"}),
		cyclesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "burstgen_burst_cycles_total",
			Help: "Total number of completed burst cycles",
		}),
		payloadTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "burstgen_payload_bytes_consumed_total",
			Help: "Payload buffer bytes consumed by frames",
		}),
		schedule: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "burstgen_schedule",
			Help: "Derived schedule quantities of the run",
		}, []string{"quantity"}),
	}
	r.registry.MustRegister(r.framesTotal, r.bytesTotal, r.cyclesTotal, r.payloadTotal, r.schedule)
	return r
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveSchedule publishes the derived schedule as gauges.
func (r *Recorder) ObserveSchedule(s schedule.Schedule) {
	set := func(q string, v float64) { r.schedule.WithLabelValues(q).Set(v) }
	set("capture_time_us", s.CaptureTimeUs)
	set("total_capture_bytes", float64(s.TotalCaptureBytes))
	set("burst_cycle_count", float64(s.BurstCycleCount))
	set("packet_time_us", s.PacketTimeUs)
	set("ifg_interval_us", s.IFGIntervalUs)
	set("ifg_bytes_per_burst", float64(s.IFGBytesPerBurst))
	set("total_ifg_bytes", float64(s.TotalIFGBytes))
	set("total_packet_bytes", float64(s.TotalPacketBytes))
	set("total_packets", float64(s.TotalPackets))
	set("payload_size", float64(s.PayloadSize))
}

func (r *Recorder) EmitFrame(ev *schedule.FrameEvent) error {
	r.framesTotal.Inc()
	r.bytesTotal.WithLabelValues("frame").Add(float64(len(ev.Bytes)))
	r.payloadTotal.Add(float64(len(ev.Payload)))
	return nil
}

func (r *Recorder) EmitGap(ev *schedule.GapEvent) error {
	r.cyclesTotal.Inc()
	r.bytesTotal.WithLabelValues("gap").Add(float64(len(ev.Bytes)))
	return nil
}

// WriteTextfile writes the current values in the text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
