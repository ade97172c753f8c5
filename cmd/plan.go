package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"firestige.xyz/burstgen/internal/core"
	"firestige.xyz/burstgen/internal/schedule"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Print the derived burst schedule without generating output",
	Long: `Print the quantities derived from the timing configuration as YAML.

Examples:
  burstgen plan -c configs/burstgen.yaml
  burstgen plan -c configrationfile.txt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlan(cfg.TimingParameters(), cmd.OutOrStdout())
	},
}

type planView struct {
	Timing   timingView   `yaml:"timing"`
	Schedule scheduleView `yaml:"schedule"`
	Run      runView      `yaml:"run"`
}

type timingView struct {
	LineRate          float64 `yaml:"line_rate"`
	CaptureDurationMs int     `yaml:"capture_duration_ms"`
	BurstCount        int     `yaml:"burst_count"`
	BurstPeriodUs     int     `yaml:"burst_period_us"`
}

type scheduleView struct {
	CaptureTimeUs     float64 `yaml:"capture_time_us"`
	TotalCaptureBytes int64   `yaml:"total_capture_bytes"`
	BurstCycleCount   int64   `yaml:"burst_cycle_count"`
	PacketTimeUs      float64 `yaml:"packet_time_us"`
	IFGIntervalUs     float64 `yaml:"ifg_interval_us"`
	IFGBytesPerBurst  int64   `yaml:"ifg_bytes_per_burst"`
	TotalIFGBytes     int64   `yaml:"total_ifg_bytes"`
	TotalPacketBytes  int64   `yaml:"total_packet_bytes"`
	TotalPackets      int64   `yaml:"total_packets"`
	PayloadSize       int64   `yaml:"payload_size"`
}

type runView struct {
	Frames        int64 `yaml:"frames"`
	PayloadNeeded int64 `yaml:"payload_needed"`
	Fits          bool  `yaml:"fits_payload_buffer"`
}

func runPlan(t core.TimingParameters, w io.Writer) error {
	s := schedule.Derive(t)
	view := planView{
		Timing: timingView{
			LineRate:          t.LineRate,
			CaptureDurationMs: t.CaptureDurationMs,
			BurstCount:        t.BurstCount,
			BurstPeriodUs:     t.BurstPeriodUs,
		},
		Schedule: scheduleView(s),
		Run: runView{
			Frames:        s.FramesToEmit(t.BurstCount),
			PayloadNeeded: s.PayloadNeeded(t.BurstCount),
			Fits:          s.Fits(t.BurstCount, s.PayloadSize),
		},
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(view); err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}
	return enc.Close()
}
