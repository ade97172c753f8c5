package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"firestige.xyz/burstgen/internal/config"
	"firestige.xyz/burstgen/internal/log"
	"firestige.xyz/burstgen/internal/metrics"
	"firestige.xyz/burstgen/internal/schedule"
	"firestige.xyz/burstgen/internal/sink"
)

var (
	outputPath  string
	pcapPath    string
	metricsPath string
	startTime   string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the burst capture",
	Long: `Generate the frames and inter-frame gaps of one capture run.

Examples:
  burstgen generate                                  # config/output from configs/burstgen.yaml
  burstgen generate -c configrationfile.txt -o -     # positional config, dump to terminal
  burstgen generate -o out.txt --pcap out.pcap       # also record the frames as pcap
  burstgen generate --metrics-file burstgen.prom     # write run counters as Prometheus textfile`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("output") {
			cfg.Output.Path = outputPath
		}
		if cmd.Flags().Changed("pcap") {
			cfg.Output.Pcap = pcapPath
		}
		if cmd.Flags().Changed("metrics-file") {
			cfg.Output.MetricsFile = metricsPath
		}
		base := time.Unix(0, 0).UTC()
		if startTime != "" {
			t, err := time.Parse(time.RFC3339Nano, startTime)
			if err != nil {
				return fmt.Errorf("invalid --start-time: %w", err)
			}
			base = t
		}

		stats, err := runGenerate(cfg, base)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "✓ Generated %d frames and %d gap bytes (%d bytes total)\n",
			stats.Frames, stats.GapBytes, stats.TotalBytes())
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVarP(&outputPath, "output", "o", "", `hex dump destination ("-" for stdout)`)
	generateCmd.Flags().StringVar(&pcapPath, "pcap", "", "write generated frames to this pcap file")
	generateCmd.Flags().StringVar(&metricsPath, "metrics-file", "", "write run metrics to this Prometheus textfile")
	generateCmd.Flags().StringVar(&startTime, "start-time", "", "pcap timestamp of the first frame (RFC3339, default Unix epoch)")
}

// runGenerate performs one capture run. Every output opened here is closed
// before it returns, on success and on failure.
func runGenerate(c *config.GlobalConfig, base time.Time) (stats schedule.Stats, err error) {
	logger := log.GetLogger()

	spec, err := c.FrameSpec()
	if err != nil {
		return stats, err
	}

	out, err := sink.OpenOutput(c.Output.Path)
	if err != nil {
		return stats, err
	}
	defer closeOutput(out, &err)

	text := sink.NewTextSink(out)
	emitters := sink.Multi{text}

	if c.Output.Pcap != "" {
		var pf io.WriteCloser
		if pf, err = sink.OpenOutput(c.Output.Pcap); err != nil {
			return stats, err
		}
		defer closeOutput(pf, &err)

		var ps *sink.PcapSink
		if ps, err = sink.NewPcapSink(pf, base); err != nil {
			return stats, err
		}
		emitters = append(emitters, ps)
	}

	recorder := metrics.NewRecorder()
	emitters = append(emitters, recorder)

	s := schedule.New(spec, c.TimingParameters(), emitters)
	sched := s.Schedule()
	recorder.ObserveSchedule(sched)
	logger.WithFields(map[string]interface{}{
		"total_capture_bytes": sched.TotalCaptureBytes,
		"cycles":              sched.BurstCycleCount,
		"total_packets":       sched.TotalPackets,
		"payload_size":        sched.PayloadSize,
	}).Info("derived schedule")

	stats, err = s.Run()
	if ferr := text.Flush(); err == nil && ferr != nil {
		err = fmt.Errorf("flush output: %w", ferr)
	}
	if err != nil {
		return stats, err
	}

	if c.Output.MetricsFile != "" {
		if err = recorder.WriteTextfile(c.Output.MetricsFile); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

func closeOutput(c io.Closer, err *error) {
	if cerr := c.Close(); cerr != nil && *err == nil {
		*err = fmt.Errorf("close output: %w", cerr)
	}
}
