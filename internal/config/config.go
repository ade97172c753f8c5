// Package config handles generator configuration loading using viper.
package config

import (
	"fmt"

	"firestige.xyz/burstgen/internal/core"
)

// GlobalConfig is the top-level configuration.
// Maps to the `burstgen:` root key in YAML.
type GlobalConfig struct {
	Timing TimingConfig `mapstructure:"timing"`
	Frame  FrameConfig  `mapstructure:"frame"`
	Output OutputConfig `mapstructure:"output"`
	Log    LogConfig    `mapstructure:"log"`
}

// ─── Capture ───

// TimingConfig holds the rate and burst pattern of the capture.
// Values are not checked for plausibility.
type TimingConfig struct {
	LineRate          float64 `mapstructure:"line_rate"` // bit/s
	CaptureDurationMs int     `mapstructure:"capture_duration_ms"`
	MinIFGPerPacket   int     `mapstructure:"min_ifg_per_packet"`
	MaxPacketSize     int     `mapstructure:"max_packet_size"`
	BurstCount        int     `mapstructure:"burst_count"`
	BurstPeriodUs     int     `mapstructure:"burst_period_us"`
}

// FrameConfig holds the addresses as delimiter-free hex strings.
type FrameConfig struct {
	DestMAC string `mapstructure:"dest_mac"`
	SrcMAC  string `mapstructure:"src_mac"`
}

// ─── Output ───

// OutputConfig selects where generated data goes.
type OutputConfig struct {
	Path        string `mapstructure:"path"`         // hex dump; "" or "-" = stdout
	Pcap        string `mapstructure:"pcap"`         // optional capture file
	MetricsFile string `mapstructure:"metrics_file"` // optional Prometheus textfile
}

// ─── Log ───

// LogConfig contains logging settings.
type LogConfig struct {
	Level   string        `mapstructure:"level"`   // trace / debug / info / warn / error
	Format  string        `mapstructure:"format"`  // text / json
	Pattern string        `mapstructure:"pattern"` // text only
	Time    string        `mapstructure:"time"`
	File    LogFileConfig `mapstructure:"file"`
}

// LogFileConfig configures rotated file output.
type LogFileConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Path       string `mapstructure:"path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	MaxBackups int    `mapstructure:"max_backups"`
	Compress   bool   `mapstructure:"compress"`
}

// TimingParameters converts the timing section for the scheduler.
func (c *GlobalConfig) TimingParameters() core.TimingParameters {
	return core.TimingParameters{
		LineRate:          c.Timing.LineRate,
		CaptureDurationMs: c.Timing.CaptureDurationMs,
		MinIFGPerPacket:   c.Timing.MinIFGPerPacket,
		MaxPacketSize:     c.Timing.MaxPacketSize,
		BurstCount:        c.Timing.BurstCount,
		BurstPeriodUs:     c.Timing.BurstPeriodUs,
	}
}

// FrameSpec decodes the addresses and returns the fixed frame layout.
func (c *GlobalConfig) FrameSpec() (*core.FrameSpec, error) {
	dst, err := core.DecodeAddress(c.Frame.DestMAC)
	if err != nil {
		return nil, fmt.Errorf("frame.dest_mac: %w", err)
	}
	src, err := core.DecodeAddress(c.Frame.SrcMAC)
	if err != nil {
		return nil, fmt.Errorf("frame.src_mac: %w", err)
	}
	return core.DefaultFrameSpec(dst, src), nil
}

// ValidateAndApplyDefaults checks the ambient sections. Timing values are
// taken as given.
func (c *GlobalConfig) ValidateAndApplyDefaults() error {
	switch c.Log.Level {
	case "":
		c.Log.Level = "info"
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log level %s (must be trace/debug/info/warn/error)", core.ErrConfigInvalid, c.Log.Level)
	}
	switch c.Log.Format {
	case "":
		c.Log.Format = "text"
	case "text", "json":
	default:
		return fmt.Errorf("%w: log format %s (must be json/text)", core.ErrConfigInvalid, c.Log.Format)
	}
	if c.Log.File.Enabled && c.Log.File.Path == "" {
		return fmt.Errorf("%w: log.file.path is required when log.file.enabled=true", core.ErrConfigInvalid)
	}
	return nil
}
