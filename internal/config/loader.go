package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"firestige.xyz/burstgen/internal/core"
)

// configRoot matches the YAML structure `burstgen: ...`.
type configRoot struct {
	Burstgen GlobalConfig `mapstructure:"burstgen"`
}

// Load reads configuration from path. A ".txt" file is read in the
// positional line format (see ParseLines); anything else goes through viper.
// Env vars override viper keys, e.g. BURSTGEN_TIMING_BURST_COUNT.
func Load(path string) (*GlobalConfig, error) {
	if strings.EqualFold(filepath.Ext(path), ".txt") {
		return LoadLines(path)
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", core.ErrConfigUnavailable, path, err)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	var root configRoot
	if err := v.Unmarshal(&root); err != nil {
		return nil, fmt.Errorf("%w: unmarshal: %v", core.ErrConfigInvalid, err)
	}
	cfg := root.Burstgen

	if err := cfg.ValidateAndApplyDefaults(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// LoadLines reads a positional line file (see ParseLines) and applies the
// same ambient defaults as Load.
func LoadLines(path string) (*GlobalConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrConfigUnavailable, err)
	}
	defer f.Close()

	cfg, err := ParseLines(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.Output = defaultOutput()
	if err := cfg.ValidateAndApplyDefaults(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func defaultOutput() OutputConfig {
	return OutputConfig{Path: "outputfile.txt"}
}

// setDefaults mirrors the worked example capture: 1 Gbit/s, 1 ms,
// bursts of 2 frames every 100 µs.
func setDefaults(v *viper.Viper) {
	v.SetDefault("burstgen.timing.line_rate", 1e9)
	v.SetDefault("burstgen.timing.capture_duration_ms", 1)
	v.SetDefault("burstgen.timing.min_ifg_per_packet", 12)
	v.SetDefault("burstgen.timing.max_packet_size", 1518)
	v.SetDefault("burstgen.timing.burst_count", 2)
	v.SetDefault("burstgen.timing.burst_period_us", 100)

	v.SetDefault("burstgen.frame.dest_mac", "AABBCCDDEEFF")
	v.SetDefault("burstgen.frame.src_mac", "001122334455")

	v.SetDefault("burstgen.output.path", defaultOutput().Path)
	v.SetDefault("burstgen.output.pcap", "")
	v.SetDefault("burstgen.output.metrics_file", "")

	v.SetDefault("burstgen.log.level", "info")
	v.SetDefault("burstgen.log.format", "text")
	v.SetDefault("burstgen.log.file.enabled", false)
	v.SetDefault("burstgen.log.file.path", "/var/log/burstgen/burstgen.log")
	v.SetDefault("burstgen.log.file.max_size_mb", 100)
	v.SetDefault("burstgen.log.file.max_age_days", 30)
	v.SetDefault("burstgen.log.file.max_backups", 5)
	v.SetDefault("burstgen.log.file.compress", true)
}
