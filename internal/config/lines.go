package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"firestige.xyz/burstgen/internal/core"
)

// Field order of the positional line format, one value per line.
var lineFields = []string{
	"line_rate",
	"capture_duration_ms",
	"min_ifg_per_packet",
	"dest_mac",
	"src_mac",
	"max_packet_size",
	"burst_count",
	"burst_period_us",
}

// ParseLines reads the positional configuration format:
//
//	1000000000
//	1
//	12
//	AABBCCDDEEFF
//	001122334455
//	1518
//	2
//	100
//
// Missing trailing lines leave their fields zero. Only the first token of a
// numeric line is read.
func ParseLines(r io.Reader) (*GlobalConfig, error) {
	cfg := &GlobalConfig{}
	scanner := bufio.NewScanner(r)

	for i := 0; i < len(lineFields) && scanner.Scan(); i++ {
		line := strings.TrimSpace(scanner.Text())
		if err := cfg.setLineField(lineFields[i], line); err != nil {
			return nil, fmt.Errorf("%w: line %d (%s): %v", core.ErrConfigInvalid, i+1, lineFields[i], err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrConfigUnavailable, err)
	}
	return cfg, nil
}

func (c *GlobalConfig) setLineField(name, line string) error {
	switch name {
	case "dest_mac":
		c.Frame.DestMAC = line
		return nil
	case "src_mac":
		c.Frame.SrcMAC = line
		return nil
	}

	token := line
	if fields := strings.Fields(line); len(fields) > 0 {
		token = fields[0]
	}

	if name == "line_rate" {
		v, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return err
		}
		c.Timing.LineRate = v
		return nil
	}

	v, err := strconv.Atoi(token)
	if err != nil {
		return err
	}
	switch name {
	case "capture_duration_ms":
		c.Timing.CaptureDurationMs = v
	case "min_ifg_per_packet":
		c.Timing.MinIFGPerPacket = v
	case "max_packet_size":
		c.Timing.MaxPacketSize = v
	case "burst_count":
		c.Timing.BurstCount = v
	case "burst_period_us":
		c.Timing.BurstPeriodUs = v
	}
	return nil
}
