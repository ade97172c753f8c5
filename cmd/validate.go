package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"firestige.xyz/burstgen/internal/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file",
	Long: `Validate the configuration file (YAML or positional text) without generating output.
Addresses must decode as hex; timing values are not checked for plausibility.

Examples:
  burstgen validate -c configs/burstgen.yaml
  burstgen validate -c configrationfile.txt`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cfg, cmd.OutOrStdout())
	},
}

func runValidate(c *config.GlobalConfig, w io.Writer) error {
	spec, err := c.FrameSpec()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "✓ Configuration valid (dst %x, src %x, %g bit/s, %d x %d µs)\n",
		spec.Dst, spec.Src, c.Timing.LineRate, c.Timing.BurstCount, c.Timing.BurstPeriodUs)
	return nil
}
