// Package cmd implements CLI commands using cobra framework.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"firestige.xyz/burstgen/internal/config"
	"firestige.xyz/burstgen/internal/log"
)

var (
	// Global flags
	configFile string

	cfg *config.GlobalConfig
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "burstgen",
	Short: "burstgen - deterministic Ethernet burst capture synthesizer",
	Long: `burstgen synthesizes the byte stream of a captured burst of Ethernet traffic:
fully-formed frames interleaved with inter-frame gap filler, sized and timed to a
target line rate, capture duration and burst pattern.

Output:
  - hex dump in groups of 4 bytes (file or terminal)
  - optional pcap capture of the generated frames
  - optional Prometheus textfile with run counters`,
	Version:           "0.1.0",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "configs/burstgen.yaml",
		"config file path (.yaml/.yml via viper, .txt positional line format)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(validateCmd)
}

// loadConfig loads the configuration and initializes logging once per
// invocation. Commands that do not need it skip it via annotations.
func loadConfig(cmd *cobra.Command, args []string) error {
	if cmd.Annotations["config"] == "skip" {
		return nil
	}
	c, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if err := log.Init(c.Log); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	cfg = c
	return nil
}
