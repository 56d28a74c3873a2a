package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"cpu-scheduling-simulator/config"
	"cpu-scheduling-simulator/internal/logging"
	"cpu-scheduling-simulator/internal/report"
)

var (
	cfgFile      string
	outputFormat string
	logLevel     string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "schedsim",
	Short: "CPU scheduling algorithms simulator",
	Long: `schedsim simulates classic CPU scheduling algorithms (FCFS, SJF, SRTF,
priority, round robin and a multilevel feedback queue) over a static workload
and reports per-process and aggregate metrics.`,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "output format: table, json or yaml")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error (default from config)")

	rootCmd.AddCommand(runCmd, compareCmd, sampleCmd, interactiveCmd, serveCmd)
}

// initConfig reads the config file and ENV variables, then installs the
// configured logger.
func initConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		loaded.Log.Level = logLevel
	}
	logging.SetDefault(loaded.Logger())
	config.SetSchedulerConfig(loaded)

	if _, err := report.ParseFormat(outputFormat); err != nil {
		return fmt.Errorf("--output: %w", err)
	}
	return nil
}

func format() report.Format {
	f, _ := report.ParseFormat(outputFormat)
	return f
}
