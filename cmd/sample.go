package cmd

import (
	"github.com/spf13/cobra"

	"cpu-scheduling-simulator/internal/report"
	"cpu-scheduling-simulator/internal/workload"
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Print the built-in sample workload",
	Long: `Print the built-in sample workload. With -o yaml or -o json the output
can be saved and passed back with --file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return report.Encode(cmd.OutOrStdout(), format(), workload.Sample())
	},
}
