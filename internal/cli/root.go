package cli

import (
	"github.com/dvaidya/titleforge/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	logger  *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "titleforge",
	Short: "Convert caption files into Final Cut Pro title timelines",
	Long: `Titleforge converts SRT and iTT caption files into FCPXML
documents whose titles land exactly on frame boundaries.

Timing can be taken from the caption source itself, from an existing
FCPXML document, or from a probed video file.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringP("config", "c", "", "Path to a titleforge.yaml config file")
}
