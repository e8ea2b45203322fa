package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dvaidya/titleforge/internal/caption"
	"github.com/dvaidya/titleforge/internal/pipeline"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [caption_file]",
	Short: "Parse a caption file and report what would be converted",
	Long: `Parse a caption file without writing anything, reporting the
detected format, the cue count and time span, and the timeline
reference a conversion would use.

Examples:
  titleforge inspect captions.srt
  titleforge inspect captions.itt --cues`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().
		Bool("cues", false, "Also list every cue with its interval")
}

func runInspect(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	listCues, _ := cmd.Flags().GetBool("cues")

	source, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read caption file: %w", err)
	}

	session, err := pipeline.Load(source, nil, pipeline.LoadOptions{
		FormatHint: caption.FormatFromExtension(filepath.Ext(inputPath)),
	})
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}

	var span float64
	for _, cue := range session.Cues {
		if cue.End > span {
			span = cue.End
		}
	}

	fmt.Printf("File:        %s\n", inputPath)
	fmt.Printf("Format:      %s\n", session.Format)
	fmt.Printf("Cues:        %d\n", len(session.Cues))
	fmt.Printf("Span:        %.3fs\n", span)
	fmt.Printf("Timescale:   %d\n", session.Reference.Timescale)
	fmt.Printf("Frame ticks: %d\n", session.Reference.FrameTicks)
	fmt.Printf("Timeline:    %s\n", session.Reference.FormatName)

	if listCues {
		fmt.Println()
		for i, cue := range session.Cues {
			fmt.Printf(
				"%4d  %9.3f -> %9.3f  %s\n",
				i+1,
				cue.Start,
				cue.End,
				firstLine(cue.Text),
			)
		}
	}

	return nil
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
