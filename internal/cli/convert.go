package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dvaidya/titleforge/internal/caption"
	"github.com/dvaidya/titleforge/internal/config"
	"github.com/dvaidya/titleforge/internal/pipeline"
	"github.com/dvaidya/titleforge/internal/timeline"
	"github.com/dvaidya/titleforge/internal/video"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert [caption_file]",
	Short: "Convert a caption file to an FCPXML title timeline",
	Long: `Convert an SRT or iTT caption file into an FCPXML document.

The output timeline's frame geometry comes from, in order of
precedence: an existing FCPXML reference document (--reference), an
explicit frame rate (--rate), a probed video file (--rate-from), the
caption source's own declared rate, or the built-in 29.97 default.

Examples:
  titleforge convert captions.srt
  titleforge convert captions.srt -o captions.fcpxml --name "Episode 4"
  titleforge convert captions.itt --reference project.fcpxml
  titleforge convert captions.srt --rate-from movie.mp4`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().
		StringP("output", "o", "", "Output file path (default: input with .fcpxml)")
	convertCmd.Flags().
		StringP("name", "n", "", "Event and project name (default: input file name)")
	convertCmd.Flags().
		StringP("reference", "r", "", "Existing FCPXML document to take frame geometry from")
	convertCmd.Flags().
		Float64("rate", 0, "Force a source frame rate (e.g. 25, 29.97)")
	convertCmd.Flags().
		String("rate-from", "", "Probe a video file for the source frame rate")
	convertCmd.Flags().
		String("format", "", "Caption format hint (srt, itt) instead of sniffing")
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	outputPath, _ := cmd.Flags().GetString("output")
	name, _ := cmd.Flags().GetString("name")
	referencePath, _ := cmd.Flags().GetString("reference")
	rate, _ := cmd.Flags().GetFloat64("rate")
	rateFrom, _ := cmd.Flags().GetString("rate-from")
	formatHint, _ := cmd.Flags().GetString("format")
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	source, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read caption file: %w", err)
	}

	var reference []byte
	if referencePath != "" {
		reference, err = os.ReadFile(referencePath)
		if err != nil {
			return fmt.Errorf("failed to read reference document: %w", err)
		}
	}

	if rateFrom != "" {
		if rate != 0 {
			return fmt.Errorf("--rate and --rate-from are mutually exclusive")
		}
		info, err := video.Probe(context.Background(), rateFrom)
		if err != nil {
			return fmt.Errorf("frame rate probe failed: %w", err)
		}
		rate = info.FrameRate
		logger.Infow("Probed frame rate",
			"video", rateFrom,
			"frame_rate", rate,
			"codec", info.Codec,
		)
	}

	hint := caption.FormatFromExtension(formatHint)
	if hint == caption.FormatUnknown && formatHint != "" {
		return fmt.Errorf(
			"unknown format hint %q: supported hints are srt, itt",
			formatHint,
		)
	}
	if hint == caption.FormatUnknown {
		hint = caption.FormatFromExtension(filepath.Ext(inputPath))
	}

	session, err := pipeline.Load(source, reference, pipeline.LoadOptions{
		FormatHint: hint,
		FrameRate:  rate,
	})
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}

	logger.Infow("Loaded captions",
		"input", inputPath,
		"format", string(session.Format),
		"cues", len(session.Cues),
		"timescale", session.Reference.Timescale,
		"frame_ticks", session.Reference.FrameTicks,
	)
	if len(session.Cues) == 0 {
		logger.Warnw("No usable cues in input", "input", inputPath)
	}

	if name == "" {
		base := filepath.Base(inputPath)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if name == "" {
		name = cfg.Naming.DefaultName
	}

	out, err := session.Convert(name, timeline.Style{
		Font:      cfg.Title.Font,
		FontSize:  cfg.Title.FontSize,
		FontFace:  cfg.Title.FontFace,
		FontColor: cfg.Title.FontColor,
		Alignment: cfg.Title.Alignment,
	})
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	if outputPath == "" {
		outputPath = strings.TrimSuffix(
			inputPath,
			filepath.Ext(inputPath),
		) + ".fcpxml"
	}
	if err := os.WriteFile(outputPath, out, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf(
		"Converted %d captions to %s\n",
		len(session.Cues),
		absOutput,
	)

	return nil
}
