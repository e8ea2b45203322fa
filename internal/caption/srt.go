package caption

import (
	"regexp"
	"strings"

	"github.com/dvaidya/titleforge/internal/timecode"
)

var indexLineRegex = regexp.MustCompile(`(?m)^\s*\d+\s*$`)

// looksLikeSRT reports whether the content resembles an SRT document:
// an arrow range marker plus at least one standalone digits-only line.
func looksLikeSRT(content string) bool {
	return strings.Contains(content, "-->") &&
		indexLineRegex.MatchString(content)
}

// parseSRT parses blank-line-separated SRT blocks. Malformed blocks
// and cues whose interval is not strictly increasing are dropped.
func parseSRT(content string) []Cue {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	var cues []Cue
	for _, block := range strings.Split(content, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}

		lines := strings.Split(block, "\n")
		if len(lines) < 2 {
			continue
		}

		// The timing line is the first or second line, depending on
		// whether the block carries a leading numeric index.
		timingIdx := -1
		for i := 0; i < 2 && i < len(lines); i++ {
			if strings.Contains(lines[i], "-->") {
				timingIdx = i
				break
			}
		}
		if timingIdx < 0 {
			continue
		}

		timing := strings.SplitN(lines[timingIdx], "-->", 2)
		if len(timing) != 2 {
			continue
		}

		start, err := timecode.ParseBlockTimecode(timing[0])
		if err != nil {
			continue
		}
		end, err := timecode.ParseBlockTimecode(timing[1])
		if err != nil {
			continue
		}
		if end <= start {
			continue
		}

		text := strings.TrimSpace(
			strings.Join(lines[timingIdx+1:], "\n"),
		)

		cues = append(cues, Cue{Start: start, End: end, Text: text})
	}

	return cues
}
