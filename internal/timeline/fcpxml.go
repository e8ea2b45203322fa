package timeline

import (
	"encoding/xml"
	"fmt"
	"sort"
	"strings"

	"github.com/dvaidya/titleforge/internal/caption"
	"github.com/dvaidya/titleforge/internal/timecode"
)

// Style is the single text style applied to every generated title.
type Style struct {
	Font      string
	FontSize  string
	FontFace  string
	FontColor string
	Alignment string
}

// DefaultStyle returns the style used when no configuration overrides
// it.
func DefaultStyle() Style {
	return Style{
		Font:      "Helvetica",
		FontSize:  "96",
		FontFace:  "Regular",
		FontColor: "1 1 1 1",
		Alignment: "center",
	}
}

type fcpxml struct {
	XMLName   xml.Name  `xml:"fcpxml"`
	Version   string    `xml:"version,attr"`
	Resources resources `xml:"resources"`
	Library   library   `xml:"library"`
}

type resources struct {
	Formats []format `xml:"format"`
	Effects []effect `xml:"effect"`
}

type format struct {
	ID            string `xml:"id,attr"`
	Name          string `xml:"name,attr"`
	FrameDuration string `xml:"frameDuration,attr"`
	Width         string `xml:"width,attr"`
	Height        string `xml:"height,attr"`
	ColorSpace    string `xml:"colorSpace,attr"`
}

type effect struct {
	ID   string `xml:"id,attr"`
	Name string `xml:"name,attr"`
	UID  string `xml:"uid,attr"`
}

type library struct {
	Events []event `xml:"event"`
}

type event struct {
	Name     string    `xml:"name,attr"`
	Projects []project `xml:"project"`
}

type project struct {
	Name      string     `xml:"name,attr"`
	Sequences []sequence `xml:"sequence"`
}

type sequence struct {
	Format      string `xml:"format,attr"`
	Duration    string `xml:"duration,attr"`
	TCStart     string `xml:"tcStart,attr"`
	TCFormat    string `xml:"tcFormat,attr"`
	AudioLayout string `xml:"audioLayout,attr"`
	AudioRate   string `xml:"audioRate,attr"`
	Spine       spine  `xml:"spine"`
}

type spine struct {
	Content string `xml:",innerxml"`
}

// BuildDocument renders the cues into a complete FCPXML title timeline
// under the given reference. The document name labels both the event
// and the project. Every emitted offset and duration lands on a frame
// boundary; offsets and durations are snapped independently.
func BuildDocument(
	cues []caption.Cue,
	ref Reference,
	name string,
	style Style,
) ([]byte, error) {
	sorted := make([]caption.Cue, len(cues))
	copy(sorted, cues)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	// A sequence is never shorter than one second, even with no cues.
	totalSeconds := 1.0
	for _, cue := range sorted {
		if cue.End > totalSeconds {
			totalSeconds = cue.End
		}
	}
	totalTicks := timecode.SnapToFrame(
		timecode.SecondsToTicks(totalSeconds, ref.Timescale),
		ref.FrameTicks,
	)

	doc := fcpxml{
		Version: "1.10",
		Resources: resources{
			Formats: []format{
				{
					ID:            "r1",
					Name:          ref.FormatName,
					FrameDuration: timecode.Rational(ref.FrameTicks, ref.Timescale),
					Width:         "1920",
					Height:        "1080",
					ColorSpace:    "1-1-1 (Rec. 709)",
				},
			},
			Effects: []effect{
				{
					ID:   "r2",
					Name: "Basic Title",
					UID:  ref.EffectUID,
				},
			},
		},
		Library: library{
			Events: []event{
				{
					Name: name,
					Projects: []project{
						{
							Name: name,
							Sequences: []sequence{
								{
									Format:      "r1",
									Duration:    timecode.Rational(totalTicks, ref.Timescale),
									TCStart:     "0s",
									TCFormat:    "NDF",
									AudioLayout: "stereo",
									AudioRate:   "48k",
									Spine: spine{
										Content: buildSpine(sorted, ref, style),
									},
								},
							},
						},
					},
				},
			},
		},
	}

	out, err := xml.MarshalIndent(doc, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal fcpxml: %w", err)
	}

	text := xml.Header + "<!DOCTYPE fcpxml>\n" + string(out) + "\n"
	return []byte(text), nil
}

func buildSpine(cues []caption.Cue, ref Reference, style Style) string {
	var sb strings.Builder

	if len(cues) > 0 {
		firstOffset := timecode.SnapToFrame(
			timecode.SecondsToTicks(cues[0].Start, ref.Timescale),
			ref.FrameTicks,
		)
		if firstOffset > 0 {
			sb.WriteString(fmt.Sprintf(
				"\n<gap name=\"Gap\" offset=\"0s\" duration=\"%s\"/>",
				timecode.Rational(firstOffset, ref.Timescale),
			))
		}
	}

	for i, cue := range cues {
		offset := timecode.SnapToFrame(
			timecode.SecondsToTicks(cue.Start, ref.Timescale),
			ref.FrameTicks,
		)
		duration := timecode.SnapToFrame(
			timecode.SecondsToTicks(cue.End-cue.Start, ref.Timescale),
			ref.FrameTicks,
		)
		if duration == 0 {
			// A title must never be zero frames long.
			duration = ref.FrameTicks
		}

		text := escapeXML(cue.Text)
		title := titleName(text, i)

		sb.WriteString(fmt.Sprintf(
			"\n<title ref=\"r2\" offset=\"%s\" name=\"%s\" duration=\"%s\">"+
				"\n    <text>"+
				"\n        <text-style ref=\"ts%d\">%s</text-style>"+
				"\n    </text>"+
				"\n    <text-style-def id=\"ts%d\">"+
				"\n        <text-style font=\"%s\" fontSize=\"%s\" fontFace=\"%s\" fontColor=\"%s\" alignment=\"%s\"/>"+
				"\n    </text-style-def>"+
				"\n</title>",
			timecode.Rational(offset, ref.Timescale),
			title,
			timecode.Rational(duration, ref.Timescale),
			i+1,
			text,
			i+1,
			style.Font,
			style.FontSize,
			style.FontFace,
			style.FontColor,
			style.Alignment,
		))
	}

	if sb.Len() > 0 {
		sb.WriteString("\n")
	}
	return sb.String()
}

// titleName derives a human-readable element name from the first line
// of the escaped cue text, falling back to a 1-based synthetic label.
func titleName(escaped string, index int) string {
	first, _, _ := strings.Cut(escaped, "\n")
	first = strings.TrimSpace(first)
	if first == "" {
		return fmt.Sprintf("Caption %d", index+1)
	}
	return first
}

func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&#39;")
	return s
}
