package caption

import (
	"errors"
	"testing"
)

const sniffSRT = "1\n00:00:01,000 --> 00:00:02,000\nHello\n"

const sniffITT = `<?xml version="1.0"?>
<tt xmlns="http://www.w3.org/ns/ttml" xmlns:ttp="http://www.w3.org/ns/ttml#parameter" ttp:frameRate="25">
<body><div><p begin="00:00:01:00" end="00:00:02:00">Hello</p></div></body>
</tt>`

func TestParseSniffing(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		hint       Format
		wantFormat Format
		wantCues   int
	}{
		{"srt sniffed", sniffSRT, FormatUnknown, FormatSRT, 1},
		{"itt sniffed", sniffITT, FormatUnknown, FormatITT, 1},
		{"srt hinted", sniffSRT, FormatSRT, FormatSRT, 1},
		{"itt hinted", sniffITT, FormatITT, FormatITT, 1},
		{
			"bom stripped",
			"\ufeff" + sniffSRT,
			FormatUnknown,
			FormatSRT,
			1,
		},
		{
			// No index line, so the SRT detector misses; the
			// fallback parse still finds the cue.
			"ambiguous srt",
			"00:00:01,000 --> 00:00:02,000\nHello\n",
			FormatUnknown,
			FormatSRT,
			1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.input), tt.hint)
			if err != nil {
				t.Fatalf("Parse returned error: %v", err)
			}
			if doc.Format != tt.wantFormat {
				t.Errorf("format = %q, want %q", doc.Format, tt.wantFormat)
			}
			if len(doc.Cues) != tt.wantCues {
				t.Errorf("got %d cues, want %d", len(doc.Cues), tt.wantCues)
			}
		})
	}
}

func TestParseUnrecognized(t *testing.T) {
	_, err := Parse([]byte("this is not a caption file"), FormatUnknown)
	if !errors.Is(err, ErrUnrecognizedFormat) {
		t.Fatalf("Parse error = %v, want ErrUnrecognizedFormat", err)
	}
}

func TestParseITTCarriesFrameRate(t *testing.T) {
	doc, err := Parse([]byte(sniffITT), FormatUnknown)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if doc.FrameRate != 25 {
		t.Errorf("frame rate = %v, want 25", doc.FrameRate)
	}

	srtDoc, err := Parse([]byte(sniffSRT), FormatUnknown)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if srtDoc.FrameRate != 0 {
		t.Errorf("srt frame rate = %v, want 0", srtDoc.FrameRate)
	}
}

func TestFormatFromExtension(t *testing.T) {
	tests := []struct {
		ext  string
		want Format
	}{
		{".srt", FormatSRT},
		{"srt", FormatSRT},
		{".SRT", FormatSRT},
		{".itt", FormatITT},
		{".ttml", FormatITT},
		{".xml", FormatITT},
		{".txt", FormatUnknown},
		{"", FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			if got := FormatFromExtension(tt.ext); got != tt.want {
				t.Errorf(
					"FormatFromExtension(%q) = %q, want %q",
					tt.ext,
					got,
					tt.want,
				)
			}
		})
	}
}
