package timeline

import (
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/dvaidya/titleforge/internal/caption"
	"github.com/dvaidya/titleforge/internal/timecode"
)

func buildString(t *testing.T, cues []caption.Cue, ref Reference) string {
	t.Helper()
	out, err := BuildDocument(cues, ref, "Test Captions", DefaultStyle())
	if err != nil {
		t.Fatalf("BuildDocument returned error: %v", err)
	}
	return string(out)
}

func TestBuildDocumentStructure(t *testing.T) {
	cues := []caption.Cue{
		{Start: 1, End: 3, Text: "Hello"},
		{Start: 3, End: 5, Text: "World"},
	}
	doc := buildString(t, cues, Default())

	for _, want := range []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		"<!DOCTYPE fcpxml>",
		`<fcpxml version="1.10">`,
		`frameDuration="1001/30000s"`,
		`width="1920" height="1080" colorSpace="1-1-1 (Rec. 709)"`,
		`<event name="Test Captions">`,
		`<project name="Test Captions">`,
		`tcStart="0s" tcFormat="NDF" audioLayout="stereo" audioRate="48k"`,
		"<spine>",
		`<text-style ref="ts1">Hello</text-style>`,
		`<text-style ref="ts2">World</text-style>`,
		`<text-style-def id="ts1">`,
		`alignment="center"`,
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q", want)
		}
	}

	// Sequence duration: five seconds snapped to the 29.97 grid.
	wantTicks := timecode.SnapToFrame(
		timecode.SecondsToTicks(5, 30000),
		1001,
	)
	wantDur := `duration="` + timecode.Rational(wantTicks, 30000) + `"`
	if !strings.Contains(doc, wantDur) {
		t.Errorf("document missing sequence duration %s", wantDur)
	}
}

func TestBuildDocumentLeadingGap(t *testing.T) {
	ref := ResolveFromFrameRate(25)

	withGap := buildString(t, []caption.Cue{
		{Start: 2, End: 4, Text: "Late start"},
	}, ref)
	if !strings.Contains(withGap, `<gap name="Gap" offset="0s" duration="50000/25000s"/>`) {
		t.Error("expected a leading gap covering the first two seconds")
	}

	noGap := buildString(t, []caption.Cue{
		{Start: 0, End: 2, Text: "Immediate"},
	}, ref)
	if strings.Contains(noGap, "<gap") {
		t.Error("unexpected gap when the first cue starts at zero")
	}
}

func TestBuildDocumentSortsCues(t *testing.T) {
	doc := buildString(t, []caption.Cue{
		{Start: 3, End: 5, Text: "Second"},
		{Start: 1, End: 3, Text: "First"},
	}, Default())

	first := strings.Index(doc, ">First<")
	second := strings.Index(doc, ">Second<")
	if first < 0 || second < 0 {
		t.Fatal("cue texts missing from output")
	}
	if first > second {
		t.Error("cues not sorted by start time")
	}
}

func TestBuildDocumentMinimumDurations(t *testing.T) {
	ref := Default()

	// Sub-frame cue: duration snaps to zero, forced to one frame.
	doc := buildString(t, []caption.Cue{
		{Start: 1, End: 1.01, Text: "Blink"},
	}, ref)
	if !strings.Contains(doc, `duration="1001/30000s"`) {
		t.Error("sub-frame cue should get exactly one frame of duration")
	}

	// No cues at all: sequence still lasts one second.
	empty := buildString(t, nil, ref)
	wantTicks := timecode.SnapToFrame(
		timecode.SecondsToTicks(1, ref.Timescale),
		ref.FrameTicks,
	)
	if !strings.Contains(empty, timecode.Rational(wantTicks, ref.Timescale)) {
		t.Error("empty document should declare a one second sequence")
	}
}

func TestBuildDocumentEscaping(t *testing.T) {
	doc := buildString(t, []caption.Cue{
		{Start: 0, End: 2, Text: `Tom & Jerry <say> "hi" it's fine`},
	}, Default())

	if !strings.Contains(doc,
		`Tom &amp; Jerry &lt;say&gt; &quot;hi&quot; it&#39;s fine`) {
		t.Error("cue text not escaped for XML")
	}
	if strings.Contains(doc, "<say>") {
		t.Error("raw markup leaked into the document")
	}
}

func TestBuildDocumentTitleNames(t *testing.T) {
	doc := buildString(t, []caption.Cue{
		{Start: 0, End: 2, Text: "First line\nSecond line"},
		{Start: 2, End: 4, Text: ""},
	}, Default())

	if !strings.Contains(doc, `name="First line"`) {
		t.Error("title name should be the first text line")
	}
	if !strings.Contains(doc, `name="Caption 2"`) {
		t.Error("empty cue should get a synthetic caption name")
	}
	if !strings.Contains(doc, "First line\nSecond line") {
		t.Error("multi-line text should keep its newlines")
	}
}

var offsetAttrRegex = regexp.MustCompile(`<title [^>]*offset="(\d+)/(\d+)s"`)

func TestBuildDocumentOffsetsFrameAligned(t *testing.T) {
	// Awkward non-aligned input times; every emitted offset must still
	// be an exact multiple of frameTicks.
	cues := []caption.Cue{
		{Start: 0.123, End: 1.456, Text: "a"},
		{Start: 2.789, End: 3.001, Text: "b"},
		{Start: 7.777, End: 9.999, Text: "c"},
	}
	ref := Default()
	doc := buildString(t, cues, ref)

	matches := offsetAttrRegex.FindAllStringSubmatch(doc, -1)
	if len(matches) == 0 {
		t.Fatal("no title offsets found in output")
	}
	for _, m := range matches {
		ticks, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			t.Fatalf("offset %q did not parse: %v", m[1], err)
		}
		scale, err := strconv.ParseInt(m[2], 10, 64)
		if err != nil {
			t.Fatalf("timescale %q did not parse: %v", m[2], err)
		}
		if scale != ref.Timescale {
			t.Errorf("offset timescale = %d, want %d", scale, ref.Timescale)
		}
		if ticks%ref.FrameTicks != 0 {
			t.Errorf(
				"offset %d is not a multiple of frameTicks %d",
				ticks,
				ref.FrameTicks,
			)
		}
	}
}

func TestBuildDocumentIndependentSnapping(t *testing.T) {
	// Snapped duration comes from snapping end-start itself, not from
	// subtracting snapped endpoints.
	ref := Default()
	start, end := 0.5, 1.6
	cue := caption.Cue{Start: start, End: end, Text: "x"}

	wantDur := timecode.SnapToFrame(
		timecode.SecondsToTicks(end-start, ref.Timescale),
		ref.FrameTicks,
	)
	doc := buildString(t, []caption.Cue{cue}, ref)
	if !strings.Contains(doc,
		`duration="`+timecode.Rational(wantDur, ref.Timescale)+`"`) {
		t.Errorf(
			"duration should be snap(end-start) = %d ticks",
			wantDur,
		)
	}
}
