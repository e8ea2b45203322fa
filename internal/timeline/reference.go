package timeline

import (
	"encoding/xml"
	"math"
	"strconv"
	"strings"
)

// Reference is the timing contract governing one output document: the
// tick timescale, the ticks per frame, the format resource label, and
// the title effect the generated titles point at.
type Reference struct {
	Timescale  int64
	FrameTicks int64
	FormatName string
	EffectUID  string
}

// default Basic Title effect shipped with the editor
const defaultEffectUID = ".../Titles.localized/Bumper:Opener.localized/" +
	"Basic Title.localized/Basic Title.moti"

// Default returns the 29.97 fps NTSC reference used when nothing else
// is known about the target timeline.
func Default() Reference {
	return Reference{
		Timescale:  30000,
		FrameTicks: 1001,
		FormatName: "FFVideoFormat1080p2997",
		EffectUID:  defaultEffectUID,
	}
}

// ResolveFromFrameRate maps a source frame rate to the canonical
// reference for that rate. Standard broadcast rates get the exact
// timescale pairs editors expect; anything else falls back to a
// millisecond-grain timescale. Non-positive rates yield the default.
func ResolveFromFrameRate(rate float64) Reference {
	ref := Default()
	if rate <= 0 {
		return ref
	}

	switch {
	case rate == 30:
		ref.Timescale, ref.FrameTicks = 30000, 1000
		ref.FormatName = "FFVideoFormat1080p30"
	case math.Abs(rate-29.97) <= 0.01:
		ref.Timescale, ref.FrameTicks = 30000, 1001
		ref.FormatName = "FFVideoFormat1080p2997"
	case rate == 25:
		ref.Timescale, ref.FrameTicks = 25000, 1000
		ref.FormatName = "FFVideoFormat1080p25"
	case rate == 24:
		ref.Timescale, ref.FrameTicks = 24000, 1000
		ref.FormatName = "FFVideoFormat1080p24"
	default:
		rounded := int64(math.Round(rate))
		ref.Timescale = int64(math.Round(rate * 1000))
		ref.FrameTicks = 1000
		ref.FormatName = "FFVideoFormat1080p" + strconv.FormatInt(rounded, 10)
	}

	return ref
}

// ResolveFromDocument derives a reference from an existing FCPXML
// document: the first format resource declaring a frameDuration sets
// the tick geometry, and the first effect whose name mentions a title
// or text effect overrides the effect UID. Malformed input falls back
// to the default reference rather than failing the conversion.
func ResolveFromDocument(data []byte) Reference {
	ref := Default()
	if len(data) == 0 {
		return ref
	}

	dec := xml.NewDecoder(strings.NewReader(string(data)))
	dec.Strict = false

	haveFormat := false
	haveEffect := false
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch start.Name.Local {
		case "format":
			if haveFormat {
				continue
			}
			dur := attrValue(start.Attr, "frameDuration")
			num, den, ok := splitFrameDuration(dur)
			if !ok {
				continue
			}
			haveFormat = true
			ref.FrameTicks = num
			ref.Timescale = den
			if name := attrValue(start.Attr, "name"); name != "" {
				ref.FormatName = name
			}
		case "effect":
			if haveEffect {
				continue
			}
			name := strings.ToLower(attrValue(start.Attr, "name"))
			if !strings.Contains(name, "title") &&
				!strings.Contains(name, "text") {
				continue
			}
			if uid := attrValue(start.Attr, "uid"); uid != "" {
				haveEffect = true
				ref.EffectUID = uid
			}
		}
	}

	return ref
}

// splitFrameDuration parses an FCPXML frameDuration literal of the
// form "N/Ds". Both components are floor-clamped to 1.
func splitFrameDuration(s string) (num, den int64, ok bool) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "s")
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}

	n, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return 0, 0, false
	}
	d, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return 0, 0, false
	}

	if n < 1 {
		n = 1
	}
	if d < 1 {
		d = 1
	}
	return n, d, true
}

func attrValue(attr []xml.Attr, local string) string {
	for _, a := range attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}
