package caption

import (
	"encoding/xml"
	"strings"

	"github.com/dvaidya/titleforge/internal/timecode"
)

// looksLikeITT reports whether the content resembles an iTT/TTML
// document: both a tt root opening token and a paragraph opening token
// are present.
func looksLikeITT(content string) bool {
	return strings.Contains(content, "<tt") &&
		strings.Contains(content, "<p")
}

// ittScanner is the paragraph state machine fed by XML events. It has
// two states, outside and inside a paragraph; the accumulator fields
// are only meaningful in the latter.
type ittScanner struct {
	frameRate float64
	rootSeen  bool

	inParagraph bool
	begin       string
	end         string
	text        strings.Builder

	cues []Cue
}

func (s *ittScanner) startElement(name string, attr []xml.Attr) {
	if !s.rootSeen {
		// The frame rate is read once, at the root; a rate declared
		// deeper in the document is not supported.
		s.rootSeen = true
		s.frameRate = rootFrameRate(attr)
		return
	}

	switch name {
	case "p":
		s.inParagraph = true
		s.begin = attrValue(attr, "begin")
		s.end = attrValue(attr, "end")
		s.text.Reset()
	case "br":
		if s.inParagraph {
			s.text.WriteString("\n")
		}
	}
}

func (s *ittScanner) endElement(name string) {
	if name != "p" || !s.inParagraph {
		return
	}
	s.inParagraph = false

	text := strings.TrimSpace(s.text.String())
	s.text.Reset()

	start, ok := timecode.ParseTimecode(s.begin, s.frameRate)
	if !ok {
		return
	}
	end, ok := timecode.ParseTimecode(s.end, s.frameRate)
	if !ok {
		return
	}
	if end <= start {
		return
	}

	s.cues = append(s.cues, Cue{Start: start, End: end, Text: text})
}

func (s *ittScanner) charData(data string) {
	if s.inParagraph {
		s.text.WriteString(data)
	}
}

// rootFrameRate reads ttp:frameRate, scaled by an optional
// ttp:frameRateMultiplier of the form "num den".
func rootFrameRate(attr []xml.Attr) float64 {
	rate := attrFloat(attr, "frameRate")
	if rate == 0 {
		return 0
	}

	if mult := attrValue(attr, "frameRateMultiplier"); mult != "" {
		parts := strings.Fields(mult)
		if len(parts) == 2 {
			num := parseFloat(parts[0])
			den := parseFloat(parts[1])
			if num > 0 && den > 0 {
				rate = rate * num / den
			}
		}
	}

	return rate
}

func attrValue(attr []xml.Attr, local string) string {
	for _, a := range attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

func attrFloat(attr []xml.Attr, local string) float64 {
	return parseFloat(attrValue(attr, local))
}

// parseITT runs the scanner over the document's XML event stream.
// Malformed markup past the last well-formed token is tolerated: the
// cues accumulated so far are kept.
func parseITT(content string) []Cue {
	dec := xml.NewDecoder(strings.NewReader(content))
	dec.Strict = false

	var s ittScanner
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			s.startElement(t.Name.Local, t.Attr)
		case xml.EndElement:
			s.endElement(t.Name.Local)
		case xml.CharData:
			s.charData(string(t))
		}
	}

	return s.cues
}

// ittFrameRate extracts the root-declared frame rate without a full
// cue parse, for reference resolution.
func ittFrameRate(content string) float64 {
	dec := xml.NewDecoder(strings.NewReader(content))
	dec.Strict = false

	for {
		tok, err := dec.Token()
		if err != nil {
			return 0
		}
		if t, ok := tok.(xml.StartElement); ok {
			return rootFrameRate(t.Attr)
		}
	}
}
