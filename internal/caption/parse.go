package caption

import (
	"strconv"
	"strings"
)

// Parse reads a caption source and returns its cues in file order.
// An explicit format hint takes priority; otherwise the content is
// sniffed, SRT first, then iTT. If neither grammar yields any cues the
// result is ErrUnrecognizedFormat.
func Parse(data []byte, hint Format) (*Document, error) {
	content := strings.TrimPrefix(string(data), "\ufeff")

	switch hint {
	case FormatSRT:
		return &Document{Cues: parseSRT(content), Format: FormatSRT}, nil
	case FormatITT:
		return ittDocument(content), nil
	}

	if looksLikeSRT(content) {
		if cues := parseSRT(content); len(cues) > 0 {
			return &Document{Cues: cues, Format: FormatSRT}, nil
		}
	}
	if looksLikeITT(content) {
		if doc := ittDocument(content); len(doc.Cues) > 0 {
			return doc, nil
		}
	}

	// Ambiguous content: try both grammars before giving up.
	if cues := parseSRT(content); len(cues) > 0 {
		return &Document{Cues: cues, Format: FormatSRT}, nil
	}
	if doc := ittDocument(content); len(doc.Cues) > 0 {
		return doc, nil
	}

	return nil, ErrUnrecognizedFormat
}

func ittDocument(content string) *Document {
	return &Document{
		Cues:      parseITT(content),
		Format:    FormatITT,
		FrameRate: ittFrameRate(content),
	}
}

// FormatFromExtension maps a file extension (with or without the dot)
// to a format hint, or FormatUnknown when the extension says nothing.
func FormatFromExtension(ext string) Format {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "srt":
		return FormatSRT
	case "itt", "ttml", "xml", "dfxp":
		return FormatITT
	default:
		return FormatUnknown
	}
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}
