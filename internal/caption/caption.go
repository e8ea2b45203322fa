package caption

import (
	"errors"
)

// represents a single caption interval
type Cue struct {
	Start float64 // seconds
	End   float64 // seconds, strictly greater than Start
	Text  string  // may span multiple lines
}

// represents a parsed caption source
type Document struct {
	Cues   []Cue
	Format Format

	// FrameRate is the rate declared by the source itself, or 0 when
	// the format carries no rate metadata (SRT never does).
	FrameRate float64
}

// represents supported caption source formats
type Format string

const (
	FormatUnknown Format = ""
	FormatSRT     Format = "srt"
	FormatITT     Format = "itt"
)

// ErrUnrecognizedFormat is returned when neither grammar yields any
// cues from the input.
var ErrUnrecognizedFormat = errors.New("unrecognized caption format")
