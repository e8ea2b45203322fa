package timecode

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// SecondsToTicks converts a time in seconds to timeline ticks at the
// given timescale. Ties round half away from zero.
func SecondsToTicks(seconds float64, timescale int64) int64 {
	return int64(math.Round(seconds * float64(timescale)))
}

// SnapToFrame moves a tick count to the nearest frame boundary. It is
// idempotent: snapping a snapped value is a no-op.
func SnapToFrame(ticks, frameTicks int64) int64 {
	if frameTicks < 1 {
		return ticks
	}
	frames := int64(math.Round(float64(ticks) / float64(frameTicks)))
	return frames * frameTicks
}

// Rational formats a tick count as an FCPXML rational-seconds literal,
// e.g. 75075/30000s. The denominator is emitted as-is, never reduced.
// Zero ticks renders as the bare "0s" that editors themselves emit.
func Rational(ticks, timescale int64) string {
	if ticks == 0 {
		return "0s"
	}
	return fmt.Sprintf("%d/%ds", ticks, timescale)
}

// ParseBlockTimecode parses an SRT-style timestamp, HH:MM:SS,mmm or
// HH:MM:SS.mmm, into seconds. Individual non-numeric components read
// as zero rather than failing the whole timestamp; only a wrong field
// count is an error.
func ParseBlockTimecode(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q: expected HH:MM:SS,mmm", s)
	}

	h, _ := strconv.ParseFloat(parts[0], 64)
	m, _ := strconv.ParseFloat(parts[1], 64)
	sec, _ := strconv.ParseFloat(parts[2], 64)

	return h*3600 + m*60 + sec, nil
}

// ParseTimecode parses the generic timecode grammar used by iTT
// begin/end attributes. Accepted shapes, after stripping an optional
// trailing unit letter and normalizing commas to dots:
//
//	H:M:S        three fields, fractional seconds allowed
//	H:M:S:F      SMPTE, F is a frame count at the given frame rate
//
// Any other field count fails. The frame rate is clamped to at least
// 1 before dividing.
func ParseTimecode(s string, frameRate float64) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if last := s[len(s)-1]; last >= 'a' && last <= 'z' || last >= 'A' && last <= 'Z' {
		s = s[:len(s)-1]
	}
	s = strings.ReplaceAll(s, ",", ".")

	parts := strings.Split(s, ":")
	switch len(parts) {
	case 3:
		h, err1 := strconv.ParseFloat(parts[0], 64)
		m, err2 := strconv.ParseFloat(parts[1], 64)
		sec, err3 := strconv.ParseFloat(parts[2], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			return 0, false
		}
		return h*3600 + m*60 + sec, true
	case 4:
		h, err1 := strconv.ParseFloat(parts[0], 64)
		m, err2 := strconv.ParseFloat(parts[1], 64)
		sec, err3 := strconv.ParseFloat(parts[2], 64)
		f, err4 := strconv.ParseFloat(parts[3], 64)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			return 0, false
		}
		if frameRate < 1 {
			frameRate = 1
		}
		return h*3600 + m*60 + sec + f/frameRate, true
	default:
		return 0, false
	}
}
