package pipeline

import (
	"fmt"

	"github.com/dvaidya/titleforge/internal/caption"
	"github.com/dvaidya/titleforge/internal/timeline"
)

// Session is one immutable conversion: the parsed cues plus the
// resolved timeline reference. Nothing persists between sessions.
type Session struct {
	Cues      []caption.Cue
	Format    caption.Format
	Reference timeline.Reference
}

// LoadOptions adjusts how a session is resolved.
type LoadOptions struct {
	// FormatHint forces the caption grammar instead of sniffing.
	FormatHint caption.Format

	// FrameRate forces resolver input when no reference document is
	// supplied; 0 means "use the source's own rate metadata, if any".
	FrameRate float64
}

// Load parses a caption source and resolves the timeline reference.
// Reference resolution precedence: an explicit reference document,
// then a caller-forced frame rate, then the rate declared by the
// source itself, then built-in defaults. The two resolution paths are
// never mixed within one session.
func Load(source, reference []byte, opts LoadOptions) (Session, error) {
	if source == nil {
		return Session{}, fmt.Errorf("caption source is nil")
	}

	doc, err := caption.Parse(source, opts.FormatHint)
	if err != nil {
		return Session{}, fmt.Errorf("failed to parse caption source: %w", err)
	}

	var ref timeline.Reference
	switch {
	case len(reference) > 0:
		ref = timeline.ResolveFromDocument(reference)
	case opts.FrameRate > 0:
		ref = timeline.ResolveFromFrameRate(opts.FrameRate)
	case doc.FrameRate > 0:
		ref = timeline.ResolveFromFrameRate(doc.FrameRate)
	default:
		ref = timeline.Default()
	}

	return Session{
		Cues:      doc.Cues,
		Format:    doc.Format,
		Reference: ref,
	}, nil
}

// Convert renders the session's cues into an FCPXML document named
// after the given project name.
func (s Session) Convert(name string, style timeline.Style) ([]byte, error) {
	if style == (timeline.Style{}) {
		style = timeline.DefaultStyle()
	}
	if name == "" {
		name = "Captions"
	}
	return timeline.BuildDocument(s.Cues, s.Reference, name, style)
}
