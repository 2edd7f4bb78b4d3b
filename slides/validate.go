package slides

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
)

// ValidationError reports a slide or block that does not conform to the
// canonical schema. Path names the offending field.
type ValidationError struct {
	Path    string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid slide data at %s: %s", e.Path, e.Message)
}

func invalid(path, format string, args ...interface{}) error {
	return &ValidationError{Path: path, Message: fmt.Sprintf(format, args...)}
}

// ParseSlide decodes an untyped slide record and validates it against
// the canonical schema. Both canonical and legacy shapes decode; only
// canonical constraints are enforced (legacy fields are checked by the
// normalizer, not here).
func ParseSlide(raw json.RawMessage) (*Slide, error) {
	var s Slide
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, invalid("slide", "malformed record: %v", err)
	}
	if err := ValidateSlide(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ValidateSlide checks structural and semantic constraints: closed
// enums for layout, block kind, chart type, KPI trend and media
// position; absolute media URLs; payload shape matching the declared
// block kind; and block id uniqueness within the slide.
func ValidateSlide(s *Slide) error {
	if !s.Layout.Valid() {
		return invalid("slide.layout", "unknown layout %q", s.Layout)
	}
	seen := make(map[string]bool, len(s.Blocks))
	for i := range s.Blocks {
		b := &s.Blocks[i]
		path := fmt.Sprintf("slide.blocks[%d]", i)
		if b.ID != "" {
			if seen[b.ID] {
				return invalid(path+".id", "duplicate block id %q", b.ID)
			}
			seen[b.ID] = true
		}
		if err := validateBlock(b, path); err != nil {
			return err
		}
	}
	return nil
}

// ValidateSlides validates each slide, failing on the first offender
// with its index recorded in the error path.
func ValidateSlides(all []Slide) error {
	for i := range all {
		if err := ValidateSlide(&all[i]); err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				return invalid(fmt.Sprintf("slides[%d].%s", i, verr.Path), "%s", verr.Message)
			}
			return err
		}
	}
	return nil
}

func validateBlock(b *Block, path string) error {
	if !b.Kind.Valid() {
		return invalid(path+".type", "unknown block kind %q", b.Kind)
	}
	switch b.Kind {
	case KindTitle, KindParagraph, KindBullet, KindQuote:
		if b.Content == nil {
			return invalid(path+".content", "%s block requires text content", b.Kind)
		}
	case KindMedia:
		if b.Media == nil {
			return invalid(path+".media", "media block requires a media payload")
		}
		return validateMedia(b.Media, path+".media")
	case KindChart:
		if b.Chart == nil {
			return invalid(path+".chart", "chart block requires a chart payload")
		}
		if !b.Chart.Type.Valid() {
			return invalid(path+".chart.type", "unknown chart type %q", b.Chart.Type)
		}
	case KindTable:
		if b.Table == nil {
			return invalid(path+".table", "table block requires a table payload")
		}
	case KindKPI:
		if len(b.KPIs) == 0 {
			return invalid(path+".kpis", "kpi block requires at least one entry")
		}
		for j := range b.KPIs {
			if c := b.KPIs[j].Change; c != nil && !c.Trend.Valid() {
				return invalid(fmt.Sprintf("%s.kpis[%d].change.trend", path, j),
					"unknown trend %q", c.Trend)
			}
		}
	case KindIcon:
		// Icon blocks may carry either a glyph reference or text.
		if b.Media == nil && b.Content == nil {
			return invalid(path, "icon block requires media or content")
		}
		if b.Media != nil {
			return validateMedia(b.Media, path+".media")
		}
	}
	return nil
}

func validateMedia(m *MediaRef, path string) error {
	if m.Type != MediaImage && m.Type != MediaIcon {
		return invalid(path+".type", "unknown media type %q", m.Type)
	}
	u, err := url.Parse(m.URL)
	if err != nil || !u.IsAbs() {
		return invalid(path+".url", "media url %q is not absolute", m.URL)
	}
	if !m.Position.Valid() {
		return invalid(path+".position", "unknown media position %q", m.Position)
	}
	return nil
}
