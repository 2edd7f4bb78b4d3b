package slides

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func validSlide() Slide {
	return Slide{
		ID:     "slide-1",
		Layout: LayoutContent,
		Blocks: []Block{
			{ID: "title-1", Kind: KindTitle, Content: Text("Quarterly Review")},
			{ID: "bullets-1", Kind: KindBullet, Content: List("Revenue", "Margin")},
		},
	}
}

func TestValidateSlide_Valid(t *testing.T) {
	s := validSlide()
	if err := ValidateSlide(&s); err != nil {
		t.Fatalf("valid slide rejected: %v", err)
	}
}

func TestValidateSlide_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Slide)
		path   string
	}{
		{
			name:   "unknown layout",
			mutate: func(s *Slide) { s.Layout = "grid" },
			path:   "slide.layout",
		},
		{
			name:   "unknown block kind",
			mutate: func(s *Slide) { s.Blocks[0].Kind = "video" },
			path:   ".type",
		},
		{
			name: "duplicate block ids",
			mutate: func(s *Slide) {
				s.Blocks[1].ID = s.Blocks[0].ID
			},
			path: ".id",
		},
		{
			name: "title without content",
			mutate: func(s *Slide) {
				s.Blocks[0].Content = nil
			},
			path: ".content",
		},
		{
			name: "chart with unknown type",
			mutate: func(s *Slide) {
				s.Blocks = append(s.Blocks, Block{
					ID: "chart-1", Kind: KindChart,
					Chart: &ChartData{Type: "scatter"},
				})
			},
			path: ".chart.type",
		},
		{
			name: "chart without payload",
			mutate: func(s *Slide) {
				s.Blocks = append(s.Blocks, Block{ID: "chart-1", Kind: KindChart})
			},
			path: ".chart",
		},
		{
			name: "table without payload",
			mutate: func(s *Slide) {
				s.Blocks = append(s.Blocks, Block{ID: "table-1", Kind: KindTable})
			},
			path: ".table",
		},
		{
			name: "kpi without entries",
			mutate: func(s *Slide) {
				s.Blocks = append(s.Blocks, Block{ID: "kpi-1", Kind: KindKPI})
			},
			path: ".kpis",
		},
		{
			name: "kpi with unknown trend",
			mutate: func(s *Slide) {
				s.Blocks = append(s.Blocks, Block{
					ID: "kpi-1", Kind: KindKPI,
					KPIs: []KPIData{{
						Value: Str("100"), Label: "Users",
						Change: &KPIChange{Value: 5, Trend: "sideways"},
					}},
				})
			},
			path: ".change.trend",
		},
		{
			name: "relative media url",
			mutate: func(s *Slide) {
				s.Blocks = append(s.Blocks, Block{
					ID: "media-1", Kind: KindMedia,
					Media: &MediaRef{Type: MediaImage, URL: "images/hero.png"},
				})
			},
			path: ".media.url",
		},
		{
			name: "unknown media position",
			mutate: func(s *Slide) {
				s.Blocks = append(s.Blocks, Block{
					ID: "media-1", Kind: KindMedia,
					Media: &MediaRef{Type: MediaImage, URL: "https://example.com/a.png", Position: "top"},
				})
			},
			path: ".media.position",
		},
		{
			name: "unknown media type",
			mutate: func(s *Slide) {
				s.Blocks = append(s.Blocks, Block{
					ID: "media-1", Kind: KindMedia,
					Media: &MediaRef{Type: "gif", URL: "https://example.com/a.gif"},
				})
			},
			path: ".media.type",
		},
		{
			name: "icon without payload",
			mutate: func(s *Slide) {
				s.Blocks = append(s.Blocks, Block{ID: "icon-1", Kind: KindIcon})
			},
			path: "blocks[2]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSlide()
			tt.mutate(&s)
			err := ValidateSlide(&s)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if !strings.Contains(verr.Path, tt.path) {
				t.Errorf("error path %q should contain %q", verr.Path, tt.path)
			}
		})
	}
}

func TestValidateSlides_FailFastWithIndex(t *testing.T) {
	bad := validSlide()
	bad.Layout = "mosaic"
	err := ValidateSlides([]Slide{validSlide(), bad, {Layout: "also-bad"}})
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if !strings.HasPrefix(verr.Path, "slides[1].") {
		t.Errorf("error path %q should carry the first failing index", verr.Path)
	}
}

func TestParseSlide_Canonical(t *testing.T) {
	raw := json.RawMessage(`{
		"id": "s1",
		"layout": "kpi",
		"blocks": [
			{"id": "k1", "type": "kpi", "kpis": [
				{"value": "98%", "label": "Retention", "change": {"value": 2.5, "trend": "up"}},
				{"value": 120, "label": "Deals"}
			]}
		]
	}`)
	s, err := ParseSlide(raw)
	if err != nil {
		t.Fatalf("ParseSlide failed: %v", err)
	}
	kpis := s.Blocks[0].KPIs
	if kpis[0].Value.String() != "98%" {
		t.Errorf("string scalar = %q, want %q", kpis[0].Value.String(), "98%")
	}
	if kpis[1].Value.String() != "120" {
		t.Errorf("numeric scalar = %q, want %q", kpis[1].Value.String(), "120")
	}
}

func TestParseSlide_LegacyShapeDecodes(t *testing.T) {
	raw := json.RawMessage(`{
		"id": "s1",
		"title": "Roadmap",
		"layout": "content",
		"content": ["Phase 1", "Phase 2"],
		"imageUrl": "https://example.com/road.png"
	}`)
	s, err := ParseSlide(raw)
	if err != nil {
		t.Fatalf("ParseSlide failed on legacy shape: %v", err)
	}
	if s.Blocks != nil {
		t.Error("legacy record should decode with nil blocks until normalized")
	}
	if len(s.LegacyContent) != 2 {
		t.Errorf("legacy content length = %d, want 2", len(s.LegacyContent))
	}
}

func TestParseSlide_Malformed(t *testing.T) {
	if _, err := ParseSlide(json.RawMessage(`{"layout": 7}`)); err == nil {
		t.Fatal("malformed record should fail to parse")
	}
}

func TestContent_RoundTripShapes(t *testing.T) {
	var b Block
	if err := json.Unmarshal([]byte(`{"id":"x","type":"bullet","content":["a","b"]}`), &b); err != nil {
		t.Fatal(err)
	}
	if !b.Content.IsList() || b.Content.LineCount() != 2 {
		t.Errorf("list content not preserved: %+v", b.Content)
	}
	out, err := json.Marshal(b.Content)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `["a","b"]` {
		t.Errorf("list content re-marshaled as %s", out)
	}

	if err := json.Unmarshal([]byte(`{"id":"x","type":"title","content":"Hello"}`), &b); err != nil {
		t.Fatal(err)
	}
	if b.Content.IsList() || b.Content.First() != "Hello" {
		t.Errorf("string content not preserved: %+v", b.Content)
	}
}
