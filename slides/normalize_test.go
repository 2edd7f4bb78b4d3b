package slides

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// sequentialNormalizer returns stable ids for assertions.
func sequentialNormalizer() *Normalizer {
	n := 0
	return &Normalizer{NewID: func() string {
		n++
		return fmt.Sprintf("slide-%d", n)
	}}
}

func TestNormalize_LegacyTitleSlide(t *testing.T) {
	norm := sequentialNormalizer()
	out := norm.Normalize(Slide{
		Title:         "FY26 Kickoff",
		Layout:        LayoutTitle,
		LegacyContent: []string{"Strategy", "Execution"},
	})

	if out.ID != "slide-1" {
		t.Errorf("id = %q, want backfilled slide-1", out.ID)
	}
	if len(out.Blocks) != 2 {
		t.Fatalf("block count = %d, want 2", len(out.Blocks))
	}

	title := out.Blocks[0]
	if title.Kind != KindTitle || title.Content.First() != "FY26 Kickoff" {
		t.Errorf("title block = %+v", title)
	}
	if title.Style.FontSize != 60 || title.Style.Alignment != AlignCenter || !title.Style.Bold() {
		t.Errorf("title style = %+v, want 60pt centered bold", title.Style)
	}

	subtitle := out.Blocks[1]
	if subtitle.Kind != KindParagraph {
		t.Errorf("subtitle kind = %q, want paragraph", subtitle.Kind)
	}
	if got := subtitle.Content.First(); got != "Strategy • Execution" {
		t.Errorf("subtitle text = %q", got)
	}
	if subtitle.Style.FontSize != 24 || subtitle.Style.Alignment != AlignCenter {
		t.Errorf("subtitle style = %+v, want 24pt centered", subtitle.Style)
	}
}

func TestNormalize_LegacyContentSlide(t *testing.T) {
	norm := sequentialNormalizer()
	out := norm.Normalize(Slide{
		Title:         "Milestones",
		LegacyContent: []string{"Kickoff", "Beta", "Launch"},
	})

	if out.Layout != LayoutContent {
		t.Errorf("layout = %q, want content default", out.Layout)
	}
	if len(out.Blocks) != 2 {
		t.Fatalf("block count = %d, want 2", len(out.Blocks))
	}

	title := out.Blocks[0]
	if title.Style.FontSize != 36 || title.Style.Alignment != AlignLeft {
		t.Errorf("heading style = %+v, want 36pt left", title.Style)
	}

	bullets := out.Blocks[1]
	if bullets.Kind != KindBullet || !bullets.Content.IsList() {
		t.Fatalf("bullet block = %+v", bullets)
	}
	if got := bullets.Content.Items(); !reflect.DeepEqual(got, []string{"Kickoff", "Beta", "Launch"}) {
		t.Errorf("bullet items = %v", got)
	}
	if bullets.Style.FontSize != 18 {
		t.Errorf("bullet size = %d, want 18", bullets.Style.FontSize)
	}
}

func TestNormalize_LegacyImagePositions(t *testing.T) {
	tests := []struct {
		layout   Layout
		position MediaPosition
	}{
		{LayoutImageLeft, PositionLeft},
		{LayoutImageRight, PositionRight},
		{LayoutFullImage, PositionBackground},
		{LayoutContent, PositionCenter},
	}
	norm := sequentialNormalizer()
	for _, tt := range tests {
		out := norm.Normalize(Slide{
			Layout:   tt.layout,
			ImageURL: "https://example.com/hero.png",
		})
		media := out.Blocks[len(out.Blocks)-1]
		if media.Kind != KindMedia {
			t.Fatalf("%s: last block = %+v, want media", tt.layout, media)
		}
		if media.Media.Position != tt.position {
			t.Errorf("%s: position = %q, want %q", tt.layout, media.Media.Position, tt.position)
		}
		if media.Media.URL != "https://example.com/hero.png" {
			t.Errorf("%s: url = %q", tt.layout, media.Media.URL)
		}
	}
}

func TestNormalize_CanonicalPassThrough(t *testing.T) {
	norm := sequentialNormalizer()
	in := Slide{
		ID:     "s1",
		Title:  "kept for display",
		Layout: LayoutQuote,
		Blocks: []Block{
			{ID: "q1", Kind: KindQuote, Content: Text("Less is more.")},
		},
		LegacyContent: []string{"ignored when blocks exist"},
	}
	out := norm.Normalize(in)
	if !reflect.DeepEqual(in, out) {
		t.Errorf("canonical slide changed: %+v -> %+v", in, out)
	}
}

func TestNormalize_EmptyBlocksStayCanonical(t *testing.T) {
	norm := sequentialNormalizer()
	in := Slide{ID: "s1", Layout: LayoutContent, Blocks: []Block{}}
	out := norm.Normalize(in)
	if out.Blocks == nil || len(out.Blocks) != 0 {
		t.Errorf("empty block list should pass through, got %+v", out.Blocks)
	}
}

func TestNormalizeSlides_PreservesOrderAndLength(t *testing.T) {
	norm := sequentialNormalizer()
	deck := []Slide{
		{Title: "A"},
		{Title: "B", LegacyContent: []string{"x"}},
	}
	out := norm.NormalizeSlides(deck)
	if len(out) != 2 {
		t.Fatalf("deck length = %d", len(out))
	}
	if out[0].Blocks[0].Content.First() != "A" || out[1].Blocks[0].Content.First() != "B" {
		t.Error("slide order not preserved")
	}
}

func genLegacySlide() gopter.Gen {
	return gopter.CombineGens(
		gen.AlphaString(),
		gen.OneConstOf(
			LayoutTitle, LayoutContent, LayoutSection, LayoutTwoColumn,
			LayoutComparison, LayoutQuote, LayoutKPI, LayoutChart,
			LayoutTable, LayoutTimeline, LayoutImageLeft, LayoutImageRight,
			LayoutFullImage, Layout(""),
		),
		gen.SliceOfN(3, gen.AlphaString()),
		gen.Bool(),
		gen.Bool(),
	).Map(func(vals []interface{}) Slide {
		s := Slide{
			Title:  vals[0].(string),
			Layout: vals[1].(Layout),
		}
		if vals[3].(bool) {
			s.LegacyContent = vals[2].([]string)
		}
		if vals[4].(bool) {
			s.ImageURL = "https://example.com/img.png"
		}
		return s
	})
}

func TestNormalize_IdempotenceProperty(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("normalizing a normalized slide is a no-op",
		prop.ForAll(
			func(s Slide) bool {
				norm := NewNormalizer()
				once := norm.Normalize(s)
				twice := norm.Normalize(once)
				return reflect.DeepEqual(once, twice)
			},
			genLegacySlide(),
		))

	properties.Property("normalized slides always carry an id and a layout",
		prop.ForAll(
			func(s Slide) bool {
				out := NewNormalizer().Normalize(s)
				return out.ID != "" && out.Layout != ""
			},
			genLegacySlide(),
		))

	properties.Property("blocks are non-nil whenever legacy fields carried content",
		prop.ForAll(
			func(s Slide) bool {
				out := NewNormalizer().Normalize(s)
				if s.Title == "" && len(s.LegacyContent) == 0 && s.ImageURL == "" {
					return true
				}
				return len(out.Blocks) > 0
			},
			genLegacySlide(),
		))

	properties.TestingRun(t)
}
