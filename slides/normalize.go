package slides

import (
	"strings"

	"github.com/google/uuid"
)

// Font sizes assigned to blocks synthesized from legacy records.
const (
	legacyTitleSize    = 60
	legacyHeadingSize  = 36
	legacySubtitleSize = 24
	legacyBulletSize   = 18
)

// Normalizer upgrades legacy flat slide records (title + string list +
// optional image URL) into the canonical block form. The id generator
// is injectable so tests can produce stable ids; the default draws
// random UUIDs.
type Normalizer struct {
	NewID func() string
}

// NewNormalizer returns a Normalizer with UUID-based id generation.
func NewNormalizer() *Normalizer {
	return &Normalizer{NewID: func() string { return "slide-" + uuid.New().String() }}
}

// Normalize is total over both canonical and legacy shapes and
// idempotent. A record with a non-nil block list is already canonical
// and passes through untouched apart from id backfill; anything else
// has its blocks synthesized from the legacy fields, which are kept on
// the output for consumers that still read them.
func (n *Normalizer) Normalize(s Slide) Slide {
	if s.ID == "" {
		s.ID = n.NewID()
	}
	if s.Layout == "" {
		s.Layout = LayoutContent
	}
	if s.Blocks != nil {
		return s
	}

	blocks := make([]Block, 0, 3)

	if s.Title != "" {
		size, align := legacyHeadingSize, AlignLeft
		if s.Layout == LayoutTitle {
			size, align = legacyTitleSize, AlignCenter
		}
		blocks = append(blocks, Block{
			ID:      "title-1",
			Kind:    KindTitle,
			Content: Text(s.Title),
			Style:   &Style{FontSize: size, FontWeight: "bold", Alignment: align},
		})
	}

	if len(s.LegacyContent) > 0 {
		if s.Layout == LayoutTitle {
			blocks = append(blocks, Block{
				ID:      "subtitle-1",
				Kind:    KindParagraph,
				Content: Text(strings.Join(s.LegacyContent, " • ")),
				Style:   &Style{FontSize: legacySubtitleSize, Alignment: AlignCenter},
			})
		} else {
			blocks = append(blocks, Block{
				ID:      "bullets-1",
				Kind:    KindBullet,
				Content: List(s.LegacyContent...),
				Style:   &Style{FontSize: legacyBulletSize},
			})
		}
	}

	if s.ImageURL != "" {
		position := PositionCenter
		switch s.Layout {
		case LayoutImageLeft:
			position = PositionLeft
		case LayoutImageRight:
			position = PositionRight
		case LayoutFullImage:
			position = PositionBackground
		}
		blocks = append(blocks, Block{
			ID:   "media-1",
			Kind: KindMedia,
			Media: &MediaRef{
				Type:     MediaImage,
				URL:      s.ImageURL,
				Position: position,
			},
		})
	}

	s.Blocks = blocks
	return s
}

// NormalizeSlides maps Normalize over a deck.
func (n *Normalizer) NormalizeSlides(all []Slide) []Slide {
	out := make([]Slide, len(all))
	for i, s := range all {
		out[i] = n.Normalize(s)
	}
	return out
}
