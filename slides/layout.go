package slides

import (
	"strconv"
	"strings"

	"deckforge/theme"
)

// Frame is one positioned, z-ordered rectangle produced by the layout
// engine. Geometry is expressed as percentages of slide width/height
// (0-100) so the output is resolution independent; both the preview
// and the PPTX exporter consume the same frames.
type Frame struct {
	ID     string
	X      float64
	Y      float64
	Width  float64
	Height float64
	Block  Block
	ZIndex int
}

// Background is an optional full-bleed slide background.
type Background struct {
	Color string
	Image string
}

// LayoutResult is the engine output for one slide.
type LayoutResult struct {
	Layout     Layout
	Frames     []Frame
	Background *Background
}

// The notional canvas the generators compute on before converting to
// percentages. 16:9 with fixed margins.
const (
	canvasWidth   = 1920.0
	canvasHeight  = 1080.0
	marginX       = 120.0
	marginY       = 80.0
	contentWidth  = canvasWidth - marginX*2
	contentHeight = canvasHeight - marginY*2

	overlayZ = 10
)

func pctX(px float64) float64 { return px / canvasWidth * 100 }
func pctY(px float64) float64 { return px / canvasHeight * 100 }

// LayoutFrames maps a canonical slide to positioned frames, dispatching
// on the layout archetype. Unrecognized archetypes fall back to the
// content generator rather than failing; upstream validation constrains
// the enum, but dispatch stays permissive. The function is pure: equal
// inputs yield identical frame lists.
func LayoutFrames(s Slide, t *theme.BrandTheme) LayoutResult {
	result := LayoutResult{Layout: s.Layout}
	switch s.Layout {
	case LayoutTitle:
		result.Frames = titleLayout(s)
	case LayoutSection:
		result.Frames = sectionLayout(s)
	case LayoutTwoColumn:
		result.Frames = twoColumnLayout(s)
	case LayoutComparison:
		result.Frames = comparisonLayout(s)
	case LayoutQuote:
		result.Frames = quoteLayout(s)
	case LayoutKPI:
		result.Frames = kpiLayout(s)
	case LayoutChart:
		result.Frames = singleBlockLayout(s, KindChart)
	case LayoutTable:
		result.Frames = singleBlockLayout(s, KindTable)
	case LayoutImageLeft:
		result.Frames = imageSideLayout(s, true)
	case LayoutImageRight:
		result.Frames = imageSideLayout(s, false)
	case LayoutFullImage:
		result.Frames, result.Background = fullImageLayout(s)
	default:
		// content, timeline and anything unknown share the stacked
		// content generator. Timeline is a deliberate alias, not an
		// unfinished branch.
		result.Frames = contentLayout(s)
	}
	return result
}

// findBlock returns the first block of the given kind. Generators
// locate their roles by kind, never by position.
func findBlock(s Slide, kind BlockKind) *Block {
	for i := range s.Blocks {
		if s.Blocks[i].Kind == kind {
			return &s.Blocks[i]
		}
	}
	return nil
}

// textBlocks returns the bullet and paragraph blocks in source order.
func textBlocks(s Slide) []Block {
	var out []Block
	for _, b := range s.Blocks {
		if b.Kind == KindBullet || b.Kind == KindParagraph {
			out = append(out, b)
		}
	}
	return out
}

func titleLayout(s Slide) []Frame {
	var frames []Frame
	if title := findBlock(s, KindTitle); title != nil {
		frames = append(frames, Frame{
			ID: title.ID, X: 50, Y: 35, Width: 80, Height: 15,
			Block: *title, ZIndex: 1,
		})
	}
	if subtitle := findBlock(s, KindParagraph); subtitle != nil {
		frames = append(frames, Frame{
			ID: subtitle.ID, X: 50, Y: 55, Width: 70, Height: 10,
			Block: *subtitle, ZIndex: 1,
		})
	}
	return frames
}

// titleBandFrame is the shared 8%-tall title band at the top margin.
func titleBandFrame(title *Block) Frame {
	return Frame{
		ID: title.ID, X: pctX(marginX), Y: pctY(marginY),
		Width: pctX(contentWidth), Height: 8,
		Block: *title, ZIndex: 1,
	}
}

func contentLayout(s Slide) []Frame {
	var frames []Frame
	title := findBlock(s, KindTitle)
	if title != nil {
		frames = append(frames, titleBandFrame(title))
	}

	yOffset := marginY
	if title != nil {
		yOffset += 100
	}
	for _, b := range textBlocks(s) {
		h := float64(b.Content.LineCount()) * 40
		if remaining := contentHeight - yOffset; h > remaining {
			h = remaining
		}
		if h < 0 {
			h = 0
		}
		frames = append(frames, Frame{
			ID: b.ID, X: pctX(marginX), Y: pctY(yOffset),
			Width: pctX(contentWidth), Height: pctY(h),
			Block: b, ZIndex: 1,
		})
		yOffset += h + 20
	}
	return frames
}

func sectionLayout(s Slide) []Frame {
	title := findBlock(s, KindTitle)
	if title == nil {
		return nil
	}
	return []Frame{{
		ID: title.ID, X: 50, Y: 45, Width: 80, Height: 15,
		Block: *title, ZIndex: 1,
	}}
}

func twoColumnLayout(s Slide) []Frame {
	var frames []Frame
	title := findBlock(s, KindTitle)
	if title != nil {
		frames = append(frames, titleBandFrame(title))
	}

	columnWidth := pctX(contentWidth) * 0.45
	leftX := pctX(marginX)
	rightX := 55.0
	startPx := marginY
	if title != nil {
		startPx += 100
	}
	startY := pctY(startPx)

	for idx, b := range textBlocks(s) {
		x := rightX
		if idx%2 == 0 {
			x = leftX
		}
		frames = append(frames, Frame{
			ID: b.ID, X: x, Y: startY + float64(idx/2)*20,
			Width: columnWidth, Height: 15,
			Block: b, ZIndex: 1,
		})
	}
	return frames
}

// comparisonLayout assigns blocks to columns by id substring: ids
// containing "left" go to the left column, "right" to the right. The
// convention is brittle but matches what upstream generators emit; an
// explicit role field is a candidate replacement.
func comparisonLayout(s Slide) []Frame {
	var frames []Frame
	title := findBlock(s, KindTitle)
	if title != nil {
		frames = append(frames, Frame{
			ID: title.ID, X: 50, Y: pctY(marginY),
			Width: pctX(contentWidth), Height: 8,
			Block: *title, ZIndex: 1,
		})
	}

	var left, right []Block
	for _, b := range s.Blocks {
		switch {
		case strings.Contains(b.ID, "left"):
			left = append(left, b)
		case strings.Contains(b.ID, "right"):
			right = append(right, b)
		}
	}

	startPx := marginY
	if title != nil {
		startPx += 100
	}
	startY := pctY(startPx)

	idx := 0
	place := func(blocks []Block, x float64) {
		for _, b := range blocks {
			frames = append(frames, Frame{
				ID: b.ID, X: x, Y: startY + float64(idx)*12,
				Width: 40, Height: 10,
				Block: b, ZIndex: 1,
			})
			idx++
		}
	}
	place(left, 10)
	place(right, 50)
	return frames
}

func quoteLayout(s Slide) []Frame {
	var frames []Frame
	if quote := findBlock(s, KindQuote); quote != nil {
		frames = append(frames, Frame{
			ID: quote.ID, X: 50, Y: 40, Width: 75, Height: 20,
			Block: *quote, ZIndex: 1,
		})
	}
	if author := findBlock(s, KindParagraph); author != nil {
		frames = append(frames, Frame{
			ID: author.ID, X: 50, Y: 65, Width: 50, Height: 5,
			Block: *author, ZIndex: 1,
		})
	}
	return frames
}

// kpiLayout distributes the entries of the first KPI block evenly
// across the width, one frame per entry, each frame wrapping a
// single-entry copy of the block.
func kpiLayout(s Slide) []Frame {
	var frames []Frame
	title := findBlock(s, KindTitle)
	if title != nil {
		frames = append(frames, titleBandFrame(title))
	}

	kpi := findBlock(s, KindKPI)
	if kpi == nil || len(kpi.KPIs) == 0 {
		return frames
	}

	const cardWidth = 25.0
	count := len(kpi.KPIs)
	spacing := (100 - cardWidth*float64(count)) / float64(count+1)

	for idx, entry := range kpi.KPIs {
		single := *kpi
		single.KPIs = []KPIData{entry}
		frames = append(frames, Frame{
			ID: kpi.ID + "-kpi-" + strconv.Itoa(idx),
			X:  spacing + float64(idx)*(cardWidth+spacing),
			Y:  50, Width: cardWidth, Height: 20,
			Block: single, ZIndex: 1,
		})
	}
	return frames
}

// singleBlockLayout serves the chart and table archetypes: a title band
// plus one large frame for the payload block.
func singleBlockLayout(s Slide, kind BlockKind) []Frame {
	var frames []Frame
	if title := findBlock(s, KindTitle); title != nil {
		frames = append(frames, titleBandFrame(title))
	}
	if b := findBlock(s, kind); b != nil {
		frames = append(frames, Frame{
			ID: b.ID, X: 10, Y: 25, Width: 80, Height: 60,
			Block: *b, ZIndex: 1,
		})
	}
	return frames
}

func imageSideLayout(s Slide, imageLeft bool) []Frame {
	var frames []Frame
	title := findBlock(s, KindTitle)

	textX := pctX(marginX)
	if imageLeft {
		textX = 55
	}
	if title != nil {
		frames = append(frames, Frame{
			ID: title.ID, X: textX, Y: pctY(marginY),
			Width: 40, Height: 8,
			Block: *title, ZIndex: 1,
		})
	}

	if media := findBlock(s, KindMedia); media != nil {
		mediaX := 55.0
		if imageLeft {
			mediaX = 5
		}
		frames = append(frames, Frame{
			ID: media.ID, X: mediaX, Y: 20, Width: 45, Height: 70,
			Block: *media, ZIndex: 1,
		})
	}

	yOffset := marginY
	if title != nil {
		yOffset += 100
	}
	for _, b := range textBlocks(s) {
		frames = append(frames, Frame{
			ID: b.ID, X: textX, Y: pctY(yOffset),
			Width: 40, Height: 15,
			Block: b, ZIndex: 1,
		})
		yOffset += 80
	}
	return frames
}

// fullImageLayout promotes the media block to a full-bleed background
// and overlays the title and the first paragraph/quote block above it.
func fullImageLayout(s Slide) ([]Frame, *Background) {
	var frames []Frame

	if title := findBlock(s, KindTitle); title != nil {
		frames = append(frames, Frame{
			ID: title.ID, X: 50, Y: 35, Width: 80, Height: 15,
			Block: *title, ZIndex: overlayZ,
		})
	}

	for _, b := range s.Blocks {
		if b.Kind == KindParagraph || b.Kind == KindQuote {
			frames = append(frames, Frame{
				ID: b.ID, X: 50, Y: 55, Width: 70, Height: 15,
				Block: b, ZIndex: overlayZ,
			})
			break
		}
	}

	var bg *Background
	if media := findBlock(s, KindMedia); media != nil && media.Media != nil && media.Media.URL != "" {
		bg = &Background{Image: media.Media.URL}
	}
	return frames, bg
}
