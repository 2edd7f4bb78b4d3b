package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	ppt "github.com/VantageDataChat/GoPPT"

	"deckforge/assets"
	"deckforge/logger"
	"deckforge/slides"
	"deckforge/theme"
)

// PPTService turns a deck of slides into a PowerPoint file using GoPPT
// (pure Go, zero dependencies). Every slide is normalized, laid out and
// rendered frame by frame; frame failures degrade individual blocks
// and never abort the export.
type PPTService struct {
	fetcher    *assets.Fetcher
	normalizer *slides.Normalizer
	logger     *logger.Logger
}

// NewPPTService creates a new PPT export service.
func NewPPTService(fetcher *assets.Fetcher, log *logger.Logger) *PPTService {
	if fetcher == nil {
		fetcher = assets.NewFetcher()
	}
	return &PPTService{
		fetcher:    fetcher,
		normalizer: slides.NewNormalizer(),
		logger:     log,
	}
}

// Layout geometry arrives in percentages; the target canvas is the
// PowerPoint 16:9 page, 10 by 5.625 inches.
const (
	emuPerInch = 914400

	pptSlideWidth  = int64(10.0 * emuPerInch)
	pptSlideHeight = int64(5.625 * emuPerInch)

	pptCanvasWidthIn  = 10.0
	pptCanvasHeightIn = 5.625

	// font sizes (pt)
	pptFontTitle   = 36
	pptFontBody    = 18
	pptFontQuote   = 28
	pptFontKPI     = 32
	pptFontLabel   = 14
	pptFontCaption = 12
)

// helper: create a solid fill
func solidFill(argb string) *ppt.Fill {
	return ppt.NewFill().SetSolid(ppt.NewColor(argb))
}

// helper: set paragraph alignment from a style alignment name
func alignPara(p *ppt.Paragraph, alignment string) {
	switch alignment {
	case "center":
		p.SetAlignment(ppt.NewAlignment().SetHorizontal(ppt.HorizontalCenter))
	case "right":
		p.SetAlignment(ppt.NewAlignment().SetHorizontal(ppt.HorizontalRight))
	}
}

// argb prefixes an opaque alpha channel onto a hex color.
func argb(hex string) string {
	return "FF" + theme.PPTColor(hex)
}

// box is a frame's geometry resolved into EMU.
type box struct {
	x, y, w, h int64
}

func frameBox(f slides.Frame) box {
	return box{
		x: int64(f.X / 100 * pptCanvasWidthIn * emuPerInch),
		y: int64(f.Y / 100 * pptCanvasHeightIn * emuPerInch),
		w: int64(f.Width / 100 * pptCanvasWidthIn * emuPerInch),
		h: int64(f.Height / 100 * pptCanvasHeightIn * emuPerInch),
	}
}

func (b box) apply(s *ppt.RichTextShape) *ppt.RichTextShape {
	s.SetOffsetX(b.x).SetOffsetY(b.y)
	s.SetWidth(b.w).SetHeight(b.h)
	return s
}

// ExportDeck renders the slides into a PPTX artifact. Brand may be
// nil, in which case the default theme applies. The returned Artifact
// carries per-frame render results alongside the file bytes.
func (s *PPTService) ExportDeck(ctx context.Context, deck []slides.Slide, title string, brand *theme.BrandTheme) (*Artifact, error) {
	if brand == nil {
		brand = theme.Default()
	}

	p := ppt.New()
	p.GetDocumentProperties().Title = title
	p.GetDocumentProperties().Creator = "DeckForge"

	art := &Artifact{}

	for i, raw := range deck {
		norm := s.normalizer.Normalize(raw)
		result := slides.LayoutFrames(norm, brand)

		var slide *ppt.Slide
		if i == 0 {
			slide = p.GetActiveSlide()
		} else {
			slide = p.CreateSlide()
		}

		s.applyBackground(ctx, slide, result.Background, norm.ID, art)

		for _, frame := range result.Frames {
			s.renderFrame(ctx, slide, frame, norm.ID, brand, art)
		}

		if brand.Logo != nil {
			s.stampLogo(ctx, slide, brand.Logo.URL, norm.ID, art)
		}

		if norm.Notes != "" {
			slide.SetNotes(norm.Notes)
		}
	}

	w, err := ppt.NewWriter(p, ppt.WriterPowerPoint2007)
	if err != nil {
		return nil, fmt.Errorf("failed to create PPT writer: %w", err)
	}
	var buf bytes.Buffer
	if err := w.(*ppt.PPTXWriter).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to save PPT: %w", err)
	}
	art.Data = buf.Bytes()
	return art, nil
}

// ExportDeckToFile exports and writes the artifact to path.
func (s *PPTService) ExportDeckToFile(ctx context.Context, deck []slides.Slide, title, path string, brand *theme.BrandTheme) (*Artifact, error) {
	art, err := s.ExportDeck(ctx, deck, title, brand)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, art.Data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write PPT file: %w", err)
	}
	return art, nil
}

// applyBackground sets the slide background: a full-bleed image when
// the layout provides one, else a flat color, else white. A failed
// image fetch degrades to the white background.
func (s *PPTService) applyBackground(ctx context.Context, slide *ppt.Slide, bg *slides.Background, slideID string, art *Artifact) {
	if bg == nil {
		slide.SetBackground(solidFill("FFFFFFFF"))
		return
	}
	if bg.Image != "" {
		img, err := s.fetcher.Fetch(ctx, bg.Image)
		if err != nil {
			s.logf("slide %s: background image: %v", slideID, err)
			slide.SetBackground(solidFill("FFFFFFFF"))
			art.Results = append(art.Results, RenderResult{
				SlideID: slideID, FrameID: "background", Kind: slides.KindMedia,
				Status: RenderSkipped, Reason: err.Error(),
			})
			return
		}
		// GoPPT backgrounds are fills only, so the image goes in as a
		// full-bleed picture behind everything added afterwards.
		shape := slide.CreateDrawingShape()
		shape.SetImageData(img.Data, img.MIME)
		shape.SetOffsetX(0).SetOffsetY(0)
		shape.SetWidth(pptSlideWidth).SetHeight(pptSlideHeight)
		return
	}
	if bg.Color != "" {
		slide.SetBackground(solidFill(argb(bg.Color)))
		return
	}
	slide.SetBackground(solidFill("FFFFFFFF"))
}

// renderFrame renders one frame by block kind, recording the outcome.
func (s *PPTService) renderFrame(ctx context.Context, slide *ppt.Slide, frame slides.Frame, slideID string, brand *theme.BrandTheme, art *Artifact) {
	res := RenderResult{SlideID: slideID, FrameID: frame.ID, Kind: frame.Block.Kind, Status: RenderOK}

	switch frame.Block.Kind {
	case slides.KindTitle:
		s.renderText(slide, frame, brand, theme.TextDefaults{FontSize: pptFontTitle, Bold: true}, frame.Block.Content.First())
	case slides.KindParagraph:
		s.renderText(slide, frame, brand, theme.TextDefaults{FontSize: pptFontBody}, frame.Block.Content.Joined(" "))
	case slides.KindQuote:
		quoted := "\"" + frame.Block.Content.Joined(" ") + "\""
		s.renderText(slide, frame, brand, theme.TextDefaults{FontSize: pptFontQuote, Bold: true}, quoted)
	case slides.KindBullet:
		s.renderBullets(slide, frame, brand)
	case slides.KindMedia:
		res = s.renderMedia(ctx, slide, frame, res)
	case slides.KindChart:
		res = s.renderChart(slide, frame, brand, res)
	case slides.KindTable:
		res = s.renderTable(slide, frame, brand, res)
	case slides.KindKPI:
		s.renderKPIs(slide, frame, brand)
	case slides.KindIcon:
		// Icons have no PPT representation yet.
		res.Status = RenderSkipped
		res.Reason = "icon blocks are not rendered in PPT output"
	default:
		res.Status = RenderSkipped
		res.Reason = "unknown block kind"
	}

	if res.Status != RenderOK {
		s.logf("slide %s frame %s: %s (%s)", slideID, frame.ID, res.Status, res.Reason)
	}
	art.Results = append(art.Results, res)
}

func blockStyle(b slides.Block, brand *theme.BrandTheme, d theme.TextDefaults) theme.TextStyle {
	var size int
	var color, alignment, weight string
	if b.Style != nil {
		size = b.Style.FontSize
		color = b.Style.Color
		alignment = string(b.Style.Alignment)
		weight = b.Style.FontWeight
	}
	return brand.ResolveTextStyle(size, color, alignment, weight, d)
}

func (s *PPTService) renderText(slide *ppt.Slide, frame slides.Frame, brand *theme.BrandTheme, d theme.TextDefaults, text string) {
	st := blockStyle(frame.Block, brand, d)
	shape := frameBox(frame).apply(slide.CreateRichTextShape())
	tr := shape.CreateTextRun(text)
	tr.GetFont().SetSize(st.FontSize).SetBold(st.Bold).SetColor(ppt.NewColor(argb(st.Color))).SetName(st.FontFace)
	alignPara(shape.GetActiveParagraph(), st.Alignment)
}

func (s *PPTService) renderBullets(slide *ppt.Slide, frame slides.Frame, brand *theme.BrandTheme) {
	st := blockStyle(frame.Block, brand, theme.TextDefaults{FontSize: pptFontBody})
	shape := frameBox(frame).apply(slide.CreateRichTextShape())

	for i, item := range frame.Block.Content.Items() {
		if i > 0 {
			shape.CreateParagraph()
		}
		tr := shape.CreateTextRun(item)
		tr.GetFont().SetSize(st.FontSize).SetBold(st.Bold).SetColor(ppt.NewColor(argb(st.Color))).SetName(st.FontFace)
		para := shape.GetActiveParagraph()
		b := ppt.NewBullet()
		b.SetCharBullet("•", "Arial")
		para.SetBullet(b)
		alignPara(para, st.Alignment)
	}
}

func (s *PPTService) renderMedia(ctx context.Context, slide *ppt.Slide, frame slides.Frame, res RenderResult) RenderResult {
	media := frame.Block.Media
	if media == nil || media.URL == "" {
		res.Status = RenderSkipped
		res.Reason = "no media URL"
		return res
	}
	if media.Position == slides.PositionBackground {
		// Handled by the background pass.
		return res
	}

	img, err := s.fetcher.Fetch(ctx, media.URL)
	if err != nil {
		res.Status = RenderSkipped
		res.Reason = err.Error()
		return res
	}

	b := frameBox(frame)
	shape := slide.CreateDrawingShape()
	shape.SetImageData(img.Data, img.MIME)
	shape.SetOffsetX(b.x).SetOffsetY(b.y)
	shape.SetWidth(b.w).SetHeight(b.h)

	if media.Caption != "" {
		capShape := slide.CreateRichTextShape()
		capShape.SetOffsetX(b.x).SetOffsetY(b.y + b.h + int64(0.1*emuPerInch))
		capShape.SetWidth(b.w).SetHeight(int64(0.3 * emuPerInch))
		tr := capShape.CreateTextRun(media.Caption)
		tr.GetFont().SetSize(pptFontCaption).SetColor(ppt.NewColor("FF666666"))
	}
	return res
}

// renderChart embeds a native chart. Decks with no plottable data fall
// back to a text placeholder instead of an empty chart frame.
func (s *PPTService) renderChart(slide *ppt.Slide, frame slides.Frame, brand *theme.BrandTheme, res RenderResult) RenderResult {
	data := frame.Block.Chart
	if data == nil || len(data.Datasets) == 0 {
		return s.chartFallback(slide, frame, brand, res, "no datasets")
	}

	chartType, ok := buildChartType(data)
	if !ok {
		return s.chartFallback(slide, frame, brand, res, "empty series")
	}

	b := frameBox(frame)
	chart := slide.CreateChartShape()
	chart.SetOffsetX(b.x).SetOffsetY(b.y)
	chart.SetWidth(b.w).SetHeight(b.h)
	chart.GetPlotArea().SetType(chartType)
	if data.Title != "" {
		chart.GetTitle().SetText(data.Title)
	}
	return res
}

func (s *PPTService) chartFallback(slide *ppt.Slide, frame slides.Frame, brand *theme.BrandTheme, res RenderResult, reason string) RenderResult {
	title := "Data Visualization"
	if frame.Block.Chart != nil && frame.Block.Chart.Title != "" {
		title = frame.Block.Chart.Title
	}
	s.renderText(slide, frame, brand, theme.TextDefaults{FontSize: pptFontBody}, "Chart: "+title)
	res.Status = RenderFallback
	res.Reason = reason
	return res
}

// buildChartType maps the chart payload onto a GoPPT chart. Pie charts
// take only the first dataset; bar is the fallback for unknown types.
func buildChartType(data *slides.ChartData) (ppt.ChartType, bool) {
	series := make([]*ppt.ChartSeries, 0, len(data.Datasets))
	for _, ds := range data.Datasets {
		if len(ds.Data) == 0 {
			continue
		}
		series = append(series, ppt.NewChartSeriesOrdered(ds.Label, data.Labels, ds.Data))
	}
	if len(series) == 0 {
		return nil, false
	}

	switch data.Type {
	case slides.ChartLine:
		c := ppt.NewLineChart()
		for _, sr := range series {
			c.AddSeries(sr)
		}
		return c, true
	case slides.ChartPie:
		return ppt.NewPieChart().AddSeries(series[0]), true
	case slides.ChartArea:
		c := ppt.NewAreaChart()
		for _, sr := range series {
			c.AddSeries(sr)
		}
		return c, true
	default:
		c := ppt.NewBarChart()
		for _, sr := range series {
			c.AddSeries(sr)
		}
		return c, true
	}
}

// renderTable builds a native table grid: bold header row filled with
// the brand primary color, body rows banded for readability.
func (s *PPTService) renderTable(slide *ppt.Slide, frame slides.Frame, brand *theme.BrandTheme, res RenderResult) RenderResult {
	data := frame.Block.Table
	if data == nil || len(data.Headers) == 0 {
		res.Status = RenderSkipped
		res.Reason = "no table data"
		return res
	}

	b := frameBox(frame)
	tbl := slide.CreateTableShape(len(data.Rows)+1, len(data.Headers))
	tbl.SetOffsetX(b.x).SetOffsetY(b.y)
	tbl.SetWidth(b.w).SetHeight(b.h)

	for col, h := range data.Headers {
		cell := tbl.GetCell(0, col)
		cell.SetFill(solidFill(argb(brand.Palette.Primary)))
		tr := cell.GetParagraphs()[0].CreateTextRun(h)
		tr.GetFont().SetBold(true).SetColor(ppt.ColorWhite)
	}

	for r, row := range data.Rows {
		for col := 0; col < len(data.Headers) && col < len(row); col++ {
			cell := tbl.GetCell(r+1, col)
			if r%2 == 1 {
				cell.SetFill(solidFill(argb(brand.Palette.Muted)))
			}
			cell.SetText(row[col].String())
		}
	}
	return res
}

// renderKPIs lays entries out horizontally inside the frame, each as
// three stacked runs: value, label, signed delta colored by trend.
func (s *PPTService) renderKPIs(slide *ppt.Slide, frame slides.Frame, brand *theme.BrandTheme) {
	entries := frame.Block.KPIs
	if len(entries) == 0 {
		return
	}

	b := frameBox(frame)
	spacing := int64(0.2 * emuPerInch)
	width := b.w / int64(len(entries))

	for idx, kpi := range entries {
		x := b.x + int64(idx)*(width+spacing)

		shape := slide.CreateRichTextShape()
		shape.SetOffsetX(x).SetOffsetY(b.y)
		shape.SetWidth(width).SetHeight(b.h)

		valueTr := shape.CreateTextRun(kpi.Value.String())
		valueTr.GetFont().SetSize(pptFontKPI).SetBold(true).SetColor(ppt.NewColor(argb(brand.Palette.Primary)))
		alignPara(shape.GetActiveParagraph(), "center")

		shape.CreateParagraph()
		labelTr := shape.CreateTextRun(kpi.Label)
		labelTr.GetFont().SetSize(pptFontLabel).SetColor(ppt.NewColor("FF666666"))
		alignPara(shape.GetActiveParagraph(), "center")

		if kpi.Change != nil {
			shape.CreateParagraph()
			changeTr := shape.CreateTextRun(formatChange(kpi.Change))
			changeTr.GetFont().SetSize(pptFontCaption).SetColor(ppt.NewColor(trendColor(kpi.Change.Trend)))
			alignPara(shape.GetActiveParagraph(), "center")
		}
	}
}

// formatChange renders a delta as a percentage. Only upward trends get
// an explicit plus sign.
func formatChange(c *slides.KPIChange) string {
	v := strconv.FormatFloat(c.Value, 'f', -1, 64)
	if c.Trend == slides.TrendUp && !strings.HasPrefix(v, "+") {
		v = "+" + v
	}
	return v + "%"
}

func trendColor(t slides.Trend) string {
	switch t {
	case slides.TrendUp:
		return "FF00AA00"
	case slides.TrendDown:
		return "FFAA0000"
	default:
		return "FF666666"
	}
}

// stampLogo places the brand logo at the fixed bottom-right position.
func (s *PPTService) stampLogo(ctx context.Context, slide *ppt.Slide, url, slideID string, art *Artifact) {
	img, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		s.logf("slide %s: logo: %v", slideID, err)
		art.Results = append(art.Results, RenderResult{
			SlideID: slideID, FrameID: "logo", Kind: slides.KindMedia,
			Status: RenderSkipped, Reason: err.Error(),
		})
		return
	}
	shape := slide.CreateDrawingShape()
	shape.SetImageData(img.Data, img.MIME)
	shape.SetOffsetX(int64(8.5 * emuPerInch)).SetOffsetY(int64(5.0 * emuPerInch))
	shape.SetWidth(int64(1.0 * emuPerInch)).SetHeight(int64(0.5 * emuPerInch))
}

func (s *PPTService) logf(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Logf(format, args...)
	}
}
