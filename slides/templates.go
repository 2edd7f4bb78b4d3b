package slides

// Template describes a reusable slide skeleton: the layout it targets,
// the block kinds it requires, and a factory producing fresh default
// blocks. DefaultBlocks is a function so callers always get an
// independent copy they can mutate.
type Template struct {
	ID             string
	Name           string
	Layout         Layout
	Description    string
	RequiredBlocks []BlockKind
	DefaultBlocks  func() []Block
}

// Templates is the built-in registry, one entry per layout archetype.
var Templates = []Template{
	{
		ID:             "title",
		Name:           "Title Slide",
		Layout:         LayoutTitle,
		Description:    "Opening slide with title and subtitle",
		RequiredBlocks: []BlockKind{KindTitle},
		DefaultBlocks: func() []Block {
			return []Block{
				{
					ID: "title-1", Kind: KindTitle,
					Content: Text("Presentation Title"),
					Style:   &Style{FontSize: 60, Alignment: AlignCenter, FontWeight: "bold"},
				},
				{
					ID: "subtitle-1", Kind: KindParagraph,
					Content: Text("Subtitle or tagline"),
					Style:   &Style{FontSize: 24, Alignment: AlignCenter},
				},
			}
		},
	},
	{
		ID:             "content",
		Name:           "Content Slide",
		Layout:         LayoutContent,
		Description:    "Standard slide with title and bullet points",
		RequiredBlocks: []BlockKind{KindTitle},
		DefaultBlocks: func() []Block {
			return []Block{
				headingBlock("Slide Title"),
				{
					ID: "bullets-1", Kind: KindBullet,
					Content: List("First point", "Second point", "Third point"),
					Style:   &Style{FontSize: 18},
				},
			}
		},
	},
	{
		ID:             "section",
		Name:           "Section Header",
		Layout:         LayoutSection,
		Description:    "Section divider slide",
		RequiredBlocks: []BlockKind{KindTitle},
		DefaultBlocks: func() []Block {
			return []Block{
				{
					ID: "title-1", Kind: KindTitle,
					Content: Text("Section Title"),
					Style:   &Style{FontSize: 48, Alignment: AlignCenter, FontWeight: "bold"},
				},
			}
		},
	},
	{
		ID:             "two-column",
		Name:           "Two Column",
		Layout:         LayoutTwoColumn,
		Description:    "Content split into two columns",
		RequiredBlocks: []BlockKind{KindTitle},
		DefaultBlocks: func() []Block {
			return []Block{
				headingBlock("Slide Title"),
				{
					ID: "column-1", Kind: KindBullet,
					Content: List("Left column point 1", "Left column point 2"),
					Style:   &Style{FontSize: 18},
				},
				{
					ID: "column-2", Kind: KindBullet,
					Content: List("Right column point 1", "Right column point 2"),
					Style:   &Style{FontSize: 18},
				},
			}
		},
	},
	{
		ID:             "comparison",
		Name:           "Comparison",
		Layout:         LayoutComparison,
		Description:    "Side-by-side comparison",
		RequiredBlocks: []BlockKind{KindTitle},
		DefaultBlocks: func() []Block {
			return []Block{
				headingBlock("Comparison Title"),
				{
					ID: "comparison-left", Kind: KindBullet,
					Content: List("Option A: Point 1", "Option A: Point 2"),
					Style:   &Style{FontSize: 18},
				},
				{
					ID: "comparison-right", Kind: KindBullet,
					Content: List("Option B: Point 1", "Option B: Point 2"),
					Style:   &Style{FontSize: 18},
				},
			}
		},
	},
	{
		ID:             "quote",
		Name:           "Quote Slide",
		Layout:         LayoutQuote,
		Description:    "Highlighted quote or testimonial",
		RequiredBlocks: []BlockKind{KindQuote},
		DefaultBlocks: func() []Block {
			return []Block{
				{
					ID: "quote-1", Kind: KindQuote,
					Content: Text("This is an inspiring quote that captures the essence of your message."),
					Style:   &Style{FontSize: 32, Alignment: AlignCenter, FontWeight: "bold"},
				},
				{
					ID: "quote-author", Kind: KindParagraph,
					Content: Text("Author Name"),
					Style:   &Style{FontSize: 18, Alignment: AlignCenter},
				},
			}
		},
	},
	{
		ID:             "kpi",
		Name:           "KPI Dashboard",
		Layout:         LayoutKPI,
		Description:    "Key performance indicators",
		RequiredBlocks: []BlockKind{KindTitle, KindKPI},
		DefaultBlocks: func() []Block {
			return []Block{
				headingBlock("Key Metrics"),
				{
					ID: "kpis-1", Kind: KindKPI,
					KPIs: []KPIData{
						{Value: Str("100"), Label: "Metric 1", Change: &KPIChange{Value: 10, Trend: TrendUp}},
						{Value: Str("250"), Label: "Metric 2", Change: &KPIChange{Value: 5, Trend: TrendDown}},
						{Value: Str("75%"), Label: "Metric 3", Change: &KPIChange{Value: 0, Trend: TrendNeutral}},
					},
				},
			}
		},
	},
	{
		ID:             "chart",
		Name:           "Chart Slide",
		Layout:         LayoutChart,
		Description:    "Data visualization",
		RequiredBlocks: []BlockKind{KindTitle, KindChart},
		DefaultBlocks: func() []Block {
			return []Block{
				headingBlock("Chart Title"),
				{
					ID: "chart-1", Kind: KindChart,
					Chart: &ChartData{
						Type:   ChartBar,
						Labels: []string{"Q1", "Q2", "Q3", "Q4"},
						Datasets: []ChartDataset{
							{Label: "Sales", Data: []float64{100, 150, 200, 180}},
						},
					},
				},
			}
		},
	},
	{
		ID:             "table",
		Name:           "Table Slide",
		Layout:         LayoutTable,
		Description:    "Data table",
		RequiredBlocks: []BlockKind{KindTitle, KindTable},
		DefaultBlocks: func() []Block {
			return []Block{
				headingBlock("Table Title"),
				{
					ID: "table-1", Kind: KindTable,
					Table: &TableData{
						Headers: []string{"Column 1", "Column 2", "Column 3"},
						Rows: [][]Scalar{
							{Str("Row 1 Col 1"), Str("Row 1 Col 2"), Str("Row 1 Col 3")},
							{Str("Row 2 Col 1"), Str("Row 2 Col 2"), Str("Row 2 Col 3")},
						},
					},
				},
			}
		},
	},
	{
		ID:             "timeline",
		Name:           "Timeline",
		Layout:         LayoutTimeline,
		Description:    "Chronological timeline",
		RequiredBlocks: []BlockKind{KindTitle},
		DefaultBlocks: func() []Block {
			return []Block{
				headingBlock("Timeline Title"),
				{
					ID: "timeline-1", Kind: KindBullet,
					Content: List("2024 Q1: Milestone 1", "2024 Q2: Milestone 2", "2024 Q3: Milestone 3"),
					Style:   &Style{FontSize: 18},
				},
			}
		},
	},
	{
		ID:             "image-left",
		Name:           "Image Left",
		Layout:         LayoutImageLeft,
		Description:    "Image on left, content on right",
		RequiredBlocks: []BlockKind{KindTitle},
		DefaultBlocks: func() []Block {
			return []Block{
				headingBlock("Slide Title"),
				{
					ID: "media-1", Kind: KindMedia,
					Media: &MediaRef{Type: MediaImage, Position: PositionLeft},
				},
				{
					ID: "bullets-1", Kind: KindBullet,
					Content: List("Point 1", "Point 2", "Point 3"),
					Style:   &Style{FontSize: 18},
				},
			}
		},
	},
	{
		ID:             "image-right",
		Name:           "Image Right",
		Layout:         LayoutImageRight,
		Description:    "Image on right, content on left",
		RequiredBlocks: []BlockKind{KindTitle},
		DefaultBlocks: func() []Block {
			return []Block{
				headingBlock("Slide Title"),
				{
					ID: "bullets-1", Kind: KindBullet,
					Content: List("Point 1", "Point 2", "Point 3"),
					Style:   &Style{FontSize: 18},
				},
				{
					ID: "media-1", Kind: KindMedia,
					Media: &MediaRef{Type: MediaImage, Position: PositionRight},
				},
			}
		},
	},
	{
		ID:             "full-image",
		Name:           "Full Image",
		Layout:         LayoutFullImage,
		Description:    "Full background image with overlay text",
		RequiredBlocks: []BlockKind{KindTitle},
		DefaultBlocks: func() []Block {
			return []Block{
				{
					ID: "media-1", Kind: KindMedia,
					Media: &MediaRef{Type: MediaImage, Position: PositionBackground},
				},
				{
					ID: "title-1", Kind: KindTitle,
					Content: Text("Slide Title"),
					Style:   &Style{FontSize: 48, Alignment: AlignCenter, FontWeight: "bold"},
				},
			}
		},
	},
}

func headingBlock(text string) Block {
	return Block{
		ID: "title-1", Kind: KindTitle,
		Content: Text(text),
		Style:   &Style{FontSize: 36, FontWeight: "bold"},
	}
}

// TemplateByID looks a template up by its registry id.
func TemplateByID(id string) (Template, bool) {
	for _, t := range Templates {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// TemplateByLayout matches first on id, then on layout, so aliases such
// as timeline resolve to their own entry before the shared layout.
func TemplateByLayout(layout Layout) (Template, bool) {
	for _, t := range Templates {
		if t.ID == string(layout) {
			return t, true
		}
	}
	for _, t := range Templates {
		if t.Layout == layout {
			return t, true
		}
	}
	return Template{}, false
}
