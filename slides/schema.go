// Package slides defines the canonical slide/block data model and the
// pipeline stages that operate on it: validation, legacy normalization
// and the layout engine.
package slides

import (
	"encoding/json"
	"strconv"
)

// Layout identifies a slide layout archetype.
type Layout string

const (
	LayoutTitle      Layout = "title"
	LayoutContent    Layout = "content"
	LayoutSection    Layout = "section"
	LayoutTwoColumn  Layout = "two-column"
	LayoutComparison Layout = "comparison"
	LayoutQuote      Layout = "quote"
	LayoutKPI        Layout = "kpi"
	LayoutChart      Layout = "chart"
	LayoutTable      Layout = "table"
	LayoutTimeline   Layout = "timeline"
	LayoutImageLeft  Layout = "image-left"
	LayoutImageRight Layout = "image-right"
	LayoutFullImage  Layout = "full-image"
)

var layouts = map[Layout]bool{
	LayoutTitle: true, LayoutContent: true, LayoutSection: true,
	LayoutTwoColumn: true, LayoutComparison: true, LayoutQuote: true,
	LayoutKPI: true, LayoutChart: true, LayoutTable: true,
	LayoutTimeline: true, LayoutImageLeft: true, LayoutImageRight: true,
	LayoutFullImage: true,
}

// Valid reports whether l is one of the known archetypes.
func (l Layout) Valid() bool { return layouts[l] }

// BlockKind identifies the content kind of a block.
type BlockKind string

const (
	KindTitle     BlockKind = "title"
	KindParagraph BlockKind = "paragraph"
	KindBullet    BlockKind = "bullet"
	KindMedia     BlockKind = "media"
	KindChart     BlockKind = "chart"
	KindTable     BlockKind = "table"
	KindKPI       BlockKind = "kpi"
	KindQuote     BlockKind = "quote"
	KindIcon      BlockKind = "icon"
)

var blockKinds = map[BlockKind]bool{
	KindTitle: true, KindParagraph: true, KindBullet: true,
	KindMedia: true, KindChart: true, KindTable: true,
	KindKPI: true, KindQuote: true, KindIcon: true,
}

// Valid reports whether k is one of the known block kinds.
func (k BlockKind) Valid() bool { return blockKinds[k] }

// ChartType identifies the visualization family of a chart block.
type ChartType string

const (
	ChartBar  ChartType = "bar"
	ChartLine ChartType = "line"
	ChartPie  ChartType = "pie"
	ChartArea ChartType = "area"
)

func (t ChartType) Valid() bool {
	return t == ChartBar || t == ChartLine || t == ChartPie || t == ChartArea
}

// Trend describes the direction of a KPI change.
type Trend string

const (
	TrendUp      Trend = "up"
	TrendDown    Trend = "down"
	TrendNeutral Trend = "neutral"
)

func (t Trend) Valid() bool {
	return t == TrendUp || t == TrendDown || t == TrendNeutral
}

// MediaType distinguishes pictures from icon glyph references.
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaIcon  MediaType = "icon"
)

// MediaPosition places a media block within its slide.
type MediaPosition string

const (
	PositionLeft       MediaPosition = "left"
	PositionRight      MediaPosition = "right"
	PositionCenter     MediaPosition = "center"
	PositionBackground MediaPosition = "background"
)

func (p MediaPosition) Valid() bool {
	switch p {
	case PositionLeft, PositionRight, PositionCenter, PositionBackground, "":
		return true
	}
	return false
}

// Alignment is horizontal text alignment within a frame.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// Content is the text payload of a textual block: either a single
// string or an ordered list of strings. Older records carry both shapes
// under the same JSON key, so the distinction is kept explicit here and
// the original JSON shape survives a round trip.
type Content struct {
	list  bool
	text  string
	items []string
}

// Text builds a single-string content payload.
func Text(s string) *Content { return &Content{text: s} }

// List builds a list-of-strings content payload.
func List(items ...string) *Content {
	return &Content{list: true, items: items}
}

// IsList reports whether the payload carries an ordered list.
func (c *Content) IsList() bool { return c != nil && c.list }

// First returns the single text, or the first list item.
func (c *Content) First() string {
	if c == nil {
		return ""
	}
	if c.list {
		if len(c.items) == 0 {
			return ""
		}
		return c.items[0]
	}
	return c.text
}

// Joined returns the payload flattened into one string.
func (c *Content) Joined(sep string) string {
	if c == nil {
		return ""
	}
	if !c.list {
		return c.text
	}
	out := ""
	for i, item := range c.items {
		if i > 0 {
			out += sep
		}
		out += item
	}
	return out
}

// Items returns the payload as a list: the items themselves, or the
// single text wrapped in a one-element slice.
func (c *Content) Items() []string {
	if c == nil {
		return nil
	}
	if c.list {
		return c.items
	}
	return []string{c.text}
}

// LineCount is the number of content lines used by the layout engine's
// height estimate: list length for lists, one otherwise.
func (c *Content) LineCount() int {
	if c != nil && c.list {
		return len(c.items)
	}
	return 1
}

// MarshalJSON emits the original JSON shape: an array for lists, a
// plain string otherwise.
func (c *Content) MarshalJSON() ([]byte, error) {
	if c.list {
		if c.items == nil {
			return json.Marshal([]string{})
		}
		return json.Marshal(c.items)
	}
	return json.Marshal(c.text)
}

// UnmarshalJSON accepts both a string and an array of strings.
func (c *Content) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*c = Content{text: s}
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	*c = Content{list: true, items: items}
	return nil
}

// Scalar is a string-or-number cell value, as found in table rows and
// KPI values. The original numeric or string JSON shape is preserved.
type Scalar struct {
	num   float64
	text  string
	isNum bool
}

// Str builds a string scalar.
func Str(s string) Scalar { return Scalar{text: s} }

// Num builds a numeric scalar.
func Num(v float64) Scalar { return Scalar{num: v, isNum: true} }

// String renders the scalar for display.
func (s Scalar) String() string {
	if s.isNum {
		return strconv.FormatFloat(s.num, 'f', -1, 64)
	}
	return s.text
}

func (s Scalar) MarshalJSON() ([]byte, error) {
	if s.isNum {
		return json.Marshal(s.num)
	}
	return json.Marshal(s.text)
}

func (s *Scalar) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = Scalar{text: str}
		return nil
	}
	var num float64
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*s = Scalar{num: num, isNum: true}
	return nil
}

// ChartDataset is one named numeric series, aligned by index to the
// chart's labels.
type ChartDataset struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
	Color string    `json:"color,omitempty"`
}

// ChartData is the payload of a chart block.
type ChartData struct {
	Type     ChartType      `json:"type"`
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
	Title    string         `json:"title,omitempty"`
}

// TableData is the payload of a table block.
type TableData struct {
	Headers []string   `json:"headers"`
	Rows    [][]Scalar `json:"rows"`
	Title   string     `json:"title,omitempty"`
}

// KPIChange is the delta attached to a KPI entry.
type KPIChange struct {
	Value float64 `json:"value"`
	Trend Trend   `json:"trend"`
}

// KPIData is a single KPI entry within a KPI block.
type KPIData struct {
	Value  Scalar     `json:"value"`
	Label  string     `json:"label"`
	Change *KPIChange `json:"change,omitempty"`
	Icon   string     `json:"icon,omitempty"`
}

// MediaRef is the payload of a media block.
type MediaRef struct {
	Type     MediaType     `json:"type"`
	URL      string        `json:"url"`
	Alt      string        `json:"alt,omitempty"`
	Caption  string        `json:"caption,omitempty"`
	Position MediaPosition `json:"position,omitempty"`
	Mask     string        `json:"mask,omitempty"`
}

// Style is a per-block style override.
type Style struct {
	FontSize   int       `json:"fontSize,omitempty"`
	Color      string    `json:"color,omitempty"`
	Alignment  Alignment `json:"alignment,omitempty"`
	FontWeight string    `json:"fontWeight,omitempty"`
}

// Bold reports whether the style requests bold text.
func (s *Style) Bold() bool { return s != nil && s.FontWeight == "bold" }

// Block is one unit of slide content. Exactly one payload field is
// populated, matching Kind.
type Block struct {
	ID      string     `json:"id"`
	Kind    BlockKind  `json:"type"`
	Content *Content   `json:"content,omitempty"`
	Media   *MediaRef  `json:"media,omitempty"`
	Chart   *ChartData `json:"chart,omitempty"`
	Table   *TableData `json:"table,omitempty"`
	KPIs    []KPIData  `json:"kpis,omitempty"`
	Style   *Style     `json:"style,omitempty"`
}

// Slide is one presentation page. The trailing fields are the legacy
// flat shape: they are read only by the normalizer and preserved on its
// output for consumers that still look at them.
type Slide struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Layout Layout  `json:"layout"`
	Blocks []Block `json:"blocks"`
	Notes  string  `json:"notes,omitempty"`

	ImageURL      string   `json:"imageUrl,omitempty"`
	ImagePrompt   string   `json:"imagePrompt,omitempty"`
	LegacyContent []string `json:"content,omitempty"`
}
