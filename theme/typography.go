package theme

import "strings"

// pptFonts maps web font families to fonts that render reliably in
// PowerPoint without embedding.
var pptFonts = map[string]string{
	"Inter":            "Calibri",
	"Roboto":           "Calibri",
	"Open Sans":        "Calibri",
	"Lato":             "Calibri",
	"Montserrat":       "Calibri",
	"Playfair Display": "Georgia",
	"Merriweather":     "Georgia",
}

// webFallbacks maps font families to CSS font stacks for HTML preview.
var webFallbacks = map[string]string{
	"Inter":            "Inter, system-ui, -apple-system, sans-serif",
	"Roboto":           "Roboto, system-ui, sans-serif",
	"Open Sans":        "Open Sans, system-ui, sans-serif",
	"Lato":             "Lato, system-ui, sans-serif",
	"Montserrat":       "Montserrat, system-ui, sans-serif",
	"Playfair Display": "Playfair Display, serif",
	"Merriweather":     "Merriweather, serif",
}

// PPTFont returns the PowerPoint-safe substitute for a web font.
// Unknown fonts map to Calibri.
func PPTFont(font string) string {
	if f, ok := pptFonts[font]; ok {
		return f
	}
	return "Calibri"
}

// WebFontStack returns the CSS stack for a font family.
func WebFontStack(font string) string {
	if s, ok := webFallbacks[font]; ok {
		return s
	}
	return font + ", system-ui, sans-serif"
}

// TextStyle is a resolved run style for a rendered text block.
type TextStyle struct {
	FontSize  int
	Color     string
	Alignment string
	Bold      bool
	FontFace  string
}

// TextDefaults carries per-call fallbacks for ResolveTextStyle.
type TextDefaults struct {
	FontSize  int
	Color     string
	Alignment string
	Bold      bool
}

// ResolveTextStyle merges explicit block styling over call defaults
// over theme values. Precedence per field: block, defaults, theme
// primary (color only), then the built-in fallback.
func (t *BrandTheme) ResolveTextStyle(fontSize int, color, alignment, fontWeight string, d TextDefaults) TextStyle {
	st := TextStyle{FontSize: fontSize, Color: color, Alignment: alignment}
	if st.FontSize == 0 {
		st.FontSize = d.FontSize
	}
	if st.FontSize == 0 {
		st.FontSize = 18
	}
	if st.Color == "" {
		st.Color = d.Color
	}
	if st.Color == "" && t != nil {
		st.Color = t.Palette.Primary
	}
	if st.Color == "" {
		st.Color = "#000000"
	}
	if st.Alignment == "" {
		st.Alignment = d.Alignment
	}
	if st.Alignment == "" {
		st.Alignment = "left"
	}
	st.Bold = fontWeight == "bold" || d.Bold
	if t != nil {
		st.FontFace = PPTFont(t.Fonts.Body)
	} else {
		st.FontFace = "Calibri"
	}
	return st
}

// PPTColor normalizes a color for PPTX drawing: strips the leading #
// and uppercases the hex digits.
func PPTColor(hex string) string {
	return strings.ToUpper(strings.TrimPrefix(hex, "#"))
}
