// Package theme holds the brand theme model shared by the layout
// engine and the exporters: color palette, font configuration and the
// typography scale.
package theme

import (
	"fmt"
	"strconv"
	"strings"
)

type ColorPalette struct {
	Primary         string `json:"primary"`
	Secondary       string `json:"secondary"`
	Accent          string `json:"accent"`
	Background      string `json:"background"`
	Foreground      string `json:"foreground"`
	Muted           string `json:"muted"`
	MutedForeground string `json:"mutedForeground"`
	Border          string `json:"border"`
}

// TypographyScale maps named steps to point sizes.
type TypographyScale struct {
	XS   int `json:"xs"`
	SM   int `json:"sm"`
	Base int `json:"base"`
	LG   int `json:"lg"`
	XL   int `json:"xl"`
	XL2  int `json:"2xl"`
	XL3  int `json:"3xl"`
	XL4  int `json:"4xl"`
	XL5  int `json:"5xl"`
	XL6  int `json:"6xl"`
}

type FontConfig struct {
	Heading   string `json:"heading"`
	Body      string `json:"body"`
	Monospace string `json:"monospace,omitempty"`
}

type LogoPosition string

const (
	LogoTopLeft     LogoPosition = "top-left"
	LogoTopRight    LogoPosition = "top-right"
	LogoBottomLeft  LogoPosition = "bottom-left"
	LogoBottomRight LogoPosition = "bottom-right"
)

type LogoSize string

const (
	LogoSmall  LogoSize = "small"
	LogoMedium LogoSize = "medium"
	LogoLarge  LogoSize = "large"
)

type Logo struct {
	URL      string       `json:"url"`
	Position LogoPosition `json:"position"`
	Size     LogoSize     `json:"size"`
}

// BrandTheme is a fully resolved theme. Build one with New so the
// fixed palette entries and the default scale are always populated.
type BrandTheme struct {
	Palette    ColorPalette    `json:"palette"`
	Fonts      FontConfig      `json:"fonts"`
	Typography TypographyScale `json:"typography"`
	Logo       *Logo           `json:"logo,omitempty"`
}

// DefaultScale is the standard typography scale.
var DefaultScale = TypographyScale{
	XS: 12, SM: 14, Base: 16, LG: 18, XL: 20,
	XL2: 24, XL3: 30, XL4: 36, XL5: 48, XL6: 60,
}

// New resolves brand inputs into a theme. The neutral palette entries
// are fixed regardless of the brand colors. Empty fonts fall back to
// Inter; a non-empty logoURL attaches a small bottom-right logo.
func New(primary, secondary, accent, headingFont, bodyFont, logoURL string) *BrandTheme {
	if headingFont == "" {
		headingFont = "Inter"
	}
	if bodyFont == "" {
		bodyFont = "Inter"
	}
	t := &BrandTheme{
		Palette: ColorPalette{
			Primary:         primary,
			Secondary:       secondary,
			Accent:          accent,
			Background:      "#FFFFFF",
			Foreground:      "#000000",
			Muted:           "#F5F5F5",
			MutedForeground: "#737373",
			Border:          "#E5E5E5",
		},
		Fonts: FontConfig{
			Heading:   headingFont,
			Body:      bodyFont,
			Monospace: "monospace",
		},
		Typography: DefaultScale,
	}
	if logoURL != "" {
		t.Logo = &Logo{URL: logoURL, Position: LogoBottomRight, Size: LogoSmall}
	}
	return t
}

// Default is the theme used when no brand is configured.
func Default() *BrandTheme {
	return New("#000000", "#666666", "#0066CC", "", "", "")
}

// HexToRGB parses "#RRGGBB" (leading # optional). ok is false for
// anything that is not six hex digits.
func HexToRGB(hex string) (r, g, b uint8, ok bool) {
	s := strings.TrimPrefix(hex, "#")
	if len(s) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}

// RGBToHex formats components as "#rrggbb".
func RGBToHex(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
