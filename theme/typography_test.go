package theme

import "testing"

func TestPPTFont(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Inter", "Calibri"},
		{"Roboto", "Calibri"},
		{"Open Sans", "Calibri"},
		{"Lato", "Calibri"},
		{"Montserrat", "Calibri"},
		{"Playfair Display", "Georgia"},
		{"Merriweather", "Georgia"},
		{"Comic Sans MS", "Calibri"},
		{"", "Calibri"},
	}
	for _, tt := range tests {
		if got := PPTFont(tt.in); got != tt.want {
			t.Errorf("PPTFont(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWebFontStack(t *testing.T) {
	if got := WebFontStack("Merriweather"); got != "Merriweather, serif" {
		t.Errorf("known stack = %q", got)
	}
	if got := WebFontStack("Custom Sans"); got != "Custom Sans, system-ui, sans-serif" {
		t.Errorf("unknown stack = %q", got)
	}
}

func TestResolveTextStyle_Precedence(t *testing.T) {
	th := New("#AA0000", "#666666", "#0066CC", "", "Playfair Display", "")

	// Block values win over everything.
	st := th.ResolveTextStyle(30, "#123456", "center", "bold", TextDefaults{
		FontSize: 18, Color: "#000000", Alignment: "left",
	})
	if st.FontSize != 30 || st.Color != "#123456" || st.Alignment != "center" || !st.Bold {
		t.Errorf("block overrides lost: %+v", st)
	}

	// Call defaults fill the gaps.
	st = th.ResolveTextStyle(0, "", "", "", TextDefaults{
		FontSize: 28, Color: "#222222", Alignment: "right", Bold: true,
	})
	if st.FontSize != 28 || st.Color != "#222222" || st.Alignment != "right" || !st.Bold {
		t.Errorf("defaults not applied: %+v", st)
	}

	// With no defaults the theme primary colors the text.
	st = th.ResolveTextStyle(0, "", "", "", TextDefaults{})
	if st.Color != "#AA0000" {
		t.Errorf("color = %q, want theme primary", st.Color)
	}
	if st.FontSize != 18 || st.Alignment != "left" || st.Bold {
		t.Errorf("builtin fallbacks wrong: %+v", st)
	}
	if st.FontFace != "Georgia" {
		t.Errorf("font face = %q, want Georgia for Playfair Display body", st.FontFace)
	}
}

func TestResolveTextStyle_NilTheme(t *testing.T) {
	var th *BrandTheme
	st := th.ResolveTextStyle(0, "", "", "", TextDefaults{})
	if st.Color != "#000000" || st.FontFace != "Calibri" {
		t.Errorf("nil theme fallbacks wrong: %+v", st)
	}
}

func TestPPTColor(t *testing.T) {
	if got := PPTColor("#aa00ff"); got != "AA00FF" {
		t.Errorf("PPTColor = %q", got)
	}
	if got := PPTColor("00AA00"); got != "00AA00" {
		t.Errorf("PPTColor without hash = %q", got)
	}
}
