package database

import (
	"testing"

	"deckforge/theme"
)

func TestSaveBrandKit_RequiredFields(t *testing.T) {
	svc := NewBrandService(openTestDB(t))
	if _, err := svc.SaveBrandKit(BrandKit{}); err == nil {
		t.Error("expected error for missing name")
	}
	if _, err := svc.SaveBrandKit(BrandKit{Name: "Acme"}); err == nil {
		t.Error("expected error for missing colors")
	}
}

func TestSaveBrandKit_FontDefaults(t *testing.T) {
	svc := NewBrandService(openTestDB(t))
	saved, err := svc.SaveBrandKit(BrandKit{
		Name: "Acme", PrimaryColor: "#112233", SecondaryColor: "#445566",
	})
	if err != nil {
		t.Fatalf("SaveBrandKit: %v", err)
	}
	if saved.ID == "" {
		t.Error("expected generated id")
	}
	if saved.HeadingFont != "Inter" || saved.BodyFont != "Inter" {
		t.Errorf("fonts = %q/%q, want Inter", saved.HeadingFont, saved.BodyFont)
	}
}

func TestBrandKit_RoundTrip(t *testing.T) {
	svc := NewBrandService(openTestDB(t))
	kit := BrandKit{
		Name:           "Acme",
		PrimaryColor:   "#112233",
		SecondaryColor: "#445566",
		AccentColor:    "#778899",
		HeadingFont:    "Playfair Display",
		BodyFont:       "Lato",
		Tone:           BrandTone{Voice: "bold", Keywords: []string{"growth", "scale"}},
		LogoURL:        "https://cdn.acme.example/logo.png",
	}
	saved, err := svc.SaveBrandKit(kit)
	if err != nil {
		t.Fatalf("SaveBrandKit: %v", err)
	}

	got, err := svc.GetBrandKit(saved.ID)
	if err != nil {
		t.Fatalf("GetBrandKit: %v", err)
	}
	if got.Name != kit.Name || got.AccentColor != kit.AccentColor || got.LogoURL != kit.LogoURL {
		t.Errorf("got %+v", got)
	}
	if got.Tone.Voice != "bold" || len(got.Tone.Keywords) != 2 {
		t.Errorf("tone = %+v", got.Tone)
	}

	// Update path keeps a single row.
	saved.Name = "Acme v2"
	if _, err := svc.SaveBrandKit(*saved); err != nil {
		t.Fatalf("SaveBrandKit update: %v", err)
	}
	all, err := svc.ListBrandKits()
	if err != nil {
		t.Fatalf("ListBrandKits: %v", err)
	}
	if len(all) != 1 || all[0].Name != "Acme v2" {
		t.Errorf("kits = %+v", all)
	}
}

func TestGetBrandKit_NotFound(t *testing.T) {
	svc := NewBrandService(openTestDB(t))
	if _, err := svc.GetBrandKit("missing"); err == nil {
		t.Fatal("expected error for unknown kit")
	}
}

func TestDeleteBrandKit(t *testing.T) {
	svc := NewBrandService(openTestDB(t))
	saved, err := svc.SaveBrandKit(BrandKit{
		Name: "Acme", PrimaryColor: "#112233", SecondaryColor: "#445566",
	})
	if err != nil {
		t.Fatalf("SaveBrandKit: %v", err)
	}
	if err := svc.DeleteBrandKit(saved.ID); err != nil {
		t.Fatalf("DeleteBrandKit: %v", err)
	}
	if _, err := svc.GetBrandKit(saved.ID); err == nil {
		t.Error("expected kit to be gone")
	}
}

func TestBrandKit_Theme(t *testing.T) {
	kit := &BrandKit{
		PrimaryColor:   "#112233",
		SecondaryColor: "#445566",
		HeadingFont:    "Montserrat",
		BodyFont:       "Lato",
		LogoURL:        "https://cdn.acme.example/logo.png",
	}
	th := kit.Theme()
	if th.Palette.Primary != "#112233" || th.Palette.Secondary != "#445566" {
		t.Errorf("colors = %q/%q", th.Palette.Primary, th.Palette.Secondary)
	}
	if th.Fonts.Heading != "Montserrat" || th.Fonts.Body != "Lato" {
		t.Errorf("fonts = %q/%q", th.Fonts.Heading, th.Fonts.Body)
	}
	if th.Logo == nil || th.Logo.URL != kit.LogoURL {
		t.Errorf("logo = %+v", th.Logo)
	}

	var nilKit *BrandKit
	if got := nilKit.Theme(); got.Palette.Primary != theme.Default().Palette.Primary {
		t.Errorf("nil kit theme = %+v", got)
	}
}
