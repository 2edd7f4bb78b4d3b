package main

import (
	"context"
	"fmt"

	"deckforge/database"
	"deckforge/theme"
)

// BrandFacadeService wraps the brand kit store and resolves stored
// kits into render-ready themes.
type BrandFacadeService struct {
	ctx    context.Context
	brands *database.BrandService
	logger func(string)
}

// NewBrandFacadeService creates a new BrandFacadeService instance
func NewBrandFacadeService(brands *database.BrandService, logger func(string)) *BrandFacadeService {
	return &BrandFacadeService{brands: brands, logger: logger}
}

// Name returns the service name
func (b *BrandFacadeService) Name() string {
	return "brand"
}

// Initialize stores the application context
func (b *BrandFacadeService) Initialize(ctx context.Context) error {
	b.ctx = ctx
	return nil
}

// Shutdown closes the brand facade (no-op)
func (b *BrandFacadeService) Shutdown() error {
	return nil
}

// SaveBrandKit persists a brand kit.
func (b *BrandFacadeService) SaveBrandKit(kit database.BrandKit) (*database.BrandKit, error) {
	saved, err := b.brands.SaveBrandKit(kit)
	if err != nil {
		return nil, WrapError("brand", "SaveBrandKit", err)
	}
	b.log(fmt.Sprintf("Saved brand kit %s (%q)", saved.ID, saved.Name))
	return saved, nil
}

// GetBrandKit loads a brand kit by id.
func (b *BrandFacadeService) GetBrandKit(id string) (*database.BrandKit, error) {
	kit, err := b.brands.GetBrandKit(id)
	if err != nil {
		return nil, WrapError("brand", "GetBrandKit", err)
	}
	return kit, nil
}

// ListBrandKits returns all stored brand kits.
func (b *BrandFacadeService) ListBrandKits() ([]database.BrandKit, error) {
	kits, err := b.brands.ListBrandKits()
	if err != nil {
		return nil, WrapError("brand", "ListBrandKits", err)
	}
	return kits, nil
}

// DeleteBrandKit removes a brand kit.
func (b *BrandFacadeService) DeleteBrandKit(id string) error {
	if err := b.brands.DeleteBrandKit(id); err != nil {
		return WrapError("brand", "DeleteBrandKit", err)
	}
	return nil
}

// ResolveTheme builds the render theme for a brand kit id. An empty id
// resolves to the neutral default theme.
func (b *BrandFacadeService) ResolveTheme(id string) (*theme.BrandTheme, error) {
	if id == "" {
		return theme.Default(), nil
	}
	kit, err := b.brands.GetBrandKit(id)
	if err != nil {
		return nil, WrapError("brand", "ResolveTheme", err)
	}
	return kit.Theme(), nil
}

func (b *BrandFacadeService) log(msg string) {
	if b.logger != nil {
		b.logger(msg)
	}
}
