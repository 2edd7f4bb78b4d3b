package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"deckforge/database"
	"deckforge/export"
	"deckforge/slides"
)

// ExportFacadeService turns stored decks into .pptx files on disk and
// keeps an export history per deck.
type ExportFacadeService struct {
	ctx          context.Context
	decks        *database.DeckService
	brands       *BrandFacadeService
	exports      *database.ExportRecordService
	pptService   *export.PPTService
	configSource ConfigProvider
	logger       func(string)
}

// NewExportFacadeService creates a new ExportFacadeService instance
func NewExportFacadeService(
	decks *database.DeckService,
	brands *BrandFacadeService,
	exports *database.ExportRecordService,
	pptService *export.PPTService,
	configSource ConfigProvider,
	logger func(string),
) *ExportFacadeService {
	return &ExportFacadeService{
		decks:        decks,
		brands:       brands,
		exports:      exports,
		pptService:   pptService,
		configSource: configSource,
		logger:       logger,
	}
}

// Name returns the service name
func (e *ExportFacadeService) Name() string {
	return "export"
}

// Initialize ensures the export directory exists
func (e *ExportFacadeService) Initialize(ctx context.Context) error {
	e.ctx = ctx
	cfg, err := e.configSource.GetConfig()
	if err != nil {
		return WrapError("export", "Initialize", err)
	}
	if err := os.MkdirAll(cfg.ExportDir, 0755); err != nil {
		return WrapError("export", "Initialize", err)
	}
	return nil
}

// Shutdown closes the export facade (no-op)
func (e *ExportFacadeService) Shutdown() error {
	return nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^\w\- ]+`)

// exportFilename builds "<title>_<timestamp>.pptx" with filesystem-safe
// characters only.
func exportFilename(title string) string {
	base := strings.TrimSpace(unsafeFilenameChars.ReplaceAllString(title, ""))
	base = strings.ReplaceAll(base, " ", "_")
	if base == "" {
		base = "deck"
	}
	return fmt.Sprintf("%s_%s.pptx", base, time.Now().Format("20060102_150405"))
}

// ExportDeck renders a stored deck to a .pptx under the configured
// export directory, records the export, and promotes the deck to the
// export_ready status. Returns the written file path.
func (e *ExportFacadeService) ExportDeck(ctx context.Context, deckID string) (string, error) {
	rec, err := e.decks.GetDeck(deckID)
	if err != nil {
		return "", WrapError("export", "ExportDeck", err)
	}
	if len(rec.Slides) == 0 {
		return "", WrapError("export", "ExportDeck", fmt.Errorf("deck %s has no slides", deckID))
	}

	brand, err := e.brands.ResolveTheme(rec.Meta.BrandKitID)
	if err != nil {
		return "", WrapError("export", "ExportDeck", err)
	}

	cfg, err := e.configSource.GetConfig()
	if err != nil {
		return "", WrapError("export", "ExportDeck", err)
	}
	if err := os.MkdirAll(cfg.ExportDir, 0755); err != nil {
		return "", WrapError("export", "ExportDeck", err)
	}
	path := filepath.Join(cfg.ExportDir, exportFilename(rec.Title))

	artifact, err := e.pptService.ExportDeckToFile(ctx, rec.Slides, rec.Title, path, brand)
	if err != nil {
		return "", WrapError("export", "ExportDeck", err)
	}

	skips := artifact.Skips()
	if _, err := e.exports.RecordExport(database.ExportRecord{
		DeckID:     deckID,
		FilePath:   path,
		SlideCount: len(rec.Slides),
		SkipCount:  len(skips),
	}); err != nil {
		return "", WrapError("export", "ExportDeck", err)
	}
	if err := e.decks.UpdateStatus(deckID, database.StatusExportReady); err != nil {
		return "", WrapError("export", "ExportDeck", err)
	}

	e.log(fmt.Sprintf("Exported deck %s to %s (%d slides, %d skipped blocks)", deckID, path, len(rec.Slides), len(skips)))
	return path, nil
}

// ExportFile renders an ad-hoc slide list to outPath without touching
// the deck store. An empty outPath derives the file name from the
// title under the configured export directory.
func (e *ExportFacadeService) ExportFile(ctx context.Context, deck []slides.Slide, title, outPath, brandKitID string) (string, error) {
	brand, err := e.brands.ResolveTheme(brandKitID)
	if err != nil {
		return "", WrapError("export", "ExportFile", err)
	}

	if outPath == "" {
		cfg, err := e.configSource.GetConfig()
		if err != nil {
			return "", WrapError("export", "ExportFile", err)
		}
		if err := os.MkdirAll(cfg.ExportDir, 0755); err != nil {
			return "", WrapError("export", "ExportFile", err)
		}
		outPath = filepath.Join(cfg.ExportDir, exportFilename(title))
	}

	artifact, err := e.pptService.ExportDeckToFile(ctx, deck, title, outPath, brand)
	if err != nil {
		return "", WrapError("export", "ExportFile", err)
	}
	e.log(fmt.Sprintf("Exported %d slides to %s (%d skipped blocks)", len(deck), outPath, len(artifact.Skips())))
	return outPath, nil
}

// ExportHistory returns the recorded exports for a deck, newest first.
func (e *ExportFacadeService) ExportHistory(deckID string) ([]database.ExportRecord, error) {
	recs, err := e.exports.ListExports(deckID)
	if err != nil {
		return nil, WrapError("export", "ExportHistory", err)
	}
	return recs, nil
}

func (e *ExportFacadeService) log(msg string) {
	if e.logger != nil {
		e.logger(msg)
	}
}
