package main

import (
	"context"
	"encoding/json"
	"fmt"

	"deckforge/database"
	"deckforge/slides"
)

// DeckFacadeService wraps the deck store behind validation and
// normalization. Every slide list entering the store has already been
// validated and upgraded to canonical block form.
type DeckFacadeService struct {
	ctx        context.Context
	decks      *database.DeckService
	normalizer *slides.Normalizer
	logger     func(string)
}

// NewDeckFacadeService creates a new DeckFacadeService instance
func NewDeckFacadeService(decks *database.DeckService, logger func(string)) *DeckFacadeService {
	return &DeckFacadeService{
		decks:      decks,
		normalizer: slides.NewNormalizer(),
		logger:     logger,
	}
}

// Name returns the service name
func (d *DeckFacadeService) Name() string {
	return "deck"
}

// Initialize stores the application context
func (d *DeckFacadeService) Initialize(ctx context.Context) error {
	d.ctx = ctx
	return nil
}

// Shutdown closes the deck facade (no-op)
func (d *DeckFacadeService) Shutdown() error {
	return nil
}

// CreateDeck creates an empty deck record in the in_conversation state.
func (d *DeckFacadeService) CreateDeck(title, owner string, meta database.DeckMeta) (*database.DeckRecord, error) {
	rec, err := d.decks.SaveDeck(database.DeckRecord{
		Title: title,
		Owner: owner,
		Meta:  meta,
	})
	if err != nil {
		return nil, WrapError("deck", "CreateDeck", err)
	}
	d.log(fmt.Sprintf("Created deck %s (%q)", rec.ID, rec.Title))
	return rec, nil
}

// SaveDeck validates and normalizes the deck's slides, then persists
// the record. Validation is fail-fast: the first bad slide aborts the
// save and nothing is written.
func (d *DeckFacadeService) SaveDeck(rec database.DeckRecord) (*database.DeckRecord, error) {
	if err := slides.ValidateSlides(rec.Slides); err != nil {
		return nil, WrapError("deck", "SaveDeck", err)
	}
	rec.Slides = d.normalizer.NormalizeSlides(rec.Slides)

	saved, err := d.decks.SaveDeck(rec)
	if err != nil {
		return nil, WrapError("deck", "SaveDeck", err)
	}
	return saved, nil
}

// GetDeck loads a deck record by id.
func (d *DeckFacadeService) GetDeck(id string) (*database.DeckRecord, error) {
	rec, err := d.decks.GetDeck(id)
	if err != nil {
		return nil, WrapError("deck", "GetDeck", err)
	}
	return rec, nil
}

// ListDecks returns all deck records, most recently updated first.
func (d *DeckFacadeService) ListDecks() ([]database.DeckRecord, error) {
	recs, err := d.decks.ListDecks()
	if err != nil {
		return nil, WrapError("deck", "ListDecks", err)
	}
	return recs, nil
}

// DeleteDeck removes a deck together with its conversation and export
// history.
func (d *DeckFacadeService) DeleteDeck(id string) error {
	if err := d.decks.DeleteDeck(id); err != nil {
		return WrapError("deck", "DeleteDeck", err)
	}
	d.log(fmt.Sprintf("Deleted deck %s", id))
	return nil
}

// SetStatus moves a deck to a new lifecycle status.
func (d *DeckFacadeService) SetStatus(id string, status database.DeckStatus) error {
	if err := d.decks.UpdateStatus(id, status); err != nil {
		return WrapError("deck", "SetStatus", err)
	}
	return nil
}

// AddSlideFromTemplate appends a slide built from the named template's
// default blocks and persists the deck.
func (d *DeckFacadeService) AddSlideFromTemplate(deckID, templateID string) (*database.DeckRecord, error) {
	tpl, ok := slides.TemplateByID(templateID)
	if !ok {
		return nil, WrapError("deck", "AddSlideFromTemplate", fmt.Errorf("unknown template %q", templateID))
	}

	rec, err := d.decks.GetDeck(deckID)
	if err != nil {
		return nil, WrapError("deck", "AddSlideFromTemplate", err)
	}

	slide := slides.Slide{
		ID:     d.normalizer.NewID(),
		Layout: tpl.Layout,
		Blocks: tpl.DefaultBlocks(),
	}
	rec.Slides = append(rec.Slides, slide)

	saved, err := d.decks.SaveDeck(*rec)
	if err != nil {
		return nil, WrapError("deck", "AddSlideFromTemplate", err)
	}
	return saved, nil
}

// ImportSlides parses a JSON array of slide records, validating each
// one. Errors carry the offending slide index.
func (d *DeckFacadeService) ImportSlides(data []byte) ([]slides.Slide, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, WrapError("deck", "ImportSlides", fmt.Errorf("deck JSON must be an array of slides: %w", err))
	}

	deck := make([]slides.Slide, 0, len(raws))
	for i, raw := range raws {
		s, err := slides.ParseSlide(raw)
		if err != nil {
			return nil, WrapError("deck", "ImportSlides", fmt.Errorf("slide %d: %w", i, err))
		}
		deck = append(deck, *s)
	}
	return d.normalizer.NormalizeSlides(deck), nil
}

func (d *DeckFacadeService) log(msg string) {
	if d.logger != nil {
		d.logger(msg)
	}
}
