package database

import (
	"database/sql"
	"strings"
	"testing"
	"time"

	"deckforge/slides"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := InitDB(t.TempDir())
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSaveDeck_RequiresTitle(t *testing.T) {
	svc := NewDeckService(openTestDB(t))
	if _, err := svc.SaveDeck(DeckRecord{}); err == nil {
		t.Fatal("expected error for empty title")
	}
}

func TestSaveDeck_FillsDefaults(t *testing.T) {
	svc := NewDeckService(openTestDB(t))
	saved, err := svc.SaveDeck(DeckRecord{Title: "Q3 Review"})
	if err != nil {
		t.Fatalf("SaveDeck: %v", err)
	}
	if saved.ID == "" {
		t.Error("expected generated id")
	}
	if saved.Status != StatusInConversation {
		t.Errorf("status = %q, want %q", saved.Status, StatusInConversation)
	}
	if saved.CreatedAt == 0 || saved.UpdatedAt == 0 {
		t.Error("expected timestamps to be set")
	}
}

func TestSaveDeck_RoundTrip(t *testing.T) {
	svc := NewDeckService(openTestDB(t))
	rec := DeckRecord{
		Title: "Launch Plan",
		Owner: "pat",
		Outline: []OutlineSection{
			{ID: "sec-1", Title: "Market", Status: "drafted", SlideCount: 3},
		},
		Meta: DeckMeta{
			Objective:  "raise a seed round",
			Audience:   "investors",
			Tone:       "confident",
			BrandKitID: "bk-1",
		},
		Slides: []slides.Slide{
			{
				ID:     "slide-1",
				Layout: slides.LayoutContent,
				Blocks: []slides.Block{
					{ID: "title-1", Kind: slides.KindTitle, Content: slides.Text("Market")},
					{ID: "bullets-1", Kind: slides.KindBullet, Content: slides.List("TAM", "SAM")},
				},
			},
		},
	}
	saved, err := svc.SaveDeck(rec)
	if err != nil {
		t.Fatalf("SaveDeck: %v", err)
	}

	got, err := svc.GetDeck(saved.ID)
	if err != nil {
		t.Fatalf("GetDeck: %v", err)
	}
	if got.Title != "Launch Plan" || got.Owner != "pat" {
		t.Errorf("got title %q owner %q", got.Title, got.Owner)
	}
	if got.Meta != rec.Meta {
		t.Errorf("meta = %+v, want %+v", got.Meta, rec.Meta)
	}
	if len(got.Outline) != 1 || got.Outline[0] != rec.Outline[0] {
		t.Errorf("outline = %+v", got.Outline)
	}
	if len(got.Slides) != 1 || len(got.Slides[0].Blocks) != 2 {
		t.Fatalf("slides = %+v", got.Slides)
	}
	if items := got.Slides[0].Blocks[1].Content.Items(); len(items) != 2 || items[0] != "TAM" {
		t.Errorf("bullet items = %v", items)
	}
}

func TestSaveDeck_UpdatesExisting(t *testing.T) {
	svc := NewDeckService(openTestDB(t))
	saved, err := svc.SaveDeck(DeckRecord{Title: "v1"})
	if err != nil {
		t.Fatalf("SaveDeck: %v", err)
	}

	time.Sleep(2 * time.Millisecond)
	saved.Title = "v2"
	updated, err := svc.SaveDeck(*saved)
	if err != nil {
		t.Fatalf("SaveDeck update: %v", err)
	}
	if updated.UpdatedAt <= saved.CreatedAt {
		t.Error("expected UpdatedAt to advance")
	}

	got, err := svc.GetDeck(saved.ID)
	if err != nil {
		t.Fatalf("GetDeck: %v", err)
	}
	if got.Title != "v2" {
		t.Errorf("title = %q, want v2", got.Title)
	}

	all, err := svc.ListDecks()
	if err != nil {
		t.Fatalf("ListDecks: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("expected upsert, got %d decks", len(all))
	}
}

func TestGetDeck_NotFound(t *testing.T) {
	svc := NewDeckService(openTestDB(t))
	_, err := svc.GetDeck("missing")
	if err == nil || !strings.Contains(err.Error(), "no deck found") {
		t.Fatalf("err = %v", err)
	}
}

func TestListDecks_NewestFirst(t *testing.T) {
	svc := NewDeckService(openTestDB(t))
	first, err := svc.SaveDeck(DeckRecord{Title: "older"})
	if err != nil {
		t.Fatalf("SaveDeck: %v", err)
	}
	time.Sleep(2 * time.Millisecond)
	if _, err := svc.SaveDeck(DeckRecord{Title: "newer"}); err != nil {
		t.Fatalf("SaveDeck: %v", err)
	}

	all, err := svc.ListDecks()
	if err != nil {
		t.Fatalf("ListDecks: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("len = %d, want 2", len(all))
	}
	if all[0].Title != "newer" || all[1].ID != first.ID {
		t.Errorf("order = %q, %q", all[0].Title, all[1].Title)
	}
}

func TestUpdateStatus(t *testing.T) {
	svc := NewDeckService(openTestDB(t))
	saved, err := svc.SaveDeck(DeckRecord{Title: "deck"})
	if err != nil {
		t.Fatalf("SaveDeck: %v", err)
	}
	if err := svc.UpdateStatus(saved.ID, StatusExportReady); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	got, err := svc.GetDeck(saved.ID)
	if err != nil {
		t.Fatalf("GetDeck: %v", err)
	}
	if got.Status != StatusExportReady {
		t.Errorf("status = %q", got.Status)
	}

	if err := svc.UpdateStatus("missing", StatusDraftReady); err == nil {
		t.Error("expected error for unknown deck id")
	}
}

func TestDeleteDeck_CascadesConversationAndExports(t *testing.T) {
	db := openTestDB(t)
	decks := NewDeckService(db)
	messages := NewMessageService(db)
	exports := NewExportRecordService(db)

	saved, err := decks.SaveDeck(DeckRecord{Title: "doomed"})
	if err != nil {
		t.Fatalf("SaveDeck: %v", err)
	}
	if _, err := messages.AppendMessage(ConversationMessage{
		DeckID: saved.ID, Role: RoleUser, Content: "hello",
	}); err != nil {
		t.Fatalf("AppendMessage: %v", err)
	}
	if _, err := exports.RecordExport(ExportRecord{
		DeckID: saved.ID, FilePath: "/tmp/doomed.pptx", SlideCount: 1,
	}); err != nil {
		t.Fatalf("RecordExport: %v", err)
	}

	if err := decks.DeleteDeck(saved.ID); err != nil {
		t.Fatalf("DeleteDeck: %v", err)
	}
	if _, err := decks.GetDeck(saved.ID); err == nil {
		t.Error("expected deck to be gone")
	}
	msgs, err := messages.ListMessages(saved.ID)
	if err != nil {
		t.Fatalf("ListMessages: %v", err)
	}
	if len(msgs) != 0 {
		t.Errorf("messages survived deletion: %d", len(msgs))
	}
	recs, err := exports.ListExports(saved.ID)
	if err != nil {
		t.Fatalf("ListExports: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("export records survived deletion: %d", len(recs))
	}

	if err := decks.DeleteDeck("missing"); err == nil {
		t.Error("expected error deleting unknown deck")
	}
}
