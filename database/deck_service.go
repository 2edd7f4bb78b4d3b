package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"deckforge/slides"
)

// DeckStatus tracks where a deck sits in its production flow.
type DeckStatus string

const (
	StatusInConversation DeckStatus = "in_conversation"
	StatusDraftReady     DeckStatus = "draft_ready"
	StatusIntakeComplete DeckStatus = "intake_complete"
	StatusExportReady    DeckStatus = "export_ready"
)

// OutlineSection is one planned section of a deck.
type OutlineSection struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Status     string `json:"status"`
	SlideCount int    `json:"slideCount"`
}

// DeckMeta carries the intake answers that shape the deck.
type DeckMeta struct {
	Objective  string `json:"objective"`
	Audience   string `json:"audience"`
	Tone       string `json:"tone"`
	BrandKitID string `json:"brandKitId,omitempty"`
}

// DeckRecord is the stored deck: intake metadata, section outline and
// the slide list itself.
type DeckRecord struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Owner     string           `json:"owner"`
	Status    DeckStatus       `json:"status"`
	DueAt     int64            `json:"dueAt,omitempty"`
	Outline   []OutlineSection `json:"outline"`
	Meta      DeckMeta         `json:"meta"`
	Slides    []slides.Slide   `json:"slides"`
	CreatedAt int64            `json:"createdAt"`
	UpdatedAt int64            `json:"updatedAt"`
}

// DeckService provides deck persistence. Outline, meta and slides are
// stored as JSON blobs alongside the scalar columns.
type DeckService struct {
	db *sql.DB
}

// NewDeckService creates a new DeckService instance
func NewDeckService(db *sql.DB) *DeckService {
	return &DeckService{db: db}
}

// SaveDeck inserts or updates a deck. A missing ID gets generated; the
// UpdatedAt timestamp is always refreshed.
func (s *DeckService) SaveDeck(deck DeckRecord) (*DeckRecord, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	if deck.Title == "" {
		return nil, fmt.Errorf("deck title is required")
	}

	if deck.ID == "" {
		deck.ID = uuid.New().String()
	}
	if deck.Status == "" {
		deck.Status = StatusInConversation
	}

	now := time.Now().UnixMilli()
	if deck.CreatedAt == 0 {
		deck.CreatedAt = now
	}
	deck.UpdatedAt = now

	outlineData, err := json.Marshal(deck.Outline)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize outline: %w", err)
	}
	metaData, err := json.Marshal(deck.Meta)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize meta: %w", err)
	}
	slidesData, err := json.Marshal(deck.Slides)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize slides: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var existingID string
	err = tx.QueryRow("SELECT id FROM decks WHERE id = ?", deck.ID).Scan(&existingID)

	if err == sql.ErrNoRows {
		query := `
			INSERT INTO decks (id, title, owner, status, due_at, outline_data, meta_data, slides_data, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`
		_, err = tx.Exec(query, deck.ID, deck.Title, deck.Owner, string(deck.Status), deck.DueAt,
			string(outlineData), string(metaData), string(slidesData), deck.CreatedAt, deck.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to insert deck: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to check existing deck: %w", err)
	} else {
		query := `
			UPDATE decks
			SET title = ?, owner = ?, status = ?, due_at = ?, outline_data = ?, meta_data = ?, slides_data = ?, updated_at = ?
			WHERE id = ?
		`
		_, err = tx.Exec(query, deck.Title, deck.Owner, string(deck.Status), deck.DueAt,
			string(outlineData), string(metaData), string(slidesData), deck.UpdatedAt, deck.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to update deck: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return &deck, nil
}

// GetDeck loads one deck by id.
func (s *DeckService) GetDeck(id string) (*DeckRecord, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	if id == "" {
		return nil, fmt.Errorf("deck id is required")
	}

	query := `
		SELECT id, title, owner, status, due_at, outline_data, meta_data, slides_data, created_at, updated_at
		FROM decks
		WHERE id = ?
	`
	row := s.db.QueryRow(query, id)
	deck, err := scanDeck(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no deck found with id: %s", id)
	} else if err != nil {
		return nil, err
	}
	return deck, nil
}

// ListDecks returns all decks, most recently updated first.
func (s *DeckService) ListDecks() ([]DeckRecord, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	query := `
		SELECT id, title, owner, status, due_at, outline_data, meta_data, slides_data, created_at, updated_at
		FROM decks
		ORDER BY updated_at DESC
	`
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query decks: %w", err)
	}
	defer rows.Close()

	var decks []DeckRecord
	for rows.Next() {
		deck, err := scanDeck(rows)
		if err != nil {
			return nil, err
		}
		decks = append(decks, *deck)
	}
	return decks, rows.Err()
}

// UpdateStatus moves a deck to a new status.
func (s *DeckService) UpdateStatus(id string, status DeckStatus) error {
	if s.db == nil {
		return fmt.Errorf("database connection is nil")
	}
	res, err := s.db.Exec("UPDATE decks SET status = ?, updated_at = ? WHERE id = ?",
		string(status), time.Now().UnixMilli(), id)
	if err != nil {
		return fmt.Errorf("failed to update deck status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("no deck found with id: %s", id)
	}
	return nil
}

// DeleteDeck removes a deck and its conversation.
func (s *DeckService) DeleteDeck(id string) error {
	if s.db == nil {
		return fmt.Errorf("database connection is nil")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM conversation_messages WHERE deck_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete deck messages: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM export_records WHERE deck_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete deck export records: %w", err)
	}
	res, err := tx.Exec("DELETE FROM decks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete deck: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("no deck found with id: %s", id)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDeck(row rowScanner) (*DeckRecord, error) {
	var deck DeckRecord
	var status, outlineData, metaData, slidesData string
	var dueAt sql.NullInt64

	err := row.Scan(&deck.ID, &deck.Title, &deck.Owner, &status, &dueAt,
		&outlineData, &metaData, &slidesData, &deck.CreatedAt, &deck.UpdatedAt)
	if err != nil {
		return nil, err
	}

	deck.Status = DeckStatus(status)
	if dueAt.Valid {
		deck.DueAt = dueAt.Int64
	}
	if err := json.Unmarshal([]byte(outlineData), &deck.Outline); err != nil {
		return nil, fmt.Errorf("failed to deserialize outline: %w", err)
	}
	if err := json.Unmarshal([]byte(metaData), &deck.Meta); err != nil {
		return nil, fmt.Errorf("failed to deserialize meta: %w", err)
	}
	if err := json.Unmarshal([]byte(slidesData), &deck.Slides); err != nil {
		return nil, fmt.Errorf("failed to deserialize slides: %w", err)
	}
	return &deck, nil
}
