package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ExportRecord notes one completed PPT export of a deck.
type ExportRecord struct {
	ID         string `json:"id"`
	DeckID     string `json:"deckId"`
	FilePath   string `json:"filePath"`
	SlideCount int    `json:"slideCount"`
	SkipCount  int    `json:"skipCount"`
	CreatedAt  int64  `json:"createdAt"`
}

// ExportRecordService persists export history.
type ExportRecordService struct {
	db *sql.DB
}

// NewExportRecordService creates a new ExportRecordService instance
func NewExportRecordService(db *sql.DB) *ExportRecordService {
	return &ExportRecordService{db: db}
}

// RecordExport stores a completed export.
func (s *ExportRecordService) RecordExport(rec ExportRecord) (*ExportRecord, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	if rec.DeckID == "" {
		return nil, fmt.Errorf("deck id is required")
	}
	if rec.FilePath == "" {
		return nil, fmt.Errorf("file path is required")
	}

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt == 0 {
		rec.CreatedAt = time.Now().UnixMilli()
	}

	query := `
		INSERT INTO export_records (id, deck_id, file_path, slide_count, skip_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.Exec(query, rec.ID, rec.DeckID, rec.FilePath, rec.SlideCount, rec.SkipCount, rec.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert export record: %w", err)
	}
	return &rec, nil
}

// ListExports returns a deck's export history, newest first.
func (s *ExportRecordService) ListExports(deckID string) ([]ExportRecord, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	query := `
		SELECT id, deck_id, file_path, slide_count, skip_count, created_at
		FROM export_records
		WHERE deck_id = ?
		ORDER BY created_at DESC
	`
	rows, err := s.db.Query(query, deckID)
	if err != nil {
		return nil, fmt.Errorf("failed to query export records: %w", err)
	}
	defer rows.Close()

	var records []ExportRecord
	for rows.Next() {
		var rec ExportRecord
		if err := rows.Scan(&rec.ID, &rec.DeckID, &rec.FilePath, &rec.SlideCount, &rec.SkipCount, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan export record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
