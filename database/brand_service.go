package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"deckforge/theme"
)

// BrandTone captures narrative voice guidance for the assistant.
type BrandTone struct {
	Voice    string   `json:"voice"`
	Keywords []string `json:"keywords"`
}

// BrandKit is a stored brand: colors, fonts, tone and logo.
type BrandKit struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	PrimaryColor   string    `json:"primaryColor"`
	SecondaryColor string    `json:"secondaryColor"`
	AccentColor    string    `json:"accentColor,omitempty"`
	HeadingFont    string    `json:"headingFont"`
	BodyFont       string    `json:"bodyFont"`
	Tone           BrandTone `json:"tone"`
	LogoURL        string    `json:"logoUrl,omitempty"`
	UpdatedAt      int64     `json:"updatedAt"`
}

// Theme resolves the kit into a render-ready brand theme.
func (b *BrandKit) Theme() *theme.BrandTheme {
	if b == nil {
		return theme.Default()
	}
	return theme.New(b.PrimaryColor, b.SecondaryColor, b.AccentColor, b.HeadingFont, b.BodyFont, b.LogoURL)
}

// BrandService provides brand kit persistence.
type BrandService struct {
	db *sql.DB
}

// NewBrandService creates a new BrandService instance
func NewBrandService(db *sql.DB) *BrandService {
	return &BrandService{db: db}
}

// SaveBrandKit inserts or updates a brand kit.
func (s *BrandService) SaveBrandKit(kit BrandKit) (*BrandKit, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	if kit.Name == "" {
		return nil, fmt.Errorf("brand kit name is required")
	}
	if kit.PrimaryColor == "" || kit.SecondaryColor == "" {
		return nil, fmt.Errorf("primary and secondary colors are required")
	}

	if kit.ID == "" {
		kit.ID = uuid.New().String()
	}
	if kit.HeadingFont == "" {
		kit.HeadingFont = "Inter"
	}
	if kit.BodyFont == "" {
		kit.BodyFont = "Inter"
	}
	kit.UpdatedAt = time.Now().UnixMilli()

	toneData, err := json.Marshal(kit.Tone)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize tone: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var existingID string
	err = tx.QueryRow("SELECT id FROM brand_kits WHERE id = ?", kit.ID).Scan(&existingID)

	if err == sql.ErrNoRows {
		query := `
			INSERT INTO brand_kits (id, name, primary_color, secondary_color, accent_color, heading_font, body_font, tone_data, logo_url, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`
		_, err = tx.Exec(query, kit.ID, kit.Name, kit.PrimaryColor, kit.SecondaryColor, kit.AccentColor,
			kit.HeadingFont, kit.BodyFont, string(toneData), kit.LogoURL, kit.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to insert brand kit: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to check existing brand kit: %w", err)
	} else {
		query := `
			UPDATE brand_kits
			SET name = ?, primary_color = ?, secondary_color = ?, accent_color = ?, heading_font = ?, body_font = ?, tone_data = ?, logo_url = ?, updated_at = ?
			WHERE id = ?
		`
		_, err = tx.Exec(query, kit.Name, kit.PrimaryColor, kit.SecondaryColor, kit.AccentColor,
			kit.HeadingFont, kit.BodyFont, string(toneData), kit.LogoURL, kit.UpdatedAt, kit.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to update brand kit: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return &kit, nil
}

// GetBrandKit loads one brand kit by id.
func (s *BrandService) GetBrandKit(id string) (*BrandKit, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	if id == "" {
		return nil, fmt.Errorf("brand kit id is required")
	}

	query := `
		SELECT id, name, primary_color, secondary_color, accent_color, heading_font, body_font, tone_data, logo_url, updated_at
		FROM brand_kits
		WHERE id = ?
	`
	kit, err := scanBrandKit(s.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no brand kit found with id: %s", id)
	} else if err != nil {
		return nil, err
	}
	return kit, nil
}

// ListBrandKits returns all brand kits, most recently updated first.
func (s *BrandService) ListBrandKits() ([]BrandKit, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	query := `
		SELECT id, name, primary_color, secondary_color, accent_color, heading_font, body_font, tone_data, logo_url, updated_at
		FROM brand_kits
		ORDER BY updated_at DESC
	`
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query brand kits: %w", err)
	}
	defer rows.Close()

	var kits []BrandKit
	for rows.Next() {
		kit, err := scanBrandKit(rows)
		if err != nil {
			return nil, err
		}
		kits = append(kits, *kit)
	}
	return kits, rows.Err()
}

// DeleteBrandKit removes a brand kit.
func (s *BrandService) DeleteBrandKit(id string) error {
	if s.db == nil {
		return fmt.Errorf("database connection is nil")
	}
	res, err := s.db.Exec("DELETE FROM brand_kits WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete brand kit: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("no brand kit found with id: %s", id)
	}
	return nil
}

func scanBrandKit(row rowScanner) (*BrandKit, error) {
	var kit BrandKit
	var toneData string

	err := row.Scan(&kit.ID, &kit.Name, &kit.PrimaryColor, &kit.SecondaryColor, &kit.AccentColor,
		&kit.HeadingFont, &kit.BodyFont, &toneData, &kit.LogoURL, &kit.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(toneData), &kit.Tone); err != nil {
		return nil, fmt.Errorf("failed to deserialize tone: %w", err)
	}
	return &kit, nil
}
