package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MessageRole identifies the author of a conversation message.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleSystem    MessageRole = "system"
)

// ConversationMessage is one entry in a deck's revision conversation.
// Strategy names the assistant tactic that produced the reply and is
// empty for user messages.
type ConversationMessage struct {
	ID        string      `json:"id"`
	DeckID    string      `json:"deckId"`
	Role      MessageRole `json:"role"`
	Strategy  string      `json:"strategy,omitempty"`
	Content   string      `json:"content"`
	CreatedAt int64       `json:"createdAt"`
}

// MessageService persists deck conversations.
type MessageService struct {
	db *sql.DB
}

// NewMessageService creates a new MessageService instance
func NewMessageService(db *sql.DB) *MessageService {
	return &MessageService{db: db}
}

// AppendMessage stores a message at the end of a deck's conversation.
func (s *MessageService) AppendMessage(msg ConversationMessage) (*ConversationMessage, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	if msg.DeckID == "" {
		return nil, fmt.Errorf("deck id is required")
	}
	if msg.Content == "" {
		return nil, fmt.Errorf("message content is required")
	}
	switch msg.Role {
	case RoleUser, RoleAssistant, RoleSystem:
	default:
		return nil, fmt.Errorf("invalid message role: %q", msg.Role)
	}

	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if msg.CreatedAt == 0 {
		msg.CreatedAt = time.Now().UnixMilli()
	}

	var strategy sql.NullString
	if msg.Strategy != "" {
		strategy = sql.NullString{String: msg.Strategy, Valid: true}
	}

	query := `
		INSERT INTO conversation_messages (id, deck_id, role, strategy, content, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.Exec(query, msg.ID, msg.DeckID, string(msg.Role), strategy, msg.Content, msg.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert message: %w", err)
	}
	return &msg, nil
}

// ListMessages returns a deck's conversation in chronological order.
func (s *MessageService) ListMessages(deckID string) ([]ConversationMessage, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	if deckID == "" {
		return nil, fmt.Errorf("deck id is required")
	}

	query := `
		SELECT id, deck_id, role, strategy, content, created_at
		FROM conversation_messages
		WHERE deck_id = ?
		ORDER BY created_at ASC
	`
	rows, err := s.db.Query(query, deckID)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var messages []ConversationMessage
	for rows.Next() {
		var msg ConversationMessage
		var role string
		var strategy sql.NullString
		if err := rows.Scan(&msg.ID, &msg.DeckID, &role, &strategy, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		msg.Role = MessageRole(role)
		if strategy.Valid {
			msg.Strategy = strategy.String
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// RecentMessages returns up to limit of the newest messages, oldest
// first, for building assistant context windows.
func (s *MessageService) RecentMessages(deckID string, limit int) ([]ConversationMessage, error) {
	all, err := s.ListMessages(deckID)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(all) > limit {
		all = all[len(all)-limit:]
	}
	return all, nil
}

// ClearConversation removes all messages for a deck.
func (s *MessageService) ClearConversation(deckID string) error {
	if s.db == nil {
		return fmt.Errorf("database connection is nil")
	}
	_, err := s.db.Exec("DELETE FROM conversation_messages WHERE deck_id = ?", deckID)
	if err != nil {
		return fmt.Errorf("failed to clear conversation: %w", err)
	}
	return nil
}
