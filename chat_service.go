package main

import (
	"context"
	"fmt"

	"deckforge/agent"
	"deckforge/database"
)

// transcriptFetchLimit is how much history the facade hands to the
// assistant; the assistant applies its own smaller prompt window.
const transcriptFetchLimit = 20

// ChatService drives the deck conversation loop: persist the user's
// message, generate an assistant reply from the transcript, persist
// the reply.
type ChatService struct {
	ctx       context.Context
	messages  *database.MessageService
	decks     *database.DeckService
	assistant *agent.AssistantService
	logger    func(string)
}

// NewChatService creates a new ChatService instance
func NewChatService(
	messages *database.MessageService,
	decks *database.DeckService,
	assistant *agent.AssistantService,
	logger func(string),
) *ChatService {
	return &ChatService{
		messages:  messages,
		decks:     decks,
		assistant: assistant,
		logger:    logger,
	}
}

// Name returns the service name
func (c *ChatService) Name() string {
	return "chat"
}

// Initialize stores the application context
func (c *ChatService) Initialize(ctx context.Context) error {
	c.ctx = ctx
	return nil
}

// Shutdown closes the chat service (no-op)
func (c *ChatService) Shutdown() error {
	return nil
}

// SendMessage appends the user's message to the deck conversation and
// returns the generated assistant reply, already persisted.
func (c *ChatService) SendMessage(ctx context.Context, deckID, content string) (*database.ConversationMessage, error) {
	rec, err := c.decks.GetDeck(deckID)
	if err != nil {
		return nil, WrapError("chat", "SendMessage", err)
	}

	if _, err := c.messages.AppendMessage(database.ConversationMessage{
		DeckID:  deckID,
		Role:    database.RoleUser,
		Content: content,
	}); err != nil {
		return nil, WrapError("chat", "SendMessage", err)
	}

	transcript, err := c.messages.RecentMessages(deckID, transcriptFetchLimit)
	if err != nil {
		return nil, WrapError("chat", "SendMessage", err)
	}

	reply := c.assistant.GenerateReply(ctx, agent.ReplyInput{
		DeckTitle:         rec.Title,
		DeckObjective:     rec.Meta.Objective,
		LatestUserMessage: content,
		Transcript:        transcript,
	})
	reply.DeckID = deckID

	saved, err := c.messages.AppendMessage(reply)
	if err != nil {
		return nil, WrapError("chat", "SendMessage", err)
	}
	c.log(fmt.Sprintf("Deck %s: assistant replied via %q", deckID, saved.Strategy))
	return saved, nil
}

// Transcript returns the full conversation for a deck in order.
func (c *ChatService) Transcript(deckID string) ([]database.ConversationMessage, error) {
	msgs, err := c.messages.ListMessages(deckID)
	if err != nil {
		return nil, WrapError("chat", "Transcript", err)
	}
	return msgs, nil
}

// ClearConversation wipes a deck's transcript.
func (c *ChatService) ClearConversation(deckID string) error {
	if err := c.messages.ClearConversation(deckID); err != nil {
		return WrapError("chat", "ClearConversation", err)
	}
	return nil
}

func (c *ChatService) log(msg string) {
	if c.logger != nil {
		c.logger(msg)
	}
}
