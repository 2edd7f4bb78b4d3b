// Package agent hosts the conversational copilot that helps users
// revise decks. Replies come from an LLM when one is configured and
// fall back to canned strategy templates otherwise, so the product
// works without an API key.
package agent

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"

	"deckforge/database"
	"deckforge/logger"
)

// transcriptWindow bounds how much history is replayed to the model.
const transcriptWindow = 8

const systemPrompt = "You are DeckForge, an executive presentation copilot. " +
	"Respond with concise, actionable guidance that references storyline strategy and next steps. " +
	"Always keep tone professional."

// strategy is one canned reply family used by the mock path.
type strategy struct {
	name      string
	templates []string
}

var strategies = []strategy{
	{
		name: "Narrative arc update",
		templates: []string{
			`I recommend reframing {section} as "{hook}" so we can connect the metrics to executive priorities. Shall I draft the slide now?`,
			`I can introduce a two-slide vignette covering {section}. Would you prefer a data visualization or a narrative timeline?`,
		},
	},
	{
		name: "Tone alignment",
		templates: []string{
			`Understood on the tone shift. I will soften the phrasing in {section} and add a closer with two direct asks.`,
			`Noted. I will rewrite those slides to feel more {tone} while keeping the proof points intact.`,
		},
	},
	{
		name: "Data request",
		templates: []string{
			`To make the story credible, I need the latest value for {metric}. Paste it here or tag a data source to sync automatically.`,
			`I'm missing the updated {metric}. Once you provide it I will refresh the chart and speaker notes.`,
		},
	},
}

// ReplyInput is the context for one assistant turn.
type ReplyInput struct {
	DeckTitle         string
	DeckObjective     string
	LatestUserMessage string
	Transcript        []database.ConversationMessage
}

// AssistantService generates assistant replies. The random source and
// id generator are injectable so tests get deterministic output.
type AssistantService struct {
	chatModel model.ChatModel
	rng       *rand.Rand
	newID     func() string
	logger    *logger.Logger
}

// NewAssistantService creates an assistant backed by the given chat
// model. A nil model selects the mock strategies exclusively.
func NewAssistantService(chatModel model.ChatModel, log *logger.Logger) *AssistantService {
	return &AssistantService{
		chatModel: chatModel,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		newID:     func() string { return uuid.New().String() },
		logger:    log,
	}
}

// WithRand replaces the random source. Intended for tests.
func (s *AssistantService) WithRand(rng *rand.Rand) *AssistantService {
	s.rng = rng
	return s
}

// WithIDGenerator replaces the message id generator. Intended for tests.
func (s *AssistantService) WithIDGenerator(f func() string) *AssistantService {
	s.newID = f
	return s
}

// GenerateReply produces the next assistant message for a deck
// conversation. LLM failures degrade to the mock reply, never to an
// error: the conversation must always move forward.
func (s *AssistantService) GenerateReply(ctx context.Context, input ReplyInput) database.ConversationMessage {
	if s.chatModel == nil {
		return s.mockReply(input)
	}

	content, err := s.invokeModel(ctx, input)
	if err != nil || strings.TrimSpace(content) == "" {
		if err != nil {
			s.logf("LLM generation failed, using mock response: %v", err)
		}
		return s.mockReply(input)
	}

	return database.ConversationMessage{
		ID:        s.newID(),
		Role:      database.RoleAssistant,
		Strategy:  "LLM response",
		Content:   strings.TrimSpace(content),
		CreatedAt: time.Now().UnixMilli(),
	}
}

// mockReply fills a random strategy template with conversation
// context. The placeholders degrade to generic phrases when the
// transcript offers nothing better.
func (s *AssistantService) mockReply(input ReplyInput) database.ConversationMessage {
	choice := strategies[s.rng.Intn(len(strategies))]
	template := choice.templates[s.rng.Intn(len(choice.templates))]

	section := "the current section"
	if n := len(input.Transcript); n > 0 && input.Transcript[n-1].Strategy != "" {
		section = input.Transcript[n-1].Strategy
	}

	msg := template
	msg = strings.Replace(msg, "{section}", section, 1)
	msg = strings.Replace(msg, "{metric}", "the KPI you need featured", 1)
	msg = strings.Replace(msg, "{hook}", "Strategic outlook", 1)
	msg = strings.Replace(msg, "{tone}", "executive confident", 1)

	return database.ConversationMessage{
		ID:        s.newID(),
		Role:      database.RoleAssistant,
		Strategy:  choice.name,
		Content:   msg,
		CreatedAt: time.Now().UnixMilli(),
	}
}

// invokeModel runs a single-turn chain over the chat model with the
// deck context and a bounded transcript window.
func (s *AssistantService) invokeModel(ctx context.Context, input ReplyInput) (string, error) {
	chain := compose.NewChain[[]*schema.Message, *schema.Message]()
	chain.AppendChatModel(s.chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to compile assistant chain: %w", err)
	}

	messages := []*schema.Message{
		{Role: schema.System, Content: systemPrompt},
		{Role: schema.User, Content: fmt.Sprintf("Deck title: %s\nObjective: %s", input.DeckTitle, input.DeckObjective)},
	}

	transcript := input.Transcript
	if len(transcript) > transcriptWindow {
		transcript = transcript[len(transcript)-transcriptWindow:]
	}
	for _, m := range transcript {
		role := schema.User
		switch m.Role {
		case database.RoleAssistant:
			role = schema.Assistant
		case database.RoleSystem:
			role = schema.System
		}
		messages = append(messages, &schema.Message{Role: role, Content: m.Content})
	}
	messages = append(messages, &schema.Message{Role: schema.User, Content: input.LatestUserMessage})

	resp, err := runnable.Invoke(ctx, messages)
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

func (s *AssistantService) logf(format string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Logf(format, args...)
	}
}
