package ai

import (
	"context"
	"fmt"
	"log"
	"time"

	"signalmentor/internal/session"
	"signalmentor/internal/storage"
)

// Replies are hard-capped so the persona never sounds like a chatbot
// essay. Structured command intents are exempt.
const maxReplyLength = 100

const (
	// MsgUnavailable is sent when no provider is configured.
	MsgUnavailable = "🟥 AI services are unavailable."
	// MsgProviderDown is sent when the provider errors out.
	MsgProviderDown = "🟥 AI service is currently unavailable."
)

// interactionRecord is the audit entry stored per completion.
type interactionRecord struct {
	UserID    string    `json:"userId"`
	Input     string    `json:"input"`
	Action    string    `json:"action"`
	Output    string    `json:"output"`
	Timestamp time.Time `json:"timestamp"`
}

// Responder runs the AI fallback for free text: it maintains session
// context around every completion and returns a structured Intent.
type Responder struct {
	provider Provider
	sessions *session.Manager
	store    *storage.Storage
}

func NewResponder(provider Provider, sessions *session.Manager, store *storage.Storage) *Responder {
	return &Responder{provider: provider, sessions: sessions, store: store}
}

// Available reports whether a completion provider is configured.
func (r *Responder) Available() bool {
	return r != nil && r.provider != nil
}

// Respond records the user's message in session context, runs a
// completion with the persona prompt and recent history, and returns the
// parsed intent. Provider failures degrade to a fixed reply.
func (r *Responder) Respond(ctx context.Context, userID, text string) Intent {
	r.sessions.RecordInterestSignal(userID, text)

	system := r.sessions.BuildSystemPrompt(userID)
	if history := r.sessions.FormatForPrompt(userID); history != "" {
		system += "\n--- Recent Conversation ---\n" + history + "\n"
	}

	r.sessions.AppendTurn(userID, session.RoleUser, text)

	if r.provider == nil {
		return Intent{Action: ActionReply, Response: MsgUnavailable}
	}

	raw, err := r.provider.Generate(ctx, []Message{
		{Role: "system", Content: system},
		{Role: "user", Content: text},
	})
	if err != nil {
		log.Printf("[ERR] ai: completion for %s: %v", userID, err)
		return Intent{Action: ActionReply, Response: MsgProviderDown}
	}

	intent := ParseIntent(raw)
	if intent.Action == ActionReply {
		intent.Response = TruncateReply(intent.Response)
		r.sessions.AppendTurn(userID, session.RoleAssistant, intent.Response)
	}
	r.logInteraction(userID, text, intent)
	return intent
}

// TruncateReply enforces the reply length cap, counting characters so a
// trailing emoji is never split.
func TruncateReply(text string) string {
	runes := []rune(text)
	if len(runes) <= maxReplyLength {
		return text
	}
	return string(runes[:maxReplyLength-3]) + "..."
}

func (r *Responder) logInteraction(userID, input string, intent Intent) {
	now := time.Now()
	output := intent.Response
	if intent.Action == ActionCommand {
		output = intent.Command + " " + intent.Args
	}
	key := fmt.Sprintf("%s-%d", userID, now.UnixNano())
	r.store.Set(storage.TableAIInteractions, key, interactionRecord{
		UserID:    userID,
		Input:     input,
		Action:    intent.Action,
		Output:    output,
		Timestamp: now,
	})
}
