package convo

import (
	"context"
	"fmt"
	"log"
	"strings"

	"signalmentor/internal/ai"
	"signalmentor/internal/bot"
	"signalmentor/internal/command"
	"signalmentor/internal/config"
	"signalmentor/internal/session"
	"signalmentor/internal/storage"
	"signalmentor/pkg/jobmgr"
)

// Turn is one inbound message, normalized by the transport adapter.
type Turn struct {
	UserID   string
	ChatID   string
	UserName string
	Text     string
	IsGroup  bool
}

// Router decides what handles each inbound message: the stage machine,
// a prefixed command, or the AI responder.
type Router struct {
	machine   *Machine
	registry  *command.Registry
	responder *ai.Responder
	pacer     *Pacer
	msgr      bot.Messenger
	store     *storage.Storage
	sessions  *session.Manager
	cfg       *config.Config
	jobs      *jobmgr.Manager
}

func NewRouter(machine *Machine, registry *command.Registry, responder *ai.Responder, pacer *Pacer, msgr bot.Messenger, store *storage.Storage, sessions *session.Manager, cfg *config.Config, jobs *jobmgr.Manager) *Router {
	return &Router{
		machine:   machine,
		registry:  registry,
		responder: responder,
		pacer:     pacer,
		msgr:      msgr,
		store:     store,
		sessions:  sessions,
		cfg:       cfg,
		jobs:      jobs,
	}
}

// Route handles one dialogue turn. Empty messages are dropped; scripted
// stages consume the message; otherwise prefixed commands dispatch and
// everything else goes to the AI responder.
func (r *Router) Route(ctx context.Context, turn Turn) {
	turn.Text = strings.TrimSpace(turn.Text)
	if turn.Text == "" {
		return
	}

	if r.machine.Run(ctx, turn) {
		return
	}

	log.Printf("[INFO] convo: message from %s (%s): %s", turn.UserName, turn.UserID, preview(turn.Text))
	r.store.TouchActivity(turn.UserID)

	if strings.HasPrefix(turn.Text, r.cfg.Prefix) {
		r.dispatchCommand(ctx, turn, strings.TrimPrefix(turn.Text, r.cfg.Prefix))
		return
	}

	r.fallback(ctx, turn)
	r.store.TouchActivity(turn.UserID)
}

func (r *Router) dispatchCommand(ctx context.Context, turn Turn, raw string) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return
	}
	name := strings.ToLower(fields[0])
	args := fields[1:]

	cmd := r.registry.Get(name)
	if cmd == nil {
		r.sendText(ctx, turn.ChatID, fmt.Sprintf("⚠️ Command %q not found.", name))
		return
	}
	command.Run(r.commandContext(ctx, turn), cmd, args)
}

// fallback answers free text: through the AI responder when one is
// configured, with the fixed pitch otherwise. Structured command intents
// from the responder are validated against the registry; unknown names
// degrade to the fixed pitch.
func (r *Router) fallback(ctx context.Context, turn Turn) {
	if !r.responder.Available() {
		r.sessions.RecordInterestSignal(turn.UserID, turn.Text)
		r.pacer.Hold(ctx, turn.ChatID, bot.PresenceTyping, fallbackDelay)
		r.sendText(ctx, turn.ChatID, msgDefaultFallback)
		return
	}

	intent := r.responder.Respond(ctx, turn.UserID, turn.Text)
	if intent.Action == ai.ActionCommand {
		cmd := r.registry.Get(strings.ToLower(intent.Command))
		if cmd == nil {
			log.Printf("[WARN] convo: responder invoked unknown command %q", intent.Command)
			r.pacer.Hold(ctx, turn.ChatID, bot.PresenceTyping, cannedDelay)
			r.sendText(ctx, turn.ChatID, msgDefaultFallback)
			return
		}
		command.Run(r.commandContext(ctx, turn), cmd, strings.Fields(intent.Args))
		return
	}

	r.pacer.Hold(ctx, turn.ChatID, bot.PresenceTyping, cannedDelay)
	r.sendText(ctx, turn.ChatID, intent.Response)
}

func (r *Router) commandContext(ctx context.Context, turn Turn) *command.Context {
	return &command.Context{
		Ctx:       ctx,
		Msgr:      r.msgr,
		Store:     r.store,
		Sessions:  r.sessions,
		Cfg:       r.cfg,
		Registry:  r.registry,
		Jobs:      r.jobs,
		Responder: r.responder,
		Explainer: r.machine,
		ChatID:    turn.ChatID,
		UserID:    turn.UserID,
		UserName:  turn.UserName,
		IsGroup:   turn.IsGroup,
	}
}

func (r *Router) sendText(ctx context.Context, chatID, text string) {
	if _, err := r.msgr.SendText(ctx, chatID, text); err != nil {
		log.Printf("[WARN] convo: send to %s: %v", chatID, err)
	}
}

func preview(text string) string {
	if len(text) > 50 {
		return text[:50] + "..."
	}
	return text
}
