package discord

import (
	"context"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"signalmentor/internal/ai"
	"signalmentor/internal/command"
	"signalmentor/internal/config"
	"signalmentor/internal/convo"
	"signalmentor/internal/session"
	"signalmentor/internal/status"
	"signalmentor/internal/storage"
	"signalmentor/pkg/jobmgr"
)

// Bot wires the Discord session to the conversation router.
type Bot struct {
	dg       *discordgo.Session
	cfg      *config.Config
	store    *storage.Storage
	sessions *session.Manager
	router   *convo.Router
	status   *status.Status
}

// StartBot connects to Discord and blocks until ctx is cancelled. In-flight
// turns may finish or be abandoned; the transport stops gracefully.
func StartBot(ctx context.Context, cfg *config.Config, store *storage.Storage, sessions *session.Manager, st *status.Status) error {
	dg, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	msgr := NewMessenger(dg)
	pacer := convo.NewPacer(msgr)
	machine := convo.NewMachine(msgr, store, sessions, pacer, cfg, cfg.RandomSeed)
	responder := ai.NewResponder(ai.DefaultProvider(cfg), sessions, store)
	jobs := jobmgr.NewManager(func(msg string) {
		log.Println("[INFO] job:", msg)
	})

	b := &Bot{
		dg:       dg,
		cfg:      cfg,
		store:    store,
		sessions: sessions,
		router:   convo.NewRouter(machine, command.DefaultRegistry, responder, pacer, msgr, store, sessions, cfg, jobs),
		status:   st,
	}

	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent

	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onMessageCreate)
	dg.AddHandler(b.onGuildCreate)
	dg.AddHandler(b.onGuildDelete)
	dg.AddHandler(b.onGuildMemberAdd)
	dg.AddHandler(b.onGuildMemberRemove)

	if err := dg.Open(); err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	defer dg.Close()

	<-ctx.Done()
	log.Println("[INFO] ❎ Shutdown signal received. Cleaning up...")
	b.status.SetDisconnected()
	return nil
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.status.SetConnected(r.User.Username)
	log.Printf("[INFO] ✅ Bot %v is running.", r.User.Username)
}

// onMessageCreate feeds one inbound message to the router. Each turn runs
// in its own goroutine so a long scripted sequence for one user never
// blocks intake for another.
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.ID == s.State.User.ID || m.Author.Bot {
		return
	}

	b.store.UpsertContact(storage.Contact{
		ID:       m.Author.ID,
		Name:     displayName(m.Author),
		Username: m.Author.Username,
		IsBot:    m.Author.Bot,
	})

	turn := convo.Turn{
		UserID:   m.Author.ID,
		ChatID:   m.ChannelID,
		UserName: displayName(m.Author),
		Text:     m.Content,
		IsGroup:  m.GuildID != "",
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[ERR] discord: panic handling message from %s: %v", turn.UserID, r)
			}
		}()
		b.router.Route(context.Background(), turn)
	}()
}

func displayName(u *discordgo.User) string {
	if u.GlobalName != "" {
		return u.GlobalName
	}
	return u.Username
}
