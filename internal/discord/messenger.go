// Package discord adapts the conversation engine to Discord: a Messenger
// over discordgo and the event wiring that feeds inbound messages to the
// router.
package discord

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bwmarrin/discordgo"

	"signalmentor/internal/bot"
)

// Messenger implements bot.Messenger over a discordgo session. Chat IDs
// are Discord channel IDs; direct messages use the DM channel resolved
// lazily per user and cached for the life of the session.
type Messenger struct {
	dg *discordgo.Session

	mu         sync.Mutex
	dmChannels map[string]string
}

func NewMessenger(dg *discordgo.Session) *Messenger {
	return &Messenger{
		dg:         dg,
		dmChannels: make(map[string]string),
	}
}

func (m *Messenger) SendText(ctx context.Context, chatID, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	msg, err := m.dg.ChannelMessageSend(chatID, text)
	if err != nil {
		return "", fmt.Errorf("send text: %w", err)
	}
	return msg.ID, nil
}

func (m *Messenger) SendDirect(ctx context.Context, userID, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	chatID, err := m.dmChannel(userID)
	if err != nil {
		return "", err
	}
	return m.SendText(ctx, chatID, text)
}

// dmChannel resolves and caches the DM channel for a user.
func (m *Messenger) dmChannel(userID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id, ok := m.dmChannels[userID]; ok {
		return id, nil
	}
	ch, err := m.dg.UserChannelCreate(userID)
	if err != nil {
		return "", fmt.Errorf("dm channel for %s: %w", userID, err)
	}
	m.dmChannels[userID] = ch.ID
	return ch.ID, nil
}

func (m *Messenger) SendVoice(ctx context.Context, chatID, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open voice note: %w", err)
	}
	defer f.Close()

	if _, err := m.dg.ChannelFileSend(chatID, filepath.Base(path), f); err != nil {
		return fmt.Errorf("send voice: %w", err)
	}
	return nil
}

func (m *Messenger) SendVideo(ctx context.Context, chatID, path, caption string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open video: %w", err)
	}
	defer f.Close()

	_, err = m.dg.ChannelMessageSendComplex(chatID, &discordgo.MessageSend{
		Content: caption,
		Files: []*discordgo.File{{
			Name:   filepath.Base(path),
			Reader: f,
		}},
	})
	if err != nil {
		return fmt.Errorf("send video: %w", err)
	}
	return nil
}

// SendPresence maps every presence kind onto Discord's typing indicator,
// the only composing signal the transport has.
func (m *Messenger) SendPresence(ctx context.Context, chatID string, kind bot.Presence) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.dg.ChannelTyping(chatID); err != nil {
		return fmt.Errorf("send presence: %w", err)
	}
	return nil
}

func (m *Messenger) EditText(ctx context.Context, chatID, messageID, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := m.dg.ChannelMessageEdit(chatID, messageID, text); err != nil {
		return fmt.Errorf("edit text: %w", err)
	}
	return nil
}
