package discord

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
	embed "github.com/clinet/discordgo-embed"

	"signalmentor/internal/storage"
)

const embedColor = 0x9B59B6

// Configurable event-message settings, read from the config table.
const (
	settingWelcomeMessage = "groupWelcomeMessage"
	settingGoodbyeMessage = "groupGoodbyeMessage"
	settingShowGoodbye    = "showGroupGoodbyeMessage"
)

func (b *Bot) onGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	log.Printf("[INFO] Bot added to guild: %s (%s)", g.Guild.Name, g.Guild.ID)
	b.store.UpsertGroup(storage.Group{ID: g.Guild.ID, Name: g.Guild.Name, ChannelID: g.Guild.SystemChannelID})

	if g.Guild.SystemChannelID == "" {
		return
	}
	hello := embed.NewEmbed().
		SetColor(embedColor).
		SetDescription(fmt.Sprintf("👋 Hello everyone! I'm your trading mentor assistant. Use `%shelp` to see what I can do!", b.cfg.Prefix))
	if _, err := s.ChannelMessageSendEmbed(g.Guild.SystemChannelID, hello.MessageEmbed); err != nil {
		log.Printf("[WARN] discord: guild hello: %v", err)
	}
}

func (b *Bot) onGuildDelete(s *discordgo.Session, g *discordgo.GuildDelete) {
	log.Printf("[INFO] Bot removed from guild: %s", g.ID)
	b.store.MarkGroupLeft(g.ID)
}

// onGuildMemberAdd records the contact, flags their session as having
// joined the group, and greets them.
func (b *Bot) onGuildMemberAdd(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
	if m.User == nil || m.User.Bot {
		return
	}

	b.store.UpsertContact(storage.Contact{
		ID:       m.User.ID,
		Name:     displayName(m.User),
		Username: m.User.Username,
	})
	b.sessions.MarkJoinedGroup(m.User.ID, true)

	guild, err := s.State.Guild(m.GuildID)
	if err != nil || guild.SystemChannelID == "" {
		return
	}

	welcome := ""
	if !b.store.Setting(settingWelcomeMessage, &welcome) || welcome == "" {
		welcome = fmt.Sprintf("👋 Welcome to %s, %s! This is a trading group where you can learn how to make money online. Feel free to introduce yourself!",
			guild.Name, displayName(m.User))
	}

	msg := embed.NewEmbed().SetColor(embedColor).SetDescription(welcome)
	if _, err := s.ChannelMessageSendEmbed(guild.SystemChannelID, msg.MessageEmbed); err != nil {
		log.Printf("[WARN] discord: welcome message: %v", err)
	}
}

// onGuildMemberRemove says goodbye when enabled and clears the session's
// joined flag.
func (b *Bot) onGuildMemberRemove(s *discordgo.Session, m *discordgo.GuildMemberRemove) {
	if m.User == nil || m.User.Bot {
		return
	}

	b.sessions.MarkJoinedGroup(m.User.ID, false)

	show := true
	b.store.Setting(settingShowGoodbye, &show)
	if !show {
		return
	}

	guild, err := s.State.Guild(m.GuildID)
	if err != nil || guild.SystemChannelID == "" {
		return
	}

	goodbye := ""
	if !b.store.Setting(settingGoodbyeMessage, &goodbye) || goodbye == "" {
		goodbye = fmt.Sprintf("👋 %s has left the group. We hope to see you again soon!", displayName(m.User))
	}
	if _, err := s.ChannelMessageSend(guild.SystemChannelID, goodbye); err != nil {
		log.Printf("[WARN] discord: goodbye message: %v", err)
	}
}
