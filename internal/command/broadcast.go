package command

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"signalmentor/internal/storage"
)

type broadcastCommand struct{}

func init() { Register(&broadcastCommand{}) }

func (c *broadcastCommand) Meta() Meta {
	return Meta{
		Name:        "broadcast",
		Aliases:     []string{"bcast", "announce"},
		Description: "Send a message to all users and groups",
		Usage:       "{prefix}broadcast <message>",
		Category:    "Dev",
		ModsOnly:    true,
	}
}

func (c *broadcastCommand) Execute(cctx *Context, args []string) error {
	message := strings.TrimSpace(strings.Join(args, " "))
	if message == "" {
		return cctx.Reply("⚠️ Please provide a message to broadcast.")
	}

	body := "📢 **ANNOUNCEMENT**\n\n" + message + "\n\n_Sent by admin_"

	// Capture the dependencies; the job outlives this invocation's context.
	msgr := cctx.Msgr
	store := cctx.Store
	senderID := cctx.UserID
	replyChat := cctx.ChatID

	err := cctx.Jobs.StartAsync("broadcast", func(ctx context.Context) error {
		success, failed := 0, 0

		for _, id := range store.AllContactIDs() {
			var contact storage.Contact
			if store.Get(storage.TableContacts, id, &contact) && (contact.IsBot || contact.ID == senderID) {
				continue
			}
			if _, err := msgr.SendDirect(ctx, id, body); err != nil {
				log.Printf("[WARN] broadcast: user %s: %v", id, err)
				failed++
			} else {
				success++
			}
			// Gentle pacing so the transport doesn't throttle us.
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(100 * time.Millisecond):
			}
		}

		// Groups are delivered to their recorded announcement channel;
		// the group ID itself is not addressable.
		for _, id := range store.AllGroupIDs() {
			var group storage.Group
			if !store.Get(storage.TableGroups, id, &group) || !group.Active || group.ChannelID == "" {
				continue
			}
			if _, err := msgr.SendText(ctx, group.ChannelID, body); err != nil {
				log.Printf("[WARN] broadcast: group %s: %v", id, err)
				failed++
			} else {
				success++
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(100 * time.Millisecond):
			}
		}

		summary := fmt.Sprintf("✅ Broadcast complete!\n\nSuccessfully sent to: %d\nFailed: %d", success, failed)
		if _, err := msgr.SendText(ctx, replyChat, summary); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return cctx.Reply("⚠️ A broadcast is already running.")
	}

	return cctx.Reply("🚀 Broadcasting message...")
}
