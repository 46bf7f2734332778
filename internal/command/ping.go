package command

import (
	"fmt"
	"time"

	"signalmentor/internal/version"
)

type pingCommand struct{}

func init() { Register(&pingCommand{}) }

func (c *pingCommand) Meta() Meta {
	return Meta{
		Name:        "ping",
		Aliases:     []string{"latency", "p"},
		Description: "Check the bot's response time",
		Usage:       "{prefix}ping",
		Category:    "General",
	}
}

func (c *pingCommand) Execute(cctx *Context, args []string) error {
	start := time.Now()
	msgID, err := cctx.Msgr.SendText(cctx.Ctx, cctx.ChatID, "🏓 Pinging...")
	if err != nil {
		return err
	}
	rtt := time.Since(start)

	text := fmt.Sprintf("🏓 Pong!\n\n⏱️ Response time: %dms\n🕒 Bot uptime: %s",
		rtt.Milliseconds(), formatUptime(version.Uptime()))
	return cctx.Msgr.EditText(cctx.Ctx, cctx.ChatID, msgID, text)
}

func formatUptime(d time.Duration) string {
	seconds := int(d.Seconds())
	minutes := seconds / 60
	hours := minutes / 60
	days := hours / 24

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %02dh %02dm %02ds", days, hours%24, minutes%60, seconds%60)
	case hours > 0:
		return fmt.Sprintf("%02dh %02dm %02ds", hours, minutes%60, seconds%60)
	case minutes > 0:
		return fmt.Sprintf("%02dm %02ds", minutes%60, seconds%60)
	default:
		return fmt.Sprintf("%02ds", seconds%60)
	}
}
