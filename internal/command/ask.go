package command

import (
	"strings"

	"signalmentor/internal/ai"
	"signalmentor/internal/bot"
)

type askCommand struct{}

func init() { Register(&askCommand{}) }

func (c *askCommand) Meta() Meta {
	return Meta{
		Name:        "ai",
		Aliases:     []string{"ask", "cohere"},
		Description: "Ask the AI a question",
		Usage:       "{prefix}ai <question>",
		Category:    "General",
	}
}

func (c *askCommand) Execute(cctx *Context, args []string) error {
	question := strings.TrimSpace(strings.Join(args, " "))
	if question == "" {
		return cctx.Reply("⚠️ Please provide a question.")
	}

	cctx.Msgr.SendPresence(cctx.Ctx, cctx.ChatID, bot.PresenceTyping)

	intent := cctx.Responder.Respond(cctx.Ctx, cctx.UserID, question)
	if intent.Action == ai.ActionReply {
		return cctx.Reply(intent.Response)
	}
	return cctx.Reply("I'm not sure how to respond to that. Can you try asking in a different way?")
}
