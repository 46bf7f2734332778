// Package command provides the prefixed-command surface: a registry of
// named commands with per-command access policy, and the built-in command
// set. Transport dispatch stays in the conversation router; commands only
// see a Context.
package command

import (
	"context"

	"signalmentor/internal/ai"
	"signalmentor/internal/bot"
	"signalmentor/internal/config"
	"signalmentor/internal/session"
	"signalmentor/internal/storage"
	"signalmentor/pkg/jobmgr"
)

// Meta describes a command for help output and access control.
type Meta struct {
	Name        string
	Aliases     []string
	Description string
	Usage       string
	Category    string

	GroupOnly   bool
	PrivateOnly bool
	ModsOnly    bool
}

// Explainer is the hook into the scripted trading flow.
type Explainer interface {
	// BeginTradingPitch parks the user so their next agreement starts
	// the trading explainer sequence.
	BeginTradingPitch(userID string)
}

// Context carries everything a command handler can touch for one
// invocation.
type Context struct {
	Ctx      context.Context
	Msgr     bot.Messenger
	Store    *storage.Storage
	Sessions *session.Manager
	Cfg      *config.Config
	Registry *Registry
	Jobs     *jobmgr.Manager

	Responder *ai.Responder
	Explainer Explainer

	ChatID   string
	UserID   string
	UserName string
	IsGroup  bool
}

// Reply sends text back to the invoking chat.
func (c *Context) Reply(text string) error {
	_, err := c.Msgr.SendText(c.Ctx, c.ChatID, text)
	return err
}

// Command is the universal contract: identity plus execution. Access
// policy lives in Meta and is enforced by Run, not by each handler.
type Command interface {
	Meta() Meta
	Execute(cctx *Context, args []string) error
}
