package command

import "log"

// Access-denial replies.
const (
	msgGroupOnly   = "⚠️ This command can only be used in groups."
	msgPrivateOnly = "⚠️ This command can only be used in private chats."
	msgModsOnly    = "⚠️ This command can only be used by moderators."
	msgExecFailed  = "❌ An error occurred while executing this command."
)

// Run enforces the command's access policy, logs the invocation, and
// executes it. Handler errors are logged and answered with a generic
// failure message; they never propagate.
func Run(cctx *Context, c Command, args []string) {
	meta := c.Meta()

	switch {
	case meta.GroupOnly && !cctx.IsGroup:
		cctx.Reply(msgGroupOnly)
		return
	case meta.PrivateOnly && cctx.IsGroup:
		cctx.Reply(msgPrivateOnly)
		return
	case meta.ModsOnly && !cctx.Cfg.IsMod(cctx.UserID):
		cctx.Reply(msgModsOnly)
		return
	}

	log.Printf("[INFO] command: /%s by %s (%s)", meta.Name, cctx.UserName, cctx.UserID)
	if err := c.Execute(cctx, args); err != nil {
		log.Printf("[ERR] command: /%s: %v", meta.Name, err)
		cctx.Reply(msgExecFailed)
	}
}

// Visible reports whether c should appear in help output for this caller.
func Visible(cctx *Context, c Command) bool {
	meta := c.Meta()
	if meta.ModsOnly && !cctx.Cfg.IsMod(cctx.UserID) {
		return false
	}
	return true
}
