package command

import "fmt"

type myidCommand struct{}

func init() { Register(&myidCommand{}) }

func (c *myidCommand) Meta() Meta {
	return Meta{
		Name:        "myid",
		Aliases:     []string{"uid", "userid", "id"},
		Description: "Shows your user ID",
		Usage:       "{prefix}myid",
		Category:    "General",
	}
}

func (c *myidCommand) Execute(cctx *Context, args []string) error {
	return cctx.Reply(fmt.Sprintf(
		"📋 **YOUR USER ID**\n\n👤 Name: %s\n🆔 User ID: `%s`\n\nℹ️ Copy this ID when requested during registration.",
		cctx.UserName, cctx.UserID))
}
