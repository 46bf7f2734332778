package command

import (
	"fmt"
	"strings"
	"time"
)

// setting names in the config table.
const (
	settingGroupLink        = "officialGroupLink"
	settingGroupLinkUpdated = "groupLinkLastUpdated"
)

type grouplinkCommand struct{}

func init() { Register(&grouplinkCommand{}) }

func (c *grouplinkCommand) Meta() Meta {
	return Meta{
		Name:        "grouplink",
		Aliases:     []string{"group", "invite"},
		Description: "Get the official VIP group link",
		Usage:       "{prefix}grouplink",
		Category:    "General",
	}
}

func (c *grouplinkCommand) Execute(cctx *Context, args []string) error {
	var link string
	if !cctx.Store.Setting(settingGroupLink, &link) || link == "" {
		return cctx.Reply(fmt.Sprintf(
			"Hi %s! Group links are now sent directly by the admin. Please continue chatting with me for more information about trading opportunities.",
			cctx.UserName))
	}
	return cctx.Reply("🔗 Here is the official VIP group link:\n" + link)
}

type setgrouplinkCommand struct{}

func init() { Register(&setgrouplinkCommand{}) }

func (c *setgrouplinkCommand) Meta() Meta {
	return Meta{
		Name:        "setgrouplink",
		Aliases:     []string{"setgroup", "setlink"},
		Description: "Set the official group link",
		Usage:       "{prefix}setgrouplink <link>",
		Category:    "Dev",
		ModsOnly:    true,
	}
}

func (c *setgrouplinkCommand) Execute(cctx *Context, args []string) error {
	link := strings.TrimSpace(strings.Join(args, " "))
	if link == "" {
		return cctx.Reply("⚠️ Please provide a group link.")
	}
	if !strings.HasPrefix(link, "https://") {
		return cctx.Reply("⚠️ Invalid group link. It should start with https://")
	}

	cctx.Store.SetSetting(settingGroupLink, link)
	cctx.Store.SetSetting(settingGroupLinkUpdated, time.Now())

	return cctx.Reply("✅ Official group link has been set to:\n" + link)
}
