package command

import (
	"fmt"
	"strings"

	"signalmentor/internal/version"
)

type helpCommand struct{}

func init() { Register(&helpCommand{}) }

func (c *helpCommand) Meta() Meta {
	return Meta{
		Name:        "help",
		Aliases:     []string{"menu", "commands"},
		Description: "Displays the list of commands or info about a specific command",
		Usage:       "{prefix}help [command]",
		Category:    "General",
	}
}

func (c *helpCommand) Execute(cctx *Context, args []string) error {
	prefix := cctx.Cfg.Prefix

	if len(args) > 0 {
		name := strings.ToLower(args[0])
		target := cctx.Registry.Get(name)
		if target == nil {
			return cctx.Reply(fmt.Sprintf("⚠️ Command %q not found.", name))
		}
		return cctx.Reply(describeCommand(target.Meta(), prefix))
	}

	// Group visible commands by category.
	byCategory := map[string][]Meta{}
	var order []string
	total := 0
	for _, cmd := range cctx.Registry.All() {
		if !Visible(cctx, cmd) {
			continue
		}
		meta := cmd.Meta()
		category := meta.Category
		if category == "" {
			category = "Uncategorized"
		}
		if _, ok := byCategory[category]; !ok {
			order = append(order, category)
		}
		byCategory[category] = append(byCategory[category], meta)
		total++
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📚 **%s Command List**\n\n", version.AppName)
	fmt.Fprintf(&b, "Use `%shelp [command]` to view detailed information about a specific command.\n\n", prefix)
	for _, category := range order {
		fmt.Fprintf(&b, "**%s**\n", category)
		for _, meta := range byCategory[category] {
			fmt.Fprintf(&b, "• `%s%s` - %s\n", prefix, meta.Name, meta.Description)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Total commands: %d", total)

	return cctx.Reply(b.String())
}

func describeCommand(meta Meta, prefix string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📖 **Command: %s%s**\n\n", prefix, meta.Name)
	fmt.Fprintf(&b, "📝 **Description:** %s\n", meta.Description)
	if meta.Usage != "" {
		fmt.Fprintf(&b, "🔧 **Usage:** %s\n", strings.ReplaceAll(meta.Usage, "{prefix}", prefix))
	}
	if len(meta.Aliases) > 0 {
		prefixed := make([]string, len(meta.Aliases))
		for i, a := range meta.Aliases {
			prefixed[i] = prefix + a
		}
		fmt.Fprintf(&b, "🔄 **Aliases:** %s\n", strings.Join(prefixed, ", "))
	}
	if meta.GroupOnly {
		b.WriteString(msgGroupOnly + "\n")
	}
	if meta.PrivateOnly {
		b.WriteString(msgPrivateOnly + "\n")
	}
	if meta.ModsOnly {
		b.WriteString(msgModsOnly + "\n")
	}
	return b.String()
}
