package ai

import (
	"encoding/json"
	"strings"
)

// Intent actions.
const (
	ActionReply   = "reply"
	ActionCommand = "command"
)

// Intent is the structured outcome of one completion: either a plain
// reply or a command invocation.
type Intent struct {
	Action   string `json:"action"`
	Response string `json:"response,omitempty"`
	Command  string `json:"command,omitempty"`
	Args     string `json:"args,omitempty"`
}

// ParseIntent interprets raw model output. JSON with a known action wins;
// anything else is treated as a plain-text reply.
func ParseIntent(raw string) Intent {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "{") {
		var intent Intent
		if err := json.Unmarshal([]byte(trimmed), &intent); err == nil {
			switch intent.Action {
			case ActionCommand:
				if intent.Command != "" {
					return intent
				}
			case ActionReply:
				if intent.Response != "" {
					return intent
				}
			}
		}
	}
	return Intent{Action: ActionReply, Response: trimmed}
}
