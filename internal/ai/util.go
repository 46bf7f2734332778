package ai

import (
	"regexp"
	"strings"
)

func isGarbageResponse(s string) bool {
	l := strings.ToLower(s)

	if strings.Contains(l, "<html") {
		return true
	}
	if strings.Contains(l, "not allowed") {
		return true
	}
	if len(strings.TrimSpace(s)) == 0 {
		return true
	}
	return false
}

func truncateBody(b []byte) string {
	if len(b) > 200 {
		return string(b[:200]) + "..."
	}
	return string(b)
}

var thinkBlock = regexp.MustCompile(`(?s)<think>.*?</think>`)

// quotePairs are quote styles some models wrap whole replies in.
var quotePairs = [][2]string{
	{`"`, `"`},
	{`'`, `'`},
	{"“", "”"},
	{"‘", "’"},
}

// cleanReply strips reasoning blocks and a single layer of wrapping
// quotes from a model reply.
func cleanReply(reply string) string {
	reply = strings.TrimSpace(thinkBlock.ReplaceAllString(strings.TrimSpace(reply), ""))
	if len(reply) < 2 {
		return reply
	}
	for _, q := range quotePairs {
		if strings.HasPrefix(reply, q[0]) && strings.HasSuffix(reply, q[1]) {
			reply = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(reply, q[0]), q[1]))
			break
		}
	}
	return reply
}
