// Package ai turns free-text user messages into short persona replies or
// structured command invocations, via a pluggable completion provider.
package ai

import (
	"context"
	"log"

	"signalmentor/internal/config"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Provider interface {
	Generate(ctx context.Context, messages []Message) (string, error)
}

// DefaultProvider selects the provider from config. Returns nil when no
// usable provider is configured; callers degrade to a fixed unavailable
// reply rather than failing the turn.
func DefaultProvider(cfg *config.Config) Provider {
	switch cfg.AIProvider {
	case "cohere", "":
		if cfg.CohereAPIKey == "" {
			log.Println("[WARN] ai: cohere api key is missing, responder disabled")
			return nil
		}
		return NewCohereProvider(cfg.CohereAPIKey)
	case "pollinations":
		return NewPollinationsProvider()
	default:
		log.Printf("[WARN] ai: unsupported AI_PROVIDER %q, responder disabled", cfg.AIProvider)
		return nil
	}
}
