package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"signalmentor/pkg/retrylimit"
)

const pollinationsEndpoint = "https://text.pollinations.ai/openai"

// PollinationsProvider uses the keyless pollinations.ai gateway. It is
// the fallback when no Cohere key is configured; the public endpoint is
// flaky, so requests retry through the same adaptive limiter as Cohere.
type PollinationsProvider struct {
	client  *http.Client
	limiter *retrylimit.AdaptiveLimiter
}

func NewPollinationsProvider() *PollinationsProvider {
	return &PollinationsProvider{
		client: &http.Client{
			Timeout: 25 * time.Second,
		},
		limiter: retrylimit.NewAdaptiveLimiter(3, 1, 5, 1, 0.5),
	}
}

func (p *PollinationsProvider) Generate(ctx context.Context, messages []Message) (string, error) {
	if len(messages) == 0 {
		return "", fmt.Errorf("pollinations: no messages")
	}

	data, err := json.Marshal(map[string]interface{}{
		"model":       "openai",
		"messages":    messages,
		"temperature": 1,
		"private":     true,
	})
	if err != nil {
		return "", err
	}

	var reply string
	err = retrylimit.WithRetryMax(ctx, func() error {
		r, reqErr := p.request(ctx, data)
		if reqErr != nil {
			return reqErr
		}
		reply = r
		return nil
	}, p.limiter, 3)
	if err != nil {
		return "", err
	}
	return reply, nil
}

func (p *PollinationsProvider) request(ctx context.Context, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, pollinationsEndpoint, bytes.NewReader(body))
	if err != nil {
		return "", &retrylimit.FatalError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &retrylimit.StatusError{Code: resp.StatusCode, Body: truncateBody(raw)}
	}
	if strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
		return "", fmt.Errorf("pollinations returned html")
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("pollinations empty choices")
	}

	reply := cleanReply(parsed.Choices[0].Message.Content)
	if isGarbageResponse(reply) {
		return "", fmt.Errorf("pollinations returned garbage")
	}
	return reply, nil
}
