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

const cohereEndpoint = "https://api.cohere.com/v1/chat"

// CohereProvider talks to Cohere's chat API. Requests go through an
// adaptive limiter so a throttling upstream slows us down instead of
// failing turns.
type CohereProvider struct {
	apiKey  string
	client  *http.Client
	limiter *retrylimit.AdaptiveLimiter
}

func NewCohereProvider(apiKey string) *CohereProvider {
	return &CohereProvider{
		apiKey: apiKey,
		client: &http.Client{
			Timeout: 25 * time.Second,
		},
		limiter: retrylimit.NewAdaptiveLimiter(5, 1, 10, 1, 0.5),
	}
}

func (p *CohereProvider) Generate(ctx context.Context, messages []Message) (string, error) {
	if len(messages) == 0 {
		return "", fmt.Errorf("cohere: no messages")
	}

	// The last user message is the query; everything before it is
	// preamble and chat history.
	query := messages[len(messages)-1].Content
	preamble := ""
	var history []map[string]string
	for _, m := range messages[:len(messages)-1] {
		switch m.Role {
		case "system":
			preamble += m.Content
		case "assistant":
			history = append(history, map[string]string{"role": "CHATBOT", "message": m.Content})
		default:
			history = append(history, map[string]string{"role": "USER", "message": m.Content})
		}
	}

	payload := map[string]interface{}{
		"model":       "command",
		"message":     query,
		"preamble":    preamble,
		"temperature": 0.7,
	}
	if len(history) > 0 {
		payload["chat_history"] = history
	}

	data, err := json.Marshal(payload)
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

func (p *CohereProvider) request(ctx context.Context, body []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cohereEndpoint, bytes.NewReader(body))
	if err != nil {
		return "", &retrylimit.FatalError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

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
		return "", fmt.Errorf("cohere returned html")
	}

	var parsed struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", err
	}

	reply := cleanReply(parsed.Text)
	if isGarbageResponse(reply) {
		return "", fmt.Errorf("cohere returned garbage")
	}
	return reply, nil
}
