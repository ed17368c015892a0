// Package narrative turns monthly metrics into LLM-written prose. It is a
// boundary component: the rule-based insights remain the system of record and
// callers fall back to them when no credential is configured.
package narrative

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/autoadvisor-dev/autoadvisor/internal/analyze"
)

// Fallback is shown when no API credential is configured.
const Fallback = "No OPENAI_API_KEY set; showing rules-based insights only."

// EnvKey is the environment variable holding the API credential.
const EnvKey = "OPENAI_API_KEY"

const (
	defaultModel   = openai.GPT4oMini
	requestTimeout = 60 * time.Second
	maxTokens      = 300
)

// Client wraps the chat-completion API for narrative generation.
type Client struct {
	api   *openai.Client
	model string
}

// New creates a Client. An empty model selects the default.
func New(apiKey, model string) *Client {
	if model == "" {
		model = defaultModel
	}
	return &Client{api: openai.NewClient(apiKey), model: model}
}

// FromEnv creates a Client from the OPENAI_API_KEY environment variable.
// ok is false when the credential is absent.
func FromEnv(model string) (c *Client, ok bool) {
	key := os.Getenv(EnvKey)
	if key == "" {
		return nil, false
	}
	return New(key, model), true
}

// Narrative sends the metrics summary through one chat completion and returns
// the generated prose. Single round-trip with a fixed timeout; no retries.
func (c *Client) Narrative(ctx context.Context, m analyze.Metrics) (string, error) {
	prompt, err := buildPrompt(m)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("narrative request: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("narrative request: empty response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func buildPrompt(m analyze.Metrics) (string, error) {
	payload, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serializing metrics: %w", err)
	}
	return fmt.Sprintf(`You are a concise personal finance coach.
Given this JSON monthly summary, write 4-6 bullet points:
- call out changes vs typical patterns
- highlight risky categories
- give 2 actionable tips

JSON:
%s
`, payload), nil
}
