package bot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.anthropic.com/v1/messages"
	defaultModel   = "claude-3-5-haiku-20241022"
	apiVersion     = "2023-06-01"
)

// Client is a Decider backed by the Anthropic Messages API
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithModel overrides the default model
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// WithBaseURL overrides the API endpoint, mainly for tests
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient overrides the HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a Claude-backed decider
func NewClient(apiKey string, logger *slog.Logger, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("bot: api key is required")
	}
	c := &Client{
		apiKey:     apiKey,
		model:      defaultModel,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type messagesRequest struct {
	Model       string        `json:"model"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	Messages    []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// complete sends one user prompt and returns the text of the reply
func (c *Client) complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	payload := messagesRequest{
		Model:       c.model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("bot: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("bot: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("bot: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("bot: api returned %d: %s", resp.StatusCode, snippet)
	}

	var parsed messagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("bot: decode response: %w", err)
	}
	if len(parsed.Content) == 0 {
		return "", fmt.Errorf("bot: empty completion")
	}
	return parsed.Content[0].Text, nil
}

// completeJSON runs a completion and unmarshals the first JSON object
// found in the reply into out
func (c *Client) completeJSON(ctx context.Context, prompt string, maxTokens int, temperature float64, out interface{}) error {
	text, err := c.complete(ctx, prompt, maxTokens, temperature)
	if err != nil {
		return err
	}
	raw, err := extractJSON(text)
	if err != nil {
		c.logger.Warn("bot reply contained no usable JSON", "error", err, "reply", truncate(text, 200))
		return fmt.Errorf("%w: %v", ErrNoDecision, err)
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		c.logger.Warn("bot reply JSON did not parse", "error", err)
		return fmt.Errorf("%w: %v", ErrNoDecision, err)
	}
	return nil
}

// extractJSON pulls the first balanced JSON object out of a model reply,
// tolerating markdown code fences and surrounding prose
func extractJSON(s string) (string, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	start := strings.IndexByte(s, '{')
	if start == -1 {
		return "", fmt.Errorf("no JSON object found")
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}
	return "", fmt.Errorf("no matching closing brace")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func containsTarget(targets []PlayerRef, id string) bool {
	for _, t := range targets {
		if t.ID == id {
			return true
		}
	}
	return false
}

// ChooseQuestion implements Decider
func (c *Client) ChooseQuestion(ctx context.Context, input QuestionInput) (QuestionDecision, error) {
	var reply struct {
		TargetID string `json:"target_id"`
		Question string `json:"question"`
	}
	if err := c.completeJSON(ctx, buildQuestionPrompt(input), 512, 0.8, &reply); err != nil {
		return QuestionDecision{}, err
	}
	if reply.Question == "" || !containsTarget(input.Targets, reply.TargetID) {
		c.logger.Warn("bot chose an illegal question target", "target", reply.TargetID)
		return QuestionDecision{}, ErrNoDecision
	}
	return QuestionDecision{TargetID: reply.TargetID, Question: reply.Question}, nil
}

// ComposeAnswer implements Decider
func (c *Client) ComposeAnswer(ctx context.Context, input AnswerInput) (AnswerDecision, error) {
	var reply struct {
		Answer string `json:"answer"`
	}
	if err := c.completeJSON(ctx, buildAnswerPrompt(input), 256, 0.7, &reply); err != nil {
		return AnswerDecision{}, err
	}
	if reply.Answer == "" {
		return AnswerDecision{}, ErrNoDecision
	}
	return AnswerDecision{Answer: reply.Answer}, nil
}

// ConsiderAccusation implements Decider
func (c *Client) ConsiderAccusation(ctx context.Context, input AccusationInput) (AccusationDecision, error) {
	var reply struct {
		ShouldAccuse bool   `json:"should_accuse"`
		TargetID     string `json:"target_id"`
		Reasoning    string `json:"reasoning"`
	}
	if err := c.completeJSON(ctx, buildAccusationPrompt(input), 512, 0.6, &reply); err != nil {
		return AccusationDecision{}, err
	}
	if !reply.ShouldAccuse {
		return AccusationDecision{Accuse: false, Reasoning: reply.Reasoning}, nil
	}
	if !containsTarget(input.Targets, reply.TargetID) {
		c.logger.Warn("bot chose an illegal accusation target", "target", reply.TargetID)
		return AccusationDecision{}, ErrNoDecision
	}
	return AccusationDecision{Accuse: true, TargetID: reply.TargetID, Reasoning: reply.Reasoning}, nil
}

// DecideVote implements Decider
func (c *Client) DecideVote(ctx context.Context, input VoteInput) (VoteDecision, error) {
	var reply struct {
		VoteGuilty *bool  `json:"vote_guilty"`
		Reasoning  string `json:"reasoning"`
	}
	if err := c.completeJSON(ctx, buildVotePrompt(input), 512, 0.6, &reply); err != nil {
		return VoteDecision{}, err
	}
	if reply.VoteGuilty == nil {
		return VoteDecision{}, ErrNoDecision
	}
	return VoteDecision{Guilty: *reply.VoteGuilty, Reasoning: reply.Reasoning}, nil
}
