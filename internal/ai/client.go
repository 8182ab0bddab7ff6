package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/promptdeck/promptdeck/internal/resilience"
	"github.com/promptdeck/promptdeck/internal/shared/types"
)

// CompletionRequest is a single chat completion call.
type CompletionRequest struct {
	Model   string
	System  string
	User    string
	Profile Profile
}

// Completion is the provider's answer.
type Completion struct {
	Text         string
	FinishReason string
}

// Provider executes completion calls against an upstream model API.
type Provider interface {
	Complete(ctx context.Context, creds types.Credentials, req CompletionRequest) (*Completion, error)
}

// Client talks to an OpenAI-compatible chat completions endpoint.
type Client struct {
	resty   *resty.Client
	breaker *resilience.Breaker
}

// chat completions wire format
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// NewClient creates a production-ready provider client. The per-call
// deadline comes from ctx; timeout here is the transport-level ceiling.
func NewClient(baseURL string, timeout time.Duration) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 2
	retryClient.RetryWaitMin = 500 * time.Millisecond
	retryClient.RetryWaitMax = 5 * time.Second
	retryClient.Logger = nil // Disable logging

	restyClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", "PromptDeck/1.0")
	restyClient.SetTransport(retryClient.HTTPClient.Transport)

	return &Client{
		resty: restyClient,
		breaker: resilience.NewBreaker(resilience.Options{
			Name:             "ai-provider",
			FailureThreshold: 5,
			Cooldown:         30 * time.Second,
		}),
	}
}

// Breaker exposes the circuit breaker for health reporting.
func (c *Client) Breaker() *resilience.Breaker { return c.breaker }

// Complete runs one chat completion through the circuit breaker.
func (c *Client) Complete(ctx context.Context, creds types.Credentials, req CompletionRequest) (*Completion, error) {
	body := chatRequest{
		Model:       req.Model,
		Temperature: req.Profile.Temperature,
		MaxTokens:   req.Profile.MaxTokens,
	}
	if req.System != "" {
		body.Messages = append(body.Messages, chatMessage{Role: "system", Content: req.System})
	}
	body.Messages = append(body.Messages, chatMessage{Role: "user", Content: req.User})

	var completion *Completion
	err := c.breaker.Do(func() error {
		var result chatResponse
		var apiErr apiError

		resp, err := c.resty.R().
			SetContext(ctx).
			SetAuthToken(creds.APIKey).
			SetBody(body).
			SetResult(&result).
			SetError(&apiErr).
			Post("/v1/chat/completions")
		if err != nil {
			return err
		}
		if resp.IsError() {
			msg := apiErr.Error.Message
			if msg == "" {
				msg = resp.Status()
			}
			return fmt.Errorf("provider returned %d: %s", resp.StatusCode(), msg)
		}
		if len(result.Choices) == 0 {
			return errNoContent
		}

		choice := result.Choices[0]
		completion = &Completion{
			Text:         choice.Message.Content,
			FinishReason: choice.FinishReason,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return completion, nil
}
