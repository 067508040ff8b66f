package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.telegram.org"

// Client is the JSON-over-HTTP implementation of API against the platform's
// bot endpoint. One HTTP request per call; retry belongs to the caller.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL points the client at a non-default API origin (local test
// server or self-hosted bot API).
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient constructs a platform API client for the given bot token.
func NewClient(token string, opts ...ClientOption) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("bot token is required")
	}
	c := &Client{
		token:      token,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// apiResponse is the standard platform envelope.
type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result,omitempty"`
	ErrorCode   int             `json:"error_code,omitempty"`
	Description string          `json:"description,omitempty"`
}

func (c *Client) call(ctx context.Context, method string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s params: %w", method, err)
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", method, err)
	}

	var envelope apiResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("decode %s response: %w", method, err)
	}
	if !envelope.OK {
		return &APIError{Code: envelope.ErrorCode, Description: envelope.Description}
	}
	if out != nil && len(envelope.Result) > 0 {
		if err := json.Unmarshal(envelope.Result, out); err != nil {
			return fmt.Errorf("decode %s result: %w", method, err)
		}
	}
	return nil
}

func (c *Client) SendMessage(ctx context.Context, params SendMessageParams) (*Message, error) {
	var msg Message
	if err := c.call(ctx, "sendMessage", params, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (c *Client) SendPhoto(ctx context.Context, params SendPhotoParams) (*Message, error) {
	var msg Message
	if err := c.call(ctx, "sendPhoto", params, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (c *Client) EditMessageText(ctx context.Context, params EditMessageTextParams) (*Message, error) {
	var msg Message
	if err := c.call(ctx, "editMessageText", params, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (c *Client) DeleteMessage(ctx context.Context, chatID, messageID int64) error {
	params := struct {
		ChatID    int64 `json:"chat_id"`
		MessageID int64 `json:"message_id"`
	}{chatID, messageID}
	return c.call(ctx, "deleteMessage", params, nil)
}

func (c *Client) RestrictChatMember(ctx context.Context, params RestrictChatMemberParams) error {
	return c.call(ctx, "restrictChatMember", params, nil)
}

func (c *Client) BanChatMember(ctx context.Context, chatID, userID int64) error {
	params := struct {
		ChatID int64 `json:"chat_id"`
		UserID int64 `json:"user_id"`
	}{chatID, userID}
	return c.call(ctx, "banChatMember", params, nil)
}

func (c *Client) UnbanChatMember(ctx context.Context, chatID, userID int64) error {
	params := struct {
		ChatID       int64 `json:"chat_id"`
		UserID       int64 `json:"user_id"`
		OnlyIfBanned bool  `json:"only_if_banned"`
	}{chatID, userID, true}
	return c.call(ctx, "unbanChatMember", params, nil)
}

func (c *Client) AnswerCallbackQuery(ctx context.Context, params AnswerCallbackQueryParams) error {
	return c.call(ctx, "answerCallbackQuery", params, nil)
}

func (c *Client) SendChatAction(ctx context.Context, chatID int64, action string) error {
	params := struct {
		ChatID int64  `json:"chat_id"`
		Action string `json:"action"`
	}{chatID, action}
	return c.call(ctx, "sendChatAction", params, nil)
}
