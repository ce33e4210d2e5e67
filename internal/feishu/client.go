package feishu

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// PlaceholderWebhookURL is the sample endpoint shipped in config templates.
	PlaceholderWebhookURL = "https://open.feishu.cn/open-apis/bot/v2/hook/YOUR_WEBHOOK_URL_HERE"

	// DefaultCardTemplateID is the card template used for interactive messages.
	DefaultCardTemplateID = "AAqKGP7Qx6y9R"

	// DefaultTimeout bounds one webhook round trip.
	DefaultTimeout = 5 * time.Second

	placeholderMarker = "YOUR_WEBHOOK_URL_HERE"

	// maxResponseBytes caps how much of a response body is read.
	maxResponseBytes = 64 << 10
)

var (
	// ErrNotConfigured is returned when the webhook URL is empty or still the placeholder.
	ErrNotConfigured = errors.New("feishu webhook not configured")

	// ErrRejected is returned when the webhook answers with a non-zero code.
	ErrRejected = errors.New("feishu webhook rejected message")
)

// Message is the webhook request body.
type Message struct {
	MsgType   string `json:"msg_type"`
	Content   any    `json:"content"`
	Timestamp string `json:"timestamp,omitempty"`
	Sign      string `json:"sign,omitempty"`
}

// TextContent is the content of a text message.
type TextContent struct {
	Text string `json:"text"`
}

// PostContent is the content of a rich-text post message.
type PostContent struct {
	Post PostLocales `json:"post"`
}

// PostLocales holds the per-locale post bodies.
type PostLocales struct {
	ZhCN PostBody `json:"zh_cn"`
}

// PostBody is one localized post: a title and rows of inline elements.
type PostBody struct {
	Title   string       `json:"title"`
	Content [][]PostItem `json:"content"`
}

// PostItem is one inline post element.
type PostItem struct {
	Tag  string `json:"tag"`
	Text string `json:"text"`
}

// CardContent is the content of an interactive template card.
type CardContent struct {
	Type string   `json:"type"`
	Data CardData `json:"data"`
}

// CardData selects the template and fills its variables.
type CardData struct {
	TemplateID       string            `json:"template_id"`
	TemplateVariable map[string]string `json:"template_variable"`
}

// Response is the webhook reply. Code is a pointer so a missing field can be
// told apart from zero.
type Response struct {
	Code *int   `json:"code"`
	Msg  string `json:"msg"`
}

// Client posts messages to one webhook endpoint.
type Client struct {
	httpClient     *http.Client
	endpoint       string
	secret         string
	cardTemplateID string
	now            func() time.Time
	logger         zerolog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithSecret enables request signing.
func WithSecret(secret string) Option {
	return func(c *Client) { c.secret = secret }
}

// WithCardTemplate overrides the interactive card template.
func WithCardTemplate(id string) Option {
	return func(c *Client) {
		if id != "" {
			c.cardTemplateID = id
		}
	}
}

// WithTimeout sets the HTTP timeout. Zero keeps DefaultTimeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the HTTP client. This is intended for testing purposes.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a client for endpoint.
func NewClient(endpoint string, logger zerolog.Logger, opts ...Option) *Client {
	c := &Client{
		httpClient:     &http.Client{Timeout: DefaultTimeout},
		endpoint:       strings.TrimSpace(endpoint),
		cardTemplateID: DefaultCardTemplateID,
		now:            time.Now,
		logger:         logger.With().Str("channel", "feishu").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsPlaceholder reports whether url is empty or still the sample endpoint.
func IsPlaceholder(url string) bool {
	url = strings.TrimSpace(url)
	return url == "" || strings.Contains(url, placeholderMarker)
}

// Configured reports whether the client has a usable endpoint.
func (c *Client) Configured() bool {
	return !IsPlaceholder(c.endpoint)
}

// SendText posts a plain-text message.
func (c *Client) SendText(ctx context.Context, text string) error {
	return c.send(ctx, Message{
		MsgType: "text",
		Content: TextContent{Text: text},
	})
}

// SendPost posts a rich-text message with a title.
func (c *Client) SendPost(ctx context.Context, title, content string) error {
	return c.send(ctx, Message{
		MsgType: "post",
		Content: PostContent{Post: PostLocales{ZhCN: PostBody{
			Title:   title,
			Content: [][]PostItem{{{Tag: "text", Text: content}}},
		}}},
	})
}

// SendCard posts an interactive template card.
func (c *Client) SendCard(ctx context.Context, title, content string) error {
	return c.send(ctx, Message{
		MsgType: "interactive",
		Content: CardContent{
			Type: "template",
			Data: CardData{
				TemplateID: c.cardTemplateID,
				TemplateVariable: map[string]string{
					"title":   title,
					"content": content,
				},
			},
		},
	})
}

// send signs msg when a secret is set, posts it and checks the reply code.
func (c *Client) send(ctx context.Context, msg Message) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	if c.secret != "" {
		ts := strconv.FormatInt(c.now().Unix(), 10)
		sign, err := Sign(ts, c.secret)
		if err != nil {
			return fmt.Errorf("signing request: %w", err)
		}
		msg.Timestamp = ts
		msg.Sign = sign
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encoding %s message: %w", msg.MsgType, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug().Str("msg_type", msg.MsgType).Int("bytes", len(body)).Msg("posting webhook")

	resp, err := c.httpClient.Do(req) // #nosec G107 -- URL is a user-configured webhook endpoint
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	var reply Response
	if err := json.Unmarshal(data, &reply); err != nil {
		return fmt.Errorf("decoding response (status %d): %w", resp.StatusCode, err)
	}
	if reply.Code == nil {
		return fmt.Errorf("%w: response has no code (status %d)", ErrRejected, resp.StatusCode)
	}
	if *reply.Code != 0 {
		return fmt.Errorf("%w: code %d: %s", ErrRejected, *reply.Code, reply.Msg)
	}

	c.logger.Debug().Msg("webhook accepted message")
	return nil
}

// Sign computes the webhook signature for a Unix timestamp string.
func Sign(timestamp, secret string) (string, error) {
	mac := hmac.New(sha256.New, []byte(timestamp+"\n"+secret))
	if _, err := mac.Write(nil); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}
