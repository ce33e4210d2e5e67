package feishu

import (
	"context"
	"fmt"

	"github.com/agentnotify/agentnotify/internal/notify"
)

// Channel adapts a Client to notify.Channel.
type Channel struct {
	client *Client
	style  string
}

// NewChannel creates a push channel sending messages in style.
// Unknown or empty styles fall back to post.
func NewChannel(client *Client, style string) *Channel {
	switch style {
	case notify.StyleText, notify.StylePost, notify.StyleCard:
	default:
		style = notify.StylePost
	}
	return &Channel{client: client, style: style}
}

// Kind implements notify.Channel.
func (c *Channel) Kind() notify.Kind { return notify.KindPush }

// Style returns the message style in use.
func (c *Channel) Style() string { return c.style }

// Deliver sends n as one webhook message.
func (c *Channel) Deliver(ctx context.Context, n notify.Notification) error {
	var err error
	switch c.style {
	case notify.StyleText:
		err = c.client.SendText(ctx, n.Title+"\n"+n.Body)
	case notify.StyleCard:
		err = c.client.SendCard(ctx, n.Title, n.Body)
	default:
		err = c.client.SendPost(ctx, n.Title, n.Body)
	}
	if err != nil {
		return fmt.Errorf("feishu %s: %w", c.style, err)
	}
	return nil
}
