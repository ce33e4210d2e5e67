package feishu

import (
	"context"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentnotify/agentnotify/internal/notify"
)

func TestNewChannel_Style(t *testing.T) {
	t.Parallel()

	client := NewClient("", zerolog.Nop())

	tests := map[string]struct {
		style string
		want  string
	}{
		"text":    {style: "text", want: notify.StyleText},
		"post":    {style: "post", want: notify.StylePost},
		"card":    {style: "card", want: notify.StyleCard},
		"empty":   {style: "", want: notify.StylePost},
		"unknown": {style: "markdown", want: notify.StylePost},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, NewChannel(client, tc.style).Style())
		})
	}
}

func TestChannel_Deliver(t *testing.T) {
	t.Parallel()

	n := notify.Notification{Title: "【失败】demo", Body: "■ 时间：03-07 09:05\n■ 错误：502"}

	tests := map[string]struct {
		style   string
		msgType string
	}{
		"text": {style: notify.StyleText, msgType: "text"},
		"post": {style: notify.StylePost, msgType: "post"},
		"card": {style: notify.StyleCard, msgType: "interactive"},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			srv := newRecordingServer(t, http.StatusOK, `{"code":0}`)
			ch := NewChannel(NewClient(srv.URL, zerolog.Nop()), tc.style)

			require.NoError(t, ch.Deliver(context.Background(), n))
			body := srv.last(t)
			assert.Equal(t, tc.msgType, body["msg_type"])
			if tc.style == notify.StyleText {
				assert.Equal(t, n.Title+"\n"+n.Body, body["content"].(map[string]any)["text"])
			}
		})
	}
}

func TestChannel_DeliverFailure(t *testing.T) {
	t.Parallel()

	srv := newRecordingServer(t, http.StatusOK, `{"code":9499,"msg":"Bad Request"}`)
	ch := NewChannel(NewClient(srv.URL, zerolog.Nop()), "")

	err := ch.Deliver(context.Background(), notify.Notification{Title: "t"})
	assert.ErrorIs(t, err, ErrRejected)
	assert.Contains(t, err.Error(), "Bad Request")
	assert.Equal(t, notify.KindPush, ch.Kind())
}

// Two push channels, one accepted and one unreachable, report in registration order.
func TestDispatcher_WithFeishuChannels(t *testing.T) {
	t.Parallel()

	ok := newRecordingServer(t, http.StatusOK, `{"code":0}`)
	down := newRecordingServer(t, http.StatusOK, `{}`)
	downURL := down.URL
	down.Close()

	channels := []notify.Channel{
		NewChannel(NewClient(ok.URL, zerolog.Nop()), notify.StylePost),
		NewChannel(NewClient(downURL, zerolog.Nop()), notify.StylePost),
	}
	d := notify.NewDispatcher(channels, 0, zerolog.Nop())

	outcomes := d.SendAll(context.Background(), notify.Notification{Title: "t", Body: "b"})

	require.Len(t, outcomes, 2)
	assert.True(t, outcomes[0].Success)
	assert.False(t, outcomes[1].Success)
}
