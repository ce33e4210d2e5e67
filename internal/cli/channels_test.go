package cli

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentnotify/agentnotify/internal/feishu"
	"github.com/agentnotify/agentnotify/internal/notify"
)

func TestChannelFactory(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Feishu.Style = notify.StyleCard
	factory := channelFactory(cfg, &bytes.Buffer{}, zerolog.Nop())

	t.Run("push", func(t *testing.T) {
		t.Parallel()

		ch, err := factory(cfg.Channels()[0])
		require.NoError(t, err)

		push, ok := ch.(*feishu.Channel)
		require.True(t, ok, "push must be a feishu channel")
		assert.Equal(t, notify.KindPush, push.Kind())
		assert.Equal(t, notify.StyleCard, push.Style())
	})

	t.Run("audio", func(t *testing.T) {
		t.Parallel()

		ch, err := factory(cfg.Channels()[1])
		require.NoError(t, err)

		_, ok := ch.(*notify.AudioChannel)
		require.True(t, ok, "audio must be an audio channel")
		assert.Equal(t, notify.KindAudio, ch.Kind())
	})

	t.Run("unknown kind", func(t *testing.T) {
		t.Parallel()

		_, err := factory(notify.ChannelConfig{Kind: "pager", Enabled: true})
		assert.Error(t, err)
	})
}

func TestChannelFactory_CoversEveryKind(t *testing.T) {
	t.Parallel()

	factory := channelFactory(testConfig(), &bytes.Buffer{}, zerolog.Nop())
	for _, cc := range testConfig().Channels() {
		require.True(t, notify.ValidKind(string(cc.Kind)))
		_, err := factory(cc)
		assert.NoError(t, err, "kind %s", cc.Kind)
	}
}
