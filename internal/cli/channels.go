package cli

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/agentnotify/agentnotify/internal/config"
	"github.com/agentnotify/agentnotify/internal/feishu"
	"github.com/agentnotify/agentnotify/internal/notify"
)

// channelFactory returns the notify.Factory for cfg. The audio bell is
// written to bell.
func channelFactory(cfg *config.Configuration, bell io.Writer, logger zerolog.Logger) notify.Factory {
	return func(cc notify.ChannelConfig) (notify.Channel, error) {
		switch cc.Kind {
		case notify.KindPush:
			client := feishu.NewClient(cc.Endpoint, logger,
				feishu.WithSecret(cc.Secret),
				feishu.WithTimeout(cfg.Feishu.Timeout),
				feishu.WithCardTemplate(cfg.Feishu.CardTemplateID),
			)
			return feishu.NewChannel(client, cc.Style), nil
		case notify.KindAudio:
			return notify.NewAudioChannel(logger,
				notify.WithVoice(cfg.Sound.Voice),
				notify.WithBell(bell),
			), nil
		default:
			return nil, fmt.Errorf("unknown channel kind %q", cc.Kind)
		}
	}
}
