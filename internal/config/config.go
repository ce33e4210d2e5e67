package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/agentnotify/agentnotify/internal/notify"
)

// Configuration represents the agentnotify configuration
type Configuration struct {
	Enabled      bool          `koanf:"enabled" yaml:"enabled"`
	LogLevel     string        `koanf:"log_level" yaml:"log_level" validate:"oneof=debug info warn error disabled"`
	TerminalName string        `koanf:"terminal_name" yaml:"terminal_name"`
	GracePeriod  time.Duration `koanf:"grace_period" yaml:"grace_period" validate:"min=0s,max=60s"`
	StdinTimeout time.Duration `koanf:"stdin_timeout" yaml:"stdin_timeout" validate:"min=10ms,max=60s"`
	Feishu       FeishuConfig  `koanf:"feishu" yaml:"feishu"`
	Sound        SoundConfig   `koanf:"sound" yaml:"sound"`
}

// FeishuConfig configures the push channel.
type FeishuConfig struct {
	Enabled        bool          `koanf:"enabled" yaml:"enabled"`
	WebhookURL     string        `koanf:"webhook_url" yaml:"webhook_url" validate:"omitempty,url"`
	Secret         string        `koanf:"secret" yaml:"secret"`
	Style          string        `koanf:"style" yaml:"style" validate:"oneof=text post card"`
	CardTemplateID string        `koanf:"card_template_id" yaml:"card_template_id"`
	Timeout        time.Duration `koanf:"timeout" yaml:"timeout" validate:"min=100ms,max=60s"`
}

// SoundConfig configures the audio channel.
type SoundConfig struct {
	Enabled bool   `koanf:"enabled" yaml:"enabled"`
	Voice   string `koanf:"voice" yaml:"voice"`
}

// Paths locates the configuration sources. Empty fields are skipped.
type Paths struct {
	User   string // user config (~/.agentnotify/config.json)
	Local  string // project or --config file
	DotEnv string // .env file
}

// DefaultPaths returns the standard sources for localConfigPath.
func DefaultPaths(localConfigPath string) Paths {
	p := Paths{Local: localConfigPath, DotEnv: ".env"}
	if userPath, err := UserConfigPath(); err == nil {
		p.User = userPath
	}
	if p.Local == "" {
		p.Local = ProjectConfigPath()
	}
	return p
}

// Load loads configuration from user, local, .env and environment sources
// Priority: Environment variables > .env > Local config > User config > Defaults
func Load(localConfigPath string) (*Configuration, error) {
	return LoadFrom(DefaultPaths(localConfigPath))
}

// LoadFrom loads configuration from the given sources.
func LoadFrom(p Paths) (*Configuration, error) {
	k := koanf.New(".")

	for key, value := range GetDefaults() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("applying default %s: %w", key, err)
		}
	}

	if err := loadJSON(k, p.User); err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}
	if err := loadJSON(k, p.Local); err != nil {
		return nil, fmt.Errorf("failed to load local config: %w", err)
	}
	if err := loadDotEnv(k, p.DotEnv); err != nil {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	// Environment variables (highest priority)
	if err := k.Load(env.ProviderWithValue("", ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Push follows the webhook URL unless set explicitly
	if !k.Exists("feishu.enabled") {
		cfg.Feishu.Enabled = webhookConfigured(cfg.Feishu.WebhookURL)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadJSON merges a JSON config file. Missing files are skipped.
func loadJSON(k *koanf.Koanf, path string) error {
	path = expandHomePath(path)
	if path == "" || !fileExists(path) {
		return nil
	}
	return k.Load(file.Provider(path), json.Parser())
}

// loadDotEnv merges a .env file using the environment variable mapping.
// Missing files are skipped.
func loadDotEnv(k *koanf.Koanf, path string) error {
	if path == "" || !fileExists(path) {
		return nil
	}

	raw := koanf.New("\x00")
	if err := raw.Load(file.Provider(path), dotenv.Parser()); err != nil {
		return err
	}
	for name, value := range raw.All() {
		s, _ := value.(string)
		key, v := envValue(name, s)
		if key == "" {
			continue
		}
		if err := k.Set(key, v); err != nil {
			return fmt.Errorf("setting %s: %w", key, err)
		}
	}
	return nil
}

// envAliases maps the well-known variable names to config keys.
var envAliases = map[string]string{
	"FEISHU_WEBHOOK_URL":   "feishu.webhook_url",
	"FEISHU_SECRET":        "feishu.secret",
	"SOUND_ENABLED":        "sound.enabled",
	"NOTIFICATION_ENABLED": "enabled",
	"TERMINAL_NAME":        "terminal_name",
}

// EnvPrefix prefixes variables that address any config key.
const EnvPrefix = "AGENTNOTIFY_"

// envKey converts an environment variable name to a config key, or "" when
// the variable is not a config variable.
// Example: AGENTNOTIFY_FEISHU__STYLE -> feishu.style
func envKey(name string) string {
	if key, ok := envAliases[name]; ok {
		return key
	}
	if !strings.HasPrefix(name, EnvPrefix) {
		return ""
	}
	key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// envValue maps a variable to its config key and value. Empty variables are
// skipped. The alias switches are on unless set to "false".
func envValue(name, value string) (string, interface{}) {
	key := envKey(name)
	if key == "" || value == "" {
		return "", nil
	}
	switch name {
	case "SOUND_ENABLED", "NOTIFICATION_ENABLED":
		return key, !strings.EqualFold(strings.TrimSpace(value), "false")
	}
	return key, value
}

// webhookConfigured reports whether url is a usable webhook endpoint.
func webhookConfigured(url string) bool {
	url = strings.TrimSpace(url)
	return url != "" && !strings.Contains(url, PlaceholderMarker)
}

// Channels returns the channel configurations in registration order: push
// first, then audio. The global switch disables every channel.
func (c *Configuration) Channels() []notify.ChannelConfig {
	return []notify.ChannelConfig{
		{
			Kind:     notify.KindPush,
			Enabled:  c.Enabled && c.Feishu.Enabled && webhookConfigured(c.Feishu.WebhookURL),
			Endpoint: c.Feishu.WebhookURL,
			Secret:   c.Feishu.Secret,
			Style:    c.Feishu.Style,
		},
		{
			Kind:    notify.KindAudio,
			Enabled: c.Enabled && c.Sound.Enabled,
		},
	}
}

// Redacted returns a copy with secrets masked, for display.
func (c Configuration) Redacted() Configuration {
	c.Feishu.Secret = mask(c.Feishu.Secret)
	c.Feishu.WebhookURL = maskWebhook(c.Feishu.WebhookURL)
	return c
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "********"
}

// maskWebhook keeps the URL up to the last path segment, which is the token.
func maskWebhook(url string) string {
	i := strings.LastIndex(url, "/")
	if i < 0 || i == len(url)-1 || !webhookConfigured(url) {
		return url
	}
	return url[:i+1] + mask(url[i+1:])
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, os.ErrNotExist)
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
