package shared

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentnotify/agentnotify/internal/config"
	"github.com/agentnotify/agentnotify/internal/logging"
)

// Runtime is the per-invocation state every command works with.
type Runtime struct {
	Config       *config.Configuration
	Logger       zerolog.Logger
	InvocationID string
	// ConfigErr is set when the config files could not be used and Config
	// holds only defaults, .env and environment values.
	ConfigErr error
}

// LoadRuntime loads the configuration selected by the persistent flags and
// builds the invocation logger on the command's stderr.
//
// A config file that cannot be read or fails validation is logged and
// skipped: the runtime falls back to defaults, .env and the environment so
// notifications still go out. --no-push and --no-sound are applied on top;
// --debug overrides log_level.
func LoadRuntime(cmd *cobra.Command) (*Runtime, error) {
	return loadRuntime(cmd, false)
}

// LoadStrictRuntime is LoadRuntime without the fallback. Commands that show
// or check the configuration use it so a broken file exits 1.
func LoadStrictRuntime(cmd *cobra.Command) (*Runtime, error) {
	return loadRuntime(cmd, true)
}

func loadRuntime(cmd *cobra.Command, strict bool) (*Runtime, error) {
	configPath, _ := cmd.Flags().GetString("config")

	cfg, loadErr := config.Load(configPath)
	if loadErr != nil {
		if strict {
			return nil, fmt.Errorf("loading config: %w", loadErr)
		}
		fallback, err := config.LoadFrom(config.Paths{DotEnv: config.DefaultPaths(configPath).DotEnv})
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", loadErr)
		}
		cfg = fallback
	}

	if noPush, _ := cmd.Flags().GetBool("no-push"); noPush {
		cfg.Feishu.Enabled = false
	}
	if noSound, _ := cmd.Flags().GetBool("no-sound"); noSound {
		cfg.Sound.Enabled = false
	}

	level := cfg.LogLevel
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		level = "debug"
	}

	logger, err := logging.New(level, cmd.ErrOrStderr())
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	id := uuid.NewString()
	logger = logger.With().Str("invocation", id).Logger()
	if loadErr != nil {
		logger.Warn().Err(loadErr).Msg("config files ignored, using defaults and environment")
	} else {
		logger.Debug().Str("config", configPath).Msg("configuration loaded")
	}

	return &Runtime{
		Config:       cfg,
		Logger:       logger,
		InvocationID: id,
		ConfigErr:    loadErr,
	}, nil
}
