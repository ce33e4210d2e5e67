package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/agentnotify/agentnotify/internal/cli/shared"
	cfgpkg "github.com/agentnotify/agentnotify/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage agentnotify configuration",
	Long: `Manage agentnotify configuration.

Configuration is layered, lowest priority first: built-in defaults, the
user config (~/.agentnotify/config.json), the project config
(.agentnotify/config.json or --config), a .env file and environment
variables.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration as YAML",
	Long:  "Show the effective configuration after all layers are applied. The webhook token and signing secret are masked.",
	Example: `  agentnotify config show
  FEISHU_WEBHOOK_URL=https://... agentnotify config show`,
	Args: shared.Args(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, _ []string) error {
		rt, err := shared.LoadStrictRuntime(cmd)
		if err != nil {
			return err
		}
		return writeYAML(cmd.OutOrStdout(), rt.Config.Redacted())
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long:  "Set a configuration value in the user config (default) or the project config.",
	Example: `  agentnotify config set feishu.style card
  agentnotify config set sound.enabled false --project
  agentnotify config set grace_period 5s`,
	Args: shared.Args(cobra.ExactArgs(2)),
	RunE: runConfigSet,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long:  "Get a configuration value from the config files, showing where it came from. Environment overrides are not considered; use 'config show' for the effective value.",
	Example: `  agentnotify config get feishu.style
  agentnotify config get sound.enabled --user`,
	Args: shared.Args(cobra.ExactArgs(1)),
	RunE: runConfigGet,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List all configuration keys",
	Args:  shared.Args(cobra.NoArgs),
	Run: func(cmd *cobra.Command, _ []string) {
		printKeys(cmd.OutOrStdout())
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file locations",
	Args:  shared.Args(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, _ []string) error {
		userPath, err := cfgpkg.UserConfigPath()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "user:    %s\n", userPath)
		fmt.Fprintf(out, "project: %s\n", projectPath(cmd))
		return nil
	},
}

func init() {
	configCmd.GroupID = shared.GroupConfiguration
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configKeysCmd)
	configCmd.AddCommand(configPathCmd)

	configSetCmd.Flags().Bool("user", false, "Set in user-level config (default)")
	configSetCmd.Flags().Bool("project", false, "Set in project-level config")
	configSetCmd.MarkFlagsMutuallyExclusive("user", "project")

	configGetCmd.Flags().Bool("user", false, "Get from user-level config only")
	configGetCmd.Flags().Bool("project", false, "Get from project-level config only")
	configGetCmd.MarkFlagsMutuallyExclusive("user", "project")
}

func writeYAML(out io.Writer, cfg cfgpkg.Configuration) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return enc.Close()
}

// projectPath returns the --config file or the default project config.
func projectPath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		return p
	}
	return cfgpkg.ProjectConfigPath()
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	if _, err := cfgpkg.GetKeySchema(key); err != nil {
		return shared.InvalidArgs(formatUnknownKeyError(key))
	}

	filePath, scope, err := resolveConfigPath(cmd)
	if err != nil {
		return err
	}

	if err := cfgpkg.SetConfigValue(filePath, key, value); err != nil {
		return shared.InvalidArgs(fmt.Errorf("setting config value: %w", err))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s in %s config (%s)\n", key, value, scope, filePath)
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	out := cmd.OutOrStdout()

	schema, err := cfgpkg.GetKeySchema(key)
	if err != nil {
		return shared.InvalidArgs(formatUnknownKeyError(key))
	}

	useUser, _ := cmd.Flags().GetBool("user")
	useProject, _ := cmd.Flags().GetBool("project")

	userPath, err := cfgpkg.UserConfigPath()
	if err != nil {
		return fmt.Errorf("getting user config path: %w", err)
	}

	type source struct{ scope, path string }
	var sources []source
	switch {
	case useUser:
		sources = []source{{"user", userPath}}
	case useProject:
		sources = []source{{"project", projectPath(cmd)}}
	default:
		// Project overrides user
		sources = []source{{"project", projectPath(cmd)}, {"user", userPath}}
	}

	for _, src := range sources {
		value, found, err := cfgpkg.GetConfigValue(src.path, key)
		if err != nil {
			return fmt.Errorf("reading %s config: %w", src.scope, err)
		}
		if found {
			fmt.Fprintf(out, "%s: %v (from %s config)\n", key, value, src.scope)
			return nil
		}
	}

	if useUser || useProject {
		fmt.Fprintf(out, "%s: not set in %s config\n", key, sources[0].scope)
		return nil
	}
	fmt.Fprintf(out, "%s: %v (default)\n", key, schema.Default)
	return nil
}

// resolveConfigPath returns the target file for set, defaulting to user scope.
func resolveConfigPath(cmd *cobra.Command) (path, scope string, err error) {
	if useProject, _ := cmd.Flags().GetBool("project"); useProject {
		return projectPath(cmd), "project", nil
	}
	path, err = cfgpkg.UserConfigPath()
	if err != nil {
		return "", "", fmt.Errorf("getting user config path: %w", err)
	}
	return path, "user", nil
}

func printKeys(out io.Writer) {
	colors := shared.NewColors()
	for _, key := range cfgpkg.SortedKeys() {
		schema := cfgpkg.KnownKeys[key]
		typeName := schema.Type.String()
		if len(schema.AllowedValues) > 0 {
			typeName = strings.Join(schema.AllowedValues, "|")
		}
		fmt.Fprintf(out, "%s (%s, default: %v)\n", colors.Cyan(key), typeName, schema.Default)
		fmt.Fprintf(out, "    %s\n", schema.Description)
	}
}

func formatUnknownKeyError(key string) error {
	return fmt.Errorf("unknown configuration key %q\nRun 'agentnotify config keys' to list valid keys", key)
}
