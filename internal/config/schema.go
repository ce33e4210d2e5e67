package config

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// ConfigValueType defines the expected type for a configuration value.
type ConfigValueType int

const (
	TypeBool ConfigValueType = iota
	TypeDuration
	TypeString
	TypeEnum
)

// String returns the string representation of ConfigValueType.
func (t ConfigValueType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeDuration:
		return "duration"
	case TypeString:
		return "string"
	case TypeEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// ConfigKeySchema defines a known configuration key with its expected type and validation rules.
type ConfigKeySchema struct {
	Path          string          // Dotted key path (e.g., "feishu.style")
	Type          ConfigValueType // Expected value type for validation
	AllowedValues []string        // Valid values for enum types (empty for non-enums)
	Description   string          // Human-readable description for help text
	Default       interface{}     // Default value
}

// KnownKeys is the registry of all known configuration keys with their schemas.
var KnownKeys = map[string]ConfigKeySchema{
	"enabled": {
		Path:        "enabled",
		Type:        TypeBool,
		Description: "Master switch for every channel",
		Default:     true,
	},
	"log_level": {
		Path:          "log_level",
		Type:          TypeEnum,
		AllowedValues: []string{"debug", "info", "warn", "error", "disabled"},
		Description:   "Diagnostic log level on stderr",
		Default:       "warn",
	},
	"terminal_name": {
		Path:        "terminal_name",
		Type:        TypeString,
		Description: "Terminal label announced before each message",
		Default:     "",
	},
	"grace_period": {
		Path:        "grace_period",
		Type:        TypeDuration,
		Description: "Wait before exit so detached audio can play (e.g., 3s)",
		Default:     "3s",
	},
	"stdin_timeout": {
		Path:        "stdin_timeout",
		Type:        TypeDuration,
		Description: "Idle timeout while reading a hook payload from stdin",
		Default:     "1s",
	},
	"feishu.enabled": {
		Path:        "feishu.enabled",
		Type:        TypeBool,
		Description: "Enable Feishu push (defaults to on when a webhook URL is set)",
		Default:     false,
	},
	"feishu.webhook_url": {
		Path:        "feishu.webhook_url",
		Type:        TypeString,
		Description: "Feishu custom bot webhook URL",
		Default:     "",
	},
	"feishu.secret": {
		Path:        "feishu.secret",
		Type:        TypeString,
		Description: "Signing secret for bots with signature verification",
		Default:     "",
	},
	"feishu.style": {
		Path:          "feishu.style",
		Type:          TypeEnum,
		AllowedValues: []string{"text", "post", "card"},
		Description:   "Feishu message type",
		Default:       "post",
	},
	"feishu.card_template_id": {
		Path:        "feishu.card_template_id",
		Type:        TypeString,
		Description: "Template used by the card style",
		Default:     "AAqKGP7Qx6y9R",
	},
	"feishu.timeout": {
		Path:        "feishu.timeout",
		Type:        TypeDuration,
		Description: "HTTP timeout for one webhook request",
		Default:     "5s",
	},
	"sound.enabled": {
		Path:        "sound.enabled",
		Type:        TypeBool,
		Description: "Enable the sound and speech alert",
		Default:     true,
	},
	"sound.voice": {
		Path:        "sound.voice",
		Type:        TypeString,
		Description: "macOS say(1) voice",
		Default:     "Tingting",
	},
}

// SortedKeys returns the known key paths in lexical order.
func SortedKeys() []string {
	keys := make([]string, 0, len(KnownKeys))
	for k := range KnownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ErrUnknownKey is returned when trying to access an unknown configuration key.
type ErrUnknownKey struct {
	Key string
}

func (e ErrUnknownKey) Error() string {
	return "unknown configuration key: " + e.Key
}

// GetKeySchema returns the schema for a known configuration key.
// Returns ErrUnknownKey if the key is not in the registry.
func GetKeySchema(path string) (ConfigKeySchema, error) {
	schema, ok := KnownKeys[path]
	if !ok {
		return ConfigKeySchema{}, ErrUnknownKey{Key: path}
	}
	return schema, nil
}

// ParsedValue represents a configuration value after type inference and validation.
type ParsedValue struct {
	Raw    string      // Original string input from user
	Parsed interface{} // Value converted to correct type
	Type   ConfigValueType
}

// ValidateValue validates a value against the schema for a given key.
// Returns the parsed value or an error with details about what's wrong.
func ValidateValue(key, value string) (ParsedValue, error) {
	schema, err := GetKeySchema(key)
	if err != nil {
		return ParsedValue{}, err
	}
	return validateAgainstSchema(schema, value)
}

// validateAgainstSchema validates a value against a specific schema.
func validateAgainstSchema(schema ConfigKeySchema, value string) (ParsedValue, error) {
	switch schema.Type {
	case TypeBool:
		return parseBoolValue(value)
	case TypeDuration:
		return parseDurationValue(value)
	case TypeEnum:
		return parseEnumValue(schema, value)
	case TypeString:
		return ParsedValue{Raw: value, Parsed: value, Type: TypeString}, nil
	default:
		return ParsedValue{}, fmt.Errorf("unsupported type: %v", schema.Type)
	}
}

// parseBoolValue parses and validates a boolean value.
func parseBoolValue(value string) (ParsedValue, error) {
	switch strings.ToLower(value) {
	case "true":
		return ParsedValue{Raw: value, Parsed: true, Type: TypeBool}, nil
	case "false":
		return ParsedValue{Raw: value, Parsed: false, Type: TypeBool}, nil
	default:
		return ParsedValue{}, fmt.Errorf("invalid boolean: %q (expected true or false)", value)
	}
}

// parseDurationValue parses and validates a duration value.
func parseDurationValue(value string) (ParsedValue, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return ParsedValue{}, fmt.Errorf("invalid duration: %q (examples: 5m, 1h30m, 10s)", value)
	}
	return ParsedValue{Raw: value, Parsed: d.String(), Type: TypeDuration}, nil
}

// parseEnumValue validates a value against allowed enum options.
func parseEnumValue(schema ConfigKeySchema, value string) (ParsedValue, error) {
	for _, allowed := range schema.AllowedValues {
		if value == allowed {
			return ParsedValue{Raw: value, Parsed: value, Type: TypeEnum}, nil
		}
	}
	return ParsedValue{}, fmt.Errorf(
		"invalid value: %q (valid options: %s)",
		value,
		strings.Join(schema.AllowedValues, ", "),
	)
}
