package config

// PlaceholderMarker marks the sample webhook URL that must be replaced.
const PlaceholderMarker = "YOUR_WEBHOOK_URL_HERE"

// GetDefaults returns the default configuration values.
// feishu.enabled is absent on purpose: it follows feishu.webhook_url.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"enabled":                 true,
		"log_level":               "warn",
		"terminal_name":           "",
		"grace_period":            "3s",
		"stdin_timeout":           "1s",
		"feishu.webhook_url":      "",
		"feishu.secret":           "",
		"feishu.style":            "post",
		"feishu.card_template_id": "AAqKGP7Qx6y9R",
		"feishu.timeout":          "5s",
		"sound.enabled":           true,
		"sound.voice":             "Tingting",
	}
}
