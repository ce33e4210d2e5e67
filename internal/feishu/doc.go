// Package feishu delivers notifications to Feishu (Lark) custom-bot webhooks.
//
// Three message types are supported, matching what the bot API accepts:
//
//   - text: a single plain-text block
//   - post: a rich-text post with a title (zh_cn locale)
//   - interactive: a template card filled with title and content variables
//
// A webhook accepts a message only when its JSON response carries "code": 0.
// Every other response, including HTTP 200 with a non-zero code, is a failure.
//
// # Signing
//
// Bots created with "signature verification" reject unsigned requests. When a
// secret is configured, each payload carries a Unix timestamp and
// base64(HMAC-SHA256(key=timestamp+"\n"+secret, message="")).
package feishu
