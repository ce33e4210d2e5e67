// Package status classifies free-form task and hook text into one of the
// status labels shown in notifications.
//
// Classification is keyword based and runs in a fixed priority order:
// awaiting-input keywords win over failure keywords, which win over the
// Completed default. An empty or unrecognized text is always Completed.
package status
