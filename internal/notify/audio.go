package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
)

const (
	// DefaultMacOSVoice is the say(1) voice used for speech on macOS.
	DefaultMacOSVoice = "Tingting"

	// macOSSoundDir holds the system sounds referenced by the cue table.
	macOSSoundDir = "/System/Library/Sounds"

	// beepMillis is the fallback tone duration on Windows.
	beepMillis = 300

	terminalBell = "\a"
)

// ErrDegraded reports that the primary alert could not be launched and the
// terminal bell was used instead.
var ErrDegraded = errors.New("audio degraded to terminal bell")

// AudioCue describes what to play for one event key.
type AudioCue struct {
	// Phrase is spoken by the speech synthesizer.
	Phrase string
	// Sound is a macOS system sound name (without extension).
	Sound string
	// BeepHz is the Windows fallback tone frequency.
	BeepHz int
}

// cueTable maps event keys to alerts. Unmapped keys use "default".
var cueTable = map[string]AudioCue{
	"Stop":               {Phrase: "任务完成", Sound: "Glass", BeepHz: 600},
	"permission_prompt":  {Phrase: "需要权限确认", Sound: "Sosumi", BeepHz: 1000},
	"idle_prompt":        {Phrase: "等待你的输入", Sound: "Tink", BeepHz: 800},
	"elicitation_dialog": {Phrase: "需要输入信息", Sound: "Ping", BeepHz: 900},
	"SubagentStop":       {Phrase: "子任务完成", Sound: "Pop", BeepHz: 700},
	"default":            {Phrase: "任务完成", Sound: "Glass", BeepHz: 800},
}

// LookupCue returns the alert for an event. Notification events are keyed by
// their subtype when one is present.
func LookupCue(c Cue) AudioCue {
	key := c.Event
	if c.Event == "Notification" && c.Subtype != "" {
		key = c.Subtype
	}
	if cue, ok := cueTable[key]; ok {
		return cue
	}
	return cueTable["default"]
}

// SpokenPhrase returns the phrase for c, prefixed spoken-style when prefix
// is non-empty.
func SpokenPhrase(c Cue, prefix string) string {
	phrase := LookupCue(c).Phrase
	if prefix != "" {
		return prefix + "，" + phrase
	}
	return phrase
}

// Launcher starts an external program without waiting for it to exit.
type Launcher interface {
	Start(name string, args ...string) error
}

// execLauncher starts detached processes with os/exec.
type execLauncher struct{}

// Start launches the program and reaps it in the background.
func (execLauncher) Start(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", name, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// AudioChannel plays a local alert. It implements Channel for KindAudio.
type AudioChannel struct {
	platform string
	voice    string
	launcher Launcher
	bell     io.Writer
	logger   zerolog.Logger
}

// AudioOption customizes an AudioChannel.
type AudioOption func(*AudioChannel)

// WithPlatform overrides the detected operating system (GOOS value).
func WithPlatform(platform string) AudioOption {
	return func(a *AudioChannel) { a.platform = platform }
}

// WithLauncher replaces the process launcher.
func WithLauncher(l Launcher) AudioOption {
	return func(a *AudioChannel) { a.launcher = l }
}

// WithBell sets where the terminal bell is written.
func WithBell(w io.Writer) AudioOption {
	return func(a *AudioChannel) { a.bell = w }
}

// WithVoice sets the macOS speech voice. Empty keeps the default.
func WithVoice(voice string) AudioOption {
	return func(a *AudioChannel) {
		if voice != "" {
			a.voice = voice
		}
	}
}

// NewAudioChannel creates an audio channel for the current platform.
func NewAudioChannel(logger zerolog.Logger, opts ...AudioOption) *AudioChannel {
	a := &AudioChannel{
		platform: runtime.GOOS,
		voice:    DefaultMacOSVoice,
		launcher: execLauncher{},
		bell:     os.Stdout,
		logger:   logger.With().Str("channel", string(KindAudio)).Logger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Kind implements Channel.
func (a *AudioChannel) Kind() Kind { return KindAudio }

// Deliver launches the platform alert and returns without waiting for it.
// Launch failures fall back to the terminal bell and return ErrDegraded.
func (a *AudioChannel) Deliver(_ context.Context, n Notification) error {
	cue := LookupCue(n.Cue)
	phrase := SpokenPhrase(n.Cue, n.VoicePrefix)

	a.logger.Debug().
		Str("phrase", phrase).
		Str("platform", a.platform).
		Msg("playing alert")

	var err error
	switch a.platform {
	case "darwin":
		err = a.playDarwin(cue, phrase)
	case "windows":
		err = a.playWindows(cue, phrase)
	default:
		a.ringBell()
		return nil
	}

	if err != nil {
		a.logger.Warn().Err(err).Msg("alert launch failed, using terminal bell")
		a.ringBell()
		return fmt.Errorf("%w: %v", ErrDegraded, err)
	}
	return nil
}

// playDarwin starts the system sound and the speech utterance concurrently.
// It fails only when neither could be launched.
func (a *AudioChannel) playDarwin(cue AudioCue, phrase string) error {
	soundPath := macOSSoundDir + "/" + cue.Sound + ".aiff"

	soundErr := a.launcher.Start("afplay", soundPath)
	if soundErr != nil {
		a.logger.Debug().Err(soundErr).Msg("afplay failed")
	}

	sayErr := a.launcher.Start("say", "-v", a.voice, phrase)
	if sayErr != nil {
		a.logger.Debug().Err(sayErr).Msg("say failed")
	}

	if soundErr != nil && sayErr != nil {
		return errors.Join(soundErr, sayErr)
	}
	return nil
}

// playWindows speaks the phrase through System.Speech and beeps at the cue
// frequency when speech synthesis cannot start.
func (a *AudioChannel) playWindows(cue AudioCue, phrase string) error {
	return a.launcher.Start("powershell", "-NoProfile", "-Command", windowsSpeechScript(phrase, cue.BeepHz))
}

// windowsSpeechScript builds the PowerShell speech command.
func windowsSpeechScript(phrase string, beepHz int) string {
	return fmt.Sprintf(
		"try { Add-Type -AssemblyName System.Speech; (New-Object System.Speech.Synthesis.SpeechSynthesizer).Speak('%s') } catch { [console]::Beep(%d, %d) }",
		escapeForPowerShell(phrase), beepHz, beepMillis,
	)
}

func (a *AudioChannel) ringBell() {
	_, _ = io.WriteString(a.bell, terminalBell)
}

// escapeForPowerShell escapes s for a single-quoted PowerShell string
func escapeForPowerShell(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
