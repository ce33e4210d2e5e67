package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// Display renders delivery progress
type Display struct {
	capabilities TerminalCapabilities
	symbols      ProgressSymbols
	out          io.Writer
	spinner      *spinner.Spinner
}

// NewDisplay creates a display writing to out with the given terminal capabilities
func NewDisplay(caps TerminalCapabilities, out io.Writer) *Display {
	return &Display{
		capabilities: caps,
		symbols:      SelectSymbols(caps),
		out:          out,
	}
}

// Start shows a spinner with msg on terminals. It is a no-op otherwise so
// hook output stays clean.
func (d *Display) Start(msg string) {
	if !d.capabilities.IsTTY {
		return
	}
	d.Stop()
	d.spinner = spinner.New(
		spinner.CharSets[d.symbols.SpinnerSet],
		100*time.Millisecond,
		spinner.WithWriter(d.out),
	)
	d.spinner.Suffix = " " + msg
	d.spinner.Start()
}

// Stop stops the spinner if running
func (d *Display) Stop() {
	if d.spinner != nil {
		d.spinner.Stop()
		d.spinner = nil
	}
}

// Result stops the spinner and prints one line for a channel result
func (d *Display) Result(channel string, ok bool, detail string) {
	d.Stop()

	mark := checkmark(d.symbols, d.capabilities.SupportsColor)
	if !ok {
		mark = failureMark(d.symbols, d.capabilities.SupportsColor)
	}
	fmt.Fprintln(d.out, resultLine(mark, channel, detail))
}

// Spinning reports whether the spinner is active
func (d *Display) Spinning() bool {
	return d.spinner != nil
}
