package coordinator

import (
	"io"

	"github.com/pterm/pterm"
)

// Notifier surfaces save outcomes to the user outside of any page or
// popup, the analogue of a desktop notification.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// TerminalNotifier prints notifications with pterm prefixes.
type TerminalNotifier struct {
	success pterm.PrefixPrinter
	failure pterm.PrefixPrinter
}

// NewTerminalNotifier creates a notifier writing to w.
func NewTerminalNotifier(w io.Writer) *TerminalNotifier {
	return &TerminalNotifier{
		success: *pterm.Success.WithWriter(w),
		failure: *pterm.Error.WithWriter(w),
	}
}

func (n *TerminalNotifier) Success(message string) {
	n.success.Println(message)
}

func (n *TerminalNotifier) Error(message string) {
	n.failure.Println(message)
}

// NopNotifier discards all notifications. Used when quiet mode is
// configured.
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Error(string)   {}

// defaultLogf reports internal, non-user-facing failures.
func defaultLogf(format string, args ...any) {
	pterm.Warning.Printfln(format, args...)
}
