// Package ui provides unified output formatting for the jerseykit CLI.
//
// Overview:
//   - Responsibility: User-facing progress messages, step indicators, and prompts
//   - Key Types: Message for JSON output, Prompter for line-based questions
//   - Concurrency Model: Thread-safe output operations
//   - Error Semantics: Output failures are ignored; prompt failures are returned
//   - Performance Notes: Unbuffered writes, minimal allocations
//
// Usage:
//
//	ui.Info("Installing required software...")
//	ui.Error("Deployment failed: %v", err)
package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	verbose        bool
	nonInteractive bool
	jsonOutput     bool
	stdout         io.Writer = os.Stdout
	stderr         io.Writer = os.Stderr
	styles                   = newStyleSet(os.Stdout)
	mu             sync.RWMutex
)

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

type styleSet struct {
	debug   lipgloss.Style
	info    lipgloss.Style
	warning lipgloss.Style
	errs    lipgloss.Style
	success lipgloss.Style
	step    lipgloss.Style
	prompt  lipgloss.Style
}

// newStyleSet binds styles to w so colors are only emitted when w is a terminal.
func newStyleSet(w io.Writer) styleSet {
	r := lipgloss.NewRenderer(w)
	return styleSet{
		debug:   r.NewStyle().Foreground(colorDim),
		info:    r.NewStyle().Foreground(colorGray),
		warning: r.NewStyle().Foreground(colorYellow),
		errs:    r.NewStyle().Foreground(colorRed).Bold(true),
		success: r.NewStyle().Foreground(colorGreen),
		step:    r.NewStyle().Foreground(colorCyan),
		prompt:  r.NewStyle().Foreground(colorCyan).Bold(true),
	}
}

// OutputLevel represents the severity level of a message.
type OutputLevel string

const (
	LevelDebug   OutputLevel = "debug"
	LevelInfo    OutputLevel = "info"
	LevelWarning OutputLevel = "warning"
	LevelError   OutputLevel = "error"
	LevelSuccess OutputLevel = "success"
)

// Message represents a structured output message.
//
// Parameters:
//   - Level: Message severity level
//   - Text: Human-readable message content
//   - Data: Optional structured data for JSON output
//   - Timestamp: When the message was created
//
// Returns:
//   - None (data structure)
//
// Concurrency:
//   - Safe for concurrent access
//
// Performance:
//   - Minimal memory allocation
type Message struct {
	Level     OutputLevel `json:"level"`
	Text      string      `json:"text"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// SetOutput redirects normal output to out and errors to errOut.
//
// Parameters:
//   - out: Destination for info, success, warning, debug and step messages
//   - errOut: Destination for error messages
//
// Returns:
//   - None
//
// Concurrency:
//   - Thread-safe
//
// Performance:
//   - Rebuilds the style set once
func SetOutput(out, errOut io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	stdout = out
	stderr = errOut
	styles = newStyleSet(out)
}

// SetVerbose enables or disables debug messages.
func SetVerbose(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = enabled
}

// SetNonInteractive makes every prompt fail with ErrNoInput instead of reading input.
func SetNonInteractive(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	nonInteractive = enabled
}

// SetJSONOutput enables JSON-formatted output.
func SetJSONOutput(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	jsonOutput = enabled
}

// IsTerminal reports whether v is a file attached to a terminal.
func IsTerminal(v any) bool {
	f, ok := v.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// output writes a message to the appropriate output stream.
//
// Parameters:
//   - level: Message severity level
//   - format: Printf-style format string
//   - args: Format arguments
//
// Returns:
//   - None
//
// Concurrency:
//   - Thread-safe
//
// Performance:
//   - One write per message
func output(level OutputLevel, format string, args ...interface{}) {
	mu.RLock()
	useJSON := jsonOutput
	useVerbose := verbose
	out, errOut, st := stdout, stderr, styles
	mu.RUnlock()

	if level == LevelDebug && !useVerbose {
		return
	}

	text := fmt.Sprintf(format, args...)

	if useJSON {
		if err := json.NewEncoder(out).Encode(Message{Level: level, Text: text, Timestamp: time.Now()}); err != nil {
			fmt.Fprintf(errOut, "Failed to encode JSON output: %v\n", err)
		}
		return
	}

	writer := out
	if level == LevelError {
		writer = errOut
	}

	var prefix string
	switch level {
	case LevelDebug:
		prefix = st.debug.Render("🔍 DEBUG:")
	case LevelInfo:
		prefix = st.info.Render("ℹ️  INFO:")
	case LevelWarning:
		prefix = st.warning.Render("⚠️  WARN:")
	case LevelError:
		prefix = st.errs.Render("❌ ERROR:")
	case LevelSuccess:
		prefix = st.success.Render("✅ SUCCESS:")
	}

	fmt.Fprintf(writer, "%s %s\n", prefix, text)
}

// Debug outputs a debug message, shown only in verbose mode.
func Debug(format string, args ...interface{}) {
	output(LevelDebug, format, args...)
}

// Info outputs an informational message.
func Info(format string, args ...interface{}) {
	output(LevelInfo, format, args...)
}

// Warning outputs a warning message.
func Warning(format string, args ...interface{}) {
	output(LevelWarning, format, args...)
}

// Error outputs an error message to the error stream.
func Error(format string, args ...interface{}) {
	output(LevelError, format, args...)
}

// Success outputs a success message.
func Success(format string, args ...interface{}) {
	output(LevelSuccess, format, args...)
}

// Plain writes text without any prefix, for guidance lines the user may copy.
// Blank lines are dropped in JSON mode.
func Plain(format string, args ...interface{}) {
	mu.RLock()
	useJSON := jsonOutput
	out := stdout
	mu.RUnlock()

	if useJSON {
		if format != "" {
			Info(format, args...)
		}
		return
	}
	fmt.Fprintf(out, format+"\n", args...)
}

// Step outputs a step indicator with message.
//
// Parameters:
//   - step: Step number
//   - total: Total number of steps
//   - format: Printf-style format string
//   - args: Format arguments
//
// Returns:
//   - None
//
// Concurrency:
//   - Thread-safe
//
// Performance:
//   - Minimal formatting overhead
func Step(step, total int, format string, args ...interface{}) {
	mu.RLock()
	useJSON := jsonOutput
	out, st := stdout, styles
	mu.RUnlock()

	if useJSON {
		Info(format, args...)
		return
	}

	text := fmt.Sprintf(format, args...)
	fmt.Fprintf(out, "  %s %s\n", st.step.Render(fmt.Sprintf("[%d/%d]", step, total)), text)
}
