// Package output prints styled terminal messages for the plume CLI.
//
// Messages go to stdout by default; SetOutput redirects them, which the
// tests and the dry-run listing use.
package output

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)

	mu          sync.Mutex
	out         io.Writer = os.Stdout
	verboseMode bool
)

// SetVerbose enables or disables verbose output.
// The CLI calls this when --verbose is set.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verboseMode = v
}

// IsVerbose reports whether verbose output is enabled
func IsVerbose() bool {
	mu.Lock()
	defer mu.Unlock()
	return verboseMode
}

// SetOutput redirects all messages and returns the previous writer
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = w
	return prev
}

func emit(s string) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintln(out, s)
}

// Success prints a completed operation.
//
// Example:
//
//	output.Success("Generated ada-lovelace-portfolio.zip")
func Success(msg string) {
	emit(successStyle.Render("🪶 " + msg))
}

// Error prints a failure that needs user attention.
func Error(msg string) {
	emit(errorStyle.Render("❌ " + msg))
}

// Warn prints something the user should know about but that did not fail
func Warn(msg string) {
	emit(warnStyle.Render("⚠️  " + msg))
}

// Info prints a status update.
func Info(msg string) {
	emit(infoStyle.Render("ℹ️  " + msg))
}

// Step prints an indented sub-item in gray.
//
// Example:
//
//	output.Step("cd ada-lovelace-portfolio")
//	output.Step("npm install")
func Step(msg string) {
	emit(stepStyle.Render("   " + msg))
}

// Field prints an aligned "label: value" line
func Field(label, value string) {
	emit("   " + labelStyle.Render(fmt.Sprintf("%-10s", label+":")) + " " + value)
}

// Verbose prints a debug message only when verbose mode is enabled.
func Verbose(msg string) {
	if IsVerbose() {
		emit(stepStyle.Render("🔍 " + msg))
	}
}
