package input

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow"))
)

// Prompter reads answers from in and writes prompts to out
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	eof bool
}

// New creates a prompter
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// readLine returns the next trimmed line. ok is false once input is exhausted.
func (p *Prompter) readLine() (line string, ok bool) {
	if p.eof {
		return "", false
	}
	line, err := p.in.ReadString('\n')
	if err != nil {
		p.eof = true
		if line == "" {
			fmt.Fprintln(p.out)
			return "", false
		}
	}
	return strings.TrimSpace(line), true
}

// Prompt asks for text input with an optional default value.
// If the user presses Enter without typing anything, the default is returned.
//
// Example:
//
//	location := p.Prompt("Location", "")
//	// Displays: Location: _
func (p *Prompter) Prompt(message, defaultValue string) string {
	if defaultValue != "" {
		fmt.Fprint(p.out, promptStyle.Render(message)+" "+
			hintStyle.Render(fmt.Sprintf("(%s)", defaultValue))+": ")
	} else {
		fmt.Fprint(p.out, promptStyle.Render(message)+": ")
	}

	answer, ok := p.readLine()
	if !ok || answer == "" {
		return defaultValue
	}
	return answer
}

// Required asks until a non-empty answer is given
func (p *Prompter) Required(message string) (string, error) {
	for {
		fmt.Fprint(p.out, promptStyle.Render(message)+" "+hintStyle.Render("(required)")+": ")

		answer, ok := p.readLine()
		if !ok {
			return "", fmt.Errorf("no answer for %q: %w", message, io.ErrUnexpectedEOF)
		}
		if answer != "" {
			return answer, nil
		}
		fmt.Fprintln(p.out, warnStyle.Render("   "+message+" is required"))
	}
}

// Confirm asks a yes/no question.
// Returns true for y/Y/yes/YES. Pressing Enter returns defaultYes.
//
// Example:
//
//	if p.Confirm("Add another project?", false) {
//	    // ...
//	}
//	// Displays: Add another project? [y/N]: _
func (p *Prompter) Confirm(message string, defaultYes bool) bool {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}

	fmt.Fprint(p.out, promptStyle.Render(message)+" "+hintStyle.Render(hint)+": ")

	answer, ok := p.readLine()
	if !ok || answer == "" {
		return defaultYes
	}

	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}

// Section prints a heading between groups of questions
func (p *Prompter) Section(title string) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, promptStyle.Render("── "+title))
}
