package ui

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"chat-agent/internal/client"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F1F1F1")).Background(lipgloss.Color("#6C50FF")).Bold(true).Padding(0, 1)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87")).Bold(true)
	codeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#757575"))
)

// Printer writes agent replies to a terminal.
type Printer struct {
	out      io.Writer
	wordWrap int
	style    string
}

// NewPrinter returns a Printer. An empty style picks the glamour style from
// the environment.
func NewPrinter(out io.Writer, wordWrap int, style string) *Printer {
	return &Printer{out: out, wordWrap: wordWrap, style: style}
}

// Print renders a successful reply as markdown under an "Agent Response"
// header, or the error message in the error style.
func (p *Printer) Print(reply client.Reply) error {
	if reply.Failed() {
		line := errorStyle.Render(reply.Error)
		if reply.Code != "" {
			line += " " + codeStyle.Render("("+reply.Code+")")
		}
		_, err := fmt.Fprintln(p.out, line)
		return err
	}

	body, err := p.markdown(reply.Response)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(p.out, "%s\n\n%s\n", headerStyle.Render("Agent Response"), body)
	return err
}

func (p *Printer) markdown(input string) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(p.wordWrap)}
	if p.style == "" {
		opts = append(opts, glamour.WithEnvironmentConfig())
	} else {
		opts = append(opts, glamour.WithStandardStyle(p.style))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("new markdown renderer: %w", err)
	}
	out, err := r.Render(input)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return strings.TrimRightFunc(out, unicode.IsSpace), nil
}
