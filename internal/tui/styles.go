package tui

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/smileynet/assistant/internal/assistant"
	"github.com/smileynet/assistant/internal/config"
)

// Styles colors replies by kind.
type Styles struct {
	Info    lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Prompt  lipgloss.Style
}

// NewStyles builds Styles for output written to w. Color support is
// detected from w, so writers that are not terminals get plain text.
// With colors disabled every style is empty.
func NewStyles(w io.Writer, c config.Color) Styles {
	r := lipgloss.NewRenderer(w)
	if !c.Enabled {
		plain := r.NewStyle()
		return Styles{Info: plain, Success: plain, Error: plain, Prompt: plain}
	}
	fg := func(color string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(color))
	}
	return Styles{
		Info:    fg(c.Info),
		Success: fg(c.Success),
		Error:   fg(c.Error),
		Prompt:  fg(c.Prompt),
	}
}

// Reply renders a reply line by line; lipgloss would otherwise pad
// multi-line text to a common width.
func (s Styles) Reply(r assistant.Reply) string {
	style := s.Info
	switch r.Kind {
	case assistant.KindSuccess:
		style = s.Success
	case assistant.KindError:
		style = s.Error
	}
	lines := lo.Map(strings.Split(r.Text, "\n"), func(line string, _ int) string {
		return style.Render(line)
	})
	return strings.Join(lines, "\n")
}
