package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// App lists the scenes and opens a live preview of the chosen one. Esc
// goes back to the list.
type App struct {
	scenes   []string
	describe func(string) string
	build    Builder
	fps      int
	cursor   int
	live     *Model
	err      error
}

func NewApp(scenes []string, describe func(string) string, build Builder, fps int) App {
	return App{scenes: scenes, describe: describe, build: build, fps: fps}
}

func (a App) Init() tea.Cmd { return nil }

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.live != nil {
		if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
			a.live = nil
			return a, nil
		}
		next, cmd := a.live.Update(msg)
		live := next.(Model)
		a.live = &live
		return a, cmd
	}

	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}
	switch k.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.scenes)-1 {
			a.cursor++
		}
	case "enter":
		if len(a.scenes) == 0 {
			return a, nil
		}
		live, err := NewModel(a.scenes[a.cursor], a.build, a.fps)
		if err != nil {
			a.err = err
			return a, nil
		}
		a.err = nil
		a.live = &live
		return a, live.Init()
	}
	return a, nil
}

// Current is the open preview, or nil while the list is shown.
func (a App) Current() *Model { return a.live }

func (a App) View() string {
	if a.live != nil {
		return a.live.View()
	}
	th := Themes[0]
	var s strings.Builder
	s.WriteString(lipgloss.NewStyle().Foreground(th.Accent).Bold(true).Render("NEOMATRIX") + "\n\n")
	for i, name := range a.scenes {
		line := fmt.Sprintf("%-10s %s", name, a.describe(name))
		if i == a.cursor {
			s.WriteString(lipgloss.NewStyle().Foreground(th.Accent).Render("> "+line) + "\n")
		} else {
			s.WriteString(lipgloss.NewStyle().Foreground(th.Muted).Render("  "+line) + "\n")
		}
	}
	if a.err != nil {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(th.Warn).Render(a.err.Error()) + "\n")
	}
	s.WriteString(lipgloss.NewStyle().Foreground(th.Muted).Render("\n↑↓:Select ⏎:Open Esc:Back Q:Quit"))
	return s.String()
}
