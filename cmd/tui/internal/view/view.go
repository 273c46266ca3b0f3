package view

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MrJamesThe3rd/collecta/internal/agent"
)

// View is the interface that all TUI screens implement.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

// CommonModel is embedded by all views.
type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// LoggedInMsg is sent once the login screen has resolved an agent.
type LoggedInMsg struct {
	Agent agent.Agent
}

// LoggedOutMsg is sent after the session document has been cleared.
type LoggedOutMsg struct {
	Err error
}
