package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tatianab/kastle/internal/models"
	"github.com/tatianab/kastle/internal/validate"
)

type model struct {
	cfg       *models.GameConfiguration
	report    validate.Report
	current   string
	textInput textinput.Model
	viewport  viewport.Model
	log       string
	width     int
	height    int
	ready     bool
}

var (
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1)

	gameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	stateStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F"))
)

const helpText = "Commands: rooms, room ID, go DIR, items, item ID, characters, character ID, talk ID, issues, /quit"

func NewModel(cfg *models.GameConfiguration) model {
	ti := textinput.New()
	ti.Placeholder = "Type a command, e.g. 'rooms'..."
	ti.Focus()
	ti.CharLimit = 156
	ti.Width = 40

	m := model{
		cfg:       cfg,
		report:    validate.Check(cfg),
		current:   cfg.InitialRoomID,
		textInput: ti,
	}
	m.log = m.header() + "\n\n" + m.execute("room "+cfg.InitialRoomID) + "\n\n"
	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			input := strings.TrimSpace(m.textInput.Value())
			if input == "" {
				return m, nil
			}
			m.textInput.Reset()
			if input == "/quit" {
				return m, tea.Quit
			}

			logWidth := int(float64(m.width) * 0.75)
			m.log += userStyle.Width(logWidth).Render("> "+input) + "\n\n"
			m.log += gameStyle.Width(logWidth).Render(m.execute(input)) + "\n\n"
			m.viewport.SetContent(m.log)
			m.viewport.GotoBottom()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(int(float64(msg.Width)*0.75), msg.Height-6)
			m.ready = true
		} else {
			m.viewport.Width = int(float64(msg.Width) * 0.75)
			m.viewport.Height = msg.Height - 6
		}
		m.viewport.SetContent(m.log)
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if !m.ready {
		return "\n  Loading world...\n"
	}

	mainView := lipgloss.JoinHorizontal(lipgloss.Top,
		m.viewport.View(),
		m.renderState(),
	)

	return "\n" + lipgloss.JoinVertical(lipgloss.Left,
		mainView,
		"\n"+m.textInput.View(),
		"\n"+helpStyle.Render(helpText),
	) + "\n"
}

func (m model) header() string {
	title := "Untitled world"
	if md := m.cfg.Metadata; md != nil && md.Name != nil {
		title = *md.Name
	}
	s := titleStyle.Render(title)
	if m.cfg.Preface != nil {
		s += "\n\n" + *m.cfg.Preface
	}
	return s
}

func (m model) renderState() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("ROOM") + "\n")
	if r, ok := m.cfg.Room(m.current); ok {
		b.WriteString(r.Name + "\n")
	} else {
		b.WriteString(warnStyle.Render(m.current+" (undeclared)") + "\n")
	}

	b.WriteString("\n" + titleStyle.Render("WORLD") + "\n")
	fmt.Fprintf(&b, "Rooms: %d\nItems: %d\nCharacters: %d\n", len(m.cfg.Rooms), len(m.cfg.Items), len(m.cfg.Characters))
	fmt.Fprintf(&b, "Player: %s\n", m.cfg.Player.Name)

	if w := m.cfg.WinningConditions; w != nil {
		b.WriteString("\n" + titleStyle.Render("WIN IF") + "\n")
		if w.PlayerOwns != nil {
			fmt.Fprintf(&b, "owns %s\n", *w.PlayerOwns)
		}
		if w.PlayerEnters != nil {
			fmt.Fprintf(&b, "enters %s\n", *w.PlayerEnters)
		}
	}

	b.WriteString("\n" + titleStyle.Render("ISSUES") + "\n")
	if m.report.OK() {
		b.WriteString("(none)")
	} else {
		b.WriteString(warnStyle.Render(fmt.Sprintf("%d found, type 'issues'", len(m.report.Issues))))
	}

	stateWidth := int(float64(m.width) * 0.23)
	return stateStyle.Width(stateWidth).Height(m.viewport.Height).Render(b.String())
}

func Run(cfg *models.GameConfiguration) error {
	p := tea.NewProgram(NewModel(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
