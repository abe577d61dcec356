package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	senderEvent "github.com/rescp17/daemonSend/internal/app_events/sender"
	"github.com/rescp17/daemonSend/internal/style"
	"github.com/rescp17/daemonSend/pkg/multiFilePicker"
	"github.com/rescp17/daemonSend/pkg/upload"
)

// step is one of the three numbered sections of the form.
type step int

const (
	stepFile step = iota
	stepRecipient
	stepSend
	stepCount
)

type keyMap struct {
	Next     key.Binding
	Prev     key.Binding
	Activate key.Binding
	Submit   key.Binding
	Quit     key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Activate, k.Submit, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Next, k.Prev}, {k.Activate, k.Submit, k.Quit}}
}

var defaultKeyMap = keyMap{
	Next:     key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next step")),
	Prev:     key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous step")),
	Activate: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "choose/send")),
	Submit:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "send")),
	Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}

type model struct {
	app       AppController
	keys      keyMap
	help      help.Model
	spinner   spinner.Model
	recipient textinput.Model
	picker    multiFilePicker.Model
	focus     step
	picking   bool
	state     senderEvent.StateMsg
}

// InitialModel builds the send form. startDir is where the file browser opens.
// The caller is responsible for running app.
func InitialModel(app AppController, startDir string) model {
	ti := textinput.New()
	ti.Placeholder = "Recipient ID"
	ti.CharLimit = 256
	ti.Width = 40

	return model{
		app:       app,
		keys:      defaultKeyMap,
		help:      help.New(),
		spinner:   style.NewSpinner(),
		recipient: ti,
		picker:    multiFilePicker.InitialModel(startDir),
		state:     senderEvent.StateMsg{Result: upload.Idle{}},
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForAppMessages())
}

func (m model) View() string {
	if m.picking {
		return m.picker.View()
	}
	return m.formView() + "\n" + m.help.View(m.keys)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	cmd := m.updateSender(msg)
	return m, cmd
}
