package ui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	appevents "github.com/rescp17/daemonSend/internal/app_events"
	senderEvent "github.com/rescp17/daemonSend/internal/app_events/sender"
	"github.com/rescp17/daemonSend/internal/style"
	"github.com/rescp17/daemonSend/pkg/multiFilePicker"
	"github.com/rescp17/daemonSend/pkg/upload"
)

const (
	sendLabel     = "Send to daemon"
	sendingLabel  = "Sending to daemon..."
	noFileLabel   = "Upload File"
	formTitle     = "🚀 Send File"
	stepFileTitle = "Choose File"
	stepToTitle   = "Send To"
	stepSendTitle = "Send"
)

// listenForAppMessages is a command that listens for messages from the app controller.
func (m *model) listenForAppMessages() tea.Cmd {
	return func() tea.Msg {
		return <-m.app.UIMessages()
	}
}

func (m *model) sendEvent(event appevents.AppEvent) {
	m.app.AppEvents() <- event
}

func (m *model) updateSender(msg tea.Msg) tea.Cmd {
	if cmd, processed := m.handleSenderAppEvent(msg); processed {
		return cmd
	}

	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return cmd
	case multiFilePicker.ChosenMsg:
		m.picking = false
		slog.Info("Files chosen", "count", len(msg.Files))
		m.sendEvent(senderEvent.FilesChosenMsg{Files: msg.Files})
		return nil
	case multiFilePicker.CancelledMsg:
		m.picking = false
		return nil
	}

	if m.picking {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.updateFormKeys(msg)
	}
	return nil
}

// handleSenderAppEvent applies messages coming from the App.
func (m *model) handleSenderAppEvent(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case senderEvent.StateMsg:
		m.state = msg
		return m.listenForAppMessages(), true
	case senderEvent.FormResetMsg:
		m.recipient.Reset()
		return m.listenForAppMessages(), true
	}
	return nil, false
}

func (m *model) updateFormKeys(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Submit):
		m.submit()
		return nil
	case key.Matches(msg, m.keys.Next):
		return m.setFocus((m.focus + 1) % stepCount)
	case key.Matches(msg, m.keys.Prev):
		return m.setFocus((m.focus + stepCount - 1) % stepCount)
	case key.Matches(msg, m.keys.Activate):
		switch m.focus {
		case stepFile:
			return m.pickFile()
		case stepRecipient:
			return m.setFocus(stepSend)
		case stepSend:
			m.submit()
			return nil
		}
	}

	if m.focus == stepRecipient {
		var cmd tea.Cmd
		m.recipient, cmd = m.recipient.Update(msg)
		return cmd
	}
	return nil
}

func (m *model) setFocus(s step) tea.Cmd {
	m.focus = s
	if s == stepRecipient {
		return m.recipient.Focus()
	}
	m.recipient.Blur()
	return nil
}

// pickFile hands the screen to the file browser until it reports back.
func (m *model) pickFile() tea.Cmd {
	m.picking = true
	if err := m.picker.Reload(); err != nil {
		slog.Warn("Could not reload file browser", "error", err)
	}
	return m.picker.Init()
}

func (m *model) submit() {
	m.sendEvent(senderEvent.SubmitMsg{Recipient: m.recipient.Value()})
}

func (m model) formView() string {
	var b strings.Builder

	b.WriteString(style.TitleStyle.Render(formTitle) + "\n")

	b.WriteString(stepHeader(1, stepFileTitle))
	b.WriteString(m.stepBody(stepFile, m.fileButton()))

	b.WriteString(stepHeader(2, stepToTitle))
	b.WriteString(m.stepBody(stepRecipient, m.recipient.View()))

	b.WriteString(stepHeader(3, stepSendTitle))
	b.WriteString(m.stepBody(stepSend, statusLine(m.state.Result)+"\n\n"+m.sendButton()))

	return b.String()
}

func stepHeader(n int, title string) string {
	return style.StepNumberStyle.Render(fmt.Sprint(n)) + " " + title + "\n"
}

func (m model) stepBody(s step, body string) string {
	st := style.StepStyle
	if m.focus == s {
		st = style.FocusedStepStyle
	}
	return st.Render(body) + "\n"
}

func (m model) fileButton() string {
	if !m.state.HasFile {
		return style.ButtonStyle.Render(noFileLabel)
	}
	return style.ButtonStyle.Render(m.state.FileName + "\n" + m.state.FileLabel)
}

func (m model) sendButton() string {
	if m.state.InFlight {
		return m.spinner.View() + " " + style.ButtonStyle.Render(sendingLabel)
	}
	return style.ButtonStyle.Render(sendLabel)
}

// statusLine colours the result text by variant.
func statusLine(r upload.Result) string {
	switch r.(type) {
	case upload.Failed:
		return style.ErrorStyle.Render(r.Text())
	case upload.Succeeded:
		return style.SuccessStyle.Render(r.Text())
	default:
		return style.IdleStyle.Render(r.Text())
	}
}
