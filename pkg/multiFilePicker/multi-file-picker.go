package multiFilePicker

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/gabriel-vasile/mimetype"
	"github.com/rescp17/daemonSend/internal/style"
	"github.com/rescp17/daemonSend/internal/util"
	"github.com/rescp17/daemonSend/pkg/fileInfo"
)

type mode int

// ChosenMsg is emitted once when the user confirms a choice. Files are in
// the order they were marked and may be empty.
type ChosenMsg struct {
	Files []fileInfo.File
}

// CancelledMsg is emitted when the user leaves the browser without choosing.
type CancelledMsg struct{}

const (
	modeBrowse mode = iota
	modeInput
)

// --- Key Map ---
type KeyMap struct {
	Up           key.Binding
	Down         key.Binding
	Left         key.Binding // Page up
	Right        key.Binding // Page down
	Parent       key.Binding
	ToggleSelect key.Binding
	ToggleInput  key.Binding
	Confirm      key.Binding
	ChooseNone   key.Binding
	Cancel       key.Binding
}

var DefaultKeyMap = KeyMap{
	Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "move up")),
	Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "move down")),
	Left:         key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "page up")),
	Right:        key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "page down")),
	Parent:       key.NewBinding(key.WithKeys("backspace"), key.WithHelp("backspace", "parent dir")),
	ToggleSelect: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle select")),
	ToggleInput:  key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "input path")),
	Confirm:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open/confirm")),
	ChooseNone:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "choose nothing")),
	Cancel:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
}

// --- Model ---
type Model struct {
	path     string
	items    []fs.DirEntry
	selected []string // marked paths, in marking order
	cursor   int
	keys     KeyMap
	mode     mode
	input    textinput.Model
	inputErr error
	height   int // For viewport height
	offset   int // For scrolling
}

// InitialModel opens the browser in dir. If dir cannot be read the browser
// starts in path input mode.
func InitialModel(dir string) Model {
	ti := textinput.New()
	ti.Placeholder = "path to a file or directory"
	ti.CharLimit = 256
	ti.Width = 80
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))

	m := Model{
		items: []fs.DirEntry{},
		keys:  DefaultKeyMap,
		input: ti,
	}
	if err := m.SetPath(dir); err != nil {
		slog.Warn("Could not open start directory", "dir", dir, "error", err)
		m.mode = modeInput
		m.input.Focus()
	}
	return m
}

// --- Bubble Tea Methods ---
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Cancel) {
			if m.mode == modeInput && m.path != "" {
				// Leave input mode and go back to the loaded directory.
				m.mode = modeBrowse
				m.input.Blur()
				m.input.Reset()
				m.inputErr = nil
				return m, nil
			}
			return m, func() tea.Msg { return CancelledMsg{} }
		}

		switch m.mode {
		case modeBrowse:
			return m.updateBrowse(msg)
		case modeInput:
			return m.updateInput(msg)
		}
	}

	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ToggleInput):
		m.mode = modeInput
		m.input.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			// If the cursor moved above the visible viewport, scroll up
			if m.cursor < m.offset {
				m.offset--
			}
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
			// If the cursor moved below the visible viewport, scroll down
			if m.cursor >= m.offset+m.visibleItems() {
				m.offset++
			}
		}

	case key.Matches(msg, m.keys.Right): // Page down
		m.pageBy(m.visibleItems())

	case key.Matches(msg, m.keys.Left): // Page up
		m.pageBy(-m.visibleItems())

	case key.Matches(msg, m.keys.Parent):
		if err := m.SetPath(filepath.Dir(m.path)); err != nil {
			m.inputErr = err
		}

	case key.Matches(msg, m.keys.ToggleSelect):
		if len(m.items) == 0 || m.items[m.cursor].IsDir() {
			return m, nil
		}
		path := filepath.Join(m.path, m.items[m.cursor].Name())
		if i := slices.Index(m.selected, path); i >= 0 {
			m.selected = slices.Delete(m.selected, i, i+1)
		} else {
			m.selected = append(m.selected, path)
		}

	case key.Matches(msg, m.keys.ChooseNone):
		return m, choose(nil)

	case key.Matches(msg, m.keys.Confirm):
		if len(m.selected) > 0 {
			return m, choose(m.selected)
		}
		if len(m.items) == 0 {
			return m, nil
		}
		// Nothing marked: enter opens a directory or picks the file under the cursor.
		item := m.items[m.cursor]
		path := filepath.Join(m.path, item.Name())
		if item.IsDir() {
			if err := m.SetPath(path); err != nil {
				m.inputErr = err
			}
			return m, nil
		}
		return m, choose([]string{path})
	}
	return m, nil
}

// pageBy moves the cursor and the viewport by delta rows.
func (m *Model) pageBy(delta int) {
	visible := m.visibleItems()
	m.cursor = clamp(m.cursor+delta, 0, len(m.items)-1)
	m.offset = clamp(m.offset+delta, 0, len(m.items)-visible)
	// Ensure the cursor is within the visible viewport
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
}

func (m Model) updateInput(msg tea.KeyMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if key.Matches(msg, m.keys.Confirm) {
		path := strings.TrimSpace(m.input.Value())
		// Resolve path relative to the directory being browsed
		if !filepath.IsAbs(path) {
			path = filepath.Join(m.path, path)
		}

		exists, isDir, err := util.CheckDirectory(path)
		switch {
		case err != nil:
			m.inputErr = fmt.Errorf("invalid path: %w", err)
			return m, nil
		case !exists:
			m.inputErr = fmt.Errorf("path does not exist: %s", path)
			return m, nil
		case !isDir:
			// A file path is a direct pick.
			m.input.Reset()
			return m, choose([]string{path})
		}

		if err := m.SetPath(path); err != nil {
			m.inputErr = err
			return m, nil
		}
		m.input.Reset()
		m.input.Blur()
		return m, nil
	}

	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var s strings.Builder

	// Header
	s.WriteString("Choose a file to send. " + m.helpView() + "\n\n")
	if m.mode == modeInput {
		s.WriteString(m.input.View())
		s.WriteString("\n")
	}
	if m.inputErr != nil {
		s.WriteString(style.ErrorStyle.Render(m.inputErr.Error()) + "\n")
	}
	s.WriteString("\n")

	if m.path == "" {
		return s.String()
	}

	s.WriteString(fmt.Sprintf("Browsing: %s\n\n", m.path))

	// Table column widths
	nameWidth := 36
	typeWidth := 30
	timeWidth := 20
	sizeWidth := 14

	// Table header: pad first, then style
	headerStyle := lipgloss.NewStyle().Bold(true)
	s.WriteString(
		headerStyle.Render(util.PadRight("", 6)) + " " +
			headerStyle.Render(util.PadRight("Name", nameWidth)) + " " +
			headerStyle.Render(util.PadRight("Last Modified", timeWidth)) + " " +
			headerStyle.Render(util.PadRight("Size", sizeWidth)) +
			headerStyle.Render(util.PadRight("Type", typeWidth)) + "\n",
	)

	if len(m.items) == 0 {
		s.WriteString("\n(empty directory)\n")
		return s.String()
	}

	visible := m.visibleItems()
	start := clamp(m.offset, 0, len(m.items)-1)
	end := min(start+visible, len(m.items))

	for i, item := range m.items[start:end] {
		if m.cursor == start+i {
			s.WriteString(style.CursorStyle.String())
		} else {
			s.WriteString("  ")
		}

		path := filepath.Join(m.path, item.Name())
		switch {
		case item.IsDir():
			s.WriteString("    ")
		case slices.Contains(m.selected, path):
			s.WriteString(style.SelectedStyle.String())
		default:
			s.WriteString(style.DeselectedStyle.String())
		}

		modTime, size, typeStr := "", "", ""
		if info, err := item.Info(); err == nil {
			modTime = info.ModTime().Format("2006-01-02 15:04:05")
			if info.IsDir() {
				size = "<DIR>"
			} else {
				size = util.FormatSize(info.Size())
			}
		}
		nameStr := item.Name()
		if item.IsDir() {
			nameStr = nameStr + "/"
		} else if mime, err := mimetype.DetectFile(path); err == nil {
			typeStr = mime.String()
		}

		// Pad right first, then add style
		nameCell := util.PadRight(nameStr, nameWidth)
		if item.IsDir() {
			nameCell = style.DirStyle.Render(nameCell)
		}
		s.WriteString(nameCell + " " +
			util.PadRight(modTime, timeWidth) + " " +
			util.PadRight(size, sizeWidth) +
			util.PadRight(typeStr, typeWidth) + "\n")
	}

	// Scroll indicator
	if len(m.items) > visible {
		s.WriteString(fmt.Sprintf("\n... %d/%d ...\n", m.cursor+1, len(m.items)))
	}

	return s.String()
}

func (m Model) helpView() string {
	return style.HelpStyle.Render(
		fmt.Sprintf("'%s' mark, '%s' open/confirm, '%s' parent, '%s' path, '%s' choose nothing, '%s' cancel",
			m.keys.ToggleSelect.Help().Key, m.keys.Confirm.Help().Key, m.keys.Parent.Help().Key,
			m.keys.ToggleInput.Help().Key, m.keys.ChooseNone.Help().Key, m.keys.Cancel.Help().Key),
	)
}

// choose resolves paths into files and reports them as a ChosenMsg.
func choose(paths []string) tea.Cmd {
	paths = slices.Clone(paths)
	return func() tea.Msg {
		files := make([]fileInfo.File, 0, len(paths))
		for _, path := range paths {
			f, err := fileInfo.CreateFile(path)
			if err != nil {
				slog.Warn("Skipping unreadable file", "path", path, "error", err)
				continue
			}
			files = append(files, f)
		}
		return ChosenMsg{Files: files}
	}
}

// SetPath loads dir into the browser and clears any marks.
func (m *Model) SetPath(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}
	exists, isDir, err := util.CheckDirectory(absPath)
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}
	if !exists {
		return fmt.Errorf("path does not exist: %s", absPath)
	}
	if !isDir {
		return fmt.Errorf("path is not a directory: %s", absPath)
	}
	items, err := os.ReadDir(absPath)
	if err != nil {
		return fmt.Errorf("could not read directory: %w", err)
	}

	m.path = absPath
	m.items = items
	m.selected = nil
	m.cursor = 0
	m.offset = 0
	m.inputErr = nil
	m.mode = modeBrowse
	return nil
}

// Reload rereads the current directory and clears marks.
func (m *Model) Reload() error {
	if m.path == "" {
		return nil
	}
	return m.SetPath(m.path)
}

func (m *Model) visibleItems() int {
	headerHeight := 8
	if m.inputErr != nil {
		headerHeight++
	}
	visible := m.height - headerHeight
	if visible < 1 {
		visible = 15
	}
	return visible
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return max(lo, min(v, hi))
}
