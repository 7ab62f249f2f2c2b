package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/olivier-w/epicycles/internal/media"
)

// BrowserSelectedMsg reports the chosen path source. An empty Path selects
// the default shape.
type BrowserSelectedMsg struct {
	Path string
}

// BrowserCancelledMsg reports that the user left the browser.
type BrowserCancelledMsg struct{}

type fileItem struct {
	name string
	ext  string
}

func (i fileItem) Title() string       { return i.name }
func (i fileItem) Description() string { return i.ext + " · stereo as XY" }
func (i fileItem) FilterValue() string { return i.name }

type defaultItem struct{}

func (i defaultItem) Title() string       { return "Triforce" }
func (i defaultItem) Description() string { return "built-in shape, or draw your own" }
func (i defaultItem) FilterValue() string { return "triforce" }

type pathItem struct{}

func (i pathItem) Title() string       { return "Open path..." }
func (i pathItem) Description() string { return "type the path of an audio file" }
func (i pathItem) FilterValue() string { return "path" }

// BrowserModel lists the audio files of the working directory next to the
// default shape. It reports the choice with BrowserSelectedMsg.
type BrowserModel struct {
	list      list.Model
	input     textinput.Model
	inputMode bool
	err       error
}

// NewBrowser creates a browser scanning the current directory.
func NewBrowser() BrowserModel {
	entries, err := os.ReadDir(".")
	if err != nil {
		return BrowserModel{err: fmt.Errorf("cannot read directory: %w", err)}
	}

	items := []list.Item{defaultItem{}, pathItem{}}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if !media.IsSupportedExt(ext) {
			continue
		}
		items = append(items, fileItem{name: strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())), ext: filepath.Ext(e.Name())})
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#FFFFFF"}).
		BorderLeftForeground(lipgloss.AdaptiveColor{Light: "#B36B00", Dark: "#FFB02E"})
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"}).
		BorderLeftForeground(lipgloss.AdaptiveColor{Light: "#B36B00", Dark: "#FFB02E"})

	l := list.New(items, delegate, 80, 20)
	l.Title = "epicycles"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = headerStyle

	ti := textinput.New()
	ti.Placeholder = "path/to/scope.wav"
	ti.CharLimit = 4096
	ti.Width = 60

	return BrowserModel{list: l, input: ti}
}

// HasError returns true if the browser could not be initialized.
func (m BrowserModel) HasError() bool {
	return m.err != nil
}

// Error returns the initialization error, if any.
func (m BrowserModel) Error() error {
	return m.err
}

func (m BrowserModel) Init() tea.Cmd {
	return tea.SetWindowTitle("epicycles")
}

func selected(path string) tea.Cmd {
	return func() tea.Msg { return BrowserSelectedMsg{Path: path} }
}

func cancelled() tea.Msg { return BrowserCancelledMsg{} }

func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.err != nil {
		if k, ok := msg.(tea.KeyMsg); ok && isQuit(k) {
			return m, cancelled
		}
		return m, nil
	}
	if m.inputMode {
		return m.updateInput(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "enter":
			switch item := m.list.SelectedItem().(type) {
			case defaultItem:
				return m, selected("")
			case pathItem:
				m.inputMode = true
				m.input.Focus()
				return m, tea.Batch(textinput.Blink, tea.SetWindowTitle("epicycles · open path"))
			case fileItem:
				return m, selected(item.name + item.ext)
			}
		case "q", "esc", "ctrl+c":
			return m, cancelled
		}

	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		m.list.SetHeight(msg.Height)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m BrowserModel) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			if path := strings.TrimSpace(m.input.Value()); path != "" {
				return m, selected(path)
			}
			return m, nil
		case "esc":
			m.inputMode = false
			m.input.Reset()
			m.input.Blur()
			return m, tea.SetWindowTitle("epicycles")
		case "ctrl+c":
			return m, cancelled
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m BrowserModel) View() string {
	if m.err != nil {
		return "\n  " + headerStyle.Render("epicycles") + "\n\n  " + errorStyle.Render(m.err.Error()) + "\n"
	}
	if m.inputMode {
		s := "\n"
		s += "  " + headerStyle.Render("epicycles") + "\n"
		s += "\n"
		s += "  " + statusStyle.Render("Audio file ("+media.SupportedExtsList()+"):") + "\n"
		s += "  " + m.input.View() + "\n"
		s += "\n"
		s += "  " + helpStyle.Render("enter open  esc back  ctrl+c quit") + "\n"
		return s
	}
	return m.list.View()
}
