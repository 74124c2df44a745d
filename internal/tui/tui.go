// Package tui is a terminal browser for the article catalog with the same
// search box and category chips as the blog page.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mfdl/internal/catalog"
)

type mode int

const (
	modeBrowse mode = iota
	modeSearch
)

// Model is the state of the catalog browser. Every filter change goes
// through a catalog.State transition and recomputes the result.
type Model struct {
	store  *catalog.Store
	state  catalog.State
	result catalog.Result
	bar    categoryBar

	cursor   int
	mode     mode
	search   textinput.Model
	width    int
	height   int
	quitting bool
}

// NewModel returns the browser showing the unfiltered catalog.
func NewModel(store *catalog.Store) Model {
	ti := textinput.New()
	ti.Placeholder = "Cerca articoli..."
	ti.Prompt = searchPromptStyle.Render("/ ")
	ti.CharLimit = 100

	m := Model{
		store:  store,
		state:  catalog.DefaultState(),
		bar:    newCategoryBar(store),
		search: ti,
	}
	m.apply()
	return m
}

// State returns the current listing state.
func (m Model) State() catalog.State {
	return m.state
}

// Result returns the articles currently shown.
func (m Model) Result() catalog.Result {
	return m.result
}

// Selected returns the highlighted article, if any.
func (m Model) Selected() (catalog.Article, bool) {
	if m.result.Empty() {
		return catalog.Article{}, false
	}
	return m.result.Articles[m.cursor], true
}

// apply recomputes the result from state and keeps the cursor in range.
func (m *Model) apply() {
	m.result = m.state.Apply(m.store)
	if m.cursor >= m.result.Matched {
		m.cursor = m.result.Matched - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Init is the first command that will be run. We don't need any.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model accordingly.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.search.Width = msg.Width - 10
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if m.mode == modeSearch {
			return m.handleSearchKey(msg)
		}
		return m.handleBrowseKey(msg)
	}

	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		m.search.Blur()
		m.search.SetValue("")
		m.state = m.state.WithQuery("")
		m.apply()
		return m, nil
	case "enter", "tab", "shift+tab":
		m.mode = modeBrowse
		m.search.Blur()
		if msg.String() == "enter" {
			return m, nil
		}
		return m.handleBrowseKey(msg)
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.state.Query {
		m.state = m.state.WithQuery(m.search.Value())
		m.cursor = 0
		m.apply()
	}
	return m, cmd
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "/":
		m.mode = modeSearch
		m.search.Focus()
		return m, textinput.Blink
	case "tab":
		m.state = m.state.WithCategory(m.bar.next(m.state.Category, 1))
		m.cursor = 0
		m.apply()
	case "shift+tab":
		m.state = m.state.WithCategory(m.bar.next(m.state.Category, -1))
		m.cursor = 0
		m.apply()
	case "r":
		m.state = m.state.Reset()
		m.search.SetValue("")
		m.cursor = 0
		m.apply()
	case "j", "down":
		if m.cursor < m.result.Matched-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	}
	return m, nil
}

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	width := m.width - 4
	if width <= 0 {
		width = 80
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("Blog · Riflessioni su prodotto, strategia e crescita"))
	b.WriteString("\n")
	b.WriteString(m.bar.render(m.state.Category, width))
	b.WriteString("\n\n")

	if m.mode == modeSearch {
		b.WriteString(m.search.View())
	} else if m.state.Query != "" {
		b.WriteString(searchPromptStyle.Render("/ ") + m.state.Query)
	} else {
		b.WriteString(itemMetaStyle.Render("/ per cercare"))
	}
	b.WriteString("\n\n")

	if m.result.Empty() {
		b.WriteString(emptyStyle.Render("Nessun articolo trovato. Premi r per mostrare tutti gli articoli."))
	} else {
		b.WriteString(m.renderList())
		if a, ok := m.Selected(); ok {
			b.WriteString("\n")
			b.WriteString(previewStyle.Width(width - 2).Render(a.Excerpt))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(renderStatusBar(m.result.Summary(), m.mode == modeSearch, width))

	return docStyle.Render(b.String())
}

func (m Model) renderList() string {
	// Leave room for header, chips, search, preview and status bar
	visible := m.height - 16
	if visible < 3 {
		visible = len(m.result.Articles)
	}
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := start + visible
	if end > len(m.result.Articles) {
		end = len(m.result.Articles)
	}

	var lines []string
	for i := start; i < end; i++ {
		a := m.result.Articles[i]
		cursor := "  "
		title := itemTitleStyle.Render(a.Title)
		if i == m.cursor {
			cursor = itemSelectedStyle.Render("> ")
			title = itemSelectedStyle.Render(a.Title)
		}
		meta := itemMetaStyle.Render(fmt.Sprintf("%s · %s", a.Date, a.ReadingTime))
		lines = append(lines, fmt.Sprintf("%s%s  %s  %s", cursor, categoryStyle(a.Color).Render(a.Category), title, meta))
	}
	return strings.Join(lines, "\n")
}

func renderStatusBar(summary string, searching bool, width int) string {
	left := " " + summary
	right := " / cerca  tab categoria  r azzera  j/k muovi  q esci "
	if searching {
		right = " esc annulla  enter conferma "
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	return statusBarStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

// Run starts the Bubble Tea program and blocks until the user quits.
func Run(store *catalog.Store) error {
	p := tea.NewProgram(NewModel(store), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
