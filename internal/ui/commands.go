package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chuckie/modelpick/internal/domain"
	"github.com/chuckie/modelpick/internal/observability"
)

// cmdLoadModels fetches the merged catalog asynchronously. Each call
// supersedes the results of earlier ones.
func (m *Model) cmdLoadModels(refresh bool) tea.Cmd {
	m.loadSeq++
	seq := m.loadSeq
	catalog := m.app.Catalog
	return func() tea.Msg {
		models, err := catalog.Load(context.Background(), refresh)
		return msgModelsLoaded{seq: seq, models: models, err: err}
	}
}

// waitForQuery delivers the next settled search query into the update loop.
func (m *Model) waitForQuery() tea.Cmd {
	ch := m.queries
	return func() tea.Msg {
		return msgFilterQuery{query: <-ch}
	}
}

// emitQuery is the debounced callback. It runs on the timer goroutine and
// replaces any query the update loop has not picked up yet.
func (m *Model) emitQuery(q string) {
	for {
		select {
		case m.queries <- q:
			return
		default:
		}
		select {
		case <-m.queries:
		default:
		}
	}
}

// quit cancels pending work and exits.
func (m *Model) quit() tea.Cmd {
	m.debouncer.Cancel()
	return tea.Quit
}

// handleClosedKeys handles keybindings while the picker is closed.
func (m *Model) handleClosedKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, m.quit()
	case "enter", " ", "o":
		m.open()
	}
	return m, nil
}

// handleOpenKeys handles keybindings while the picker is open.
func (m *Model) handleOpenKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.close()
		return m, nil
	case "up", "ctrl+p":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "ctrl+n":
		if m.cursor < len(m.items())-1 {
			m.cursor++
		}
		return m, nil
	case "enter":
		return m, m.selectCursor()
	case "ctrl+r":
		m.picker = m.picker.OnReload()
		m.status = ""
		return m, tea.Batch(m.spinner.Tick, m.cmdLoadModels(true))
	case "ctrl+s":
		m.state = StateSetup
		m.search.Blur()
		m.setup = NewSetupEmbedded(m.app.Config)
		return m, nil
	case "ctrl+v", "ctrl+shift+v", "shift+insert":
		clip, err := clipboard.ReadAll()
		if err != nil {
			m.status = "Clipboard paste failed: " + err.Error()
			return m, nil
		}
		clip = strings.ReplaceAll(clip, "\r", "")
		clip = strings.ReplaceAll(clip, "\n", "")
		m.search.SetValue(m.search.Value() + clip)
		m.search.CursorEnd()
		m.queryChanged()
		return m, nil
	}

	var cmd tea.Cmd
	before := m.search.Value()
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.queryChanged()
	}
	return m, cmd
}

// queryChanged records the new query and schedules a debounced filter. A
// newer keystroke replaces the pending filter.
func (m *Model) queryChanged() {
	q := m.search.Value()
	m.picker = m.picker.OnQueryChange(q)
	m.debouncer.Call(q)
}

func (m *Model) open() {
	m.state = StateOpen
	m.picker = m.picker.OnOpen()
	m.search.Focus()
	m.cursor = m.indexOf(m.current)
}

func (m *Model) close() {
	m.state = StateClosed
	m.picker = m.picker.OnClose()
	m.search.Blur()
}

// selectCursor selects the highlighted model. A filter still waiting on the
// debouncer is applied first so the cursor points into the list the user
// sees typed.
func (m *Model) selectCursor() tea.Cmd {
	if m.debouncer.Pending() {
		m.debouncer.Cancel()
		m.picker = m.picker.OnFilter(m.picker.Query)
		m.cursor = 0
	}

	items := m.items()
	if len(items) == 0 {
		return nil
	}

	var sel domain.Selection
	m.picker, sel = m.picker.OnSelect(items[m.cursor])
	m.selection.SetModel(sel.Model)
	m.selection.SetProvider(sel.Provider)
	m.current = sel
	m.chosen = true
	m.state = StateClosed
	m.search.Blur()

	if s, ok := m.selection.(interface{ Save() error }); ok {
		if err := s.Save(); err != nil {
			observability.Errorf("ui: %v", err)
			m.status = "Selection not saved: " + err.Error()
		} else {
			m.status = ""
		}
	}

	if m.quitOnSelect {
		return m.quit()
	}
	return nil
}

// applySetup stores a newly added provider and reloads the catalog.
func (m *Model) applySetup(res SourceSetup) tea.Cmd {
	res.Apply(m.app.Config)
	if err := m.app.SaveConfig(); err != nil {
		observability.Errorf("ui: %v", err)
		m.status = fmt.Sprintf("Provider not saved: %v", err)
	}
	m.app.Reconfigure()

	m.picker = m.picker.OnReload()
	m.search.Focus()
	return tea.Batch(m.spinner.Tick, m.cmdLoadModels(true))
}

// items returns the visible models in display (grouped) order.
func (m *Model) items() []domain.ModelInfo {
	var out []domain.ModelInfo
	for _, g := range m.picker.Groups() {
		out = append(out, g.Models...)
	}
	return out
}

func (m *Model) indexOf(sel domain.Selection) int {
	for i, it := range m.items() {
		if sel.Matches(it) {
			return i
		}
	}
	return 0
}

func (m *Model) clampCursor() {
	n := len(m.items())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
