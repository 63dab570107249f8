package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chuckie/modelpick/internal/app"
	"github.com/chuckie/modelpick/internal/debounce"
	"github.com/chuckie/modelpick/internal/domain"
	"github.com/chuckie/modelpick/internal/ports"
)

// Model is the main Bubble Tea model: a model picker that opens over the
// current selection.
type Model struct {
	app          *app.App
	state        State
	picker       domain.PickerState
	setup        *SetupModel
	selection    ports.Selection
	current      domain.Selection
	search       textinput.Model
	spinner      spinner.Model
	debouncer    *debounce.Debouncer[string]
	queries      chan string
	cursor       int
	loadSeq      int
	chosen       bool
	quitOnSelect bool
	width        int
	height       int
	status       string
}

// State represents the current UI state.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateSetup
)

// Option configures a Model.
type Option func(*Model)

// WithSelection routes selections to sel instead of the app's config-backed
// selection. If sel has a Save() error method it is called after each
// selection.
func WithSelection(sel ports.Selection) Option {
	return func(m *Model) {
		if sel != nil {
			m.selection = sel
		}
	}
}

// WithQuitOnSelect exits the program after the first selection.
func WithQuitOnSelect() Option {
	return func(m *Model) {
		m.quitOnSelect = true
	}
}

// WithStartOpen opens the picker immediately.
func WithStartOpen() Option {
	return func(m *Model) {
		m.state = StateOpen
		m.picker = m.picker.OnOpen()
		m.search.Focus()
		m.cursor = m.indexOf(m.current)
	}
}

// New creates a new UI model. Search filtering is debounced by delay;
// debounceOpts are passed to the debouncer.
func New(a *app.App, delay time.Duration, debounceOpts []debounce.Option, opts ...Option) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	in := textinput.New()
	in.Placeholder = "Search models..."
	in.Prompt = "/ "
	in.CharLimit = 120

	m := &Model{
		app:       a,
		state:     StateClosed,
		picker:    domain.NewPickerState(a.Catalog.Static()),
		selection: a.Selection,
		current:   a.Selection.Current(),
		search:    in,
		spinner:   s,
		queries:   make(chan string, 1),
		width:     80,
		height:    24,
	}
	m.debouncer = debounce.New(m.emitQuery, delay, debounceOpts...)

	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Init starts the spinner, the model fetch and the query listener.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.cmdLoadModels(false), m.waitForQuery())
}

// Selected returns the current model/provider pair.
func (m *Model) Selected() domain.Selection {
	return m.current
}

// Chosen reports whether the user selected a model in this session.
func (m *Model) Chosen() bool {
	return m.chosen
}

// Picker exposes the picker state (read-only copy).
func (m *Model) Picker() domain.PickerState {
	return m.picker
}

// State returns the UI state.
func (m *Model) State() State {
	return m.state
}

// Update handles messages and state transitions.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" && m.state != StateSetup {
			return m, m.quit()
		}

		switch m.state {
		case StateClosed:
			return m.handleClosedKeys(msg)

		case StateOpen:
			return m.handleOpenKeys(msg)

		case StateSetup:
			if m.setup == nil {
				m.setup = NewSetupEmbedded(m.app.Config)
			}
			child, cmd := m.setup.Update(msg)
			if sm, ok := child.(*SetupModel); ok {
				m.setup = sm
			}
			return m, cmd
		}

	case msgModelsLoaded:
		// Only the most recent load counts.
		if msg.seq != m.loadSeq {
			return m, nil
		}
		m.picker = m.picker.OnLoaded(msg.models, msg.err)
		if m.picker.Query == "" {
			m.cursor = m.indexOf(m.current)
		} else {
			m.clampCursor()
		}
		if msg.err != nil {
			m.status = "Could not fetch models, showing the static list: " + msg.err.Error()
		} else {
			m.status = ""
		}

	case msgFilterQuery:
		// The debouncer only ever delivers the latest query, but a reload may
		// have raced with it; always filter from the full list.
		m.picker = m.picker.OnFilter(msg.query)
		m.cursor = 0
		return m, m.waitForQuery()

	case msgSetupFinished:
		m.setup = nil
		m.state = StateOpen
		if !msg.confirmed {
			m.search.Focus()
			return m, nil
		}
		return m, m.applySetup(msg.setup)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the current state.
func (m *Model) View() string {
	switch m.state {
	case StateClosed:
		return m.viewClosed()
	case StateOpen:
		return m.viewOpen()
	case StateSetup:
		if m.setup == nil {
			m.setup = NewSetupEmbedded(m.app.Config)
		}
		return m.setup.View()
	default:
		return ""
	}
}

// Custom messages
type msgModelsLoaded struct {
	seq    int
	models []domain.ModelInfo
	err    error
}

type msgFilterQuery struct {
	query string
}

type msgSetupFinished struct {
	setup     SourceSetup
	confirmed bool
}
