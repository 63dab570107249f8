package ui

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chuckie/modelpick/internal/config"
)

// Source kinds the wizard can configure.
const (
	SourceOllama     = "ollama"
	SourceOpenAILike = "openai-like"
)

type setupStep int

type setupMode int

const (
	setupStepKind setupStep = iota
	setupStepURL
	setupStepAPIKey
	setupStepConfirm
	setupStepDone
)

const (
	setupModeStandalone setupMode = iota
	setupModeEmbedded
)

// SourceSetup is the outcome of the wizard.
type SourceSetup struct {
	Kind    string
	BaseURL string
	APIKey  string
}

// Apply writes the setup into cfg.
func (s SourceSetup) Apply(cfg *config.Config) {
	switch s.Kind {
	case SourceOllama:
		cfg.OllamaURL = s.BaseURL
	case SourceOpenAILike:
		cfg.OpenAILikeBaseURL = s.BaseURL
		cfg.OpenAILikeAPIKey = s.APIKey
	}
}

// SetupModel is an interactive wizard that adds a models provider
// (an Ollama server or an OpenAI-compatible endpoint).
// It does not fetch models or write files.
type SetupModel struct {
	mode setupMode
	step setupStep

	kinds     []string
	kindIndex int

	urlInput    textinput.Model
	apiKeyInput textinput.Model
	defaults    map[string]string

	completed bool

	err error
}

// NewSetup creates a standalone wizard seeded from cfg.
func NewSetup(cfg *config.Config) *SetupModel {
	urlIn := textinput.New()
	urlIn.Prompt = "Base URL: "
	urlIn.CharLimit = 512

	keyIn := textinput.New()
	keyIn.Prompt = "API key: "
	keyIn.EchoMode = textinput.EchoPassword
	keyIn.EchoCharacter = '*'
	keyIn.CharLimit = 200

	defaults := map[string]string{
		SourceOllama:     "http://localhost:11434",
		SourceOpenAILike: "",
	}
	if cfg != nil {
		if cfg.OllamaURL != "" {
			defaults[SourceOllama] = cfg.OllamaURL
		}
		if cfg.OpenAILikeBaseURL != "" {
			defaults[SourceOpenAILike] = cfg.OpenAILikeBaseURL
		}
		keyIn.SetValue(cfg.OpenAILikeAPIKey)
	}

	return &SetupModel{
		mode:        setupModeStandalone,
		step:        setupStepKind,
		kinds:       []string{SourceOllama, SourceOpenAILike},
		urlInput:    urlIn,
		apiKeyInput: keyIn,
		defaults:    defaults,
	}
}

// NewSetupEmbedded creates a wizard that reports back to the picker with a
// message instead of quitting the program.
func NewSetupEmbedded(cfg *config.Config) *SetupModel {
	m := NewSetup(cfg)
	m.mode = setupModeEmbedded
	return m
}

func (m *SetupModel) Init() tea.Cmd {
	return nil
}

func (m *SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Errors should not lock the user out of the wizard.
		if m.err != nil {
			m.err = nil
		}

		switch msg.String() {
		case "ctrl+c":
			return m.abort()
		case "q":
			if m.step == setupStepKind || m.step == setupStepConfirm {
				return m.abort()
			}
		}

		switch m.step {
		case setupStepKind:
			return m.updateKind(msg)
		case setupStepURL:
			return m.updateTextStep(msg, &m.urlInput, func() error {
				if err := validateBaseURL(m.urlInput.Value()); err != nil {
					return err
				}
				if m.kind() == SourceOpenAILike {
					m.step = setupStepAPIKey
					m.apiKeyInput.Focus()
					m.apiKeyInput.CursorEnd()
				} else {
					m.step = setupStepConfirm
				}
				return nil
			})
		case setupStepAPIKey:
			return m.updateTextStep(msg, &m.apiKeyInput, func() error {
				m.step = setupStepConfirm
				return nil
			})
		case setupStepConfirm:
			return m.updateConfirm(msg)
		case setupStepDone:
			if m.mode == setupModeEmbedded {
				return m, nil
			}
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m *SetupModel) View() string {
	var v string
	switch m.step {
	case setupStepKind:
		v = m.viewKind()
	case setupStepURL:
		v = m.viewText("Base URL", "Where the "+m.kind()+" server answers. Paste with Ctrl+V.", m.urlInput.View())
	case setupStepAPIKey:
		v = m.viewText("API key", "Optional for local servers. Paste with Ctrl+V.", m.apiKeyInput.View())
	case setupStepConfirm:
		v = m.viewConfirm()
	case setupStepDone:
		v = "Provider saved.\n"
	}

	if m.err != nil {
		v += "\nError: " + m.err.Error() + "\n"
	}
	return v
}

func (m *SetupModel) abort() (tea.Model, tea.Cmd) {
	m.completed = false
	m.step = setupStepDone
	if m.mode == setupModeEmbedded {
		return m, func() tea.Msg {
			return msgSetupFinished{confirmed: false}
		}
	}
	return m, tea.Quit
}

func (m *SetupModel) kind() string {
	return m.kinds[m.kindIndex]
}

func (m *SetupModel) updateKind(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.kindIndex > 0 {
			m.kindIndex--
		}
	case "down", "j":
		if m.kindIndex < len(m.kinds)-1 {
			m.kindIndex++
		}
	case "enter":
		m.urlInput.SetValue(m.defaults[m.kind()])
		m.urlInput.Focus()
		m.urlInput.CursorEnd()
		m.step = setupStepURL
	}
	return m, nil
}

func (m *SetupModel) updateTextStep(msg tea.KeyMsg, input *textinput.Model, onEnter func() error) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.step = setupStepKind
		input.Blur()
		return m, nil
	case "ctrl+v", "ctrl+shift+v", "shift+insert":
		clip, err := clipboard.ReadAll()
		if err != nil {
			m.err = fmt.Errorf("clipboard paste failed: %w", err)
			return m, nil
		}
		clip = strings.ReplaceAll(clip, "\r", "")
		clip = strings.ReplaceAll(clip, "\n", "")
		if strings.TrimSpace(clip) == "" {
			m.err = fmt.Errorf("clipboard is empty")
			return m, nil
		}
		input.SetValue(input.Value() + clip)
		input.CursorEnd()
		return m, nil
	case "enter":
		input.Blur()
		if err := onEnter(); err != nil {
			m.err = err
			input.Focus()
		}
		return m, nil
	}

	var cmd tea.Cmd
	*input, cmd = input.Update(msg)
	return m, cmd
}

func (m *SetupModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch strings.ToLower(msg.String()) {
	case "y":
		res, _ := m.Result()
		if err := validateBaseURL(res.BaseURL); err != nil {
			m.err = err
			return m, nil
		}
		m.completed = true
		m.step = setupStepDone
		if m.mode == setupModeEmbedded {
			return m, func() tea.Msg {
				return msgSetupFinished{setup: res, confirmed: true}
			}
		}
		return m, tea.Quit
	case "n", "esc":
		m.step = setupStepKind
		return m, nil
	}

	return m, nil
}

func (m *SetupModel) viewKind() string {
	var b strings.Builder
	b.WriteString("Add New Models Provider\n\n")
	b.WriteString("Select a provider type:\n\n")
	for i, k := range m.kinds {
		prefix := "  "
		if i == m.kindIndex {
			prefix = "> "
		}
		b.WriteString(prefix + k + "\n")
	}
	b.WriteString("\nKeys: ↑/↓ select, Enter next, q cancel\n")
	return b.String()
}

func (m *SetupModel) viewText(title, hint, inputView string) string {
	return fmt.Sprintf(
		"Add New Models Provider\n\n%s\n%s\n\n%s\n\nKeys: Enter next, Esc back, Ctrl+C cancel\n",
		title,
		hint,
		inputView,
	)
}

func (m *SetupModel) viewConfirm() string {
	res, _ := m.Result()

	keyStatus := "(not required)"
	if res.Kind == SourceOpenAILike {
		keyStatus = maskSecret(res.APIKey)
	}

	lines := []string{
		"Add New Models Provider\n",
		fmt.Sprintf("Type:      %s", res.Kind),
		fmt.Sprintf("Base URL:  %s", res.BaseURL),
		fmt.Sprintf("API key:   %s", keyStatus),
		"\nSave? (y/n)",
	}
	return strings.Join(lines, "\n") + "\n"
}

func validateBaseURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("base URL is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base URL must start with http:// or https://")
	}
	if u.Host == "" {
		return fmt.Errorf("base URL has no host")
	}
	return nil
}

func maskSecret(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "(none)"
	}
	if len(v) <= 6 {
		return "******"
	}
	return v[:3] + strings.Repeat("*", len(v)-6) + v[len(v)-3:]
}

// Result returns the configured source.
// ok is true only when the user confirmed the setup.
func (m *SetupModel) Result() (SourceSetup, bool) {
	res := SourceSetup{
		Kind:    m.kind(),
		BaseURL: strings.TrimRight(strings.TrimSpace(m.urlInput.Value()), "/"),
	}
	if res.Kind == SourceOpenAILike {
		res.APIKey = strings.TrimSpace(m.apiKeyInput.Value())
	}
	return res, m.completed
}
