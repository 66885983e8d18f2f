// Package settings provides the settings configuration view for the TUI.
package settings

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/archie/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/archie/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/archie/internal/core/domain"
	"github.com/custodia-labs/archie/internal/core/ports/driving"
)

// Section tracks which settings section is active.
type Section int

const (
	SectionOverview Section = iota
	SectionLLM
	SectionValidation
	SectionPublish
)

const (
	keyDown  = "down"
	keyEnter = "enter"
	keyTab   = "tab"
)

var validationModes = []domain.ValidationMode{domain.ValidationStructural, domain.ValidationBrowser}

// overviewItems are the sections reachable from the overview.
var overviewItems = []struct {
	label   string
	section Section
}{
	{"LLM provider", SectionLLM},
	{"Validation", SectionValidation},
	{"GitHub token", SectionPublish},
}

// View is the settings configuration view.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	settings *domain.AppSettings
	err      error
	notice   string

	section Section
	// selected is the cursor within the current section.
	selected int
	// keyFocused is set while typing the LLM API key.
	keyFocused bool

	apiKeyInput textinput.Model
	tokenInput  textinput.Model
}

// NewView creates a new settings view. settingsService may be nil.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:          s,
		settingsService: settingsService,
		apiKeyInput:     secretInput("Enter API key"),
		tokenInput:      secretInput("Enter GitHub token with gist scope"),
	}
}

func secretInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.EchoMode = textinput.EchoPassword
	ti.CharLimit = 256
	return ti
}

// Init loads current settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

// Reset returns to the overview.
func (v *View) Reset() {
	v.section = SectionOverview
	v.selected = 0
	v.keyFocused = false
	v.notice = ""
	v.apiKeyInput.Reset()
	v.apiKeyInput.Blur()
	v.tokenInput.Reset()
	v.tokenInput.Blur()
}

func (v *View) loadSettings() tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsLoaded{Err: fmt.Errorf("settings service not available")}
		}
		settings, err := svc.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.SettingsLoaded:
		v.err = msg.Err
		if msg.Err == nil {
			v.settings = msg.Settings
		}
		return v, nil

	case messages.SettingsSaved:
		v.err = msg.Err
		if msg.Err != nil {
			return v, nil
		}
		v.Reset()
		v.notice = "Saved. Changes apply the next time archie starts."
		return v, v.loadSettings()

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.String() == "esc" {
		if v.section == SectionOverview {
			return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
		}
		v.Reset()
		return v, nil
	}

	switch v.section {
	case SectionOverview:
		return v.handleOverviewKeys(msg)
	case SectionLLM:
		return v.handleLLMKeys(msg)
	case SectionValidation:
		return v.handleValidationKeys(msg)
	case SectionPublish:
		return v.handlePublishKeys(msg)
	}
	return v, nil
}

func (v *View) moveCursor(key string, n int) {
	switch key {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < n-1 {
			v.selected++
		}
	}
}

func (v *View) handleOverviewKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.String() != keyEnter {
		v.moveCursor(msg.String(), len(overviewItems))
		return v, nil
	}

	v.notice = ""
	v.section = overviewItems[v.selected].section
	switch v.section {
	case SectionLLM:
		v.selected = v.llmProviderIndex()
	case SectionValidation:
		v.selected = v.validationModeIndex()
	case SectionPublish:
		v.selected = 0
		return v, v.tokenInput.Focus()
	case SectionOverview:
	}
	return v, nil
}

func (v *View) handleLLMKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	providers := domain.AllLLMProviders()
	provider := providers[v.selected]

	if v.keyFocused {
		switch msg.String() {
		case keyTab, "shift+tab":
			v.keyFocused = false
			v.apiKeyInput.Blur()
			return v, nil
		case keyEnter:
			return v, v.setLLMProvider(provider, v.apiKeyInput.Value())
		}
		var cmd tea.Cmd
		v.apiKeyInput, cmd = v.apiKeyInput.Update(msg)
		return v, cmd
	}

	switch msg.String() {
	case keyTab, keyEnter:
		if provider.RequiresAPIKey() {
			v.keyFocused = true
			return v, v.apiKeyInput.Focus()
		}
		if msg.String() == keyEnter {
			return v, v.setLLMProvider(provider, "")
		}
	default:
		v.moveCursor(msg.String(), len(providers))
	}
	return v, nil
}

func (v *View) handleValidationKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.String() != keyEnter {
		v.moveCursor(msg.String(), len(validationModes))
		return v, nil
	}

	current := domain.ValidationSettings{}
	if v.settings != nil {
		current = v.settings.Validation
	}
	current.Mode = validationModes[v.selected]
	return v, v.save(func(svc driving.SettingsService) error {
		return svc.SetValidation(current)
	})
}

func (v *View) handlePublishKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.String() == keyEnter {
		token := strings.TrimSpace(v.tokenInput.Value())
		return v, v.save(func(svc driving.SettingsService) error {
			return svc.SetGitHubToken(token)
		})
	}
	var cmd tea.Cmd
	v.tokenInput, cmd = v.tokenInput.Update(msg)
	return v, cmd
}

func (v *View) setLLMProvider(provider domain.AIProvider, apiKey string) tea.Cmd {
	model := domain.DefaultLLMModels()[provider]
	return v.save(func(svc driving.SettingsService) error {
		return svc.SetLLMProvider(provider, model, strings.TrimSpace(apiKey))
	})
}

func (v *View) save(fn func(driving.SettingsService) error) tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsSaved{Err: fmt.Errorf("settings service not available")}
		}
		return messages.SettingsSaved{Err: fn(svc)}
	}
}

func (v *View) llmProviderIndex() int {
	if v.settings == nil {
		return 0
	}
	for i, p := range domain.AllLLMProviders() {
		if p == v.settings.LLM.Provider {
			return i
		}
	}
	return 0
}

func (v *View) validationModeIndex() int {
	if v.settings == nil {
		return 0
	}
	for i, m := range validationModes {
		if m == v.settings.Validation.Mode {
			return i
		}
	}
	return 0
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	switch v.section {
	case SectionOverview:
		v.renderOverview(&b)
	case SectionLLM:
		v.renderLLM(&b)
	case SectionValidation:
		v.renderValidation(&b)
	case SectionPublish:
		v.renderPublish(&b)
	}

	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n")
	}
	if v.notice != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Success.Render(v.notice))
		b.WriteString("\n")
	}
	return b.String()
}

func (v *View) renderOverview(b *strings.Builder) {
	if v.settings != nil {
		s := v.settings
		llm := "not configured"
		if s.LLM.IsConfigured() {
			llm = fmt.Sprintf("%s (%s)", s.LLM.Provider.Description(), s.LLM.Model)
		}
		fmt.Fprintf(b, "  LLM:         %s\n", llm)
		fmt.Fprintf(b, "  Generation:  temperature %.2f, %d max tokens, %d req/min\n",
			s.Generation.Temperature, s.Generation.MaxTokens, s.Generation.RequestsPerMinute)
		fmt.Fprintf(b, "  Validation:  %s\n", s.Validation.Mode.Description())
		token := "not set"
		if s.Publish.GitHubToken != "" {
			token = "set"
		}
		fmt.Fprintf(b, "  GitHub:      %s\n\n", token)
	}

	for i, item := range overviewItems {
		v.renderChoice(b, i, item.label)
	}
	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] Change  [Esc] Back"))
	b.WriteString("\n")
}

func (v *View) renderLLM(b *strings.Builder) {
	b.WriteString(v.styles.Subtitle.Render("LLM provider"))
	b.WriteString("\n\n")
	for i, p := range domain.AllLLMProviders() {
		v.renderChoice(b, i, p.Description())
	}
	if domain.AllLLMProviders()[v.selected].RequiresAPIKey() {
		b.WriteString("\n  API key: ")
		b.WriteString(v.apiKeyInput.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Provider  [Tab] API key  [Enter] Save  [Esc] Cancel"))
	b.WriteString("\n")
}

func (v *View) renderValidation(b *strings.Builder) {
	b.WriteString(v.styles.Subtitle.Render("Validation mode"))
	b.WriteString("\n\n")
	for i, m := range validationModes {
		v.renderChoice(b, i, m.Description())
	}
	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Mode  [Enter] Save  [Esc] Cancel"))
	b.WriteString("\n")
}

func (v *View) renderPublish(b *strings.Builder) {
	b.WriteString(v.styles.Subtitle.Render("GitHub token"))
	b.WriteString("\n\n  ")
	b.WriteString(v.tokenInput.View())
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[Enter] Save (empty clears)  [Esc] Cancel"))
	b.WriteString("\n")
}

func (v *View) renderChoice(b *strings.Builder, i int, label string) {
	if i == v.selected {
		b.WriteString("> " + v.styles.Selected.Render(label) + "\n")
		return
	}
	b.WriteString("  " + v.styles.Normal.Render(label) + "\n")
}

// Section returns the active section.
func (v *View) Section() Section {
	return v.section
}

// Settings returns the loaded settings.
func (v *View) Settings() *domain.AppSettings {
	return v.settings
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
