package settings

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/archie/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/archie/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/archie/internal/core/domain"
	"github.com/custodia-labs/archie/internal/core/services"
)

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func newView(t *testing.T) (*View, *services.SettingsService) {
	t.Helper()
	t.Setenv(services.EnvAPIKey, "")
	t.Setenv(services.EnvGitHubToken, "")
	svc := services.NewSettingsService(memory.NewConfigStore(), nil)
	v := NewView(nil, svc)
	v.Update(v.Init()())
	require.NotNil(t, v.Settings())
	return v, svc
}

// run executes cmd, feeds the result back and returns it.
func run(t *testing.T, v *View, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	_, next := v.Update(msg)
	if next != nil {
		v.Update(next())
	}
	return msg
}

func TestOverview_ShowsCurrentSettings(t *testing.T) {
	v, _ := newView(t)

	out := v.View()
	assert.Contains(t, out, "LLM:         not configured")
	assert.Contains(t, out, "Structural")
	assert.Contains(t, out, "GitHub:      not set")
}

func TestLLM_CloudProviderRequiresKey(t *testing.T) {
	v, svc := newView(t)

	v.Update(tea.KeyMsg{Type: tea.KeyEnter}) // LLM provider
	require.Equal(t, SectionLLM, v.Section())

	v.Update(tea.KeyMsg{Type: tea.KeyEnter}) // Gemini needs a key
	assert.True(t, v.keyFocused)

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("secret")})
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg := run(t, v, cmd).(messages.SettingsSaved)
	require.NoError(t, msg.Err)

	got, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderGemini, got.LLM.Provider)
	assert.Equal(t, "secret", got.LLM.APIKey)
	assert.Equal(t, SectionOverview, v.Section())
	assert.Contains(t, v.View(), "Saved")
}

func TestLLM_EmptyKeyRejected(t *testing.T) {
	v, _ := newView(t)

	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	v.Update(keyRune('j')) // OpenAI
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg := run(t, v, cmd).(messages.SettingsSaved)

	assert.ErrorIs(t, msg.Err, domain.ErrInvalidInput)
	assert.Equal(t, SectionLLM, v.Section())
	assert.Contains(t, v.View(), "API key required")
}

func TestLLM_LocalProviderSavesDirectly(t *testing.T) {
	v, svc := newView(t)

	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	for range 3 {
		v.Update(keyRune('j'))
	}
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	run(t, v, cmd)

	got, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderOllama, got.LLM.Provider)
	assert.Equal(t, "qwen2.5-coder", got.LLM.Model)
}

func TestValidation_SwitchToBrowser(t *testing.T) {
	v, svc := newView(t)

	v.Update(keyRune('j'))
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, SectionValidation, v.Section())

	v.Update(keyRune('j'))
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	run(t, v, cmd)

	got, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.ValidationBrowser, got.Validation.Mode)
}

func TestPublish_StoresToken(t *testing.T) {
	v, svc := newView(t)

	v.Update(keyRune('j'))
	v.Update(keyRune('j'))
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, SectionPublish, v.Section())

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ghp_token")})
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	run(t, v, cmd)

	got, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, "ghp_token", got.Publish.GitHubToken)
	assert.Contains(t, v.View(), "GitHub:      set")
}

func TestEsc_Navigation(t *testing.T) {
	v, _ := newView(t)

	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, SectionOverview, v.Section())

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestNilService(t *testing.T) {
	v := NewView(nil, nil)

	v.Update(v.Init()())

	require.Error(t, v.Err())
	assert.Contains(t, v.View(), "settings service not available")
}
