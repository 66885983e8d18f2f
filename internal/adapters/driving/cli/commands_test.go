package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/archie/internal/core/domain"
)

func TestRender_StoredDraft(t *testing.T) {
	setupTestServices(t)
	createDraft(t, "RatingStars")
	mustExecute(t, "draft", "add", "RatingStars", "props", "name=value", "type=number")

	out := mustExecute(t, "render", "--draft", "RatingStars")

	assert.Contains(t, out, "# React Component Generation Request: RatingStars")
	assert.Contains(t, out, "## 🚀 Component API (Props)")
	assert.Contains(t, out, "value")
}

func TestRender_File(t *testing.T) {
	setupTestServices(t)
	path := writeFile(t, "toggle.json", `{"identity":{"name":"Toggle"}}`)

	out := mustExecute(t, "render", path)

	assert.Contains(t, out, "Toggle")
}

func TestRender_Outline(t *testing.T) {
	setupTestServices(t)
	createDraft(t, "RatingStars")
	mustExecute(t, "draft", "add", "RatingStars", "props", "name=value")

	out := mustExecute(t, "render", "--draft", "RatingStars", "--outline")

	assert.Contains(t, out, "(1)")
	assert.Contains(t, out, "[x]")
	assert.NotContains(t, out, "# React Component")
}

func TestRender_WatchNeedsFile(t *testing.T) {
	setupTestServices(t)
	createDraft(t, "RatingStars")

	_, _, err := execute(t, "render", "--draft", "RatingStars", "--watch")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBuild_PrintsAndRecords(t *testing.T) {
	ts := setupTestServices(t)
	id := createDraft(t, "RatingStars")

	out, errOut, err := execute(t, "build", "--draft", "RatingStars")

	require.NoError(t, err, errOut)
	assert.Contains(t, out, "export default function RatingStars")
	assert.NotContains(t, out, "```")
	assert.Contains(t, errOut, "valid (structural)")
	require.Len(t, ts.llm.prompts, 1)
	assert.Contains(t, ts.llm.prompts[0], "RatingStars")

	builds, err := buildService.History(t.Context(), id, 0)
	require.NoError(t, err)
	assert.Len(t, builds, 1)
}

func TestBuild_WritesFile(t *testing.T) {
	setupTestServices(t)
	createDraft(t, "RatingStars")
	path := filepath.Join(t.TempDir(), "RatingStars.jsx")

	mustExecute(t, "build", "--draft", "RatingStars", "--out", path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, validComponent+"\n", string(data))
}

func TestBuild_InvalidCodeFails(t *testing.T) {
	ts := setupTestServices(t)
	ts.llm.reply = "const A = () => null;"
	createDraft(t, "RatingStars")

	out, errOut, err := execute(t, "build", "--draft", "RatingStars")

	assert.ErrorIs(t, err, errInvalidCode)
	assert.Contains(t, out, "const A")
	assert.Contains(t, errOut, "missing export default")
}

func TestBuild_RequiresDraft(t *testing.T) {
	setupTestServices(t)

	_, _, err := execute(t, "build")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBuild_Publish(t *testing.T) {
	ts := setupTestServices(t)
	createDraft(t, "RatingStars")

	out := mustExecute(t, "build", "--draft", "RatingStars", "--publish")

	assert.Contains(t, out, "Published: https://gist.github.com/test")
	assert.NotEmpty(t, ts.publisher.files)
}

func TestValidate(t *testing.T) {
	setupTestServices(t)

	tests := []struct {
		name    string
		source  string
		want    string
		wantErr bool
	}{
		{name: "valid", source: validComponent, want: "valid (structural)"},
		{name: "missing export", source: "const A = 1;", want: "missing export default", wantErr: true},
		{name: "unclosed brace", source: "export default function A() {", want: "unclosed", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "Component.jsx", tt.source)

			out, _, err := execute(t, "validate", path)

			if tt.wantErr {
				assert.ErrorIs(t, err, errInvalidCode)
			} else {
				assert.NoError(t, err)
			}
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestHistory(t *testing.T) {
	ts := setupTestServices(t)
	createDraft(t, "RatingStars")

	out := mustExecute(t, "history", "--draft", "RatingStars")
	assert.Contains(t, out, "No builds for RatingStars")

	mustExecute(t, "build", "--draft", "RatingStars")
	ts.llm.reply = "nothing useful"
	_, _, err := execute(t, "build", "--draft", "RatingStars")
	require.Error(t, err)

	out = mustExecute(t, "history", "--draft", "RatingStars")
	assert.Contains(t, out, "scripted")
	assert.Contains(t, out, "ok")
	assert.Contains(t, out, "invalid: ")
}

func TestBuildStatus(t *testing.T) {
	tests := []struct {
		name  string
		build domain.Build
		want  string
	}{
		{name: "ok", build: domain.Build{Validation: domain.ValidationResult{Valid: true}}, want: "ok"},
		{name: "invalid", build: domain.Build{Validation: domain.ValidationResult{Diagnostic: "1:1: boom"}}, want: "invalid: 1:1: boom"},
		{name: "failed", build: domain.Build{Err: "timeout"}, want: "failed: timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildStatus(tt.build))
		})
	}
}

func TestPreviewWrite_FromLatestBuild(t *testing.T) {
	setupTestServices(t)
	createDraft(t, "RatingStars")
	mustExecute(t, "build", "--draft", "RatingStars")
	out := filepath.Join(t.TempDir(), "preview.html")

	mustExecute(t, "preview", "write", "--draft", "RatingStars", "--out", out)

	page, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(page), "RatingStars")
	assert.Contains(t, string(page), "<html")
}

func TestPreviewWrite_BlockedByValidation(t *testing.T) {
	setupTestServices(t)
	path := writeFile(t, "toggle.yaml", "identity:\n  name: Toggle\n")
	code := writeFile(t, "Toggle.jsx", "export default function Toggle() {")

	_, _, err := execute(t, "preview", "write", path, "--code", code, "--out", filepath.Join(t.TempDir(), "x.html"))

	assert.ErrorIs(t, err, domain.ErrPreviewBlocked)
}

func TestPreviewWrite_NoSuccessfulBuild(t *testing.T) {
	setupTestServices(t)
	createDraft(t, "RatingStars")

	_, _, err := execute(t, "preview", "write", "--draft", "RatingStars")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPreviewWrite_FileNeedsCode(t *testing.T) {
	setupTestServices(t)
	path := writeFile(t, "toggle.yaml", "identity:\n  name: Toggle\n")

	_, _, err := execute(t, "preview", "write", path)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSuggest_DryRun(t *testing.T) {
	ts := setupTestServices(t)
	ts.llm.reply = `"A row of five clickable stars"`
	createDraft(t, "RatingStars")

	out := mustExecute(t, "suggest", "description", "--draft", "RatingStars", "--dry-run")

	assert.Contains(t, out, "A row of five clickable stars")
	assert.Empty(t, getDraft(t, "RatingStars").State.Identity.Description)
}

func TestSuggest_SavesProps(t *testing.T) {
	ts := setupTestServices(t)
	ts.llm.reply = `[{"name":"value","type":"number","description":"Selected stars","required":true,"defaultValue":"0","impact":"Fills stars"}]`
	createDraft(t, "RatingStars")

	out := mustExecute(t, "suggest", "props", "--draft", "RatingStars")

	assert.Contains(t, out, "Saved props suggestion")
	props := getDraft(t, "RatingStars").State.Props
	require.Len(t, props, 1)
	assert.Equal(t, "value", props[0].Name)
	assert.NotEmpty(t, props[0].ID)
}

func TestSuggest_UnknownTarget(t *testing.T) {
	setupTestServices(t)
	createDraft(t, "RatingStars")

	_, _, err := execute(t, "suggest", "colour", "--draft", "RatingStars")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPublishGist(t *testing.T) {
	ts := setupTestServices(t)
	createDraft(t, "RatingStars")

	_, _, err := execute(t, "publish", "gist", "--draft", "RatingStars")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	mustExecute(t, "build", "--draft", "RatingStars")
	out := mustExecute(t, "publish", "gist", "--draft", "RatingStars")

	assert.Contains(t, out, "Published: https://gist.github.com/test")
	require.NotEmpty(t, ts.publisher.files)
}

func TestSettingsShow(t *testing.T) {
	setupTestServices(t)

	out := mustExecute(t, "settings", "show")

	assert.Contains(t, out, "[LLM]")
	assert.Contains(t, out, "not configured")
	assert.Contains(t, out, "Temperature: 0.1")
	assert.Contains(t, out, "Structural")
	assert.Contains(t, out, "GitHub token: (not set)")
}

func TestSettingsGeneration_Flags(t *testing.T) {
	setupTestServices(t)

	mustExecute(t, "settings", "generation", "--temperature", "0.3", "--rpm", "0")

	s, err := settingsService.Get()
	require.NoError(t, err)
	assert.InDelta(t, 0.3, s.Generation.Temperature, 1e-9)
	assert.Equal(t, 0, s.Generation.RequestsPerMinute)
	assert.Equal(t, domain.DefaultMaxTokens, s.Generation.MaxTokens)
}
