package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/archie/internal/adapters/driven/config/file"
	"github.com/custodia-labs/archie/internal/core/domain"
	"github.com/custodia-labs/archie/internal/core/services"
	"github.com/custodia-labs/archie/internal/promptdoc"
)

// RenderPromptInput is the input schema for the render_prompt tool.
type RenderPromptInput struct {
	Document string `json:"document" jsonschema:"the component description as JSON (a document or a full draft)"`
	Format   string `json:"format,omitempty" jsonschema:"json (default) or yaml"`
}

// PromptOutput is returned by the render tools.
type PromptOutput struct {
	ID       string                     `json:"id,omitempty"`
	Name     string                     `json:"name,omitempty"`
	Prompt   string                     `json:"prompt"`
	Sections []promptdoc.SectionSummary `json:"sections"`
}

// DraftRef identifies a draft by id, unique id prefix or name.
type DraftRef struct {
	ID string `json:"id" jsonschema:"draft id, unique id prefix or name"`
}

// ListDraftsInput is the (empty) input schema for list_drafts.
type ListDraftsInput struct{}

// DraftInfo summarises a draft.
type DraftInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Component string `json:"component"`
	UpdatedAt string `json:"updated_at"`
}

// ListDraftsOutput is the output schema for list_drafts.
type ListDraftsOutput struct {
	Drafts []DraftInfo `json:"drafts"`
	Count  int         `json:"count"`
}

// EditDraftInput is the input schema for edit_draft.
type EditDraftInput struct {
	ID       string            `json:"id" jsonschema:"draft id, unique id prefix or name"`
	Op       string            `json:"op" jsonschema:"set (section fields), add, update or remove (list records)"`
	Target   string            `json:"target" jsonschema:"section for set (identity, state, visuals, robustness) or list for the others (props, variables, effects, interactions, emitters, conditionals)"`
	RecordID string            `json:"record_id,omitempty" jsonschema:"record id for update and remove"`
	Key      string            `json:"key,omitempty" jsonschema:"single field key to change"`
	Value    string            `json:"value,omitempty" jsonschema:"value for key"`
	Fields   map[string]string `json:"fields,omitempty" jsonschema:"several field values by key"`
}

// EditDraftOutput is the output schema for edit_draft.
type EditDraftOutput struct {
	ID       string `json:"id"`
	RecordID string `json:"record_id,omitempty"`
	Prompt   string `json:"prompt"`
}

// BuildOutput is the output schema for build_component.
type BuildOutput struct {
	BuildID    string `json:"build_id"`
	Model      string `json:"model"`
	Code       string `json:"code"`
	Valid      bool   `json:"valid"`
	Diagnostic string `json:"diagnostic,omitempty"`
	Error      string `json:"error,omitempty"`
}

// ValidateCodeInput is the input schema for validate_code.
type ValidateCodeInput struct {
	Source string `json:"source" jsonschema:"component source code"`
}

// ValidateCodeOutput is the output schema for validate_code.
type ValidateCodeOutput struct {
	Valid      bool   `json:"valid"`
	Diagnostic string `json:"diagnostic,omitempty"`
	Validator  string `json:"validator"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "render_prompt",
		Description: "Render a React component description as the Markdown prompt used to generate it",
	}, s.handleRenderPrompt)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_drafts",
		Description: "List saved component drafts",
	}, s.handleListDrafts)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "render_draft",
		Description: "Render the prompt of a saved draft",
	}, s.handleRenderDraft)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "edit_draft",
		Description: "Set section fields of a draft, or add, update or remove list records",
	}, s.handleEditDraft)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "build_component",
		Description: "Generate the component for a draft with the configured LLM and validate it",
	}, s.handleBuildComponent)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "validate_code",
		Description: "Check component source with the configured validator",
	}, s.handleValidateCode)
}

func (s *Server) handleRenderPrompt(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input RenderPromptInput,
) (*mcp.CallToolResult, PromptOutput, error) {
	format := file.FormatJSON
	if input.Format != "" {
		f, err := file.ParseFormat(input.Format)
		if err != nil {
			return nil, PromptOutput{}, err
		}
		format = f
	}

	d, err := file.DecodeDraft([]byte(input.Document), format)
	if err != nil {
		return nil, PromptOutput{}, err
	}
	return nil, s.promptOutput(d, ""), nil
}

func (s *Server) handleListDrafts(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListDraftsInput,
) (*mcp.CallToolResult, ListDraftsOutput, error) {
	drafts, err := s.ports.Drafts.List(ctx)
	if err != nil {
		return nil, ListDraftsOutput{}, fmt.Errorf("listing drafts: %w", err)
	}
	return nil, ListDraftsOutput{Drafts: draftInfos(drafts), Count: len(drafts)}, nil
}

func (s *Server) handleRenderDraft(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DraftRef,
) (*mcp.CallToolResult, PromptOutput, error) {
	d, err := s.ports.Drafts.Resolve(ctx, input.ID)
	if err != nil {
		return nil, PromptOutput{}, err
	}
	return nil, s.promptOutput(d, d.ID), nil
}

func (s *Server) handleEditDraft(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input EditDraftInput,
) (*mcp.CallToolResult, EditDraftOutput, error) {
	d, err := s.ports.Drafts.Resolve(ctx, input.ID)
	if err != nil {
		return nil, EditDraftOutput{}, err
	}

	fields := make(map[string]string, len(input.Fields)+1)
	for k, v := range input.Fields {
		fields[k] = v
	}
	if input.Key != "" {
		fields[input.Key] = input.Value
	}

	var recordID string
	switch input.Op {
	case "set":
		section, err := domain.ParseSectionKind(input.Target)
		if err != nil {
			return nil, EditDraftOutput{}, err
		}
		d.State, err = services.ApplySectionFields(d.State, section, fields)
		if err != nil {
			return nil, EditDraftOutput{}, err
		}
	case "add", "update", "remove":
		list, err := domain.ParseListKind(input.Target)
		if err != nil {
			return nil, EditDraftOutput{}, err
		}
		d.State, recordID, err = services.ApplyListEdit(d.State, list, input.Op, input.RecordID, fields)
		if err != nil {
			return nil, EditDraftOutput{}, err
		}
	default:
		return nil, EditDraftOutput{}, fmt.Errorf("%w: op must be set, add, update or remove", domain.ErrInvalidInput)
	}

	if err := s.ports.Drafts.Save(ctx, d); err != nil {
		return nil, EditDraftOutput{}, fmt.Errorf("saving draft: %w", err)
	}
	return nil, EditDraftOutput{
		ID:       d.ID,
		RecordID: recordID,
		Prompt:   s.assembler.Assemble(d.State),
	}, nil
}

func (s *Server) handleBuildComponent(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DraftRef,
) (*mcp.CallToolResult, BuildOutput, error) {
	if s.ports.Builds == nil || !s.ports.Builds.Available() {
		return nil, BuildOutput{}, fmt.Errorf("%w: no LLM provider configured", domain.ErrLLMUnavailable)
	}
	d, err := s.ports.Drafts.Resolve(ctx, input.ID)
	if err != nil {
		return nil, BuildOutput{}, err
	}

	build, err := s.ports.Builds.Build(ctx, d.ID, d.State)
	if err != nil && (build == nil || !errors.Is(err, domain.ErrGenerationFailed)) {
		return nil, BuildOutput{}, err
	}

	out := BuildOutput{
		BuildID:    build.ID,
		Model:      build.Model,
		Code:       build.Code,
		Valid:      build.Validation.Valid,
		Diagnostic: build.Validation.Diagnostic,
		Error:      build.Err,
	}
	if !build.Succeeded() {
		msg := build.Err
		if msg == "" {
			msg = "generated code failed validation: " + build.Validation.Diagnostic
		}
		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{&mcp.TextContent{Text: msg}},
		}, out, nil
	}
	return nil, out, nil
}

func (s *Server) handleValidateCode(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ValidateCodeInput,
) (*mcp.CallToolResult, ValidateCodeOutput, error) {
	if s.ports.Builds == nil {
		return nil, ValidateCodeOutput{}, domain.ErrValidatorUnavailable
	}
	res, err := s.ports.Builds.Validate(ctx, input.Source)
	if err != nil {
		return nil, ValidateCodeOutput{}, err
	}
	return nil, ValidateCodeOutput{
		Valid:      res.Valid,
		Diagnostic: res.Diagnostic,
		Validator:  res.Validator,
	}, nil
}

func (s *Server) promptOutput(d *domain.Draft, id string) PromptOutput {
	return PromptOutput{
		ID:       id,
		Name:     d.Name,
		Prompt:   s.assembler.Assemble(d.State),
		Sections: promptdoc.Outline(d.State),
	}
}

func draftInfos(drafts []domain.Draft) []DraftInfo {
	infos := make([]DraftInfo, len(drafts))
	for i, d := range drafts {
		infos[i] = DraftInfo{
			ID:        d.ID,
			Name:      d.DisplayName(),
			Component: d.State.Identity.Name,
			UpdatedAt: d.UpdatedAt.UTC().Format(time.RFC3339),
		}
	}
	return infos
}
