package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/archie/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for archie resources.
	uriScheme = "archie://"

	draftsURI    = uriScheme + "drafts"
	promptSuffix = "/prompt"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         draftsURI,
		Name:        "drafts",
		Description: "List of saved component drafts",
		MIMEType:    "application/json",
	}, s.handleDraftsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: draftsURI + "/{draftId}",
		Name:        "draft",
		Description: "A saved draft with its full component description",
		MIMEType:    "application/json",
	}, s.handleDraftResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: draftsURI + "/{draftId}" + promptSuffix,
		Name:        "draft-prompt",
		Description: "The Markdown prompt assembled from a draft",
		MIMEType:    "text/markdown",
	}, s.handleDraftPromptResource)
}

// handleDraftsResource returns all drafts.
func (s *Server) handleDraftsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	drafts, err := s.ports.Drafts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing drafts: %w", err)
	}

	data, err := json.MarshalIndent(draftInfos(drafts), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling drafts: %w", err)
	}
	return textResult(req.Params.URI, "application/json", string(data)), nil
}

// handleDraftResource returns one draft as JSON.
func (s *Server) handleDraftResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	d, err := s.draftForURI(ctx, req.Params.URI, false)
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling draft: %w", err)
	}
	return textResult(req.Params.URI, "application/json", string(data)), nil
}

// handleDraftPromptResource returns the assembled prompt of a draft.
func (s *Server) handleDraftPromptResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	d, err := s.draftForURI(ctx, req.Params.URI, true)
	if err != nil {
		return nil, err
	}
	return textResult(req.Params.URI, "text/markdown", s.assembler.Assemble(d.State)), nil
}

func (s *Server) draftForURI(ctx context.Context, uri string, prompt bool) (*domain.Draft, error) {
	id, isPrompt := extractDraftID(uri)
	if id == "" || isPrompt != prompt {
		return nil, mcp.ResourceNotFoundError(uri)
	}

	d, err := s.ports.Drafts.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(uri)
	}
	if err != nil {
		return nil, fmt.Errorf("getting draft: %w", err)
	}
	return d, nil
}

// extractDraftID parses archie://drafts/{id} and archie://drafts/{id}/prompt.
func extractDraftID(uri string) (id string, prompt bool) {
	const prefix = draftsURI + "/"
	if !strings.HasPrefix(uri, prefix) {
		return "", false
	}
	rest := strings.TrimPrefix(uri, prefix)
	if strings.HasSuffix(rest, promptSuffix) {
		rest = strings.TrimSuffix(rest, promptSuffix)
		prompt = true
	}
	if rest == "" || strings.Contains(rest, "/") {
		return "", false
	}
	return rest, prompt
}

func textResult(uri, mime, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: mime,
			Text:     text,
		}},
	}
}
