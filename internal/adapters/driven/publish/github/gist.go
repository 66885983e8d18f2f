// Package github publishes builds as secret GitHub gists.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/archie/internal/core/ports/driven"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

var _ driven.Publisher = (*GistPublisher)(nil)

// Config configures the gist publisher.
type Config struct {
	// Token is a GitHub token with the gist scope (required).
	Token string

	// BaseURL overrides the API root, for GitHub Enterprise.
	BaseURL string

	// Public makes gists public. Gists are secret by default.
	Public bool
}

// GistPublisher uploads files as one gist.
type GistPublisher struct {
	gh     *gh.Client
	public bool
}

// NewGistPublisher creates a publisher authenticated with cfg.Token.
func NewGistPublisher(cfg Config) (*GistPublisher, error) {
	if cfg.Token == "" {
		return nil, errors.New("github: token is required")
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
	tc := oauth2.NewClient(context.Background(), ts)
	tc.Timeout = DefaultTimeout
	client := gh.NewClient(tc)

	if cfg.BaseURL != "" {
		u, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("github: invalid base URL: %w", err)
		}
		client.BaseURL = u
	}

	return &GistPublisher{gh: client, public: cfg.Public}, nil
}

// Publish creates a gist and returns its HTML URL.
func (p *GistPublisher) Publish(ctx context.Context, description string, files []driven.PublishFile) (string, error) {
	if len(files) == 0 {
		return "", errors.New("github: nothing to publish")
	}

	gist := &gh.Gist{
		Description: gh.Ptr(description),
		Public:      gh.Ptr(p.public),
		Files:       make(map[gh.GistFilename]gh.GistFile, len(files)),
	}
	for _, f := range files {
		gist.Files[gh.GistFilename(f.Name)] = gh.GistFile{Content: gh.Ptr(f.Content)}
	}

	created, _, err := p.gh.Gists.Create(ctx, gist)
	if err != nil {
		return "", wrapError(err)
	}
	return created.GetHTMLURL(), nil
}

func wrapError(err error) error {
	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		return fmt.Errorf("github: create gist: status %d: %s", ghErr.Response.StatusCode, ghErr.Message)
	}
	return fmt.Errorf("github: create gist: %w", err)
}
