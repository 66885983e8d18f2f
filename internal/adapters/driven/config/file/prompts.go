package file

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/archie/internal/core/ports/driven"
	"github.com/custodia-labs/archie/internal/logger"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

//go:embed prompts/*.txt prompts/README.md
var defaultFS embed.FS

// PromptStore loads LLM prompts from user-editable files on disk.
// Files are written from the embedded defaults the first time a prompt is
// loaded; missing or unreadable files fall back to the defaults.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error
}

// NewPromptStore creates a new file-based prompt store.
// If promptDir is empty, defaults to ~/.archie/prompts/.
// No I/O happens until the first Load.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		promptDir = filepath.Join(home, ".archie", "prompts")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}, nil
}

// DefaultPrompt returns the embedded template for name.
func DefaultPrompt(name string) (string, error) {
	data, err := defaultFS.ReadFile("prompts/" + name + ".txt")
	if err != nil {
		return "", fmt.Errorf("no default prompt %q: %w", name, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Load returns the prompt template for the given name.
func (s *PromptStore) Load(name string) (string, error) {
	s.initOnce.Do(s.initialise)

	s.mu.RLock()
	if prompt, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return prompt, nil
	}
	s.mu.RUnlock()

	prompt, err := s.loadFromFile(name)
	if err != nil {
		def, defErr := DefaultPrompt(name)
		if defErr != nil {
			return "", fmt.Errorf("load prompt %q: %w", name, errors.Join(err, defErr))
		}
		if s.initErr == nil && !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("prompt %s unreadable, using default: %v", name, err)
		}
		prompt = def
	}

	s.mu.Lock()
	if cached, ok := s.cache[name]; ok {
		prompt = cached
	} else {
		s.cache[name] = prompt
	}
	s.mu.Unlock()

	return prompt, nil
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

// initialise copies missing default files into the prompt directory.
func (s *PromptStore) initialise() {
	if err := os.MkdirAll(s.promptDir, 0o700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		logger.Warn("%v; using built-in prompts", s.initErr)
		return
	}

	entries, err := fs.ReadDir(defaultFS, "prompts")
	if err != nil {
		s.initErr = err
		return
	}
	for _, e := range entries {
		path := filepath.Join(s.promptDir, e.Name())
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			continue
		}
		data, err := defaultFS.ReadFile("prompts/" + e.Name())
		if err != nil {
			s.initErr = err
			return
		}
		if err := os.WriteFile(path, data, 0o600); err != nil {
			s.initErr = fmt.Errorf("create default prompt %q: %w", e.Name(), err)
			logger.Warn("%v; using built-in prompts", s.initErr)
			return
		}
	}
}

func (s *PromptStore) loadFromFile(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.promptDir, name+".txt"))
	if err != nil {
		return "", err
	}
	prompt := strings.TrimSpace(string(data))
	if prompt == "" {
		return "", fmt.Errorf("prompt file %s.txt is empty", name)
	}
	return prompt, nil
}
