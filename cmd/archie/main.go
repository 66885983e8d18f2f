// Package main is the archie command.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/archie/internal/adapters/driven/ai"
	"github.com/custodia-labs/archie/internal/adapters/driven/config/file"
	"github.com/custodia-labs/archie/internal/adapters/driven/llm/instrumented"
	"github.com/custodia-labs/archie/internal/adapters/driven/publish/github"
	"github.com/custodia-labs/archie/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/archie/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/archie/internal/adapters/driven/validation"
	"github.com/custodia-labs/archie/internal/adapters/driving/cli"
	"github.com/custodia-labs/archie/internal/adapters/driving/web"
	"github.com/custodia-labs/archie/internal/core/domain"
	"github.com/custodia-labs/archie/internal/core/ports/driven"
	"github.com/custodia-labs/archie/internal/core/services"
	"github.com/custodia-labs/archie/internal/logger"
	"github.com/custodia-labs/archie/internal/preview"
)

// version is set at build time with -ldflags "-X main.version=...".
var version string

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: .env: %v\n", err)
	}

	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// bootstrap wires the driven adapters into the services for one command.
//
//nolint:funlen // linear wiring
func bootstrap(opts cli.Options) (*cli.Services, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	fail := func(err error) (*cli.Services, func(), error) {
		cleanup()
		return nil, nil, err
	}

	configDir := opts.ConfigDir
	if configDir == "" {
		dir, err := file.DefaultConfigDir()
		if err != nil {
			return fail(err)
		}
		configDir = dir
	}
	logger.Debug("config directory: %s", configDir)

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return fail(fmt.Errorf("failed to load config: %w", err))
	}
	prompts, err := file.NewPromptStore(filepath.Join(configDir, "prompts"))
	if err != nil {
		return fail(err)
	}

	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())
	settings, err := settingsService.Get()
	if err != nil {
		return fail(fmt.Errorf("failed to read settings: %w", err))
	}

	var draftStore driven.DraftStore
	var buildStore driven.BuildStore
	switch settings.Storage {
	case domain.StorageMemory:
		logger.Debug("storage: memory")
		draftStore, buildStore = memory.NewStores()
	default:
		store, err := sqlite.New(configDir)
		if err != nil {
			return fail(fmt.Errorf("failed to open storage: %w", err))
		}
		logger.Debug("storage: %s", store.Path())
		closers = append(closers, func() {
			if err := store.Close(); err != nil {
				logger.Warn("closing storage: %v", err)
			}
		})
		draftStore, buildStore = store.DraftStore(), store.BuildStore()
	}

	validator := validation.New(settings.Validation)
	logger.Debug("validator: %s", validator.Name())
	closers = append(closers, func() {
		if err := validation.Close(validator); err != nil {
			logger.Warn("closing validator: %v", err)
		}
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	var llm driven.LLMService
	if opts.NeedsLLM {
		res := ai.Init(&settings.LLM, instrumented.NewMetrics(registry))
		for _, w := range res.Warnings {
			logger.Warn("%s", w)
		}
		llm = res.LLMService
		closers = append(closers, res.Close)
	}
	gen := services.NewGenerator(llm, settings.Generation)

	var publisher driven.Publisher
	if token := settings.Publish.GitHubToken; token != "" {
		p, err := github.NewGistPublisher(github.Config{Token: token})
		if err != nil {
			logger.Warn("gist publishing disabled: %v", err)
		} else {
			publisher = p
		}
	}

	return &cli.Services{
		Editor:      services.NewEditorService(),
		Drafts:      services.NewDraftService(draftStore),
		Builds:      services.NewBuildService(gen, prompts, validator, buildStore, settings.Generation),
		Suggestions: services.NewSuggestionService(gen, prompts),
		Preview:     services.NewPreviewService(validator, preview.Options{}),
		LivePreview: services.NewPreviewService(validator, preview.Options{ReloadPath: web.ReloadPath}),
		Publish:     services.NewPublishService(publisher),
		Settings:    settingsService,
		Metrics:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}, cleanup, nil
}
