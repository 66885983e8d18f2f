package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/archie/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the LLM provider, generation limits, the code
validator and gist publishing.

Use subcommands to configure specific settings or run the interactive wizard.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure all settings step by step.`,
	RunE:  runSettingsWizard,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure LLM provider",
	Long: `Configure the LLM provider used for builds and suggestions.

The configuration is checked by contacting the provider before it is kept.`,
	RunE: runSettingsLLM,
}

var settingsValidationCmd = &cobra.Command{
	Use:   "validation",
	Short: "Select the code validator",
	Long: `Select how generated code is checked before it is previewed.

Available modes:
  structural - Built-in lexical checks (no setup required)
  browser    - Transpile with Babel in headless Chromium (downloads Chromium on first use)`,
	RunE: runSettingsValidation,
}

var settingsGenerationCmd = &cobra.Command{
	Use:   "generation",
	Short: "Tune build requests",
	Long:  `Set the build temperature, token limit, request rate and timeout.`,
	RunE:  runSettingsGeneration,
}

var settingsPublishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Set the GitHub token for gist publishing",
	RunE:  runSettingsPublish,
}

var (
	genTemperature float64
	genMaxTokens   int
	genRPM         int
	genTimeout     time.Duration
	publishClear   bool
)

func init() {
	settingsGenerationCmd.Flags().Float64Var(&genTemperature, "temperature", 0, "Build temperature (0-2)")
	settingsGenerationCmd.Flags().IntVar(&genMaxTokens, "max-tokens", 0, "Maximum tokens per build")
	settingsGenerationCmd.Flags().IntVar(&genRPM, "rpm", 0, "Provider requests per minute (0 = unlimited)")
	settingsGenerationCmd.Flags().DurationVar(&genTimeout, "timeout", 0, "Timeout for one provider call")
	settingsPublishCmd.Flags().BoolVar(&publishClear, "clear", false, "Remove the stored token")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	settingsCmd.AddCommand(settingsValidationCmd)
	settingsCmd.AddCommand(settingsGenerationCmd)
	settingsCmd.AddCommand(settingsPublishCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return notConfigured("settings")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	// LLM settings
	cmd.Println("[LLM]")
	cmd.Printf("  Provider: %s\n", settings.LLM.Provider.Description())
	cmd.Printf("  Model: %s\n", orNone(settings.LLM.Model))
	if settings.LLM.BaseURL != "" {
		cmd.Printf("  Base URL: %s\n", settings.LLM.BaseURL)
	}
	if settings.LLM.Provider.RequiresAPIKey() {
		if settings.LLM.APIKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(settings.LLM.APIKey))
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
	}
	status := "configured"
	if !settings.LLM.IsConfigured() {
		status = "not configured (builds and suggestions disabled)"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()

	// Generation settings
	cmd.Println("[Generation]")
	cmd.Printf("  Temperature: %g\n", settings.Generation.Temperature)
	cmd.Printf("  Max tokens: %d\n", settings.Generation.MaxTokens)
	if settings.Generation.RequestsPerMinute > 0 {
		cmd.Printf("  Requests per minute: %d\n", settings.Generation.RequestsPerMinute)
	} else {
		cmd.Printf("  Requests per minute: unlimited\n")
	}
	cmd.Printf("  Timeout: %s\n", settings.Generation.Timeout)
	cmd.Println()

	// Validation settings
	cmd.Println("[Validation]")
	cmd.Printf("  Mode: %s\n", settings.Validation.Mode.Description())
	if settings.Validation.Mode == domain.ValidationBrowser {
		cmd.Printf("  Browser: %s\n", orDefault(settings.Validation.BrowserBin, "(auto)"))
	}
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Backend: %s\n", settings.Storage)
	cmd.Println()

	cmd.Println("[Publish]")
	if settings.Publish.GitHubToken != "" {
		cmd.Printf("  GitHub token: %s\n", maskAPIKey(settings.Publish.GitHubToken))
	} else {
		cmd.Printf("  GitHub token: (not set)\n")
	}
	cmd.Println()

	// Validation
	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'archie settings wizard' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return notConfigured("settings")
	}

	cmd.Println("Archie Settings Wizard")
	cmd.Println("======================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	// Step 1: LLM provider
	cmd.Println("Step 1: Configure LLM Provider")
	cmd.Println("------------------------------")
	cmd.Println("Builds and suggestions need an LLM. Press Enter on the model to accept the default.")
	cmd.Println()
	if err := configureLLMProvider(cmd, reader); err != nil {
		return err
	}

	// Step 2: validator
	cmd.Println("Step 2: Select Code Validator")
	cmd.Println("-----------------------------")
	if err := configureValidation(cmd, reader); err != nil {
		return err
	}

	// Step 3: publishing
	cmd.Println("Step 3: Gist Publishing (optional)")
	cmd.Println("----------------------------------")
	cmd.Print("Enter GitHub token (leave empty to skip): ")
	if token := readPassword(cmd, reader); token != "" {
		if err := settingsService.SetGitHubToken(token); err != nil {
			return fmt.Errorf("failed to save GitHub token: %w", err)
		}
		cmd.Println("GitHub token saved.")
	} else {
		cmd.Println("Skipped.")
	}
	cmd.Println()

	// Final validation
	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")
	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("All settings are valid and saved.")
	}

	return nil
}

func runSettingsLLM(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return notConfigured("settings")
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	return configureLLMProvider(cmd, reader)
}

func runSettingsValidation(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return notConfigured("settings")
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	return configureValidation(cmd, reader)
}

func runSettingsGeneration(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return notConfigured("settings")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	gen := settings.Generation

	flags := cmd.Flags()
	if !flags.Changed("temperature") && !flags.Changed("max-tokens") && !flags.Changed("rpm") && !flags.Changed("timeout") {
		reader := bufio.NewReader(cmd.InOrStdin())
		gen, err = promptGeneration(cmd, reader, gen)
		if err != nil {
			return err
		}
	} else {
		if flags.Changed("temperature") {
			gen.Temperature = genTemperature
		}
		if flags.Changed("max-tokens") {
			gen.MaxTokens = genMaxTokens
		}
		if flags.Changed("rpm") {
			gen.RequestsPerMinute = genRPM
		}
		if flags.Changed("timeout") {
			gen.Timeout = genTimeout
		}
	}

	if err := settingsService.SetGeneration(gen); err != nil {
		return fmt.Errorf("failed to save generation settings: %w", err)
	}
	cmd.Printf("Generation settings saved: temperature %g, max tokens %d, %d requests/min, timeout %s\n",
		gen.Temperature, gen.MaxTokens, gen.RequestsPerMinute, gen.Timeout)
	return nil
}

func runSettingsPublish(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return notConfigured("settings")
	}

	if publishClear {
		if err := settingsService.SetGitHubToken(""); err != nil {
			return fmt.Errorf("failed to clear GitHub token: %w", err)
		}
		cmd.Println("GitHub token removed.")
		return nil
	}

	reader := bufio.NewReader(cmd.InOrStdin())
	cmd.Print("Enter GitHub token with the gist scope: ")
	token := readPassword(cmd, reader)
	if token == "" {
		return errors.New("a token is required (use --clear to remove the stored one)")
	}
	if err := settingsService.SetGitHubToken(token); err != nil {
		return fmt.Errorf("failed to save GitHub token: %w", err)
	}
	cmd.Printf("GitHub token saved: %s\n", maskAPIKey(token))
	return nil
}

func configureLLMProvider(cmd *cobra.Command, reader *bufio.Reader) error {
	cmd.Println("Select LLM Provider")
	providers := domain.AllLLMProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	input := readLine(reader)
	idx := parseChoice(input, len(providers), 1)
	selectedProvider := providers[idx-1]

	// Get model
	defaults := domain.DefaultLLMModels()
	defaultModel := defaults[selectedProvider]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	// Get API key if needed
	var apiKey string
	if selectedProvider.RequiresAPIKey() {
		cmd.Print("Enter API key: ")
		apiKey = readPassword(cmd, reader)
		cmd.Println()
		if apiKey == "" {
			return errors.New("API key is required for this provider")
		}
	}

	if err := settingsService.SetLLMProvider(selectedProvider, model, apiKey); err != nil {
		return fmt.Errorf("failed to configure LLM provider: %w", err)
	}

	// Validate the configuration by pinging the service
	cmd.Print("Validating configuration... ")
	if err := settingsService.ValidateLLMConfig(); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("LLM configuration validation failed: %w", err)
	}
	cmd.Println("OK")

	cmd.Printf("LLM provider configured: %s (%s)\n\n", selectedProvider.Description(), model)
	return nil
}

func configureValidation(cmd *cobra.Command, reader *bufio.Reader) error {
	modes := []domain.ValidationMode{domain.ValidationStructural, domain.ValidationBrowser}
	for i, m := range modes {
		cmd.Printf("  %d. %s\n", i+1, m.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	idx := parseChoice(readLine(reader), len(modes), 1)

	v := domain.ValidationSettings{Mode: modes[idx-1]}
	if v.Mode == domain.ValidationBrowser {
		cmd.Print("Chromium binary (leave empty to download automatically): ")
		v.BrowserBin = readLine(reader)
	}

	if err := settingsService.SetValidation(v); err != nil {
		return fmt.Errorf("failed to set validation mode: %w", err)
	}
	cmd.Printf("Validation mode set to: %s\n\n", v.Mode.Description())
	return nil
}

func promptGeneration(cmd *cobra.Command, reader *bufio.Reader, gen domain.GenerationSettings) (domain.GenerationSettings, error) {
	cmd.Printf("Temperature [%g]: ", gen.Temperature)
	if s := readLine(reader); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return gen, fmt.Errorf("invalid temperature %q", s)
		}
		gen.Temperature = v
	}

	cmd.Printf("Max tokens [%d]: ", gen.MaxTokens)
	if s := readLine(reader); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return gen, fmt.Errorf("invalid max tokens %q", s)
		}
		gen.MaxTokens = v
	}

	cmd.Printf("Requests per minute, 0 for unlimited [%d]: ", gen.RequestsPerMinute)
	if s := readLine(reader); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return gen, fmt.Errorf("invalid requests per minute %q", s)
		}
		gen.RequestsPerMinute = v
	}

	cmd.Printf("Timeout [%s]: ", gen.Timeout)
	if s := readLine(reader); s != "" {
		v, err := time.ParseDuration(s)
		if err != nil {
			return gen, fmt.Errorf("invalid timeout %q", s)
		}
		gen.Timeout = v
	}
	return gen, nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	input = strings.TrimSpace(input)
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// readPassword reads without echo when stdin is a terminal.
func readPassword(cmd *cobra.Command, reader *bufio.Reader) string {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	return readLine(reader)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
