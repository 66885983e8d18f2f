// Package browser validates generated components by transpiling them with
// Babel standalone inside headless Chromium.
package browser

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/custodia-labs/archie/internal/core/domain"
	"github.com/custodia-labs/archie/internal/core/ports/driven"
	"github.com/custodia-labs/archie/internal/logger"
)

// Name identifies this validator in results.
const Name = "browser"

// Defaults.
const (
	DefaultBabelURL    = "https://unpkg.com/@babel/standalone/babel.min.js"
	DefaultLoadTimeout = 30 * time.Second
)

var _ driven.CodeValidator = (*Validator)(nil)

// transformJS returns "" on success or the Babel error message.
const transformJS = `(src) => {
  try {
    Babel.transform(src, {
      presets: ['react', ['typescript', { isTSX: true, allExtensions: true }]],
      filename: 'Component.tsx',
    });
    return '';
  } catch (e) {
    return String((e && e.message) || e);
  }
}`

// Config configures the browser validator.
type Config struct {
	// Bin is the Chromium binary. Empty lets rod find or download one.
	Bin string

	// BabelURL is where Babel standalone is loaded from.
	BabelURL string

	// LoadTimeout bounds browser start-up and Babel loading.
	LoadTimeout time.Duration
}

// Validator runs Babel in a lazily started browser page. Calls are
// serialised on the single page.
type Validator struct {
	cfg Config

	mu      sync.Mutex
	browser *rod.Browser
	page    *rod.Page
}

// New returns a validator. The browser starts on first use.
func New(cfg Config) *Validator {
	if cfg.BabelURL == "" {
		cfg.BabelURL = DefaultBabelURL
	}
	if cfg.LoadTimeout == 0 {
		cfg.LoadTimeout = DefaultLoadTimeout
	}
	return &Validator{cfg: cfg}
}

// Name returns the validator name.
func (v *Validator) Name() string { return Name }

// Validate transpiles source. A Babel error is an invalid result; failing to
// start the browser or load Babel is an error wrapping
// domain.ErrValidatorUnavailable.
func (v *Validator) Validate(ctx context.Context, source string) (domain.ValidationResult, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	page, err := v.ensurePage()
	if err != nil {
		return domain.ValidationResult{}, fmt.Errorf("%w: %w", domain.ErrValidatorUnavailable, err)
	}

	obj, err := page.Context(ctx).Eval(transformJS, source)
	if err != nil {
		if ctx.Err() != nil {
			return domain.ValidationResult{}, ctx.Err()
		}
		// The page may have crashed; start fresh next time.
		v.closeLocked()
		return domain.ValidationResult{}, fmt.Errorf("%w: %w", domain.ErrValidatorUnavailable, err)
	}

	msg := obj.Value.Str()
	return domain.ValidationResult{
		Valid:      msg == "",
		Diagnostic: msg,
		Validator:  Name,
	}, nil
}

// Close shuts the browser down.
func (v *Validator) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.closeLocked()
}

func (v *Validator) closeLocked() error {
	if v.browser == nil {
		return nil
	}
	err := v.browser.Close()
	v.browser, v.page = nil, nil
	return err
}

func (v *Validator) ensurePage() (*rod.Page, error) {
	if v.page != nil {
		return v.page, nil
	}

	logger.Debug("Starting headless browser for validation")
	l := launcher.New().Headless(true)
	if v.cfg.Bin != "" {
		l = l.Bin(v.cfg.Bin)
	}
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	page, err := v.loadBabel(browser)
	if err != nil {
		_ = browser.Close()
		return nil, err
	}

	v.browser, v.page = browser, page
	return page, nil
}

func (v *Validator) loadBabel(browser *rod.Browser) (*rod.Page, error) {
	page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}

	p := page.Timeout(v.cfg.LoadTimeout)
	if _, err := p.Eval(`(url) => new Promise((resolve, reject) => {
  const s = document.createElement('script');
  s.src = url;
  s.onload = () => resolve(true);
  s.onerror = () => reject(new Error('failed to load ' + url));
  document.head.appendChild(s);
})`, v.cfg.BabelURL); err != nil {
		return nil, fmt.Errorf("load babel: %w", err)
	}

	ok, err := p.Eval(`() => typeof Babel !== 'undefined'`)
	if err != nil {
		return nil, fmt.Errorf("load babel: %w", err)
	}
	if !ok.Value.Bool() {
		return nil, errors.New("load babel: Babel is not defined")
	}
	return page, nil
}
