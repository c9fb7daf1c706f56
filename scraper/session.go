package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/use-agent/scout/config"
	"github.com/use-agent/scout/models"
	"github.com/ysmood/gson"
)

// Session is one browser with one page, owned by a single run. Stages are
// called in order: Search, Settle, HTML. Capture may be called at any point
// after acquisition. Close must be called on every exit path.
type Session interface {
	Search(ctx context.Context, term string) error
	Settle(ctx context.Context) error
	HTML(ctx context.Context) (string, error)
	Capture(ctx context.Context, path string) error
	Close() error
}

// rodSession is the Session backed by a stealth-configured Chromium.
type rodSession struct {
	browser  *rod.Browser
	page     *rod.Page
	launcher *launcher.Launcher // nil when attached to ControlURL
	router   *rod.HijackRouter
	cfg      config.ScraperConfig
	logger   *slog.Logger

	closeOnce sync.Once
	closeErr  error
}

// Launch starts (or attaches to) a browser and prepares one stealth page
// with the configured viewport. A failure here is an environment problem
// and is reported as BROWSER_LAUNCH.
func Launch(ctx context.Context, browserCfg config.BrowserConfig, scraperCfg config.ScraperConfig) (Session, error) {
	logger := slog.Default().With("component", "session")
	s := &rodSession{cfg: scraperCfg, logger: logger}

	// ── 1. Spawn or attach ───────────────────────────────────────────
	controlURL := browserCfg.ControlURL
	if controlURL == "" {
		s.launcher = newLauncher(browserCfg)
		u, err := s.launcher.Launch()
		if err != nil {
			return nil, models.NewScrapeError(models.ErrCodeBrowserLaunch, "failed to launch browser", err)
		}
		controlURL = u
		logger.Info("browser launched", "controlURL", controlURL, "headless", browserCfg.Headless)
	}

	s.browser = rod.New().ControlURL(controlURL)
	if err := s.browser.Connect(); err != nil {
		s.killLauncher()
		return nil, models.NewScrapeError(models.ErrCodeBrowserLaunch, "failed to connect to browser", err)
	}

	// ── 2. Stealth page (script installed before any navigation) ─────
	page, err := stealth.Page(s.browser)
	if err != nil {
		_ = s.Close()
		return nil, models.NewScrapeError(models.ErrCodeBrowserLaunch, "failed to open stealth page", err)
	}
	s.page = page
	p := page.Context(ctx)

	// ── 3. Fixed viewport ────────────────────────────────────────────
	if err := p.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             browserCfg.ViewportWidth,
		Height:            browserCfg.ViewportHeight,
		DeviceScaleFactor: 1,
	}); err != nil {
		_ = s.Close()
		return nil, models.NewScrapeError(models.ErrCodeBrowserLaunch, "failed to set viewport", err)
	}

	// ── 4. Extra headers ─────────────────────────────────────────────
	if browserCfg.AcceptLanguage != "" {
		if err := (proto.NetworkSetExtraHTTPHeaders{
			Headers: toHeadersMap(map[string]string{"Accept-Language": browserCfg.AcceptLanguage}),
		}).Call(p); err != nil {
			logger.Warn("failed to set extra headers, continuing", "error", err)
		}
	}

	// ── 5. Resource blocking ─────────────────────────────────────────
	s.router = setupHijack(s.page, scraperCfg.BlockedResourceTypes, scraperCfg.BlockAds)

	return s, nil
}

// newLauncher builds the Chromium launcher with the anti-automation flags.
func newLauncher(cfg config.BrowserConfig) *launcher.Launcher {
	l := launcher.New().
		Headless(cfg.Headless).
		NoSandbox(cfg.NoSandbox)

	if cfg.BrowserBin != "" {
		l = l.Bin(cfg.BrowserBin)
	}
	if cfg.Proxy != "" {
		l = l.Proxy(cfg.Proxy)
	}
	if cfg.NoSandbox {
		l.Set(flags.Flag("disable-setuid-sandbox"))
	}

	l.Set(flags.Flag("window-size"), fmt.Sprintf("%d,%d", cfg.ViewportWidth, cfg.ViewportHeight))
	l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	l.Delete(flags.Flag("enable-automation"))
	l.Set(flags.Flag("disable-features"), "TranslateUI")
	l.Set(flags.Flag("disable-popup-blocking"))
	l.Set(flags.Flag("disable-renderer-backgrounding"))
	l.Set(flags.Flag("disable-background-timer-throttling"))
	l.Set(flags.Flag("disable-backgrounding-occluded-windows"))
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("disable-extensions"))
	l.Set(flags.Flag("no-first-run"))
	return l
}

// HTML returns the rendered document.
func (s *rodSession) HTML(ctx context.Context) (string, error) {
	html, err := s.page.Context(ctx).HTML()
	if err != nil {
		return "", categorizeError(err, models.ErrCodeNavigation, "failed to read results page HTML")
	}
	return html, nil
}

// Close stops request interception and terminates the browser. When the
// session was attached to an external browser only its page is closed.
// Safe to call more than once.
func (s *rodSession) Close() error {
	s.closeOnce.Do(func() {
		if s.router != nil {
			if err := s.router.Stop(); err != nil {
				s.logger.Debug("hijack router stop failed", "error", err)
			}
		}
		if s.launcher == nil {
			if s.page != nil {
				s.closeErr = s.page.Close()
			}
			return
		}
		if s.browser != nil {
			s.closeErr = s.browser.Close()
		}
		s.killLauncher()
		s.logger.Info("browser closed")
	})
	return s.closeErr
}

func (s *rodSession) killLauncher() {
	if s.launcher == nil {
		return
	}
	s.launcher.Kill()
	s.launcher.Cleanup()
}

// toHeadersMap converts a plain string map to the proto.NetworkHeaders type
// (map[string]gson.JSON) required by NetworkSetExtraHTTPHeaders.
func toHeadersMap(headers map[string]string) proto.NetworkHeaders {
	m := make(proto.NetworkHeaders, len(headers))
	for k, v := range headers {
		m[k] = gson.New(v)
	}
	return m
}
