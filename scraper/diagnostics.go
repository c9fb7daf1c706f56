package scraper

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/rod/lib/utils"
)

// captureTimeout bounds a diagnostics screenshot, which may run after the
// run's own context has expired.
const captureTimeout = 15 * time.Second

// Capture writes a full-page PNG screenshot to path, replacing any
// previous file.
func (s *rodSession) Capture(ctx context.Context, path string) error {
	img, err := s.page.Context(ctx).Screenshot(true, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return err
	}
	return utils.OutputFile(path, img)
}

// captureDiagnostics takes a best-effort screenshot for the operator.
// Failures are logged and swallowed so they never replace the error that
// triggered the capture. It reports whether a file was written.
func captureDiagnostics(ctx context.Context, sess Session, path, label string, logger *slog.Logger) bool {
	if sess == nil || path == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), captureTimeout)
	defer cancel()

	if err := sess.Capture(ctx, path); err != nil {
		logger.Warn("diagnostics capture failed", "label", label, "path", path, "error", err)
		return false
	}
	logger.Info("diagnostics screenshot saved", "label", label, "path", path)
	return true
}
