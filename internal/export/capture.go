package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/png" // decode captured screenshots
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"
	"github.com/jonathan/resume-builder/internal/rendering"
)

// CaptureScale is the device pixel ratio used for rasterizing: 816×1056 CSS px become 1632×2112 px.
const CaptureScale = 2

// Capturer rasterizes a preview surface into a PNG on a white background.
type Capturer interface {
	Capture(ctx context.Context, surface Surface) ([]byte, error)
}

// ChromeCapturer screenshots the preview element in headless Chrome.
// Requires Chrome/Chromium to be installed on the system.
type ChromeCapturer struct {
	ExecPath string
	Timeout  time.Duration
}

// NewChromeCapturer creates a capturer; an empty execPath uses CHROME_PATH or the default lookup.
func NewChromeCapturer(execPath string, timeout time.Duration) *ChromeCapturer {
	if execPath == "" {
		execPath = os.Getenv("CHROME_PATH")
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ChromeCapturer{ExecPath: execPath, Timeout: timeout}
}

// Capture implements Capturer
func (c *ChromeCapturer) Capture(ctx context.Context, surface Surface) ([]byte, error) {
	if err := surface.Check(); err != nil {
		return nil, err
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if c.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(c.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, c.Timeout)
	defer cancel()

	tmpDir, err := os.MkdirTemp("", "resume-preview-")
	if err != nil {
		return nil, &CaptureError{Message: "failed to stage preview", Cause: err}
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(surface.HTML), 0o644); err != nil {
		return nil, &CaptureError{Message: "failed to stage preview", Cause: err}
	}

	width, height := int64(surface.Layout.Width), int64(surface.Layout.Height)
	if width == 0 || height == 0 {
		width, height = rendering.PageWidthPx, rendering.PageHeightPx
	}

	var shot []byte
	err = chromedp.Run(browserCtx,
		chromedp.EmulateViewport(width, height, chromedp.EmulateScale(CaptureScale)),
		emulation.SetDefaultBackgroundColorOverride().WithColor(&cdp.RGBA{R: 255, G: 255, B: 255, A: 1}),
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("#"+rendering.PreviewElementID, chromedp.ByQuery),
		chromedp.Screenshot("#"+rendering.PreviewElementID, &shot, chromedp.ByQuery, chromedp.NodeVisible),
	)
	if err != nil {
		return nil, &CaptureError{Message: "browser capture failed", Cause: err}
	}

	if err := checkPNG(shot); err != nil {
		return nil, err
	}
	return shot, nil
}

func checkPNG(data []byte) error {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return &CaptureError{Message: "capture did not produce an image", Cause: err}
	}
	if format != "png" {
		return &CaptureError{Message: fmt.Sprintf("capture produced %s, want png", format)}
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return &CaptureError{Message: "capture produced an empty image"}
	}
	return nil
}
