package capture

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// Default capture parameters for the agenda page.
const (
	DefaultWidth   = 1024
	DefaultHeight  = 1366
	DefaultTimeout = 30 * time.Second

	// readySelector is set by the /agenda page once the table is rendered.
	readySelector = `[data-ready="true"]`
)

// Options defines parameters for a Chromium-based screenshot capture.
type Options struct {
	// URL to capture, e.g. "http://127.0.0.1:8080/agenda?days=7".
	URL string
	// OutputPath is where the PNG screenshot will be written.
	OutputPath string
	// Viewport in pixels; zero means DefaultWidth / DefaultHeight.
	Width  int
	Height int
	// Timeout bounds the whole capture; zero means DefaultTimeout.
	Timeout time.Duration
	// Username and Password are sent as HTTP Basic credentials when both
	// are set.
	Username string
	Password string
}

// headers returns the extra request headers for the capture, or nil.
func (o Options) headers() network.Headers {
	if o.Username == "" || o.Password == "" {
		return nil
	}
	cred := base64.StdEncoding.EncodeToString([]byte(o.Username + ":" + o.Password))
	return network.Headers{"Authorization": "Basic " + cred}
}

func (o *Options) normalize() error {
	if o.URL == "" {
		return fmt.Errorf("capture: URL is required")
	}
	if o.OutputPath == "" {
		return fmt.Errorf("capture: OutputPath is required")
	}
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	return nil
}

// AgendaPNG opens opts.URL in headless Chromium, waits for the agenda page
// to mark itself ready and writes a full-page PNG to opts.OutputPath.
func AgendaPNG(parentCtx context.Context, opts Options) error {
	if err := opts.normalize(); err != nil {
		return err
	}

	ctx, cancel := chromedp.NewContext(parentCtx)
	defer cancel()

	ctx, timeoutCancel := context.WithTimeout(ctx, opts.Timeout)
	defer timeoutCancel()

	var png []byte
	var tasks chromedp.Tasks
	if h := opts.headers(); h != nil {
		tasks = append(tasks, network.Enable(), network.SetExtraHTTPHeaders(h))
	}
	tasks = append(tasks,
		chromedp.EmulateViewport(int64(opts.Width), int64(opts.Height)),
		chromedp.Navigate(opts.URL),
		chromedp.WaitVisible(readySelector, chromedp.ByQuery),
		chromedp.FullScreenshot(&png, 100),
	)
	if err := chromedp.Run(ctx, tasks); err != nil {
		return fmt.Errorf("capture: chromedp run failed: %w", err)
	}

	if err := os.WriteFile(opts.OutputPath, png, 0o644); err != nil {
		return fmt.Errorf("capture: failed to write PNG: %w", err)
	}
	return nil
}
