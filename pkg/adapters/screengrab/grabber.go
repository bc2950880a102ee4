// Package screengrab provides a live screen source using the Chrome
// DevTools screencast via chromedp. The captured surface is a browser
// page (presentation deck, dashboard, any URL); frames arrive as JPEG
// and keep flowing for the life of the grabber.
package screengrab

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/user/scenemix/pkg/ports"
)

// Options configures the grabber.
type Options struct {
	// URL is the page to mirror.
	URL string
	// Width and Height set the capture window size.
	Width  int
	Height int
	// Quality is the screencast JPEG quality (0-100).
	Quality int
	// ChromePath overrides the Chrome executable path.
	ChromePath string
	// Headless runs Chrome without a visible window.
	Headless bool
}

// DefaultOptions returns capture defaults matching the output surface.
func DefaultOptions(url string) Options {
	return Options{
		URL:      url,
		Width:    1280,
		Height:   720,
		Quality:  80,
		Headless: true,
	}
}

// Grabber implements ports.FrameGrabber using chromedp.
type Grabber struct {
	opts Options

	mu          sync.Mutex
	active      bool
	frames      chan ports.LiveFrame
	allocCancel context.CancelFunc
	cancel      context.CancelFunc
	browserCtx  context.Context
}

// New creates a new Grabber.
func New(opts Options) *Grabber {
	return &Grabber{opts: opts}
}

// Start launches Chrome, navigates to the configured URL, and begins the
// screencast. Frames are dropped, not queued, when the consumer lags.
func (g *Grabber) Start(ctx context.Context) (<-chan ports.LiveFrame, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.active {
		return nil, fmt.Errorf("screencast already active")
	}

	chromedpOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("metrics-recording-only", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("hide-scrollbars", true),
		chromedp.WindowSize(g.opts.Width, g.opts.Height),
	}
	if g.opts.Headless {
		chromedpOpts = append(chromedpOpts, chromedp.Flag("headless", "new"))
	}
	if g.opts.ChromePath != "" {
		chromedpOpts = append(chromedpOpts, chromedp.ExecPath(g.opts.ChromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, chromedpOpts...)
	browserCtx, cancel := chromedp.NewContext(allocCtx)

	if err := chromedp.Run(browserCtx, chromedp.Navigate(g.opts.URL)); err != nil {
		cancel()
		allocCancel()
		return nil, fmt.Errorf("navigate: %w", err)
	}

	g.frames = make(chan ports.LiveFrame, 8)
	g.allocCancel = allocCancel
	g.cancel = cancel
	g.browserCtx = browserCtx
	g.active = true

	startTime := time.Now()

	chromedp.ListenTarget(browserCtx, func(ev interface{}) {
		e, ok := ev.(*page.EventScreencastFrame)
		if !ok {
			return
		}

		data, err := base64.StdEncoding.DecodeString(e.Data)
		if err != nil {
			return
		}

		frame := ports.LiveFrame{
			TimestampMs: int(time.Since(startTime).Milliseconds()),
			Data:        data,
		}

		g.mu.Lock()
		if g.active {
			select {
			case g.frames <- frame:
			default:
				// Consumer is behind, drop the frame.
			}
		}
		g.mu.Unlock()

		// Acknowledge so Chrome keeps sending frames.
		go chromedp.Run(browserCtx, page.ScreencastFrameAck(e.SessionID))
	})

	if err := chromedp.Run(browserCtx,
		page.StartScreencast().
			WithFormat(page.ScreencastFormatJpeg).
			WithQuality(int64(g.opts.Quality)).
			WithEveryNthFrame(1),
	); err != nil {
		g.active = false
		close(g.frames)
		cancel()
		allocCancel()
		return nil, fmt.Errorf("start screencast: %w", err)
	}

	return g.frames, nil
}

// Stop ends the screencast and shuts Chrome down. Idempotent.
func (g *Grabber) Stop() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.active {
		return nil
	}
	g.active = false

	// Stop screencast with timeout to prevent hanging
	stopCtx, cancelStop := context.WithTimeout(g.browserCtx, 5*time.Second)
	defer cancelStop()
	chromedp.Run(stopCtx, page.StopScreencast())

	close(g.frames)
	g.cancel()
	g.allocCancel()
	return nil
}

// Ensure Grabber implements ports.FrameGrabber
var _ ports.FrameGrabber = (*Grabber)(nil)
