package fbref

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.opentelemetry.io/otel/codes"
)

// BrowserFetcher loads pages in a headless chromium, for when fbref starts
// answering the plain http client with challenge pages.
type BrowserFetcher struct {
	browser *rod.Browser
	pacer   *Pacer
	timeout time.Duration
}

type BrowserOptions struct {
	Headless bool
	Timeout  time.Duration
	Delay    time.Duration
	// existing devtools endpoint, a browser is launched when empty
	ControlURL string
}

func NewBrowserFetcher(ctx context.Context, opts BrowserOptions) (*BrowserFetcher, error) {
	controlURL := opts.ControlURL
	if controlURL == "" {
		u, err := launcher.New().
			Context(ctx).
			Headless(opts.Headless).
			Launch()
		if err != nil {
			return nil, fmt.Errorf("launch browser: %w", err)
		}
		controlURL = u
	}

	browser := rod.New().ControlURL(controlURL)
	err := browser.Connect()
	if err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = time.Second * 60
	}
	return &BrowserFetcher{
		browser: browser,
		pacer:   &Pacer{Delay: opts.Delay},
		timeout: timeout,
	}, nil
}

func (b *BrowserFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "BrowserFetcher.Fetch")
	defer span.End()

	err := b.pacer.Wait(ctx)
	if err != nil {
		return nil, err
	}

	page, err := b.browser.Context(ctx).Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to open page")
		return nil, fmt.Errorf("open %s: %w", url, err)
	}
	defer page.Close()

	page = page.Timeout(b.timeout)
	err = page.WaitLoad()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "page did not load")
		return nil, fmt.Errorf("load %s: %w", url, err)
	}
	html, err := page.HTML()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	return []byte(html), nil
}

func (b *BrowserFetcher) Close() error {
	return b.browser.Close()
}
