package fbref

import (
	"context"
	"fmt"
	"net/http/cookiejar"
	"sync"
	"time"

	"acl-research/lib/restyutil"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("acl.internal.fbref")

// DefaultDelay keeps requests under fbref's rate limit of 10 per minute.
const DefaultDelay = 6100 * time.Millisecond

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

// Fetcher returns the html of a page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Pacer spaces out consecutive calls to Wait by at least Delay.
type Pacer struct {
	Delay time.Duration

	mu   sync.Mutex
	last time.Time
}

func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.last.IsZero() && p.Delay > 0 {
		wait := p.Delay - time.Since(p.last)
		if wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			}
		}
	}
	p.last = time.Now()
	return nil
}

type ClientOptions struct {
	UserAgent string
	Timeout   time.Duration
	Delay     time.Duration
	// if set, every request/response pair is dumped here
	Output restyutil.InstrumentOutput
}

// Client fetches pages over plain http with a cloudflare friendly transport.
type Client struct {
	http  *resty.Client
	pacer *Pacer
}

func NewClient(opts ClientOptions) (*Client, error) {
	client := resty.New()
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	client.SetHeader("user-agent", userAgent)

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = time.Second * 30
	}
	client.SetTimeout(timeout)

	restyutil.InstrumentClient(client, tracer, opts.Output)

	return &Client{
		http:  client,
		pacer: &Pacer{Delay: opts.Delay},
	}, nil
}

func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "Client.Fetch")
	defer span.End()

	err := c.pacer.Wait(ctx)
	if err != nil {
		return nil, err
	}

	res, err := c.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	if res.IsError() {
		err := fmt.Errorf("fetch %s: unexpected status %s", url, res.Status())
		span.RecordError(err)
		span.SetStatus(codes.Error, "unexpected status")
		return nil, err
	}
	return res.Body(), nil
}
