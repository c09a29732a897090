package client

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/newsdesk/newsdesk/client/internal/api"
	"github.com/newsdesk/newsdesk/client/internal/job"
)

// Version is reported in the default User-Agent.
const Version = "0.3.0"

// Surface names, used as metric and log labels.
const (
	SurfaceArticles = "articles"
	SurfaceSummary  = "summary"
)

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client talks to the newsdesk backend through two facades sharing one
// base URL: the article CRUD surface and the AI summary surface, each with
// its own timeout. All fields are fixed after New returns.
type Client struct {
	cfg      Config
	articles *api.Facade
	summary  *api.Facade

	// construction-time knobs, only read by New
	transport http.RoundTripper
	userAgent string
	logger    *zerolog.Logger
	debug     bool
	observer  api.Observer
}

// New constructs a Client from an explicit Config. Zero fields in cfg are
// filled from the defaults; an invalid base URL or timeout is an error.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.ResolveDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		cfg:       cfg,
		userAgent: "newsdesk-client/" + Version,
		debug:     cfg.Debug,
		observer:  promObserver{},
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	transport := c.transport
	if c.debug {
		if transport == nil {
			transport = http.DefaultTransport
		}
		transport = &debugTransport{base: transport, logger: c.logger}
	}

	fo := api.FacadeOptions{
		Transport: transport,
		UserAgent: c.userAgent,
		APIKey:    c.cfg.APIKey,
		Logger:    c.logger,
		Observer:  c.observer,
	}
	fo.Surface = SurfaceArticles
	c.articles = api.NewFacade(cfg.BaseURL, cfg.ArticlesTimeout, api.ArticlesPrefix, fo)
	fo.Surface = SurfaceSummary
	c.summary = api.NewFacade(cfg.BaseURL, cfg.SummaryTimeout, api.SummaryPrefix, fo)

	return c, nil
}

// NewFromEnv loads Config from the environment and constructs a Client.
func NewFromEnv(opts ...Option) (*Client, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	return New(cfg, opts...)
}

// Config returns the resolved configuration the Client was built with.
func (c *Client) Config() Config { return c.cfg }

// BaseURL returns the resolved base URL.
func (c *Client) BaseURL() string { return c.cfg.BaseURL }

// --------------------------------------------------------------------
// Article operations - delegated to internal/api
// --------------------------------------------------------------------

// QueryArticles lists the articles inside a time range.
func (c *Client) QueryArticles(ctx context.Context, req QueryArticlesRequest) (*Response, error) {
	return api.QueryArticles(ctx, c.articles, req)
}

// UpdateArticle overwrites fields of a single article.
func (c *Client) UpdateArticle(ctx context.Context, req UpdateArticleRequest) (*Response, error) {
	return api.UpdateArticle(ctx, c.articles, req)
}

// DeleteArticles deletes every article inside a time range.
func (c *Client) DeleteArticles(ctx context.Context, req DeleteArticlesRequest) (*Response, error) {
	return api.DeleteArticles(ctx, c.articles, req)
}

// CheckAndBackfill asks the backend to check for missing data and start a
// backfill job. Uses the articles timeout.
func (c *Client) CheckAndBackfill(ctx context.Context) (*Response, error) {
	return api.CheckAndBackfill(ctx, c.articles)
}

// --------------------------------------------------------------------
// Summary operations - delegated to internal/api
// --------------------------------------------------------------------

// FetchSummary generates a summary. Uses the summary timeout.
func (c *Client) FetchSummary(ctx context.Context, req SummaryRequest) (*Response, error) {
	return api.FetchSummary(ctx, c.summary, req)
}

// --------------------------------------------------------------------
// Asynchronous start
// --------------------------------------------------------------------

// Call is a client operation bound to its arguments.
type Call func(ctx context.Context) (*Response, error)

// Pending is the handle of a call started with Start.
type Pending = job.Handle[*Response]

// Start runs call on its own goroutine and returns immediately. Several
// calls may be in flight at once; they complete in no particular order.
//
//	p := client.Start(ctx, func(ctx context.Context) (*client.Response, error) {
//		return c.FetchSummary(ctx, params)
//	})
//	resp, err := p.Await(ctx)
func Start(ctx context.Context, call Call) *Pending {
	return job.Start(ctx, job.Func[*Response](call))
}
