package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	clienterrors "github.com/newsdesk/newsdesk/client/internal/errors"
	"github.com/newsdesk/newsdesk/client/internal/types"
)

// HeaderRequestID carries the per-call correlation id.
const HeaderRequestID = "X-Request-ID"

// Observation describes one finished call.
type Observation struct {
	Surface    string
	Operation  string
	Path       string
	StatusCode int // 0 when no response arrived
	Elapsed    time.Duration
	Err        error
}

// Observer is notified after every call. Implementations must not block.
type Observer interface {
	Observe(Observation)
}

// FacadeOptions are the knobs shared by every surface.
type FacadeOptions struct {
	Surface   string
	Transport http.RoundTripper // nil keeps resty's default transport
	UserAgent string
	APIKey    string          // sent as a bearer token when set
	Logger    *zerolog.Logger // nil uses the global logger
	Observer  Observer
}

// Facade is an immutable POST-only client bound to a base URL, a timeout
// and a path prefix. Safe for concurrent use.
type Facade struct {
	rc      *resty.Client
	baseURL string
	prefix  string
	timeout time.Duration
	surface string
	obs     Observer
}

var _ Poster = (*Facade)(nil)

// NewFacade builds a Facade. baseURL must already be resolved; it is not
// re-read per call.
func NewFacade(baseURL string, timeout time.Duration, prefix string, opts FacadeOptions) *Facade {
	logger := log.Logger
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	logger = logger.With().Str("surface", opts.Surface).Logger()

	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetLogger(restyLogger{l: logger})
	if opts.Transport != nil {
		rc.SetTransport(opts.Transport)
	}
	if opts.UserAgent != "" {
		rc.SetHeader("User-Agent", opts.UserAgent)
	}
	if opts.APIKey != "" {
		rc.SetAuthToken(opts.APIKey)
	}

	return &Facade{
		rc:      rc,
		baseURL: rc.BaseURL,
		prefix:  prefix,
		timeout: timeout,
		surface: opts.Surface,
		obs:     opts.Observer,
	}
}

// BaseURL returns the base URL the facade was built with.
func (f *Facade) BaseURL() string { return f.baseURL }

// Prefix returns the surface path prefix.
func (f *Facade) Prefix() string { return f.prefix }

// Timeout returns the per-request timeout.
func (f *Facade) Timeout() time.Duration { return f.timeout }

// Post sends body to prefix+subPath.
func (f *Facade) Post(ctx context.Context, operation, subPath string, body any) (*types.Response, error) {
	return f.do(ctx, operation, f.prefix+subPath, body)
}

// PostRoot sends body to path, ignoring the surface prefix.
func (f *Facade) PostRoot(ctx context.Context, operation, path string, body any) (*types.Response, error) {
	return f.do(ctx, operation, path, body)
}

// do performs exactly one round trip. Transport errors are returned as-is;
// a non-2xx status yields the response together with a *StatusError.
func (f *Facade) do(ctx context.Context, operation, path string, body any) (*types.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	requestID := uuid.NewString()
	req := f.rc.R().
		SetContext(ctx).
		SetHeader(HeaderRequestID, requestID)
	if body != nil {
		req.SetBody(body)
	}

	start := time.Now()
	resp, err := req.Post(path)
	if err != nil {
		f.observe(Observation{Operation: operation, Path: path, Elapsed: time.Since(start), Err: err})
		return nil, err
	}

	out := &types.Response{
		StatusCode: resp.StatusCode(),
		Header:     resp.Header(),
		Body:       json.RawMessage(resp.Body()),
		Duration:   resp.Time(),
		RequestID:  requestID,
	}
	if !resp.IsSuccess() {
		err = clienterrors.NewStatusError(operation, resp.StatusCode(), resp.Body())
	}
	f.observe(Observation{
		Operation:  operation,
		Path:       path,
		StatusCode: out.StatusCode,
		Elapsed:    time.Since(start),
		Err:        err,
	})
	return out, err
}

func (f *Facade) observe(o Observation) {
	if f.obs == nil {
		return
	}
	o.Surface = f.surface
	f.obs.Observe(o)
}

// restyLogger routes resty's internal messages to zerolog at debug level.
type restyLogger struct{ l zerolog.Logger }

func (r restyLogger) Errorf(format string, v ...interface{}) {
	r.l.Debug().Str("resty_level", "error").Msgf(format, v...)
}

func (r restyLogger) Warnf(format string, v ...interface{}) {
	r.l.Debug().Str("resty_level", "warn").Msgf(format, v...)
}

func (r restyLogger) Debugf(format string, v ...interface{}) {
	r.l.Debug().Msgf(format, v...)
}
