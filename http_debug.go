package client

import (
	"net/http"
	"net/http/httputil"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// debugTransport dumps every request and response at debug level.
//
// Activate with WithDebugLogging(true), Config.Debug, or by exporting
// NEWSDESK_DEBUG=true or DEBUG=true. Dumps include full bodies, so keep it
// out of production.
type debugTransport struct {
	base   http.RoundTripper
	logger *zerolog.Logger
}

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	l := dt.log()
	if reqDump, err := httputil.DumpRequestOut(req, true); err == nil {
		l.Debug().Str("method", req.Method).Str("url", req.URL.String()).Str("request_dump", string(reqDump)).Msg("HTTP request")
	}

	resp, err := dt.base.RoundTrip(req)
	if err != nil {
		l.Debug().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("HTTP request failed")
		return nil, err
	}

	if respDump, err := httputil.DumpResponse(resp, true); err == nil {
		l.Debug().Str("method", req.Method).Str("url", req.URL.String()).Int("status_code", resp.StatusCode).Str("response_dump", string(respDump)).Msg("HTTP response")
	}
	return resp, nil
}

func (dt *debugTransport) log() *zerolog.Logger {
	if dt.logger != nil {
		return dt.logger
	}
	return &log.Logger
}

// debugLoggingRequested reports whether NEWSDESK_DEBUG or DEBUG is "true".
func debugLoggingRequested() bool {
	return os.Getenv(EnvPrefix+"_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}
