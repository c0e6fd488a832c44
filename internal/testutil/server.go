package testutil

import (
	"log/slog"
	"net/url"
	"strings"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// FixtureOrigin is the origin fixture pages are served from.
const FixtureOrigin = "http://fixtures.test"

// FixtureServer answers browser requests with in-memory HTML pages.
type FixtureServer struct {
	pages map[string]string

	// passthrough lets unmatched requests go to the network
	passthrough bool

	logger *slog.Logger
}

// FixtureServerOption configures a FixtureServer.
type FixtureServerOption func(*FixtureServer)

// WithPassthrough allows unmatched requests to go to the real network.
// By default, unmatched requests get a 404.
func WithPassthrough(enabled bool) FixtureServerOption {
	return func(s *FixtureServer) {
		s.passthrough = enabled
	}
}

func WithLogger(logger *slog.Logger) FixtureServerOption {
	return func(s *FixtureServer) {
		s.logger = logger
	}
}

// NewFixtureServer serves pages keyed by URL path.
func NewFixtureServer(pages map[string]string, opts ...FixtureServerOption) *FixtureServer {
	s := &FixtureServer{
		pages:  make(map[string]string, len(pages)),
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	for path, html := range pages {
		s.pages[normalizePath(path)] = html
	}

	return s
}

// Lookup returns the page served for rawURL.
func (s *FixtureServer) Lookup(rawURL string) (string, bool) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	html, ok := s.pages[normalizePath(parsed.Path)]
	return html, ok
}

// Middleware returns a Rod hijack handler that serves the fixture pages.
// Use with router.MustAdd("*", server.Middleware()).
func (s *FixtureServer) Middleware() func(*rod.Hijack) {
	return func(ctx *rod.Hijack) {
		reqURL := ctx.Request.URL().String()

		html, found := s.Lookup(reqURL)
		if !found {
			s.logger.Debug("no fixture for request", "url", reqURL)

			if s.passthrough {
				_ = ctx.LoadResponse(nil, true)
				return
			}

			serve(ctx, 404, "text/plain", "no fixture for "+reqURL)
			return
		}

		s.logger.Debug("serving fixture", "url", reqURL)
		serve(ctx, 200, "text/html; charset=utf-8", html)
	}
}

func serve(ctx *rod.Hijack, status int, contentType, body string) {
	payload := ctx.Response.Payload()
	payload.ResponseCode = status
	payload.ResponseHeaders = []*proto.FetchHeaderEntry{
		{Name: "Content-Type", Value: contentType},
	}
	payload.Body = []byte(body)
}

func normalizePath(path string) string {
	path = "/" + strings.Trim(path, "/")
	return path
}
