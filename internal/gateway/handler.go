package gateway

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/prn-tf/doorman/internal/apierr"
	"github.com/prn-tf/doorman/internal/authz"
	"github.com/prn-tf/doorman/internal/config"
	"github.com/prn-tf/doorman/internal/metrics"
	"github.com/prn-tf/doorman/internal/signer"
)

// Preflight response values. The gateway serves only reads.
const (
	allowMethods    = "GET, HEAD, OPTIONS"
	allowHeaders    = "Authorization, Range, If-None-Match, If-Modified-Since, Content-Type"
	preflightMaxAge = 86400
)

// Gateway dispatches file requests: authorize, sign, fetch, transform.
type Gateway struct {
	storage    config.StorageConfig
	authorizer *authz.Authorizer
	origins    []string
	client     *http.Client
	metrics    *metrics.Metrics
	logger     zerolog.Logger
}

// Config contains the collaborators for a Gateway.
type Config struct {
	Storage    config.StorageConfig
	Authorizer *authz.Authorizer
	// Origins is the CORS allow-list; empty preserves the wildcard.
	Origins []string
	// Client is the HTTP client for backend fetches. Sharing the client
	// reuses transport connections only; signing stays per request.
	Client  *http.Client
	Metrics *metrics.Metrics
	Logger  zerolog.Logger
}

// New creates a Gateway.
func New(cfg Config) *Gateway {
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	return &Gateway{
		storage:    cfg.Storage,
		authorizer: cfg.Authorizer,
		origins:    cfg.Origins,
		client:     client,
		metrics:    cfg.Metrics,
		logger:     cfg.Logger.With().Str("component", "gateway").Logger(),
	}
}

// Routes registers the file-serving routes on a chi router. Mount under the
// file route prefix, e.g. r.Route("/v1/file", gw.Routes).
func (g *Gateway) Routes(r chi.Router) {
	r.Options("/*", g.handlePreflight)
	r.Get("/*", func(w http.ResponseWriter, r *http.Request) { g.handleFile(w, r, true) })
	r.Head("/*", func(w http.ResponseWriter, r *http.Request) { g.handleFile(w, r, false) })
}

// handlePreflight answers CORS preflight. Preflight never requires a
// credential: the browser sends it before it is willing to attach one.
func (g *Gateway) handlePreflight(w http.ResponseWriter, r *http.Request) {
	decision := ResolveOrigin(r.Header.Get("Origin"), g.origins)
	decision.Apply(w.Header())
	if decision.AllowOrigin != "" {
		w.Header().Set("Access-Control-Allow-Methods", allowMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowHeaders)
		w.Header().Set("Access-Control-Max-Age", strconv.Itoa(preflightMaxAge))
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleFile serves GET and HEAD. Every step is sequential: extract key,
// authorize, sign, fetch, transform. Signing never happens for a denied
// request, and neither authorization nor fetch failures are retried.
func (g *Gateway) handleFile(w http.ResponseWriter, r *http.Request, withBody bool) {
	decision := ResolveOrigin(r.Header.Get("Origin"), g.origins)

	key := authz.ParseKey(chi.URLParam(r, "*"))
	if key.IsEmpty() {
		g.deny(w, r, decision, apierr.PathEmpty)
		return
	}

	if _, aerr := g.authorizer.Authorize(r, key); aerr != nil {
		g.deny(w, r, decision, aerr)
		return
	}

	sgn := signer.New(g.storage)
	req, err := sgn.Sign(r.Context(), r.Method, key, r)
	if err != nil {
		g.logger.Error().Err(err).Str("method", r.Method).Msg("failed to sign backend request")
		g.deny(w, r, decision, apierr.FetchFailed)
		return
	}

	start := time.Now()
	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Error().Err(err).Str("method", r.Method).Msg("backend fetch failed")
		g.deny(w, r, decision, apierr.FetchFailed)
		return
	}
	defer resp.Body.Close()
	g.metrics.FetchDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())

	copyBackendHeaders(w.Header(), resp.Header)
	TransformHeaders(w.Header(), resp.StatusCode, key, decision)
	w.WriteHeader(resp.StatusCode)

	if withBody {
		if _, err := io.Copy(w, resp.Body); err != nil {
			// Headers are already written; nothing to do but log.
			g.logger.Debug().Err(err).Msg("response copy interrupted")
		}
	}

	g.metrics.RequestsTotal.WithLabelValues(r.Method, strconv.Itoa(resp.StatusCode)).Inc()
}

// deny writes a terse JSON error with CORS headers and records it. The
// response never contains the requested key, caller identity, or backend
// error text.
func (g *Gateway) deny(w http.ResponseWriter, r *http.Request, decision CORSDecision, e *apierr.Error) {
	decision.Apply(w.Header())
	apierr.Write(w, e)
	g.metrics.DenialsTotal.WithLabelValues(string(e.Code)).Inc()
	g.metrics.RequestsTotal.WithLabelValues(r.Method, strconv.Itoa(e.HTTPStatus)).Inc()
}

// copyBackendHeaders copies response headers from the backend, dropping
// hop-by-hop headers and storage-internal metadata that must not leak to
// the caller.
func copyBackendHeaders(dst, src http.Header) {
	for name, values := range src {
		if name == "Set-Cookie" || name == "Connection" || strings.HasPrefix(name, "X-Amz-") {
			continue
		}
		for _, v := range values {
			dst.Add(name, v)
		}
	}
}
