package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Sternrassler/wallhaven-client/pkg/client"
	"github.com/Sternrassler/wallhaven-client/pkg/logging"
	"github.com/Sternrassler/wallhaven-client/pkg/metrics"
	"github.com/Sternrassler/wallhaven-client/pkg/pagination"
	"github.com/Sternrassler/wallhaven-client/pkg/presets"
	"github.com/Sternrassler/wallhaven-client/pkg/query"
)

const (
	requestTimeout  = 60 * time.Second
	shutdownTimeout = 10 * time.Second
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve searches and metrics over HTTP",
		Long: `Serve searches over HTTP.

Endpoints:
  /health    liveness
  /ready     Redis reachability (presets)
  /metrics   Prometheus metrics
  /search    search with wallhaven parameters (q, categories, purity, sorting,
             order, topRange, page, atleast, resolutions, ratios, seed), a saved
             preset (preset=name) and optional limit to follow pages`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = a.cfg.Serve.Addr
			}
			return runServe(cmd.Context(), a, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	return cmd
}

func runServe(ctx context.Context, a *app, addr string) error {
	c, err := a.newClient()
	if err != nil {
		return err
	}
	defer c.Close()

	rc := a.newRedis()
	defer rc.Close()

	srv := newServer(c, presets.NewStore(rc, a.cfg.Redis.Prefix), rc)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		srv.logger.Info().
			Str("addr", addr).
			Bool("api_key", c.HasAPIKey()).
			Msg("Starting wallhaven server")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	srv.logger.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// pinger reports whether a backing service is reachable.
type pinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

type server struct {
	client *client.Client
	store  *presets.Store
	redis  pinger
	logger zerolog.Logger
}

func newServer(c *client.Client, store *presets.Store, rc pinger) *server {
	return &server{
		client: c,
		store:  store,
		redis:  rc,
		logger: logging.NewLogger("serve"),
	}
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler)
	mux.HandleFunc("/ready", s.readyHandler)
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/search", s.searchHandler)
	return mux
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "OK")
}

func (s *server) readyHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.redis.Ping(ctx).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("Redis not reachable")
		http.Error(w, "redis unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "READY")
}

func (s *server) searchHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	values := r.URL.Query()

	limit := 0
	if s := values.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("limit must be a non-negative number (got %q)", s))
			return
		}
		limit = n
	}

	b, err := s.searchBuilder(ctx, values.Get("preset"), values)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	logger := s.logger.With().Str("q", b.Query()).Int("page", b.Page()).Int("limit", limit).Logger()

	if limit > 0 {
		walls, err := s.client.SearchAll(ctx, b, limit)
		if err != nil {
			logger.Warn().Err(err).Msg("Search failed")
			writeError(w, statusFor(err), err)
			return
		}
		s.writeJSONResponse(w, map[string]any{"data": walls})
		return
	}

	resp, err := s.client.Search(ctx, b)
	if err != nil {
		logger.Warn().Err(err).Msg("Search failed")
		writeError(w, statusFor(err), err)
		return
	}
	s.writeJSONResponse(w, resp)
}

// searchBuilder builds the search from a preset or from the request parameters.
// With a preset, only the page parameter is taken from the request.
func (s *server) searchBuilder(ctx context.Context, preset string, values url.Values) (*query.Builder, error) {
	if preset == "" {
		return query.FromValues(values)
	}

	p, err := s.store.Get(ctx, preset)
	if err != nil {
		return nil, err
	}
	b, err := p.Builder()
	if err != nil {
		return nil, err
	}
	if raw := values.Get(query.ParamPage); raw != "" {
		page, err := query.ParsePage(raw)
		if err != nil {
			return nil, err
		}
		if err := b.SetPage(page); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// statusFor maps library errors to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, query.ErrInvalidOption),
		errors.Is(err, client.ErrInvalidArgument),
		errors.Is(err, pagination.ErrInvalidLimit),
		errors.Is(err, presets.ErrInvalidName):
		return http.StatusBadRequest
	case errors.Is(err, presets.ErrPresetNotFound),
		errors.Is(err, client.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, client.ErrMissingAPIKey),
		errors.Is(err, client.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, client.ErrRateLimitExceeded):
		return http.StatusTooManyRequests
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func (s *server) writeJSONResponse(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("Failed to write response")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
