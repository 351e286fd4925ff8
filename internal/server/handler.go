package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"github.com/Sternrassler/spotify-catalog-client/pkg/client"
)

// DefaultSharedTimeout bounds one shared catalog call.
const DefaultSharedTimeout = time.Minute

// CatalogHandler serves the /v1/artists routes from one catalog client.
type CatalogHandler struct {
	tracer  trace.Tracer
	logger  zerolog.Logger
	ready   ReadyCheck
	group   singleflight.Group // identical concurrent requests share one Execute
	mu      sync.Mutex         // the client runs one request at a time
	timeout time.Duration
	catalog Catalog
}

// HandlerOption configures a CatalogHandler.
type HandlerOption func(*CatalogHandler)

// WithSharedTimeout bounds a shared catalog call. It runs detached from the
// request that started it, so this is its only deadline.
func WithSharedTimeout(d time.Duration) HandlerOption {
	return func(h *CatalogHandler) {
		if d > 0 {
			h.timeout = d
		}
	}
}

func NewCatalogHandler(
	tracer trace.Tracer,
	logger zerolog.Logger,
	catalog Catalog,
	ready ReadyCheck,
	opts ...HandlerOption,
) *CatalogHandler {
	h := &CatalogHandler{
		tracer:  tracer,
		logger:  logger,
		ready:   ready,
		timeout: DefaultSharedTimeout,
		catalog: catalog,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *CatalogHandler) Artist(c *gin.Context) {
	h.serve(c, "CatalogHandler.Artist", client.ArtistRequest{ID: c.Param("id")})
}

func (h *CatalogHandler) Artists(c *gin.Context) {
	raw := c.Query("ids")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ids is required"})
		return
	}
	h.serve(c, "CatalogHandler.Artists", client.ArtistsRequest{IDs: strings.Split(raw, ",")})
}

func (h *CatalogHandler) Albums(c *gin.Context) {
	opts := client.AlbumsOptions{Market: c.Query("market")}
	if groups := c.Query("include_groups"); groups != "" {
		opts.IncludeGroups = strings.Split(groups, ",")
	}

	for _, p := range []struct {
		name string
		dst  **int
	}{
		{name: "limit", dst: &opts.Limit},
		{name: "offset", dst: &opts.Offset},
	} {
		raw, ok := c.GetQuery(p.name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": p.name + " must be an integer"})
			return
		}
		*p.dst = &n
	}

	h.serve(c, "CatalogHandler.Albums", client.AlbumsRequest{ID: c.Param("id"), Options: opts})
}

func (h *CatalogHandler) TopTracks(c *gin.Context) {
	h.serve(c, "CatalogHandler.TopTracks", client.TopTracksRequest{ID: c.Param("id"), Market: c.Query("market")})
}

func (h *CatalogHandler) RelatedArtists(c *gin.Context) {
	h.serve(c, "CatalogHandler.RelatedArtists", client.RelatedArtistsRequest{ID: c.Param("id")})
}

func (h *CatalogHandler) Health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

func (h *CatalogHandler) Ready(c *gin.Context) {
	if h.ready != nil {
		if err := h.ready(c.Request.Context()); err != nil {
			h.logger.Warn().Err(err).Msg("Readiness check failed")
			c.String(http.StatusServiceUnavailable, "NOT READY")
			return
		}
	}
	c.String(http.StatusOK, "READY")
}

func (h *CatalogHandler) serve(c *gin.Context, spanName string, req client.Request) {
	ctx, span := h.tracer.Start(c.Request.Context(), spanName)
	defer span.End()

	// The shared call outlives any single caller: a waiter leaving early must
	// not cancel it for the others.
	key := req.Mode().String() + " " + c.Request.URL.RequestURI()
	ch := h.group.DoChan(key, func() (any, error) {
		sharedCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.timeout)
		defer cancel()
		return h.do(sharedCtx, req)
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		h.logger.Debug().Err(ctx.Err()).Str("mode", req.Mode().String()).Msg("Caller left before the catalog call finished")
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "request canceled"})
		return
	}

	v, err := res.Val, res.Err
	span.SetAttributes(attribute.Bool("catalog.shared", res.Shared))
	if err != nil {
		status, message := errorStatus(err)
		if status == http.StatusInternalServerError {
			h.logger.Error().Err(err).Str("mode", req.Mode().String()).Msg("Catalog request failed")
		}
		c.JSON(status, gin.H{"error": message})
		return
	}

	result, _ := v.(client.Result)
	body, ok := Payload(result)
	if !ok {
		c.AbortWithStatus(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, body)
}

func (h *CatalogHandler) do(ctx context.Context, req client.Request) (client.Result, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.catalog.Do(ctx, req)
}

// errorStatus maps a client error to an HTTP status and public message.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, client.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, client.ErrInvalidArguments):
		var clientErr *client.Error
		if errors.As(err, &clientErr) && clientErr.Message != "" {
			return http.StatusBadRequest, clientErr.Message
		}
		return http.StatusBadRequest, "invalid arguments"
	case errors.Is(err, client.ErrTransport):
		return http.StatusBadGateway, "spotify client error"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}
