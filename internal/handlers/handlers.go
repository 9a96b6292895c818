package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/cristianadrielbraun/qrapi/internal/cache"
	"github.com/cristianadrielbraun/qrapi/internal/params"
	"github.com/cristianadrielbraun/qrapi/internal/qrmatrix"
	"github.com/cristianadrielbraun/qrapi/internal/render"
)

// Handler holds the dependencies of the HTTP handlers.
// It keeps no per-request state and is shared by all requests.
type Handler struct {
	logger     *logrus.Logger
	normalizer *params.Normalizer
	provider   qrmatrix.Provider
	renderer   *render.Renderer
	cache      cache.Cache
	maxAge     time.Duration
}

// Options configures New. Zero fields fall back to working defaults.
type Options struct {
	Logger        *logrus.Logger
	Provider      qrmatrix.Provider
	Renderer      *render.Renderer
	Cache         cache.Cache
	MaxDataLength int
	// MaxAge is advertised in Cache-Control.
	MaxAge time.Duration
}

// New returns a new Handler instance.
func New(opts Options) *Handler {
	h := &Handler{
		logger:     opts.Logger,
		normalizer: params.NewNormalizer(opts.MaxDataLength),
		provider:   opts.Provider,
		renderer:   opts.Renderer,
		cache:      opts.Cache,
		maxAge:     opts.MaxAge,
	}
	if h.logger == nil {
		h.logger = logrus.New()
	}
	if h.provider == nil {
		h.provider = qrmatrix.NewSkip2()
	}
	if h.renderer == nil {
		h.renderer = render.NewRenderer()
	}
	if h.cache == nil {
		h.cache = cache.NewNull()
	}
	return h
}

// Health reports that the service is up.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "encoder": h.provider.Name()})
}
