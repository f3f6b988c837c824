// Package handlers implements HTTP request handlers for the Stremio addon API.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/amaumene/film21/internal/config"
	"github.com/amaumene/film21/internal/constants"
	"github.com/amaumene/film21/internal/services"
)

// Handler handles HTTP requests for the Stremio addon.
type Handler struct {
	services *services.Container
	config   *config.Config
}

// New creates a new Handler with the provided services and configuration.
func New(services *services.Container, config *config.Config) *Handler {
	return &Handler{
		services: services,
		config:   config,
	}
}

// RegisterRoutes registers all HTTP routes for the Stremio addon.
// Item ids contain slashes, which Stremio sends percent-encoded, so routing
// runs on the raw path.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.UseRawPath = true
	r.UnescapePathValues = true

	r.GET("/", h.handleHome)
	r.GET("/health", h.handleHealth)

	r.GET("/manifest.json", h.handleManifest)

	// Catalog routes - handle both with and without .json in the handler
	r.GET("/catalog/:type/:id", h.handleCatalogWrapper)
	r.GET("/catalog/:type/:id/*extra", h.handleCatalogWrapper)

	r.GET("/meta/:type/:id", h.handleMetaWrapper)
	r.GET("/stream/:type/:id", h.handleStreamWrapper)
}

func (h *Handler) handleHome(c *gin.Context) {
	c.String(http.StatusOK, "%s addon. Install from /manifest.json", constants.AddonName)
}

func (h *Handler) handleHealth(c *gin.Context) {
	body := gin.H{"status": "ok"}
	if h.services.Extractors != nil {
		body["extractors"] = h.services.Extractors.Names()
	}
	c.JSON(http.StatusOK, body)
}

// Wrapper functions to handle .json extension
func (h *Handler) handleCatalogWrapper(c *gin.Context) {
	stripJSONExtension(c, "id")

	// Extra path parameters, e.g. /catalog/movie/search/search=term&skip=24.json.
	// The decoded *extra param loses escaped '&' and '+', so split the raw path.
	if extra := rawExtra(c.Request.URL); extra != "" {
		extra = strings.TrimSuffix(extra, ".json")
		q := c.Request.URL.Query()
		for key, value := range parseExtra(extra) {
			q.Set(key, value)
		}
		c.Request.URL.RawQuery = q.Encode()
	}

	h.handleCatalog(c)
}

func (h *Handler) handleMetaWrapper(c *gin.Context) {
	stripJSONExtension(c, "id")
	h.handleMeta(c)
}

func (h *Handler) handleStreamWrapper(c *gin.Context) {
	stripJSONExtension(c, "id")
	h.handleStream(c)
}
