package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amaumene/film21/internal/constants"
	"github.com/amaumene/film21/internal/database"
	apperrors "github.com/amaumene/film21/internal/errors"
	"github.com/amaumene/film21/internal/media"
	"github.com/amaumene/film21/internal/models"
)

func (h *Handler) handleMeta(c *gin.Context) {
	metaID := c.Param("id")

	pageURL, _, err := h.lookup(metaID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), constants.RequestTimeout)
	defer cancel()

	h.services.Logger.Infof("[MetaHandler] fetching metadata - type: %s, id: %s", c.Param("type"), metaID)
	program, err := h.services.Film21.Load(ctx, pageURL)
	if err != nil {
		h.services.Logger.Errorf("[MetaHandler] failed to fetch metadata: %v", err)
		c.JSON(http.StatusNotFound, gin.H{"error": apperrors.NewNotFoundError("meta " + metaID).Error()})
		return
	}

	h.remember(metaID, pageURL, program)
	c.JSON(http.StatusOK, models.MetaResponse{Meta: programToMeta(metaID, program)})
}

// lookup returns the page URL and serving origin of id. Indexed entries win;
// otherwise the URL is rebuilt from the id and the origin is unknown.
func (h *Handler) lookup(id string) (pageURL, origin string, err error) {
	if h.services.DB != nil {
		entry, err := h.services.DB.GetEntry(id)
		if err != nil {
			h.services.Logger.Warnf("[Index] lookup %s: %v", id, err)
		}
		if entry != nil && entry.URL != "" {
			return entry.URL, entry.Origin, nil
		}
	}
	pageURL, err = database.URLFromID(h.services.Film21.MainURL(), id)
	return pageURL, "", err
}

// remember indexes the program and its episodes with the origin the detail
// page was served from, for later stream requests.
func (h *Handler) remember(id, pageURL string, p *media.Program) {
	if h.services.DB == nil {
		return
	}
	put := func(e *database.Entry) {
		if err := h.services.DB.PutEntry(e); err != nil {
			h.services.Logger.Warnf("[Index] store %s: %v", e.ID, err)
		}
	}

	put(&database.Entry{ID: id, URL: pageURL, Origin: p.Origin, Kind: p.Kind, Name: p.Title})
	for _, ep := range p.Episodes {
		epID, err := database.IDFromURL(ep.URL)
		if err != nil {
			continue
		}
		put(&database.Entry{ID: epID, URL: ep.URL, Origin: p.Origin, Kind: media.KindSeries, Name: p.Title + " " + ep.Name})
	}
}
