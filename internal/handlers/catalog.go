package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/amaumene/film21/internal/constants"
	apperrors "github.com/amaumene/film21/internal/errors"
	"github.com/amaumene/film21/internal/media"
	"github.com/amaumene/film21/internal/models"
)

func (h *Handler) handleCatalog(c *gin.Context) {
	catalogType := c.Param("type")
	catalogID := c.Param("id")

	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil || skip < 0 {
		skip = 0
	}
	page := skip/constants.ItemsPerPage + 1

	ctx, cancel := context.WithTimeout(c.Request.Context(), constants.RequestTimeout)
	defer cancel()

	h.services.Logger.Infof("[CatalogHandler] processing catalog request - type: %s, id: %s, page: %d", catalogType, catalogID, page)

	var titles []media.Title
	if catalogID == searchCatalogID {
		query := c.Query("search")
		// search results are a single page
		if query == "" || skip > 0 {
			c.JSON(http.StatusOK, models.CatalogResponse{Metas: []models.Meta{}})
			return
		}
		titles, err = h.services.Film21.Search(ctx, query)
	} else if catalogID == homeCatalogID {
		titles, err = h.homeTitles(ctx, page)
		catalogType = ""
	} else {
		section, ok := h.services.Film21.SectionByCatalogID(catalogID)
		if !ok {
			h.services.Logger.Warnf("[CatalogHandler] %v", apperrors.NewNotFoundError("catalog "+catalogID))
			c.JSON(http.StatusOK, models.CatalogResponse{Metas: []models.Meta{}})
			return
		}
		titles, err = h.services.Film21.MainPage(ctx, section, page)
		// section listings mix movies and series
		catalogType = ""
	}
	if err != nil {
		h.services.Logger.Errorf("[CatalogHandler] failed to fetch catalog: %v", err)
		c.JSON(http.StatusOK, models.CatalogResponse{Metas: []models.Meta{}})
		return
	}

	metas := titlesToMetas(titles, catalogType)
	h.services.Logger.Infof("[CatalogHandler] returning %d items for %s", len(metas), catalogID)
	c.JSON(http.StatusOK, models.CatalogResponse{Metas: metas})
}

// homeTitles loads one page of every section and merges them in section
// order. A title listed by several sections appears once.
func (h *Handler) homeTitles(ctx context.Context, page int) ([]media.Title, error) {
	sections, err := h.services.Film21.Home(ctx, page)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var titles []media.Title
	for _, s := range sections {
		for _, t := range s.Titles {
			if seen[t.URL] {
				continue
			}
			seen[t.URL] = true
			titles = append(titles, t)
		}
	}
	return titles, nil
}
