package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amaumene/film21/internal/constants"
	"github.com/amaumene/film21/internal/models"
	"github.com/amaumene/film21/internal/services"
)

const (
	searchCatalogID = "search"
	homeCatalogID   = "film21-home"
)

func (h *Handler) handleManifest(c *gin.Context) {
	c.JSON(http.StatusOK, h.createManifest())
}

func (h *Handler) createManifest() models.Manifest {
	return models.Manifest{
		ID:          constants.AddonID,
		Version:     constants.AddonVersion,
		Name:        constants.AddonName,
		Description: constants.AddonDescription,
		Types:       []string{"movie", "series"},
		Resources:   []string{"catalog", "meta", "stream"},
		Catalogs:    h.getCatalogs(),
		BehaviorHints: models.BehaviorHints{
			Configurable: false,
		},
		IDPrefixes: []string{constants.IDPrefix},
		Logo:       constants.AddonLogo,
	}
}

// getCatalogs lists the home catalog, one catalog per site section, then a
// search catalog per type.
func (h *Handler) getCatalogs() []models.Catalog {
	catalogs := []models.Catalog{{
		Type:  "movie",
		ID:    homeCatalogID,
		Name:  constants.AddonName + " Home",
		Extra: []models.ExtraField{{Name: "skip"}},
	}}
	for _, s := range h.services.Film21.Sections() {
		catalogs = append(catalogs, models.Catalog{
			Type:  string(services.CatalogType(s)),
			ID:    services.CatalogID(s),
			Name:  s.Name,
			Extra: []models.ExtraField{{Name: "skip"}},
		})
	}
	for _, t := range []string{"movie", "series"} {
		catalogs = append(catalogs, models.Catalog{
			Type: t,
			ID:   searchCatalogID,
			Name: constants.AddonName,
			Extra: []models.ExtraField{
				{Name: "search", IsRequired: true},
			},
		})
	}
	return catalogs
}
