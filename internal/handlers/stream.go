package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amaumene/film21/internal/constants"
	"github.com/amaumene/film21/internal/extractor"
	"github.com/amaumene/film21/internal/media"
	"github.com/amaumene/film21/internal/models"
)

func (h *Handler) handleStream(c *gin.Context) {
	id := c.Param("id")

	pageURL, origin, err := h.lookup(id)
	if err != nil {
		h.services.Logger.Warnf("[StreamHandler] %v", err)
		c.JSON(http.StatusOK, models.StreamResponse{Streams: []models.Stream{}})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), constants.RequestTimeout)
	defer cancel()

	var (
		descs []media.StreamDescriptor
		subs  []media.SubtitleFile
	)
	emit := extractor.EmitterFuncs{
		OnStream:   func(s media.StreamDescriptor) { descs = append(descs, s) },
		OnSubtitle: func(s media.SubtitleFile) { subs = append(subs, s) },
	}

	h.services.Logger.Infof("[StreamHandler] resolving %s from %s", id, pageURL)
	if _, err := h.services.Film21.LoadLinks(ctx, pageURL, origin, emit); err != nil {
		h.services.Logger.Errorf("[StreamHandler] failed to resolve streams: %v", err)
		c.JSON(http.StatusOK, models.StreamResponse{Streams: []models.Stream{}})
		return
	}
	if ctx.Err() == context.DeadlineExceeded {
		h.services.Logger.Warnf("[StreamHandler] request timeout for ID: %s, returning %d streams", id, len(descs))
	}

	streams := descriptorsToStreams(descs, subs)
	h.services.Logger.Infof("[StreamHandler] returning %d streams for %s", len(streams), id)
	c.JSON(http.StatusOK, models.StreamResponse{Streams: streams})
}
