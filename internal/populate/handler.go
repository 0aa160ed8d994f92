package populate

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler exposes the populate trigger. Deliberately unauthenticated
// and deliberately terse: the caller gets a plain acknowledgement, the
// details live in the run history and the event feed.
type Handler struct {
	Service *Service
	Log     *zap.Logger
}

func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{Service: service, Log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/populate", h.populate)
}

func (h *Handler) populate(c *gin.Context) {
	h.Log.Info("starting to populate")

	if _, err := h.Service.Populate(c.Request.Context(), c.Request.URL.Query()); err != nil {
		// only a listing failure lands here; everything else degraded in place
		h.Log.Error("populate failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "populate failed"})
		return
	}

	c.String(http.StatusOK, "Finished populating")
}
