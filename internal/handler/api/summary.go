package api

import (
	"net/http"

	resdto "parish-reserve/internal/handler/dto/response"
	"parish-reserve/internal/handler/httperr"
	"parish-reserve/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type SummaryHandler struct {
	statsQueries queries.StatsQueries
}

func NewSummaryHandler(statsQueries queries.StatsQueries) *SummaryHandler {
	return &SummaryHandler{statsQueries: statsQueries}
}

// @Summary Operational summary
// @Description Catalog counts, utilization, monthly revenue, and maintenance alerts
// @Tags summary
// @Produce json
// @Success 200 {object} resdto.SummaryResponse
// @Router /summary [get]
func (h *SummaryHandler) Get(c *gin.Context) {
	view, err := h.statsQueries.Summary(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromSummaryView(view))
}
