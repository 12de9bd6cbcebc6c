package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coder11a/personal-finance-visualizer/internal/services"
)

// InsightHandler handles the insight report.
type InsightHandler struct {
	insightService services.InsightServicer
}

// NewInsightHandler creates a new InsightHandler.
func NewInsightHandler(insightService services.InsightServicer) *InsightHandler {
	return &InsightHandler{insightService: insightService}
}

// GetInsights handles the spending insight cards.
// @Summary     Spending insights
// @Description Derived summary cards for one month's expenses, or all time
// @Tags        insights
// @Produce     json
// @Param       month query string false "Restrict to one month (YYYY-MM)"
// @Success     200 {array} services.Insight "Insight cards"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /insights [get]
func (h *InsightHandler) GetInsights(c *gin.Context) {
	insights, err := h.insightService.GenerateInsights(c.Query("month"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, insights)
}
