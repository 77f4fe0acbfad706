package admin

import (
	"github.com/prostore-go/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetOrderSummary 销售看板汇总
func (h *Handler) GetOrderSummary(c *gin.Context) {
	summary, err := h.DashboardService.GetOrderSummary()
	if err != nil {
		respondError(c, response.CodeInternal, "failed to get order summary", err)
		return
	}
	response.Success(c, summary)
}
