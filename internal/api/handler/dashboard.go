package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/fitforge/gym_go_server/internal/pkg/response"
	"github.com/fitforge/gym_go_server/internal/service"
)

type DashboardHandler struct {
	dashboardSvc *service.DashboardService
}

func NewDashboardHandler(dashboardSvc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardSvc: dashboardSvc}
}

// Stats 首页统计卡片
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboardSvc.Stats()
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.Success(c, stats)
}

// Reports 报表页数据
func (h *DashboardHandler) Reports(c *gin.Context) {
	report, err := h.dashboardSvc.Reports()
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.Success(c, report)
}
