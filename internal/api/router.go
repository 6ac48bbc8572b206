package api

import (
	"github.com/gin-gonic/gin"

	"github.com/fitforge/gym_go_server/config"
	"github.com/fitforge/gym_go_server/internal/api/handler"
	"github.com/fitforge/gym_go_server/internal/api/middleware"
)

// Handlers 路由依赖的全部 handler
type Handlers struct {
	Auth      *handler.AuthHandler
	Member    *handler.MemberHandler
	Lead      *handler.LeadHandler
	Dashboard *handler.DashboardHandler
	WS        *handler.WSHandler
}

// NewRouter 注册全部路由
func NewRouter(cfg *config.Config, h *Handlers) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.CORS(&cfg.CORS))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")

	// 开放接口：登录注册、前台到访登记、WebSocket 握手（自带 Token 校验）
	v1.POST("/auth/register", h.Auth.Register)
	v1.POST("/auth/login", h.Auth.Login)
	v1.POST("/leads/capture", h.Lead.Capture)
	v1.GET("/ws", h.WS.Connect)

	auth := v1.Group("", middleware.Auth(cfg.JWT.Secret))
	{
		auth.GET("/auth/profile", h.Auth.Profile)

		auth.POST("/members", h.Member.Enroll)
		auth.POST("/members/quick", h.Member.QuickEnroll)
		auth.GET("/members", h.Member.List)
		auth.GET("/members/:id", h.Member.Detail)
		auth.PUT("/members/:id", h.Member.Update)
		auth.DELETE("/members/:id", h.Member.Delete)
		auth.POST("/members/:id/payments", h.Member.RecordPayment)
		auth.GET("/members/:id/payments", h.Member.PaymentHistory)
		auth.POST("/members/:id/photo", h.Member.UploadPhoto)

		auth.GET("/leads", h.Lead.List)
		auth.GET("/leads/stats", h.Lead.Stats)
		auth.GET("/leads/:id", h.Lead.Detail)
		auth.PUT("/leads/:id", h.Lead.Update)
		auth.DELETE("/leads/:id", h.Lead.Delete)
		auth.POST("/leads/:id/convert", h.Lead.Convert)

		auth.GET("/dashboard/stats", h.Dashboard.Stats)
		auth.GET("/dashboard/reports", h.Dashboard.Reports)
	}

	return r
}
