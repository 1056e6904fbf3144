package router

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"resume-assist-go/internal/api/handler"
	"resume-assist-go/internal/api/middleware"
	"resume-assist-go/internal/auth"
)

// Handlers 路由注册需要的全部handler
type Handlers struct {
	Resume   *handler.ResumeHandler
	Analysis *handler.AnalysisHandler
	User     *handler.UserHandler
	Payment  *handler.PaymentHandler
	Job      *handler.JobHandler
	Config   *handler.ConfigHandler
	Status   *handler.StatusHandler
}

// RegisterRoutes 注册API路由
func RegisterRoutes(h *server.Hertz, handlers *Handlers, tokens *auth.TokenManager, adminKey string) {
	h.Use(middleware.RequestID(), middleware.AccessLog())

	api := h.Group("/api")

	api.GET("/health", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{"status": "ok"})
	})

	// 简历上传和AI分析：游客可用，登录后记用量、受免费额度限制
	optional := api.Group("", middleware.OptionalAuth(tokens))
	optional.POST("/upload", handlers.Resume.Upload)
	optional.POST("/analyze", handlers.Analysis.Analyze)
	optional.POST("/match", handlers.Analysis.Match)
	optional.POST("/interview", handlers.Analysis.Interview)
	optional.POST("/self-intro", handlers.Analysis.SelfIntro)
	optional.POST("/compare", handlers.Analysis.Compare)

	optional.GET("/resumes", handlers.Resume.List)
	optional.GET("/resumes/:id", handlers.Resume.Get)
	optional.DELETE("/resumes/:id", handlers.Resume.Delete)
	optional.GET("/resumes/:id/export", handlers.Resume.Export)

	api.GET("/templates", handlers.Resume.Templates)

	// 职位检索
	api.GET("/jobs/hot", handlers.Job.Hot)
	api.GET("/jobs/search", handlers.Job.Search)
	api.POST("/jobs/parse", handlers.Job.ParseJD)

	// 用户
	api.POST("/user/register", handlers.User.Register)
	api.POST("/user/login", handlers.User.Login)

	user := api.Group("/user", middleware.RequireAuth(tokens))
	user.GET("/profile", handlers.User.Profile)
	user.PUT("/profile", handlers.User.UpdateProfile)
	user.GET("/membership", handlers.User.Membership)
	user.GET("/usage", handlers.User.Usage)
	user.POST("/usage", handlers.User.RecordUsage)

	// 支付
	api.GET("/products", handlers.Payment.Products)
	api.POST("/payment/notify", handlers.Payment.Notify)
	api.GET("/payment/query-order/:order_no", handlers.Payment.QueryOrder)

	payment := api.Group("/payment", middleware.RequireAuth(tokens))
	payment.POST("/create-order", handlers.Payment.CreateOrder)
	payment.GET("/orders", handlers.Payment.ListOrders)

	// LLM配置和调用统计，写操作需要管理密钥
	api.GET("/config", handlers.Config.Get)
	api.POST("/config/test", handlers.Config.Test)
	api.GET("/status", handlers.Status.Get)

	admin := api.Group("", middleware.AdminGuard(adminKey))
	admin.POST("/config/save", handlers.Config.Save)
	admin.POST("/config/reset", handlers.Config.Reset)
	admin.POST("/status/reset", handlers.Status.Reset)
}
