package router

import (
	"pairflow/internal/handler/auth"
	"pairflow/internal/handler/monitor"
	"pairflow/internal/handler/ping"
	"pairflow/internal/handler/preset"
	"pairflow/internal/handler/run"
	"pairflow/internal/handler/webhook"
	"pairflow/internal/middleware"

	"github.com/gin-gonic/gin"
)

type ApiRouter struct {
	statusHandler  *ping.StatusHandler
	presetHandler  *preset.Handler
	runHandler     *run.Handler
	monitorHandler *monitor.Handler
	webhookHandler *webhook.Handler
	authHandler    *auth.Handler
}

func NewApiRouter(sh *ping.StatusHandler, ph *preset.Handler, rh *run.Handler, mh *monitor.Handler, wh *webhook.Handler, ah *auth.Handler) *ApiRouter {
	return &ApiRouter{
		statusHandler:  sh,
		presetHandler:  ph,
		runHandler:     rh,
		monitorHandler: mh,
		webhookHandler: wh,
		authHandler:    ah,
	}
}

func (api *ApiRouter) Load(g *gin.Engine) {

	// 健康检查走根路径，启动探活也用它
	g.GET("/ping", ping.Ping())

	base := g.Group("/api/v1")

	base.GET("/status", api.statusHandler.Status())

	p := base.Group("/presets")
	{
		p.GET("/list", api.presetHandler.PresetsGetList())
		p.GET("/detail", api.presetHandler.PresetGetDetail())
	}

	r := base.Group("/runs")
	{
		// 改变运行状态的接口需要运维token，只读接口放开
		r.POST("/start", middleware.AuthToken(), api.runHandler.RunStart())
		r.POST("/stop", middleware.AuthToken(), api.runHandler.RunStop())
		r.GET("/status", api.runHandler.RunGetStatus())
		r.GET("/list", api.runHandler.RunsGetList())
		r.GET("/records", api.runHandler.RunRecordsDownload())
		r.GET("/summary", api.runHandler.RunSummaryDownload())
	}

	m := base.Group("/monitor")
	{
		m.GET("/ws", api.monitorHandler.ServeWS) // 通过websocket连接订阅运行进度
	}

	// 外部触发：请求头时间戳+签名挡重放，信号体的签名在handler里单独校验
	base.POST("/webhook/trigger", middleware.RequestValidationMiddleware(), api.webhookHandler.HandlerWebhook())

	a := base.Group("/auth")
	{
		a.POST("/token", middleware.AntiDuplicateMiddleware(), api.authHandler.OperatorLogin())
		a.GET("/logout", middleware.AuthToken(), api.authHandler.OperatorLogout())
	}
}
