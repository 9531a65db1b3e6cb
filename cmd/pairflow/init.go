package api

import (
	"pairflow/conf"
	"pairflow/internal/handler/auth"
	"pairflow/internal/handler/monitor"
	"pairflow/internal/handler/ping"
	"pairflow/internal/handler/preset"
	"pairflow/internal/handler/run"
	"pairflow/internal/handler/webhook"
	"pairflow/internal/router"
	"pairflow/internal/service"
	"pairflow/pkg/logger"
)

func InitRouter(manager *service.RunManager) Router {
	appCfg := conf.AppConfig

	// 结算推送（可选），初始化失败只降级不拦启动
	if appCfg.Apple.Apns.Enabled {
		notifier, err := service.NewSettlementNotifier(&appCfg.Apple.Apns)
		if err != nil {
			logger.Errorf("初始化APNs推送失败，结算通知不可用: %v", err)
		} else {
			manager.OnRunDone(notifier.NotifyRunDone)
		}
	}

	statusHandler := ping.NewStatusHandler(manager)
	presetHandler := preset.NewHandler()
	runHandler := run.NewHandler(manager)

	// 监控hub在构造时就挂到管理器的广播链上
	monitorHandler := monitor.NewHandler(manager)
	webhookHandler := webhook.NewHandler(manager)
	authHandler := auth.NewHandler()

	return router.NewApiRouter(statusHandler, presetHandler, runHandler, monitorHandler, webhookHandler, authHandler)
}
