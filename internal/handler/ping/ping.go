package ping

import (
	"net/http"
	"time"

	"pairflow/conf"
	"pairflow/internal/service"
	"pairflow/pkg/response"

	"github.com/gin-gonic/gin"
)

func Ping() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "\r\nSuccess")
	}
}

// StatusHandler 运维探活：应用名、活跃任务数、已运行时长
type StatusHandler struct {
	manager *service.RunManager
	started time.Time
}

func NewStatusHandler(manager *service.RunManager) *StatusHandler {
	return &StatusHandler{manager: manager, started: time.Now()}
}

func (h *StatusHandler) Status() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		response.JSON(ctx, nil, gin.H{
			"app":         conf.AppConfig.AppName,
			"active_runs": h.manager.ActiveRuns(),
			"uptime_sec":  int64(time.Since(h.started).Seconds()),
		})
	}
}
