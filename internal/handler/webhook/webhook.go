package webhook

import (
	"pairflow/internal/service"
	"pairflow/internal/webhook"
	"pairflow/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	whHandler *webhook.WebhookHandler
}

func NewHandler(manager *service.RunManager) *Handler {
	return &Handler{
		whHandler: webhook.NewWebhookHandler(manager),
	}
}

func (h *Handler) HandlerWebhook() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		data, err := h.whHandler.Handle(ctx.Request)
		response.JSON(ctx, err, data)
	}
}
