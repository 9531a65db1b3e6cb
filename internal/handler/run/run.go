package run

import (
	"os"
	"path/filepath"

	"pairflow/internal/model"
	"pairflow/internal/service"
	"pairflow/pkg/errors"
	"pairflow/pkg/errors/ecode"
	"pairflow/pkg/response"
	"pairflow/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	manager *service.RunManager
}

func NewHandler(manager *service.RunManager) *Handler {
	return &Handler{manager: manager}
}

// RunStart 启动一次模拟，空请求体表示全按配置文件跑
func (h *Handler) RunStart() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req service.RunRequest
		if ctx.Request.ContentLength > 0 {
			if err := ctx.ShouldBindJSON(&req); err != nil {
				response.JSON(ctx, errors.WithCode(ecode.ValidateErr, validator.Translate(err)), nil)
				return
			}
		}
		info, err := h.manager.StartRun(req)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, info)
	}
}

func (h *Handler) RunStop() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.RunDetailReq
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, validator.Translate(err)), nil)
			return
		}
		if err := h.manager.StopRun(req.Id); err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, nil)
	}
}

func (h *Handler) RunGetStatus() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.RunDetailReq
		if err := ctx.ShouldBindQuery(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, validator.Translate(err)), nil)
			return
		}
		info, err := h.manager.RunStatus(req.Id)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		response.JSON(ctx, nil, info)
	}
}

func (h *Handler) RunsGetList() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		response.JSON(ctx, nil, h.manager.ListRuns())
	}
}

// RunRecordsDownload 下载逐笔成交记录
func (h *Handler) RunRecordsDownload() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.RunDetailReq
		if err := ctx.ShouldBindQuery(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, validator.Translate(err)), nil)
			return
		}
		trades, _, err := h.manager.RunFiles(req.Id)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		serveFile(ctx, trades)
	}
}

// RunSummaryDownload 下载汇总json，运行结束后才有
func (h *Handler) RunSummaryDownload() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.RunDetailReq
		if err := ctx.ShouldBindQuery(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, validator.Translate(err)), nil)
			return
		}
		_, summary, err := h.manager.RunFiles(req.Id)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		serveFile(ctx, summary)
	}
}

func serveFile(ctx *gin.Context, path string) {
	if _, err := os.Stat(path); err != nil {
		response.JSON(ctx, errors.WithCode(ecode.NotFoundErr, "文件还没生成，运行结束后再来取"), nil)
		return
	}
	ctx.FileAttachment(path, filepath.Base(path))
}
