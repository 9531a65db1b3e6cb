package auth

import (
	"time"

	"pairflow/conf"
	"pairflow/internal/consts"
	"pairflow/internal/model"
	"pairflow/pkg/errors"
	"pairflow/pkg/errors/ecode"
	"pairflow/pkg/jwt"
	"pairflow/pkg/response"
	"pairflow/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// OperatorLogin 校验配置里的运维账号，颁发bearer token
func (h *Handler) OperatorLogin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.LoginReq
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, validator.Translate(err)), nil)
			return
		}
		cfg := conf.AppConfig
		if cfg.Operator.AccessKey == "" {
			response.JSON(ctx, errors.WithCode(ecode.RequireAuthErr, "运维登录未配置"), nil)
			return
		}
		if req.Operator != cfg.Operator.Name || req.AccessKey != cfg.Operator.AccessKey {
			response.JSON(ctx, errors.WithCode(ecode.RequireAuthErr, "账号或口令不正确"), nil)
			return
		}
		exp := time.Now().Add(time.Duration(cfg.Jwt.JwtTtl) * time.Second)
		token, err := jwt.GenToken(jwt.BuildClaims(exp, req.Operator), cfg.Jwt.Secret)
		if err != nil {
			response.JSON(ctx, errors.Wrap(err, ecode.InternalErr, "生成token失败"), nil)
			return
		}
		response.JSON(ctx, nil, model.LoginResp{Token: token, ExpireAt: exp.Unix()})
	}
}

// OperatorLogout 当前token进黑名单，立即失效
func (h *Handler) OperatorLogout() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenStr := ctx.GetString(consts.JWTTokenCtx)
		if err := jwt.JoinBlackList(tokenStr, conf.AppConfig.Jwt.Secret); err != nil {
			response.JSON(ctx, errors.Wrap(err, ecode.RequireAuthErr, "注销失败"), nil)
			return
		}
		response.JSON(ctx, nil, nil)
	}
}
