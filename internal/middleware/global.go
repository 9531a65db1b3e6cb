package middleware

import (
	"github.com/gin-gonic/gin"
)

// GlobalMiddleware 全局中间件按 Router 形式挂载，和业务路由走同一个 Load 入口
type GlobalMiddleware struct{}

func NewMiddleware() *GlobalMiddleware {
	return &GlobalMiddleware{}
}

func (m *GlobalMiddleware) Load(g *gin.Engine) {
	g.Use(gin.Recovery())
	g.Use(RequestId())
	g.Use(Logger)
	g.Use(Secure())
	g.Use(NoCache())
	g.Use(Options())
}
