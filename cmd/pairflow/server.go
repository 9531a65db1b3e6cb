package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"pairflow/conf"
	"pairflow/pkg/logger"
	"pairflow/pkg/validator"

	"github.com/gin-gonic/gin"
)

// Router 加载路由，使用侧提供接口，实现侧需要实现该接口。
// 全局中间件和业务路由都按这个形状挂载。
type Router interface {
	Load(engine *gin.Engine)
}

// 收到停止信号后留给在途请求排空的时间
const shutdownTimeout = 10 * time.Second

type Server struct {
	config     *conf.Config
	onShutdown []func()
}

func NewServer(c *conf.Config) *Server {
	return &Server{config: c}
}

// RegisterOnShutdown 注册停机回调，连接排空期间按注册顺序执行
func (s *Server) RegisterOnShutdown(fn func()) {
	s.onShutdown = append(s.onShutdown, fn)
}

// Run 启动HTTP服务并阻塞到停机完成。
// SIGINT/SIGTERM 触发优雅停机：先停收新连接，再等在途请求走完。
func (s *Server) Run(rs ...Router) {
	// 设置gin启动模式，必须在创建gin实例之前
	if s.config.Mode != "" {
		gin.SetMode(s.config.Mode)
	}
	g := gin.New()
	for _, r := range rs {
		r.Load(g)
	}
	// gin validator替换
	validator.LazyInitGinValidator(s.config.Language)

	srv := http.Server{
		Addr:    s.config.Listen,
		Handler: g,
	}
	for _, fn := range s.onShutdown {
		srv.RegisterOnShutdown(fn)
	}

	// 探活协程确认端口真的开了
	go func() {
		if err := Ping(s.config.Listen, s.config.MaxPingCount); err != nil {
			logger.Fatal("server no response")
		}
		logger.Infof("server started success! port: %s", s.config.Listen)
	}()

	var wg sync.WaitGroup
	wg.Add(1)
	sgn := make(chan os.Signal, 1)
	signal.Notify(sgn, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		defer wg.Done()
		<-sgn
		logger.Infof("server shutdown")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Errorf("server shutdown err %v", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Errorf("server start failed on port %s", s.config.Listen)
		return
	}
	wg.Wait()
	logger.Infof("server stop on port %s", s.config.Listen)
}

// Ping 轮询健康检查接口，用来确认程序正常启动
func Ping(port string, maxCount int) error {
	if len(port) == 0 {
		panic("Please specify the service port")
	}
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}
	url := fmt.Sprintf("http://localhost%s/ping", port)
	for waited := 1; waited <= maxCount; waited++ {
		resp, err := http.Get(url)
		if err == nil && resp != nil && resp.StatusCode == http.StatusOK {
			return nil
		}
		logger.Infof("等待服务在线, 已等待 %d 秒，最多等待 %d 秒", waited, maxCount)
		time.Sleep(time.Second)
	}
	return fmt.Errorf("服务启动失败，端口 %s", port)
}
