package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	api "pairflow/cmd/pairflow"
	"pairflow/conf"
	"pairflow/internal/middleware"
	"pairflow/internal/service"
	"pairflow/pkg/logger"
	"pairflow/utils"
	"pairflow/utils/security"

	"github.com/nntaoli-project/goex/v2"
	"github.com/spf13/cast"
)

// 启动服务（运维API + webhook触发），或者 -once 单跑一个池

/*
触发测试

BODY='{"action":"start","preset":"pairlock-15m","source":"synthetic","seed":42,"budget_usd":300,"timestamp":"2026-08-23T10:00:00Z"}'
SECRET="ab12cd34ef56abcdef1234567890abcdef12"
SIGNATURE=$(echo -n $BODY | openssl dgst -sha256 -hmac $SECRET | sed 's/^.* //')
TS=$(date +%s)
HEADER_SIG=$(echo -n $TS | openssl dgst -sha256 -hmac $SECRET -binary | base64)

curl -X POST http://localhost:8780/api/v1/webhook/trigger \
  -H "Content-Type: application/json" \
  -H "T-Timestamp: $TS" \
  -H "T-Signature: $HEADER_SIG" \
  -H "X-Signature: $SIGNATURE" \
  -d "$BODY"
*/

func main() {
	var (
		configPath = flag.String("config", "conf/config.yaml", "配置文件路径")
		once       = flag.Bool("once", false, "只跑一次模拟，打印汇总后退出")
		preset     = flag.String("preset", "", "策略预设名，空则用配置文件里的")
		source     = flag.String("source", "", "行情来源 synthetic|okx")
		seed       = flag.String("seed", "", "随机种子")
		budget     = flag.String("budget", "", "池级预算（USD）")
		duration   = flag.String("duration", "", "最长运行时长，如 20m / 900s")
		pool       = flag.String("pool", "", "池时长（分钟），覆盖配置文件")
		interval   = flag.String("interval", "", "轮询间隔，如 3s / 500ms")
	)
	flag.Parse()

	// 加载配置文件
	err := conf.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	// 密封的secret在进任何业务逻辑之前解开
	if err = security.UnsealConfig(&conf.AppConfig); err != nil {
		log.Fatalf("Failed to unseal config: %v", err)
	}
	appCfg := conf.AppConfig
	logger.InitLogger(&appCfg.Log, appCfg.AppName)
	if conf.AppConfig.Simulated {
		// 设置为模拟盘环境
		goex.DefaultHttpCli.SetHeaders("x-simulated-trading", "1")
	}

	manager := service.NewRunManager(&conf.AppConfig)

	if *once {
		runOnce(manager, *preset, *source, *seed, *budget, *duration, *pool, *interval)
		return
	}

	// 创建并启动服务
	srv := api.NewServer(&appCfg)
	srv.RegisterOnShutdown(func() {
		// 连接排空期间先把日志刷盘
		_ = logger.Sync()
	})
	srvRouter := api.InitRouter(manager)

	srv.Run(middleware.NewMiddleware(), srvRouter)

	// 服务停止后把还在跑的任务收尾，保证汇总文件落盘
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err = manager.StopAll(ctx); err != nil {
		logger.Errorf("等待运行收尾失败: %v", err)
	}
	_ = logger.Sync()
}

// runOnce 不起HTTP服务，同步跑完一个池并打印汇总
// 覆盖参数按字符串收，由cast做宽松转换（秒数、"20m"这类时长串都接受）
func runOnce(manager *service.RunManager, preset, source, seed, budget, duration, pool, interval string) {
	var req = service.RunRequest{Preset: preset, Source: source}
	var err error

	if seed != "" {
		if req.Seed, err = cast.ToInt64E(seed); err != nil {
			log.Fatalf("Invalid -seed %q: %v", seed, err)
		}
	}
	if budget != "" {
		if req.BudgetUSD, err = cast.ToFloat64E(budget); err != nil {
			log.Fatalf("Invalid -budget %q: %v", budget, err)
		}
	}
	if duration != "" {
		d, err := cast.ToDurationE(duration)
		if err != nil {
			log.Fatalf("Invalid -duration %q: %v", duration, err)
		}
		req.MaxDurationMs = d.Milliseconds()
	}
	// 池时长与轮询间隔是配置级旋钮，直接盖到全局配置上
	if pool != "" {
		n, err := cast.ToIntE(pool)
		if err != nil || n <= 0 {
			log.Fatalf("Invalid -pool %q: %v", pool, err)
		}
		conf.AppConfig.Pool.Minutes = n
	}
	if interval != "" {
		d, err := cast.ToDurationE(interval)
		if err != nil || d <= 0 {
			log.Fatalf("Invalid -interval %q: %v", interval, err)
		}
		conf.AppConfig.Simulator.PollIntervalMs = int(d.Milliseconds())
	}

	info, err := manager.StartRun(req)
	if err != nil {
		log.Fatalf("Failed to start run: %v", err)
	}
	fmt.Printf("run %s started: preset=%s source=%s seed=%d\n", info.RunID, info.Preset, info.Source, info.Seed)

	done, err := manager.Done(info.RunID)
	if err != nil {
		log.Fatalf("Failed to watch run: %v", err)
	}
	<-done

	info, err = manager.RunStatus(info.RunID)
	if err != nil {
		log.Fatalf("Failed to read run result: %v", err)
	}
	if info.State == service.RunFailed {
		fmt.Printf("run %s failed: %s\n", info.RunID, info.Error)
		os.Exit(1)
	}
	printSummary(info)
}

func printSummary(info service.RunInfo) {
	s := info.Result.Summary
	fmt.Printf("\npool %s (%s)\n", s.PoolID, s.Preset)
	fmt.Printf("  window     %s ~ %s (%s)\n", utils.Stamp2str(s.StartedAt.Unix()), utils.Stamp2str(s.EndedAt.Unix()), s.StopCause)
	fmt.Printf("  cycles     %d  submitted %d  fills %d  failures %d  retries %d\n",
		s.Cycles, s.Submitted, s.Fills, s.Failures, s.Retries)
	fmt.Printf("  higher     size %.2f  cost %.2f USD\n", s.HigherSize, s.HigherCost)
	fmt.Printf("  lower      size %.2f  cost %.2f USD\n", s.LowerSize, s.LowerCost)
	fmt.Printf("  pair cost  %.4f (smoothed %.4f)  balance %.3f  asym %.3f\n",
		s.PairCost, s.SmoothedPairCost, s.BalanceRatio, s.AsymRatio)
	fmt.Printf("  money      spent %.2f / budget %.2f  mark %.2f  pnl %+.2f USD\n",
		s.SpentUSD, s.BudgetUSD, s.MarkValueUSD, s.PnlUSD)
}
