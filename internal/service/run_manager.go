package service

import (
	"context"
	"sync"
	"time"

	"pairflow/conf"
	"pairflow/internal/exchange"
	"pairflow/internal/model"
	"pairflow/internal/sim"
	"pairflow/internal/strategy"
	"pairflow/pkg/errors"
	"pairflow/pkg/errors/ecode"
	"pairflow/pkg/logger"
	"pairflow/pkg/recorder"
	"pairflow/utils/uuid"
)

const (
	feedSynthetic = "synthetic"
	feedOkx       = "okx"
)

type RunState string

const (
	RunRunning  RunState = "running"
	RunFinished RunState = "finished"
	RunFailed   RunState = "failed"
)

// RunRequest 启动一次模拟的入参，零值字段回落到配置文件
type RunRequest struct {
	Preset        string  `json:"preset"`
	Source        string  `json:"source"` // synthetic | okx
	Seed          int64   `json:"seed"`
	BudgetUSD     float64 `json:"budget_usd"`
	MaxDurationMs int64   `json:"max_duration_ms"`
}

// RunInfo 运行任务的对外视图
type RunInfo struct {
	RunID      string           `json:"run_id"`
	Preset     string           `json:"preset"`
	Source     string           `json:"source"`
	Asset      string           `json:"asset"`
	Seed       int64            `json:"seed"`
	BudgetUSD  float64          `json:"budget_usd"`
	State      RunState         `json:"state"`
	StartedAt  time.Time        `json:"started_at"`
	EndedAt    *time.Time       `json:"ended_at,omitempty"`
	Error      string           `json:"error,omitempty"`
	Result     *model.RunResult `json:"result,omitempty"`
	LastUpdate *model.RunUpdate `json:"last_update,omitempty"`
}

type runEntry struct {
	info    RunInfo
	cancel  context.CancelFunc
	s       *sim.Simulator
	flog    *recorder.FrameLog
	trades  string
	summary string
	done    chan struct{}
}

// RunManager 管理模拟运行的生命周期：组装行情源、引擎、记录器，
// 每个任务一个协程跑到终态，对外只读快照。
type RunManager struct {
	mu       sync.RWMutex
	cfg      *conf.Config
	runs     map[string]*runEntry
	order    []string // 按启动顺序，列表倒序输出
	watchers []func(u *model.RunUpdate)
	doneFns  []func(info RunInfo)
	ids      *uuid.SnowNode
	wg       sync.WaitGroup
}

func NewRunManager(cfg *conf.Config) *RunManager {
	return &RunManager{
		cfg:  cfg,
		runs: make(map[string]*runEntry),
		ids:  uuid.NewNode(2),
	}
}

// Watch 注册每周期监控帧回调。回调在运行协程里执行，不得阻塞。
func (m *RunManager) Watch(fn func(u *model.RunUpdate)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.watchers = append(m.watchers, fn)
}

// OnRunDone 注册任务终态回调（推送、清理等）
func (m *RunManager) OnRunDone(fn func(info RunInfo)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doneFns = append(m.doneFns, fn)
}

func (m *RunManager) StartRun(req RunRequest) (RunInfo, error) {
	cfg := m.cfg

	preset := req.Preset
	if preset == "" {
		preset = cfg.Strategy.Preset
	}
	params, err := strategy.Get(preset)
	if err != nil {
		return RunInfo{}, errors.Wrapf(err, ecode.PresetErr, "preset %s", preset)
	}
	if w := cfg.Strategy.SmoothingWindow; w > 0 {
		params.SmoothingWindow = w
	}

	source := req.Source
	if source == "" {
		source = cfg.Feed.Source
	}

	// 行情源和模拟器共用一个种子，回放只差这一个参数
	seed := req.Seed
	if seed == 0 {
		seed = cfg.Simulator.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	budget := req.BudgetUSD
	if budget <= 0 {
		budget = cfg.Simulator.BudgetUSD
	}

	pollInterval := time.Duration(cfg.Simulator.PollIntervalMs) * time.Millisecond
	maxDuration := time.Duration(req.MaxDurationMs) * time.Millisecond
	if maxDuration <= 0 {
		maxDuration = time.Duration(cfg.Simulator.MaxDurationMs) * time.Millisecond
	}

	feed, err := m.buildFeed(source, seed, pollInterval)
	if err != nil {
		return RunInfo{}, err
	}
	realtime := cfg.Simulator.Realtime
	if source == feedOkx {
		// okx 行情跟墙钟走，虚拟快进推不动它
		realtime = true
	}

	runID := m.ids.GenSnowStr()
	rec, err := recorder.New(cfg.DataDir, runID)
	if err != nil {
		return RunInfo{}, errors.Wrap(err, ecode.InternalErr, "init run recorder")
	}
	flog := recorder.NewFrameLog(cfg.DataDir, runID)

	engine := strategy.NewEngine(params, float64(cfg.Pool.Minutes))
	s, err := sim.New(sim.Options{
		RunID:             runID,
		Preset:            preset,
		Seed:              seed,
		FillDelay:         time.Duration(cfg.Simulator.FillDelayMs) * time.Millisecond,
		BaseFillProb:      cfg.Simulator.BaseFillProb,
		FillDistanceBoost: cfg.Simulator.FillDistanceBoost,
		MaxSlippage:       cfg.Simulator.MaxSlippage,
		InvalidPriceProb:  cfg.Simulator.InvalidPriceProb,
		RejectProb:        cfg.Simulator.RejectProb,
		IlliquidityProb:   cfg.Simulator.IlliquidityProb,
		IlliquiditySize:   cfg.Simulator.IlliquiditySize,
		MaxRetries:        cfg.Simulator.MaxRetries,
		RetryDelay:        time.Duration(cfg.Simulator.RetryDelayMs) * time.Millisecond,
		SettlementDelay:   time.Duration(cfg.Simulator.SettlementDelayMs) * time.Millisecond,
		PollInterval:      pollInterval,
		MaxDuration:       maxDuration,
		Budget:            budget,
		Realtime:          realtime,
		OnUpdate:          m.publish,
	}, engine, feed, rec)
	if err != nil {
		return RunInfo{}, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	e := &runEntry{
		info: RunInfo{
			RunID:     runID,
			Preset:    preset,
			Source:    source,
			Asset:     cfg.Pool.Asset,
			Seed:      seed,
			BudgetUSD: budget,
			State:     RunRunning,
			StartedAt: time.Now(),
		},
		cancel:  cancel,
		s:       s,
		flog:    flog,
		trades:  rec.TradesPath(),
		summary: rec.SummaryPath(),
		done:    make(chan struct{}),
	}
	info := e.info

	m.mu.Lock()
	m.runs[runID] = e
	m.order = append(m.order, runID)
	m.mu.Unlock()

	m.wg.Add(1)
	go m.execute(ctx, e)

	logger.Info("运行任务已启动",
		logger.Pair("run_id", runID),
		logger.Pair("preset", preset),
		logger.Pair("source", source),
		logger.Pair("seed", seed),
		logger.Pair("budget", budget))
	return info, nil
}

func (m *RunManager) buildFeed(source string, seed int64, step time.Duration) (exchange.PriceFeed, error) {
	cfg := m.cfg
	switch source {
	case feedSynthetic:
		return exchange.NewSyntheticFeed(exchange.SyntheticOptions{
			Asset:       cfg.Pool.Asset,
			PoolMinutes: float64(cfg.Pool.Minutes),
			Step:        step,
			Seed:        seed,
			Volatility:  cfg.Feed.Volatility,
			Spread:      cfg.Feed.Spread,
			Reversion:   cfg.Feed.Reversion,
			Drift:       cfg.Feed.Drift,
		}), nil
	case feedOkx:
		return exchange.NewOkxFeed(exchange.OkxOptions{
			Symbol:      cfg.Okx.Symbol,
			Asset:       cfg.Pool.Asset,
			PoolMinutes: float64(cfg.Pool.Minutes),
			Spread:      cfg.Feed.Spread,
			Sensitivity: cfg.Feed.Sensitivity,
			Timeout:     time.Duration(cfg.Okx.RestTimeout) * time.Second,
		})
	default:
		return nil, errors.WithCodef(ecode.ValidateErr, "unknown feed source: %s", source)
	}
}

func (m *RunManager) execute(ctx context.Context, e *runEntry) {
	defer m.wg.Done()
	defer close(e.done)

	result, err := e.s.RunUntilEnd(ctx, 0, 0)

	m.mu.Lock()
	now := time.Now()
	e.info.EndedAt = &now
	e.info.Result = result
	if err != nil {
		e.info.State = RunFailed
		e.info.Error = err.Error()
	} else {
		e.info.State = RunFinished
	}
	info := e.info
	doneFns := m.doneFns
	m.mu.Unlock()

	if err != nil {
		logger.Error("运行任务异常终止",
			logger.Pair("run_id", info.RunID),
			logger.Pair("err", err.Error()))
	} else if result != nil && result.Summary != nil {
		logger.Info("运行任务结束",
			logger.Pair("run_id", info.RunID),
			logger.Pair("stop_cause", string(result.Summary.StopCause)),
			logger.Pair("pnl_usd", result.FinalPnl))
	}

	for _, fn := range doneFns {
		// 推送之类的耗时副作用不拖住收尾
		go fn(info)
	}
}

func (m *RunManager) publish(u *model.RunUpdate) {
	m.mu.Lock()
	var flog *recorder.FrameLog
	if e, ok := m.runs[u.RunID]; ok {
		e.info.LastUpdate = u
		flog = e.flog
	}
	watchers := m.watchers
	m.mu.Unlock()

	// 帧轨迹落盘失败不影响运行，复盘少一行而已
	if flog != nil {
		if err := flog.Append(u); err != nil {
			logger.Debug("追加监控帧失败",
				logger.Pair("run_id", u.RunID),
				logger.Pair("err", err.Error()))
		}
	}

	for _, fn := range watchers {
		fn(u)
	}
}

// StopRun 取消运行。收尾是异步的，最终状态走状态查询。
func (m *RunManager) StopRun(runID string) error {
	m.mu.RLock()
	e, ok := m.runs[runID]
	var state RunState
	if ok {
		state = e.info.State
	}
	m.mu.RUnlock()

	if !ok {
		return errors.WithCodef(ecode.RunNotFoundErr, "run %s not found", runID)
	}
	if state != RunRunning {
		return errors.WithCodef(ecode.RunConflictErr, "run %s already %s", runID, state)
	}
	e.cancel()
	return nil
}

func (m *RunManager) RunStatus(runID string) (RunInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.runs[runID]
	if !ok {
		return RunInfo{}, errors.WithCodef(ecode.RunNotFoundErr, "run %s not found", runID)
	}
	return e.info, nil
}

// ListRuns 全部任务快照，新启动的在前
func (m *RunManager) ListRuns() []RunInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]RunInfo, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		out = append(out, m.runs[m.order[i]].info)
	}
	return out
}

// RunFiles 交易明细与汇总文件的落盘路径，下载接口用
func (m *RunManager) RunFiles(runID string) (trades, summary string, err error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.runs[runID]
	if !ok {
		return "", "", errors.WithCodef(ecode.RunNotFoundErr, "run %s not found", runID)
	}
	return e.trades, e.summary, nil
}

// Done 任务结束信号，测试和命令行等待用
func (m *RunManager) Done(runID string) (<-chan struct{}, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.runs[runID]
	if !ok {
		return nil, errors.WithCodef(ecode.RunNotFoundErr, "run %s not found", runID)
	}
	return e.done, nil
}

func (m *RunManager) ActiveRuns() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, e := range m.runs {
		if e.info.State == RunRunning {
			n++
		}
	}
	return n
}

// StopAll 取消全部在跑任务并等待收尾，优雅停机用
func (m *RunManager) StopAll(ctx context.Context) error {
	m.mu.RLock()
	for _, e := range m.runs {
		e.cancel()
	}
	m.mu.RUnlock()

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
