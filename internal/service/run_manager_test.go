package service

import (
	"bytes"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"pairflow/conf"
	"pairflow/internal/model"
	"pairflow/pkg/errors"
	"pairflow/pkg/errors/ecode"
	"pairflow/pkg/recorder"

	"github.com/goccy/go-json"
)

func testConfig(t *testing.T) *conf.Config {
	t.Helper()
	cfg := &conf.Config{DataDir: t.TempDir()}
	cfg.Pool.Asset = "BTC-USD"
	cfg.Pool.Minutes = 15
	cfg.Feed.Source = "synthetic"
	cfg.Feed.Volatility = 0.012
	cfg.Feed.Spread = 0.01
	cfg.Feed.Reversion = 0.05
	cfg.Simulator.Seed = 7
	cfg.Simulator.FillDelayMs = 1500
	cfg.Simulator.BaseFillProb = 0.85
	cfg.Simulator.FillDistanceBoost = 4
	cfg.Simulator.MaxSlippage = 0.01
	cfg.Simulator.InvalidPriceProb = 0.01
	cfg.Simulator.RejectProb = 0.03
	cfg.Simulator.IlliquidityProb = 0.05
	cfg.Simulator.IlliquiditySize = 200
	cfg.Simulator.MaxRetries = 2
	cfg.Simulator.RetryDelayMs = 2000
	cfg.Simulator.SettlementDelayMs = 3000
	cfg.Simulator.PollIntervalMs = 3000
	cfg.Simulator.BudgetUSD = 300
	cfg.Strategy.Preset = "pairlock-15m"
	return cfg
}

// 虚拟时钟下一个15分钟池从启动跑到滚动结束
func TestRunManagerLifecycle(t *testing.T) {
	m := NewRunManager(testConfig(t))

	var updates int64
	m.Watch(func(u *model.RunUpdate) { atomic.AddInt64(&updates, 1) })

	info, err := m.StartRun(RunRequest{})
	if err != nil {
		t.Fatalf("StartRun: %v", err)
	}
	if info.State != RunRunning {
		t.Fatalf("state = %s, want running", info.State)
	}
	if info.Preset != "pairlock-15m" || info.Seed != 7 {
		t.Fatalf("preset/seed = %s/%d, want pairlock-15m/7", info.Preset, info.Seed)
	}

	done, err := m.Done(info.RunID)
	if err != nil {
		t.Fatalf("Done: %v", err)
	}
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("run did not finish in time")
	}

	st, err := m.RunStatus(info.RunID)
	if err != nil {
		t.Fatalf("RunStatus: %v", err)
	}
	if st.State != RunFinished {
		t.Fatalf("state = %s (err=%s), want finished", st.State, st.Error)
	}
	if st.EndedAt == nil {
		t.Fatal("EndedAt not set after finish")
	}
	if st.Result == nil || st.Result.Summary == nil {
		t.Fatal("finished run has no result summary")
	}
	if st.Result.Summary.StopCause != model.StopRollover {
		t.Fatalf("stop cause = %s, want rollover", st.Result.Summary.StopCause)
	}
	if st.Result.Cycles < 100 {
		t.Fatalf("cycles = %d, expected a full pool of cycles", st.Result.Cycles)
	}
	if atomic.LoadInt64(&updates) == 0 {
		t.Fatal("watcher received no updates")
	}
	if st.LastUpdate == nil || st.LastUpdate.RunID != info.RunID {
		t.Fatal("last update frame missing")
	}

	trades, summary, err := m.RunFiles(info.RunID)
	if err != nil {
		t.Fatalf("RunFiles: %v", err)
	}
	frames := recorder.NewFrameLog(m.cfg.DataDir, info.RunID).Path()
	for _, p := range []string{trades, summary, frames} {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("output file %s: %v", p, err)
		}
	}

	// 帧轨迹每周期一行，行数应当和周期数一致
	raw, err := os.ReadFile(frames)
	if err != nil {
		t.Fatalf("read frames: %v", err)
	}
	lines := bytes.Count(raw, []byte("\n"))
	if int64(lines) != st.Result.Cycles {
		t.Fatalf("frame lines = %d, want %d cycles", lines, st.Result.Cycles)
	}
	var frame model.RunUpdate
	if err := json.Unmarshal(raw[:bytes.IndexByte(raw, '\n')], &frame); err != nil {
		t.Fatalf("first frame not valid JSON: %v", err)
	}
	if frame.RunID != info.RunID || frame.Cycle != 1 {
		t.Fatalf("first frame = run %s cycle %d, want run %s cycle 1", frame.RunID, frame.Cycle, info.RunID)
	}

	list := m.ListRuns()
	if len(list) != 1 || list[0].RunID != info.RunID {
		t.Fatalf("ListRuns = %+v, want the single finished run", list)
	}
	if m.ActiveRuns() != 0 {
		t.Fatalf("ActiveRuns = %d after finish", m.ActiveRuns())
	}
	t.Logf("✅ 运行 %s 跑完 %d 周期，止于 %s", info.RunID, st.Result.Cycles, st.Result.Summary.StopCause)
}

// 实时模式下启动后主动停止，任务应收敛到 cancelled 终态
func TestRunManagerStopRun(t *testing.T) {
	cfg := testConfig(t)
	cfg.Simulator.Realtime = true
	cfg.Simulator.PollIntervalMs = 5
	m := NewRunManager(cfg)

	gotUpdate := make(chan struct{}, 1)
	m.Watch(func(u *model.RunUpdate) {
		select {
		case gotUpdate <- struct{}{}:
		default:
		}
	})

	info, err := m.StartRun(RunRequest{Seed: 11})
	if err != nil {
		t.Fatalf("StartRun: %v", err)
	}
	select {
	case <-gotUpdate:
	case <-time.After(5 * time.Second):
		t.Fatal("no update frame before stop")
	}

	if err := m.StopRun(info.RunID); err != nil {
		t.Fatalf("StopRun: %v", err)
	}
	done, _ := m.Done(info.RunID)
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("cancelled run did not settle")
	}

	st, err := m.RunStatus(info.RunID)
	if err != nil {
		t.Fatalf("RunStatus: %v", err)
	}
	if st.State != RunFinished {
		t.Fatalf("state = %s (err=%s), want finished", st.State, st.Error)
	}
	if st.Result.Summary.StopCause != model.StopCancelled {
		t.Fatalf("stop cause = %s, want cancelled", st.Result.Summary.StopCause)
	}

	// 已到终态再停一次是状态冲突
	err = m.StopRun(info.RunID)
	if code, _ := errors.DecodeErr(err); code != ecode.RunConflictErr {
		t.Fatalf("second stop code = %d, want RunConflictErr", code)
	}
	t.Logf("✅ 停止流程正常，任务止于 %s", st.Result.Summary.StopCause)
}

func TestRunManagerValidation(t *testing.T) {
	m := NewRunManager(testConfig(t))

	_, err := m.StartRun(RunRequest{Preset: "no-such-preset"})
	if code, _ := errors.DecodeErr(err); code != ecode.PresetErr {
		t.Fatalf("unknown preset code = %d, want PresetErr", code)
	}

	_, err = m.StartRun(RunRequest{Source: "kraken"})
	if code, _ := errors.DecodeErr(err); code != ecode.ValidateErr {
		t.Fatalf("unknown source code = %d, want ValidateErr", code)
	}

	if err := m.StopRun("1234"); err == nil {
		t.Fatal("StopRun on unknown id should fail")
	} else if code, _ := errors.DecodeErr(err); code != ecode.RunNotFoundErr {
		t.Fatalf("unknown run code = %d, want RunNotFoundErr", code)
	}
	if _, err := m.RunStatus("1234"); err == nil {
		t.Fatal("RunStatus on unknown id should fail")
	}
	if _, _, err := m.RunFiles("1234"); err == nil {
		t.Fatal("RunFiles on unknown id should fail")
	}
	if got := len(m.ListRuns()); got != 0 {
		t.Fatalf("ListRuns length = %d, want 0", got)
	}
	t.Logf("✅ 参数与状态校验符合预期")
}
