package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pairflow/conf"
	"pairflow/internal/model"
	"pairflow/internal/service"
	"pairflow/pkg/errors"
	"pairflow/pkg/errors/ecode"

	"github.com/goccy/go-json"
)

const testSecret = "ab12cd34ef56abcdef1234567890abcdef12"

func testConfig(t *testing.T) *conf.Config {
	t.Helper()
	cfg := &conf.Config{DataDir: t.TempDir()}
	cfg.Pool.Asset = "BTC-USD"
	cfg.Pool.Minutes = 15
	cfg.Feed.Source = "synthetic"
	cfg.Feed.Volatility = 0.012
	cfg.Feed.Spread = 0.01
	cfg.Feed.Reversion = 0.05
	cfg.Simulator.Seed = 11
	cfg.Simulator.FillDelayMs = 1500
	cfg.Simulator.BaseFillProb = 0.85
	cfg.Simulator.FillDistanceBoost = 4
	cfg.Simulator.MaxSlippage = 0.01
	cfg.Simulator.IlliquiditySize = 200
	cfg.Simulator.MaxRetries = 2
	cfg.Simulator.RetryDelayMs = 2000
	cfg.Simulator.SettlementDelayMs = 3000
	cfg.Simulator.PollIntervalMs = 3000
	cfg.Simulator.BudgetUSD = 300
	cfg.Strategy.Preset = "pairlock-15m"
	return cfg
}

func signBody(body []byte) string {
	h := hmac.New(sha256.New, []byte(testSecret))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

func triggerRequest(t *testing.T, sig model.TriggerSignal) *http.Request {
	t.Helper()
	body, err := json.Marshal(sig)
	if err != nil {
		t.Fatalf("marshal signal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhook/trigger", bytes.NewReader(body))
	req.Header.Set("X-Signature", signBody(body))
	return req
}

func TestWebhookStartSignal(t *testing.T) {
	conf.AppConfig.Webhook.Secret = testSecret
	m := service.NewRunManager(testConfig(t))
	wh := NewWebhookHandler(m)

	res, err := wh.Handle(triggerRequest(t, model.TriggerSignal{
		Action:    "start",
		Preset:    "pairlock-15m",
		Seed:      21,
		Timestamp: time.Now(),
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	info, ok := res.(service.RunInfo)
	if !ok {
		t.Fatalf("返回类型错误: %T", res)
	}
	if info.Seed != 21 || info.Preset != "pairlock-15m" {
		t.Fatalf("seed/preset = %d/%s", info.Seed, info.Preset)
	}

	done, err := m.Done(info.RunID)
	if err != nil {
		t.Fatalf("Done: %v", err)
	}
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("运行没有结束")
	}
	t.Logf("✅ 触发信号启动了运行 %s", info.RunID)
}

func TestWebhookStopSignal(t *testing.T) {
	conf.AppConfig.Webhook.Secret = testSecret
	cfg := testConfig(t)
	// 真实时钟+短轮询，保证发停止信号时任务还在跑
	cfg.Simulator.Realtime = true
	cfg.Simulator.PollIntervalMs = 5
	m := service.NewRunManager(cfg)
	wh := NewWebhookHandler(m)

	res, err := wh.Handle(triggerRequest(t, model.TriggerSignal{
		Action:    "start",
		Timestamp: time.Now(),
	}))
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	info := res.(service.RunInfo)

	if _, err = wh.Handle(triggerRequest(t, model.TriggerSignal{
		Action:    "stop",
		RunID:     info.RunID,
		Timestamp: time.Now(),
	})); err != nil {
		t.Fatalf("stop: %v", err)
	}

	done, _ := m.Done(info.RunID)
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("停止信号没有生效")
	}
	t.Logf("✅ 触发信号停掉了运行 %s", info.RunID)
}

func TestWebhookStopRequiresRunId(t *testing.T) {
	conf.AppConfig.Webhook.Secret = testSecret
	wh := NewWebhookHandler(service.NewRunManager(testConfig(t)))

	_, err := wh.Handle(triggerRequest(t, model.TriggerSignal{
		Action:    "stop",
		Timestamp: time.Now(),
	}))
	if code, _ := errors.DecodeErr(err); code != ecode.ValidateErr {
		t.Fatalf("code = %d, want %d", code, ecode.ValidateErr)
	}
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	conf.AppConfig.Webhook.Secret = testSecret
	wh := NewWebhookHandler(service.NewRunManager(testConfig(t)))

	body, _ := json.Marshal(model.TriggerSignal{Action: "start", Timestamp: time.Now()})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhook/trigger", bytes.NewReader(body))
	req.Header.Set("X-Signature", "deadbeef")
	if _, err := wh.Handle(req); err == nil {
		t.Fatal("错误签名应该被拒绝")
	} else if code, _ := errors.DecodeErr(err); code != ecode.RequireAuthErr {
		t.Fatalf("code = %d, want %d", code, ecode.RequireAuthErr)
	}

	// 缺少签名头
	req = httptest.NewRequest(http.MethodPost, "/api/v1/webhook/trigger", bytes.NewReader(body))
	if _, err := wh.Handle(req); err == nil {
		t.Fatal("缺签名应该被拒绝")
	}
}

func TestWebhookRejectsExpiredSignal(t *testing.T) {
	conf.AppConfig.Webhook.Secret = testSecret
	wh := NewWebhookHandler(service.NewRunManager(testConfig(t)))

	_, err := wh.Handle(triggerRequest(t, model.TriggerSignal{
		Action:    "start",
		Timestamp: time.Now().Add(-3 * time.Minute),
	}))
	if code, _ := errors.DecodeErr(err); code != ecode.ValidateErr {
		t.Fatalf("过期信号 code = %d, want %d", code, ecode.ValidateErr)
	}
}

func TestWebhookUnknownAction(t *testing.T) {
	conf.AppConfig.Webhook.Secret = testSecret
	wh := NewWebhookHandler(service.NewRunManager(testConfig(t)))

	_, err := wh.Handle(triggerRequest(t, model.TriggerSignal{
		Action:    "pause",
		Timestamp: time.Now(),
	}))
	if code, _ := errors.DecodeErr(err); code != ecode.ValidateErr {
		t.Fatalf("未知动作 code = %d, want %d", code, ecode.ValidateErr)
	}
}

// 触发启动的运行要能被正常收尾，不留后台协程
func TestWebhookStopAllCleanup(t *testing.T) {
	conf.AppConfig.Webhook.Secret = testSecret
	cfg := testConfig(t)
	cfg.Simulator.Realtime = true
	cfg.Simulator.PollIntervalMs = 5
	m := service.NewRunManager(cfg)
	wh := NewWebhookHandler(m)

	if _, err := wh.Handle(triggerRequest(t, model.TriggerSignal{
		Action:    "start",
		Timestamp: time.Now(),
	})); err != nil {
		t.Fatalf("start: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := m.StopAll(ctx); err != nil {
		t.Fatalf("StopAll: %v", err)
	}
	if m.ActiveRuns() != 0 {
		t.Fatalf("ActiveRuns = %d, want 0", m.ActiveRuns())
	}
}
