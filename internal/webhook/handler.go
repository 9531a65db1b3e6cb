package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"

	"pairflow/conf"
	"pairflow/internal/model"
	"pairflow/internal/service"
	"pairflow/pkg/errors"
	"pairflow/pkg/errors/ecode"
	"pairflow/pkg/logger"

	"github.com/goccy/go-json"
)

// TradingView 告警接收器：验签后把触发信号转成运行任务的启停

type WebhookHandler struct {
	manager *service.RunManager
}

func NewWebhookHandler(manager *service.RunManager) *WebhookHandler {
	return &WebhookHandler{manager: manager}
}

// Handle 解析并执行一条触发信号，返回给上层的数据会原样进响应体
func (wh *WebhookHandler) Handle(r *http.Request) (interface{}, error) {
	signature := r.Header.Get("X-Signature")
	if signature == "" {
		return nil, errors.WithCode(ecode.RequireAuthErr, "missing signature")
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, errors.Wrap(err, ecode.ValidateErr, "failed to read body")
	}
	defer r.Body.Close()

	if !verifySignature(body, signature) {
		return nil, errors.WithCode(ecode.RequireAuthErr, "invalid signature")
	}

	var sig model.TriggerSignal
	if err := json.Unmarshal(body, &sig); err != nil {
		return nil, errors.Wrap(err, ecode.ValidateErr, "invalid JSON")
	}
	logger.Info("收到外部触发信号",
		logger.Pair("action", sig.Action),
		logger.Pair("preset", sig.Preset),
		logger.Pair("run_id", sig.RunID))

	if sig.IsExpired() {
		return nil, errors.WithCode(ecode.ValidateErr, "signal expired")
	}
	return wh.handleSignal(sig)
}

func (wh *WebhookHandler) handleSignal(sig model.TriggerSignal) (interface{}, error) {
	switch sig.Action {
	case "start":
		info, err := wh.manager.StartRun(service.RunRequest{
			Preset:    sig.Preset,
			Source:    sig.Source,
			Seed:      sig.Seed,
			BudgetUSD: sig.BudgetUSD,
		})
		if err != nil {
			return nil, err
		}
		return info, nil
	case "stop":
		if sig.RunID == "" {
			return nil, errors.WithCode(ecode.ValidateErr, "stop signal requires run_id")
		}
		if err := wh.manager.StopRun(sig.RunID); err != nil {
			return nil, err
		}
		return nil, nil
	default:
		return nil, errors.WithCodef(ecode.ValidateErr, "unknown action: %s", sig.Action)
	}
}

func verifySignature(body []byte, signatureHeader string) bool {
	secret := conf.AppConfig.Webhook.Secret

	h := hmac.New(sha256.New, []byte(secret))
	h.Write(body)
	expectedMAC := h.Sum(nil)
	providedMAC, err := hex.DecodeString(signatureHeader)
	if err != nil {
		return false
	}
	return hmac.Equal(providedMAC, expectedMAC)
}
