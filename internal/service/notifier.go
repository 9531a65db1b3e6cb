package service

import (
	"fmt"
	"time"

	"pairflow/conf"
	"pairflow/pkg/errors"
	"pairflow/pkg/errors/ecode"
	"pairflow/pkg/logger"
	"pairflow/pkg/push/apns"
	"pairflow/pkg/utils"
)

// SettlementNotifier 任务到终态后把清算结果推到运营设备
type SettlementNotifier struct {
	cfg    *conf.Apns
	pusher *apns.Apns
}

func NewSettlementNotifier(cfg *conf.Apns) (*SettlementNotifier, error) {
	pusher, err := apns.NewTokenApns(cfg)
	if err != nil {
		return nil, errors.Wrap(err, ecode.InternalErr, "init apns pusher")
	}
	return &SettlementNotifier{cfg: cfg, pusher: pusher}, nil
}

// NotifyRunDone 挂到 RunManager.OnRunDone 上
func (n *SettlementNotifier) NotifyRunDone(info RunInfo) {
	if info.State == RunFailed {
		n.send("run_failed",
			fmt.Sprintf("%s 运行异常", info.Preset),
			fmt.Sprintf("任务 %s 异常终止：%s", info.RunID, info.Error),
			info.RunID)
		return
	}
	if info.Result == nil || info.Result.Summary == nil {
		return
	}
	sum := info.Result.Summary
	n.send("run_settled",
		fmt.Sprintf("%s 运行结束", info.Preset),
		fmt.Sprintf("池 %s 止于 %s，配对成本 %.4f，盈亏 %+.2f USD",
			sum.PoolID, sum.StopCause, sum.PairCost, sum.PnlUSD),
		info.RunID)
}

func (n *SettlementNotifier) send(category, title, body, runID string) {
	msg := &apns.PushMessage{
		Category: category,
		Title:    title,
		Body:     body,
		Sound:    "default",
		ExtParams: map[string]interface{}{
			"group":  "pairflow-runs",
			"run_id": runID,
		},
	}
	// APNs 偶发 5xx/网络抖动，退避重试三次再放弃
	err := utils.Retry(3, 500*time.Millisecond, true, func() error {
		_, err := n.pusher.Push(msg, n.cfg.DeviceToken)
		return err
	})
	if err != nil {
		logger.Error("清算推送失败",
			logger.Pair("run_id", runID),
			logger.Pair("err", err.Error()))
		return
	}
	logger.Info("清算推送已发出", logger.Pair("run_id", runID))
}
