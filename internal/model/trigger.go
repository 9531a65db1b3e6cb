package model

import "time"

/*
外部触发信号（TradingView 告警等），示例：

	{
	  "action": "start",
	  "preset": "pairlock-1h",
	  "source": "synthetic",
	  "seed": 42,
	  "budget_usd": 300,
	  "timestamp": "2025-06-03T10:00:00Z"
	}
*/
type TriggerSignal struct {
	Action    string    `json:"action"` // start / stop
	Preset    string    `json:"preset"`
	Source    string    `json:"source"`
	Seed      int64     `json:"seed"`
	BudgetUSD float64   `json:"budget_usd"`
	RunID     string    `json:"run_id"`    // stop 时指定
	Timestamp time.Time `json:"timestamp"` // 触发时间
}

// 触发信号有效期，过期的告警直接丢弃（也挡住重放）
const triggerExpiry = 2 * time.Minute

func (s TriggerSignal) IsExpired() bool {
	return time.Since(s.Timestamp) > triggerExpiry
}
