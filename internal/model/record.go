package model

import "time"

// 落盘记录与运行结果

type RecordStatus string

const (
	RecordSubmitted RecordStatus = "submitted"
	RecordFilled    RecordStatus = "filled"
	RecordFailed    RecordStatus = "failed"
	RecordRejected  RecordStatus = "rejected" // 预检失败（校验/预算/同腿在途单），未进入生命周期
	RecordHold      RecordStatus = "hold"
)

// TradeRecord 每次提交/成交/失败各追加一条
type TradeRecord struct {
	Timestamp     time.Time    `json:"timestamp"`
	Cycle         int64        `json:"cycle"`
	Action        Action       `json:"action"`
	Leg           Side         `json:"leg"`
	Price         float64      `json:"price"`
	Size          float64      `json:"size"`
	Cost          float64      `json:"cost"`
	LegQty        float64      `json:"leg_qty"`       // 该腿累计数量
	LegAvgPrice   float64      `json:"leg_avg_price"` // 该腿加权均价
	TotalSpent    float64      `json:"total_spent"`
	OrderID       int64        `json:"order_id"`
	Status        RecordStatus `json:"status"`
	FailureReason string       `json:"failure_reason"`
	Reason        string       `json:"reason"`
}

type StopCause string

const (
	StopTimeEnd     StopCause = "time_end"
	StopMaxDuration StopCause = "max_duration"
	StopCancelled   StopCause = "cancelled"
	StopRollover    StopCause = "rollover"
)

// RunSummary 运行结束时写出的单条汇总记录
type RunSummary struct {
	RunID     string    `json:"run_id"`
	PoolID    string    `json:"pool_id"`
	Preset    string    `json:"preset"`
	Seed      int64     `json:"seed"`
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`
	StopCause StopCause `json:"stop_cause"`

	Cycles    int64 `json:"cycles"`
	Submitted int64 `json:"submitted"`
	Fills     int64 `json:"fills"`
	Failures  int64 `json:"failures"`
	Retries   int64 `json:"retries"`
	Rejected  int64 `json:"rejected"`
	Trades    int64 `json:"trades"` // 落盘的TradeRecord条数

	HigherSize float64 `json:"higher_size"`
	HigherCost float64 `json:"higher_cost"`
	LowerSize  float64 `json:"lower_size"`
	LowerCost  float64 `json:"lower_cost"`

	PairCost         float64 `json:"pair_cost"`
	SmoothedPairCost float64 `json:"smoothed_pair_cost"`
	BalanceRatio     float64 `json:"balance_ratio"`
	AsymRatio        float64 `json:"asym_ratio"`

	SpentUSD      float64 `json:"spent_usd"`
	MarkValueUSD  float64 `json:"mark_value_usd"`
	PnlUSD        float64 `json:"pnl_usd"`
	BudgetUSD     float64 `json:"budget_usd"`
	BudgetLeftUSD float64 `json:"budget_left_usd"`
}

// RunResult RunUntilEnd 的返回值
type RunResult struct {
	Cycles   int64       `json:"cycles"`
	Fills    int64       `json:"fills"`
	Failures int64       `json:"failures"`
	Trades   int64       `json:"trades"`
	FinalPnl float64     `json:"final_pnl"`
	Spent    float64     `json:"spent"`
	Budget   float64     `json:"budget"`
	Summary  *RunSummary `json:"summary"`
}

// RunUpdate 推送给监控端的每周期帧
type RunUpdate struct {
	RunID            string    `json:"run_id"`
	Cycle            int64     `json:"cycle"`
	Phase            string    `json:"phase"`
	Time             time.Time `json:"time"`
	MinutesLeft      float64   `json:"minutes_left"`
	HigherAsk        float64   `json:"higher_ask"`
	LowerAsk         float64   `json:"lower_ask"`
	PairCost         float64   `json:"pair_cost"`
	SmoothedPairCost float64   `json:"smoothed_pair_cost"`
	HigherSize       float64   `json:"higher_size"`
	LowerSize        float64   `json:"lower_size"`
	SpentUSD         float64   `json:"spent_usd"`
	PnlUSD           float64   `json:"pnl_usd"`
	BudgetLeftUSD    float64   `json:"budget_left_usd"`
	Paused           bool      `json:"paused"`
}
