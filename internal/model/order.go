package model

import "time"

// 模拟器内的订单生命周期：Pending 最终恰好落到 Filled 或 Failed 之一，
// 每次落地产生一条 TradeRecord

type OrderState string

const (
	OrderStatePending OrderState = "pending"
	OrderStateFilled  OrderState = "filled"
	OrderStateFailed  OrderState = "failed"
)

type FailureReason string

const (
	FailInvalidPrice FailureReason = "invalid_price"
	FailRejected     FailureReason = "rejected"
	FailIlliquidity  FailureReason = "insufficient_liquidity"
	FailExpired      FailureReason = "expired"
	FailCancelled    FailureReason = "cancelled"
)

// Retryable 价格非法属于结构性错误、撤单是主动终态，都不重试；
// 其余失败类型允许有限重试
func (r FailureReason) Retryable() bool {
	return r == FailRejected || r == FailIlliquidity || r == FailExpired
}

// PendingOrder 已提交、尚未决出的订单
type PendingOrder struct {
	ID          int64     `json:"id"`
	LegID       string    `json:"leg_id"`
	Side        Side      `json:"side"`
	Action      Action    `json:"action"`
	Price       float64   `json:"price"`
	Size        float64   `json:"size"`
	Reason      string    `json:"reason"`
	SubmittedAt time.Time `json:"submitted_at"`
	RetryCount  int       `json:"retry_count"`
	Cycle       int64     `json:"cycle"`
}

// Cost 占用的资金（限价×数量）
func (o *PendingOrder) Cost() float64 {
	return o.Price * o.Size
}

type FilledOrder struct {
	Order     PendingOrder `json:"order"`
	FillPrice float64      `json:"fill_price"` // 含滑点的实际成交价
	FilledAt  time.Time    `json:"filled_at"`
	VisibleAt time.Time    `json:"visible_at"` // 过了结算可见延迟后才会计入持仓
}

type FailedOrder struct {
	Order       PendingOrder  `json:"order"`
	FailReason  FailureReason `json:"fail_reason"`
	FailedAt    time.Time     `json:"failed_at"`
	NextRetryAt time.Time     `json:"next_retry_at"`
	Final       bool          `json:"final"` // 不可重试或已达重试上限
}
