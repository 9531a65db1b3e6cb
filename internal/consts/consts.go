package consts

import "time"

const (
	// RequestId 请求id名称
	RequestId   = "request_id"
	OperatorCtx = "operator_ctx"
	JWTTokenCtx = "token_ctx"
)

const (
	Timestamp = "T-Timestamp"
	Signature = "T-Signature"

	DateLayout   = "2006-01-02"
	TimeLayout   = "2006-01-02 15:04:05"
	TimeLayoutMs = "2006-01-02 15:04:05.000"
)

const (
	// 最低可挂单价格，阶梯价向下偏移后不允许低于该值
	MinTradePrice = 0.01
	// 最高可挂单价格
	MaxTradePrice = 0.99

	// 一份合约结算时的兑付价值（USD）
	SettleValuePerShare = 1.0
)

const (
	// 单个池默认时长（小时池）
	DefaultPoolMinutes = 60

	// 行情轮询的默认间隔
	DefaultPollInterval = 3 * time.Second
)
