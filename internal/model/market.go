package model

import "time"

// 二元结果池的两条腿：higher 指当前定价更高的一侧，lower 为另一侧
// 两条腿的公允价格之和应接近 1.0

type Side string

const (
	SideHigher Side = "higher"
	SideLower  Side = "lower"
)

func (s Side) Opposite() Side {
	if s == SideHigher {
		return SideLower
	}
	return SideHigher
}

// LegQuote 单条腿的盘口报价
type LegQuote struct {
	LegID  string  `json:"leg_id"`
	Bid    float64 `json:"bid"`
	Ask    float64 `json:"ask"`
	Mid    float64 `json:"mid"`
	Spread float64 `json:"spread"`
}

// Position 外部持仓，策略以它为准并在每个周期对账
type Position struct {
	Asset string  `json:"asset"` // legID
	Size  float64 `json:"size"`
	Side  Side    `json:"side"`
}

// PoolSnapshot 一次轮询采集到的完整输入：报价、持仓、剩余时间
type PoolSnapshot struct {
	PoolID      string     `json:"pool_id"`
	Asset       string     `json:"asset"`
	Time        time.Time  `json:"time"`
	MinutesLeft float64    `json:"minutes_left"`
	Legs        []LegQuote `json:"legs"`
	Positions   []Position `json:"positions"`
}

func (s *PoolSnapshot) Quote(legID string) (LegQuote, bool) {
	for _, q := range s.Legs {
		if q.LegID == legID {
			return q, true
		}
	}
	return LegQuote{}, false
}

func (s *PoolSnapshot) PositionSize(legID string) float64 {
	for _, p := range s.Positions {
		if p.Asset == legID {
			return p.Size
		}
	}
	return 0
}
