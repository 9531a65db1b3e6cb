package model

import (
	"fmt"
	"pairflow/internal/consts"
)

type Action string

const (
	ActionBuyHigher Action = "BUY_HIGHER"
	ActionBuyLower  Action = "BUY_LOWER"
	ActionHold      Action = "HOLD"
	ActionSell      Action = "SELL"
)

// TradingDecision 策略引擎唯一的输出类型
// Reason 仅用于审计展示，决不参与控制流
type TradingDecision struct {
	Action Action  `json:"action"`
	LegID  string  `json:"leg_id"`
	Price  float64 `json:"price"`
	Size   float64 `json:"size"`
	Reason string  `json:"reason"`
}

// IsBuy 是否为加仓类决策
func (d *TradingDecision) IsBuy() bool {
	return d.Action == ActionBuyHigher || d.Action == ActionBuyLower
}

func (d *TradingDecision) Side() Side {
	if d.Action == ActionBuyLower {
		return SideLower
	}
	return SideHigher
}

// Cost 该决策提交后会占用的资金
func (d *TradingDecision) Cost() float64 {
	return d.Price * d.Size
}

// Validate 本地校验，非法决策在提交前拦截
func (d *TradingDecision) Validate() error {
	if d.Action == ActionHold {
		return nil
	}
	if d.LegID == "" {
		return fmt.Errorf("decision missing leg id")
	}
	if d.Price <= 0 || d.Price >= 1 {
		return fmt.Errorf("decision price %.4f outside (0,1)", d.Price)
	}
	if d.Price < consts.MinTradePrice {
		return fmt.Errorf("decision price %.4f below min trade price", d.Price)
	}
	if d.Size <= 0 {
		return fmt.Errorf("decision size %.4f must be positive", d.Size)
	}
	return nil
}
