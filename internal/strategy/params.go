package strategy

import (
	"fmt"
	"time"

	"pairflow/internal/risk"
)

// SizingMode 决定 Probe/Dip/Hedge 的基准数值按股数还是按 USD 解释。
type SizingMode string

const (
	SizeShares SizingMode = "shares"
	SizeUSD    SizingMode = "usd"
)

// Params 是一个预设的全部参数,封闭枚举,注册之后只读。
// 决策逻辑里不允许出现任何硬编码阈值,全部从这里取。
type Params struct {
	Name   string     `json:"name"`
	Sizing SizingMode `json:"sizing"`

	// 入场探测:高价腿角色判定与小额试探
	ProbeFloor      float64 `json:"probe_floor"`       // 卖价高于该值的腿被认定为 higher
	ProbeCeiling    float64 `json:"probe_ceiling"`     // 越接近上沿,探测数量越小
	ProbeSize       float64 `json:"probe_size"`        // 基准数量(股或 USD)
	ProbeRungs      int     `json:"probe_rungs"`       // 阶梯档数,每池只走一轮
	ProbeLadderStep float64 `json:"probe_ladder_step"` // 阶梯价差,负值
	ProbeAvgCap     float64 `json:"probe_avg_cap"`     // 走完阶梯后的投影均价上限
	EntryWindow     float64 `json:"entry_window"`      // 开场窗口占整池比例

	// 高价腿摊低
	DipThreshold  float64 `json:"dip_threshold"`   // 低于均价多少才算回落
	DipBaseSize   float64 `json:"dip_base_size"`   // 按回落深度等比放大的基准
	DipMaxSize    float64 `json:"dip_max_size"`    // 单笔上限
	DipLadderStep float64 `json:"dip_ladder_step"` // 挂单相对卖价的价差,负值

	// 低价腿对冲
	HedgeCeiling     float64 `json:"hedge_ceiling"`      // 低价腿高于该价不对冲
	HedgeTargetRatio float64 `json:"hedge_target_ratio"` // 目标数量 = 比例 × higher数量
	HedgeMinSize     float64 `json:"hedge_min_size"`
	HedgeMaxSize     float64 `json:"hedge_max_size"`
	HedgeLadderStep  float64 `json:"hedge_ladder_step"`
	HedgeStrict      bool    `json:"hedge_strict"` // 对冲是否附加回报覆盖检查

	// 反转追补
	ReversalMargin     float64       `json:"reversal_margin"`      // lower 卖价超出 higher 的触发差
	ReversalBalanceMax float64       `json:"reversal_balance_max"` // 平衡率低于该值才触发
	ReversalFrac       float64       `json:"reversal_frac"`        // 每档追补 lower 现量的比例
	ReversalTranches   int           `json:"reversal_tranches"`    // 最多几档
	ReversalGraceMin   float64       `json:"reversal_grace_min"`   // 开盘宽限(分钟)
	ReversalCutoffMin  float64       `json:"reversal_cutoff_min"`  // 剩余低于该分钟数不再触发
	ReversalInterval   time.Duration `json:"reversal_interval"`    // 触发检查的最小间隔

	// 锁定与守卫阈值
	TargetPairCost   float64 `json:"target_pair_cost"`
	CostTolerance    float64 `json:"cost_tolerance"`
	LockBalanceFloor float64 `json:"lock_balance_floor"` // 锁定持有要求的平衡率
	MinBalanceRatio  float64 `json:"min_balance_ratio"`  // 守卫的逐笔平衡下限
	MinAsymRatio     float64 `json:"min_asym_ratio"`
	MaxAsymRatio     float64 `json:"max_asym_ratio"`
	SafetyMultiplier float64 `json:"safety_multiplier"`
	ExitWindow       float64 `json:"exit_window"` // 尾段窗口占整池比例

	// 成本重查与暂停
	RepeatInterval  time.Duration `json:"repeat_interval"`  // 成本超标时重查摊低机会的间隔
	PauseHysteresis float64       `json:"pause_hysteresis"` // 恢复加仓所需的回落幅度
	SmoothingWindow int           `json:"smoothing_window"` // 配对成本滚动均值窗口,<=1 取即时值
}

// Limits 导出给安全守卫的阈值子集。
func (p Params) Limits() risk.Limits {
	return risk.Limits{
		TargetPairCost:   p.TargetPairCost,
		CostTolerance:    p.CostTolerance,
		MinBalanceRatio:  p.MinBalanceRatio,
		MinAsymRatio:     p.MinAsymRatio,
		MaxAsymRatio:     p.MaxAsymRatio,
		SafetyMultiplier: p.SafetyMultiplier,
	}
}

// HedgeMode 对冲路径使用的守卫模式。
func (p Params) HedgeMode() risk.Mode {
	if p.HedgeStrict {
		return risk.ModeHedgeStrict
	}
	return risk.ModeHedge
}

// ToShares 把基准数值换算成股数。USD 模式按给定价格折算。
func (p Params) ToShares(amount, price float64) float64 {
	if p.Sizing == SizeUSD && price > 0 {
		return amount / price
	}
	return amount
}

func (p Params) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("preset missing name")
	}
	if p.ProbeFloor >= p.ProbeCeiling {
		return fmt.Errorf("preset %s: probe floor %.2f must be below ceiling %.2f", p.Name, p.ProbeFloor, p.ProbeCeiling)
	}
	if p.MinAsymRatio >= p.MaxAsymRatio {
		return fmt.Errorf("preset %s: asym band [%.2f,%.2f] is empty", p.Name, p.MinAsymRatio, p.MaxAsymRatio)
	}
	if p.TargetPairCost <= 0 || p.TargetPairCost >= 1 {
		return fmt.Errorf("preset %s: target pair cost %.2f outside (0,1)", p.Name, p.TargetPairCost)
	}
	if p.EntryWindow+p.ExitWindow >= 1 {
		return fmt.Errorf("preset %s: entry/exit windows overlap", p.Name)
	}
	if p.ReversalFrac < 0.25 || p.ReversalFrac > 0.40 {
		return fmt.Errorf("preset %s: reversal fraction %.2f outside [0.25,0.40]", p.Name, p.ReversalFrac)
	}
	return nil
}
