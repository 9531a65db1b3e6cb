package strategy

import (
	"github.com/markcheno/go-talib"
)

// CostSmoother 维护池内配对成本的滚动均值。
// 晚盘即时成本可能大幅偏离历史均值,窗口大小交给预设决定。
type CostSmoother struct {
	window  int
	samples []float64
}

func NewCostSmoother(window int) *CostSmoother {
	return &CostSmoother{window: window}
}

func (c *CostSmoother) Add(sample float64) {
	c.samples = append(c.samples, sample)
	// 只保留计算所需的尾部
	if c.window > 1 && len(c.samples) > c.window*2 {
		c.samples = c.samples[len(c.samples)-c.window:]
	}
}

func (c *CostSmoother) Count() int {
	return len(c.samples)
}

// Value 返回当前平滑值。样本不足整窗时取现有样本的算术均值,
// 窗口小于等于 1 时退化为即时值。
func (c *CostSmoother) Value() float64 {
	n := len(c.samples)
	if n == 0 {
		return 0
	}
	if c.window <= 1 {
		return c.samples[n-1]
	}
	period := c.window
	if n < period {
		period = n
	}
	if period == 1 {
		return c.samples[n-1]
	}
	sma := talib.Sma(c.samples, period)
	return sma[len(sma)-1]
}

func (c *CostSmoother) Reset() {
	c.samples = c.samples[:0]
}
