package conf

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// 配置加载（服务、行情源、模拟器、策略预设等）

type WebhookConfig struct {
	Secret string `yaml:"secret"`
}

type Okx struct {
	Symbol      string `yaml:"symbol"`       // 标的现货交易对，例如 BTC/USDT
	RestTimeout int    `yaml:"rest-timeout"` // 公共行情接口超时（秒）
	Simulated   bool   `yaml:"simulated"`    // 是否请求模拟盘环境
}

type FeedConfig struct {
	Source      string  `yaml:"source" validate:"omitempty,oneof=synthetic okx"` // 行情来源
	Volatility  float64 `yaml:"volatility"`                                      // 合成行情的单步波动幅度
	Spread      float64 `yaml:"spread"`                                          // 买卖价差
	Reversion   float64 `yaml:"reversion"`                                       // 向公允概率回归的力度 (0~1)
	Drift       float64 `yaml:"drift"`                                           // 合成行情的方向性漂移
	Sensitivity float64 `yaml:"sensitivity"`                                     // okx 源：标的收益率映射成概率的斜率
}

type PoolConfig struct {
	Asset   string `yaml:"asset"`                                // 池对应的标的名称
	Minutes int    `yaml:"minutes" validate:"omitempty,gt=0"`    // 池时长（分钟）
	Owner   string `yaml:"owner"`                                // 持仓查询用的账户标识
}

type SimulatorConfig struct {
	Seed              int64   `yaml:"seed"`                // 随机源种子，0表示按时间生成
	FillDelayMs       int     `yaml:"fill-delay-ms"`       // 挂单到可结算的最小延迟
	BaseFillProb      float64 `yaml:"base-fill-prob" validate:"omitempty,gt=0,lte=1"`
	FillDistanceBoost float64 `yaml:"fill-distance-boost"` // 挂单价偏离市场价对成交概率的调整斜率
	MaxSlippage       float64 `yaml:"max-slippage"`        // 对称滑点上限
	InvalidPriceProb  float64 `yaml:"invalid-price-prob" validate:"gte=0,lte=1"`
	RejectProb        float64 `yaml:"reject-prob" validate:"gte=0,lte=1"`
	IlliquidityProb   float64 `yaml:"illiquidity-prob" validate:"gte=0,lte=1"`
	IlliquiditySize   float64 `yaml:"illiquidity-size"` // 超过该数量的单子才会触发流动性不足
	MaxRetries        int     `yaml:"max-retries"`
	RetryDelayMs      int     `yaml:"retry-delay-ms"`
	SettlementDelayMs int     `yaml:"settlement-delay-ms"` // 成交对持仓可见的延迟
	PollIntervalMs    int     `yaml:"poll-interval-ms"`
	MaxDurationMs     int64   `yaml:"max-duration-ms"`
	BudgetUSD         float64 `yaml:"budget-usd"` // 池级资金上限
	Realtime          bool    `yaml:"realtime"`   // true 时按真实时间轮询，false 走虚拟时钟快进
}

type StrategyConfig struct {
	Preset          string `yaml:"preset"`           // 策略预设名
	SmoothingWindow int    `yaml:"smoothing-window"` // 配对成本滚动均值窗口（样本数），0 表示沿用预设值
}

type LogConfig struct {
	Level      string `yaml:"level"`
	FileName   string `yaml:"file-name"`
	TimeFormat string `yaml:"time-format"`
	MaxSize    int    `yaml:"max-size"`
	MaxBackups int    `yaml:"max-backups"`
	MaxAge     int    `yaml:"max-age"`
	Compress   bool   `yaml:"compress"`
	LocalTime  bool   `yaml:"local-time"`
	Console    bool   `yaml:"console"`
}

type JwtConfig struct {
	Secret string `yaml:"secret"`
	JwtTtl int64  `yaml:"ttl"` // token 有效期（秒）
}

type OperatorConfig struct {
	Name      string `yaml:"name"`       // 运维账号
	AccessKey string `yaml:"access-key"` // 登录口令，sealed 模式下为密文
}

type Apns struct {
	Enabled     bool   `yaml:"enabled"`
	Topic       string `yaml:"topic"`
	KeyID       string `yaml:"key_id"`
	TeamID      string `yaml:"team_id"`
	KeyFile     string `yaml:"key_file"` // p8 密钥文件路径
	DeviceToken string `yaml:"device_token"`
	IsProd      bool   `yaml:"is_prod"`
}

type AppleConfig struct {
	Apns Apns `yaml:"apns"`
}

type SecurityConfig struct {
	Sealed     bool   `yaml:"sealed"` // true 时 webhook/jwt secret 为密文，启动时解封
	PrivateKey string `yaml:"private-key"`
	PublicKey  string `yaml:"public-key"`
	Salt       string `yaml:"salt"`
	SharedInfo string `yaml:"shared-info"`
	Nonce      string `yaml:"nonce"`
}

type Config struct {
	AppName      string `yaml:"app_name"`
	Listen       string `yaml:"listen"`
	Mode         string `yaml:"mode"`
	Language     string `yaml:"language"`
	MaxPingCount int    `yaml:"max-ping-count"`
	DataDir      string `yaml:"data_dir"` // 交易记录与汇总文件的输出目录

	Webhook   WebhookConfig   `yaml:"webhook"`
	Okx       `yaml:"okx"`
	Feed      FeedConfig      `yaml:"feed"`
	Pool      PoolConfig      `yaml:"pool"`
	Simulator SimulatorConfig `yaml:"simulator"`
	Strategy  StrategyConfig  `yaml:"strategy"`
	Log       LogConfig       `yaml:"log"`
	Jwt       JwtConfig       `yaml:"jwt"`
	Operator  OperatorConfig  `yaml:"operator"`
	Apple     AppleConfig     `yaml:"apple"`
	Security  SecurityConfig  `yaml:"security"`
}

var AppConfig Config

func LoadConfig(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("Read config file error %w", err)
	}
	if err := yaml.Unmarshal(data, &AppConfig); err != nil {
		return fmt.Errorf("Unmarshal config yaml error: %w", err)
	}
	AppConfig.applyDefaults()
	if err := AppConfig.Validate(); err != nil {
		return fmt.Errorf("Validate config error: %w", err)
	}
	return nil
}

// applyDefaults 填充未配置的结构性字段
// 概率类参数显式为0是合法配置，不做兜底
func (c *Config) applyDefaults() {
	if c.AppName == "" {
		c.AppName = "pairflow"
	}
	if c.Listen == "" {
		c.Listen = ":8780"
	}
	if c.MaxPingCount == 0 {
		c.MaxPingCount = 10
	}
	if c.DataDir == "" {
		c.DataDir = "data"
	}
	if c.Okx.Symbol == "" {
		c.Okx.Symbol = "BTC/USDT"
	}
	if c.Okx.RestTimeout == 0 {
		c.Okx.RestTimeout = 10
	}
	if c.Feed.Source == "" {
		c.Feed.Source = "synthetic"
	}
	if c.Feed.Volatility == 0 {
		c.Feed.Volatility = 0.012
	}
	if c.Feed.Spread == 0 {
		c.Feed.Spread = 0.01
	}
	if c.Feed.Sensitivity == 0 {
		c.Feed.Sensitivity = 120
	}
	if c.Pool.Asset == "" {
		c.Pool.Asset = "BTC-USD"
	}
	if c.Pool.Minutes == 0 {
		c.Pool.Minutes = 60
	}
	if c.Pool.Owner == "" {
		c.Pool.Owner = "paper"
	}
	if c.Simulator.FillDelayMs == 0 {
		c.Simulator.FillDelayMs = 1500
	}
	if c.Simulator.BaseFillProb == 0 {
		c.Simulator.BaseFillProb = 0.85
	}
	if c.Simulator.FillDistanceBoost == 0 {
		c.Simulator.FillDistanceBoost = 4.0
	}
	if c.Simulator.MaxSlippage == 0 {
		c.Simulator.MaxSlippage = 0.01
	}
	if c.Simulator.IlliquiditySize == 0 {
		c.Simulator.IlliquiditySize = 200
	}
	if c.Simulator.MaxRetries == 0 {
		c.Simulator.MaxRetries = 2
	}
	if c.Simulator.RetryDelayMs == 0 {
		c.Simulator.RetryDelayMs = 2000
	}
	if c.Simulator.SettlementDelayMs == 0 {
		c.Simulator.SettlementDelayMs = 3000
	}
	if c.Simulator.PollIntervalMs == 0 {
		c.Simulator.PollIntervalMs = 3000
	}
	if c.Simulator.BudgetUSD == 0 {
		c.Simulator.BudgetUSD = 500
	}
	if c.Strategy.Preset == "" {
		c.Strategy.Preset = "pairlock-1h"
	}
	if c.Jwt.JwtTtl == 0 {
		c.Jwt.JwtTtl = 3600 * 12
	}
}

// Validate 聚合返回所有校验错误
func (c *Config) Validate() error {
	v := validator.New()
	var errs error
	if err := v.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				errs = multierr.Append(errs, fmt.Errorf("config field %s invalid on tag %s", fe.Namespace(), fe.Tag()))
			}
		} else {
			errs = multierr.Append(errs, err)
		}
	}
	if c.Simulator.MaxSlippage < 0 {
		errs = multierr.Append(errs, fmt.Errorf("simulator.max-slippage must be >= 0"))
	}
	if c.Simulator.Seed < 0 {
		errs = multierr.Append(errs, fmt.Errorf("simulator.seed must be >= 0"))
	}
	return errs
}
