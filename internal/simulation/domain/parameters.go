// Package domain 包含蒙特卡洛期权定价服务的领域模型
package domain

import "fmt"

// SimulationParameters 单次模拟的输入参数
// 构造后只读，每个 worker 在启动时获得一份拷贝
type SimulationParameters struct {
	// 模拟路径数
	Paths int `json:"paths"`
	// 标的价格
	Spot float64 `json:"spot"`
	// 执行价格
	Strike float64 `json:"strike"`
	// 无风险利率
	RiskFreeRate float64 `json:"risk_free_rate"`
	// 波动率
	Volatility float64 `json:"volatility"`
	// 到期时间（年）
	Maturity float64 `json:"maturity"`
}

// Validate 验证参数不变量
// 定价核心本身不做校验，调用方必须在启动 worker 之前调用
func (p SimulationParameters) Validate() error {
	if p.Paths <= 0 {
		return fmt.Errorf("paths must be positive, got %d", p.Paths)
	}
	if p.Spot <= 0 {
		return fmt.Errorf("spot price must be positive, got %g", p.Spot)
	}
	if p.Strike <= 0 {
		return fmt.Errorf("strike price must be positive, got %g", p.Strike)
	}
	if p.Volatility < 0 {
		return fmt.Errorf("volatility must be non-negative, got %g", p.Volatility)
	}
	if p.Maturity <= 0 {
		return fmt.Errorf("maturity must be positive, got %g", p.Maturity)
	}
	return nil
}

// WithSpot 返回替换标的价格后的参数拷贝
func (p SimulationParameters) WithSpot(spot float64) SimulationParameters {
	p.Spot = spot
	return p
}
