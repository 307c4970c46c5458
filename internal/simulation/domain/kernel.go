package domain

import "math"

// PriceCall 使用蒙特卡洛方法计算欧式看涨期权价格
// 几何布朗运动 (GBM) 终值公式：S_T = S * exp(T*(r-0.5*v^2)) * exp(sqrt(v^2*T)*Z)
// 返回折现后的平均收益；输入不变量由调用方通过 SimulationParameters.Validate 保证
func PriceCall(p SimulationParameters, src *GaussianSource) float64 {
	return price(p, src, func(terminal float64) float64 {
		return math.Max(terminal-p.Strike, 0.0)
	})
}

// PricePut 使用蒙特卡洛方法计算欧式看跌期权价格
func PricePut(p SimulationParameters, src *GaussianSource) float64 {
	return price(p, src, func(terminal float64) float64 {
		return math.Max(p.Strike-terminal, 0.0)
	})
}

// price 共享的模拟循环，call/put 仅收益函数不同
func price(p SimulationParameters, src *GaussianSource, payoff func(float64) float64) float64 {
	// 预计算漂移调整后的标的价格与波动项
	adjustedSpot := p.Spot * math.Exp(p.Maturity*(p.RiskFreeRate-0.5*p.Volatility*p.Volatility))
	volTerm := math.Sqrt(p.Volatility * p.Volatility * p.Maturity)

	payoffSum := 0.0
	for i := 0; i < p.Paths; i++ {
		z := src.NextGaussian()
		terminal := adjustedSpot * math.Exp(volTerm*z)
		payoffSum += payoff(terminal)
	}

	// 样本均值折现到现值
	return (payoffSum / float64(p.Paths)) * math.Exp(-p.RiskFreeRate*p.Maturity)
}
