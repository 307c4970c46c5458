package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 基准场景：S=100, K=100, r=5%, v=20%, T=1 年
func benchmarkParams(paths int) SimulationParameters {
	return SimulationParameters{
		Paths:        paths,
		Spot:         100.0,
		Strike:       100.0,
		RiskFreeRate: 0.05,
		Volatility:   0.2,
		Maturity:     1.0,
	}
}

func TestPriceCall_NonNegative(t *testing.T) {
	src := NewSeededGaussianSource(1)
	p := benchmarkParams(10000)

	price := PriceCall(p, src)
	assert.GreaterOrEqual(t, price, 0.0)
}

func TestPricePut_NonNegative(t *testing.T) {
	src := NewSeededGaussianSource(1)
	p := benchmarkParams(10000)

	price := PricePut(p, src)
	assert.GreaterOrEqual(t, price, 0.0)
}

func TestPriceCall_DeterministicWithSameSeed(t *testing.T) {
	p := benchmarkParams(50000)

	a := PriceCall(p, NewSeededGaussianSource(42))
	b := PriceCall(p, NewSeededGaussianSource(42))

	// 相同种子与参数必须逐位一致
	assert.Equal(t, a, b)
}

func TestPriceCall_ZeroVolatilityIsClosedForm(t *testing.T) {
	p := benchmarkParams(1000)
	p.Volatility = 0.0

	// v=0 时终值确定为 S*exp(rT)，价格退化为闭式折现收益
	expectedCall := math.Max(p.Spot*math.Exp(p.RiskFreeRate*p.Maturity)-p.Strike, 0) *
		math.Exp(-p.RiskFreeRate*p.Maturity)

	src := NewSeededGaussianSource(7)
	assert.InDelta(t, expectedCall, PriceCall(p, src), 1e-9)
	assert.InDelta(t, 0.0, PricePut(p, src), 1e-9)
}

func TestPrice_ConvergesToBlackScholes(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping convergence test in short mode")
	}

	input := BlackScholesInput{S: 100, K: 100, T: 1, R: 0.05, V: 0.2}
	bsCall := CalculateBlackScholes(OptionTypeCall, input).Price.InexactFloat64()
	bsPut := CalculateBlackScholes(OptionTypePut, input).Price.InexactFloat64()

	require.InDelta(t, 10.45, bsCall, 0.01)
	require.InDelta(t, 5.57, bsPut, 0.01)

	// 容差随路径数收紧，均远大于对应的蒙特卡洛标准误差
	cases := []struct {
		paths     int
		tolerance float64
	}{
		{10000, 1.0},
		{100000, 0.3},
		{1000000, 0.1},
	}

	for _, tc := range cases {
		p := benchmarkParams(tc.paths)
		src := NewSeededGaussianSource(2024)

		call := PriceCall(p, src)
		put := PricePut(p, src)

		assert.InDelta(t, bsCall, call, tc.tolerance, "call price at %d paths", tc.paths)
		assert.InDelta(t, bsPut, put, tc.tolerance, "put price at %d paths", tc.paths)
	}
}

func TestPrice_PutCallParity(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping parity test in short mode")
	}

	p := benchmarkParams(1000000)
	src := NewSeededGaussianSource(99)

	call := PriceCall(p, src)
	put := PricePut(p, src)

	// C - P = S - K*exp(-rT)；call 与 put 基于独立路径集合，
	// 偏差由两组独立的蒙特卡洛误差共同决定
	parity := p.Spot - p.Strike*math.Exp(-p.RiskFreeRate*p.Maturity)
	assert.InDelta(t, parity, call-put, 0.1)
}

func TestPrice_DeepInTheMoneyCall(t *testing.T) {
	p := benchmarkParams(200000)
	p.Spot = 200.0

	src := NewSeededGaussianSource(5)
	call := PriceCall(p, src)

	// 深度实值看涨期权价格不低于内在价值的折现下界 S - K*exp(-rT)
	lowerBound := p.Spot - p.Strike*math.Exp(-p.RiskFreeRate*p.Maturity)
	assert.Greater(t, call, lowerBound-0.5)
}
