package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateBlackScholes_KnownValues(t *testing.T) {
	// 教科书基准：S=100, K=100, T=1, r=5%, v=20%
	input := BlackScholesInput{S: 100, K: 100, T: 1, R: 0.05, V: 0.2}

	call := CalculateBlackScholes(OptionTypeCall, input)
	put := CalculateBlackScholes(OptionTypePut, input)

	assert.InDelta(t, 10.4506, call.Price.InexactFloat64(), 0.001)
	assert.InDelta(t, 5.5735, put.Price.InexactFloat64(), 0.001)

	assert.InDelta(t, 0.6368, call.Delta.InexactFloat64(), 0.001)
	assert.InDelta(t, -0.3632, put.Delta.InexactFloat64(), 0.001)

	// Gamma 与 Vega 对 call/put 相同
	assert.InDelta(t, call.Gamma.InexactFloat64(), put.Gamma.InexactFloat64(), 1e-12)
	assert.InDelta(t, call.Vega.InexactFloat64(), put.Vega.InexactFloat64(), 1e-12)
}

func TestCalculateBlackScholes_PutCallParity(t *testing.T) {
	inputs := []BlackScholesInput{
		{S: 100, K: 100, T: 1, R: 0.05, V: 0.2},
		{S: 120, K: 100, T: 0.5, R: 0.03, V: 0.35},
		{S: 80, K: 110, T: 2, R: 0.01, V: 0.15},
	}

	for _, input := range inputs {
		call := CalculateBlackScholes(OptionTypeCall, input).Price.InexactFloat64()
		put := CalculateBlackScholes(OptionTypePut, input).Price.InexactFloat64()

		parity := input.S - input.K*math.Exp(-input.R*input.T)
		assert.InDelta(t, parity, call-put, 1e-9)
	}
}
