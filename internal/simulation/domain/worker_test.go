package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoreFor_RoundRobinWraparound(t *testing.T) {
	tests := []struct {
		workerIndex int
		numCPU      int
		want        int
	}{
		{0, 4, 0},
		{1, 4, 1},
		{3, 4, 3},
		{4, 4, 0}, // worker 数超过核心数时回绕
		{5, 4, 1},
		{11, 4, 3},
		{7, 1, 0},
	}

	for _, tt := range tests {
		got := CoreFor(tt.workerIndex, tt.numCPU)
		assert.Equal(t, tt.want, got, "CoreFor(%d, %d)", tt.workerIndex, tt.numCPU)
		assert.GreaterOrEqual(t, got, 0)
		assert.Less(t, got, tt.numCPU)
	}
}

func TestWorker_Run(t *testing.T) {
	params := SimulationParameters{
		Paths:        20000,
		Spot:         102.0,
		Strike:       100.0,
		RiskFreeRate: 0.05,
		Volatility:   0.2,
		Maturity:     1.0,
	}

	w, err := NewWorker(2, 1, params)
	require.NoError(t, err)
	require.NotNil(t, w.Source)

	result := w.Run()

	assert.Equal(t, 2, result.WorkerIndex)
	assert.Equal(t, 1, result.CoreID)
	assert.Equal(t, params, result.Parameters)
	assert.True(t, result.CallPrice.IsPositive())
	assert.True(t, result.PutPrice.IsPositive())
	assert.Greater(t, result.Elapsed.Nanoseconds(), int64(0))
}

func TestWorker_RunDeterministicWithSeededSource(t *testing.T) {
	params := SimulationParameters{
		Paths:        20000,
		Spot:         100.0,
		Strike:       100.0,
		RiskFreeRate: 0.05,
		Volatility:   0.2,
		Maturity:     1.0,
	}

	a := &Worker{Index: 0, CoreID: -1, Parameters: params, Source: NewSeededGaussianSource(77)}
	b := &Worker{Index: 0, CoreID: -1, Parameters: params, Source: NewSeededGaussianSource(77)}

	ra := a.Run()
	rb := b.Run()

	assert.True(t, ra.CallPrice.Equal(rb.CallPrice))
	assert.True(t, ra.PutPrice.Equal(rb.PutPrice))
}
