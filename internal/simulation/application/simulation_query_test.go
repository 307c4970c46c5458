package application

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/montecarlo/internal/simulation/domain"
)

func storedRun(runID string) *domain.SimulationRun {
	return &domain.SimulationRun{
		RunID:       runID,
		Paths:       1000,
		Threads:     2,
		UseAffinity: false,
		Status:      domain.RunStatusCompleted,
		Results: []domain.PricingResult{
			{
				WorkerIndex: 0,
				CoreID:      -1,
				Parameters:  domain.SimulationParameters{Paths: 1000, Spot: 100, Strike: 100, RiskFreeRate: 0.05, Volatility: 0.2, Maturity: 1},
				CallPrice:   decimal.NewFromFloat(10.45),
				PutPrice:    decimal.NewFromFloat(5.57),
				Elapsed:     120 * time.Millisecond,
			},
		},
		StartedAt:   time.Now().Add(-time.Second),
		CompletedAt: time.Now(),
	}
}

func TestGetRun(t *testing.T) {
	repo := &fakeRepository{}
	require.NoError(t, repo.Save(context.Background(), storedRun("run-1")))

	svc := NewSimulationQueryService(repo)

	dto, err := svc.GetRun(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, "run-1", dto.RunID)
	require.Len(t, dto.Results, 1)
	assert.Equal(t, "10.45", dto.Results[0].CallPrice)
	assert.Equal(t, int64(120), dto.Results[0].ElapsedMs)
}

func TestGetRun_NotFound(t *testing.T) {
	svc := NewSimulationQueryService(&fakeRepository{})

	dto, err := svc.GetRun(context.Background(), "missing")
	assert.Error(t, err)
	assert.Nil(t, dto)
}

func TestListRuns_DefaultLimit(t *testing.T) {
	repo := &fakeRepository{}
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Save(context.Background(), storedRun(string(rune('a'+i)))))
	}

	svc := NewSimulationQueryService(repo)

	dtos, err := svc.ListRuns(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, dtos, 3)
}

func TestGetReferencePrice(t *testing.T) {
	svc := NewSimulationQueryService(&fakeRepository{})

	params := domain.SimulationParameters{Paths: 1, Spot: 100, Strike: 100, RiskFreeRate: 0.05, Volatility: 0.2, Maturity: 1}
	dto, err := svc.GetReferencePrice(context.Background(), params)
	require.NoError(t, err)

	call, err := decimal.NewFromString(dto.CallPrice)
	require.NoError(t, err)
	put, err := decimal.NewFromString(dto.PutPrice)
	require.NoError(t, err)

	assert.InDelta(t, 10.4506, call.InexactFloat64(), 0.001)
	assert.InDelta(t, 5.5735, put.InexactFloat64(), 0.001)
}

func TestGetReferencePrice_ZeroVolatility(t *testing.T) {
	svc := NewSimulationQueryService(&fakeRepository{})

	// v=0 对模拟核心合法，但闭式参照必须明确拒绝
	params := domain.SimulationParameters{Paths: 1, Spot: 100, Strike: 100, RiskFreeRate: 0.05, Volatility: 0, Maturity: 1}
	dto, err := svc.GetReferencePrice(context.Background(), params)
	assert.Error(t, err)
	assert.Nil(t, dto)
}

func TestGetReferencePrice_InvalidParameters(t *testing.T) {
	svc := NewSimulationQueryService(&fakeRepository{})

	params := domain.SimulationParameters{Paths: 1, Spot: -100, Strike: 100, Volatility: 0.2, Maturity: 1}
	dto, err := svc.GetReferencePrice(context.Background(), params)
	assert.Error(t, err)
	assert.Nil(t, dto)
}
