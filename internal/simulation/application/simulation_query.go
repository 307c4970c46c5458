package application

import (
	"context"
	"fmt"

	"github.com/wyfcoding/montecarlo/internal/simulation/domain"
)

// SimulationQueryService 处理模拟运行相关的查询操作（Queries）
type SimulationQueryService struct {
	repo domain.SimulationRunRepository
}

// NewSimulationQueryService 构造函数
func NewSimulationQueryService(repo domain.SimulationRunRepository) *SimulationQueryService {
	return &SimulationQueryService{repo: repo}
}

// GetRun 按运行 ID 查询
func (s *SimulationQueryService) GetRun(ctx context.Context, runID string) (*SimulationRunDTO, error) {
	run, err := s.repo.Get(ctx, runID)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, fmt.Errorf("simulation run %s not found", runID)
	}
	return toRunDTO(run), nil
}

// ListRuns 列出最近的运行
func (s *SimulationQueryService) ListRuns(ctx context.Context, limit int) ([]*SimulationRunDTO, error) {
	if limit <= 0 {
		limit = 20
	}
	runs, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	dtos := make([]*SimulationRunDTO, 0, len(runs))
	for _, run := range runs {
		dtos = append(dtos, toRunDTO(run))
	}
	return dtos, nil
}

// ReferencePriceDTO Black-Scholes 闭式参照价格
type ReferencePriceDTO struct {
	CallPrice string `json:"call_price"`
	PutPrice  string `json:"put_price"`
	Delta     string `json:"delta"`
	Gamma     string `json:"gamma"`
	Theta     string `json:"theta"`
	Vega      string `json:"vega"`
	Rho       string `json:"rho"`
}

// GetReferencePrice 计算 Black-Scholes 闭式价格，作为蒙特卡洛结果的参照
func (s *SimulationQueryService) GetReferencePrice(ctx context.Context, params domain.SimulationParameters) (*ReferencePriceDTO, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}
	// 模拟核心接受 v=0，但闭式公式除以 v*sqrt(T)
	if params.Volatility <= 0 {
		return nil, fmt.Errorf("volatility must be positive for the closed-form reference, got %g", params.Volatility)
	}

	input := domain.BlackScholesInput{
		S: params.Spot,
		K: params.Strike,
		T: params.Maturity,
		R: params.RiskFreeRate,
		V: params.Volatility,
	}
	call := domain.CalculateBlackScholes(domain.OptionTypeCall, input)
	put := domain.CalculateBlackScholes(domain.OptionTypePut, input)

	return &ReferencePriceDTO{
		CallPrice: call.Price.String(),
		PutPrice:  put.Price.String(),
		Delta:     call.Delta.String(),
		Gamma:     call.Gamma.String(),
		Theta:     call.Theta.String(),
		Vega:      call.Vega.String(),
		Rho:       call.Rho.String(),
	}, nil
}
