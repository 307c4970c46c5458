package application

import (
	"time"

	"github.com/wyfcoding/montecarlo/internal/simulation/domain"
)

// RunSimulationCommand 启动一次模拟运行的命令
// 字段已与配置默认值合并，全部为最终生效值
type RunSimulationCommand struct {
	// 每个 worker 的模拟路径数
	Paths int
	// worker 线程数
	Threads int
	// 是否绑定 CPU 核心
	UseAffinity bool
	// 基准标的价格；第 i 个 worker 使用 Spot+i
	Spot float64
	// 执行价格
	Strike float64
	// 无风险利率
	RiskFreeRate float64
	// 波动率
	Volatility float64
	// 到期时间（年）
	Maturity float64
}

// WorkerResultDTO 单个 worker 的结果
type WorkerResultDTO struct {
	WorkerIndex  int     `json:"worker_index"`
	CoreID       int     `json:"core_id"`
	Paths        int     `json:"paths"`
	Spot         float64 `json:"spot"`
	Strike       float64 `json:"strike"`
	RiskFreeRate float64 `json:"risk_free_rate"`
	Volatility   float64 `json:"volatility"`
	Maturity     float64 `json:"maturity"`
	CallPrice    string  `json:"call_price"`
	PutPrice     string  `json:"put_price"`
	ElapsedMs    int64   `json:"elapsed_ms"`
}

// SimulationRunDTO 一次模拟运行
type SimulationRunDTO struct {
	RunID       string            `json:"run_id"`
	Paths       int               `json:"paths"`
	Threads     int               `json:"threads"`
	UseAffinity bool              `json:"use_affinity"`
	Status      string            `json:"status"`
	Results     []WorkerResultDTO `json:"results"`
	StartedAt   time.Time         `json:"started_at"`
	CompletedAt time.Time         `json:"completed_at"`
}

// toRunDTO 领域聚合转 DTO
func toRunDTO(run *domain.SimulationRun) *SimulationRunDTO {
	dto := &SimulationRunDTO{
		RunID:       run.RunID,
		Paths:       run.Paths,
		Threads:     run.Threads,
		UseAffinity: run.UseAffinity,
		Status:      string(run.Status),
		StartedAt:   run.StartedAt,
		CompletedAt: run.CompletedAt,
	}
	for _, r := range run.Results {
		dto.Results = append(dto.Results, WorkerResultDTO{
			WorkerIndex:  r.WorkerIndex,
			CoreID:       r.CoreID,
			Paths:        r.Parameters.Paths,
			Spot:         r.Parameters.Spot,
			Strike:       r.Parameters.Strike,
			RiskFreeRate: r.Parameters.RiskFreeRate,
			Volatility:   r.Parameters.Volatility,
			Maturity:     r.Parameters.Maturity,
			CallPrice:    r.CallPrice.String(),
			PutPrice:     r.PutPrice.String(),
			ElapsedMs:    r.Elapsed.Milliseconds(),
		})
	}
	return dto
}
