package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// OptionType 期权类型
type OptionType string

const (
	OptionTypeCall OptionType = "CALL" // 看涨期权
	OptionTypePut  OptionType = "PUT"  // 看跌期权
)

// RunStatus 模拟运行状态
type RunStatus string

const (
	RunStatusRunning   RunStatus = "RUNNING"
	RunStatusCompleted RunStatus = "COMPLETED"
	RunStatusFailed    RunStatus = "FAILED"
)

// PricingResult 单个 worker 的定价结果
// 创建后不可变，连同产生它的输入参数一起交给下游
type PricingResult struct {
	// 产生该结果的 worker 序号
	WorkerIndex int `json:"worker_index"`
	// 绑定的 CPU 核心，未绑定时为 -1
	CoreID int `json:"core_id"`
	// 输入参数
	Parameters SimulationParameters `json:"parameters"`
	// 看涨期权价格
	CallPrice decimal.Decimal `json:"call_price"`
	// 看跌期权价格
	PutPrice decimal.Decimal `json:"put_price"`
	// 计算耗时
	Elapsed time.Duration `json:"elapsed"`
}

// SimulationRun 一次完整的模拟运行聚合
type SimulationRun struct {
	ID          uint            `json:"id"`
	RunID       string          `json:"run_id"`
	Paths       int             `json:"paths"`
	Threads     int             `json:"threads"`
	UseAffinity bool            `json:"use_affinity"`
	Parameters  SimulationParameters `json:"parameters"`
	Status      RunStatus       `json:"status"`
	Results     []PricingResult `json:"results"`
	StartedAt   time.Time       `json:"started_at"`
	CompletedAt time.Time       `json:"completed_at"`
}

// SimulationRunRepository 模拟运行仓储接口
type SimulationRunRepository interface {
	// Save 保存运行及其全部结果
	Save(ctx context.Context, run *SimulationRun) error
	// Get 按运行 ID 查询，未找到时返回 (nil, nil)
	Get(ctx context.Context, runID string) (*SimulationRun, error)
	// List 按开始时间倒序列出最近的运行
	List(ctx context.Context, limit int) ([]*SimulationRun, error)
}

// ResultPublisher 结果事件发布接口
type ResultPublisher interface {
	// PublishCompleted 发布模拟完成事件
	PublishCompleted(ctx context.Context, event SimulationCompletedEvent) error
}
