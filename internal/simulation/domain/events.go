package domain

import "time"

// 事件类型常量，同时作为 Kafka topic 名称
const (
	SimulationCompletedEventType = "simulation.completed"
)

// WorkerResultEvent 单个 worker 的结果载荷
// 字段与原始 CSV 摘要保持一致：路径数、S、K、r、v、T、call、put
type WorkerResultEvent struct {
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
}

// SimulationCompletedEvent 模拟完成事件
type SimulationCompletedEvent struct {
	RunID       string              `json:"run_id"`
	Paths       int                 `json:"paths"`
	Threads     int                 `json:"threads"`
	UseAffinity bool                `json:"use_affinity"`
	Results     []WorkerResultEvent `json:"results"`
	StartedAt   time.Time           `json:"started_at"`
	CompletedAt time.Time           `json:"completed_at"`
	OccurredOn  time.Time           `json:"occurred_on"`
}
