package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CorePinner 把当前 worker 绑定到指定 CPU 核心的能力接口
// 平台不支持或绑定失败属于可恢复情况，worker 继续以未绑定状态运行
type CorePinner interface {
	// Pin 把调用方所在的执行线程绑定到 coreID
	Pin(coreID int) error
	// Unpin 解除绑定，恢复默认调度
	Unpin() error
}

// CoreFor 计算 worker 的 CPU 核心分配
// 取模回绕是有意的轮转分配：worker 数超过核心数时多个 worker 共享一个核心
func CoreFor(workerIndex, numCPU int) int {
	return workerIndex % numCPU
}

// Worker 一个模拟执行单元
// 独占一个 GaussianSource，对同一组参数先后计算 call 与 put；
// 随机源在两次定价之间持续演化，因此 put 基于与 call 不同的独立路径集合
type Worker struct {
	Index      int
	CoreID     int
	Parameters SimulationParameters
	Source     *GaussianSource
}

// NewWorker 创建 worker，熵种子取自 crypto/rand
func NewWorker(index, coreID int, params SimulationParameters) (*Worker, error) {
	src, err := NewGaussianSource()
	if err != nil {
		return nil, err
	}
	return &Worker{
		Index:      index,
		CoreID:     coreID,
		Parameters: params,
		Source:     src,
	}, nil
}

// Run 执行一次完整模拟，返回包含 call/put 价格的结果
func (w *Worker) Run() PricingResult {
	start := time.Now()

	call := PriceCall(w.Parameters, w.Source)
	put := PricePut(w.Parameters, w.Source)

	return PricingResult{
		WorkerIndex: w.Index,
		CoreID:      w.CoreID,
		Parameters:  w.Parameters,
		CallPrice:   decimal.NewFromFloat(call),
		PutPrice:    decimal.NewFromFloat(put),
		Elapsed:     time.Since(start),
	}
}
