package application

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/wyfcoding/montecarlo/internal/simulation/domain"
	"github.com/wyfcoding/montecarlo/pkg/logger"
	"github.com/wyfcoding/montecarlo/pkg/metrics"
	"github.com/wyfcoding/montecarlo/pkg/utils"
)

// ErrInvalidParameters 请求参数非法；调用方据此与内部错误区分
var ErrInvalidParameters = errors.New("invalid simulation parameters")

// SimulationManager 处理模拟运行相关的写入操作（Commands）
// 负责 worker 的创建、CPU 绑定、并发调度与结果收集
type SimulationManager struct {
	repo      domain.SimulationRunRepository
	publisher domain.ResultPublisher
	pinner    domain.CorePinner
	metrics   *metrics.Metrics
	idgen     *utils.SnowflakeID
}

// NewSimulationManager 构造函数
func NewSimulationManager(
	repo domain.SimulationRunRepository,
	publisher domain.ResultPublisher,
	pinner domain.CorePinner,
	m *metrics.Metrics,
) *SimulationManager {
	return &SimulationManager{
		repo:      repo,
		publisher: publisher,
		pinner:    pinner,
		metrics:   m,
		idgen:     utils.NewSnowflakeID(1),
	}
}

// RunSimulation 执行一次完整的模拟运行
// 每个 worker 在独立 goroutine 中运行，启动前锁定 OS 线程并按 worker_index mod numCPU
// 轮转绑定 CPU 核心（开启 affinity 时）；全部 worker 结束后才返回。
// 参数校验失败在任何 worker 启动之前返回错误；绑定失败仅记录并继续。
func (m *SimulationManager) RunSimulation(ctx context.Context, cmd RunSimulationCommand) (*SimulationRunDTO, error) {
	defer logger.LogDuration(ctx, "simulation run finished")()

	baseParams := domain.SimulationParameters{
		Paths:        cmd.Paths,
		Spot:         cmd.Spot,
		Strike:       cmd.Strike,
		RiskFreeRate: cmd.RiskFreeRate,
		Volatility:   cmd.Volatility,
		Maturity:     cmd.Maturity,
	}

	// 快速失败：所有校验在启动任何 worker 之前完成
	if err := baseParams.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidParameters, err)
	}
	if cmd.Threads <= 0 {
		return nil, fmt.Errorf("%w: threads must be positive, got %d", ErrInvalidParameters, cmd.Threads)
	}

	numCPU := runtime.NumCPU()
	logger.Info(ctx, "starting simulation run",
		"paths", cmd.Paths,
		"threads", cmd.Threads,
		"use_affinity", cmd.UseAffinity,
		"num_cpu", numCPU,
	)

	// 先构造全部 worker；任何一个熵种子失败则整个运行失败，此时尚未启动任何线程
	workers := make([]*domain.Worker, cmd.Threads)
	for i := 0; i < cmd.Threads; i++ {
		// 每个 worker 的标的价格按线程序号扰动，使各线程定价经济上不同的场景
		params := baseParams.WithSpot(baseParams.Spot + float64(i))
		coreID := -1
		if cmd.UseAffinity {
			coreID = domain.CoreFor(i, numCPU)
		}
		w, err := domain.NewWorker(i, coreID, params)
		if err != nil {
			return nil, fmt.Errorf("failed to construct worker %d: %w", i, err)
		}
		workers[i] = w
	}

	run := &domain.SimulationRun{
		RunID:       fmt.Sprintf("%d", m.idgen.Generate()),
		Paths:       cmd.Paths,
		Threads:     cmd.Threads,
		UseAffinity: cmd.UseAffinity,
		Parameters:  baseParams,
		Status:      domain.RunStatusRunning,
		StartedAt:   time.Now(),
	}

	// worker 间不共享任何可变状态，结果按序号写入各自的槽位
	results := make([]domain.PricingResult, cmd.Threads)
	var wg sync.WaitGroup
	wg.Add(cmd.Threads)

	for _, w := range workers {
		go func(w *domain.Worker) {
			defer wg.Done()

			if m.metrics != nil {
				m.metrics.WorkersActive.Inc()
				defer m.metrics.WorkersActive.Dec()
			}

			if cmd.UseAffinity {
				if err := m.pinner.Pin(w.CoreID); err != nil {
					// 绑定失败不致命，该 worker 以未绑定状态继续
					logger.Warn(ctx, "failed to pin worker to core, continuing unpinned",
						"worker", w.Index,
						"core", w.CoreID,
						"error", err,
					)
					if m.metrics != nil {
						m.metrics.AffinityFailuresTotal.Inc()
					}
					w.CoreID = -1
				} else {
					defer func() {
						if err := m.pinner.Unpin(); err != nil {
							logger.Warn(ctx, "failed to unpin worker", "worker", w.Index, "error", err)
						}
					}()
				}
			}

			result := w.Run()
			results[w.Index] = result

			logger.Debug(ctx, "worker finished",
				"worker", w.Index,
				"core", result.CoreID,
				"paths", result.Parameters.Paths,
				"call", result.CallPrice.String(),
				"put", result.PutPrice.String(),
				"elapsed", result.Elapsed,
			)
		}(w)
	}

	// 等待全部 worker 结束；worker 间的完成顺序不做任何保证
	wg.Wait()

	run.Results = results
	run.Status = domain.RunStatusCompleted
	run.CompletedAt = time.Now()

	if m.metrics != nil {
		m.metrics.SimulationsTotal.Inc()
		m.metrics.SimulationDuration.Observe(run.CompletedAt.Sub(run.StartedAt).Seconds())
		// call 与 put 各消耗一组独立路径
		m.metrics.PathsSimulatedTotal.Add(float64(cmd.Paths) * float64(cmd.Threads) * 2)
	}

	if m.repo != nil {
		if err := m.repo.Save(ctx, run); err != nil {
			logger.Error(ctx, "failed to persist simulation run", "run_id", run.RunID, "error", err)
			return nil, err
		}
	}

	if m.publisher != nil {
		if err := m.publisher.PublishCompleted(ctx, toCompletedEvent(run)); err != nil {
			// 发布失败不影响已完成的计算结果
			logger.Error(ctx, "failed to publish simulation completed event", "run_id", run.RunID, "error", err)
		}
	}

	return toRunDTO(run), nil
}

// toCompletedEvent 构造模拟完成事件
func toCompletedEvent(run *domain.SimulationRun) domain.SimulationCompletedEvent {
	event := domain.SimulationCompletedEvent{
		RunID:       run.RunID,
		Paths:       run.Paths,
		Threads:     run.Threads,
		UseAffinity: run.UseAffinity,
		StartedAt:   run.StartedAt,
		CompletedAt: run.CompletedAt,
		OccurredOn:  time.Now(),
	}
	for _, r := range run.Results {
		event.Results = append(event.Results, domain.WorkerResultEvent{
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
		})
	}
	return event
}
