// Package mysql 提供了模拟运行仓储接口的 MySQL GORM 实现。
package mysql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/montecarlo/internal/simulation/domain"
	"github.com/wyfcoding/montecarlo/pkg/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SimulationRunModel 模拟运行数据库模型
type SimulationRunModel struct {
	gorm.Model
	RunID        string  `gorm:"column:run_id;type:varchar(32);uniqueIndex;not null"`
	Paths        int     `gorm:"column:paths;type:int;not null"`
	Threads      int     `gorm:"column:threads;type:int;not null"`
	UseAffinity  bool    `gorm:"column:use_affinity;type:tinyint(1);default:0"`
	Spot         float64 `gorm:"column:spot;type:double;not null"`
	Strike       float64 `gorm:"column:strike;type:double;not null"`
	RiskFreeRate float64 `gorm:"column:risk_free_rate;type:double;not null"`
	Volatility   float64 `gorm:"column:volatility;type:double;not null"`
	Maturity     float64 `gorm:"column:maturity;type:double;not null"`
	Status       string  `gorm:"column:status;type:varchar(20);default:'RUNNING'"`
	StartedAt    int64   `gorm:"column:started_at;type:bigint"`
	CompletedAt  int64   `gorm:"column:completed_at;type:bigint"`
}

func (SimulationRunModel) TableName() string { return "simulation_runs" }

// WorkerResultModel worker 结果数据库模型
type WorkerResultModel struct {
	gorm.Model
	RunID        string  `gorm:"column:run_id;type:varchar(32);index;not null"`
	WorkerIndex  int     `gorm:"column:worker_index;type:int;not null"`
	CoreID       int     `gorm:"column:core_id;type:int;default:-1"`
	Paths        int     `gorm:"column:paths;type:int;not null"`
	Spot         float64 `gorm:"column:spot;type:double;not null"`
	Strike       float64 `gorm:"column:strike;type:double;not null"`
	RiskFreeRate float64 `gorm:"column:risk_free_rate;type:double;not null"`
	Volatility   float64 `gorm:"column:volatility;type:double;not null"`
	Maturity     float64 `gorm:"column:maturity;type:double;not null"`
	CallPrice    string  `gorm:"column:call_price;type:decimal(20,8);not null"`
	PutPrice     string  `gorm:"column:put_price;type:decimal(20,8);not null"`
	ElapsedMs    int64   `gorm:"column:elapsed_ms;type:bigint"`
}

func (WorkerResultModel) TableName() string { return "simulation_worker_results" }

// simulationRunRepositoryImpl 模拟运行仓储实现
type simulationRunRepositoryImpl struct {
	db *db.DB
}

// NewSimulationRunRepository 创建模拟运行仓储实例
func NewSimulationRunRepository(database *db.DB) domain.SimulationRunRepository {
	return &simulationRunRepositoryImpl{db: database}
}

func (r *simulationRunRepositoryImpl) Save(ctx context.Context, run *domain.SimulationRun) error {
	m := &SimulationRunModel{
		RunID:        run.RunID,
		Paths:        run.Paths,
		Threads:      run.Threads,
		UseAffinity:  run.UseAffinity,
		Spot:         run.Parameters.Spot,
		Strike:       run.Parameters.Strike,
		RiskFreeRate: run.Parameters.RiskFreeRate,
		Volatility:   run.Parameters.Volatility,
		Maturity:     run.Parameters.Maturity,
		Status:       string(run.Status),
		StartedAt:    run.StartedAt.UnixMilli(),
		CompletedAt:  run.CompletedAt.UnixMilli(),
	}

	resultRows := make([]WorkerResultModel, 0, len(run.Results))
	for _, res := range run.Results {
		resultRows = append(resultRows, WorkerResultModel{
			RunID:        run.RunID,
			WorkerIndex:  res.WorkerIndex,
			CoreID:       res.CoreID,
			Paths:        res.Parameters.Paths,
			Spot:         res.Parameters.Spot,
			Strike:       res.Parameters.Strike,
			RiskFreeRate: res.Parameters.RiskFreeRate,
			Volatility:   res.Parameters.Volatility,
			Maturity:     res.Parameters.Maturity,
			CallPrice:    res.CallPrice.String(),
			PutPrice:     res.PutPrice.String(),
			ElapsedMs:    res.Elapsed.Milliseconds(),
		})
	}

	return r.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "run_id"}},
			UpdateAll: true,
		}).Create(m).Error; err != nil {
			return err
		}
		if len(resultRows) == 0 {
			return nil
		}
		return tx.CreateInBatches(resultRows, 100).Error
	})
}

func (r *simulationRunRepositoryImpl) Get(ctx context.Context, runID string) (*domain.SimulationRun, error) {
	var m SimulationRunModel
	if err := r.db.WithContext(ctx).Where("run_id = ?", runID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var resultRows []WorkerResultModel
	if err := r.db.WithContext(ctx).
		Where("run_id = ?", runID).
		Order("worker_index asc").
		Find(&resultRows).Error; err != nil {
		return nil, err
	}

	return r.toDomain(&m, resultRows)
}

func (r *simulationRunRepositoryImpl) List(ctx context.Context, limit int) ([]*domain.SimulationRun, error) {
	var models []SimulationRunModel
	if err := r.db.WithContext(ctx).
		Order("started_at desc").
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, err
	}

	runs := make([]*domain.SimulationRun, 0, len(models))
	for i := range models {
		// 列表查询不展开每个 worker 的结果行
		run, err := r.toDomain(&models[i], nil)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}

func (r *simulationRunRepositoryImpl) toDomain(m *SimulationRunModel, resultRows []WorkerResultModel) (*domain.SimulationRun, error) {
	run := &domain.SimulationRun{
		ID:          m.ID,
		RunID:       m.RunID,
		Paths:       m.Paths,
		Threads:     m.Threads,
		UseAffinity: m.UseAffinity,
		Parameters: domain.SimulationParameters{
			Paths:        m.Paths,
			Spot:         m.Spot,
			Strike:       m.Strike,
			RiskFreeRate: m.RiskFreeRate,
			Volatility:   m.Volatility,
			Maturity:     m.Maturity,
		},
		Status:      domain.RunStatus(m.Status),
		StartedAt:   time.UnixMilli(m.StartedAt),
		CompletedAt: time.UnixMilli(m.CompletedAt),
	}

	for _, row := range resultRows {
		callPrice, putPrice, err := parsePrices(row.CallPrice, row.PutPrice)
		if err != nil {
			return nil, fmt.Errorf("corrupt price row for run %s worker %d: %w", m.RunID, row.WorkerIndex, err)
		}
		run.Results = append(run.Results, domain.PricingResult{
			WorkerIndex: row.WorkerIndex,
			CoreID:      row.CoreID,
			Parameters: domain.SimulationParameters{
				Paths:        row.Paths,
				Spot:         row.Spot,
				Strike:       row.Strike,
				RiskFreeRate: row.RiskFreeRate,
				Volatility:   row.Volatility,
				Maturity:     row.Maturity,
			},
			CallPrice: callPrice,
			PutPrice:  putPrice,
			Elapsed:   time.Duration(row.ElapsedMs) * time.Millisecond,
		})
	}

	return run, nil
}

// parsePrices 解析持久化的 decimal 价格列
// 解析失败说明行已损坏，向上返回错误而不是静默产出零价格
func parsePrices(callPrice, putPrice string) (decimal.Decimal, decimal.Decimal, error) {
	call, err := decimal.NewFromString(callPrice)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("invalid call price %q: %w", callPrice, err)
	}
	put, err := decimal.NewFromString(putPrice)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("invalid put price %q: %w", putPrice, err)
	}
	return call, put, nil
}
