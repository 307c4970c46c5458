// Package http 提供模拟服务的 HTTP 处理器
package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/montecarlo/internal/simulation/application"
	"github.com/wyfcoding/montecarlo/internal/simulation/domain"
	"github.com/wyfcoding/montecarlo/pkg/config"
	"github.com/wyfcoding/montecarlo/pkg/logger"
)

// SimulationHandler HTTP 处理器
// 负责处理模拟运行相关的 HTTP 请求
type SimulationHandler struct {
	manager  *application.SimulationManager
	query    *application.SimulationQueryService
	defaults config.SimulationConfig
}

// NewSimulationHandler 创建 HTTP 处理器实例
func NewSimulationHandler(manager *application.SimulationManager, query *application.SimulationQueryService, defaults config.SimulationConfig) *SimulationHandler {
	return &SimulationHandler{manager: manager, query: query, defaults: defaults}
}

// RegisterRoutes 注册路由
func (h *SimulationHandler) RegisterRoutes(r *gin.Engine) {
	v1 := r.Group("/api/v1/simulation")
	{
		v1.POST("/run", h.Run)
		v1.GET("/runs", h.ListRuns)
		v1.GET("/runs/:id", h.GetRun)
		v1.POST("/reference", h.Reference)
	}
}

// RunSimulationRequest 模拟运行请求
// 省略的字段使用服务配置中的默认值
type RunSimulationRequest struct {
	Paths        *int     `json:"number_of_paths"`
	Threads      *int     `json:"number_of_threads"`
	UseAffinity  *bool    `json:"thread_affinity"`
	Spot         *float64 `json:"underlying_price"`
	Strike       *float64 `json:"strike_price"`
	RiskFreeRate *float64 `json:"risk_free_rate"`
	Volatility   *float64 `json:"volatility"`
	Maturity     *float64 `json:"maturity"`
}

// toCommand 请求与配置默认值合并
func (req *RunSimulationRequest) toCommand(defaults config.SimulationConfig) application.RunSimulationCommand {
	cmd := application.RunSimulationCommand{
		Paths:        defaults.Paths,
		Threads:      defaults.Threads,
		UseAffinity:  defaults.UseAffinity,
		Spot:         defaults.Spot,
		Strike:       defaults.Strike,
		RiskFreeRate: defaults.RiskFreeRate,
		Volatility:   defaults.Volatility,
		Maturity:     defaults.Maturity,
	}
	if req.Paths != nil {
		cmd.Paths = *req.Paths
	}
	if req.Threads != nil {
		cmd.Threads = *req.Threads
	}
	if req.UseAffinity != nil {
		cmd.UseAffinity = *req.UseAffinity
	}
	if req.Spot != nil {
		cmd.Spot = *req.Spot
	}
	if req.Strike != nil {
		cmd.Strike = *req.Strike
	}
	if req.RiskFreeRate != nil {
		cmd.RiskFreeRate = *req.RiskFreeRate
	}
	if req.Volatility != nil {
		cmd.Volatility = *req.Volatility
	}
	if req.Maturity != nil {
		cmd.Maturity = *req.Maturity
	}
	return cmd
}

// Run 执行一次模拟运行
func (h *SimulationHandler) Run(c *gin.Context) {
	var req RunSimulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dto, err := h.manager.RunSimulation(c.Request.Context(), req.toCommand(h.defaults))
	if err != nil {
		logger.Error(c.Request.Context(), "simulation run failed", "error", err)
		// 参数错误归咎于调用方，其余（持久化等）是服务端故障
		status := http.StatusInternalServerError
		if errors.Is(err, application.ErrInvalidParameters) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto)
}

// GetRun 按运行 ID 查询
func (h *SimulationHandler) GetRun(c *gin.Context) {
	id := c.Param("id")
	dto, err := h.query.GetRun(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto)
}

// ListRuns 列出最近的运行
func (h *SimulationHandler) ListRuns(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	dtos, err := h.query.ListRuns(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dtos)
}

// ReferenceRequest Black-Scholes 参照价格请求
// 波动率不在绑定层校验：v=0 在领域校验中合法，
// 闭式公式对 v 的更严格约束由查询服务给出明确错误
type ReferenceRequest struct {
	Spot         float64 `json:"underlying_price" binding:"required"`
	Strike       float64 `json:"strike_price" binding:"required"`
	RiskFreeRate float64 `json:"risk_free_rate"`
	Volatility   float64 `json:"volatility"`
	Maturity     float64 `json:"maturity" binding:"required"`
}

// Reference 计算 Black-Scholes 闭式参照价格
func (h *SimulationHandler) Reference(c *gin.Context) {
	var req ReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	params := domain.SimulationParameters{
		// 闭式计算不消耗路径，这里只为复用参数校验
		Paths:        1,
		Spot:         req.Spot,
		Strike:       req.Strike,
		RiskFreeRate: req.RiskFreeRate,
		Volatility:   req.Volatility,
		Maturity:     req.Maturity,
	}
	dto, err := h.query.GetReferencePrice(c.Request.Context(), params)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto)
}
