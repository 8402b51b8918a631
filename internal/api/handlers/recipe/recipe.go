package recipe

import (
	"context"
	"errors"
	"net/http"
	"time"

	"gastroguide/internal/api/middleware"
	recipeCore "gastroguide/internal/core/recipe"
	"gastroguide/internal/core/session"
	"gastroguide/internal/infrastructure/monitoring"
	"gastroguide/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GenerateRequest 生成食譜請求
type GenerateRequest struct {
	Ingredients  string `json:"ingredients"`                              // 逗號分隔的食材
	Mode         string `json:"mode" binding:"omitempty,recipe_mode"`     // 模式，預設 Quick
	Style        string `json:"style" binding:"omitempty,recipe_style"`   // 風格，預設 Home-style
	Servings     int    `json:"servings" binding:"omitempty,min=1,max=8"` // 份量，預設 2
	ShowAnalysis bool   `json:"show_analysis"`                            // 是否附上分析
}

// GenerateResponse 生成食譜響應
type GenerateResponse struct {
	RecipeMD string               `json:"recipe_md"`
	Analysis *recipeCore.Analysis `json:"analysis,omitempty"`
	Prompt   string               `json:"prompt,omitempty"` // 僅在除錯模式輸出
}

// AnalyzeRequest 只做食材分析
type AnalyzeRequest struct {
	Ingredients string `json:"ingredients"`
}

// LastRecipeResponse 會話中最後一次生成的食譜
type LastRecipeResponse struct {
	RecipeMD  string               `json:"recipe_md"`
	Analysis  *recipeCore.Analysis `json:"analysis,omitempty"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// OptionsResponse 介面可選值
type OptionsResponse struct {
	Modes           []recipeCore.Mode  `json:"modes"`
	Styles          []recipeCore.Style `json:"styles"`
	MinServings     int                `json:"min_servings"`
	MaxServings     int                `json:"max_servings"`
	DefaultServings int                `json:"default_servings"`
}

// Handler 食譜處理器
type Handler struct {
	service  *recipeCore.Service
	sessions session.Store
	metrics  *monitoring.Metrics
	debug    bool
}

// NewHandler 創建食譜處理器；metrics 可為 nil
func NewHandler(service *recipeCore.Service, sessions session.Store, metrics *monitoring.Metrics, debug bool) *Handler {
	return &Handler{
		service:  service,
		sessions: sessions,
		metrics:  metrics,
		debug:    debug,
	}
}

// HandleGenerate 依食材與偏好生成食譜
func (h *Handler) HandleGenerate(c *gin.Context) {
	requestID := requestid.Get(c)

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		h.metrics.RecordGeneration("", monitoring.OutcomeInvalidInput)
		common.AbortWithError(c, common.ErrInvalidRequest.Wrap(errors.New(describeBindError(err))), true)
		return
	}

	common.LogInfo("開始處理食譜生成請求",
		zap.String("request_id", requestID),
		zap.String("mode", req.Mode),
		zap.String("style", req.Style),
		zap.Int("servings", req.Servings),
	)

	start := time.Now()
	result, err := h.service.Generate(c.Request.Context(), recipeCore.GenerateInput{
		Ingredients: req.Ingredients,
		Mode:        req.Mode,
		Style:       req.Style,
		Servings:    req.Servings,
	})
	if err != nil {
		if common.IsValidationError(err) {
			h.metrics.RecordGeneration("", monitoring.OutcomeEmptyInput)
			common.AbortWithError(c, common.ErrNoIngredients, false)
			return
		}

		h.metrics.ObserveCompletion(time.Since(start), err)
		h.metrics.RecordGeneration("", monitoring.OutcomeUpstreamFail)
		common.LogError("食譜生成失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		if errors.Is(err, context.DeadlineExceeded) {
			common.AbortWithError(c, common.ErrGatewayTimeout.Wrap(err), h.debug)
			return
		}
		common.AbortWithError(c, common.ErrAIServiceError.Wrap(err), h.debug)
		return
	}

	h.metrics.ObserveCompletion(result.Duration, nil)
	h.metrics.RecordGeneration(string(result.Analysis.DishType), monitoring.OutcomeSuccess)

	// 儲存失敗不影響本次回應；分析只在請求要求時保存
	sess := &session.Session{
		ID:         middleware.SessionID(c),
		LastRecipe: result.Recipe,
		UpdatedAt:  time.Now(),
	}
	if req.ShowAnalysis {
		sess.Analysis = &result.Analysis
	}
	if err := h.sessions.Save(c.Request.Context(), sess); err != nil {
		common.LogWarn("會話儲存失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
			zap.String("session_id", sess.ID),
		)
	}

	common.LogInfo("食譜生成成功",
		zap.String("request_id", requestID),
		zap.String("dish_type", string(result.Analysis.DishType)),
		zap.Duration("duration", result.Duration),
	)

	resp := GenerateResponse{RecipeMD: result.Recipe}
	if req.ShowAnalysis {
		resp.Analysis = &result.Analysis
	}
	if h.debug {
		resp.Prompt = result.Prompt
	}
	c.JSON(http.StatusOK, resp)
}

// HandleAnalyze 只回傳食材分析，不呼叫生成服務
func (h *Handler) HandleAnalyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.AbortWithError(c, common.ErrInvalidRequest.Wrap(errors.New(describeBindError(err))), true)
		return
	}

	analysis, _, err := recipeCore.Prepare(recipeCore.GenerateInput{Ingredients: req.Ingredients})
	if err != nil {
		common.AbortWithError(c, common.ErrNoIngredients, false)
		return
	}

	c.JSON(http.StatusOK, analysis)
}

// HandleLast 回傳會話中最後一次生成的食譜
func (h *Handler) HandleLast(c *gin.Context) {
	sess, err := h.sessions.Get(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			common.AbortWithError(c, common.ErrNotFound, false)
			return
		}
		common.LogError("會話讀取失敗",
			zap.Error(err),
			zap.String("request_id", requestid.Get(c)),
		)
		common.AbortWithError(c, common.ErrInternalError.Wrap(err), h.debug)
		return
	}

	c.JSON(http.StatusOK, LastRecipeResponse{
		RecipeMD:  sess.LastRecipe,
		Analysis:  sess.Analysis,
		UpdatedAt: sess.UpdatedAt,
	})
}

// HandleOptions 回傳可選的模式、風格與份量範圍
func (h *Handler) HandleOptions(c *gin.Context) {
	c.JSON(http.StatusOK, OptionsResponse{
		Modes:           recipeCore.Modes,
		Styles:          recipeCore.Styles,
		MinServings:     recipeCore.MinServings,
		MaxServings:     recipeCore.MaxServings,
		DefaultServings: recipeCore.DefaultServings,
	})
}
