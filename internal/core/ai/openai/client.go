package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gastroguide/internal/core/ai/provider"
	"gastroguide/internal/infrastructure/config"
	"gastroguide/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const chatCompletionsPath = "/chat/completions"

// 錯誤
var (
	ErrEmptyChoices = errors.New("no choices in completion response")
)

// Client OpenAI 相容的 chat completions 客戶端
type Client struct {
	config *config.OpenAIConfig
	client *resty.Client
}

var _ provider.Provider = (*Client)(nil)

// chatRequest 請求本體
type chatRequest struct {
	Model       string             `json:"model"`
	Messages    []provider.Message `json:"messages"`
	Temperature float64            `json:"temperature"`
	MaxTokens   int                `json:"max_tokens,omitempty"`
}

// chatResponse 回應本體
type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index   int              `json:"index"`
		Message provider.Message `json:"message"`
	} `json:"choices"`
	Usage provider.Usage `json:"usage"`
}

// apiError 表示 API 錯誤
type apiError struct {
	Error struct {
		Message string      `json:"message"`
		Type    string      `json:"type"`
		Code    interface{} `json:"code"`
	} `json:"error"`
}

// NewClient 創建新的客戶端
func NewClient(cfg *config.OpenAIConfig) *Client {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(cfg.Timeout)

	return &Client{
		config: cfg,
		client: client,
	}
}

// Generate 發送提示詞並回傳第一個選項的內容。失敗不重試。
func (c *Client) Generate(ctx context.Context, req *provider.Request) (*provider.Response, error) {
	if req == nil || len(req.Messages) == 0 {
		return nil, fmt.Errorf("completion request has no messages")
	}

	body := chatRequest{
		Model:       req.Model,
		Messages:    req.Messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if body.Model == "" {
		body.Model = c.config.Model
	}
	if body.MaxTokens == 0 {
		body.MaxTokens = c.config.MaxTokens
	}

	common.LogDebug("Sending request to completion service",
		zap.String("model", body.Model),
		zap.Int("messages", len(body.Messages)),
		zap.Float64("temperature", body.Temperature),
	)

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(body).
		Post(chatCompletionsPath)
	if err != nil {
		common.LogError("Failed to send request to completion service",
			zap.Error(err),
			zap.String("model", body.Model),
		)
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	if resp.IsError() {
		msg := resp.String()
		var apiErr apiError
		if common.ParseJSONBytes(resp.Body(), &apiErr) == nil && apiErr.Error.Message != "" {
			msg = apiErr.Error.Message
		}
		common.LogError("Completion service returned error status",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("model", body.Model),
			zap.String("response", msg),
		)
		return nil, fmt.Errorf("completion service error (status %d): %s", resp.StatusCode(), msg)
	}

	var result chatResponse
	if err := common.ParseJSONBytes(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if len(result.Choices) == 0 {
		return nil, ErrEmptyChoices
	}

	// 第一個選項的內容原樣回傳，空字串也一樣
	content := result.Choices[0].Message.Content

	model := result.Model
	if model == "" {
		model = body.Model
	}

	return &provider.Response{
		Content: content,
		Model:   model,
		Usage:   result.Usage,
	}, nil
}

// GetModel 獲取當前使用的模型名稱
func (c *Client) GetModel() string {
	return c.config.Model
}

// GetTimeout 獲取請求超時時間
func (c *Client) GetTimeout() time.Duration {
	return c.config.Timeout
}

// Close 關閉客戶端
func (c *Client) Close() error {
	c.client.GetClient().CloseIdleConnections()
	return nil
}
