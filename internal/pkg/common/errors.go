package common

import (
	"errors"
	"net/http"
)

// ErrorResponse 定義 API 錯誤響應結構
type ErrorResponse struct {
	Code    string `json:"code"`              // 錯誤代碼
	Message string `json:"message"`           // 錯誤信息
	Details string `json:"details,omitempty"` // 詳細信息（僅在開發模式顯示）
}

// CustomError 定義自定義錯誤類型
type CustomError struct {
	Code    string // 錯誤代碼
	Message string // 錯誤信息
	Err     error  // 原始錯誤
	Status  int    // HTTP 狀態碼
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// Wrap 以原始錯誤建立副本，保留代碼與狀態碼
func (e *CustomError) Wrap(err error) *CustomError {
	return &CustomError{Code: e.Code, Message: e.Message, Status: e.Status, Err: err}
}

// Response 轉換為 API 錯誤響應；withDetails 為 true 時附上原始錯誤
func (e *CustomError) Response(withDetails bool) ErrorResponse {
	resp := ErrorResponse{Code: e.Code, Message: e.Message}
	if withDetails && e.Err != nil {
		resp.Details = e.Err.Error()
	}
	return resp
}

// NewError 創建新的自定義錯誤
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// ValidationError 表示使用者輸入錯誤
type ValidationError struct {
	message string
}

// Error 實現 error 介面
func (e *ValidationError) Error() string {
	return e.message
}

// NewValidationError 創建新的驗證錯誤
func NewValidationError(message string) error {
	return &ValidationError{
		message: message,
	}
}

// IsValidationError 檢查是否為驗證錯誤
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// 預定義錯誤代碼
const (
	// 客戶端錯誤 (4xx)
	ErrCodeInvalidRequest   = "INVALID_REQUEST"   // 400
	ErrCodeEmptyIngredients = "EMPTY_INGREDIENTS" // 400
	ErrCodeNotFound         = "NOT_FOUND"         // 404
	ErrCodeTooManyRequests  = "TOO_MANY_REQUESTS" // 429
	ErrCodeRequestTooLarge  = "REQUEST_TOO_LARGE" // 413

	// 服務器錯誤 (5xx)
	ErrCodeInternalError  = "INTERNAL_ERROR"   // 500
	ErrCodeAIService      = "AI_SERVICE_ERROR" // 503
	ErrCodeGatewayTimeout = "REQUEST_TIMEOUT"  // 504
)

// ErrEmptyIngredients 食材輸入為空
var ErrEmptyIngredients = NewValidationError("Please enter at least one ingredient.")

// 預定義錯誤
var (
	ErrInvalidRequest  = NewError(ErrCodeInvalidRequest, "Invalid request", http.StatusBadRequest, nil)
	ErrNoIngredients   = NewError(ErrCodeEmptyIngredients, ErrEmptyIngredients.Error(), http.StatusBadRequest, nil)
	ErrNotFound        = NewError(ErrCodeNotFound, "Resource not found", http.StatusNotFound, nil)
	ErrTooManyRequests = NewError(ErrCodeTooManyRequests, "Too many requests", http.StatusTooManyRequests, nil)
	ErrRequestTooLarge = NewError(ErrCodeRequestTooLarge, "Request body too large", http.StatusRequestEntityTooLarge, nil)

	ErrInternalError  = NewError(ErrCodeInternalError, "Internal server error", http.StatusInternalServerError, nil)
	ErrAIServiceError = NewError(ErrCodeAIService, "Recipe generation failed", http.StatusServiceUnavailable, nil)
	ErrGatewayTimeout = NewError(ErrCodeGatewayTimeout, "Request timeout", http.StatusGatewayTimeout, nil)
)
