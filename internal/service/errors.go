package service

import (
	"errors"
	"settings-console/internal/apiclient"
	"sort"
	"strings"
)

var ErrRateLimited = errors.New("too many test notifications, wait a moment and try again")

// ValidationError 送出前的本地驗證失敗，Fields 為欄位層級訊息
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Field 回傳欄位錯誤 (模板用)
func (e *ValidationError) Field(name string) string {
	if e == nil {
		return ""
	}
	return e.Fields[name]
}

func invalid(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func invalidField(field, message string) *ValidationError {
	return &ValidationError{Message: message, Fields: map[string]string{field: message}}
}

// Message 取出給使用者看的錯誤訊息：本地驗證訊息、伺服器訊息，否則 fallback
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Error()
	}
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, ErrRateLimited) {
		return ErrRateLimited.Error()
	}
	return fallback
}
