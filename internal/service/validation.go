package service

import (
	"bytes"
	"settings-console/internal/domain"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// ParseJSONObject 解析文字為 JSON 物件；陣列、純量、null 都視為錯誤
func ParseJSONObject(text string) (map[string]any, error) {
	trimmed := strings.TrimSpace(text)
	var v any
	if err := json.Unmarshal([]byte(trimmed), &v); err != nil {
		return nil, err
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, errNotObject
	}
	return obj, nil
}

var errNotObject = invalid("value must be a JSON object")

// ParseRouteMatrix 解析路由矩陣文字，每個 entry 必須是 {webhook, telegram, systemLog}
func ParseRouteMatrix(text string) (domain.RouteMatrix, error) {
	if _, err := ParseJSONObject(text); err != nil {
		return nil, invalidField("routes", "Route matrix must be a JSON object")
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(strings.TrimSpace(text))))
	dec.DisallowUnknownFields()
	routes := domain.RouteMatrix{}
	if err := dec.Decode(&routes); err != nil {
		return nil, invalidField("routes", "Route matrix entries must be objects of webhook/telegram/systemLog booleans")
	}
	return routes, nil
}

// FormatRouteMatrix 轉成兩格縮排的 JSON (表單顯示用)
func FormatRouteMatrix(routes domain.RouteMatrix) string {
	if routes == nil {
		routes = domain.RouteMatrix{}
	}
	out, err := json.MarshalIndent(routes, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(out)
}

// ParseIntOr 無法解析 (含空字串) 時回傳 fallback
func ParseIntOr(text string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return fallback
	}
	return n
}
