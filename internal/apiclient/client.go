package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBaseURL 指向本地运行的计划服务
	DefaultBaseURL = "http://127.0.0.1:8000/api"
	// FallbackMessage 在服务端未返回可读错误时使用
	FallbackMessage = "请求失败"

	maxResponseBytes = 4 << 20
)

// HTTPDoer 抽象出 *http.Client，便于在测试中替换
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// APIError 表示服务端返回了非 2xx 状态
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// StatusOf 返回错误链中 APIError 的状态码，不存在时返回 0
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// Client 封装了对计划服务 REST 接口的调用，每次调用只尝试一次
type Client struct {
	http    HTTPDoer
	baseURL string
}

// New 构造 Client；timeout 为 0 时不设置请求超时
func New(baseURL string, timeout time.Duration) *Client {
	c := &Client{http: &http.Client{Timeout: timeout}}
	c.SetBaseURL(baseURL)
	return c
}

// SetHTTPClient 覆盖默认 HTTP 客户端，主要用于测试。
func (c *Client) SetHTTPClient(client HTTPDoer) {
	if client == nil {
		c.http = &http.Client{}
		return
	}
	c.http = client
}

// SetBaseURL 设置接口根地址，空值回退到 DefaultBaseURL
func (c *Client) SetBaseURL(base string) {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	c.baseURL = base
}

// BaseURL 返回当前接口根地址
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) request(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("构造请求失败: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("创建请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "lifesteward-web/1.0")

	client := c.http
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		log.Printf("[API] %s %s failed: %v", method, path, err)
		return fmt.Errorf("请求 %s 失败: %w", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		log.Printf("[API] %s %s read body: %v", method, path, err)
		return fmt.Errorf("读取 %s 响应失败: %w", path, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: extractMessage(respBody)}
		log.Printf("[API] %s %s status=%d: %s", method, path, resp.StatusCode, apiErr.Message)
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		log.Printf("[API] %s %s decode: %v", method, path, err)
		return fmt.Errorf("解析 %s 响应失败: %w", path, err)
	}
	return nil
}

// extractMessage 依次尝试 detail / message / error 字段
func extractMessage(body []byte) string {
	var payload struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
		Error   string          `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return FallbackMessage
	}

	if len(payload.Detail) > 0 {
		var detail string
		if err := json.Unmarshal(payload.Detail, &detail); err == nil && strings.TrimSpace(detail) != "" {
			return strings.TrimSpace(detail)
		}
		var items []struct {
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(payload.Detail, &items); err == nil && len(items) > 0 && strings.TrimSpace(items[0].Msg) != "" {
			return strings.TrimSpace(items[0].Msg)
		}
	}
	if msg := strings.TrimSpace(payload.Message); msg != "" {
		return msg
	}
	if msg := strings.TrimSpace(payload.Error); msg != "" {
		return msg
	}
	return FallbackMessage
}
