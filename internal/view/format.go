package view

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FormatDate 输出 "2006/01/02 15:04"；空值为 "-"，无法解析时原样返回
func FormatDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "-"
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t.Local().Format("2006/01/02 15:04")
		}
	}
	return raw
}

var priorityBadges = map[string]template.HTML{
	"高": `<span class="priority-badge high">高</span>`,
	"中": `<span class="priority-badge medium">中</span>`,
	"低": `<span class="priority-badge low">低</span>`,
}

var statusBadges = map[string]template.HTML{
	"active":      `<span class="status-badge active">进行中</span>`,
	"completed":   `<span class="status-badge completed">已完成</span>`,
	"paused":      `<span class="status-badge paused">已暂停</span>`,
	"pending":     `<span class="status-badge active">待开始</span>`,
	"in_progress": `<span class="status-badge active">进行中</span>`,
}

// FormatPriority 返回优先级徽标，未知值转义后原样输出
func FormatPriority(priority string) template.HTML {
	if badge, ok := priorityBadges[priority]; ok {
		return badge
	}
	return template.HTML(template.HTMLEscapeString(priority))
}

// FormatStatus 返回状态徽标，未知值转义后原样输出
func FormatStatus(status string) template.HTML {
	if badge, ok := statusBadges[status]; ok {
		return badge
	}
	return template.HTML(template.HTMLEscapeString(status))
}

// PlanTypeText 返回计划类型的中文名称
func PlanTypeText(planType string) string {
	switch planType {
	case "daily":
		return "每日计划"
	case "weekly":
		return "7天计划"
	case "custom":
		return "自定义计划"
	}
	return planType
}

// Markdown 渲染并清洗计划目标、任务原因等自由文本
func Markdown(content string) template.HTML {
	content = strings.TrimSpace(content)
	if content == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(content), &buf); err != nil {
		return template.HTML("<p>" + template.HTMLEscapeString(content) + "</p>")
	}
	return template.HTML(sanitizer.SanitizeBytes(buf.Bytes()))
}

// ToastIcon 返回提示级别对应的图标样式
func ToastIcon(level string) string {
	switch level {
	case "success":
		return "bi-check-circle text-success"
	case "error":
		return "bi-exclamation-triangle text-danger"
	}
	return "bi-info-circle text-primary"
}

func toJSON(v any) (template.JS, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return template.JS(data), nil
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

// text 把模板中的具名字符串类型与指针统一转换为字符串
func text(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case *string:
		if val == nil {
			return ""
		}
		return *val
	case fmt.Stringer:
		return val.String()
	}
	return fmt.Sprint(v)
}

// dict 以键值对构造模板参数，用于向子模板传递多个值
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments")
	}
	out := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
		}
		out[key] = pairs[i+1]
	}
	return out, nil
}

// Funcs 是模板中可用的函数
func Funcs() template.FuncMap {
	return template.FuncMap{
		"formatDate": func(v any) string {
			return FormatDate(text(v))
		},
		"formatPriority": func(v any) template.HTML {
			return FormatPriority(text(v))
		},
		"formatStatus": func(v any) template.HTML {
			return FormatStatus(text(v))
		},
		"planTypeText": func(v any) string {
			return PlanTypeText(text(v))
		},
		"markdown": Markdown,
		"json":     toJSON,
		"derefInt": derefInt,
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},
		"dict":        dict,
		"queryEscape": url.QueryEscape,
	}
}
