package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// Activity 是仪表板最近活动中的一条记录
type Activity struct {
	Title     string `json:"title"`
	Type      string `json:"type,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Dashboard 聚合了用户的计划、任务与待办统计
type Dashboard struct {
	TotalPlans       int        `json:"total_plans"`
	ActivePlans      int        `json:"active_plans"`
	CompletedTasks   int        `json:"completed_tasks"`
	PendingTasks     int        `json:"pending_tasks"`
	CompletionRate   float64    `json:"completion_rate"`
	TotalTodos       int        `json:"total_todos"`
	CompletedTodos   int        `json:"completed_todos"`
	RecentActivities []Activity `json:"recent_activities"`
}

// PendingTodos 返回尚未完成的待办数量
func (d Dashboard) PendingTodos() int {
	return d.TotalTodos - d.CompletedTodos
}

// CompletionPercent 将完成率换算为四舍五入后的百分比
func (d Dashboard) CompletionPercent() int {
	return int(math.Round(d.CompletionRate * 100))
}

// DailyCompletion 是折线图中的一个点
type DailyCompletion struct {
	Date      string `json:"date"`
	Completed int    `json:"completed"`
}

// CategoryCount 是环形图中的一个分类
type CategoryCount struct {
	Name  string
	Count int
}

// CategoryCounts 按服务端返回的键顺序保存分类统计
type CategoryCounts []CategoryCount

// UnmarshalJSON 逐个读取对象键，保留原始顺序
func (c *CategoryCounts) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*c = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("category distribution: expected object, got %v", tok)
	}

	out := CategoryCounts{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("category distribution: unexpected key %v", keyTok)
		}
		var count int
		if err := dec.Decode(&count); err != nil {
			return fmt.Errorf("category distribution %q: %w", key, err)
		}
		out = append(out, CategoryCount{Name: key, Count: count})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*c = out
	return nil
}

// MarshalJSON 按保存的顺序输出对象
func (c CategoryCounts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, item := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(item.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		fmt.Fprintf(&buf, "%d", item.Count)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Analytics 是 /analytics/{user} 的返回值
type Analytics struct {
	DailyCompletion      []DailyCompletion `json:"daily_completion"`
	CategoryDistribution CategoryCounts    `json:"category_distribution"`
	WeeklySummary        map[string]any    `json:"weekly_summary,omitempty"`
}
