package model

// Plan 是服务端计划记录在前端的缓存副本
type Plan struct {
	ID                 int        `json:"id"`
	Title              string     `json:"title"`
	Description        string     `json:"description,omitempty"`
	Goal               string     `json:"goal"`
	PlanType           PlanType   `json:"plan_type"`
	Status             PlanStatus `json:"status"`
	StartDate          string     `json:"start_date,omitempty"`
	EndDate            string     `json:"end_date,omitempty"`
	CreatedAt          string     `json:"created_at,omitempty"`
	EstimatedTotalTime int        `json:"estimated_total_time"`
	DurationDays       *int       `json:"duration_days,omitempty"`
	AISuggestedDays    *int       `json:"ai_suggested_days,omitempty"`
	Tasks              []Task     `json:"tasks"`
}

// Summary 优先返回 description，为空时回退到 goal
func (p Plan) Summary() string {
	if p.Description != "" {
		return p.Description
	}
	return p.Goal
}

// EstimatedHours 将预计总分钟数四舍五入为小时
func (p Plan) EstimatedHours() int {
	return (p.EstimatedTotalTime + 30) / 60
}

// PlanInput 是创建计划的请求体
type PlanInput struct {
	Goal              string   `json:"goal"`
	TimePreference    string   `json:"time_preference"`
	PlanType          PlanType `json:"plan_type"`
	DurationDays      *int     `json:"duration_days,omitempty"`
	UserPreferredDays *int     `json:"user_preferred_days,omitempty"`
}

// PlanUpdate 是修改计划元信息的请求体，goal 为空时发送 null
type PlanUpdate struct {
	Title string  `json:"title"`
	Goal  *string `json:"goal"`
}

// DayEstimate 是 AI 估算天数接口的返回值
type DayEstimate struct {
	AIEstimatedDays int    `json:"ai_estimated_days"`
	Reasoning       string `json:"reasoning,omitempty"`
}

// FollowUpQuestions 是 AI 反问接口的返回值
type FollowUpQuestions struct {
	Questions []string `json:"questions"`
}
