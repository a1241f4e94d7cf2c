package model

// Reminder 是提醒调度接口返回的一条提醒
type Reminder struct {
	ReminderTime string `json:"reminder_time"`
	Message      string `json:"message"`
	TaskID       *int   `json:"task_id,omitempty"`
	Type         string `json:"type,omitempty"`
}

// ReminderSchedule 是 /reminders/schedule 的返回值
type ReminderSchedule struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    *struct {
		Reminders []Reminder `json:"reminders"`
	} `json:"data,omitempty"`
}

// Reminders 返回响应中携带的提醒列表
func (s ReminderSchedule) Reminders() []Reminder {
	if s.Data == nil {
		return nil
	}
	return s.Data.Reminders
}
