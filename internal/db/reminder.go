package db

import (
	"time"

	"gorm.io/gorm"
)

// ScheduledReminder 记录一条待投递的浏览器提醒
// UID 使用 uuid，作为推送给浏览器的通知标识
// RemindAt 建索引，调度器按时间扫描到期记录
// DeliveredAt 非空表示已处理，不再重复投递；Missed 表示到期时没有打开的页面
type ScheduledReminder struct {
	gorm.Model
	UID         string    `gorm:"uniqueIndex;not null"`
	UserID      int       `gorm:"index"`
	PlanID      int       `gorm:"index"`
	TaskID      *int
	Message     string
	RemindAt    time.Time `gorm:"index"`
	DeliveredAt *time.Time
	Missed      bool
}

// TableName 固定表名
func (ScheduledReminder) TableName() string {
	return "scheduled_reminders"
}
