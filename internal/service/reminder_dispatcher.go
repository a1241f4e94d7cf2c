package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lifesteward/internal/db"
	"github.com/lifesteward/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	// DefaultReminderPollInterval 是扫描到期提醒的默认间隔
	DefaultReminderPollInterval = 15 * time.Second
	// 到期超过该时长仍无人接收的提醒标记为错过
	missedAfter = 10 * time.Minute
)

var reminderNamespace = uuid.MustParse("6f1c9a52-3d0b-4c1e-9a57-2b8e4f6d1a90")

var reminderTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseReminderTime 解析服务端返回的提醒时间，不带时区的值按本地时间处理
func ParseReminderTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range reminderTimeLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("无法解析提醒时间 %q", raw)
}

// ReminderDispatcher 持久化浏览器提醒，并在到期时通过 NotificationHub 推送
type ReminderDispatcher struct {
	db  *gorm.DB
	hub *NotificationHub
	now func() time.Time
}

// NewReminderDispatcher 构造 ReminderDispatcher
func NewReminderDispatcher(gdb *gorm.DB, hub *NotificationHub) *ReminderDispatcher {
	return &ReminderDispatcher{db: gdb, hub: hub, now: time.Now}
}

// reminderUID 对同一计划同一时间的同一提醒生成固定标识，重复设置不会产生重复记录
func reminderUID(userID, planID int, at time.Time, message string) string {
	name := fmt.Sprintf("%d/%d/%d/%s", userID, planID, at.Unix(), message)
	return uuid.NewSHA1(reminderNamespace, []byte(name)).String()
}

// Schedule 保存未来的提醒，返回实际新增的数量；已安排过的提醒不重复计数。
// 时间统一以 UTC 存储，sqlite 按文本比较时才与投递时的 now 一致。
func (d *ReminderDispatcher) Schedule(ctx context.Context, userID, planID int, reminders []model.Reminder) (int, error) {
	now := d.now().UTC()
	rows := make([]db.ScheduledReminder, 0, len(reminders))
	for _, reminder := range reminders {
		at, err := ParseReminderTime(reminder.ReminderTime)
		if err != nil {
			log.Printf("[REMINDER] skip reminder: %v", err)
			continue
		}
		at = at.UTC()
		if !at.After(now) {
			continue
		}
		rows = append(rows, db.ScheduledReminder{
			UID:      reminderUID(userID, planID, at, reminder.Message),
			UserID:   userID,
			PlanID:   planID,
			TaskID:   reminder.TaskID,
			Message:  reminder.Message,
			RemindAt: at,
		})
	}
	if len(rows) == 0 {
		return 0, nil
	}

	result := d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "uid"}},
		DoNothing: true,
	}).Create(&rows)
	if result.Error != nil {
		return 0, fmt.Errorf("保存提醒失败: %w", result.Error)
	}

	scheduled := int(result.RowsAffected)
	log.Printf("[REMINDER] plan %d: %d new of %d future reminders", planID, scheduled, len(rows))
	return scheduled, nil
}

// Pending 返回尚未处理的提醒，按时间排序；userID 为 0 时返回所有用户
func (d *ReminderDispatcher) Pending(ctx context.Context, userID int) ([]db.ScheduledReminder, error) {
	query := d.db.WithContext(ctx).Where("delivered_at IS NULL")
	if userID != 0 {
		query = query.Where("user_id = ?", userID)
	}
	var rows []db.ScheduledReminder
	if err := query.Order("remind_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// DeliverDue 推送所有到期提醒，返回送达的数量。
// 没有订阅者时提醒继续等待，超过 missedAfter 后标记为错过。
func (d *ReminderDispatcher) DeliverDue(ctx context.Context) (int, error) {
	now := d.now().UTC()

	var due []db.ScheduledReminder
	if err := d.db.WithContext(ctx).
		Where("delivered_at IS NULL AND remind_at <= ?", now).
		Order("remind_at ASC").
		Find(&due).Error; err != nil {
		return 0, fmt.Errorf("查询到期提醒失败: %w", err)
	}

	delivered := 0
	for _, row := range due {
		sent := d.hub.Publish(row.UserID, Notification{
			ID:      row.UID,
			Title:   NotificationTitle,
			Message: row.Message,
			PlanID:  row.PlanID,
			TaskID:  row.TaskID,
		})

		missed := sent == 0
		if missed && now.Sub(row.RemindAt) < missedAfter {
			continue
		}

		if err := d.db.WithContext(ctx).Model(&db.ScheduledReminder{}).
			Where("id = ?", row.ID).
			Updates(map[string]any{"delivered_at": now, "missed": missed}).Error; err != nil {
			return delivered, fmt.Errorf("更新提醒 %s 失败: %w", row.UID, err)
		}
		if missed {
			log.Printf("[REMINDER] missed %q due at %s", row.Message, row.RemindAt.Format(time.RFC3339))
			continue
		}
		delivered++
	}
	return delivered, nil
}

// Run 按 interval 周期投递到期提醒，直到 ctx 结束
func (d *ReminderDispatcher) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultReminderPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n, err := d.DeliverDue(ctx); err != nil {
				log.Printf("[REMINDER] deliver: %v", err)
			} else if n > 0 {
				log.Printf("[REMINDER] delivered %d reminders", n)
			}
		}
	}
}
