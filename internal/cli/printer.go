package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/lifesteward/internal/db"
	"github.com/lifesteward/internal/model"
)

const timeLayout = "2006-01-02 15:04"

var (
	bold  = color.New(color.Bold)
	title = color.New(color.Bold, color.Underline)
	faint = color.New(color.Faint)
)

func printDashboard(w io.Writer, d *model.Dashboard) {
	title.Fprintln(w, "仪表板")

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("活跃计划"), d.ActivePlans)
	tbl.AddRow(bold.Sprint("已完成任务"), d.CompletedTasks)
	tbl.AddRow(bold.Sprint("待办事项"), d.PendingTodos())
	tbl.AddRow(bold.Sprint("完成率"), strconv.Itoa(d.CompletionPercent())+"%")
	fmt.Fprintln(w, tbl)
	fmt.Fprintln(w)

	title.Fprintln(w, "最近活动")
	if len(d.RecentActivities) == 0 {
		faint.Fprintln(w, "暂无活动记录")
		return
	}

	tbl = uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	for _, a := range d.RecentActivities {
		tbl.AddRow(a.Title, faint.Sprint(a.Timestamp))
	}
	fmt.Fprintln(w, tbl)
}

func printReminders(w io.Writer, rows []db.ScheduledReminder) {
	if len(rows) == 0 {
		faint.Fprintln(w, "没有待投递的提醒")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.AddRow(bold.Sprint("时间"), bold.Sprint("计划"), bold.Sprint("内容"))
	for _, r := range rows {
		tbl.AddRow(r.RemindAt.Local().Format(timeLayout), r.PlanID, r.Message)
	}
	fmt.Fprintln(w, tbl)
}
