package cli

import (
	"context"

	"github.com/fatih/color"
	"github.com/lifesteward/internal/config"
	"github.com/lifesteward/internal/db"
	"github.com/lifesteward/internal/service"
	"github.com/spf13/cobra"
)

func addReminders(topLevel *cobra.Command) {
	var userID int
	cmd := &cobra.Command{
		Use:   "reminders",
		Short: "列出尚未投递的本地提醒",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if userID > 0 {
				cfg.UserID = userID
			}
			if err := db.Init(cfg.DatabasePath); err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			dispatcher := service.NewReminderDispatcher(db.DB, service.NewNotificationHub())
			pending, err := dispatcher.Pending(ctx, cfg.UserID)
			if err != nil {
				return err
			}
			printReminders(color.Output, pending)
			return nil
		},
	}
	cmd.Flags().IntVar(&userID, "user", 0, "覆盖配置中的用户ID")
	topLevel.AddCommand(cmd)
}
