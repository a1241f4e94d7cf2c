package cli

import (
	"context"
	"time"

	"github.com/fatih/color"
	"github.com/lifesteward/internal/apiclient"
	"github.com/lifesteward/internal/config"
	"github.com/spf13/cobra"
)

func addDashboard(topLevel *cobra.Command) {
	var userID int
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "在终端中查看仪表板统计与最近活动",
		Example: `
steward dashboard
steward dashboard --user 2
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if userID > 0 {
				cfg.UserID = userID
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			timeout := cfg.APITimeout
			if timeout <= 0 {
				timeout = 10 * time.Second
			}
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			client := apiclient.New(cfg.APIBaseURL, 0)
			dashboard, err := client.Dashboard(ctx, cfg.UserID)
			if err != nil {
				return err
			}
			printDashboard(color.Output, dashboard)
			return nil
		},
	}
	cmd.Flags().IntVar(&userID, "user", 0, "覆盖配置中的用户ID")
	topLevel.AddCommand(cmd)
}
