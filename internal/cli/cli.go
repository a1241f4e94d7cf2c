package cli

import (
	"github.com/spf13/cobra"
)

// New 构造 steward 根命令
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "steward",
		Short:         "生活管家AI 网页前端与本地提醒工具",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

// AddCommands 注册全部子命令
func AddCommands(topLevel *cobra.Command) {
	addServe(topLevel)
	addDashboard(topLevel)
	addReminders(topLevel)
}
