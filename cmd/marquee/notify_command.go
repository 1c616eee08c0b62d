package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"marquee/internal/notifications"
	"marquee/internal/services"
)

func newNotifyTestCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "test-notify",
		Short: "Send a test notification to the configured ntfy topic",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if strings.TrimSpace(cfg.Notifications.NtfyTopic) == "" {
				return services.Wrap(services.ErrConfiguration, "cli", "notify", "notifications.ntfy_topic is not set", nil)
			}
			if err := notifications.NewService(cfg).TestNotification(cmd.Context()); err != nil {
				return services.Wrap(services.ErrExternalTool, "cli", "notify", "ntfy", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Test notification sent")
			return nil
		},
	}
}
