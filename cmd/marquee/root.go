package main

import (
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func newRootCommand() *cobra.Command {
	var (
		configPath string
		logLevel   string
	)
	ctx := newCommandContext(&configPath, &logLevel)

	root := &cobra.Command{
		Use:           "marquee",
		Short:         "Compose tracker release names and prepare uploads",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "Configuration file (default ~/.config/marquee/config.toml)")
	flags.StringVar(&logLevel, "log-level", "", "Override logging.level: debug, info, warn or error")

	root.AddCommand(
		newNameCommand(ctx),
		newPrepareCommand(ctx),
		newUploadCommand(ctx),
		newHistoryCommand(ctx),
		newCheckCommand(ctx),
		newMkbrrCommand(ctx),
		newNotifyTestCommand(ctx),
		newConfigCommand(ctx),
	)
	return root
}
