package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"marquee/internal/mkbrr"
)

func newMkbrrCommand(ctx *commandContext) *cobra.Command {
	mkbrrCmd := &cobra.Command{
		Use:   "mkbrr",
		Short: "Manage the torrent creation helper",
	}

	mkbrrCmd.AddCommand(&cobra.Command{
		Use:   "ensure",
		Short: "Download and install the configured mkbrr release if needed",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			manager, err := mkbrr.NewFromConfig(cfg, ctx.log())
			if err != nil {
				return err
			}
			path, err := manager.Ensure(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "mkbrr %s ready at %s\n", cfg.Mkbrr.Version, path)
			return nil
		},
	})

	mkbrrCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print where mkbrr is installed",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			manager, err := mkbrr.NewFromConfig(cfg, ctx.log())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, manager.BinaryPath())
			if !manager.Installed() {
				fmt.Fprintln(cmd.ErrOrStderr(), "not installed; run 'marquee mkbrr ensure'")
			}
			return nil
		},
	})

	return mkbrrCmd
}
