package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"marquee/internal/history"
	"marquee/internal/services"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent prepare and upload attempts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.OpenFromConfig(cfg)
			if err != nil {
				return err
			}
			if store == nil {
				return services.Wrap(services.ErrConfiguration, "cli", "history", "history is disabled; set [history] enabled = true", nil)
			}
			defer store.Close()

			entries, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if asJSON {
				if entries == nil {
					entries = []history.Entry{}
				}
				return writeJSON(cmd, entries)
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No attempts recorded")
				return nil
			}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				detail := e.TorrentURL
				if detail == "" {
					detail = firstLine(e.Message)
				}
				rows = append(rows, []string{
					e.CreatedAt.Local().Format("2006-01-02 15:04"),
					e.Tracker,
					string(e.Status),
					e.Name,
					detail,
				})
			}
			writeRows(out, []string{"Time", "Tracker", "Status", "Name", "Detail"}, rows)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of attempts to show (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
