package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"marquee/internal/deps"
	"marquee/internal/mkbrr"
	"marquee/internal/preflight"
	"marquee/internal/services"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var mediainfo string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report external programs, directories and enabled trackers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			manager, err := mkbrr.NewFromConfig(cfg, ctx.log())
			if err != nil {
				return err
			}

			tools := deps.Locate(deps.Tools(mediainfo, manager.BinaryPath()))
			rows := make([][]string, 0, len(tools))
			for _, r := range tools {
				rows = append(rows, []string{r.Name, r.State(), r.Detail()})
			}
			out := cmd.OutOrStdout()
			writeRows(out, []string{"Dependency", "State", "Detail"}, rows)

			enabled := cfg.EnabledTrackers()
			if len(enabled) == 0 {
				fmt.Fprintln(out, "Trackers: none enabled")
			} else {
				fmt.Fprintf(out, "Trackers: %s\n", strings.Join(enabled, ", "))
			}

			registry, err := ctx.registry(cfg, false)
			if err != nil {
				return err
			}
			checks := preflight.RunAll(cmd.Context(), cfg, registry, nil)
			checkRows := make([][]string, 0, len(checks))
			for _, c := range checks {
				state := "ok"
				if !c.Passed {
					state = "failed"
				}
				checkRows = append(checkRows, []string{c.Name, state, c.Detail})
			}
			writeRows(out, []string{"Check", "State", "Detail"}, checkRows)

			if missing := deps.Missing(tools); len(missing) > 0 {
				return services.Wrap(services.ErrExternalTool, "cli", "check",
					"missing "+strings.Join(missing, ", ")+"; run 'marquee mkbrr ensure'", nil)
			}
			if failed := preflight.Failed(checks); len(failed) > 0 {
				names := make([]string, 0, len(failed))
				for _, f := range failed {
					names = append(names, f.Name)
				}
				return services.Wrap(services.ErrConfiguration, "cli", "check", "failed: "+strings.Join(names, ", "), nil)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&mediainfo, "mediainfo", "", "mediainfo binary to check (default: on PATH)")
	return cmd
}
