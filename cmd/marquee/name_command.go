package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"marquee/internal/langdetect"
	"marquee/internal/naming"
)

type nameOutput struct {
	Tracker string   `json:"tracker"`
	Name    string   `json:"name"`
	Audit   []string `json:"audit,omitempty"`
}

func newNameCommand(ctx *commandContext) *cobra.Command {
	var metaPath, release string
	var trackerNames []string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "name",
		Short: "Print the release name each tracker would receive",
		Example: `  marquee name --release "Movie.2024.German.DL.2160p.UHD.BluRay.REMUX.DTS-HD.MA.5.1-GRP"
  marquee name --meta ./meta.json --tracker RHD --tracker A4K`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			rec, err := loadRecord(metaPath, release)
			if err != nil {
				return err
			}

			registry, err := ctx.registry(cfg, true)
			if err != nil {
				return err
			}
			selected, err := registry.Select(trackerNames)
			if err != nil {
				return err
			}

			var outputs []nameOutput
			if len(selected) == 0 {
				opts, err := naming.OptionsFromConfig(cfg.Naming, "")
				if err != nil {
					return err
				}
				detector := langdetect.New(langdetect.WithProber(langdetect.CommandProber{}), langdetect.WithLogger(ctx.log()))
				composer := naming.NewComposer(opts, naming.WithDetector(detector), naming.WithLogger(ctx.log()))
				result := composer.Compose(cmd.Context(), rec)
				outputs = append(outputs, nameOutput{Tracker: "-", Name: result.Name, Audit: naming.Audit(result.Name, rec)})
			}
			for _, t := range selected {
				name := t.EditName(cmd.Context(), rec)
				outputs = append(outputs, nameOutput{Tracker: t.Name(), Name: name, Audit: naming.Audit(name, rec)})
			}

			if asJSON {
				return writeJSON(cmd, outputs)
			}
			out := cmd.OutOrStdout()
			if len(outputs) == 1 && len(trackerNames) <= 1 {
				fmt.Fprintln(out, outputs[0].Name)
				// stdout stays a bare name for scripts; notes go to stderr.
				for _, note := range outputs[0].Audit {
					fmt.Fprintf(cmd.ErrOrStderr(), "audit: %s\n", note)
				}
				return nil
			}
			rows := make([][]string, 0, len(outputs))
			for _, o := range outputs {
				rows = append(rows, []string{o.Tracker, o.Name, strings.Join(o.Audit, "; ")})
			}
			writeRows(out, []string{"Tracker", "Name", "Audit"}, rows)
			return nil
		},
	}

	cmd.Flags().StringVarP(&metaPath, "meta", "m", "", "Metadata record (JSON)")
	cmd.Flags().StringVarP(&release, "release", "r", "", "Derive the record from a scene-style release name")
	cmd.Flags().StringSliceVarP(&trackerNames, "tracker", "t", nil, "Tracker to name for (repeatable; default: enabled trackers)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
