package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"marquee/internal/workflow"
)

func newUploadCommand(ctx *commandContext) *cobra.Command {
	var metaPath, mediainfoPath, bdinfoPath string
	var trackerNames []string
	var debug, asJSON bool

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Submit prepared torrents to trackers",
		Long: `Upload reads the artifacts written by 'marquee prepare' for the record and
posts them to each tracker. The tracker's torrent page is written into the
torrent comment on success.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := loadRecord(metaPath, "")
			if err != nil {
				return err
			}
			mediainfo, err := readOptionalFile(mediainfoPath)
			if err != nil {
				return err
			}
			bdinfo, err := readOptionalFile(bdinfoPath)
			if err != nil {
				return err
			}

			mgr, closeMgr, err := ctx.manager(debug)
			if err != nil {
				return err
			}
			defer closeMgr()

			results, err := mgr.Upload(cmd.Context(), rec, workflow.UploadOptions{
				Trackers:  trackerNames,
				MediaInfo: mediainfo,
				BDInfo:    bdinfo,
			})
			if err != nil {
				return err
			}

			if asJSON {
				if err := writeJSON(cmd, uploadedJSON(results)); err != nil {
					return err
				}
			} else {
				rows := make([][]string, 0, len(results))
				for _, r := range results {
					detail := r.TorrentURL
					if r.Err != nil {
						detail = firstLine(r.Err.Error())
					} else if detail == "" {
						detail = r.Message
					}
					rows = append(rows, []string{r.Tracker, string(r.Status), r.Name, detail})
				}
				writeRows(cmd.OutOrStdout(), []string{"Tracker", "Status", "Name", "Detail"}, rows)
			}

			var errs []error
			for _, r := range results {
				if r.Err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", r.Tracker, r.Err))
				}
			}
			return errors.Join(errs...)
		},
	}

	cmd.Flags().StringVarP(&metaPath, "meta", "m", "", "Record saved by 'marquee prepare' (meta.json)")
	cmd.Flags().StringVar(&mediainfoPath, "mediainfo", "", "Text MediaInfo report to attach")
	cmd.Flags().StringVar(&bdinfoPath, "bdinfo", "", "BDInfo summary to attach (default: from the record)")
	cmd.Flags().StringSliceVarP(&trackerNames, "tracker", "t", nil, "Tracker to upload to (repeatable; default: enabled trackers)")
	cmd.Flags().BoolVar(&debug, "debug", false, "Log the requests instead of sending them")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

type uploadedRow struct {
	Tracker    string `json:"tracker"`
	Status     string `json:"status"`
	Name       string `json:"name"`
	TorrentURL string `json:"torrent_url,omitempty"`
	Message    string `json:"message,omitempty"`
	Error      string `json:"error,omitempty"`
}

func uploadedJSON(results []workflow.Uploaded) []uploadedRow {
	rows := make([]uploadedRow, 0, len(results))
	for _, r := range results {
		row := uploadedRow{
			Tracker:    r.Tracker,
			Status:     string(r.Status),
			Name:       r.Name,
			TorrentURL: r.TorrentURL,
			Message:    r.Message,
		}
		if r.Err != nil {
			row.Error = r.Err.Error()
		}
		rows = append(rows, row)
	}
	return rows
}
