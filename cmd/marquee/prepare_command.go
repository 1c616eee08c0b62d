package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"marquee/internal/meta"
	"marquee/internal/workflow"
)

func newPrepareCommand(ctx *commandContext) *cobra.Command {
	var metaPath, release, descriptionPath string
	var trackerNames []string
	var skipTorrent, asJSON bool

	cmd := &cobra.Command{
		Use:   "prepare",
		Short: "Validate, write descriptions and build torrents for each tracker",
		Long: `Prepare composes the tracker name, runs the tracker's checks, writes
[TRACKER]DESCRIPTION.txt and creates [TRACKER].torrent under the record's
scratch directory. The record, including detected languages, is saved next to
them as meta.json; pass that file to 'marquee upload'.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			rec, err := loadRecord(metaPath, release)
			if err != nil {
				return err
			}
			base, err := readOptionalFile(descriptionPath)
			if err != nil {
				return err
			}

			mgr, closeMgr, err := ctx.manager(false)
			if err != nil {
				return err
			}
			defer closeMgr()

			results, err := mgr.Prepare(cmd.Context(), rec, workflow.PrepareOptions{
				Trackers:        trackerNames,
				BaseDescription: base,
				SkipTorrent:     skipTorrent,
			})
			if err != nil {
				return err
			}

			saved := filepath.Join(cfg.RecordDir(rec.UUID), "meta.json")
			if err := meta.Save(saved, rec); err != nil {
				return err
			}

			if asJSON {
				if err := writeJSON(cmd, preparedJSON(results, saved)); err != nil {
					return err
				}
			} else {
				rows := make([][]string, 0, len(results))
				for _, r := range results {
					rows = append(rows, []string{r.Tracker, string(r.Status), r.Name, preparedDetail(r)})
				}
				out := cmd.OutOrStdout()
				writeRows(out, []string{"Tracker", "Status", "Name", "Detail"}, rows)
				fmt.Fprintf(out, "Record saved to %s\n", saved)
			}
			return joinPreparedErrors(results)
		},
	}

	cmd.Flags().StringVarP(&metaPath, "meta", "m", "", "Metadata record (JSON)")
	cmd.Flags().StringVarP(&release, "release", "r", "", "Derive the record from a scene-style release name")
	cmd.Flags().StringVarP(&descriptionPath, "description", "d", "", "File with the shared description (BBCode)")
	cmd.Flags().StringSliceVarP(&trackerNames, "tracker", "t", nil, "Tracker to prepare (repeatable; default: enabled trackers)")
	cmd.Flags().BoolVar(&skipTorrent, "skip-torrent", false, "Compose, validate and write descriptions only")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

type preparedRow struct {
	Tracker     string   `json:"tracker"`
	Status      string   `json:"status"`
	Name        string   `json:"name"`
	Description string   `json:"description_path,omitempty"`
	Torrent     string   `json:"torrent_path,omitempty"`
	InfoHash    string   `json:"info_hash,omitempty"`
	Warnings    []string `json:"warnings,omitempty"`
	Error       string   `json:"error,omitempty"`
}

func preparedJSON(results []workflow.Prepared, saved string) any {
	rows := make([]preparedRow, 0, len(results))
	for _, r := range results {
		row := preparedRow{
			Tracker:     r.Tracker,
			Status:      string(r.Status),
			Name:        r.Name,
			Description: r.DescriptionPath,
			Torrent:     r.TorrentPath,
			InfoHash:    r.InfoHash,
			Warnings:    r.Warnings,
		}
		if r.Err != nil {
			row.Error = r.Err.Error()
		}
		rows = append(rows, row)
	}
	return map[string]any{"record": saved, "trackers": rows}
}

func preparedDetail(r workflow.Prepared) string {
	if r.Err != nil {
		return firstLine(r.Err.Error())
	}
	if len(r.Warnings) > 0 {
		return "warning: " + strings.Join(r.Warnings, "; ")
	}
	return r.TorrentPath
}

func joinPreparedErrors(results []workflow.Prepared) error {
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.Tracker, r.Err))
		}
	}
	return errors.Join(errs...)
}
