package workflow

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"marquee/internal/history"
	"marquee/internal/logging"
	"marquee/internal/meta"
	"marquee/internal/services"
	"marquee/internal/torrentfile"
	"marquee/internal/trackers"
)

// UploadOptions selects trackers and supplies the report text sent with the
// torrent.
type UploadOptions struct {
	Trackers  []string
	MediaInfo string
	// BDInfo defaults to the first BDMV disc summary on the record.
	BDInfo string
}

// Uploaded is the outcome for one tracker.
type Uploaded struct {
	Tracker    string
	Name       string
	TorrentURL string
	Message    string
	Status     history.Status
	Err        error
}

// Upload submits previously prepared artifacts to each selected tracker.
func (m *Manager) Upload(ctx context.Context, rec *meta.Record, opts UploadOptions) ([]Uploaded, error) {
	if rec == nil {
		return nil, services.Wrap(services.ErrValidation, "workflow", "upload", "record is nil", nil)
	}
	if m.uploader == nil {
		return nil, services.Wrap(services.ErrConfiguration, "workflow", "upload", "no uploader configured", nil)
	}
	selected, err := m.selectTrackers(opts.Trackers)
	if err != nil {
		return nil, err
	}
	rec.EnsureUUID()
	ctx = logging.WithRecordID(ctx, rec.UUID)
	ctx = logging.WithCorrelationID(ctx, uuid.NewString())

	if opts.BDInfo == "" {
		opts.BDInfo = firstBDInfo(rec)
	}

	results := make([]Uploaded, len(selected))
	for i, t := range selected {
		results[i] = Uploaded{Tracker: t.Name(), Name: t.EditName(logging.WithTracker(ctx, t.Name()), rec)}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.concurrency())
	for i, t := range selected {
		g.Go(func() error {
			m.uploadOne(gctx, rec, t, &results[i], opts)
			return nil
		})
	}
	_ = g.Wait()
	return results, nil
}

func (m *Manager) uploadOne(ctx context.Context, rec *meta.Record, t trackers.Tracker, out *Uploaded, opts UploadOptions) {
	ctx = logging.WithTracker(ctx, t.Name())
	logger := logging.WithContext(ctx, m.logger)
	torrentPath := m.TorrentPath(rec.UUID, t.Name())

	finish := func(err error) {
		out.Err = err
		switch {
		case err != nil:
			out.Status = history.Status(services.Outcome(err))
			logging.ErrorWithContext(logger, "upload failed", "upload_failed",
				logging.Error(err),
				logging.String("name", out.Name),
			)
		case out.Status == "":
			out.Status = history.StatusUploaded
		}
		entry := &history.Entry{
			RecordUUID:  rec.UUID,
			Tracker:     t.Name(),
			Name:        out.Name,
			Status:      out.Status,
			TorrentPath: torrentPath,
			TorrentURL:  out.TorrentURL,
			Message:     out.Message,
		}
		if err != nil {
			entry.Message = err.Error()
		}
		m.record(ctx, logger, entry)
		m.notify(ctx, logger, out)
	}

	if _, err := trackers.Validate(t, rec); err != nil {
		finish(err)
		return
	}
	description, err := readArtifact(m.DescriptionPath(rec.UUID, t.Name()), "description")
	if err != nil {
		finish(err)
		return
	}
	if err := requireArtifact(torrentPath, "torrent"); err != nil {
		finish(err)
		return
	}

	form, err := t.Form(rec, trackers.Submission{
		Name:        out.Name,
		Description: description,
		MediaInfo:   opts.MediaInfo,
		BDInfo:      opts.BDInfo,
		TorrentPath: torrentPath,
	})
	if err != nil {
		finish(err)
		return
	}

	resp, err := m.uploader.Submit(ctx, t.Name(), form)
	if err != nil {
		finish(err)
		return
	}
	out.Message = resp.Message
	out.TorrentURL = resp.TorrentURL()
	if resp.Debug {
		out.Status = history.StatusDebug
		finish(nil)
		return
	}

	if out.TorrentURL != "" {
		if err := torrentfile.SetComment(torrentPath, out.TorrentURL); err != nil {
			logging.WarnWithContext(logger, "torrent comment not updated", "torrent_comment_failed",
				logging.Error(err),
				logging.String(logging.FieldImpact, "torrent client shows no tracker link"),
			)
		}
	}
	logger.Info("upload accepted",
		logging.String("name", out.Name),
		logging.String("torrent_url", out.TorrentURL),
		logging.String(logging.FieldEventType, "uploaded"),
	)
	finish(nil)
}

func firstBDInfo(rec *meta.Record) string {
	for _, disc := range rec.Discs {
		if disc.Type == meta.DiscBDMV && strings.TrimSpace(disc.Summary) != "" {
			return disc.Summary
		}
	}
	return ""
}
