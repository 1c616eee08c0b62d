package workflow

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"marquee/internal/history"
	"marquee/internal/logging"
	"marquee/internal/meta"
	"marquee/internal/mkbrr"
	"marquee/internal/services"
	"marquee/internal/torrentfile"
	"marquee/internal/trackers"
)

// PrepareOptions selects trackers and supplies the shared description text.
type PrepareOptions struct {
	// Trackers to prepare; empty means every enabled tracker.
	Trackers        []string
	BaseDescription string
	// SkipTorrent composes and validates without building torrents.
	SkipTorrent bool
}

// Prepared is the outcome for one tracker.
type Prepared struct {
	Tracker         string
	Name            string
	Warnings        []string
	DescriptionPath string
	TorrentPath     string
	InfoHash        string
	Status          history.Status
	Err             error
}

// Prepare runs the per-tracker preparation for rec. The returned slice
// follows tracker order; the error is non-nil only when no tracker could be
// selected.
func (m *Manager) Prepare(ctx context.Context, rec *meta.Record, opts PrepareOptions) ([]Prepared, error) {
	if rec == nil {
		return nil, services.Wrap(services.ErrValidation, "workflow", "prepare", "record is nil", nil)
	}
	selected, err := m.selectTrackers(opts.Trackers)
	if err != nil {
		return nil, err
	}
	rec.EnsureUUID()
	ctx = logging.WithRecordID(ctx, rec.UUID)
	ctx = logging.WithCorrelationID(ctx, uuid.NewString())

	results := make([]Prepared, len(selected))
	for i, t := range selected {
		results[i] = Prepared{Tracker: t.Name(), Name: t.EditName(logging.WithTracker(ctx, t.Name()), rec)}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.concurrency())
	for i, t := range selected {
		g.Go(func() error {
			m.prepareOne(gctx, rec, t, &results[i], opts)
			return nil
		})
	}
	_ = g.Wait()
	return results, nil
}

func (m *Manager) prepareOne(ctx context.Context, rec *meta.Record, t trackers.Tracker, out *Prepared, opts PrepareOptions) {
	ctx = logging.WithTracker(ctx, t.Name())
	logger := logging.WithContext(ctx, m.logger)

	finish := func(err error) {
		out.Err = err
		out.Status = history.StatusPrepared
		if err != nil {
			out.Status = history.Status(services.Outcome(err))
			logging.WarnWithContext(logger, "tracker preparation failed", "prepare_failed",
				logging.Error(err),
				logging.String("name", out.Name),
			)
		} else {
			logger.Info("tracker prepared",
				logging.String("name", out.Name),
				logging.String("torrent", out.TorrentPath),
				logging.Int("warnings", len(out.Warnings)),
				logging.String(logging.FieldEventType, "prepared"),
			)
		}
		entry := &history.Entry{
			RecordUUID:  rec.UUID,
			Tracker:     t.Name(),
			Name:        out.Name,
			Status:      out.Status,
			TorrentPath: out.TorrentPath,
		}
		if err != nil {
			entry.Message = err.Error()
		} else if len(out.Warnings) > 0 {
			entry.Message = strings.Join(out.Warnings, "; ")
		}
		m.record(ctx, logger, entry)
	}

	if strings.TrimSpace(out.Name) == "" {
		finish(services.Wrap(services.ErrValidation, t.Name(), "name", "composed name is empty", nil))
		return
	}
	warnings, err := trackers.Validate(t, rec)
	out.Warnings = warnings
	for _, w := range warnings {
		logger.Warn("tracker rule not verified", logging.String("detail", w))
	}
	if err != nil {
		finish(err)
		return
	}

	descPath := m.DescriptionPath(rec.UUID, t.Name())
	if err := writeFile(descPath, t.Description(rec, opts.BaseDescription)); err != nil {
		finish(services.Wrap(services.ErrExternalTool, t.Name(), "description", "write description", err))
		return
	}
	out.DescriptionPath = descPath

	if opts.SkipTorrent {
		finish(nil)
		return
	}
	torrentPath, hash, warning, err := m.createTorrent(ctx, rec, t)
	if err != nil {
		finish(err)
		return
	}
	if warning != "" {
		out.Warnings = append(out.Warnings, warning)
	}
	out.TorrentPath = torrentPath
	out.InfoHash = hash
	finish(nil)
}

func (m *Manager) createTorrent(ctx context.Context, rec *meta.Record, t trackers.Tracker) (path, hash, warning string, err error) {
	if m.creator == nil {
		return "", "", "", services.Wrap(services.ErrConfiguration, t.Name(), "torrent", "no torrent creator configured", nil)
	}
	content := strings.TrimSpace(rec.Path)
	if content == "" {
		return "", "", "", services.Wrap(services.ErrValidation, t.Name(), "torrent", "record has no content path", nil)
	}
	cfg, _ := m.cfg.Tracker(t.Name())
	path, err = m.creator.Create(ctx, mkbrr.CreateOptions{
		Path:        content,
		AnnounceURL: cfg.AnnounceURL,
		Source:      t.SourceFlag(),
		Output:      m.TorrentPath(rec.UUID, t.Name()),
	})
	if err != nil {
		return "", "", "", err
	}

	hash, err = torrentfile.InfoHash(path)
	if err != nil {
		return "", "", "", services.Wrap(services.ErrExternalTool, t.Name(), "torrent", "read created torrent", err)
	}
	name, err := torrentfile.InfoName(path)
	if err == nil && name != filepath.Base(content) {
		warning = fmt.Sprintf("torrent info name %q differs from content %q", name, filepath.Base(content))
	}
	return path, hash, warning, nil
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

func requireArtifact(path, what string) error {
	_, err := os.Stat(path)
	return artifactError(err, what)
}

func readArtifact(path, what string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", artifactError(err, what)
	}
	return string(data), nil
}

func artifactError(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, os.ErrNotExist):
		return services.Wrap(services.ErrNotFound, "workflow", "upload", what+" missing; run 'marquee prepare' first", err)
	default:
		return services.Wrap(services.ErrExternalTool, "workflow", "upload", "read "+what, err)
	}
}
