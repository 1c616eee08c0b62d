package workflow

import (
	"context"
	"log/slog"
	"path/filepath"

	"marquee/internal/config"
	"marquee/internal/history"
	"marquee/internal/logging"
	"marquee/internal/mkbrr"
	"marquee/internal/services"
	"marquee/internal/trackers"
)

// TorrentCreator builds a torrent for the release.
type TorrentCreator interface {
	Create(ctx context.Context, opts mkbrr.CreateOptions) (string, error)
}

// Submitter sends an upload form to a tracker.
type Submitter interface {
	Submit(ctx context.Context, tracker string, form trackers.Form) (trackers.Response, error)
}

// Recorder persists tracker attempts.
type Recorder interface {
	Record(ctx context.Context, entry *history.Entry) error
}

// Notifier announces upload outcomes.
type Notifier interface {
	NotifyUploaded(ctx context.Context, tracker, name, torrentURL string) error
	NotifyUploadFailed(ctx context.Context, tracker, name string, err error) error
}

// Manager coordinates tracker preparation and upload for a record.
type Manager struct {
	cfg      *config.Config
	registry *trackers.Registry
	creator  TorrentCreator
	uploader Submitter
	history  Recorder
	notifier Notifier
	logger   *slog.Logger
}

// Option configures optional Manager collaborators.
type Option func(*Manager)

// WithTorrentCreator sets the torrent builder used by Prepare.
func WithTorrentCreator(creator TorrentCreator) Option {
	return func(m *Manager) { m.creator = creator }
}

// WithSubmitter sets the uploader used by Upload.
func WithSubmitter(submitter Submitter) Option {
	return func(m *Manager) { m.uploader = submitter }
}

// WithHistory sets the attempt log. A nil recorder disables it.
func WithHistory(recorder Recorder) Option {
	return func(m *Manager) { m.history = recorder }
}

// WithNotifier sets where upload outcomes are announced.
func WithNotifier(notifier Notifier) Option {
	return func(m *Manager) { m.notifier = notifier }
}

// WithLogger sets the base logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewManager constructs a workflow manager.
func NewManager(cfg *config.Config, registry *trackers.Registry, opts ...Option) *Manager {
	m := &Manager{cfg: cfg, registry: registry}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = logging.NewComponentLogger(m.logger, "workflow")
	return m
}

// DescriptionPath is where the tracker description for a record is written.
func (m *Manager) DescriptionPath(recordUUID, tracker string) string {
	return filepath.Join(m.cfg.RecordDir(recordUUID), "["+tracker+"]DESCRIPTION.txt")
}

// TorrentPath is where the tracker torrent for a record is written.
func (m *Manager) TorrentPath(recordUUID, tracker string) string {
	return filepath.Join(m.cfg.RecordDir(recordUUID), "["+tracker+"].torrent")
}

func (m *Manager) selectTrackers(requested []string) ([]trackers.Tracker, error) {
	selected, err := m.registry.Select(requested)
	if err != nil {
		return nil, err
	}
	if len(selected) == 0 {
		return nil, services.Wrap(services.ErrConfiguration, "workflow", "select",
			"no trackers enabled; enable one in the config or pass --tracker", nil)
	}
	return selected, nil
}

func (m *Manager) concurrency() int {
	if m.cfg == nil || m.cfg.Upload.Concurrency <= 0 {
		return 1
	}
	return m.cfg.Upload.Concurrency
}

func (m *Manager) record(ctx context.Context, logger *slog.Logger, entry *history.Entry) {
	if m.history == nil {
		return
	}
	if err := m.history.Record(ctx, entry); err != nil {
		logging.WarnWithContext(logger, "history entry not written", "history_write_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "attempt missing from 'marquee history'"),
		)
	}
}

func (m *Manager) notify(ctx context.Context, logger *slog.Logger, out *Uploaded) {
	if m.notifier == nil || out.Status == history.StatusDebug {
		return
	}
	var err error
	if out.Err != nil {
		err = m.notifier.NotifyUploadFailed(ctx, out.Tracker, out.Name, out.Err)
	} else {
		err = m.notifier.NotifyUploaded(ctx, out.Tracker, out.Name, out.TorrentURL)
	}
	if err != nil {
		logging.WarnWithContext(logger, "notification not delivered", "notification_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "upload result only visible in 'marquee history'"),
		)
	}
}
