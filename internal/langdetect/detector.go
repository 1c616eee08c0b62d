package langdetect

import (
	"context"
	"log/slog"
	"strings"

	"marquee/internal/language"
	"marquee/internal/logging"
	"marquee/internal/meta"
	"marquee/internal/services"
)

// Detector populates language lists on metadata records.
type Detector struct {
	prober Prober
	logger *slog.Logger
}

// Option customizes a Detector.
type Option func(*Detector)

// WithProber installs the mediainfo runner used when a record carries no report.
func WithProber(p Prober) Option {
	return func(d *Detector) {
		d.prober = p
	}
}

// WithLogger sets the detector logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Detector) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// New constructs a Detector.
func New(opts ...Option) *Detector {
	d := &Detector{}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = logging.NewComponentLogger(d.logger, "langdetect")
	return d
}

// EnsureLanguages fills AudioLanguages and SubtitleLanguages when they are
// empty. Existing lists are left untouched. The result is normalized to
// ISO 639-1 codes, de-duplicated, in track order.
func (d *Detector) EnsureLanguages(ctx context.Context, rec *meta.Record, tracker string) error {
	if rec == nil {
		return nil
	}
	logger := d.logger.With(logging.String(logging.FieldTracker, tracker))
	if len(rec.AudioLanguages) > 0 && len(rec.SubtitleLanguages) > 0 {
		return nil
	}

	if rec.MediaInfo == nil && rec.IsDisc == meta.DiscNone && strings.TrimSpace(rec.Path) != "" && d.prober != nil {
		info, err := d.prober.Probe(ctx, rec.Path)
		if err != nil {
			return services.Wrap(services.ErrExternalTool, "langdetect", "probe", rec.Path, err)
		}
		rec.MediaInfo = info
	}

	audio, subtitles := collect(rec)
	if len(rec.AudioLanguages) == 0 {
		rec.AudioLanguages = language.NormalizeList(audio)
	}
	if len(rec.SubtitleLanguages) == 0 {
		rec.SubtitleLanguages = language.NormalizeList(subtitles)
	}
	logger.Debug("languages detected",
		logging.String("audio", strings.Join(rec.AudioLanguages, ",")),
		logging.String("subtitles", strings.Join(rec.SubtitleLanguages, ",")),
	)
	return nil
}

func collect(rec *meta.Record) (audio, subtitles []string) {
	for _, track := range rec.MediaInfo.Tracks() {
		lang := strings.TrimSpace(track.Language.String())
		if lang == "" {
			continue
		}
		switch track.Type {
		case meta.TrackAudio:
			if !track.IsAuxiliary() {
				audio = append(audio, lang)
			}
		case meta.TrackText:
			subtitles = append(subtitles, lang)
		}
	}
	for _, disc := range rec.Discs {
		var a, s []string
		switch disc.Type {
		case meta.DiscBDMV:
			a, s = summaryLanguages(disc.Summary)
		case meta.DiscDVD:
			a, s = textReportLanguages(disc.VOBInfo)
		case meta.DiscHDDVD:
			a, s = textReportLanguages(disc.EVOInfo)
		}
		audio = append(audio, a...)
		subtitles = append(subtitles, s...)
	}
	return audio, subtitles
}
