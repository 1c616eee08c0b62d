package naming

import (
	"context"
	"log/slog"
	"strings"

	"marquee/internal/language"
	"marquee/internal/logging"
	"marquee/internal/meta"
)

// LanguageDetector populates language evidence on a record. It is invoked at
// most once per record.
type LanguageDetector interface {
	EnsureLanguages(ctx context.Context, rec *meta.Record, tracker string) error
}

// Options configures how names are composed for one tracker.
type Options struct {
	Tracker          string
	TargetLanguage   string // ISO 639-1
	TargetCountry    string // IMDb country name, e.g. "Germany"
	GroupSeparator   string
	OmitMissingGroup bool
	LocalizedTitle   bool
	Templates        TemplateSet
}

// Result is a rendered name together with the values derived for it.
type Result struct {
	Name        string
	Base        string
	LanguageTag string
	Group       string
	Region      string
	Hybrid      bool
	Template    string
	Fallback    bool
}

// Composer renders tracker release names.
type Composer struct {
	opts     Options
	detector LanguageDetector
	logger   *slog.Logger
}

// Option customizes the composer.
type Option func(*Composer)

// WithDetector installs the language detection collaborator.
func WithDetector(detector LanguageDetector) Option {
	return func(c *Composer) {
		c.detector = detector
	}
}

// WithLogger sets the logger used for detector failures and audit notes.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Composer) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewComposer builds a composer, filling unset options with defaults.
func NewComposer(opts Options, options ...Option) *Composer {
	opts.TargetLanguage = language.NormalizeCode(opts.TargetLanguage)
	if opts.TargetLanguage == "" {
		opts.TargetLanguage = "de"
	}
	if strings.TrimSpace(opts.TargetCountry) == "" {
		opts.TargetCountry = "Germany"
	}
	if opts.GroupSeparator == "" {
		opts.GroupSeparator = "-"
	}
	if len(opts.Templates.Templates) == 0 {
		opts.Templates = DefaultTemplates()
	}
	c := &Composer{opts: opts}
	for _, opt := range options {
		opt(c)
	}
	c.logger = logging.NewComponentLogger(c.logger, "naming")
	if tracker := strings.TrimSpace(opts.Tracker); tracker != "" {
		c.logger = c.logger.With(logging.String(logging.FieldTracker, tracker))
	}
	return c
}

// Compose derives the display fields for rec and renders its release name.
// It never fails: missing evidence degrades to empty tokens.
func (c *Composer) Compose(ctx context.Context, rec *meta.Record) Result {
	if rec == nil {
		return Result{Group: NoGroup}
	}
	c.ensureLanguages(ctx, rec)

	key, _ := templateKey(rec.Type, rec.IsDisc)
	title := c.title(rec)
	region, source := splitRegion(rec)
	fields := Fields{
		Title:       title,
		LanguageTag: c.languageTag(rec),
		Hybrid:      isHybrid(rec, title),
		Region:      region,
		Source:      source,
	}

	result := Result{
		LanguageTag: fields.LanguageTag,
		Region:      fields.Region,
		Hybrid:      fields.Hybrid,
		Template:    c.opts.Templates.Version + "/" + key,
		Group:       ReleaseGroup(rec),
	}
	if key == "" {
		result.Template = ""
		result.Fallback = true
		result.Name = CollapseWhitespace(rec.Name)
		result.Base = result.Name
		c.logger.Debug("release type outside template table; using existing name",
			logging.String("type", string(rec.Type)),
			logging.String("is_disc", string(rec.IsDisc)),
		)
		return result
	}

	result.Base = Render(rec, fields, c.opts.Templates)
	result.Name = c.appendGroup(result.Base, result.Group)

	if issues := Audit(result.Name, rec); len(issues) > 0 {
		c.logger.Debug("rendered name audit",
			logging.String("name", result.Name),
			logging.String("issues", strings.Join(issues, "; ")),
		)
	}
	return result
}

func (c *Composer) appendGroup(base, group string) string {
	if base == "" {
		return base
	}
	if group == "" || (group == NoGroup && c.opts.OmitMissingGroup) {
		return base
	}
	return base + c.opts.GroupSeparator + group
}

func (c *Composer) ensureLanguages(ctx context.Context, rec *meta.Record) {
	if rec.LanguageChecked || c.detector == nil {
		return
	}
	rec.LanguageChecked = true
	if err := c.detector.EnsureLanguages(ctx, rec, c.opts.Tracker); err != nil {
		logging.WarnWithContext(c.logger, "language detection failed", "language_detection_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "language tag derived from existing evidence only"),
			logging.String(logging.FieldImpact, "release name may omit the audio language tag"),
		)
	}
}

func (c *Composer) languageTag(rec *meta.Record) string {
	target := c.opts.TargetLanguage
	targetAudio := HasTargetLanguageAudio(rec, target)
	if !targetAudio {
		for _, lang := range rec.AudioLanguages {
			if language.NormalizeCode(lang) == target {
				targetAudio = true
				break
			}
		}
	}
	subtitled := !targetAudio && (HasTargetLanguageSubtitles(rec, target) || containsCode(rec.SubtitleLanguages, target))
	return AudioLanguageTag(rec.AudioLanguages, target, subtitled)
}

func (c *Composer) title(rec *meta.Record) string {
	title := strings.TrimSpace(rec.Title)
	if !c.opts.LocalizedTitle {
		return title
	}
	if aka, ok := SelectAlternateTitle(rec.IMDbInfo.AKAs, c.opts.TargetCountry, language.DisplayName(c.opts.TargetLanguage)); ok {
		return aka
	}
	return title
}

func containsCode(values []string, code string) bool {
	for _, v := range values {
		if language.NormalizeCode(v) == code {
			return true
		}
	}
	return false
}
