package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"marquee/internal/config"
	"marquee/internal/history"
	"marquee/internal/langdetect"
	"marquee/internal/logging"
	"marquee/internal/mkbrr"
	"marquee/internal/naming"
	"marquee/internal/notifications"
	"marquee/internal/services"
	"marquee/internal/trackers"
	"marquee/internal/workflow"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = services.Wrap(services.ErrConfiguration, "cli", "config", "", err)
			return
		}
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			cfg.Logging.Level = strings.ToLower(strings.TrimSpace(*c.logLevelFlag))
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// log returns the configured logger, falling back to console output when the
// log file cannot be opened.
func (c *commandContext) log() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, _ := c.ensureConfig()
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			logger, _ = logging.NewFromConfig(nil)
			logger.Warn("log file unavailable", logging.Error(err))
		}
		c.logger = logger
	})
	return c.logger
}

// composers builds one name composer per tracker from the [naming] section.
func (c *commandContext) composers(cfg *config.Config, names []string) (map[string]*naming.Composer, error) {
	logger := c.log()
	detector := langdetect.New(
		langdetect.WithProber(langdetect.CommandProber{}),
		langdetect.WithLogger(logger),
	)
	out := make(map[string]*naming.Composer, len(names))
	for _, name := range names {
		opts, err := naming.OptionsFromConfig(cfg.Naming, name)
		if err != nil {
			return nil, err
		}
		out[name] = naming.NewComposer(opts, naming.WithDetector(detector), naming.WithLogger(logger))
	}
	return out, nil
}

// registry builds adapters for the configured trackers. With includeKnown,
// supported trackers missing from the config are added disabled so they can
// still be named explicitly.
func (c *commandContext) registry(cfg *config.Config, includeKnown bool) (*trackers.Registry, error) {
	cfgs := make(map[string]config.Tracker, len(cfg.Trackers))
	for name, t := range cfg.Trackers {
		cfgs[name] = t
	}
	if includeKnown {
		for _, name := range trackers.Known() {
			if _, ok := cfgs[name]; !ok {
				cfgs[name] = config.Tracker{}
			}
		}
	}
	names := make([]string, 0, len(cfgs))
	for name := range cfgs {
		names = append(names, strings.ToUpper(name))
	}
	composers, err := c.composers(cfg, names)
	if err != nil {
		return nil, err
	}
	return trackers.NewRegistry(cfgs, func(name string) *naming.Composer {
		return composers[name]
	})
}

// manager assembles the workflow with its collaborators. The returned
// closer releases the history store.
func (c *commandContext) manager(debug bool) (*workflow.Manager, func(), error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger := c.log()
	registry, err := c.registry(cfg, false)
	if err != nil {
		return nil, nil, err
	}
	creator, err := mkbrr.NewFromConfig(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	store, err := history.OpenFromConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	uploader := trackers.NewUploader(trackers.UploaderOptions{
		UserAgent: cfg.Upload.UserAgent,
		Timeout:   uploadTimeout(cfg),
		Debug:     debug || cfg.Upload.Debug,
		Logger:    logger,
	})

	opts := []workflow.Option{
		workflow.WithTorrentCreator(creator),
		workflow.WithSubmitter(uploader),
		workflow.WithNotifier(notifications.NewService(cfg)),
		workflow.WithLogger(logger),
	}
	if store != nil {
		opts = append(opts, workflow.WithHistory(store))
	}
	closer := func() {
		if err := store.Close(); err != nil {
			logger.Warn("history close failed", logging.Error(err))
		}
	}
	return workflow.NewManager(cfg, registry, opts...), closer, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
