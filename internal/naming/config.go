package naming

import (
	"marquee/internal/config"
	"marquee/internal/services"
)

// OptionsFromConfig translates the [naming] section into composer options
// for one tracker. Template errors are configuration errors.
func OptionsFromConfig(cfg config.Naming, tracker string) (Options, error) {
	templates, err := LoadTemplates(cfg.TemplateVersion, cfg.Templates)
	if err != nil {
		return Options{}, services.Wrap(services.ErrConfiguration, "naming", "templates", "load templates", err)
	}
	return Options{
		Tracker:          tracker,
		TargetLanguage:   cfg.TargetLanguage,
		TargetCountry:    cfg.TargetCountry,
		GroupSeparator:   cfg.GroupSeparator,
		OmitMissingGroup: cfg.MissingGroup == config.MissingGroupOmit,
		LocalizedTitle:   cfg.LocalizedTitle,
		Templates:        templates,
	}, nil
}
