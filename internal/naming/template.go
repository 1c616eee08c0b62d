package naming

import (
	"fmt"
	"sort"
	"strings"

	"marquee/internal/meta"
)

// Token names one slot in a release-name template.
type Token string

const (
	TokenTitle         Token = "title"
	TokenYear          Token = "year"
	TokenSeasonEpisode Token = "season_episode"
	TokenSeason        Token = "season"
	TokenEpisodeTitle  Token = "episode_title"
	TokenPart          Token = "part"
	Token3D            Token = "3d"
	TokenAudioLangTag  Token = "audio_lang_tag"
	TokenEdition       Token = "edition"
	TokenHybrid        Token = "hybrid"
	TokenRepack        Token = "repack"
	TokenResolution    Token = "resolution"
	TokenRegion        Token = "region"
	TokenUHD           Token = "uhd"
	TokenSource        Token = "source"
	TokenService       Token = "service"
	TokenTypeLabel     Token = "type_label"
	TokenRemux         Token = "remux"
	TokenHDR           Token = "hdr"
	TokenVideoCodec    Token = "video_codec"
	TokenVideoEncode   Token = "video_encode"
	TokenAudio         Token = "audio"
	TokenDVDSize       Token = "dvd_size"
)

var knownTokens = map[Token]struct{}{
	TokenTitle: {}, TokenYear: {}, TokenSeasonEpisode: {}, TokenSeason: {},
	TokenEpisodeTitle: {}, TokenPart: {}, Token3D: {}, TokenAudioLangTag: {},
	TokenEdition: {}, TokenHybrid: {}, TokenRepack: {}, TokenResolution: {},
	TokenRegion: {}, TokenUHD: {}, TokenSource: {}, TokenService: {},
	TokenTypeLabel: {}, TokenRemux: {}, TokenHDR: {}, TokenVideoCodec: {},
	TokenVideoEncode: {}, TokenAudio: {}, TokenDVDSize: {},
}

// Template keys select a token order for a (type, disc) pair.
const (
	KeyDiscBDMV  = "disc_bdmv"
	KeyDiscDVD   = "disc_dvd"
	KeyDiscHDDVD = "disc_hddvd"
	KeyRemux     = "remux"
	KeyRip       = "rip"
	KeyEncode    = "encode"
	KeyWeb       = "web"
)

// TemplateSet is one revision of the token orders for every release type.
type TemplateSet struct {
	Version   string
	Templates map[string][]Token
}

// DefaultTemplateVersion is the revision selected when configuration names none.
const DefaultTemplateVersion = "2025.2"

var builtinTemplates = map[string]TemplateSet{
	DefaultTemplateVersion: {
		Version: DefaultTemplateVersion,
		Templates: map[string][]Token{
			KeyDiscBDMV: {
				TokenTitle, TokenYear, TokenSeasonEpisode, Token3D, TokenEdition, TokenHybrid,
				TokenRepack, TokenResolution, TokenRegion, TokenUHD, TokenSource, TokenHDR,
				TokenVideoCodec, TokenAudio,
			},
			KeyDiscDVD: {
				TokenTitle, TokenYear, TokenSeasonEpisode, Token3D, TokenEdition, TokenRepack,
				TokenResolution, TokenRegion, TokenSource, TokenDVDSize, TokenAudio,
			},
			KeyDiscHDDVD: {
				TokenTitle, TokenYear, TokenEdition, TokenRepack, TokenResolution, TokenRegion,
				TokenSource, TokenVideoCodec, TokenAudio,
			},
			KeyRemux: {
				TokenTitle, TokenYear, TokenSeasonEpisode, TokenEpisodeTitle, TokenPart, Token3D,
				TokenAudioLangTag, TokenEdition, TokenHybrid, TokenRepack, TokenResolution, TokenUHD,
				TokenSource, TokenRemux, TokenHDR, TokenVideoCodec, TokenAudio,
			},
			KeyRip: {
				TokenTitle, TokenYear, TokenSeason, TokenAudioLangTag, TokenEdition, TokenHybrid,
				TokenRepack, TokenResolution, TokenTypeLabel, TokenAudio, TokenHDR, TokenVideoEncode,
			},
			KeyEncode: {
				TokenTitle, TokenYear, TokenSeasonEpisode, TokenEpisodeTitle, TokenPart,
				TokenAudioLangTag, TokenEdition, TokenHybrid, TokenRepack, TokenResolution, TokenUHD,
				TokenSource, TokenAudio, TokenHDR, TokenVideoEncode,
			},
			KeyWeb: {
				TokenTitle, TokenYear, TokenSeasonEpisode, TokenEpisodeTitle, TokenPart,
				TokenAudioLangTag, TokenEdition, TokenHybrid, TokenRepack, TokenResolution, TokenUHD,
				TokenService, TokenTypeLabel, TokenAudio, TokenHDR, TokenVideoEncode,
			},
		},
	},
}

// TemplateVersions lists the built-in revisions in sorted order.
func TemplateVersions() []string {
	versions := make([]string, 0, len(builtinTemplates))
	for v := range builtinTemplates {
		versions = append(versions, v)
	}
	sort.Strings(versions)
	return versions
}

// LoadTemplates returns the built-in revision with any per-key overrides
// applied. Overrides replace a key's token list wholesale.
func LoadTemplates(version string, overrides map[string][]string) (TemplateSet, error) {
	version = strings.TrimSpace(version)
	if version == "" {
		version = DefaultTemplateVersion
	}
	base, ok := builtinTemplates[version]
	if !ok {
		return TemplateSet{}, fmt.Errorf("unknown template version %q (known: %s)", version, strings.Join(TemplateVersions(), ", "))
	}
	set := TemplateSet{Version: base.Version, Templates: make(map[string][]Token, len(base.Templates))}
	for key, tokens := range base.Templates {
		set.Templates[key] = append([]Token(nil), tokens...)
	}
	for key, names := range overrides {
		key = strings.ToLower(strings.TrimSpace(key))
		if _, ok := base.Templates[key]; !ok {
			return TemplateSet{}, fmt.Errorf("unknown template key %q", key)
		}
		tokens := make([]Token, 0, len(names))
		for _, name := range names {
			token := Token(strings.ToLower(strings.TrimSpace(name)))
			if _, ok := knownTokens[token]; !ok {
				return TemplateSet{}, fmt.Errorf("template %s: unknown token %q", key, name)
			}
			tokens = append(tokens, token)
		}
		set.Templates[key] = tokens
	}
	return set, nil
}

// DefaultTemplates returns the default revision without overrides.
func DefaultTemplates() TemplateSet {
	set, _ := LoadTemplates(DefaultTemplateVersion, nil)
	return set
}

// templateKey maps the record discriminants to a template key. The boolean is
// false when the record falls outside the table and the fallback applies.
func templateKey(t meta.Type, disc meta.DiscType) (string, bool) {
	switch t {
	case meta.TypeDisc:
		switch disc {
		case meta.DiscBDMV:
			return KeyDiscBDMV, true
		case meta.DiscDVD:
			return KeyDiscDVD, true
		case meta.DiscHDDVD:
			return KeyDiscHDDVD, true
		}
		return "", false
	case meta.TypeRemux:
		return KeyRemux, true
	case meta.TypeDVDRip, meta.TypeBRRip:
		return KeyRip, true
	case meta.TypeEncode, meta.TypeHDTV:
		return KeyEncode, true
	case meta.TypeWebDL, meta.TypeWebRip:
		return KeyWeb, true
	}
	return "", false
}
