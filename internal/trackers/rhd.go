package trackers

import (
	"marquee/internal/config"
	"marquee/internal/meta"
	"marquee/internal/naming"
)

const rhdBaseURL = "https://rocket-hd.cc"

var rhdResolutionIDs = map[meta.Resolution]string{
	"8640p": "10",
	"4320p": "1",
	"2160p": "2",
	"1440p": "3",
	"1080p": "3",
	"1080i": "4",
	"720p":  "5",
	"576p":  "12",
	"576i":  "13",
	"540p":  "16",
	"480p":  "11",
	"480i":  "18",
	"384p":  "14",
}

var rhdBannedGroups = []string{
	"1XBET", "MEGA", "MTZ", "Whistler", "WOTT", "Taylor.D", "HELD", "FSX", "FuN",
	"MagicX", "w00t", "PaTroL", "BB", "266ers", "GTF", "JellyfinPlex", "2BA", "FritzBox",
}

// RHD is RocketHD, a German-language UNIT3D tracker.
type RHD struct {
	unit3D
}

// NewRHD constructs the RHD adapter.
func NewRHD(cfg config.Tracker, composer *naming.Composer) *RHD {
	t := &RHD{unit3D: newUnit3D("RHD", rhdBaseURL, cfg, composer)}
	t.resolutionIDs = rhdResolutionIDs
	t.banned = rhdBannedGroups
	return t
}

// Form builds the upload request.
func (t *RHD) Form(rec *meta.Record, sub Submission) (Form, error) {
	return t.form(rec, sub, t, nil)
}
