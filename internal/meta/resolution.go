package meta

// Resolution is a vertical resolution label such as "1080p".
type Resolution string

// resolutionOrder lists labels from highest to lowest.
var resolutionOrder = []Resolution{
	"8640p", "4320p", "2160p", "1440p", "1080p", "1080i",
	"720p", "576p", "576i", "540p", "480p", "480i", "384p",
}

// Resolutions returns the known labels ordered from highest to lowest.
func Resolutions() []Resolution {
	return append([]Resolution(nil), resolutionOrder...)
}

// Rank returns the position of r in the ordering where 0 is the highest
// resolution. Unknown labels rank below every known one.
func (r Resolution) Rank() int {
	for i, known := range resolutionOrder {
		if known == r {
			return i
		}
	}
	return len(resolutionOrder)
}

// AtLeast reports whether r is the same as or higher than other.
func (r Resolution) AtLeast(other Resolution) bool {
	rank := r.Rank()
	return rank < len(resolutionOrder) && rank <= other.Rank()
}
