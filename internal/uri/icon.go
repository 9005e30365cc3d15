package uri

// Presentation icon tokens keyed off the source namespace.
const (
	IconFolder     = "folder"
	IconGoogle     = "google"
	IconPodcast    = "podcast"
	IconMicrophone = "microphone"
)

var sourceIcons = map[string]string{
	SourceLocal:      IconFolder,
	SourceM3U:        IconFolder,
	SourceGMusic:     IconGoogle,
	"podcast":        IconPodcast,
	"podcast+file":   IconPodcast,
	"podcast+http":   IconPodcast,
	"podcast+https":  IconPodcast,
	"podcast+itunes": IconPodcast,
	SourceTuneIn:     IconMicrophone,
	SourceSomaFM:     IconMicrophone,
	SourceDirble:     IconMicrophone,
}

// SourceIcon returns the icon token for the source that owns uri.
func SourceIcon(uri string) string {
	source, _ := Source(uri)
	return IconFor(source)
}

// IconFor maps a source namespace to an icon token, falling back to the source name itself.
func IconFor(source string) string {
	if icon, ok := sourceIcons[source]; ok {
		return icon
	}
	return source
}
