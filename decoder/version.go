package decoder

// Version numbers, mirroring the library's three-part scheme (spec.md §6.1
// "Version(...)").
const (
	VersionMajor    = 1
	VersionMinor    = 0
	VersionRevision = 0
)

// buildDate/buildTime are populated by the release process via
// `-ldflags "-X github.com/keurnel/decoder/decoder.buildDate=..."`; left
// empty in a development build.
var (
	buildDate string
	buildTime string
)

// Version returns the library's three-part version number and, where the
// binary was built with version information embedded, the build date and
// time strings.
func Version() (major, minor, revision int, date, t string) {
	return VersionMajor, VersionMinor, VersionRevision, buildDate, buildTime
}
