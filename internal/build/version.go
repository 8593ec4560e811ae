package build

import "fmt"

// Set at link time with -ldflags "-X ..."
var (
	ShortVersion   = "dev"
	ProjectVersion = "unknown"
	GitRef         = "unknown"
	BuildDate      = "unknown"
)

var LongVersion = fmt.Sprintf("%s (%s, %s, %s)", ShortVersion, ProjectVersion, GitRef, BuildDate)
