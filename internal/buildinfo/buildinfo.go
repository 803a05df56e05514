// Package buildinfo exposes version information stamped at link time via
// -ldflags "-X github.com/dmitrijs2005/sweetshop/internal/buildinfo.buildVersion=...".
package buildinfo

import (
	"fmt"
	"io"
)

var (
	buildVersion = "N/A"
	buildDate    = "N/A"
	buildCommit  = "N/A"
)

// PrintBuildData writes the build banner to w. Unset values print as "N/A".
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", buildVersion)
	fmt.Fprintf(w, "Build date: %s\n", buildDate)
	fmt.Fprintf(w, "Build commit: %s\n", buildCommit)
}
