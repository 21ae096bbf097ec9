// Package version exposes build metadata stamped in via -ldflags.
package version

// Set at build time with:
//
//	-ldflags "-X github.com/charfang/charfang/pkg/version.Version=v1.2.3 ..."
var (
	// Version is the release tag of the running binary.
	Version = "dev"
	// Commit is the git hash the binary was built from.
	Commit = "unknown"
	// Date is the build timestamp.
	Date = "unknown"
)
