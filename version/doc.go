// Package version reports build information for the scribe binary.
//
// Values are set at link time:
//
//	go build -ldflags "-X github.com/kbukum/scribe/version.Version=1.2.0 \
//	  -X github.com/kbukum/scribe/version.Commit=$(git rev-parse --short HEAD)"
//
// Unset values fall back to the VCS stamps Go embeds in the binary.
package version
