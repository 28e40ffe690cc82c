// Package mirror locates and fetches Contents indices from Debian mirrors.
//
// A [Locator] names one index by mirror base URL, distribution, component,
// and architecture; its URL follows the conventional repository layout
// <mirror>/dists/<dist>/<component>/Contents-<arch>.gz. A [Fetcher]
// retrieves the located index as a streamed byte source, retrying
// transient failures, and maps HTTP failures to FETCH_ERROR so that
// callers can tell an unreachable mirror from a corrupt index.
package mirror

import (
	"fmt"
	"strings"

	"debtop/pkg/errors"
)

// Default repository settings, matching the Debian UK mirror layout.
const (
	DefaultMirror    = "http://ftp.uk.debian.org/debian"
	DefaultDist      = "stable"
	DefaultComponent = "main"
)

// Architectures lists the ports Debian publishes Contents indices for.
// The list drives the interactive picker and the hint printed when an
// unknown architecture yields an empty index; it is advisory, not a
// validation whitelist, so new ports keep working.
var Architectures = []string{
	"all",
	"amd64",
	"arm64",
	"armel",
	"armhf",
	"i386",
	"mips64el",
	"mipsel",
	"ppc64el",
	"riscv64",
	"s390x",
	"source",
}

// Known reports whether arch is one of the ports in [Architectures].
func Known(arch string) bool {
	for _, a := range Architectures {
		if a == arch {
			return true
		}
	}
	return false
}

// Locator identifies one Contents index on one mirror.
// Zero fields other than Arch are filled by WithDefaults.
type Locator struct {
	Mirror    string `json:"mirror"`
	Dist      string `json:"dist"`
	Component string `json:"component"`
	Arch      string `json:"arch"`
}

// WithDefaults returns a copy of l with empty fields replaced by the
// package defaults. Arch has no default; an index is meaningless without
// one.
func (l Locator) WithDefaults() Locator {
	if l.Mirror == "" {
		l.Mirror = DefaultMirror
	}
	if l.Dist == "" {
		l.Dist = DefaultDist
	}
	if l.Component == "" {
		l.Component = DefaultComponent
	}
	return l
}

// Validate checks that the locator names a fetchable index.
func (l Locator) Validate() error {
	if l.Arch == "" {
		return errors.New(errors.ErrCodeInvalidArch, "architecture is required (e.g. amd64, arm64)")
	}
	if l.Mirror == "" {
		return errors.New(errors.ErrCodeInvalidInput, "mirror base URL is required")
	}
	return nil
}

// URL returns the index location in the conventional repository layout.
func (l Locator) URL() string {
	return fmt.Sprintf("%s/dists/%s/%s/Contents-%s.gz",
		strings.TrimRight(l.Mirror, "/"), l.Dist, l.Component, l.Arch)
}

// String renders the locator for log lines.
func (l Locator) String() string {
	return fmt.Sprintf("%s/%s Contents-%s", l.Dist, l.Component, l.Arch)
}
