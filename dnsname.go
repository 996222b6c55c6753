package hdns

import (
	"strings"

	"golang.org/x/net/publicsuffix"
)

// CanonicalName returns a DNS name in canonical form:
// - Lowercased
// - Trimmed of surrounding whitespace
// - No trailing dot
func CanonicalName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ToLower(name)
	// remove all trailing dots
	for strings.HasSuffix(name, ".") {
		name = strings.TrimSuffix(name, ".")
	}
	return name
}

// ApexDomain returns the registrable apex (eTLD+1) for a record name, which
// is the zone the name belongs to. Names that do not parse against the
// public suffix list are returned canonicalized but otherwise unchanged.
func ApexDomain(name string) string {
	name = CanonicalName(name)
	apex, err := publicsuffix.EffectiveTLDPlusOne(name)
	if err != nil {
		return name
	}
	return apex
}
