package model

import (
	"regexp"
	"strings"
)

// PlatformID is the canonical key of a social platform, e.g. "instagram".
// Always build it through NewPlatformID so load and lookup agree on case.
type PlatformID string

var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// NewPlatformID canonicalizes a raw platform name or identifier.
func NewPlatformID(raw string) PlatformID {
	return PlatformID(strings.ToLower(strings.TrimSpace(raw)))
}

func (p PlatformID) String() string {
	return string(p)
}

// PlatformIdentity is the static descriptor of a platform.
// Icon is an opaque handle for the presentation layer.
type PlatformIdentity struct {
	ID    PlatformID `json:"id"`
	Name  string     `json:"name"`
	Color string     `json:"color"`
	Icon  string     `json:"icon,omitempty"`
}

// IsHexColor reports whether color is a "#RRGGBB" triplet.
func IsHexColor(color string) bool {
	return hexColorPattern.MatchString(color)
}
