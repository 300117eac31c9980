package bookhound

import "strings"

// Library represents one selectable library or branch of a catalog site.
//
// Instances are created once per directory refresh and are immutable after
// construction; their lifetime is bounded by the directory cache TTL.
type Library struct {
	// ID is globally unique, formed as "<serviceName>:<siteLocalKey>".
	// The prefix before the first colon is the sole routing key used to
	// decide which service owns the library.
	ID string `json:"id"`

	// Name is the site-normalized display name.
	Name string `json:"name"`

	// Coordinate is nil when geocoding found nothing or is disabled.
	Coordinate *Coordinate `json:"coordinate,omitempty"`
}

// Validate returns an error if the library contains invalid fields.
func (l *Library) Validate() error {
	if l.ID == "" {
		return Errorf(EINVALID, "library ID required")
	}
	if !strings.Contains(l.ID, ":") {
		return Errorf(EINVALID, "library ID %q missing service prefix", l.ID)
	}
	if l.Name == "" {
		return Errorf(EINVALID, "library name required")
	}
	return nil
}

// ServiceName returns the service prefix of a library ID, the part before
// the first colon. Returns an empty string if the ID carries no prefix.
func ServiceName(libraryID string) string {
	name, _, ok := strings.Cut(libraryID, ":")
	if !ok {
		return ""
	}
	return name
}

// Coordinate is a WGS84 latitude/longitude pair.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
