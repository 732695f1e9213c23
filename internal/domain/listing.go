package domain

import "time"

// Defaults used when the portal markup carries no employer/location for an
// entry. Most postings on the portal are government positions, so these match
// what the site itself displays.
const (
	DefaultEmployer = "Gobierno de Santa Fe"
	DefaultLocation = "Santa Fe"
)

// Listing is one job posting extracted from the portal page.
//
// JSON tags keep the Spanish field names so state snapshots written by the
// previous monitor deployment stay loadable.
type Listing struct {
	Title       string    `json:"titulo"`
	Employer    string    `json:"empresa"`
	Location    string    `json:"ubicacion"`
	URL         string    `json:"enlace"`
	DetectedAt  time.Time `json:"fecha_deteccion"`
	Fingerprint string    `json:"hash"`
}
