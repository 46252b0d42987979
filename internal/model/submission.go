package model

import (
	"math"
	"time"

	"github.com/twpayne/go-geom"
)

// Unit conversion constants. Acres are the source of truth for a
// submission's area; the other units are derived from them.
const (
	HectaresPerAcre = 0.404686
	SqKmPerAcre     = 0.00404686
)

// Coordinate is a geographic point as (longitude, latitude).
type Coordinate struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

// Valid reports whether the coordinate is a finite, in-range lng/lat pair.
func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Lng) || math.IsInf(c.Lng, 0) {
		return false
	}
	if math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) {
		return false
	}
	return c.Lng >= -180 && c.Lng <= 180 && c.Lat >= -90 && c.Lat <= 90
}

// AreaOfInterest is the region being quoted: zero or more polygon or
// multipolygon geometries plus the derived total area and centroid.
// Centroid is nil when the submission carried none.
type AreaOfInterest struct {
	Features []geom.T
	Acres    float64
	Hectares float64
	SqKm     float64
	Centroid *Coordinate
}

type Contact struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
}

type Project struct {
	Name     string `json:"name"`
	Notes    string `json:"notes"`
	Timeline string `json:"timeline"`
}

// Metadata travels with a submission through evaluation and dispatch.
// RequestID is assigned during normalization when absent and is stable for
// the lifetime of the submission so downstream consumers can dedupe.
type Metadata struct {
	RequestID   string    `json:"requestId"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// Submission is one fully normalized quote request. Values are request
// local and immutable once evaluation has run; nothing is persisted.
type Submission struct {
	Contact  Contact
	Project  Project
	AOI      AreaOfInterest
	Service  ServiceOptions
	Metadata Metadata
}
