package domain

// ProjectSummary is a single search hit: enough to draw a marker and a list row.
type ProjectSummary struct {
	// ID identifies the project. Unique within a result set.
	ID int64 `json:"id"`

	// Name is the registered project name.
	Name string `json:"name"`

	// Latitude is the marker latitude in decimal degrees.
	Latitude float64 `json:"latitude"`

	// Longitude is the marker longitude in decimal degrees.
	Longitude float64 `json:"longitude"`
}

// Position returns the summary's coordinate.
func (p ProjectSummary) Position() LatLng {
	return LatLng{Lat: p.Latitude, Lon: p.Longitude}
}

// ProjectDetails holds the full attributes of a registered project.
// Dates are display strings and are never parsed.
type ProjectDetails struct {
	ProjectName            string `json:"project_name"`
	PromoterName           string `json:"promoter_name"`
	ProjectStatus          string `json:"project_status"`
	RERARegistrationNumber string `json:"rera_registration_number"`
	SourceOfWater          string `json:"source_of_water"`
	ApprovingAuthority     string `json:"approving_authority"`
	ProjectStartDate       string `json:"project_start_date"`
	ProposedCompletionDate string `json:"proposed_completion_date"`
}

// Project is a catalogue row: the summary, its details and the fields the
// catalogue filters on. Only storage adapters and the importer see it.
type Project struct {
	ProjectSummary
	ProjectDetails

	// District is the administrative district (e.g. "BENGALURU URBAN").
	District string

	// Taluk is the sub-district.
	Taluk string

	// LandUnderLitigation is "YES" or "NO" as published by the regulator.
	LandUnderLitigation string

	// ApprovalStatus is the regulator approval status (e.g. "APPROVED").
	ApprovalStatus string

	// HasLocation is false when the source row had no usable coordinates.
	HasLocation bool
}

// ResultSet is the ordered collection of project summaries currently displayed.
// Order is the backend response order. A ResultSet is replaced wholesale,
// never mutated in place.
type ResultSet []ProjectSummary

// Len returns the number of summaries.
func (r ResultSet) Len() int {
	return len(r)
}

// Contains reports whether a summary with the given id is present.
func (r ResultSet) Contains(id int64) bool {
	_, ok := r.Find(id)
	return ok
}

// Find returns the summary with the given id.
func (r ResultSet) Find(id int64) (ProjectSummary, bool) {
	for _, p := range r {
		if p.ID == id {
			return p, true
		}
	}
	return ProjectSummary{}, false
}

// Clone returns a copy that shares no backing array with r.
func (r ResultSet) Clone() ResultSet {
	if r == nil {
		return ResultSet{}
	}
	out := make(ResultSet, len(r))
	copy(out, r)
	return out
}
