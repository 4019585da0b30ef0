package model

// All is the sentinel filter value that disables category or location
// filtering.
const All = "All"

// Reference holds the enumerated lists used to populate filters and forms.
// Either list may be empty when the backend could not be reached.
type Reference struct {
	Categories []string
	Locations  []string
}
