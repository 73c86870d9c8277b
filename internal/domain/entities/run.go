package entities

import "time"

// Run is one persisted pass of the pipeline over an input file.
type Run struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Total     int       `json:"total"`
	Persons   int       `json:"persons"`
	Flagged   int       `json:"flagged"`
	CreatedAt time.Time `json:"created_at"`
}

// Excluded returns how many records cannot enter the hierarchy.
func (r Run) Excluded() int {
	return r.Total - r.Persons + r.Flagged
}
