package models

import "time"

// District is the top-level organizational unit. SectionCount mirrors the
// number of sections whose DistrictID references it.
type District struct {
	CreatedAt    time.Time `json:"createdAt"`
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	SectionCount int       `json:"sectionCount"`
}
