package models

import "time"

// Section belongs to a district. DistrictID is an advisory reference: the
// district may not exist.
type Section struct {
	CreatedAt   time.Time `json:"createdAt"`
	ID          string    `json:"id"`
	DistrictID  string    `json:"districtId"`
	Name        string    `json:"name"`
	ChurchCount int       `json:"churchCount"`
}
