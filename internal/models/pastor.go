package models

import "time"

// Pastor is a staff member assigned to a section.
// All nullable fields use pointers to distinguish between empty values and NULL.
// Age and DateOfBirth are stored as given; nothing reconciles them.
type Pastor struct {
	CreatedAt               time.Time `json:"createdAt"`
	Gender                  *string   `json:"gender"`
	CurrentPosition         string    `json:"currentPosition"`
	IDNo                    *string   `json:"idNo"`
	DateOfBirth             *string   `json:"yearOfBirth"`
	Age                     *int      `json:"age"`
	StartOfService          *string   `json:"startOfService"`
	ProjectedRetirementDate *string   `json:"projectedRetirementDate"`
	RemainingTenure         *int      `json:"remainingTenure"`
	ID                      string    `json:"id"`
	SectionID               string    `json:"sectionId"`
	FullName                string    `json:"fullName"`
	PastorID                string    `json:"pastorId"`
}

// PastorCard is the list/detail projection of a pastor returned to callers.
// The date of birth goes out as yearOfBirth for client compatibility.
type PastorCard struct {
	ID                      string    `json:"id"`
	FullName                string    `json:"fullName"`
	PastorID                string    `json:"pastorId"`
	Gender                  *string   `json:"gender"`
	CurrentPosition         string    `json:"currentPosition"`
	IDNo                    *string   `json:"idNo"`
	YearOfBirth             *string   `json:"yearOfBirth"`
	Age                     *int      `json:"age"`
	StartOfService          *string   `json:"startOfService"`
	ProjectedRetirementDate *string   `json:"projectedRetirementDate"`
	RemainingTenure         *int      `json:"remainingTenure"`
	CreatedAt               time.Time `json:"createdAt"`
}

// Card projects the pastor onto its card view.
func (p *Pastor) Card() PastorCard {
	return PastorCard{
		ID:                      p.ID,
		FullName:                p.FullName,
		PastorID:                p.PastorID,
		Gender:                  p.Gender,
		CurrentPosition:         p.CurrentPosition,
		IDNo:                    p.IDNo,
		YearOfBirth:             p.DateOfBirth,
		Age:                     p.Age,
		StartOfService:          p.StartOfService,
		ProjectedRetirementDate: p.ProjectedRetirementDate,
		RemainingTenure:         p.RemainingTenure,
		CreatedAt:               p.CreatedAt,
	}
}

// PastorRef is the body returned when a pastor is created.
type PastorRef struct {
	ID       string `json:"id"`
	PastorID string `json:"pastorId"`
}
