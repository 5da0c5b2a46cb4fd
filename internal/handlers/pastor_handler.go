package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kagretirement/registry/api/internal/models"
	"github.com/kagretirement/registry/api/internal/services"
)

// PastorHandler handles pastor-related HTTP requests.
type PastorHandler struct {
	service services.PastorService
}

// NewPastorHandler creates a new PastorHandler instance.
func NewPastorHandler(service services.PastorService) *PastorHandler {
	return &PastorHandler{
		service: service,
	}
}

// CreatePastorRequest is the body of POST /sections/:id/pastors.
// The date of birth arrives as yearOfBirth; dateOfBirth is accepted as an
// alias when yearOfBirth is absent.
type CreatePastorRequest struct {
	FullName                string          `json:"fullName"`
	CurrentPosition         string          `json:"currentPosition"`
	PastorID                string          `json:"pastorId"`
	Gender                  *string         `json:"gender"`
	IDNo                    *string         `json:"idNo"`
	YearOfBirth             *string         `json:"yearOfBirth"`
	DateOfBirth             *string         `json:"dateOfBirth"`
	Age                     models.LooseInt `json:"age"`
	StartOfService          *string         `json:"startOfService"`
	ProjectedRetirementDate *string         `json:"projectedRetirementDate"`
	RemainingTenure         models.LooseInt `json:"remainingTenure"`
}

// UpdatePastorRequest is the body of PATCH /pastors/:id. Omitted keys are
// left untouched; a pastorId key is ignored.
type UpdatePastorRequest struct {
	FullName                models.Optional[string] `json:"fullName"`
	CurrentPosition         models.Optional[string] `json:"currentPosition"`
	Gender                  models.Optional[string] `json:"gender"`
	IDNo                    models.Optional[string] `json:"idNo"`
	YearOfBirth             models.Optional[string] `json:"yearOfBirth"`
	DateOfBirth             models.Optional[string] `json:"dateOfBirth"`
	Age                     models.LooseInt         `json:"age"`
	StartOfService          models.Optional[string] `json:"startOfService"`
	ProjectedRetirementDate models.Optional[string] `json:"projectedRetirementDate"`
	RemainingTenure         models.LooseInt         `json:"remainingTenure"`
}

// ListBySection handles GET /api/v1/sections/:id/pastors.
func (h *PastorHandler) ListBySection(c *gin.Context) {
	cards, err := h.service.ListPastors(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to list pastors")
		return
	}

	c.JSON(http.StatusOK, cards)
}

// Get handles GET /api/v1/pastors/:id.
func (h *PastorHandler) Get(c *gin.Context) {
	card, err := h.service.GetPastor(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to load pastor")
		return
	}

	c.JSON(http.StatusOK, card)
}

// Create handles POST /api/v1/sections/:id/pastors. Only the new id and
// pastor code are returned.
func (h *PastorHandler) Create(c *gin.Context) {
	var req CreatePastorRequest
	if !bindJSON(c, &req) {
		return
	}

	dob := req.YearOfBirth
	if dob == nil {
		dob = req.DateOfBirth
	}

	ref, err := h.service.CreatePastor(c.Request.Context(), c.Param("id"), services.CreatePastorInput{
		FullName:                req.FullName,
		CurrentPosition:         req.CurrentPosition,
		PastorID:                req.PastorID,
		Gender:                  req.Gender,
		IDNo:                    req.IDNo,
		DateOfBirth:             dob,
		Age:                     req.Age,
		StartOfService:          req.StartOfService,
		ProjectedRetirementDate: req.ProjectedRetirementDate,
		RemainingTenure:         req.RemainingTenure,
	})
	if err != nil {
		respondError(c, err, "Failed to create pastor")
		return
	}

	c.JSON(http.StatusCreated, ref)
}

// Update handles PATCH /api/v1/pastors/:id and returns the full card.
func (h *PastorHandler) Update(c *gin.Context) {
	var req UpdatePastorRequest
	if !bindJSON(c, &req) {
		return
	}

	dob := req.YearOfBirth
	if !dob.Set {
		dob = req.DateOfBirth
	}

	card, err := h.service.UpdatePastor(c.Request.Context(), c.Param("id"), services.UpdatePastorInput{
		FullName:                req.FullName,
		CurrentPosition:         req.CurrentPosition,
		Gender:                  req.Gender,
		IDNo:                    req.IDNo,
		DateOfBirth:             dob,
		Age:                     req.Age,
		StartOfService:          req.StartOfService,
		ProjectedRetirementDate: req.ProjectedRetirementDate,
		RemainingTenure:         req.RemainingTenure,
	})
	if err != nil {
		respondError(c, err, "Failed to update pastor")
		return
	}

	c.JSON(http.StatusOK, card)
}

// Delete handles DELETE /api/v1/pastors/:id.
func (h *PastorHandler) Delete(c *gin.Context) {
	if err := h.service.DeletePastor(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete pastor")
		return
	}

	c.Status(http.StatusNoContent)
}
