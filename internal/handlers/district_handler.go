package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kagretirement/registry/api/internal/models"
	"github.com/kagretirement/registry/api/internal/services"
)

// DistrictHandler handles district-related HTTP requests.
type DistrictHandler struct {
	service services.DistrictService
}

// NewDistrictHandler creates a new DistrictHandler instance.
func NewDistrictHandler(service services.DistrictService) *DistrictHandler {
	return &DistrictHandler{
		service: service,
	}
}

// CreateDistrictRequest is the body of POST /districts.
type CreateDistrictRequest struct {
	Name         string          `json:"name"`
	SectionCount models.LooseInt `json:"sectionCount"`
}

// UpdateDistrictRequest is the body of PATCH /districts/:id. A present
// sectionCount overwrites the cached count as given.
type UpdateDistrictRequest struct {
	Name         models.Optional[string] `json:"name"`
	SectionCount models.LooseInt         `json:"sectionCount"`
}

// List handles GET /api/v1/districts.
func (h *DistrictHandler) List(c *gin.Context) {
	districts, err := h.service.ListDistricts(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list districts")
		return
	}

	c.JSON(http.StatusOK, districts)
}

// Get handles GET /api/v1/districts/:id.
func (h *DistrictHandler) Get(c *gin.Context) {
	district, err := h.service.GetDistrict(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to load district")
		return
	}

	c.JSON(http.StatusOK, district)
}

// Create handles POST /api/v1/districts.
func (h *DistrictHandler) Create(c *gin.Context) {
	var req CreateDistrictRequest
	if !bindJSON(c, &req) {
		return
	}

	district, err := h.service.CreateDistrict(c.Request.Context(), services.CreateDistrictInput{
		Name:         req.Name,
		SectionCount: req.SectionCount,
	})
	if err != nil {
		respondError(c, err, "Failed to create district")
		return
	}

	c.JSON(http.StatusCreated, district)
}

// Update handles PATCH /api/v1/districts/:id.
func (h *DistrictHandler) Update(c *gin.Context) {
	var req UpdateDistrictRequest
	if !bindJSON(c, &req) {
		return
	}

	district, err := h.service.UpdateDistrict(c.Request.Context(), c.Param("id"), services.UpdateDistrictInput{
		Name:                 req.Name,
		SectionCountOverride: req.SectionCount,
	})
	if err != nil {
		respondError(c, err, "Failed to update district")
		return
	}

	c.JSON(http.StatusOK, district)
}

// Delete handles DELETE /api/v1/districts/:id. Sections of the district
// are kept.
func (h *DistrictHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteDistrict(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete district")
		return
	}

	c.Status(http.StatusNoContent)
}
