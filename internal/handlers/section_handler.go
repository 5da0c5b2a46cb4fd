package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kagretirement/registry/api/internal/models"
	"github.com/kagretirement/registry/api/internal/services"
)

// SectionHandler handles section-related HTTP requests.
type SectionHandler struct {
	service services.SectionService
}

// NewSectionHandler creates a new SectionHandler instance.
func NewSectionHandler(service services.SectionService) *SectionHandler {
	return &SectionHandler{
		service: service,
	}
}

// CreateSectionRequest is the body of POST /districts/:id/sections.
type CreateSectionRequest struct {
	Name        string          `json:"name"`
	ChurchCount models.LooseInt `json:"churchCount"`
}

// UpdateSectionRequest is the body of PATCH /sections/:id.
type UpdateSectionRequest struct {
	Name        models.Optional[string] `json:"name"`
	ChurchCount models.LooseInt         `json:"churchCount"`
}

// ListByDistrict handles GET /api/v1/districts/:id/sections.
func (h *SectionHandler) ListByDistrict(c *gin.Context) {
	sections, err := h.service.ListSections(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to list sections")
		return
	}

	c.JSON(http.StatusOK, sections)
}

// Get handles GET /api/v1/sections/:id.
func (h *SectionHandler) Get(c *gin.Context) {
	section, err := h.service.GetSection(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to load section")
		return
	}

	c.JSON(http.StatusOK, section)
}

// Create handles POST /api/v1/districts/:id/sections. The district is not
// required to exist.
func (h *SectionHandler) Create(c *gin.Context) {
	var req CreateSectionRequest
	if !bindJSON(c, &req) {
		return
	}

	section, err := h.service.CreateSection(c.Request.Context(), c.Param("id"), services.CreateSectionInput{
		Name:        req.Name,
		ChurchCount: req.ChurchCount,
	})
	if err != nil {
		respondError(c, err, "Failed to create section")
		return
	}

	c.JSON(http.StatusCreated, section)
}

// Update handles PATCH /api/v1/sections/:id.
func (h *SectionHandler) Update(c *gin.Context) {
	var req UpdateSectionRequest
	if !bindJSON(c, &req) {
		return
	}

	section, err := h.service.UpdateSection(c.Request.Context(), c.Param("id"), services.UpdateSectionInput{
		Name:        req.Name,
		ChurchCount: req.ChurchCount,
	})
	if err != nil {
		respondError(c, err, "Failed to update section")
		return
	}

	c.JSON(http.StatusOK, section)
}

// Delete handles DELETE /api/v1/sections/:id.
func (h *SectionHandler) Delete(c *gin.Context) {
	if err := h.service.DeleteSection(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete section")
		return
	}

	c.Status(http.StatusNoContent)
}
