package handlers

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the registry endpoints on v1.
func RegisterRoutes(v1 *gin.RouterGroup, districts *DistrictHandler, sections *SectionHandler, pastors *PastorHandler) {
	d := v1.Group("/districts")
	{
		d.GET("", districts.List)
		d.POST("", districts.Create)
		d.GET("/:id", districts.Get)
		d.PATCH("/:id", districts.Update)
		d.DELETE("/:id", districts.Delete)
		d.GET("/:id/sections", sections.ListByDistrict)
		d.POST("/:id/sections", sections.Create)
	}

	s := v1.Group("/sections")
	{
		s.GET("/:id", sections.Get)
		s.PATCH("/:id", sections.Update)
		s.DELETE("/:id", sections.Delete)
		s.GET("/:id/pastors", pastors.ListBySection)
		s.POST("/:id/pastors", pastors.Create)
	}

	p := v1.Group("/pastors")
	{
		p.GET("/:id", pastors.Get)
		p.PATCH("/:id", pastors.Update)
		p.DELETE("/:id", pastors.Delete)
	}
}
