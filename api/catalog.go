package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nived-gurung/trekbooking/internal/domain"
	"github.com/nived-gurung/trekbooking/internal/repository"
	"github.com/nived-gurung/trekbooking/internal/service/catalog"
)

type CatalogHandler struct {
	service catalog.CatalogUseCase
}

type trekResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Region      string `json:"region"`
	Duration    int    `json:"duration"`
	Difficulty  string `json:"difficulty"`
	MaxAltitude int    `json:"max_altitude,omitempty"`
	PriceCents  int64  `json:"price_cents"`
	Description string `json:"description"`
	Itinerary   string `json:"itinerary"`
	Includes    string `json:"includes"`
	Excludes    string `json:"excludes"`
	ImageURL    string `json:"image_url"`
}

type packageResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Destination string `json:"destination"`
	Duration    int    `json:"duration"`
	PriceCents  int64  `json:"price_cents"`
	Description string `json:"description"`
	Itinerary   string `json:"itinerary"`
	Includes    string `json:"includes"`
	Excludes    string `json:"excludes"`
	ImageURL    string `json:"image_url"`
	PackageType string `json:"package_type"`
}

func NewCatalogHandler(service catalog.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{service: service}
}

func (h *CatalogHandler) RegisterTreks(router *gin.RouterGroup) {
	router.GET("", h.listTreks)
	router.GET("/featured", h.featuredTreks)
	router.GET("/:slug", h.getTrek)
}

func (h *CatalogHandler) RegisterTravel(router *gin.RouterGroup) {
	router.GET("", h.listPackages)
	router.GET("/:slug", h.getPackage)
}

func (h *CatalogHandler) listTreks(c *gin.Context) {
	filter := repository.TrekFilter{
		Region:     c.Query("region"),
		Difficulty: c.Query("difficulty"),
	}
	treks, err := h.service.ListTreks(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTrekResponses(treks))
}

func (h *CatalogHandler) featuredTreks(c *gin.Context) {
	treks, err := h.service.FeaturedTreks(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTrekResponses(treks))
}

func (h *CatalogHandler) getTrek(c *gin.Context) {
	trek, err := h.service.GetTrekBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTrekResponse(*trek))
}

func (h *CatalogHandler) listPackages(c *gin.Context) {
	filter := repository.PackageFilter{
		Destination: c.Query("destination"),
		PackageType: c.Query("type"),
	}
	packages, err := h.service.ListPackages(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPackageResponses(packages))
}

func (h *CatalogHandler) getPackage(c *gin.Context) {
	pkg, err := h.service.GetPackageBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPackageResponse(*pkg))
}

func toTrekResponse(t domain.Trek) trekResponse {
	return trekResponse{
		ID:          t.ID,
		Name:        t.Name,
		Slug:        t.Slug,
		Region:      t.Region,
		Duration:    t.Duration,
		Difficulty:  string(t.Difficulty),
		MaxAltitude: t.MaxAltitude,
		PriceCents:  t.PriceCents,
		Description: t.Description,
		Itinerary:   t.Itinerary,
		Includes:    t.Includes,
		Excludes:    t.Excludes,
		ImageURL:    t.ImageURL,
	}
}

func toTrekResponses(treks []domain.Trek) []trekResponse {
	out := make([]trekResponse, 0, len(treks))
	for _, t := range treks {
		out = append(out, toTrekResponse(t))
	}
	return out
}

func toPackageResponse(p domain.TravelPackage) packageResponse {
	return packageResponse{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Destination: p.Destination,
		Duration:    p.Duration,
		PriceCents:  p.PriceCents,
		Description: p.Description,
		Itinerary:   p.Itinerary,
		Includes:    p.Includes,
		Excludes:    p.Excludes,
		ImageURL:    p.ImageURL,
		PackageType: p.PackageType,
	}
}

func toPackageResponses(packages []domain.TravelPackage) []packageResponse {
	out := make([]packageResponse, 0, len(packages))
	for _, p := range packages {
		out = append(out, toPackageResponse(p))
	}
	return out
}
