// internal/api/handlers.go
package api

import (
	"encoding/base64"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/offerforge/offerforge/internal/models"
	"github.com/offerforge/offerforge/internal/services"
)

// Handler bundles the HTTP endpoints with their backing services.
type Handler struct {
	projects *services.ProjectService
	avatars  *services.AvatarService
	exports  *services.ExportService
	landing  *services.LandingService
	pricing  *services.PricingService
	llm      *services.LLMService
	stats    *services.StatsService

	stripeConfigured bool
	responses        *ResponseHelper
}

// NewHandler creates the API handler.
func NewHandler(
	projects *services.ProjectService,
	avatars *services.AvatarService,
	exports *services.ExportService,
	landing *services.LandingService,
	pricing *services.PricingService,
	llm *services.LLMService,
	stats *services.StatsService,
	stripeConfigured bool,
) *Handler {
	return &Handler{
		projects:         projects,
		avatars:          avatars,
		exports:          exports,
		landing:          landing,
		pricing:          pricing,
		llm:              llm,
		stats:            stats,
		stripeConfigured: stripeConfigured,
		responses:        NewResponseHelper(),
	}
}

// Root returns the API banner.
func (h *Handler) Root(c *gin.Context) {
	h.responses.Success(c, gin.H{
		"message": "OfferForge API is running",
		"version": "2.0.0",
	})
}

// Health reports service readiness.
func (h *Handler) Health(c *gin.Context) {
	llmStatus := "not configured"
	if h.llm.IsReady() {
		llmStatus = "configured"
	}

	stripeStatus := "not configured"
	if h.stripeConfigured {
		stripeStatus = "configured"
	}

	h.responses.Success(c, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"services": gin.H{
			"storage": "connected",
			"llm":     llmStatus,
			"stripe":  stripeStatus,
		},
	})
}

// CreateProject registers a new project.
func (h *Handler) CreateProject(c *gin.Context) {
	var req models.ProjectCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responses.BadRequest(c, "Invalid project payload: "+err.Error())
		return
	}

	project, err := h.projects.CreateProject(req)
	if err != nil {
		h.responses.ServiceError(c, err, "Failed to create project")
		return
	}

	h.responses.Success(c, project)
}

// ListProjects returns projects, optionally filtered by user_id.
func (h *Handler) ListProjects(c *gin.Context) {
	userID := c.Query("user_id")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	projects, err := h.projects.ListProjects(userID, limit)
	if err != nil {
		h.responses.ServiceError(c, err, "Failed to fetch projects")
		return
	}

	h.responses.Success(c, projects)
}

// GetProject returns one project by ID.
func (h *Handler) GetProject(c *gin.Context) {
	project, err := h.projects.GetProject(c.Param("id"))
	if err != nil {
		h.responses.ServiceError(c, err, "Failed to fetch project")
		return
	}

	h.responses.Success(c, project)
}

// UpdateProject applies a partial update to a project.
func (h *Handler) UpdateProject(c *gin.Context) {
	var updates models.ProjectUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		h.responses.BadRequest(c, "Invalid update payload: "+err.Error())
		return
	}

	project, err := h.projects.UpdateProject(c.Param("id"), updates)
	if err != nil {
		h.responses.ServiceError(c, err, "Failed to update project")
		return
	}

	h.responses.Success(c, project)
}

// DeleteProject removes a project.
func (h *Handler) DeleteProject(c *gin.Context) {
	if err := h.projects.DeleteProject(c.Param("id")); err != nil {
		h.responses.ServiceError(c, err, "Failed to delete project")
		return
	}

	h.responses.Success(c, gin.H{"message": "Project deleted successfully"})
}

// CreateAvatar registers a new audience profile.
func (h *Handler) CreateAvatar(c *gin.Context) {
	var req models.AvatarCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responses.BadRequest(c, "Invalid avatar payload: "+err.Error())
		return
	}

	avatar, err := h.avatars.CreateAvatar(req)
	if err != nil {
		h.responses.ServiceError(c, err, "Failed to create avatar")
		return
	}

	h.responses.Success(c, avatar)
}

// ListAvatars returns stored audience profiles.
func (h *Handler) ListAvatars(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	avatars, err := h.avatars.ListAvatars(limit)
	if err != nil {
		h.responses.ServiceError(c, err, "Failed to fetch avatars")
		return
	}

	h.responses.Success(c, avatars)
}

// GenerateOffer runs offer synthesis for a project.
func (h *Handler) GenerateOffer(c *gin.Context) {
	offer, err := h.projects.GenerateOffer(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.responses.ServiceError(c, err, "Failed to generate offer")
		return
	}

	h.responses.Success(c, gin.H{"success": true, "offer": offer})
}

type materialsRequest struct {
	MaterialTypes []string `json:"material_types"`
}

// GenerateMaterials generates the requested material kinds for a
// project; all kinds when the body is empty.
func (h *Handler) GenerateMaterials(c *gin.Context) {
	var req materialsRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.responses.BadRequest(c, "Invalid materials payload: "+err.Error())
			return
		}
	}

	materials, err := h.projects.GenerateMaterials(c.Request.Context(), c.Param("id"), req.MaterialTypes)
	if err != nil {
		h.responses.ServiceError(c, err, "Failed to generate materials")
		return
	}

	h.responses.Success(c, gin.H{"success": true, "materials": materials})
}

// GenerateLandingPage renders a landing page for a project.
func (h *Handler) GenerateLandingPage(c *gin.Context) {
	templateName := c.DefaultQuery("template_name", services.TemplateMobileModern)

	page, err := h.projects.GenerateLandingPage(c.Param("id"), templateName)
	if err != nil {
		h.responses.ServiceError(c, err, "Failed to generate landing page")
		return
	}

	h.responses.Success(c, gin.H{"success": true, "landing_page": page})
}

// ExportProject packages a project into the requested artifact format.
func (h *Handler) ExportProject(c *gin.Context) {
	var req models.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.responses.BadRequest(c, "Invalid export payload: "+err.Error())
		return
	}

	projectID := c.Param("id")
	project, err := h.projects.GetProject(projectID)
	if err != nil {
		h.responses.ServiceError(c, err, "Failed to export project")
		return
	}

	exportType := strings.ToLower(req.ExportType)

	var (
		fileData string
		message  string
	)

	switch exportType {
	case models.ExportTypeZIP:
		fileData, err = h.exports.ExportZIP(project, true, true, true)
		message = "Complete project package exported successfully"

	case models.ExportTypePDF:
		fileData, err = h.exports.ExportPDF(project)
		message = "Project exported as PDF successfully"

	case models.ExportTypeHTML:
		if project.Materials == nil || project.Materials.LandingPage == nil {
			h.responses.BadRequest(c, "Landing page not generated yet")
			return
		}
		fileData, err = h.landing.ExportZIP(project.Materials.LandingPage, project.Name)
		message = "Landing page exported as HTML package successfully"

	case models.ExportTypeJSON:
		var jsonContent string
		jsonContent, err = h.exports.ExportJSON(project)
		if err == nil {
			fileData = base64.StdEncoding.EncodeToString([]byte(jsonContent))
		}
		message = "Project materials exported as JSON successfully"

	default:
		h.responses.BadRequest(c, "Invalid export type. Supported: zip, pdf, html, json")
		return
	}

	if err != nil {
		h.responses.ServiceError(c, err, "Failed to export project")
		return
	}

	// The artifact is already built; history bookkeeping must not fail
	// the export.
	if err := h.projects.RecordExport(projectID, exportType); err != nil {
		h.responses.logger.Warnf("Failed to record export for project %s: %v", projectID, err)
	}

	h.responses.Success(c, models.ExportResponse{Success: true, FileData: fileData, Message: message})
}

// PriceSuggestion computes a market-informed price suggestion.
func (h *Handler) PriceSuggestion(c *gin.Context) {
	niche := c.Query("niche")
	if niche == "" {
		h.responses.BadRequest(c, "Query parameter 'niche' is required")
		return
	}

	targetPrice, err := strconv.ParseFloat(c.Query("target_price"), 64)
	if err != nil {
		h.responses.BadRequest(c, "Query parameter 'target_price' must be a number")
		return
	}

	currency := c.DefaultQuery("currency", "BRL")

	h.responses.Success(c, h.pricing.SuggestPrice(niche, targetPrice, currency))
}

// Metrics aggregates platform-wide project statistics.
func (h *Handler) Metrics(c *gin.Context) {
	metrics, err := h.projects.Metrics()
	if err != nil {
		h.responses.ServiceError(c, err, "Failed to get metrics")
		return
	}

	h.responses.Success(c, metrics)
}

// UsageStats returns accumulated model usage counters.
func (h *Handler) UsageStats(c *gin.Context) {
	h.responses.Success(c, h.stats.Snapshot())
}
