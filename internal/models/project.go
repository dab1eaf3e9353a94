// internal/models/project.go
package models

import "time"

// Language identifies the content language for a project.
type Language string

const (
	LanguagePTBR Language = "pt-BR"
	LanguageENUS Language = "en-US"
)

// ProjectStatus is a strictly advancing lifecycle enum.
// COMPLETED has no in-process trigger; it can only arrive via an
// explicit status field on a project update.
type ProjectStatus string

const (
	StatusDraft              ProjectStatus = "draft"
	StatusBriefCompleted     ProjectStatus = "brief_completed"
	StatusResearchCompleted  ProjectStatus = "research_completed"
	StatusOfferGenerated     ProjectStatus = "offer_generated"
	StatusMaterialsGenerated ProjectStatus = "materials_generated"
	StatusCompleted          ProjectStatus = "completed"
)

// ExportRecord is one entry in a project's export history log.
type ExportRecord struct {
	ExportType string    `json:"export_type"`
	ExportedAt time.Time `json:"exported_at"`
}

// Project is the aggregate root. Every generation step reads and
// rewrites one of these documents.
type Project struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	UserID   string        `json:"user_id"`
	Language Language      `json:"language"`
	Status   ProjectStatus `json:"status"`

	Brief          *ProductBrief       `json:"brief,omitempty"`
	PainResearch   *PainResearch       `json:"pain_research,omitempty"`
	GeneratedOffer *GeneratedOffer     `json:"generated_offer,omitempty"`
	Materials      *GeneratedMaterials `json:"materials,omitempty"`

	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
	FirstAssetGeneratedAt *time.Time `json:"first_asset_generated_at,omitempty"`
	CompletionTime        *float64   `json:"completion_time,omitempty"` // minutes

	Exports []ExportRecord `json:"exports"`
}

// ProjectCreate is the creation payload.
type ProjectCreate struct {
	Name     string   `json:"name" binding:"required"`
	UserID   string   `json:"user_id" binding:"required"`
	Language Language `json:"language"`
}

// ProjectUpdate carries partial updates; nil fields are left untouched.
type ProjectUpdate struct {
	Name           *string             `json:"name,omitempty"`
	Status         *ProjectStatus      `json:"status,omitempty"`
	Brief          *ProductBrief       `json:"brief,omitempty"`
	PainResearch   *PainResearch       `json:"pain_research,omitempty"`
	GeneratedOffer *GeneratedOffer     `json:"generated_offer,omitempty"`
	Materials      *GeneratedMaterials `json:"materials,omitempty"`
}
