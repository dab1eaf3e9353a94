// internal/services/project_service.go
package services

import (
	"context"
	"math"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/offerforge/offerforge/internal/errors"
	"github.com/offerforge/offerforge/internal/models"
	"github.com/offerforge/offerforge/internal/storage"
	"github.com/offerforge/offerforge/internal/utils"
)

const projectsCollection = "projects"

// DefaultListLimit caps project listings when the caller does not
// specify a limit.
const DefaultListLimit = 50

var statusRank = map[models.ProjectStatus]int{
	models.StatusDraft:              0,
	models.StatusBriefCompleted:     1,
	models.StatusResearchCompleted:  2,
	models.StatusOfferGenerated:     3,
	models.StatusMaterialsGenerated: 4,
	models.StatusCompleted:          5,
}

// ProjectService owns the project lifecycle: CRUD, status advancement,
// generation orchestration and export bookkeeping. Documents are
// last-write-wins; there is no cross-request locking.
type ProjectService struct {
	store   *storage.DocumentStore
	content *ContentService
	landing *LandingService
	logger  *utils.Logger
}

// NewProjectService creates the lifecycle service.
func NewProjectService(store *storage.DocumentStore, content *ContentService, landing *LandingService) *ProjectService {
	return &ProjectService{
		store:   store,
		content: content,
		landing: landing,
		logger:  utils.GetLogger(),
	}
}

// CreateProject registers a new project in DRAFT state. Language
// defaults to pt-BR.
func (s *ProjectService) CreateProject(req models.ProjectCreate) (*models.Project, error) {
	language := req.Language
	if language == "" {
		language = models.LanguagePTBR
	}

	now := time.Now()
	project := &models.Project{
		ID:        uuid.NewString(),
		Name:      req.Name,
		UserID:    req.UserID,
		Language:  language,
		Status:    models.StatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
		Exports:   []models.ExportRecord{},
	}

	if err := s.store.Save(projectsCollection, project.ID, project); err != nil {
		return nil, apperrors.NewProcessingError("Failed to create project", err)
	}

	s.logger.Infof("Project created: %s (%s)", project.ID, project.Name)
	return project, nil
}

// GetProject loads a project by ID.
func (s *ProjectService) GetProject(id string) (*models.Project, error) {
	var project models.Project
	if err := s.store.Load(projectsCollection, id, &project); err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewNotFoundError("Project not found", err)
		}
		return nil, apperrors.NewProcessingError("Failed to fetch project", err)
	}
	return &project, nil
}

// ListProjects returns projects newest first, optionally filtered by
// user, capped at limit.
func (s *ProjectService) ListProjects(userID string, limit int) ([]*models.Project, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	ids, err := s.store.ListIDs(projectsCollection)
	if err != nil {
		return nil, apperrors.NewProcessingError("Failed to fetch projects", err)
	}

	projects := make([]*models.Project, 0, len(ids))
	for _, id := range ids {
		var project models.Project
		if err := s.store.Load(projectsCollection, id, &project); err != nil {
			s.logger.Warnf("Skipping unreadable project %s: %v", id, err)
			continue
		}
		if userID != "" && project.UserID != userID {
			continue
		}
		projects = append(projects, &project)
	}

	sort.Slice(projects, func(i, j int) bool {
		return projects[i].CreatedAt.After(projects[j].CreatedAt)
	})

	if len(projects) > limit {
		projects = projects[:limit]
	}
	return projects, nil
}

// UpdateProject applies a partial update. Attaching a brief or pain
// research advances the status; the status never moves backward through
// attachment, only through an explicit status field in the request.
func (s *ProjectService) UpdateProject(id string, updates models.ProjectUpdate) (*models.Project, error) {
	project, err := s.GetProject(id)
	if err != nil {
		return nil, err
	}

	if updates.Name != nil {
		project.Name = *updates.Name
	}
	if updates.Brief != nil {
		project.Brief = updates.Brief
		advanceStatus(project, models.StatusBriefCompleted)
	}
	if updates.PainResearch != nil {
		project.PainResearch = updates.PainResearch
		advanceStatus(project, models.StatusResearchCompleted)
	}
	if updates.GeneratedOffer != nil {
		project.GeneratedOffer = updates.GeneratedOffer
	}
	if updates.Materials != nil {
		project.Materials = updates.Materials
	}
	if updates.Status != nil {
		project.Status = *updates.Status
	}

	project.UpdatedAt = time.Now()

	if err := s.store.Save(projectsCollection, id, project); err != nil {
		return nil, apperrors.NewProcessingError("Failed to update project", err)
	}
	return project, nil
}

// DeleteProject removes a project document.
func (s *ProjectService) DeleteProject(id string) error {
	if err := s.store.Delete(projectsCollection, id); err != nil {
		if os.IsNotExist(err) {
			return apperrors.NewNotFoundError("Project not found", err)
		}
		return apperrors.NewProcessingError("Failed to delete project", err)
	}
	return nil
}

// GenerateOffer runs offer synthesis for a project. Requires brief and
// pain research; success advances the status and stamps the
// first-asset timestamp once.
func (s *ProjectService) GenerateOffer(ctx context.Context, id string) (*models.GeneratedOffer, error) {
	project, err := s.GetProject(id)
	if err != nil {
		return nil, err
	}

	if project.Brief == nil || project.PainResearch == nil {
		return nil, apperrors.NewPreconditionError("Project must have brief and pain research completed", nil)
	}

	offer, err := s.content.GenerateOffer(ctx, project)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	project.GeneratedOffer = offer
	advanceStatus(project, models.StatusOfferGenerated)
	project.UpdatedAt = now
	if project.FirstAssetGeneratedAt == nil {
		project.FirstAssetGeneratedAt = &now
	}

	if err := s.store.Save(projectsCollection, id, project); err != nil {
		return nil, apperrors.NewProcessingError("Failed to persist generated offer", err)
	}
	return offer, nil
}

// GenerateMaterials generates the requested material kinds (vsl, emails,
// social; all three when none given). Requires brief and generated
// offer. Only the regenerated kinds are replaced on the project; other
// materials are left untouched. Returns the newly generated subset.
func (s *ProjectService) GenerateMaterials(ctx context.Context, id string, kinds []string) (*models.GeneratedMaterials, error) {
	project, err := s.GetProject(id)
	if err != nil {
		return nil, err
	}

	if project.Brief == nil || project.GeneratedOffer == nil {
		return nil, apperrors.NewPreconditionError("Project must have brief and generated offer", nil)
	}

	if len(kinds) == 0 {
		kinds = []string{models.MaterialVSL, models.MaterialEmails, models.MaterialSocial}
	}

	requested := make(map[string]bool, len(kinds))
	for _, kind := range kinds {
		requested[kind] = true
	}

	generated := &models.GeneratedMaterials{}

	if requested[models.MaterialVSL] {
		script, err := s.content.GenerateVSLScript(ctx, project, DefaultVSLDuration)
		if err != nil {
			return nil, err
		}
		generated.VSLScript = script
	}

	if requested[models.MaterialEmails] {
		sequence, err := s.content.GenerateEmailSequence(ctx, project)
		if err != nil {
			return nil, err
		}
		generated.EmailSequence = sequence
	}

	if requested[models.MaterialSocial] {
		posts, err := s.content.GenerateSocialContent(ctx, project)
		if err != nil {
			return nil, err
		}
		generated.SocialContent = posts
	}

	if project.Materials == nil {
		project.Materials = &models.GeneratedMaterials{}
	}
	if generated.VSLScript != nil {
		project.Materials.VSLScript = generated.VSLScript
	}
	if generated.EmailSequence != nil {
		project.Materials.EmailSequence = generated.EmailSequence
	}
	if generated.SocialContent != nil {
		project.Materials.SocialContent = generated.SocialContent
	}

	advanceStatus(project, models.StatusMaterialsGenerated)
	project.UpdatedAt = time.Now()

	if err := s.store.Save(projectsCollection, id, project); err != nil {
		return nil, apperrors.NewProcessingError("Failed to persist generated materials", err)
	}
	return generated, nil
}

// GenerateLandingPage renders a landing page bundle for the project and
// stores it as a material. Requires brief and generated offer.
func (s *ProjectService) GenerateLandingPage(id string, templateName string) (*models.LandingPage, error) {
	project, err := s.GetProject(id)
	if err != nil {
		return nil, err
	}

	if project.Brief == nil || project.GeneratedOffer == nil {
		return nil, apperrors.NewPreconditionError("Project must have brief and generated offer", nil)
	}

	page := s.landing.Generate(project.GeneratedOffer, project.Brief, templateName, project.Language)

	if project.Materials == nil {
		project.Materials = &models.GeneratedMaterials{}
	}
	project.Materials.LandingPage = page

	advanceStatus(project, models.StatusMaterialsGenerated)
	project.UpdatedAt = time.Now()

	if err := s.store.Save(projectsCollection, id, project); err != nil {
		return nil, apperrors.NewProcessingError("Failed to persist landing page", err)
	}
	return page, nil
}

// RecordExport appends an entry to the project's export history.
func (s *ProjectService) RecordExport(id, exportType string) error {
	project, err := s.GetProject(id)
	if err != nil {
		return err
	}

	project.Exports = append(project.Exports, models.ExportRecord{
		ExportType: exportType,
		ExportedAt: time.Now(),
	})
	project.UpdatedAt = time.Now()

	return s.store.Save(projectsCollection, id, project)
}

// Metrics aggregates platform-wide project statistics. Projects in
// MATERIALS_GENERATED count as completed alongside COMPLETED; the
// average completion time is estimated from time-to-first-asset.
func (s *ProjectService) Metrics() (*models.ProjectMetrics, error) {
	ids, err := s.store.ListIDs(projectsCollection)
	if err != nil {
		return nil, apperrors.NewProcessingError("Failed to compute metrics", err)
	}

	var (
		total              int
		completed          int
		materialsGenerated int
		firstAssetCount    int
		firstAssetMinutes  float64
	)

	for _, id := range ids {
		var project models.Project
		if err := s.store.Load(projectsCollection, id, &project); err != nil {
			continue
		}

		total++
		switch project.Status {
		case models.StatusCompleted:
			completed++
		case models.StatusMaterialsGenerated:
			materialsGenerated++
		}

		if project.FirstAssetGeneratedAt != nil {
			firstAssetCount++
			firstAssetMinutes += project.FirstAssetGeneratedAt.Sub(project.CreatedAt).Minutes()
		}
	}

	var avgTimeToFirstAsset float64
	if firstAssetCount > 0 {
		avgTimeToFirstAsset = firstAssetMinutes / float64(firstAssetCount)
	}

	var completionRate, materialsRate float64
	if total > 0 {
		completionRate = float64(completed) / float64(total) * 100
		materialsRate = float64(materialsGenerated) / float64(total) * 100
	}

	return &models.ProjectMetrics{
		TotalProjects:       total,
		CompletedProjects:   completed + materialsGenerated,
		AvgCompletionTime:   round2(avgTimeToFirstAsset * 1.5),
		AvgTimeToFirstAsset: round2(avgTimeToFirstAsset),
		CompletionRate:      round2(math.Max(completionRate, materialsRate)),
	}, nil
}

func advanceStatus(project *models.Project, to models.ProjectStatus) {
	if statusRank[to] > statusRank[project.Status] {
		project.Status = to
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
