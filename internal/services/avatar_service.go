// internal/services/avatar_service.go
package services

import (
	"sort"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/offerforge/offerforge/internal/errors"
	"github.com/offerforge/offerforge/internal/models"
	"github.com/offerforge/offerforge/internal/storage"
	"github.com/offerforge/offerforge/internal/utils"
)

const avatarsCollection = "avatars"

// AvatarService stores target-audience profiles. Briefs reference them
// by loose ID; nothing enforces referential integrity.
type AvatarService struct {
	store  *storage.DocumentStore
	logger *utils.Logger
}

// NewAvatarService creates the avatar service.
func NewAvatarService(store *storage.DocumentStore) *AvatarService {
	return &AvatarService{
		store:  store,
		logger: utils.GetLogger(),
	}
}

// CreateAvatar registers a new audience profile.
func (s *AvatarService) CreateAvatar(req models.AvatarCreate) (*models.Avatar, error) {
	avatar := &models.Avatar{
		ID:          uuid.NewString(),
		Name:        req.Name,
		AgeRange:    req.AgeRange,
		Gender:      req.Gender,
		Interests:   req.Interests,
		PainPoints:  req.PainPoints,
		Goals:       req.Goals,
		IncomeLevel: req.IncomeLevel,
		CreatedAt:   time.Now(),
	}

	if err := s.store.Save(avatarsCollection, avatar.ID, avatar); err != nil {
		return nil, apperrors.NewProcessingError("Failed to create avatar", err)
	}

	s.logger.Infof("Avatar created: %s (%s)", avatar.ID, avatar.Name)
	return avatar, nil
}

// ListAvatars returns avatars newest first, capped at limit.
func (s *AvatarService) ListAvatars(limit int) ([]*models.Avatar, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	ids, err := s.store.ListIDs(avatarsCollection)
	if err != nil {
		return nil, apperrors.NewProcessingError("Failed to fetch avatars", err)
	}

	avatars := make([]*models.Avatar, 0, len(ids))
	for _, id := range ids {
		var avatar models.Avatar
		if err := s.store.Load(avatarsCollection, id, &avatar); err != nil {
			s.logger.Warnf("Skipping unreadable avatar %s: %v", id, err)
			continue
		}
		avatars = append(avatars, &avatar)
	}

	sort.Slice(avatars, func(i, j int) bool {
		return avatars[i].CreatedAt.After(avatars[j].CreatedAt)
	})

	if len(avatars) > limit {
		avatars = avatars[:limit]
	}
	return avatars, nil
}
