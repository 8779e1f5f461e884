package repository

import (
	"context"

	"uplift/internal/cache"
	"uplift/internal/models"

	"gorm.io/gorm"
)

// SupporterRepository defines persistence operations for pledges. Pledges are
// append-only; no update or delete exists.
type SupporterRepository interface {
	ListForPetition(ctx context.Context, petitionID uint) ([]models.SupporterDetail, error)
	Exists(ctx context.Context, userID, tierID uint) (bool, error)
	Create(ctx context.Context, supporter *models.Supporter) error
}

type supporterRepository struct {
	db *gorm.DB
}

// NewSupporterRepository returns a new SupporterRepository implementation.
func NewSupporterRepository(db *gorm.DB) SupporterRepository {
	return &supporterRepository{db: db}
}

func (r *supporterRepository) ListForPetition(ctx context.Context, petitionID uint) ([]models.SupporterDetail, error) {
	supporters := []models.SupporterDetail{}
	err := r.db.WithContext(ctx).Model(&models.Supporter{}).
		Joins("JOIN users ON users.id = supporters.user_id").
		Select("supporters.id AS support_id, supporters.support_tier_id, supporters.message, "+
			"supporters.user_id AS supporter_id, users.first_name AS supporter_first_name, "+
			"users.last_name AS supporter_last_name, supporters.timestamp").
		Where("supporters.petition_id = ?", petitionID).
		Order("supporters.timestamp DESC, supporters.id DESC").
		Scan(&supporters).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return supporters, nil
}

func (r *supporterRepository) Exists(ctx context.Context, userID, tierID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Supporter{}).
		Where("user_id = ? AND support_tier_id = ?", userID, tierID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// Create inserts a pledge. The unique index on (support_tier_id, user_id)
// catches concurrent duplicates that pass the handler's Exists check.
func (r *supporterRepository) Create(ctx context.Context, supporter *models.Supporter) error {
	if err := r.db.WithContext(ctx).Create(supporter).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewForbiddenError("Already supporting at this tier")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidatePetition(ctx, supporter.PetitionID)
	return nil
}
