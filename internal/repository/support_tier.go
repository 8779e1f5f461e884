package repository

import (
	"context"
	"errors"

	"uplift/internal/cache"
	"uplift/internal/models"

	"gorm.io/gorm"
)

// SupportTierRepository defines persistence operations for support tiers.
type SupportTierRepository interface {
	GetByID(ctx context.Context, id uint) (*models.SupportTier, error)
	CountForPetition(ctx context.Context, petitionID uint) (int64, error)
	TitleExists(ctx context.Context, petitionID uint, title string, excludeID uint) (bool, error)
	HasSupporters(ctx context.Context, tierID uint) (bool, error)
	Create(ctx context.Context, tier *models.SupportTier) error
	Update(ctx context.Context, tier *models.SupportTier) error
	Delete(ctx context.Context, id uint) error
}

type supportTierRepository struct {
	db *gorm.DB
}

// NewSupportTierRepository returns a new SupportTierRepository implementation.
func NewSupportTierRepository(db *gorm.DB) SupportTierRepository {
	return &supportTierRepository{db: db}
}

func (r *supportTierRepository) GetByID(ctx context.Context, id uint) (*models.SupportTier, error) {
	var tier models.SupportTier
	if err := r.db.WithContext(ctx).First(&tier, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Support tier", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &tier, nil
}

func (r *supportTierRepository) CountForPetition(ctx context.Context, petitionID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.SupportTier{}).
		Where("petition_id = ?", petitionID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *supportTierRepository) TitleExists(ctx context.Context, petitionID uint, title string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.SupportTier{}).
		Where("petition_id = ? AND title = ?", petitionID, title)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *supportTierRepository) HasSupporters(ctx context.Context, tierID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Supporter{}).
		Where("support_tier_id = ?", tierID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *supportTierRepository) Create(ctx context.Context, tier *models.SupportTier) error {
	if err := r.db.WithContext(ctx).Create(tier).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewForbiddenError("Support tier title already in use for this petition")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidatePetition(ctx, tier.PetitionID)
	return nil
}

func (r *supportTierRepository) Update(ctx context.Context, tier *models.SupportTier) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Save(tier).Error
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return models.NewForbiddenError("Support tier title already in use for this petition")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidatePetition(ctx, tier.PetitionID)
	return nil
}

func (r *supportTierRepository) Delete(ctx context.Context, id uint) error {
	var tier models.SupportTier
	if err := r.db.WithContext(ctx).First(&tier, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Support tier", id)
		}
		return models.NewInternalError(err)
	}
	if err := r.db.WithContext(ctx).Delete(&models.SupportTier{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePetition(ctx, tier.PetitionID)
	return nil
}
