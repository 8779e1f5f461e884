package repository

import (
	"context"
	"errors"

	"uplift/internal/cache"
	"uplift/internal/models"

	"gorm.io/gorm"
)

// PetitionSort names a listing sort order.
type PetitionSort string

const (
	SortAlphabeticalAsc  PetitionSort = "ALPHABETICAL_ASC"
	SortAlphabeticalDesc PetitionSort = "ALPHABETICAL_DESC"
	SortCostAsc          PetitionSort = "COST_ASC"
	SortCostDesc         PetitionSort = "COST_DESC"
	SortCreatedAsc       PetitionSort = "CREATED_ASC"
	SortCreatedDesc      PetitionSort = "CREATED_DESC"
)

// PetitionFilter holds the optional, conjunctive listing filters. Nil pointer
// fields mean "not filtered" so a literal zero value is never overloaded.
type PetitionFilter struct {
	Query          string
	CategoryIDs    []uint
	SupportingCost *int
	OwnerID        *uint
	SupporterID    *uint
}

// PetitionPage is the requested slice of the filtered, sorted result set.
// A nil Count means no limit.
type PetitionPage struct {
	StartIndex int
	Count      *int
}

// PetitionRepository defines persistence operations for petitions.
type PetitionRepository interface {
	List(ctx context.Context, filter PetitionFilter, sort PetitionSort, page PetitionPage) (*models.PetitionList, error)
	GetDetail(ctx context.Context, id uint) (*models.PetitionDetail, error)
	GetByID(ctx context.Context, id uint) (*models.Petition, error)
	TitleExists(ctx context.Context, title string, excludeID uint) (bool, error)
	HasSupporters(ctx context.Context, id uint) (bool, error)
	Create(ctx context.Context, petition *models.Petition) error
	Update(ctx context.Context, petition *models.Petition) error
	Delete(ctx context.Context, id uint) error
	SetImageFilename(ctx context.Context, id uint, filename *string) error
}

type petitionRepository struct {
	db *gorm.DB
}

// NewPetitionRepository returns a new PetitionRepository implementation.
func NewPetitionRepository(db *gorm.DB) PetitionRepository {
	return &petitionRepository{db: db}
}

const supportingCostExpr = "(SELECT MIN(cost) FROM support_tiers WHERE support_tiers.petition_id = petitions.id)"

// applyOverview adds the owner join and the computed supporter count and
// supporting cost columns used by both the listing and the detail view.
func (r *petitionRepository) applyOverview(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Petition{}).
		Joins("JOIN users ON users.id = petitions.owner_id").
		Select("petitions.id AS petition_id, petitions.title, petitions.category_id, petitions.owner_id, " +
			"users.first_name AS owner_first_name, users.last_name AS owner_last_name, " +
			"petitions.creation_date, " +
			"(SELECT COUNT(*) FROM supporters WHERE supporters.petition_id = petitions.id) AS number_of_supporters, " +
			"COALESCE(" + supportingCostExpr + ", 0) AS supporting_cost")
}

// applyFilter appends the conjunctive WHERE clauses for the optional filters.
func (r *petitionRepository) applyFilter(db *gorm.DB, filter PetitionFilter) *gorm.DB {
	if filter.Query != "" {
		like := "%" + filter.Query + "%"
		db = db.Where("petitions.title ILIKE ? OR petitions.description ILIKE ?", like, like)
	}
	if len(filter.CategoryIDs) > 0 {
		db = db.Where("petitions.category_id IN ?", filter.CategoryIDs)
	}
	if filter.SupportingCost != nil {
		// A petition qualifies if any of its tiers costs at most the ceiling,
		// i.e. its cheapest tier does.
		db = db.Where(supportingCostExpr+" <= ?", *filter.SupportingCost)
	}
	if filter.OwnerID != nil {
		db = db.Where("petitions.owner_id = ?", *filter.OwnerID)
	}
	if filter.SupporterID != nil {
		db = db.Where("petitions.id IN (SELECT petition_id FROM supporters WHERE user_id = ?)", *filter.SupporterID)
	}
	return db
}

// applySort appends the ORDER BY clause for the requested sort. Every order
// ends with petitions.id ASC so rows with equal sort keys come back in a
// deterministic order.
func (r *petitionRepository) applySort(db *gorm.DB, sort PetitionSort) *gorm.DB {
	switch sort {
	case SortAlphabeticalAsc:
		return db.Order("petitions.title ASC, petitions.id ASC")
	case SortAlphabeticalDesc:
		return db.Order("petitions.title DESC, petitions.id ASC")
	case SortCostAsc:
		return db.Order("supporting_cost ASC, petitions.id ASC")
	case SortCostDesc:
		return db.Order("supporting_cost DESC, petitions.id ASC")
	case SortCreatedDesc:
		return db.Order("petitions.creation_date DESC, petitions.id ASC")
	default: // CREATED_ASC and anything unrecognized
		return db.Order("petitions.creation_date ASC, petitions.id ASC")
	}
}

func (r *petitionRepository) List(ctx context.Context, filter PetitionFilter, sort PetitionSort, page PetitionPage) (*models.PetitionList, error) {
	// Total of the filtered set before pagination, for client-side paging.
	var total int64
	countQuery := r.applyFilter(r.db.WithContext(ctx).Model(&models.Petition{}), filter)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	query := r.applyFilter(r.applyOverview(r.db.WithContext(ctx)), filter)
	query = r.applySort(query, sort)
	if page.StartIndex > 0 {
		query = query.Offset(page.StartIndex)
	}
	if page.Count != nil {
		query = query.Limit(*page.Count)
	}

	petitions := []models.PetitionOverview{}
	if err := query.Scan(&petitions).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	return &models.PetitionList{Petitions: petitions, Count: total}, nil
}

func (r *petitionRepository) GetDetail(ctx context.Context, id uint) (*models.PetitionDetail, error) {
	var detail models.PetitionDetail

	err := cache.Aside(ctx, cache.PetitionKey(id), &detail, cache.PetitionTTL, func() error {
		var row struct {
			models.PetitionOverview
			Description string
			MoneyRaised int
		}
		err := r.applyOverview(r.db.WithContext(ctx)).
			Select("petitions.id AS petition_id, petitions.title, petitions.category_id, petitions.owner_id, "+
				"users.first_name AS owner_first_name, users.last_name AS owner_last_name, "+
				"petitions.creation_date, petitions.description, "+
				"(SELECT COUNT(*) FROM supporters WHERE supporters.petition_id = petitions.id) AS number_of_supporters, "+
				"COALESCE("+supportingCostExpr+", 0) AS supporting_cost, "+
				"(SELECT COALESCE(SUM(support_tiers.cost), 0) FROM supporters "+
				"JOIN support_tiers ON support_tiers.id = supporters.support_tier_id "+
				"WHERE supporters.petition_id = petitions.id) AS money_raised").
			Where("petitions.id = ?", id).
			Take(&row).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Petition", id)
			}
			return models.NewInternalError(err)
		}

		var tiers []models.SupportTier
		if err := r.db.WithContext(ctx).
			Where("petition_id = ?", id).
			Order("id ASC").
			Find(&tiers).Error; err != nil {
			return models.NewInternalError(err)
		}

		detail = models.PetitionDetail{
			PetitionOverview: row.PetitionOverview,
			Description:      row.Description,
			MoneyRaised:      row.MoneyRaised,
			SupportTiers:     tiers,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r *petitionRepository) GetByID(ctx context.Context, id uint) (*models.Petition, error) {
	var petition models.Petition
	if err := r.db.WithContext(ctx).First(&petition, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Petition", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &petition, nil
}

func (r *petitionRepository) TitleExists(ctx context.Context, title string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.Petition{}).Where("title = ?", title)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *petitionRepository) HasSupporters(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Supporter{}).
		Where("petition_id = ?", id).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

// Create inserts the petition and its support tiers as one transaction; a
// failure on any tier rolls back the petition row as well.
func (r *petitionRepository) Create(ctx context.Context, petition *models.Petition) error {
	tiers := petition.SupportTiers
	petition.SupportTiers = nil

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(petition).Error; err != nil {
			return err
		}
		for i := range tiers {
			tiers[i].PetitionID = petition.ID
			if err := tx.Create(&tiers[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})

	petition.SupportTiers = tiers
	if err != nil {
		if isUniqueConstraintError(err) {
			return models.NewForbiddenError("Petition title already in use")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *petitionRepository) Update(ctx context.Context, petition *models.Petition) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit("SupportTiers").Save(petition).Error
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return models.NewForbiddenError("Petition title already in use")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidatePetition(ctx, petition.ID)
	return nil
}

// Delete removes the petition together with its support tiers. Callers are
// responsible for ensuring there are no supporters.
func (r *petitionRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("petition_id = ?", id).Delete(&models.SupportTier{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Petition{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePetition(ctx, id)
	return nil
}

func (r *petitionRepository) SetImageFilename(ctx context.Context, id uint, filename *string) error {
	if err := r.db.WithContext(ctx).Model(&models.Petition{}).
		Where("id = ?", id).
		Update("image_filename", filename).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePetition(ctx, id)
	return nil
}
