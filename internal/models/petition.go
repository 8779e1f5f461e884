package models

import (
	"time"
)

// Category is static reference data; rows are seeded at migration time and
// never mutated through the API.
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"categoryId"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

// Petition is a campaign owned by a user. Every petition carries between one
// and three support tiers; the title is unique across all petitions.
type Petition struct {
	ID            uint          `gorm:"primaryKey" json:"petitionId"`
	Title         string        `gorm:"uniqueIndex;not null" json:"title"`
	Description   string        `gorm:"not null" json:"description"`
	CategoryID    uint          `gorm:"not null;index" json:"categoryId"`
	OwnerID       uint          `gorm:"not null;index" json:"ownerId"`
	Owner         User          `gorm:"foreignKey:OwnerID" json:"-"`
	CreationDate  time.Time     `gorm:"not null" json:"creationDate"`
	ImageFilename *string       `json:"-"`
	SupportTiers  []SupportTier `gorm:"foreignKey:PetitionID" json:"supportTiers,omitempty"`
}

// SupportTier is a fixed-cost pledge option attached to a petition. Its title
// is unique within the petition and its cost is non-negative; the composite
// index backs that uniqueness against concurrent writers.
type SupportTier struct {
	ID          uint   `gorm:"primaryKey" json:"supportTierId"`
	PetitionID  uint   `gorm:"not null;uniqueIndex:idx_tier_petition_title" json:"-"`
	Title       string `gorm:"not null;uniqueIndex:idx_tier_petition_title" json:"title"`
	Description string `gorm:"not null" json:"description"`
	Cost        int    `gorm:"not null" json:"cost"`
}

// Supporter is a user's pledge at a specific support tier. Pledges are
// immutable once created, and a user may pledge at each tier at most once;
// the composite index makes the check-then-insert race-safe.
type Supporter struct {
	ID            uint      `gorm:"primaryKey" json:"supportId"`
	PetitionID    uint      `gorm:"not null;index" json:"-"`
	SupportTierID uint      `gorm:"not null;uniqueIndex:idx_supporter_user_tier" json:"supportTierId"`
	UserID        uint      `gorm:"not null;uniqueIndex:idx_supporter_user_tier" json:"supporterId"`
	Message       string    `json:"message,omitempty"`
	Timestamp     time.Time `gorm:"not null" json:"timestamp"`
}

// PetitionOverview is a row of the petition listing: petition attributes plus
// owner name, supporter count, and the minimum tier cost shown as the
// supporting cost.
type PetitionOverview struct {
	PetitionID         uint      `json:"petitionId"`
	Title              string    `json:"title"`
	CategoryID         uint      `json:"categoryId"`
	OwnerID            uint      `json:"ownerId"`
	OwnerFirstName     string    `json:"ownerFirstName"`
	OwnerLastName      string    `json:"ownerLastName"`
	NumberOfSupporters int64     `json:"numberOfSupporters"`
	CreationDate       time.Time `json:"creationDate"`
	SupportingCost     int       `json:"supportingCost"`
}

// PetitionList pairs one page of petitions with the pre-pagination total of
// the filtered set.
type PetitionList struct {
	Petitions []PetitionOverview `json:"petitions"`
	Count     int64              `json:"count"`
}

// PetitionDetail is the full petition view including aggregates across its
// supporters.
type PetitionDetail struct {
	PetitionOverview
	Description  string        `json:"description"`
	MoneyRaised  int           `json:"moneyRaised"`
	SupportTiers []SupportTier `json:"supportTiers"`
}

// SupporterDetail is a pledge joined with the supporter's name for the
// petition supporter listing.
type SupporterDetail struct {
	SupportID          uint      `json:"supportId"`
	SupportTierID      uint      `json:"supportTierId"`
	Message            string    `json:"message,omitempty"`
	SupporterID        uint      `json:"supporterId"`
	SupporterFirstName string    `json:"supporterFirstName"`
	SupporterLastName  string    `json:"supporterLastName"`
	Timestamp          time.Time `json:"timestamp"`
}
