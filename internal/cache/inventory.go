package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix     = "user:%d"
	PetitionKeyPrefix = "petition:%d"
	CategoriesKey     = "categories"
)

const (
	UserTTL       = 5 * time.Minute
	PetitionTTL   = 5 * time.Minute
	CategoriesTTL = 30 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func PetitionKey(petitionID uint) string {
	return fmt.Sprintf(PetitionKeyPrefix, petitionID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidatePetition(ctx context.Context, petitionID uint) {
	Invalidate(ctx, PetitionKey(petitionID))
}
