package services

import (
	"context"
	"time"

	"onboarding_poll_system/internal/cache"
	"onboarding_poll_system/internal/db/models"
	"onboarding_poll_system/internal/db/repositories"
)

const adminsCacheKey = "ADMINS_EMPLOYEE"

// AdminDirectory resolves the chats of administrators, cached for ttl.
type AdminDirectory struct {
	store repositories.Store
	cache cache.Cache
	ttl   time.Duration
}

func NewAdminDirectory(store repositories.Store, cache cache.Cache, ttl time.Duration) *AdminDirectory {
	return &AdminDirectory{store: store, cache: cache, ttl: ttl}
}

func (d *AdminDirectory) ChatIDs(ctx context.Context) ([]int64, error) {
	if cached, ok := d.cache.Get(adminsCacheKey); ok {
		if chatIDs, ok := cached.([]int64); ok && len(chatIDs) > 0 {
			return chatIDs, nil
		}
	}

	admins, err := d.store.Employees().GetMany(ctx, repositories.EmployeeFilter{
		Roles:        []models.EmployeeRole{models.EmployeeRoleAdmin},
		WithChatOnly: true,
	})
	if err != nil {
		return nil, err
	}

	chatIDs := make([]int64, 0, len(admins))
	for _, admin := range admins {
		chatIDs = append(chatIDs, admin.ChatID())
	}

	d.cache.Set(adminsCacheKey, chatIDs, d.ttl)
	return chatIDs, nil
}

// Forget drops the cached list, used after an administrator registers in the bot.
func (d *AdminDirectory) Forget() {
	d.cache.Delete(adminsCacheKey)
}
