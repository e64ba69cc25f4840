package repository

import (
	"context"
	"errors"

	"aurex/internal/cache"
	"aurex/internal/models"

	"gorm.io/gorm"
)

// NotificationRepository defines persistence for the notification send log
// and per-user preferences.
type NotificationRepository interface {
	CreateLog(ctx context.Context, entry *models.EmailNotification) error
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.EmailNotification, error)
	// GetPreferences returns stored preferences, or the defaults when the
	// user has never saved any.
	GetPreferences(ctx context.Context, userID uint) (*models.NotificationPreference, error)
	SavePreferences(ctx context.Context, prefs *models.NotificationPreference) error
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository.
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) CreateLog(ctx context.Context, entry *models.EmailNotification) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.EmailNotification, error) {
	var entries []models.EmailNotification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("sent_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return entries, nil
}

func (r *notificationRepository) GetPreferences(ctx context.Context, userID uint) (*models.NotificationPreference, error) {
	var prefs models.NotificationPreference
	key := cache.PrefsKey(userID)

	err := cache.CacheAside(ctx, key, &prefs, cache.PrefsTTL, func() error {
		fetchErr := r.db.WithContext(ctx).
			Where("user_id = ?", userID).
			First(&prefs).Error
		if fetchErr != nil {
			if errors.Is(fetchErr, gorm.ErrRecordNotFound) {
				prefs = models.DefaultNotificationPreference(userID)
				return nil
			}
			return models.NewInternalError(fetchErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &prefs, nil
}

// SavePreferences inserts or updates the single preferences row per user.
func (r *notificationRepository) SavePreferences(ctx context.Context, prefs *models.NotificationPreference) error {
	var existing models.NotificationPreference
	err := r.db.WithContext(ctx).
		Where("user_id = ?", prefs.UserID).
		First(&existing).Error
	switch {
	case err == nil:
		prefs.ID = existing.ID
		prefs.CreatedAt = existing.CreatedAt
		if saveErr := r.db.WithContext(ctx).Save(prefs).Error; saveErr != nil {
			return models.NewInternalError(saveErr)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if createErr := r.db.WithContext(ctx).Create(prefs).Error; createErr != nil {
			return models.NewInternalError(createErr)
		}
	default:
		return models.NewInternalError(err)
	}

	cache.Invalidate(ctx, cache.PrefsKey(prefs.UserID))
	return nil
}
