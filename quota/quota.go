package quota

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/AraMammo/demodrop-sub000/models"
)

// ErrExhausted is returned when a user is at their plan's video limit.
// Handlers map it to a 403 with upgrade messaging.
var ErrExhausted = fmt.Errorf("video limit reached for current plan")

// Store answers quota questions for a user. The source of truth is
// swappable so a dedicated usage service can replace the database later
// without touching handlers.
type Store interface {
	// Remaining reports how many videos the user can still generate.
	Remaining(ctx context.Context, userID uint) (int, error)
	// Consume records one generated video. Returns ErrExhausted when
	// the user is already at their limit.
	Consume(ctx context.Context, userID uint) error
	// Reset zeroes the usage counter (billing-cycle renewal).
	Reset(ctx context.Context, userID uint) error
}

// GormStore backs quota with the users table.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Remaining(ctx context.Context, userID uint) (int, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		return 0, fmt.Errorf("failed to load user %d: %w", userID, err)
	}
	remaining := user.VideoLimit() - user.VideosUsed
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// Consume increments inside a transaction so two concurrent submissions
// cannot both slip under the limit.
func (s *GormStore) Consume(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			return fmt.Errorf("failed to load user %d: %w", userID, err)
		}
		if !user.CanGenerate() {
			return ErrExhausted
		}
		return tx.Model(&user).Update("videos_used", gorm.Expr("videos_used + 1")).Error
	})
}

func (s *GormStore) Reset(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("videos_used", 0).Error
}
