package repositories

import (
	"CareUSmile/cache"
	"CareUSmile/models"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type MonthlyClosingRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewMonthlyClosingRepository(db *gorm.DB, cache *cache.Cache) *MonthlyClosingRepository {
	return &MonthlyClosingRepository{db: db, cache: cache}
}

// List returns a page of closings, newest period first.
func (r *MonthlyClosingRepository) List(ctx context.Context, page, limit int) (*Page, error) {
	if limit < 1 {
		limit = 12
	}
	if page < 1 {
		page = DefaultPage
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.MonthlyClosing{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count monthly closings: %w", err)
	}

	var closings []models.MonthlyClosing
	err := r.db.WithContext(ctx).
		Order("year DESC").
		Order("month DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&closings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list monthly closings: %w", err)
	}

	return NewPage(closings, total, page, limit), nil
}

// GetByID returns the closing or (nil, nil) when no row exists.
func (r *MonthlyClosingRepository) GetByID(ctx context.Context, id uint) (*models.MonthlyClosing, error) {
	var closing models.MonthlyClosing
	err := r.db.WithContext(ctx).First(&closing, "closing_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get monthly closing: %w", err)
	}
	return &closing, nil
}

// Exists reports whether a closing for the (month, year) pair already exists.
func (r *MonthlyClosingRepository) Exists(ctx context.Context, month string, year int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.MonthlyClosing{}).
		Where("month = ? AND year = ?", month, year).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check monthly closing existence: %w", err)
	}
	return count > 0, nil
}

// Create inserts a closing. The unique (month, year) index backs up the
// service-level existence check.
func (r *MonthlyClosingRepository) Create(ctx context.Context, closing *models.MonthlyClosing) error {
	if err := r.db.WithContext(ctx).Create(closing).Error; err != nil {
		return fmt.Errorf("failed to create monthly closing: %w", err)
	}
	return nil
}
