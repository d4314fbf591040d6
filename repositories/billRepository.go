package repositories

import (
	"CareUSmile/cache"
	"CareUSmile/models"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// BillFilters are the recognized list filters for bills. Type accepts the
// legacy FIJO/VARIABLE values and maps them onto is_recurrent.
type BillFilters struct {
	Category  string
	Type      string
	StartDate string
	EndDate   string
}

type BillRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewBillRepository(db *gorm.DB, cache *cache.Cache) *BillRepository {
	return &BillRepository{db: db, cache: cache}
}

func (r *BillRepository) applyFilters(query *gorm.DB, filters BillFilters) *gorm.DB {
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.Type != "" {
		query = query.Where("is_recurrent = ?", filters.Type == "FIJO")
	}
	if filters.StartDate != "" {
		query = query.Where("bill_date >= ?", filters.StartDate)
	}
	if filters.EndDate != "" {
		query = query.Where("bill_date <= ?", filters.EndDate)
	}
	return query
}

// List returns a page of bills, newest first.
func (r *BillRepository) List(ctx context.Context, page, limit int, filters BillFilters) (*Page, error) {
	page, limit = NormalizePaging(page, limit)

	query := r.applyFilters(r.db.WithContext(ctx).Model(&models.Bill{}), filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count bills: %w", err)
	}

	var bills []models.Bill
	err := query.
		Order("bill_date DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&bills).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}

	return NewPage(bills, total, page, limit), nil
}

// GetByID returns the bill or (nil, nil) when no row exists.
func (r *BillRepository) GetByID(ctx context.Context, id uint) (*models.Bill, error) {
	var bill models.Bill
	err := r.db.WithContext(ctx).First(&bill, "bill_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	return &bill, nil
}

// Create inserts a bill.
func (r *BillRepository) Create(ctx context.Context, bill *models.Bill) error {
	if err := r.db.WithContext(ctx).Create(bill).Error; err != nil {
		return fmt.Errorf("failed to create bill: %w", err)
	}
	return nil
}

// Update persists bill changes. Returns ErrBillNotFound when the row is
// absent.
func (r *BillRepository) Update(ctx context.Context, bill *models.Bill) error {
	var existing models.Bill
	err := r.db.WithContext(ctx).First(&existing, "bill_id = ?", bill.BillID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBillNotFound
		}
		return fmt.Errorf("failed to get bill: %w", err)
	}

	if err := r.db.WithContext(ctx).Save(bill).Error; err != nil {
		return fmt.Errorf("failed to update bill: %w", err)
	}
	return nil
}

// Delete removes a bill and returns the deleted row.
func (r *BillRepository) Delete(ctx context.Context, id uint) (*models.Bill, error) {
	var bill models.Bill
	err := r.db.WithContext(ctx).First(&bill, "bill_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBillNotFound
		}
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}

	if err := r.db.WithContext(ctx).Delete(&models.Bill{}, "bill_id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to delete bill: %w", err)
	}
	return &bill, nil
}

// GetRecurrent returns all recurrent (fixed) bills ordered by description.
func (r *BillRepository) GetRecurrent(ctx context.Context) ([]models.Bill, error) {
	var bills []models.Bill
	err := r.db.WithContext(ctx).
		Where("is_recurrent = ?", true).
		Order("description").
		Find(&bills).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get recurrent bills: %w", err)
	}
	return bills, nil
}

// ExpenseStats aggregates bills dated in [startDate, endDate], split into
// fixed (recurrent) and variable expenses.
func (r *BillRepository) ExpenseStats(ctx context.Context, startDate, endDate string) (*models.ExpenseStats, error) {
	var rows []models.Bill
	err := r.db.WithContext(ctx).Model(&models.Bill{}).
		Select("amount", "is_recurrent").
		Where("bill_date >= ? AND bill_date <= ?", startDate, endDate).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load bills for expense stats: %w", err)
	}

	var fixed, variable float64
	var fixedCount, variableCount int
	for _, row := range rows {
		if row.IsRecurrent {
			fixed += row.Amount
			fixedCount++
		} else {
			variable += row.Amount
			variableCount++
		}
	}

	return &models.ExpenseStats{
		TotalExpenses:    fixed + variable,
		FixedExpenses:    fixed,
		VariableExpenses: variable,
		TotalBills:       len(rows),
		FixedCount:       fixedCount,
		VariableCount:    variableCount,
	}, nil
}
