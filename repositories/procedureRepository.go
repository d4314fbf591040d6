package repositories

import (
	"CareUSmile/cache"
	"CareUSmile/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
)

const (
	ProcedureCacheExpiry = 12 * time.Hour
)

// ProcedureFilters are the recognized list filters for procedures.
type ProcedureFilters struct {
	StartDate      string
	EndDate        string
	PatientID      uint
	IsOrthodontics *bool
}

type ProcedureRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewProcedureRepository(db *gorm.DB, cache *cache.Cache) *ProcedureRepository {
	return &ProcedureRepository{db: db, cache: cache}
}

func (r *ProcedureRepository) applyFilters(query *gorm.DB, filters ProcedureFilters) *gorm.DB {
	if filters.StartDate != "" {
		query = query.Where("procedure_date >= ?", filters.StartDate)
	}
	if filters.EndDate != "" {
		query = query.Where("procedure_date <= ?", filters.EndDate)
	}
	if filters.PatientID != 0 {
		query = query.Where("patient_id = ?", filters.PatientID)
	}
	if filters.IsOrthodontics != nil {
		query = query.Where("is_orthodontics = ?", *filters.IsOrthodontics)
	}
	return query
}

// List returns a page of procedures ordered by date, newest first, each
// flattened with patient data, originating-appointment data and the derived
// income split.
func (r *ProcedureRepository) List(ctx context.Context, page, limit int, filters ProcedureFilters) (*Page, error) {
	page, limit = NormalizePaging(page, limit)

	query := r.applyFilters(r.db.WithContext(ctx).Model(&models.Procedure{}), filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count procedures: %w", err)
	}

	var procedures []models.Procedure
	err := query.
		Preload("Patient").
		Preload("Appointment").
		Order("procedure_date DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&procedures).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list procedures: %w", err)
	}

	for i := range procedures {
		procedures[i].Flatten()
	}

	return NewPage(procedures, total, page, limit), nil
}

// GetByID returns the procedure with flattened patient and appointment
// fields, or (nil, nil) when no row exists.
func (r *ProcedureRepository) GetByID(ctx context.Context, id uint) (*models.Procedure, error) {
	cacheKey := r.getProcedureCacheKey(id)
	if cached, err := r.cache.Get(ctx, cacheKey); err == nil && cached != "" {
		var procedure models.Procedure
		if err := json.Unmarshal([]byte(cached), &procedure); err == nil {
			return &procedure, nil
		}
	}

	var procedure models.Procedure
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Appointment").
		First(&procedure, "procedure_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get procedure: %w", err)
	}

	procedure.Flatten()

	if procedureJSON, err := json.Marshal(procedure); err == nil {
		if err := r.cache.Set(ctx, cacheKey, procedureJSON, ProcedureCacheExpiry); err != nil {
			log.Printf("Failed to set procedure in cache: %v", err)
		}
	}

	return &procedure, nil
}

// GetByPatientID returns all procedures of a patient, newest first.
func (r *ProcedureRepository) GetByPatientID(ctx context.Context, patientID uint) ([]models.Procedure, error) {
	var procedures []models.Procedure
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("procedure_date DESC").
		Find(&procedures).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get procedures by patient: %w", err)
	}

	for i := range procedures {
		procedures[i].ComputeIncome()
	}

	return procedures, nil
}

// Create inserts a procedure without an originating appointment.
func (r *ProcedureRepository) Create(ctx context.Context, procedure *models.Procedure) error {
	if err := r.db.WithContext(ctx).Create(procedure).Error; err != nil {
		return fmt.Errorf("failed to create procedure: %w", err)
	}

	procedure.ComputeIncome()
	r.invalidate(ctx, procedure.ProcedureID)
	return nil
}

// Update persists procedure changes. Returns ErrProcedureNotFound when the
// row is absent.
func (r *ProcedureRepository) Update(ctx context.Context, procedure *models.Procedure) error {
	var existing models.Procedure
	err := r.db.WithContext(ctx).First(&existing, "procedure_id = ?", procedure.ProcedureID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProcedureNotFound
		}
		return fmt.Errorf("failed to get procedure: %w", err)
	}

	procedure.CreationDate = existing.CreationDate
	if procedure.AppointmentID == nil {
		procedure.AppointmentID = existing.AppointmentID
	}
	if err := r.db.WithContext(ctx).Save(procedure).Error; err != nil {
		return fmt.Errorf("failed to update procedure: %w", err)
	}

	procedure.ComputeIncome()
	r.invalidate(ctx, procedure.ProcedureID)
	return nil
}

// Delete removes a procedure and returns the deleted row.
func (r *ProcedureRepository) Delete(ctx context.Context, id uint) (*models.Procedure, error) {
	var procedure models.Procedure
	err := r.db.WithContext(ctx).First(&procedure, "procedure_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProcedureNotFound
		}
		return nil, fmt.Errorf("failed to get procedure: %w", err)
	}

	if err := r.db.WithContext(ctx).Delete(&models.Procedure{}, "procedure_id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to delete procedure: %w", err)
	}

	r.invalidate(ctx, id)
	return &procedure, nil
}

// Count returns the total number of procedures.
func (r *ProcedureRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Procedure{}).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count procedures: %w", err)
	}
	return count, nil
}

// IncomeStats aggregates income for procedures dated in [startDate, endDate].
// Orthodontic revenue splits 40/60 between clinic and doctor; everything
// else is clinic income.
func (r *ProcedureRepository) IncomeStats(ctx context.Context, startDate, endDate string) (*models.IncomeStats, error) {
	var rows []models.Procedure
	err := r.db.WithContext(ctx).Model(&models.Procedure{}).
		Select("total_cost", "is_orthodontics").
		Where("procedure_date >= ? AND procedure_date <= ?", startDate, endDate).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load procedures for income stats: %w", err)
	}

	var totalGeneral, totalOrtho float64
	var generalCount, orthoCount int
	for _, row := range rows {
		if row.IsOrthodontics {
			totalOrtho += row.TotalCost
			orthoCount++
		} else {
			totalGeneral += row.TotalCost
			generalCount++
		}
	}

	return &models.IncomeStats{
		TotalIncome:        totalGeneral + totalOrtho,
		GeneralIncome:      totalGeneral,
		OrthodonticsIncome: totalOrtho,
		ClinicIncome:       totalGeneral + totalOrtho*models.OrthodonticClinicShare,
		DoctorIncome:       totalOrtho * models.OrthodonticDoctorShare,
		TotalProcedures:    len(rows),
		OrthodonticsCount:  orthoCount,
		GeneralCount:       generalCount,
	}, nil
}

func (r *ProcedureRepository) invalidate(ctx context.Context, id uint) {
	if err := r.cache.Delete(ctx, r.getProcedureCacheKey(id)); err != nil {
		log.Printf("Failed to delete procedure cache: %v", err)
	}
	if err := r.cache.DeleteAll(ctx, "procedures_cache:*"); err != nil {
		log.Printf("Failed to delete procedures page cache: %v", err)
	}
}

func (r *ProcedureRepository) getProcedureCacheKey(id uint) string {
	return fmt.Sprintf("procedure_cache:%d", id)
}
