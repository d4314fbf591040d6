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
	PatientCacheExpiry = 24 * time.Hour
)

type PatientRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewPatientRepository(db *gorm.DB, cache *cache.Cache) *PatientRepository {
	return &PatientRepository{db: db, cache: cache}
}

// List returns a page of patients ordered by creation date. When search is
// non-empty it is matched case-insensitively against the name and
// identification fields.
func (r *PatientRepository) List(ctx context.Context, page, limit int, search string) (*Page, error) {
	page, limit = NormalizePaging(page, limit)

	cacheKey := fmt.Sprintf("patients_cache:p%d:l%d", page, limit)
	if search == "" {
		if cached, err := r.cache.Get(ctx, cacheKey); err == nil && cached != "" {
			var patients []models.Patient
			result := Page{Data: &patients}
			if err := json.Unmarshal([]byte(cached), &result); err == nil {
				return &result, nil
			}
		}
	}

	query := r.db.WithContext(ctx).Model(&models.Patient{})
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where(
			"first_name ILIKE ? OR first_last_name ILIKE ? OR identification ILIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count patients: %w", err)
	}

	var patients []models.Patient
	err := query.
		Order("creation_date DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&patients).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}

	result := NewPage(patients, total, page, limit)

	if search == "" {
		if resultJSON, err := json.Marshal(result); err == nil {
			if err := r.cache.Set(ctx, cacheKey, resultJSON, PatientCacheExpiry); err != nil {
				log.Printf("Failed to set patients page in cache: %v", err)
			}
		}
	}

	return result, nil
}

// GetByID returns the patient or (nil, nil) when no row exists.
func (r *PatientRepository) GetByID(ctx context.Context, id uint) (*models.Patient, error) {
	cacheKey := r.getPatientCacheKey(id)
	if cached, err := r.cache.Get(ctx, cacheKey); err == nil && cached != "" {
		var patient models.Patient
		if err := json.Unmarshal([]byte(cached), &patient); err == nil {
			return &patient, nil
		}
	}

	var patient models.Patient
	err := r.db.WithContext(ctx).First(&patient, "patient_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	if patientJSON, err := json.Marshal(patient); err == nil {
		if err := r.cache.Set(ctx, cacheKey, patientJSON, PatientCacheExpiry); err != nil {
			log.Printf("Failed to set patient in cache: %v", err)
		}
	}

	return &patient, nil
}

// GetByIdentification returns the patient with the given national
// identification, or (nil, nil) when none exists.
func (r *PatientRepository) GetByIdentification(ctx context.Context, identification string) (*models.Patient, error) {
	var patient models.Patient
	err := r.db.WithContext(ctx).First(&patient, "identification = ?", identification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get patient by identification: %w", err)
	}
	return &patient, nil
}

// Create inserts a patient after checking the identification is unused.
func (r *PatientRepository) Create(ctx context.Context, patient *models.Patient) error {
	existing, err := r.GetByIdentification(ctx, patient.Identification)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrDuplicateIdentification
	}

	if err := r.db.WithContext(ctx).Create(patient).Error; err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}

	r.invalidate(ctx, patient.PatientID)
	return nil
}

// Update persists the full patient row. Returns ErrPatientNotFound when the
// row is absent.
func (r *PatientRepository) Update(ctx context.Context, patient *models.Patient) error {
	var existing models.Patient
	err := r.db.WithContext(ctx).First(&existing, "patient_id = ?", patient.PatientID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPatientNotFound
		}
		return fmt.Errorf("failed to get patient: %w", err)
	}

	patient.CreationDate = existing.CreationDate
	if err := r.db.WithContext(ctx).Save(patient).Error; err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}

	r.invalidate(ctx, patient.PatientID)
	return nil
}

// Delete removes a patient and returns the deleted row. Deletion is blocked
// while appointments reference the patient.
func (r *PatientRepository) Delete(ctx context.Context, id uint) (*models.Patient, error) {
	var patient models.Patient
	err := r.db.WithContext(ctx).First(&patient, "patient_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	var appointments int64
	err = r.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("patient_id = ?", id).
		Count(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count patient appointments: %w", err)
	}
	if appointments > 0 {
		return nil, ErrPatientHasAppointments
	}

	if err := r.db.WithContext(ctx).Delete(&models.Patient{}, "patient_id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to delete patient: %w", err)
	}

	r.invalidate(ctx, id)
	return &patient, nil
}

// Count returns the total number of patients.
func (r *PatientRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Patient{}).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count patients: %w", err)
	}
	return count, nil
}

// invalidate drops the detail and page caches. Cache failures are logged,
// never surfaced: the database remains authoritative.
func (r *PatientRepository) invalidate(ctx context.Context, id uint) {
	if err := r.cache.Delete(ctx, r.getPatientCacheKey(id)); err != nil {
		log.Printf("Failed to delete patient cache: %v", err)
	}
	if err := r.cache.DeleteAll(ctx, "patients_cache:*"); err != nil {
		log.Printf("Failed to delete patients page cache: %v", err)
	}
}

func (r *PatientRepository) getPatientCacheKey(id uint) string {
	return fmt.Sprintf("patient_cache:%d", id)
}
