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
	"gorm.io/gorm/clause"
)

const (
	AppointmentCacheExpiry = 12 * time.Hour
)

// AppointmentFilters are the recognized list filters. Zero values are
// ignored; anything else the caller sends is dropped silently.
type AppointmentFilters struct {
	StartDate      string
	EndDate        string
	State          string
	PatientID      uint
	IsOrthodontics *bool
}

type AppointmentRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewAppointmentRepository(db *gorm.DB, cache *cache.Cache) *AppointmentRepository {
	return &AppointmentRepository{db: db, cache: cache}
}

func (r *AppointmentRepository) applyFilters(query *gorm.DB, filters AppointmentFilters) *gorm.DB {
	if filters.StartDate != "" {
		query = query.Where("appointment_date >= ?", filters.StartDate)
	}
	if filters.EndDate != "" {
		query = query.Where("appointment_date <= ?", filters.EndDate)
	}
	if filters.State != "" {
		query = query.Where("state = ?", filters.State)
	}
	if filters.PatientID != 0 {
		query = query.Where("patient_id = ?", filters.PatientID)
	}
	if filters.IsOrthodontics != nil {
		query = query.Where("is_orthodontics = ?", *filters.IsOrthodontics)
	}
	return query
}

// List returns a page of appointments ordered by date, each flattened with
// the patient's name, identification and phone.
func (r *AppointmentRepository) List(ctx context.Context, page, limit int, filters AppointmentFilters) (*Page, error) {
	page, limit = NormalizePaging(page, limit)

	query := r.applyFilters(r.db.WithContext(ctx).Model(&models.Appointment{}), filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count appointments: %w", err)
	}

	var appointments []models.Appointment
	err := query.
		Preload("Patient").
		Order("appointment_date ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	for i := range appointments {
		appointments[i].Flatten()
	}

	return NewPage(appointments, total, page, limit), nil
}

// GetByID returns the appointment with its patient flattened, or (nil, nil)
// when no row exists.
func (r *AppointmentRepository) GetByID(ctx context.Context, id uint) (*models.Appointment, error) {
	cacheKey := r.getAppointmentCacheKey(id)
	if cached, err := r.cache.Get(ctx, cacheKey); err == nil && cached != "" {
		var appointment models.Appointment
		if err := json.Unmarshal([]byte(cached), &appointment); err == nil {
			return &appointment, nil
		}
	}

	var appointment models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient").
		First(&appointment, "appointment_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	appointment.Flatten()

	if appointmentJSON, err := json.Marshal(appointment); err == nil {
		if err := r.cache.Set(ctx, cacheKey, appointmentJSON, AppointmentCacheExpiry); err != nil {
			log.Printf("Failed to set appointment in cache: %v", err)
		}
	}

	return &appointment, nil
}

// GetByDate returns all appointments for one calendar day, ordered by time.
func (r *AppointmentRepository) GetByDate(ctx context.Context, date string) ([]models.Appointment, error) {
	startDate := date + "T00:00:00"
	endDate := date + "T23:59:59"

	var appointments []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Where("appointment_date >= ? AND appointment_date <= ?", startDate, endDate).
		Order("appointment_date ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get appointments by date: %w", err)
	}

	for i := range appointments {
		appointments[i].Flatten()
	}

	return appointments, nil
}

// Create inserts a new appointment in the scheduled state after verifying
// the referenced patient exists.
func (r *AppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	var patients int64
	err := r.db.WithContext(ctx).Model(&models.Patient{}).
		Where("patient_id = ?", appointment.PatientID).
		Count(&patients).Error
	if err != nil {
		return fmt.Errorf("failed to check patient: %w", err)
	}
	if patients == 0 {
		return ErrPatientNotFound
	}

	appointment.State = models.AppointmentScheduled
	if appointment.QueryType == "" {
		appointment.QueryType = "Consulta general"
	}

	if err := r.db.WithContext(ctx).Create(appointment).Error; err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}

	r.invalidate(ctx, appointment.AppointmentID)
	return nil
}

// Update persists appointment changes, enforcing the one-directional state
// machine: completed, cancelled and no_show are terminal.
func (r *AppointmentRepository) Update(ctx context.Context, appointment *models.Appointment) error {
	var existing models.Appointment
	err := r.db.WithContext(ctx).First(&existing, "appointment_id = ?", appointment.AppointmentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAppointmentNotFound
		}
		return fmt.Errorf("failed to get appointment: %w", err)
	}

	if appointment.State == "" {
		appointment.State = existing.State
	}
	if !models.ValidStateTransition(existing.State, appointment.State) {
		return ErrInvalidStateTransition
	}

	if err := r.db.WithContext(ctx).Save(appointment).Error; err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}

	r.invalidate(ctx, appointment.AppointmentID)
	return nil
}

// Delete removes an appointment and returns the deleted row.
func (r *AppointmentRepository) Delete(ctx context.Context, id uint) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.db.WithContext(ctx).First(&appointment, "appointment_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}

	if err := r.db.WithContext(ctx).Delete(&models.Appointment{}, "appointment_id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to delete appointment: %w", err)
	}

	r.invalidate(ctx, id)
	return &appointment, nil
}

// CountByState counts appointments in the given state.
func (r *AppointmentRepository) CountByState(ctx context.Context, state string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("state = ?", state).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count appointments: %w", err)
	}
	return count, nil
}

// ConvertToProcedure turns a completed appointment into a billable procedure.
// Both writes run in a single transaction: either the procedure row exists
// and the appointment state is settled, or neither happened.
func (r *AppointmentRepository) ConvertToProcedure(ctx context.Context, id uint, procedure *models.Procedure) (*models.Appointment, *models.Procedure, error) {
	var appointment models.Appointment

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&appointment, "appointment_id = ?", id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("failed to get appointment: %w", err)
		}

		if appointment.State != models.AppointmentCompleted {
			return ErrAppointmentNotCompleted
		}

		appointmentID := appointment.AppointmentID
		procedure.AppointmentID = &appointmentID
		procedure.PatientID = appointment.PatientID
		procedure.ProcedureDate = appointment.AppointmentDate
		procedure.IsOrthodontics = appointment.IsOrthodontics
		if procedure.Observations == "" {
			procedure.Observations = appointment.Observations
		}

		if err := tx.Create(procedure).Error; err != nil {
			return fmt.Errorf("failed to create procedure: %w", err)
		}

		err = tx.Model(&models.Appointment{}).
			Where("appointment_id = ?", id).
			Update("state", models.AppointmentCompleted).Error
		if err != nil {
			return fmt.Errorf("failed to update appointment state: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	procedure.ComputeIncome()
	r.invalidate(ctx, id)
	if err := r.cache.DeleteAll(ctx, "procedures_cache:*"); err != nil {
		log.Printf("Failed to delete procedures cache: %v", err)
	}

	return &appointment, procedure, nil
}

func (r *AppointmentRepository) invalidate(ctx context.Context, id uint) {
	if err := r.cache.Delete(ctx, r.getAppointmentCacheKey(id)); err != nil {
		log.Printf("Failed to delete appointment cache: %v", err)
	}
}

func (r *AppointmentRepository) getAppointmentCacheKey(id uint) string {
	return fmt.Sprintf("appointment_cache:%d", id)
}
