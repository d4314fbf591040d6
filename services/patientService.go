package services

import (
	"CareUSmile/database"
	"CareUSmile/models"
	"CareUSmile/repositories"
	"CareUSmile/utils"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
)

type PatientService struct {
	repository *repositories.PatientRepository
}

func NewPatientService(repository *repositories.PatientRepository) *PatientService {
	return &PatientService{repository: repository}
}

func (s *PatientService) List(ctx context.Context, page, limit int, search string) (*repositories.Page, error) {
	return s.repository.List(ctx, page, limit, search)
}

func (s *PatientService) GetByID(ctx context.Context, id uint) (*models.Patient, error) {
	return s.repository.GetByID(ctx, id)
}

// Create validates the payload and inserts the patient under a short
// distributed lock keyed by identification, so two concurrent submissions of
// the same person cannot both pass the duplicate check.
func (s *PatientService) Create(ctx context.Context, patient *models.Patient) error {
	if err := utils.ValidatePatientData(*patient); err != nil {
		return err
	}

	lockKey := fmt.Sprintf("patient_lock:%s", patient.Identification)
	lockValue := uuid.New().String()
	locked, err := database.NewLock(ctx, lockKey, lockValue, 10*time.Second)
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return errors.New("failed to acquire lock")
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release lock: %v", err)
		}
	}()

	return s.repository.Create(ctx, patient)
}

func (s *PatientService) Update(ctx context.Context, patient *models.Patient) error {
	if err := utils.ValidatePatientData(*patient); err != nil {
		return err
	}
	return s.repository.Update(ctx, patient)
}

func (s *PatientService) Delete(ctx context.Context, id uint) (*models.Patient, error) {
	return s.repository.Delete(ctx, id)
}

func (s *PatientService) Count(ctx context.Context) (int64, error) {
	return s.repository.Count(ctx)
}
