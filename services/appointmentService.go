package services

import (
	"CareUSmile/models"
	"CareUSmile/repositories"
	"CareUSmile/utils"
	"context"
)

type AppointmentService struct {
	repository *repositories.AppointmentRepository
}

func NewAppointmentService(repository *repositories.AppointmentRepository) *AppointmentService {
	return &AppointmentService{repository: repository}
}

func (s *AppointmentService) List(ctx context.Context, page, limit int, filters repositories.AppointmentFilters) (*repositories.Page, error) {
	return s.repository.List(ctx, page, limit, filters)
}

func (s *AppointmentService) GetByID(ctx context.Context, id uint) (*models.Appointment, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *AppointmentService) GetByDate(ctx context.Context, date string) ([]models.Appointment, error) {
	return s.repository.GetByDate(ctx, date)
}

func (s *AppointmentService) Create(ctx context.Context, appointment *models.Appointment) error {
	if err := utils.ValidateAppointmentData(*appointment); err != nil {
		return err
	}
	return s.repository.Create(ctx, appointment)
}

func (s *AppointmentService) Update(ctx context.Context, appointment *models.Appointment) error {
	if err := utils.ValidateAppointmentData(*appointment); err != nil {
		return err
	}
	return s.repository.Update(ctx, appointment)
}

func (s *AppointmentService) Delete(ctx context.Context, id uint) (*models.Appointment, error) {
	return s.repository.Delete(ctx, id)
}

func (s *AppointmentService) CountByState(ctx context.Context, state string) (int64, error) {
	return s.repository.CountByState(ctx, state)
}

// ConvertToProcedure validates the billing payload and runs the conversion in
// a single transaction. The appointment must already be completed.
func (s *AppointmentService) ConvertToProcedure(ctx context.Context, id uint, procedure *models.Procedure) (*models.Appointment, *models.Procedure, error) {
	if err := utils.ValidateConversionData(*procedure); err != nil {
		return nil, nil, err
	}
	return s.repository.ConvertToProcedure(ctx, id, procedure)
}
