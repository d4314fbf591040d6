package services

import (
	"CareUSmile/models"
	"CareUSmile/repositories"
	"CareUSmile/utils"
	"context"
)

type ProcedureService struct {
	repository *repositories.ProcedureRepository
}

func NewProcedureService(repository *repositories.ProcedureRepository) *ProcedureService {
	return &ProcedureService{repository: repository}
}

func (s *ProcedureService) List(ctx context.Context, page, limit int, filters repositories.ProcedureFilters) (*repositories.Page, error) {
	return s.repository.List(ctx, page, limit, filters)
}

func (s *ProcedureService) GetByID(ctx context.Context, id uint) (*models.Procedure, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *ProcedureService) GetByPatientID(ctx context.Context, patientID uint) ([]models.Procedure, error) {
	return s.repository.GetByPatientID(ctx, patientID)
}

func (s *ProcedureService) Create(ctx context.Context, procedure *models.Procedure) error {
	if err := utils.ValidateProcedureData(*procedure); err != nil {
		return err
	}
	return s.repository.Create(ctx, procedure)
}

func (s *ProcedureService) Update(ctx context.Context, procedure *models.Procedure) error {
	if err := utils.ValidateProcedureData(*procedure); err != nil {
		return err
	}
	return s.repository.Update(ctx, procedure)
}

func (s *ProcedureService) Delete(ctx context.Context, id uint) (*models.Procedure, error) {
	return s.repository.Delete(ctx, id)
}

func (s *ProcedureService) Count(ctx context.Context) (int64, error) {
	return s.repository.Count(ctx)
}

func (s *ProcedureService) IncomeStats(ctx context.Context, startDate, endDate string) (*models.IncomeStats, error) {
	return s.repository.IncomeStats(ctx, startDate, endDate)
}
