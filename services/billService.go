package services

import (
	"CareUSmile/models"
	"CareUSmile/repositories"
	"CareUSmile/utils"
	"context"
)

type BillService struct {
	repository *repositories.BillRepository
}

func NewBillService(repository *repositories.BillRepository) *BillService {
	return &BillService{repository: repository}
}

func (s *BillService) List(ctx context.Context, page, limit int, filters repositories.BillFilters) (*repositories.Page, error) {
	return s.repository.List(ctx, page, limit, filters)
}

func (s *BillService) GetByID(ctx context.Context, id uint) (*models.Bill, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *BillService) Create(ctx context.Context, bill *models.Bill) error {
	if err := utils.ValidateBillData(*bill); err != nil {
		return err
	}
	return s.repository.Create(ctx, bill)
}

func (s *BillService) Update(ctx context.Context, bill *models.Bill) error {
	if err := utils.ValidateBillData(*bill); err != nil {
		return err
	}
	return s.repository.Update(ctx, bill)
}

func (s *BillService) Delete(ctx context.Context, id uint) (*models.Bill, error) {
	return s.repository.Delete(ctx, id)
}

func (s *BillService) GetRecurrent(ctx context.Context) ([]models.Bill, error) {
	return s.repository.GetRecurrent(ctx)
}

func (s *BillService) ExpenseStats(ctx context.Context, startDate, endDate string) (*models.ExpenseStats, error) {
	return s.repository.ExpenseStats(ctx, startDate, endDate)
}
