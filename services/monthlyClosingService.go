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
	"strings"
	"time"

	"github.com/google/uuid"
)

// monthNumbers maps the Spanish month names used throughout the clinic to
// their calendar number.
var monthNumbers = map[string]time.Month{
	"ENERO":      time.January,
	"FEBRERO":    time.February,
	"MARZO":      time.March,
	"ABRIL":      time.April,
	"MAYO":       time.May,
	"JUNIO":      time.June,
	"JULIO":      time.July,
	"AGOSTO":     time.August,
	"SEPTIEMBRE": time.September,
	"OCTUBRE":    time.October,
	"NOVIEMBRE":  time.November,
	"DICIEMBRE":  time.December,
}

type MonthlyClosingService struct {
	closings   *repositories.MonthlyClosingRepository
	procedures *repositories.ProcedureRepository
	bills      *repositories.BillRepository
}

func NewMonthlyClosingService(
	closings *repositories.MonthlyClosingRepository,
	procedures *repositories.ProcedureRepository,
	bills *repositories.BillRepository,
) *MonthlyClosingService {
	return &MonthlyClosingService{closings: closings, procedures: procedures, bills: bills}
}

func (s *MonthlyClosingService) List(ctx context.Context, page, limit int) (*repositories.Page, error) {
	return s.closings.List(ctx, page, limit)
}

func (s *MonthlyClosingService) GetByID(ctx context.Context, id uint) (*models.MonthlyClosing, error) {
	return s.closings.GetByID(ctx, id)
}

// MonthPeriod returns the first and last day of the named Spanish month as
// ISO dates.
func MonthPeriod(month string, year int) (startDate, endDate string, err error) {
	number, ok := monthNumbers[strings.ToUpper(strings.TrimSpace(month))]
	if !ok {
		return "", "", fmt.Errorf("unknown month: %s", month)
	}
	first := time.Date(year, number, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first.Format("2006-01-02"), last.Format("2006-01-02"), nil
}

// GetFinancialSummary aggregates procedure income and bill expenses for the
// named month.
func (s *MonthlyClosingService) GetFinancialSummary(ctx context.Context, month string, year int) (*models.FinancialSummary, error) {
	month = strings.ToUpper(strings.TrimSpace(month))
	if err := utils.ValidateClosingRequest(month, year); err != nil {
		return nil, err
	}
	startDate, endDate, err := MonthPeriod(month, year)
	if err != nil {
		return nil, err
	}
	return s.GetFinancialSummaryForPeriod(ctx, startDate, endDate)
}

// GetFinancialSummaryForPeriod aggregates over an arbitrary inclusive date
// range. Net profit is clinic income minus total expenses; the doctor's
// orthodontic share never enters the clinic's books.
func (s *MonthlyClosingService) GetFinancialSummaryForPeriod(ctx context.Context, startDate, endDate string) (*models.FinancialSummary, error) {
	income, err := s.procedures.IncomeStats(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}
	expenses, err := s.bills.ExpenseStats(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}

	orthoClinic := income.OrthodonticsIncome * models.OrthodonticClinicShare
	return &models.FinancialSummary{
		TotalGeneralIncome:             income.GeneralIncome,
		TotalClinicalOrthodonticIncome: orthoClinic,
		TotalOrthodonticDoctorIncome:   income.DoctorIncome,
		TotalFixedExpenses:             expenses.FixedExpenses,
		TotalVariableExpenses:          expenses.VariableExpenses,
		NetProfit:                      income.GeneralIncome + orthoClinic - expenses.TotalExpenses,
	}, nil
}

// CreateClosing snapshots the month's financials into a closing row. The
// period defaults to the calendar month but the caller may override either
// bound. A distributed lock keyed by month and year keeps two concurrent
// requests from both passing the uniqueness check.
func (s *MonthlyClosingService) CreateClosing(ctx context.Context, month string, year int, startDate, endDate, comment string) (*models.MonthlyClosing, error) {
	month = strings.ToUpper(strings.TrimSpace(month))
	if err := utils.ValidateClosingRequest(month, year); err != nil {
		return nil, err
	}

	lockKey := fmt.Sprintf("closing_lock:%s:%d", month, year)
	lockValue := uuid.New().String()
	locked, err := database.NewLock(ctx, lockKey, lockValue, 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return nil, errors.New("failed to acquire lock")
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release lock: %v", err)
		}
	}()

	exists, err := s.closings.Exists(ctx, month, year)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, repositories.ErrClosingExists
	}

	defaultStart, defaultEnd, err := MonthPeriod(month, year)
	if err != nil {
		return nil, err
	}
	if startDate == "" {
		startDate = defaultStart
	}
	if endDate == "" {
		endDate = defaultEnd
	}

	summary, err := s.GetFinancialSummaryForPeriod(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}

	closing := &models.MonthlyClosing{
		Month:                          month,
		Year:                           year,
		TotalGeneralIncome:             summary.TotalGeneralIncome,
		TotalClinicalOrthodonticIncome: summary.TotalClinicalOrthodonticIncome,
		TotalOrthodonticDoctorIncome:   summary.TotalOrthodonticDoctorIncome,
		TotalFixedExpenses:             summary.TotalFixedExpenses,
		TotalVariableExpenses:          summary.TotalVariableExpenses,
		NetProfit:                      summary.NetProfit,
		Comment:                        comment,
	}
	if err := s.closings.Create(ctx, closing); err != nil {
		return nil, err
	}
	return closing, nil
}
