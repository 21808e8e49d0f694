package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "outlay/internal/errors"
	"outlay/internal/models"
	"outlay/internal/pagination"
	"outlay/internal/recurrence"
)

// incomeService handles income-related business logic. Incomes carry a
// recurrence rule but no payment schedule; only expenses expand into payments.
type incomeService struct {
	db             *gorm.DB
	accountService AccountServicer
}

// NewIncomeService creates a new IncomeServicer.
func NewIncomeService(db *gorm.DB, accountService AccountServicer) IncomeServicer {
	return &incomeService{db: db, accountService: accountService}
}

// CreateIncome creates a new income for the user's account.
func (s *incomeService) CreateIncome(userID uint, name string, amount float64, unit recurrence.Unit, count int) (*models.Income, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "income name is required")
	}
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if unit == "" {
		unit = recurrence.Once
	}
	if !unit.Valid() {
		return nil, apperrors.ErrInvalidRecurrence
	}
	if count < 0 {
		return nil, apperrors.ErrNegativeRecurrence
	}

	account, err := s.accountService.GetAccountByUserID(userID)
	if err != nil {
		return nil, err
	}

	income := &models.Income{
		AccountID:           account.ID,
		Name:                name,
		Amount:              amount,
		Recurrence:          unit,
		NumberOfRecurrences: count,
	}
	if err := s.db.Create(income).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return income, nil
}

// GetAccountIncomes retrieves a paginated list of the account's incomes,
// newest created first.
func (s *incomeService) GetAccountIncomes(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Income], error) {
	account, err := s.accountService.GetAccountByUserID(userID)
	if err != nil {
		return nil, err
	}

	page.Defaults()

	base := s.db.Model(&models.Income{}).Where("account_id = ?", account.ID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var incomes []models.Income
	if err := base.Scopes(pagination.Paginate(page)).
		Order("created_at DESC").
		Find(&incomes).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(incomes, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetIncomeByID retrieves an income by ID for a specific user.
func (s *incomeService) GetIncomeByID(userID, incomeID uint) (*models.Income, error) {
	account, err := s.accountService.GetAccountByUserID(userID)
	if err != nil {
		return nil, err
	}

	var income models.Income
	if err := s.db.Where("id = ? AND account_id = ?", incomeID, account.ID).First(&income).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrIncomeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &income, nil
}

// DeleteIncome deletes an income and any amount modifiers targeting it.
func (s *incomeService) DeleteIncome(userID, incomeID uint) error {
	income, err := s.GetIncomeByID(userID, incomeID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_type = ? AND target_id = ?", models.TargetIncome, income.ID).
			Delete(&models.AmountModifier{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(income).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}
