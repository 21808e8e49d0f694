package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "outlay/internal/errors"
	"outlay/internal/models"
)

// modifierService handles amount modifier business logic.
type modifierService struct {
	db             *gorm.DB
	accountService AccountServicer
}

// NewModifierService creates a new ModifierServicer.
func NewModifierService(db *gorm.DB, accountService AccountServicer) ModifierServicer {
	return &modifierService{db: db, accountService: accountService}
}

// CreateModifier creates an amount modifier for exactly one income or
// expense. Passing both targets, or neither, is rejected before anything is
// persisted. The target must belong to the caller's account.
func (s *modifierService) CreateModifier(
	userID uint,
	name string,
	percent float64,
	percentModifier models.PercentModifier,
	incomeID, expenseID *uint,
) (*models.AmountModifier, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "modifier name is required")
	}
	if percentModifier == "" {
		percentModifier = models.PercentNone
	}
	if !percentModifier.Valid() {
		return nil, apperrors.ErrInvalidModifier
	}
	if (incomeID == nil) == (expenseID == nil) {
		return nil, apperrors.ErrModifierTarget
	}

	account, err := s.accountService.GetAccountByUserID(userID)
	if err != nil {
		return nil, err
	}

	targetType := models.TargetIncome
	targetID := uint(0)
	if incomeID != nil {
		targetID = *incomeID
		if _, err := s.targetAmount(account.ID, models.TargetIncome, targetID); err != nil {
			return nil, err
		}
	} else {
		targetType = models.TargetExpense
		targetID = *expenseID
		if _, err := s.targetAmount(account.ID, models.TargetExpense, targetID); err != nil {
			return nil, err
		}
	}

	modifier := &models.AmountModifier{
		AccountID:       account.ID,
		Name:            name,
		Percent:         percent,
		PercentModifier: percentModifier,
		TargetType:      targetType,
		TargetID:        targetID,
	}
	if err := s.db.Create(modifier).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return modifier, nil
}

// GetModifierByID retrieves a modifier and the adjusted amount of its target.
func (s *modifierService) GetModifierByID(userID, modifierID uint) (*ModifierValue, error) {
	account, err := s.accountService.GetAccountByUserID(userID)
	if err != nil {
		return nil, err
	}

	var modifier models.AmountModifier
	if err := s.db.Where("id = ? AND account_id = ?", modifierID, account.ID).First(&modifier).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrModifierNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	amount, err := s.targetAmount(account.ID, modifier.TargetType, modifier.TargetID)
	if err != nil {
		return nil, err
	}

	return &ModifierValue{Modifier: &modifier, Value: modifier.Value(amount)}, nil
}

// GetTargetModifiers retrieves all modifiers attached to one income or
// expense, each with its adjusted amount.
func (s *modifierService) GetTargetModifiers(userID uint, targetType models.ModifierTarget, targetID uint) ([]ModifierValue, error) {
	if !targetType.Valid() {
		return nil, apperrors.ErrModifierTarget
	}

	account, err := s.accountService.GetAccountByUserID(userID)
	if err != nil {
		return nil, err
	}

	amount, err := s.targetAmount(account.ID, targetType, targetID)
	if err != nil {
		return nil, err
	}

	var modifiers []models.AmountModifier
	if err := s.db.
		Where("account_id = ? AND target_type = ? AND target_id = ?", account.ID, targetType, targetID).
		Order("created_at DESC").
		Find(&modifiers).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	values := make([]ModifierValue, 0, len(modifiers))
	for i := range modifiers {
		values = append(values, ModifierValue{Modifier: &modifiers[i], Value: modifiers[i].Value(amount)})
	}
	return values, nil
}

// DeleteModifier deletes a modifier. The target income or expense is untouched.
func (s *modifierService) DeleteModifier(userID, modifierID uint) error {
	mv, err := s.GetModifierByID(userID, modifierID)
	if err != nil {
		return err
	}
	if err := s.db.Delete(mv.Modifier).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// targetAmount resolves the base amount of a modifier target, verifying that
// the target exists and belongs to the account.
func (s *modifierService) targetAmount(accountID uint, targetType models.ModifierTarget, targetID uint) (float64, error) {
	switch targetType {
	case models.TargetIncome:
		var income models.Income
		if err := s.db.Where("id = ? AND account_id = ?", targetID, accountID).First(&income).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, apperrors.ErrIncomeNotFound
			}
			return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return income.Amount, nil
	case models.TargetExpense:
		var expense models.Expense
		if err := s.db.Where("id = ? AND account_id = ?", targetID, accountID).First(&expense).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, apperrors.ErrExpenseNotFound
			}
			return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return expense.Amount, nil
	default:
		return 0, apperrors.ErrModifierTarget
	}
}
