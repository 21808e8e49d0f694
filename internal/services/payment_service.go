package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "outlay/internal/errors"
	"outlay/internal/models"
	"outlay/internal/pagination"
)

// paymentService handles payment queries. Payments are created exclusively
// by the expense service; this service never writes.
type paymentService struct {
	db             *gorm.DB
	accountService AccountServicer
}

// NewPaymentService creates a new PaymentServicer.
func NewPaymentService(db *gorm.DB, accountService AccountServicer) PaymentServicer {
	return &paymentService{db: db, accountService: accountService}
}

// GetAccountPayments retrieves a paginated list of all the account's
// payments, newest date first.
func (s *paymentService) GetAccountPayments(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Payment], error) {
	account, err := s.accountService.GetAccountByUserID(userID)
	if err != nil {
		return nil, err
	}

	page.SmallDefaults()
	return s.listPayments(account.ID, page, nil)
}

// GetPaymentByID retrieves a payment by ID for a specific user. Payments
// belong to the account through their expense.
func (s *paymentService) GetPaymentByID(userID, paymentID uint) (*models.Payment, error) {
	account, err := s.accountService.GetAccountByUserID(userID)
	if err != nil {
		return nil, err
	}

	var payment models.Payment
	err = s.db.
		Joins("JOIN expenses ON expenses.id = payments.expense_id").
		Where("payments.id = ? AND expenses.account_id = ? AND expenses.deleted_at IS NULL", paymentID, account.ID).
		Preload("Expense").
		First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPaymentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &payment, nil
}

// UpcomingPayments retrieves the payments falling strictly after now. With
// thisMonthOnly, the result is additionally restricted to now's month and
// year, which makes it the account's remaining scheduled spend this month.
func (s *paymentService) UpcomingPayments(userID uint, now time.Time, thisMonthOnly bool, page pagination.PageRequest) (*pagination.PageResponse[models.Payment], error) {
	account, err := s.accountService.GetAccountByUserID(userID)
	if err != nil {
		return nil, err
	}

	page.SmallDefaults()
	return s.listPayments(account.ID, page, func(q *gorm.DB) *gorm.DB {
		q = q.Where("payments.date > ?", now)
		if thisMonthOnly {
			startOfNextMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
			q = q.Where("payments.date < ?", startOfNextMonth)
		}
		return q
	})
}

func (s *paymentService) listPayments(accountID uint, page pagination.PageRequest, scope func(*gorm.DB) *gorm.DB) (*pagination.PageResponse[models.Payment], error) {
	base := s.db.Model(&models.Payment{}).
		Joins("JOIN expenses ON expenses.id = payments.expense_id").
		Where("expenses.account_id = ? AND expenses.deleted_at IS NULL", accountID)
	if scope != nil {
		base = scope(base)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var payments []models.Payment
	if err := base.Scopes(pagination.Paginate(page)).
		Order("payments.date DESC").
		Preload("Expense").
		Find(&payments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(payments, page.Page, page.PageSize, totalItems)
	return &result, nil
}
