package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "outlay/internal/errors"
	"outlay/internal/models"
	"outlay/internal/pagination"
	"outlay/internal/recurrence"
)

// expenseService handles expense-related business logic, including the
// recurrence expansion that turns one expense into a batch of payments and
// the monthly aggregation queries that read them back.
type expenseService struct {
	db             *gorm.DB
	accountService AccountServicer
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB, accountService AccountServicer) ExpenseServicer {
	return &expenseService{db: db, accountService: accountService}
}

// CreateExpense creates an expense and its full payment schedule: one payment
// at the anchor date plus one per recurrence step. The expense and all
// payments are written in a single transaction, so a failure anywhere in the
// batch rolls back the expense as well.
func (s *expenseService) CreateExpense(
	userID uint,
	name string,
	amount float64,
	category models.ExpenseCategory,
	unit recurrence.Unit,
	count int,
	anchor time.Time,
) (*models.Expense, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "expense name is required")
	}
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if category == "" {
		category = models.CategoryUncategorized
	}
	if !category.Valid() {
		return nil, apperrors.ErrInvalidCategory
	}
	if unit == "" {
		unit = recurrence.Once
	}

	dates, err := recurrence.Expand(anchor, unit, count)
	if err != nil {
		switch {
		case errors.Is(err, recurrence.ErrInvalidUnit):
			return nil, apperrors.ErrInvalidRecurrence
		case errors.Is(err, recurrence.ErrNegativeCount):
			return nil, apperrors.ErrNegativeRecurrence
		default:
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	account, err := s.accountService.GetAccountByUserID(userID)
	if err != nil {
		return nil, err
	}

	expense := &models.Expense{
		AccountID:           account.ID,
		Name:                name,
		Amount:              amount,
		Category:            category,
		Recurrence:          unit,
		NumberOfRecurrences: count,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(expense).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		// Newest first, matching the default payment listing order.
		payments := make([]models.Payment, 0, len(dates))
		for i := len(dates) - 1; i >= 0; i-- {
			payments = append(payments, models.Payment{ExpenseID: expense.ID, Date: dates[i]})
		}
		if err := tx.Create(&payments).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		expense.Payments = payments
		return nil
	})
	if err != nil {
		return nil, err
	}

	return expense, nil
}

// GetAccountExpenses retrieves a paginated list of the account's expenses,
// newest created first, each with its payment schedule.
func (s *expenseService) GetAccountExpenses(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error) {
	page.Defaults()
	return s.listExpenses(userID, page, nil)
}

// GetExpensesByCategory retrieves the account's expenses in one category.
func (s *expenseService) GetExpensesByCategory(userID uint, category models.ExpenseCategory, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error) {
	if category == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "no category chosen")
	}
	if !category.Valid() {
		return nil, apperrors.ErrInvalidCategory
	}

	page.SmallDefaults()
	return s.listExpenses(userID, page, func(q *gorm.DB) *gorm.DB {
		return q.Where("category = ?", category)
	})
}

// GetRecentExpenses retrieves a compact page of the most recently created expenses.
func (s *expenseService) GetRecentExpenses(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error) {
	page.SmallDefaults()
	return s.listExpenses(userID, page, nil)
}

func (s *expenseService) listExpenses(userID uint, page pagination.PageRequest, scope func(*gorm.DB) *gorm.DB) (*pagination.PageResponse[models.Expense], error) {
	account, err := s.accountService.GetAccountByUserID(userID)
	if err != nil {
		return nil, err
	}

	base := s.db.Model(&models.Expense{}).Where("account_id = ?", account.ID)
	if scope != nil {
		base = scope(base)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	if err := base.Scopes(pagination.Paginate(page)).
		Order("created_at DESC").
		Preload("Payments", newestPaymentsFirst).
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(expenses, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetExpenseByID retrieves an expense by ID for a specific user. Expenses
// owned by other accounts are reported as not found, never as forbidden.
func (s *expenseService) GetExpenseByID(userID, expenseID uint) (*models.Expense, error) {
	account, err := s.accountService.GetAccountByUserID(userID)
	if err != nil {
		return nil, err
	}

	var expense models.Expense
	if err := s.db.Where("id = ? AND account_id = ?", expenseID, account.ID).
		Preload("Payments", newestPaymentsFirst).
		First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// DeleteExpense deletes an expense together with its payments and any amount
// modifiers targeting it.
func (s *expenseService) DeleteExpense(userID, expenseID uint) error {
	expense, err := s.GetExpenseByID(userID, expenseID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("expense_id = ?", expense.ID).Delete(&models.Payment{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Where("target_type = ? AND target_id = ?", models.TargetExpense, expense.ID).
			Delete(&models.AmountModifier{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(expense).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// ExpensesByMonth aggregates the expenses that had at least one payment in
// the given month. A zero month or year defaults to now's month or year; out
// of range values are rejected. No matches is an empty summary, not an error.
func (s *expenseService) ExpensesByMonth(userID uint, month, year int, now time.Time) (*MonthSummary, error) {
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}
	if month < 1 || month > 12 {
		return nil, apperrors.ErrInvalidMonth
	}
	if year < 1 || year > 9999 {
		return nil, apperrors.ErrInvalidYear
	}

	account, err := s.accountService.GetAccountByUserID(userID)
	if err != nil {
		return nil, err
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	expenses, err := s.expensesWithPaymentsBetween(account.ID, start, start.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}

	return &MonthSummary{
		Month:    time.Month(month).String(),
		Year:     year,
		Count:    len(expenses),
		Total:    sumAmounts(expenses),
		Expenses: expenses,
	}, nil
}

// ExpensesSoFar aggregates the current month's expenses considering only
// payments that have already fallen due at the as-of instant, and reports
// the running daily average across the elapsed days of the month.
func (s *expenseService) ExpensesSoFar(userID uint, now time.Time) (*SoFarSummary, error) {
	account, err := s.accountService.GetAccountByUserID(userID)
	if err != nil {
		return nil, err
	}

	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	// Half-open upper bound one second past "now" keeps payments stamped at
	// the as-of instant itself included.
	expenses, err := s.expensesWithPaymentsBetween(account.ID, start, now.Add(time.Second))
	if err != nil {
		return nil, err
	}

	total := sumAmounts(expenses)
	return &SoFarSummary{
		MonthSummary: MonthSummary{
			Month:    now.Month().String(),
			Year:     now.Year(),
			Count:    len(expenses),
			Total:    total,
			Expenses: expenses,
		},
		AsOf:         now,
		DailyAverage: total / float64(now.Day()),
	}, nil
}

// expensesWithPaymentsBetween selects the account's expenses that have at
// least one payment with from <= date < to. Each expense appears once no
// matter how many of its payments fall in the window.
func (s *expenseService) expensesWithPaymentsBetween(accountID uint, from, to time.Time) ([]models.Expense, error) {
	var expenses []models.Expense
	err := s.db.Model(&models.Expense{}).
		Joins("JOIN payments ON payments.expense_id = expenses.id").
		Where("expenses.account_id = ?", accountID).
		Where("payments.date >= ? AND payments.date < ?", from, to).
		Group("expenses.id").
		Order("expenses.created_at DESC").
		Preload("Payments", newestPaymentsFirst).
		Find(&expenses).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expenses, nil
}

func sumAmounts(expenses []models.Expense) float64 {
	var total float64
	for i := range expenses {
		total += expenses[i].Amount
	}
	return total
}

// newestPaymentsFirst orders a preloaded payment schedule by date descending.
func newestPaymentsFirst(db *gorm.DB) *gorm.DB {
	return db.Order("payments.date DESC")
}
