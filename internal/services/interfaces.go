package services

import (
	"time"

	"outlay/internal/models"
	"outlay/internal/pagination"
	"outlay/internal/recurrence"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID uint, tokenHash string) error
	GetRefreshTokenHash(userID uint) (string, error)
}

// AccountServicer defines the contract for account-related business logic.
type AccountServicer interface {
	GetAccountByUserID(userID uint) (*models.Account, error)
}

// MonthSummary aggregates the expenses that had at least one payment in a
// given month. Total sums each matching expense's amount once, regardless of
// how many payments the expense had in the month.
type MonthSummary struct {
	Month    string           `json:"month"`
	Year     int              `json:"year"`
	Count    int              `json:"count"`
	Total    float64          `json:"total"`
	Expenses []models.Expense `json:"expenses"`
}

// SoFarSummary is a MonthSummary restricted to payments up to an as-of
// instant within its month, plus the running daily average.
type SoFarSummary struct {
	MonthSummary
	AsOf         time.Time `json:"as_of"`
	DailyAverage float64   `json:"daily_average"`
}

// ExpenseServicer defines the contract for expense-related business logic.
// Aggregations never read the clock; "now" is always passed in by the caller.
type ExpenseServicer interface {
	CreateExpense(userID uint, name string, amount float64, category models.ExpenseCategory, unit recurrence.Unit, count int, anchor time.Time) (*models.Expense, error)
	GetAccountExpenses(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error)
	GetExpensesByCategory(userID uint, category models.ExpenseCategory, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error)
	GetRecentExpenses(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Expense], error)
	GetExpenseByID(userID, expenseID uint) (*models.Expense, error)
	DeleteExpense(userID, expenseID uint) error
	ExpensesByMonth(userID uint, month, year int, now time.Time) (*MonthSummary, error)
	ExpensesSoFar(userID uint, now time.Time) (*SoFarSummary, error)
}

// IncomeServicer defines the contract for income-related business logic.
type IncomeServicer interface {
	CreateIncome(userID uint, name string, amount float64, unit recurrence.Unit, count int) (*models.Income, error)
	GetAccountIncomes(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Income], error)
	GetIncomeByID(userID, incomeID uint) (*models.Income, error)
	DeleteIncome(userID, incomeID uint) error
}

// PaymentServicer defines the contract for payment queries. Payments are
// read-only: they exist only as part of an expense's schedule.
type PaymentServicer interface {
	GetAccountPayments(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Payment], error)
	GetPaymentByID(userID, paymentID uint) (*models.Payment, error)
	UpcomingPayments(userID uint, now time.Time, thisMonthOnly bool, page pagination.PageRequest) (*pagination.PageResponse[models.Payment], error)
}

// ModifierValue pairs a modifier with the adjusted amount of its target.
type ModifierValue struct {
	Modifier *models.AmountModifier `json:"modifier"`
	Value    float64                `json:"value"`
}

// ModifierServicer defines the contract for amount modifier business logic.
type ModifierServicer interface {
	CreateModifier(userID uint, name string, percent float64, percentModifier models.PercentModifier, incomeID, expenseID *uint) (*models.AmountModifier, error)
	GetModifierByID(userID, modifierID uint) (*ModifierValue, error)
	GetTargetModifiers(userID uint, targetType models.ModifierTarget, targetID uint) ([]ModifierValue, error)
	DeleteModifier(userID, modifierID uint) error
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
